package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/your-org/estate-admin/internal/listing/domain"
)

const defaultPageSize = 10

func (h *Handler) HandleSearchListings(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "SearchListings")
	defer span.End()

	q := r.URL.Query()
	filter := domain.Filter{
		Kind:      domain.ListingKind(q.Get("type")),
		Status:    domain.ListingStatus(q.Get("status")),
		City:      q.Get("city"),
		Address:   q.Get("address"),
		Parking:   domain.ParkingKind(q.Get("parking")),
		AreaFrom:  queryFloat(q.Get("areaFrom")),
		AreaTo:    queryFloat(q.Get("areaTo")),
		PriceFrom: queryFloat(q.Get("priceFrom")),
		PriceTo:   queryFloat(q.Get("priceTo")),
	}

	pageSize := queryInt(q.Get("pageSize"), defaultPageSize)
	pageIndex := queryInt(q.Get("page"), 0)
	span.SetAttributes(
		attribute.String("filter.type", string(filter.Kind)),
		attribute.Int("page.index", pageIndex),
	)

	page, err := h.query.Search(ctx, filter, pageSize, pageIndex)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, page)
}

func (h *Handler) HandleGetListing(w http.ResponseWriter, r *http.Request) {
	listing, err := h.query.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, listing)
}

func (h *Handler) HandleDeleteListing(w http.ResponseWriter, r *http.Request) {
	if err := h.query.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type fieldPatch struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

type apartmentPatch struct {
	FloorIndex     int         `json:"floorIndex"`
	ApartmentIndex int         `json:"apartmentIndex"`
	Field          string      `json:"field"`
	Value          interface{} `json:"value"`
}

// HandlePatchListing applies scalar and nested field edits onto the
// fetched seed and saves through the no-image path.
func (h *Handler) HandlePatchListing(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "PatchListing")
	defer span.End()

	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("listing.id", id))

	var req struct {
		Fields     []fieldPatch     `json:"fields"`
		Apartments []apartmentPatch `json:"apartments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	seed, err := h.query.GetByID(ctx, id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	for _, p := range req.Fields {
		if err := h.edit.ApplyField(seed, p.Name, p.Value); err != nil {
			h.respondError(w, err)
			return
		}
	}
	for _, p := range req.Apartments {
		if err := h.edit.ApplyApartmentField(seed, p.FloorIndex, p.ApartmentIndex, p.Field, p.Value); err != nil {
			h.respondError(w, err)
			return
		}
	}

	saved, err := h.edit.Save(ctx, seed, nil)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, saved)
}

// HandleReplaceListingImage replaces the primary image: the old storage
// folder is emptied best-effort before the new upload lands.
func (h *Handler) HandleReplaceListingImage(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "ReplaceListingImage")
	defer span.End()

	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("listing.id", id))

	file, err := singleUpload(r, "image")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	seed, err := h.query.GetByID(ctx, id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	saved, err := h.edit.Save(ctx, seed, &file)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, saved)
}

func queryFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func queryInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}
