package http

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/your-org/estate-admin/internal/listing/form"
)

const maxUploadMemory = 32 << 20 // 32 MiB

// Draft view types: staged bytes never leave the server, only preview
// tokens do.
type apartmentView struct {
	ID            string   `json:"_id"`
	Type          int      `json:"type"`
	Area          float64  `json:"area"`
	Price         float64  `json:"price"`
	Status        string   `json:"status"`
	Description   string   `json:"description"`
	ImagePreviews []string `json:"imagePreviews"`
}

type floorView struct {
	FloorNumber   int             `json:"floorNumber"`
	NumApartments int             `json:"numApartments"`
	Apartments    []apartmentView `json:"apartments"`
}

type draftView struct {
	TypeBuilding   string      `json:"typeBuilding"`
	BuildingStatus string      `json:"buildingStatus"`
	City           string      `json:"city"`
	Address        string      `json:"address"`
	Parking        string      `json:"parking"`
	Price          float64     `json:"price"`
	Description    string      `json:"description"`
	Apartments     int         `json:"apartments"`
	NumFloors      int         `json:"numFloors"`
	HauseRooms     int         `json:"hauseRooms"`
	HauseArea      float64     `json:"hauseArea"`
	ImagePreview   string      `json:"imagePreview,omitempty"`
	ImagePreviews  []string    `json:"imagePreviews"`
	Floors         []floorView `json:"floors"`
}

func toDraftView(d form.Draft) draftView {
	floors := make([]floorView, 0, len(d.Floors))
	for _, f := range d.Floors {
		apartments := make([]apartmentView, 0, len(f.Apartments))
		for _, a := range f.Apartments {
			previews := make([]string, 0, len(a.Staged))
			for _, s := range a.Staged {
				previews = append(previews, s.PreviewToken)
			}
			apartments = append(apartments, apartmentView{
				ID:            a.ID,
				Type:          a.RoomType,
				Area:          a.Area,
				Price:         a.Price,
				Status:        string(a.Status),
				Description:   a.Description,
				ImagePreviews: previews,
			})
		}
		floors = append(floors, floorView{
			FloorNumber:   f.FloorNumber,
			NumApartments: f.UnitCount,
			Apartments:    apartments,
		})
	}

	housePreviews := make([]string, 0, len(d.HouseImages))
	for _, s := range d.HouseImages {
		housePreviews = append(housePreviews, s.PreviewToken)
	}

	view := draftView{
		TypeBuilding:   string(d.Kind),
		BuildingStatus: string(d.Status),
		City:           d.City,
		Address:        d.Address,
		Parking:        string(d.Parking),
		Price:          d.Price,
		Description:    d.Description,
		Apartments:     d.UnitCount,
		NumFloors:      d.FloorCount,
		HauseRooms:     d.HouseRooms,
		HauseArea:      d.HouseArea,
		ImagePreviews:  housePreviews,
		Floors:         floors,
	}
	if d.Image != nil {
		view.ImagePreview = d.Image.PreviewToken
	}
	return view
}

func (h *Handler) HandleCreateDraft(w http.ResponseWriter, r *http.Request) {
	id := h.drafts.Create()
	h.respondJSON(w, http.StatusCreated, map[string]string{"draftId": id})
}

func (h *Handler) HandleGetDraft(w http.ResponseWriter, r *http.Request) {
	store, err := h.drafts.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toDraftView(store.Snapshot()))
}

func (h *Handler) HandleDiscardDraft(w http.ResponseWriter, r *http.Request) {
	h.drafts.Discard(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleResetDraft(w http.ResponseWriter, r *http.Request) {
	store, err := h.drafts.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	store.Reset()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleSetDraftField(w http.ResponseWriter, r *http.Request) {
	store, err := h.drafts.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req struct {
		Name  string      `json:"name"`
		Value interface{} `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := store.SetField(req.Name, req.Value); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleRegenerateFloors(w http.ResponseWriter, r *http.Request) {
	store, err := h.drafts.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := store.RegenerateFloors(req.Count); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toDraftView(store.Snapshot()))
}

func (h *Handler) HandleRegenerateApartments(w http.ResponseWriter, r *http.Request) {
	store, err := h.drafts.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	floorIndex, err := strconv.Atoi(chi.URLParam(r, "floor"))
	if err != nil {
		http.Error(w, "invalid floor index", http.StatusBadRequest)
		return
	}

	var req struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := store.RegenerateApartments(floorIndex, req.Count); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, toDraftView(store.Snapshot()))
}

func (h *Handler) HandleSetApartmentField(w http.ResponseWriter, r *http.Request) {
	store, err := h.drafts.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	floorIndex, apartmentIndex, err := nestedIndices(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req struct {
		Field string      `json:"field"`
		Value interface{} `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := store.SetApartmentField(floorIndex, apartmentIndex, req.Field, req.Value); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleStageBuildingImage(w http.ResponseWriter, r *http.Request) {
	store, err := h.drafts.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	file, err := singleUpload(r, "image")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	store.SetBuildingImage(file)
	h.respondJSON(w, http.StatusOK, map[string]string{"previewToken": file.PreviewToken})
}

func (h *Handler) HandleStageHouseImages(w http.ResponseWriter, r *http.Request) {
	store, err := h.drafts.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	files, err := multiUpload(r, "images")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	store.SetHouseImages(files)
	h.respondJSON(w, http.StatusOK, map[string][]string{"previewTokens": previewTokens(files)})
}

func (h *Handler) HandleStageApartmentImages(w http.ResponseWriter, r *http.Request) {
	store, err := h.drafts.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	floorIndex, apartmentIndex, err := nestedIndices(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	files, err := multiUpload(r, "images")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := store.SetApartmentImages(floorIndex, apartmentIndex, files); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string][]string{"previewTokens": previewTokens(files)})
}

func (h *Handler) HandleGetPreview(w http.ResponseWriter, r *http.Request) {
	store, err := h.drafts.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	file, err := store.FindPreview(chi.URLParam(r, "token"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(file.Data))
	w.Write(file.Data)
}

func (h *Handler) HandleSubmitDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "SubmitDraft")
	defer span.End()

	draftID := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("draft.id", draftID))

	store, err := h.drafts.Get(draftID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	listing, err := h.submit.Submit(ctx, store)
	if err != nil {
		h.respondError(w, err)
		return
	}

	span.SetAttributes(attribute.String("listing.id", listing.ID))
	h.respondJSON(w, http.StatusCreated, listing)
}

// nestedIndices parses the {floor}/{apartment} path segments.
func nestedIndices(r *http.Request) (int, int, error) {
	floorIndex, err := strconv.Atoi(chi.URLParam(r, "floor"))
	if err != nil {
		return 0, 0, errInvalidIndex("floor")
	}
	apartmentIndex, err := strconv.Atoi(chi.URLParam(r, "apartment"))
	if err != nil {
		return 0, 0, errInvalidIndex("apartment")
	}
	return floorIndex, apartmentIndex, nil
}

type errInvalidIndex string

func (e errInvalidIndex) Error() string { return "invalid " + string(e) + " index" }

func singleUpload(r *http.Request, field string) (form.StagedFile, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return form.StagedFile{}, err
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return form.StagedFile{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return form.StagedFile{}, err
	}
	return form.StageFile(header.Filename, data), nil
}

func multiUpload(r *http.Request, field string) ([]form.StagedFile, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, err
	}

	headers := r.MultipartForm.File[field]
	files := make([]form.StagedFile, 0, len(headers))
	for _, header := range headers {
		data, err := readUpload(header)
		if err != nil {
			return nil, err
		}
		files = append(files, form.StageFile(header.Filename, data))
	}
	return files, nil
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func previewTokens(files []form.StagedFile) []string {
	tokens := make([]string, 0, len(files))
	for _, f := range files {
		tokens = append(tokens, f.PreviewToken)
	}
	return tokens
}
