package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/your-org/estate-admin/internal/adapter/http/middleware"
	"github.com/your-org/estate-admin/internal/platform/logger"
)

// NewRouter wires every admin panel route. Everything except the health
// check sits behind the allow-list-of-one JWT middleware.
func NewRouter(h *Handler, jwtSecret, adminUID string, log *logger.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(log))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(jwtSecret, adminUID, log))

		// Draft lifecycle: the add form.
		r.Post("/api/drafts", h.HandleCreateDraft)
		r.Get("/api/drafts/{id}", h.HandleGetDraft)
		r.Delete("/api/drafts/{id}", h.HandleDiscardDraft)
		r.Post("/api/drafts/{id}/reset", h.HandleResetDraft)
		r.Patch("/api/drafts/{id}/fields", h.HandleSetDraftField)
		r.Put("/api/drafts/{id}/floors", h.HandleRegenerateFloors)
		r.Put("/api/drafts/{id}/floors/{floor}/apartments", h.HandleRegenerateApartments)
		r.Patch("/api/drafts/{id}/floors/{floor}/apartments/{apartment}", h.HandleSetApartmentField)
		r.Post("/api/drafts/{id}/image", h.HandleStageBuildingImage)
		r.Post("/api/drafts/{id}/house-images", h.HandleStageHouseImages)
		r.Post("/api/drafts/{id}/floors/{floor}/apartments/{apartment}/images", h.HandleStageApartmentImages)
		r.Get("/api/drafts/{id}/previews/{token}", h.HandleGetPreview)
		r.Post("/api/drafts/{id}/submit", h.HandleSubmitDraft)

		// Listing overview and editing.
		r.Get("/api/listings", h.HandleSearchListings)
		r.Get("/api/listings/{id}", h.HandleGetListing)
		r.Delete("/api/listings/{id}", h.HandleDeleteListing)
		r.Patch("/api/listings/{id}", h.HandlePatchListing)
		r.Put("/api/listings/{id}/image", h.HandleReplaceListingImage)
	})

	return r
}
