package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.opentelemetry.io/otel"

	"github.com/your-org/estate-admin/internal/listing/domain"
	"github.com/your-org/estate-admin/internal/listing/usecase"
	"github.com/your-org/estate-admin/internal/platform/logger"
)

var tracer = otel.Tracer("estate-admin/http-handler")

// Handler exposes the admin panel operations over HTTP.
type Handler struct {
	drafts *usecase.DraftUsecase
	submit *usecase.SubmitUsecase
	query  *usecase.QueryUsecase
	edit   *usecase.EditUsecase
	logger *logger.Logger
}

func NewHandler(
	drafts *usecase.DraftUsecase,
	submit *usecase.SubmitUsecase,
	query *usecase.QueryUsecase,
	edit *usecase.EditUsecase,
	log *logger.Logger,
) *Handler {
	return &Handler{
		drafts: drafts,
		submit: submit,
		query:  query,
		edit:   edit,
		logger: log,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err.Error())
	}
}

// respondError maps domain errors onto user-visible HTTP error states
// instead of burying failures in diagnostics.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrListingNotFound),
		errors.Is(err, domain.ErrDraftNotFound),
		errors.Is(err, domain.ErrPreviewNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidCount),
		errors.Is(err, domain.ErrIndexOutOfRange),
		errors.Is(err, domain.ErrUnknownField),
		errors.Is(err, domain.ErrInvalidFieldType):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "error", err.Error())
	}
	h.respondJSON(w, status, errorResponse{Error: err.Error()})
}
