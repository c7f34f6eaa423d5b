package handler

import (
	"net/http"
	"strings"

	"pqr-api/internal/domain"
	"pqr-api/internal/http/httperr"
	"pqr-api/internal/observability/logger"
	"pqr-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EmbeddedHandler serves the unauthenticated intake view endpoints
type EmbeddedHandler struct {
	service *service.EmbeddedService
}

func NewEmbeddedHandler(service *service.EmbeddedService) *EmbeddedHandler {
	return &EmbeddedHandler{service: service}
}

// LookupPaciente handles GET /api/embedded/paciente/{identificacion}
func (h *EmbeddedHandler) LookupPaciente(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	identificacion := strings.TrimSpace(chi.URLParam(r, "identificacion"))
	if identificacion == "" {
		httperr.BadRequest400(w, ctx, httperr.ErrCodeMissingParameter, "identificacion is required")
		return
	}

	lookup, err := h.service.LookupPaciente(ctx, identificacion)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, lookup)
}

// Historial handles GET /api/embedded/paciente/{identificacion}/historial
func (h *EmbeddedHandler) Historial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	identificacion := strings.TrimSpace(chi.URLParam(r, "identificacion"))
	if identificacion == "" {
		httperr.BadRequest400(w, ctx, httperr.ErrCodeMissingParameter, "identificacion is required")
		return
	}

	historial, err := h.service.HistorialPaciente(ctx, identificacion)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, historial)
}

// SubmitCaso handles POST /api/embedded/caso
func (h *EmbeddedHandler) SubmitCaso(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	var req domain.EmbeddedCasoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		validationError(w, ctx, err)
		return
	}

	caso, err := h.service.SubmitCaso(ctx, &req)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	log.Info(ctx, "embedded intake processed",
		logger.Module("embedded"), logger.Action("submit_caso"),
		zap.String("numero_caso", caso.NumeroCaso))

	writeJSON(w, http.StatusCreated, caso)
}
