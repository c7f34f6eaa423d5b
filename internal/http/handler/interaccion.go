package handler

import (
	"net/http"
	"strconv"

	"pqr-api/internal/domain"
	"pqr-api/internal/http/httperr"
	"pqr-api/internal/observability/logger"
	"pqr-api/internal/service"
)

type InteraccionHandler struct {
	service *service.InteraccionService
}

func NewInteraccionHandler(service *service.InteraccionService) *InteraccionHandler {
	return &InteraccionHandler{service: service}
}

// List handles GET /api/interacciones?caso_id
func (h *InteraccionHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	casoID, err := strconv.ParseInt(r.URL.Query().Get("caso_id"), 10, 64)
	if err != nil || casoID <= 0 {
		httperr.BadRequest400(w, ctx, httperr.ErrCodeInvalidParameter, "caso_id must be a positive integer")
		return
	}

	interacciones, err := h.service.ListByCaso(ctx, casoID)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, interacciones)
}

// Create handles POST /api/interacciones
func (h *InteraccionHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	var req domain.CreateInteraccionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		validationError(w, ctx, err)
		return
	}

	interaccion, err := h.service.Create(ctx, &req)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusCreated, interaccion)
}
