package handler

import (
	"net/http"
	"strconv"

	"pqr-api/internal/domain"
	"pqr-api/internal/http/httperr"
	"pqr-api/internal/observability/logger"
	"pqr-api/internal/service"
)

type MotivoHandler struct {
	service *service.MotivoService
}

func NewMotivoHandler(service *service.MotivoService) *MotivoHandler {
	return &MotivoHandler{service: service}
}

// List handles GET /api/motivos?activo
func (h *MotivoHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	var activo *bool
	if v := r.URL.Query().Get("activo"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			httperr.BadRequest400(w, ctx, httperr.ErrCodeInvalidParameter, "activo must be a boolean")
			return
		}
		activo = &b
	}

	motivos, err := h.service.List(ctx, activo)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, motivos)
}

// Create handles POST /api/motivos (admin only)
func (h *MotivoHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	var req domain.MotivoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		validationError(w, ctx, err)
		return
	}

	motivo, err := h.service.Create(ctx, &req)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusCreated, motivo)
}

// Update handles PUT /api/motivos/{id} (admin only)
func (h *MotivoHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req domain.MotivoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		validationError(w, ctx, err)
		return
	}

	motivo, err := h.service.Update(ctx, id, &req)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, motivo)
}
