package handler

import (
	"net/http"

	"pqr-api/internal/domain"
	"pqr-api/internal/observability/logger"
	"pqr-api/internal/service"
)

// UsuarioHandler serves the admin only user management endpoints
type UsuarioHandler struct {
	service *service.UsuarioService
}

func NewUsuarioHandler(service *service.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{service: service}
}

// List handles GET /api/usuarios
func (h *UsuarioHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	usuarios, err := h.service.List(ctx)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, usuarios)
}

// Create handles POST /api/usuarios
func (h *UsuarioHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	var req domain.CreateUsuarioRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		validationError(w, ctx, err)
		return
	}

	usuario, err := h.service.Create(ctx, &req)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusCreated, usuario)
}

// Update handles PUT /api/usuarios/{id}
func (h *UsuarioHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateUsuarioRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		validationError(w, ctx, err)
		return
	}

	usuario, err := h.service.Update(ctx, id, &req)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, usuario)
}
