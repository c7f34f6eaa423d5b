package handler

import (
	"net/http"
	"strconv"

	"pqr-api/internal/auth"
	"pqr-api/internal/domain"
	"pqr-api/internal/http/httperr"
	"pqr-api/internal/observability/logger"
	"pqr-api/internal/service"
)

type PacienteHandler struct {
	service *service.PacienteService
}

func NewPacienteHandler(service *service.PacienteService) *PacienteHandler {
	return &PacienteHandler{service: service}
}

// List handles GET /api/pacientes
func (h *PacienteHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)
	q := r.URL.Query()

	params := domain.ListPacientesParams{Limit: 100}
	if v := q.Get("identificacion"); v != "" {
		params.Identificacion = &v
	}
	if v := q.Get("nombre"); v != "" {
		params.Nombre = &v
	}
	if v := q.Get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			httperr.BadRequest400(w, ctx, httperr.ErrCodeInvalidParameter, "skip must be a non-negative integer")
			return
		}
		params.Skip = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 1000 {
			httperr.BadRequest400(w, ctx, httperr.ErrCodeInvalidLimit, "limit must be between 1 and 1000")
			return
		}
		params.Limit = n
	}

	pacientes, err := h.service.List(ctx, params)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, pacientes)
}

// Create handles POST /api/pacientes
func (h *PacienteHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	actor, _ := auth.GetUsuario(ctx)

	var req domain.CreatePacienteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		validationError(w, ctx, err)
		return
	}

	paciente, err := h.service.Create(ctx, &req, actor)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusCreated, paciente)
}

// Get handles GET /api/pacientes/{id}
func (h *PacienteHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	paciente, err := h.service.GetByID(ctx, id)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, paciente)
}

// Update handles PUT /api/pacientes/{id}
func (h *PacienteHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	actor, ok := auth.GetUsuario(ctx)
	if !ok {
		httperr.Unauthorized401(w, ctx, httperr.ErrCodeInvalidToken, "authentication required")
		return
	}

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdatePacienteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		validationError(w, ctx, err)
		return
	}

	paciente, err := h.service.Update(ctx, id, &req, actor)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, paciente)
}

// Casos handles GET /api/pacientes/{id}/casos
func (h *PacienteHandler) Casos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	casos, err := h.service.Casos(ctx, id)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, casos)
}
