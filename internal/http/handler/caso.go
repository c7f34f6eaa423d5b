package handler

import (
	"net/http"
	"strconv"
	"time"

	"pqr-api/internal/auth"
	"pqr-api/internal/domain"
	"pqr-api/internal/http/httperr"
	"pqr-api/internal/observability/logger"
	"pqr-api/internal/service"

	"go.uber.org/zap"
)

type CasoHandler struct {
	service *service.CasoService
}

func NewCasoHandler(service *service.CasoService) *CasoHandler {
	return &CasoHandler{service: service}
}

// List handles GET /api/casos
func (h *CasoHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	params, ok := parseListCasosParams(w, r)
	if !ok {
		return
	}

	casos, err := h.service.List(ctx, params)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, casos)
}

// Create handles POST /api/casos
func (h *CasoHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	actor, ok := auth.GetUsuario(ctx)
	if !ok {
		httperr.Unauthorized401(w, ctx, httperr.ErrCodeInvalidToken, "authentication required")
		return
	}

	var req domain.CreateCasoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		validationError(w, ctx, err)
		return
	}

	caso, err := h.service.Create(ctx, &req, actor)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	log.Info(ctx, "caso radicado",
		logger.Module("caso"), logger.Action("create"),
		zap.String("numero_caso", caso.NumeroCaso))

	writeJSON(w, http.StatusCreated, caso)
}

// Get handles GET /api/casos/{id}
func (h *CasoHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	detalle, err := h.service.GetByID(ctx, id)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, detalle)
}

// Update handles PUT /api/casos/{id}
func (h *CasoHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req domain.UpdateCasoRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		validationError(w, ctx, err)
		return
	}

	caso, err := h.service.Update(ctx, id, &req, actor)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, caso)
}

func parseListCasosParams(w http.ResponseWriter, r *http.Request) (domain.ListCasosParams, bool) {
	ctx := r.Context()
	q := r.URL.Query()
	params := domain.ListCasosParams{Limit: 100}

	if v := q.Get("numero_caso"); v != "" {
		params.NumeroCaso = &v
	}
	if v := q.Get("estado"); v != "" {
		estado := domain.EstadoCaso(v)
		if !estado.IsValid() {
			httperr.BadRequest400(w, ctx, httperr.ErrCodeInvalidStatus, "invalid estado")
			return params, false
		}
		params.Estado = &estado
	}
	if v := q.Get("prioridad"); v != "" {
		prioridad := domain.Prioridad(v)
		if !prioridad.IsValid() {
			httperr.BadRequest400(w, ctx, httperr.ErrCodeInvalidPriority, "invalid prioridad")
			return params, false
		}
		params.Prioridad = &prioridad
	}
	if v := q.Get("motivo_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			httperr.BadRequest400(w, ctx, httperr.ErrCodeInvalidParameter, "motivo_id must be a positive integer")
			return params, false
		}
		params.MotivoID = &id
	}
	if v := q.Get("agente_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			httperr.BadRequest400(w, ctx, httperr.ErrCodeInvalidParameter, "agente_id must be a positive integer")
			return params, false
		}
		params.AgenteID = &id
	}
	if v := q.Get("paciente_identificacion"); v != "" {
		params.PacienteIdentificacion = &v
	}
	if v := q.Get("fecha_desde"); v != "" {
		t, err := parseFecha(v)
		if err != nil {
			httperr.BadRequest400(w, ctx, httperr.ErrCodeInvalidFormat, "fecha_desde must be a date or RFC3339 timestamp")
			return params, false
		}
		params.FechaDesde = &t
	}
	if v := q.Get("fecha_hasta"); v != "" {
		t, err := parseFecha(v)
		if err != nil {
			httperr.BadRequest400(w, ctx, httperr.ErrCodeInvalidFormat, "fecha_hasta must be a date or RFC3339 timestamp")
			return params, false
		}
		params.FechaHasta = &t
	}
	if v := q.Get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			httperr.BadRequest400(w, ctx, httperr.ErrCodeInvalidParameter, "skip must be a non-negative integer")
			return params, false
		}
		params.Skip = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 1000 {
			httperr.BadRequest400(w, ctx, httperr.ErrCodeInvalidLimit, "limit must be between 1 and 1000")
			return params, false
		}
		params.Limit = n
	}

	return params, true
}

func parseFecha(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
