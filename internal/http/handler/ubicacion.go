package handler

import (
	"net/http"
	"strconv"

	"pqr-api/internal/http/httperr"
	"pqr-api/internal/observability/logger"
	"pqr-api/internal/repo"
)

// UbicacionHandler serves the read only location catalogs
type UbicacionHandler struct {
	repo *repo.UbicacionRepo
}

func NewUbicacionHandler(repo *repo.UbicacionRepo) *UbicacionHandler {
	return &UbicacionHandler{repo: repo}
}

// Departamentos handles GET /api/ubicaciones/departamentos
func (h *UbicacionHandler) Departamentos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	departamentos, err := h.repo.ListDepartamentos(ctx)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, departamentos)
}

// Ciudades handles GET /api/ubicaciones/ciudades?departamento_id
func (h *UbicacionHandler) Ciudades(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	departamentoID, err := strconv.ParseInt(r.URL.Query().Get("departamento_id"), 10, 64)
	if err != nil || departamentoID <= 0 {
		httperr.BadRequest400(w, ctx, httperr.ErrCodeInvalidParameter, "departamento_id must be a positive integer")
		return
	}

	ciudades, err := h.repo.ListCiudades(ctx, departamentoID)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, ciudades)
}
