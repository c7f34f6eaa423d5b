package handler

import (
	"net/http"
	"strconv"
	"time"

	"pqr-api/internal/domain"
	"pqr-api/internal/http/httperr"
	"pqr-api/internal/observability/logger"
	"pqr-api/internal/service"
)

type MetricasHandler struct {
	service *service.MetricasService
}

func NewMetricasHandler(service *service.MetricasService) *MetricasHandler {
	return &MetricasHandler{service: service}
}

// Dashboard handles GET /api/metricas/dashboard
func (h *MetricasHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	metrics, err := h.service.Dashboard(ctx)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}

// CasosPorHora handles GET /api/metricas/casos-por-hora?fecha
func (h *MetricasHandler) CasosPorHora(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	fecha := time.Now().UTC()
	if v := r.URL.Query().Get("fecha"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			httperr.BadRequest400(w, ctx, httperr.ErrCodeInvalidFormat, "fecha must be YYYY-MM-DD")
			return
		}
		fecha = parsed
	}

	result, err := h.service.CasosPorHora(ctx, fecha)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// CasosPorMotivo handles GET /api/metricas/casos-por-motivo?inicio&fin
func (h *MetricasHandler) CasosPorMotivo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	rango, ok := parseRango(w, r)
	if !ok {
		return
	}

	result, err := h.service.CasosPorMotivo(ctx, rango)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// DesempenoAgentes handles GET /api/metricas/desempeno-agentes?inicio&fin
func (h *MetricasHandler) DesempenoAgentes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	rango, ok := parseRango(w, r)
	if !ok {
		return
	}

	result, err := h.service.DesempenoAgentes(ctx, rango)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// TiempoResolucion handles GET /api/metricas/tiempo-resolucion?inicio&fin
func (h *MetricasHandler) TiempoResolucion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	rango, ok := parseRango(w, r)
	if !ok {
		return
	}

	result, err := h.service.TiempoResolucion(ctx, rango)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// TendenciaHistorica handles GET /api/metricas/tendencia-historica?dias
func (h *MetricasHandler) TendenciaHistorica(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	dias := 30
	if v := r.URL.Query().Get("dias"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 365 {
			httperr.BadRequest400(w, ctx, httperr.ErrCodeInvalidParameter, "dias must be between 1 and 365")
			return
		}
		dias = n
	}

	fin := time.Now().UTC()
	rango := domain.RangoFechas{
		Inicio: fin.AddDate(0, 0, -(dias - 1)),
		Fin:    fin,
	}

	result, err := h.service.TendenciaHistorica(ctx, rango)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// parseRango reads the inclusive inicio/fin date range from the query. Fin
// is extended to the end of its day.
func parseRango(w http.ResponseWriter, r *http.Request) (domain.RangoFechas, bool) {
	ctx := r.Context()
	var rango domain.RangoFechas

	inicio := r.URL.Query().Get("inicio")
	fin := r.URL.Query().Get("fin")
	if inicio == "" || fin == "" {
		httperr.BadRequest400(w, ctx, httperr.ErrCodeMissingParameter, "inicio and fin are required")
		return rango, false
	}

	inicioT, err := parseFecha(inicio)
	if err != nil {
		httperr.BadRequest400(w, ctx, httperr.ErrCodeInvalidFormat, "inicio must be a date or RFC3339 timestamp")
		return rango, false
	}
	finT, err := parseFecha(fin)
	if err != nil {
		httperr.BadRequest400(w, ctx, httperr.ErrCodeInvalidFormat, "fin must be a date or RFC3339 timestamp")
		return rango, false
	}
	if finT.Before(inicioT) {
		httperr.BadRequest400(w, ctx, httperr.ErrCodeInvalidParameter, "fin must not be before inicio")
		return rango, false
	}

	if len(fin) == len("2006-01-02") {
		finT = finT.Add(24*time.Hour - time.Nanosecond)
	}

	rango.Inicio = inicioT
	rango.Fin = finT
	return rango, true
}
