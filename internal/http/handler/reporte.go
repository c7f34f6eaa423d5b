package handler

import (
	"net/http"

	"pqr-api/internal/domain"
	"pqr-api/internal/observability/logger"
	"pqr-api/internal/service"

	"go.uber.org/zap"
)

type ReporteHandler struct {
	service *service.ReporteService
}

func NewReporteHandler(service *service.ReporteService) *ReporteHandler {
	return &ReporteHandler{service: service}
}

// Generar handles POST /api/reportes/generar and streams the rendered file
func (h *ReporteHandler) Generar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	var req domain.GenerarReporteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		validationError(w, ctx, err)
		return
	}

	reporte, err := h.service.Generar(ctx, &req)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	log.Info(ctx, "report download",
		logger.Module("reporte"), logger.Action("generar"),
		zap.String("filename", reporte.Filename))

	w.Header().Set("Content-Type", reporte.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+reporte.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(reporte.Data)
}
