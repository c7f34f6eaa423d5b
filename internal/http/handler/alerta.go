package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"pqr-api/internal/auth"
	"pqr-api/internal/domain"
	"pqr-api/internal/http/httperr"
	"pqr-api/internal/observability/logger"
	"pqr-api/internal/service"
)

type AlertaHandler struct {
	service *service.AlertaService
}

func NewAlertaHandler(service *service.AlertaService) *AlertaHandler {
	return &AlertaHandler{service: service}
}

// List handles GET /api/alertas?leida&tipo
func (h *AlertaHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)
	q := r.URL.Query()

	params := domain.ListAlertasParams{}
	if v := q.Get("leida"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			httperr.BadRequest400(w, ctx, httperr.ErrCodeInvalidParameter, "leida must be a boolean")
			return
		}
		params.Leida = &b
	}
	if v := q.Get("tipo"); v != "" {
		tipo := domain.TipoAlerta(v)
		if !tipo.IsValid() {
			httperr.BadRequest400(w, ctx, httperr.ErrCodeInvalidType, "invalid tipo_alerta")
			return
		}
		params.Tipo = &tipo
	}

	alertas, err := h.service.List(ctx, params)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, alertas)
}

// MarcarLeida handles PUT /api/alertas/{id}/marcar-leida
func (h *AlertaHandler) MarcarLeida(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.MarcarLeida(ctx, id, actor); err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, mensaje{Message: "Alerta marcada como leída"})
}

// VerificarSLA handles POST /api/alertas/verificar-sla. The telephony
// platform scheduler calls it without credentials.
func (h *AlertaHandler) VerificarSLA(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	revisados, err := h.service.VerificarSLA(ctx)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, mensaje{Message: fmt.Sprintf("Se verificaron %d casos", revisados)})
}
