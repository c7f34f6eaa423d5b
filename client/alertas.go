package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// AlertasService reads and acknowledges case alerts.
type AlertasService struct {
	client *Client
}

// ListAlertasParams filter the alert listing.
type ListAlertasParams struct {
	Leida *bool
	Tipo  string
}

func (p ListAlertasParams) query() url.Values {
	q := url.Values{}
	if p.Leida != nil {
		q.Set("leida", strconv.FormatBool(*p.Leida))
	}
	if p.Tipo != "" {
		q.Set("tipo", p.Tipo)
	}
	return q
}

// List returns alerts, newest first.
func (s *AlertasService) List(ctx context.Context, params ListAlertasParams) ([]Alerta, error) {
	var alertas []Alerta
	if err := s.client.do(ctx, http.MethodGet, "/alertas", params.query(), nil, &alertas, false); err != nil {
		return nil, err
	}
	return alertas, nil
}

// MarcarLeida acknowledges one alert for the authenticated operator.
func (s *AlertasService) MarcarLeida(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/alertas/%d/marcar-leida", id)
	return s.client.do(ctx, http.MethodPut, path, nil, nil, nil, false)
}

// InteraccionesService manages call interactions of cases.
type InteraccionesService struct {
	client *Client
}

// ListByCaso returns the interactions of one case in registration order.
func (s *InteraccionesService) ListByCaso(ctx context.Context, casoID int64) ([]Interaccion, error) {
	q := url.Values{}
	q.Set("caso_id", strconv.FormatInt(casoID, 10))
	var interacciones []Interaccion
	if err := s.client.do(ctx, http.MethodGet, "/interacciones", q, nil, &interacciones, false); err != nil {
		return nil, err
	}
	return interacciones, nil
}

// CreateInteraccionRequest attaches a call to a case.
type CreateInteraccionRequest struct {
	CasoID                int64      `json:"caso_id"`
	OmnileadsCallID       *string    `json:"omnileads_call_id,omitempty"`
	OmnileadsCampaignID   *string    `json:"omnileads_campaign_id,omitempty"`
	OmnileadsCampaignName *string    `json:"omnileads_campaign_name,omitempty"`
	OmnileadsCampaignType *string    `json:"omnileads_campaign_type,omitempty"`
	AgentID               *string    `json:"agent_id,omitempty"`
	AgentUsername         *string    `json:"agent_username,omitempty"`
	AgentName             *string    `json:"agent_name,omitempty"`
	TelefonoContacto      *string    `json:"telefono_contacto,omitempty"`
	DatetimeLlamada       *time.Time `json:"datetime_llamada,omitempty"`
	RecFilename           *string    `json:"rec_filename,omitempty"`
	Observaciones         *string    `json:"observaciones,omitempty"`
}

// Create attaches a call interaction to a case.
func (s *InteraccionesService) Create(ctx context.Context, req CreateInteraccionRequest) (*Interaccion, error) {
	var interaccion Interaccion
	if err := s.client.do(ctx, http.MethodPost, "/interacciones", nil, req, &interaccion, false); err != nil {
		return nil, err
	}
	return &interaccion, nil
}
