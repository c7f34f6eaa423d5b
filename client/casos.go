package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"pqr-api/timeline"
)

// CasosService manages PQR cases.
type CasosService struct {
	client *Client
}

// ListCasosParams filter the case listing. Zero values are omitted.
type ListCasosParams struct {
	NumeroCaso             string
	Estado                 string
	Prioridad              string
	MotivoID               int64
	PacienteIdentificacion string
	AgenteID               int64
	FechaDesde             *time.Time
	FechaHasta             *time.Time
	Skip                   int
	Limit                  int
}

func (p ListCasosParams) query() url.Values {
	q := url.Values{}
	if p.NumeroCaso != "" {
		q.Set("numero_caso", p.NumeroCaso)
	}
	if p.Estado != "" {
		q.Set("estado", p.Estado)
	}
	if p.Prioridad != "" {
		q.Set("prioridad", p.Prioridad)
	}
	if p.MotivoID > 0 {
		q.Set("motivo_id", strconv.FormatInt(p.MotivoID, 10))
	}
	if p.PacienteIdentificacion != "" {
		q.Set("paciente_identificacion", p.PacienteIdentificacion)
	}
	if p.AgenteID > 0 {
		q.Set("agente_id", strconv.FormatInt(p.AgenteID, 10))
	}
	if p.FechaDesde != nil {
		q.Set("fecha_desde", p.FechaDesde.Format("2006-01-02"))
	}
	if p.FechaHasta != nil {
		q.Set("fecha_hasta", p.FechaHasta.Format("2006-01-02"))
	}
	if p.Skip > 0 {
		q.Set("skip", strconv.Itoa(p.Skip))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

// List returns cases matching the filters, newest first.
func (s *CasosService) List(ctx context.Context, params ListCasosParams) ([]Caso, error) {
	var casos []Caso
	if err := s.client.do(ctx, http.MethodGet, "/casos", params.query(), nil, &casos, false); err != nil {
		return nil, err
	}
	return casos, nil
}

// CreateCasoRequest opens a new case for an existing patient.
type CreateCasoRequest struct {
	PacienteID       int64  `json:"paciente_id"`
	MotivoID         int64  `json:"motivo_id"`
	Prioridad        string `json:"prioridad,omitempty"`
	Estado           string `json:"estado,omitempty"`
	Descripcion      string `json:"descripcion"`
	AgenteAsignadoID *int64 `json:"agente_asignado_id,omitempty"`
}

// Create opens a case. The server assigns numero_caso.
func (s *CasosService) Create(ctx context.Context, req CreateCasoRequest) (*Caso, error) {
	var caso Caso
	if err := s.client.do(ctx, http.MethodPost, "/casos", nil, req, &caso, false); err != nil {
		return nil, err
	}
	return &caso, nil
}

// Get returns the full case detail, timeline collections included.
func (s *CasosService) Get(ctx context.Context, id int64) (*CasoDetalle, error) {
	var detalle CasoDetalle
	path := fmt.Sprintf("/casos/%d", id)
	if err := s.client.do(ctx, http.MethodGet, path, nil, nil, &detalle, false); err != nil {
		return nil, err
	}
	return &detalle, nil
}

// UpdateCasoRequest is a partial case update. Nil fields keep the current
// value; a present AgenteAsignadoID of null unassigns the case.
type UpdateCasoRequest struct {
	Estado           *string `json:"estado,omitempty"`
	Prioridad        *string `json:"prioridad,omitempty"`
	AgenteAsignadoID *int64  `json:"agente_asignado_id,omitempty"`
	Descripcion      *string `json:"descripcion,omitempty"`
	Comentario       string  `json:"comentario,omitempty"`
}

// Update applies a partial update to a case.
func (s *CasosService) Update(ctx context.Context, id int64, req UpdateCasoRequest) (*Caso, error) {
	var caso Caso
	path := fmt.Sprintf("/casos/%d", id)
	if err := s.client.do(ctx, http.MethodPut, path, nil, req, &caso, false); err != nil {
		return nil, err
	}
	return &caso, nil
}

// Timeline merges the detail's eventos and interacciones into the unified
// activity feed, most recent first.
func (d *CasoDetalle) Timeline() []timeline.Entry {
	eventos := make([]timeline.Evento, 0, len(d.HistorialEventos))
	for _, ev := range d.HistorialEventos {
		eventos = append(eventos, timeline.Evento{
			TipoEvento:    ev.TipoEvento,
			ValorAnterior: deref(ev.ValorAnterior),
			ValorNuevo:    deref(ev.ValorNuevo),
			Usuario:       ev.Usuario,
			Comentario:    deref(ev.Comentario),
			FechaEvento:   ev.FechaEvento.Format(time.RFC3339Nano),
		})
	}

	interacciones := make([]timeline.Interaccion, 0, len(d.Interacciones))
	for _, in := range d.Interacciones {
		interacciones = append(interacciones, timeline.Interaccion{
			AgentName:        deref(in.AgentName),
			TelefonoContacto: deref(in.TelefonoContacto),
			Observaciones:    deref(in.Observaciones),
			CampaignName:     deref(in.OmnileadsCampaignName),
			FechaRegistro:    in.FechaRegistro.Format(time.RFC3339Nano),
		})
	}

	return timeline.Build(eventos, interacciones)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
