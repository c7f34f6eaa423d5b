package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// EmbeddedService binds the unauthenticated endpoints the telephony agent
// console uses. No bearer token is ever sent.
type EmbeddedService struct {
	client *Client
}

// PacienteLookup is the result of looking a patient up by identification.
type PacienteLookup struct {
	Found    bool      `json:"found"`
	Paciente *Paciente `json:"paciente,omitempty"`
	Casos    []Caso    `json:"casos"`
}

// LookupPaciente resolves a patient by identification. A missing patient is
// a normal branch: Found is false and no error is returned. Deployments
// answered this endpoint with two shapes over time, the {found, paciente,
// casos} envelope and a bare paciente object; both are accepted.
func (s *EmbeddedService) LookupPaciente(ctx context.Context, identificacion string) (*PacienteLookup, error) {
	path := "/embedded/paciente/" + url.PathEscape(identificacion)
	body, err := s.client.roundTrip(ctx, http.MethodGet, path, nil, nil, true)
	if err != nil {
		return nil, err
	}

	var lookup PacienteLookup
	if err := json.Unmarshal(body, &lookup); err != nil {
		return nil, fmt.Errorf("decode paciente lookup: %w", err)
	}
	if lookup.Paciente == nil && !lookup.Found {
		// Older shape: the paciente object itself.
		var paciente Paciente
		if err := json.Unmarshal(body, &paciente); err == nil && paciente.Identificacion != "" {
			lookup.Found = true
			lookup.Paciente = &paciente
		}
	}
	if lookup.Casos == nil {
		lookup.Casos = []Caso{}
	}
	return &lookup, nil
}

// HistorialPaciente returns the patient and their case history.
func (s *EmbeddedService) HistorialPaciente(ctx context.Context, identificacion string) (*Paciente, []Caso, error) {
	path := "/embedded/paciente/" + url.PathEscape(identificacion) + "/historial"

	var resp struct {
		Paciente *Paciente `json:"paciente"`
		Casos    []Caso    `json:"casos"`
	}
	if err := s.client.do(ctx, http.MethodGet, path, nil, nil, &resp, true); err != nil {
		return nil, nil, err
	}
	return resp.Paciente, resp.Casos, nil
}

// EmbeddedCasoRequest registers a case, or a follow-up call on an existing
// case, from the agent console.
type EmbeddedCasoRequest struct {
	Paciente            PacienteForm       `json:"paciente"`
	MotivoID            int64              `json:"motivo_id,omitempty"`
	Prioridad           string             `json:"prioridad,omitempty"`
	Estado              string             `json:"estado,omitempty"`
	Descripcion         string             `json:"descripcion"`
	NumeroCasoExistente string             `json:"numero_caso_existente,omitempty"`
	Omnileads           *OmnileadsMetadata `json:"omnileads,omitempty"`
}

// SubmitCaso sends the assembled intake. The patient is created when the
// identification is unknown; when NumeroCasoExistente is set the existing
// case is updated and the call attached to it.
func (s *EmbeddedService) SubmitCaso(ctx context.Context, req EmbeddedCasoRequest) (*Caso, error) {
	var caso Caso
	if err := s.client.do(ctx, http.MethodPost, "/embedded/caso", nil, req, &caso, true); err != nil {
		return nil, err
	}
	return &caso, nil
}
