package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// PacientesService manages patients.
type PacientesService struct {
	client *Client
}

// ListPacientesParams filter the patient listing.
type ListPacientesParams struct {
	Identificacion string
	Nombre         string
	Skip           int
	Limit          int
}

func (p ListPacientesParams) query() url.Values {
	q := url.Values{}
	if p.Identificacion != "" {
		q.Set("identificacion", p.Identificacion)
	}
	if p.Nombre != "" {
		q.Set("nombre", p.Nombre)
	}
	if p.Skip > 0 {
		q.Set("skip", strconv.Itoa(p.Skip))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

// List returns patients matching the filters.
func (s *PacientesService) List(ctx context.Context, params ListPacientesParams) ([]Paciente, error) {
	var pacientes []Paciente
	if err := s.client.do(ctx, http.MethodGet, "/pacientes", params.query(), nil, &pacientes, false); err != nil {
		return nil, err
	}
	return pacientes, nil
}

// Create registers a patient.
func (s *PacientesService) Create(ctx context.Context, form PacienteForm) (*Paciente, error) {
	var paciente Paciente
	if err := s.client.do(ctx, http.MethodPost, "/pacientes", nil, form, &paciente, false); err != nil {
		return nil, err
	}
	return &paciente, nil
}

// Get returns one patient.
func (s *PacientesService) Get(ctx context.Context, id int64) (*Paciente, error) {
	var paciente Paciente
	path := fmt.Sprintf("/pacientes/%d", id)
	if err := s.client.do(ctx, http.MethodGet, path, nil, nil, &paciente, false); err != nil {
		return nil, err
	}
	return &paciente, nil
}

// UpdatePacienteRequest is a partial patient update.
type UpdatePacienteRequest struct {
	Nombre       *string `json:"nombre,omitempty"`
	Apellidos    *string `json:"apellidos,omitempty"`
	Celular      *string `json:"celular,omitempty"`
	Direccion    *string `json:"direccion,omitempty"`
	Departamento *string `json:"departamento,omitempty"`
	Ciudad       *string `json:"ciudad,omitempty"`
}

// Update applies a partial update to a patient.
func (s *PacientesService) Update(ctx context.Context, id int64, req UpdatePacienteRequest) (*Paciente, error) {
	var paciente Paciente
	path := fmt.Sprintf("/pacientes/%d", id)
	if err := s.client.do(ctx, http.MethodPut, path, nil, req, &paciente, false); err != nil {
		return nil, err
	}
	return &paciente, nil
}

// Casos returns the patient's cases, newest first.
func (s *PacientesService) Casos(ctx context.Context, id int64) ([]Caso, error) {
	var casos []Caso
	path := fmt.Sprintf("/pacientes/%d/casos", id)
	if err := s.client.do(ctx, http.MethodGet, path, nil, nil, &casos, false); err != nil {
		return nil, err
	}
	return casos, nil
}
