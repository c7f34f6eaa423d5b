package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// MotivosService manages the case reason catalog. Mutations need an
// administrator token.
type MotivosService struct {
	client *Client
}

// List returns motives; activo filters by the active flag when non-nil.
func (s *MotivosService) List(ctx context.Context, activo *bool) ([]Motivo, error) {
	q := url.Values{}
	if activo != nil {
		q.Set("activo", strconv.FormatBool(*activo))
	}
	var motivos []Motivo
	if err := s.client.do(ctx, http.MethodGet, "/motivos", q, nil, &motivos, false); err != nil {
		return nil, err
	}
	return motivos, nil
}

// MotivoRequest creates or updates a motive.
type MotivoRequest struct {
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion,omitempty"`
	Orden       int     `json:"orden"`
	Activo      *bool   `json:"activo,omitempty"`
}

// Create adds a motive to the catalog.
func (s *MotivosService) Create(ctx context.Context, req MotivoRequest) (*Motivo, error) {
	var motivo Motivo
	if err := s.client.do(ctx, http.MethodPost, "/motivos", nil, req, &motivo, false); err != nil {
		return nil, err
	}
	return &motivo, nil
}

// Update modifies a motive.
func (s *MotivosService) Update(ctx context.Context, id int64, req MotivoRequest) (*Motivo, error) {
	var motivo Motivo
	path := fmt.Sprintf("/motivos/%d", id)
	if err := s.client.do(ctx, http.MethodPut, path, nil, req, &motivo, false); err != nil {
		return nil, err
	}
	return &motivo, nil
}

// UsuariosService manages operator accounts. Administrator only.
type UsuariosService struct {
	client *Client
}

// List returns every operator account.
func (s *UsuariosService) List(ctx context.Context) ([]Usuario, error) {
	var usuarios []Usuario
	if err := s.client.do(ctx, http.MethodGet, "/usuarios", nil, nil, &usuarios, false); err != nil {
		return nil, err
	}
	return usuarios, nil
}

// CreateUsuarioRequest registers an operator account.
type CreateUsuarioRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	NombreCompleto string `json:"nombre_completo"`
	Email          string `json:"email"`
	Rol            string `json:"rol"`
}

// Create registers an operator account.
func (s *UsuariosService) Create(ctx context.Context, req CreateUsuarioRequest) (*Usuario, error) {
	var usuario Usuario
	if err := s.client.do(ctx, http.MethodPost, "/usuarios", nil, req, &usuario, false); err != nil {
		return nil, err
	}
	return &usuario, nil
}

// UpdateUsuarioRequest is a partial account update.
type UpdateUsuarioRequest struct {
	NombreCompleto *string `json:"nombre_completo,omitempty"`
	Email          *string `json:"email,omitempty"`
	Activo         *bool   `json:"activo,omitempty"`
	Password       *string `json:"password,omitempty"`
}

// Update modifies an operator account.
func (s *UsuariosService) Update(ctx context.Context, id int64, req UpdateUsuarioRequest) (*Usuario, error) {
	var usuario Usuario
	path := fmt.Sprintf("/usuarios/%d", id)
	if err := s.client.do(ctx, http.MethodPut, path, nil, req, &usuario, false); err != nil {
		return nil, err
	}
	return &usuario, nil
}

// UbicacionesService reads the location catalogs.
type UbicacionesService struct {
	client *Client
}

// Departamentos returns the department catalog.
func (s *UbicacionesService) Departamentos(ctx context.Context) ([]Departamento, error) {
	var departamentos []Departamento
	if err := s.client.do(ctx, http.MethodGet, "/ubicaciones/departamentos", nil, nil, &departamentos, false); err != nil {
		return nil, err
	}
	return departamentos, nil
}

// Ciudades returns the cities of one department.
func (s *UbicacionesService) Ciudades(ctx context.Context, departamentoID int64) ([]Ciudad, error) {
	q := url.Values{}
	q.Set("departamento_id", strconv.FormatInt(departamentoID, 10))
	var ciudades []Ciudad
	if err := s.client.do(ctx, http.MethodGet, "/ubicaciones/ciudades", q, nil, &ciudades, false); err != nil {
		return nil, err
	}
	return ciudades, nil
}
