package domain

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Paciente representa un afiliado que radica peticiones, quejas o reclamos.
// La identificación (cédula) es única y es la llave de búsqueda operativa.
type Paciente struct {
	ID             int64     `json:"id" db:"id"`
	Identificacion string    `json:"identificacion" db:"identificacion"`
	Nombre         string    `json:"nombre" db:"nombre"`
	Apellidos      string    `json:"apellidos" db:"apellidos"`
	Celular        string    `json:"celular" db:"celular"`
	Direccion      string    `json:"direccion" db:"direccion"`
	Departamento   string    `json:"departamento" db:"departamento"`
	Ciudad         string    `json:"ciudad" db:"ciudad"`
	FechaRegistro  time.Time `json:"fecha_registro" db:"fecha_registro"`
	ActualizadoPor *int64    `json:"-" db:"actualizado_por"`
}

// CreatePacienteRequest DTO para registro de paciente.
type CreatePacienteRequest struct {
	Identificacion string `json:"identificacion" validate:"required,numeric,min=6,max=10"`
	Nombre         string `json:"nombre" validate:"required,min=1,max=200"`
	Apellidos      string `json:"apellidos" validate:"required,min=1,max=200"`
	Celular        string `json:"celular" validate:"required,len=10,numeric"`
	Direccion      string `json:"direccion" validate:"required,min=1"`
	Departamento   string `json:"departamento" validate:"required,min=1,max=100"`
	Ciudad         string `json:"ciudad" validate:"required,min=1,max=100"`
}

// UpdatePacienteRequest DTO de actualización parcial.
type UpdatePacienteRequest struct {
	Nombre       *string `json:"nombre,omitempty" validate:"omitempty,min=1,max=200"`
	Apellidos    *string `json:"apellidos,omitempty" validate:"omitempty,min=1,max=200"`
	Celular      *string `json:"celular,omitempty" validate:"omitempty,len=10,numeric"`
	Direccion    *string `json:"direccion,omitempty" validate:"omitempty,min=1"`
	Departamento *string `json:"departamento,omitempty" validate:"omitempty,min=1,max=100"`
	Ciudad       *string `json:"ciudad,omitempty" validate:"omitempty,min=1,max=100"`
}

// ListPacientesParams filtros de listado.
type ListPacientesParams struct {
	Identificacion *string
	Nombre         *string // busca en nombre y apellidos, case-insensitive
	Skip           int
	Limit          int
}

// Validate valida el CreatePacienteRequest.
func (r *CreatePacienteRequest) Validate() error {
	r.Identificacion = strings.TrimSpace(r.Identificacion)
	r.Nombre = strings.TrimSpace(r.Nombre)
	r.Apellidos = strings.TrimSpace(r.Apellidos)
	r.Celular = strings.TrimSpace(r.Celular)
	r.Direccion = strings.TrimSpace(r.Direccion)

	validate := validator.New()
	return validate.Struct(r)
}

// Validate valida el UpdatePacienteRequest.
func (r *UpdatePacienteRequest) Validate() error {
	if r.Nombre != nil {
		trimmed := strings.TrimSpace(*r.Nombre)
		r.Nombre = &trimmed
	}
	if r.Apellidos != nil {
		trimmed := strings.TrimSpace(*r.Apellidos)
		r.Apellidos = &trimmed
	}
	if r.Celular != nil {
		trimmed := strings.TrimSpace(*r.Celular)
		r.Celular = &trimmed
	}

	validate := validator.New()
	return validate.Struct(r)
}
