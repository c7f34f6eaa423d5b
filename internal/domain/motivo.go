package domain

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// MotivoPQR es el catálogo de motivos por los que se radica un caso.
// Orden controla la posición en los listados; Activo oculta motivos retirados
// sin romper los casos históricos que los referencian.
type MotivoPQR struct {
	ID          int64   `json:"id" db:"id"`
	Nombre      string  `json:"nombre" db:"nombre"`
	Descripcion *string `json:"descripcion,omitempty" db:"descripcion"`
	Activo      bool    `json:"activo" db:"activo"`
	Orden       int     `json:"orden" db:"orden"`
}

// MotivoRequest DTO para creación y actualización de motivos.
type MotivoRequest struct {
	Nombre      string  `json:"nombre" validate:"required,min=1,max=200"`
	Descripcion *string `json:"descripcion,omitempty"`
	Orden       int     `json:"orden" validate:"gte=0"`
	Activo      *bool   `json:"activo,omitempty"`
}

// Validate valida el MotivoRequest.
func (r *MotivoRequest) Validate() error {
	r.Nombre = strings.TrimSpace(r.Nombre)

	validate := validator.New()
	return validate.Struct(r)
}
