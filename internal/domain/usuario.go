package domain

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Usuario representa un agente o administrador del sistema.
// El hash de contraseña nunca se serializa hacia el API.
type Usuario struct {
	ID             int64      `json:"id" db:"id"`
	Username       string     `json:"username" db:"username"`
	PasswordHash   string     `json:"-" db:"password_hash"`
	NombreCompleto string     `json:"nombre_completo" db:"nombre_completo"`
	Email          string     `json:"email" db:"email"`
	Rol            Rol        `json:"rol" db:"rol"`
	Activo         bool       `json:"activo" db:"activo"`
	FechaCreacion  time.Time  `json:"fecha_creacion" db:"fecha_creacion"`
	UltimoAcceso   *time.Time `json:"ultimo_acceso,omitempty" db:"ultimo_acceso"`
}

// CreateUsuarioRequest DTO para creación de usuario (solo administradores).
type CreateUsuarioRequest struct {
	Username       string `json:"username" validate:"required,min=3,max=100"`
	Password       string `json:"password" validate:"required,min=6"`
	NombreCompleto string `json:"nombre_completo" validate:"required,min=1,max=200"`
	Email          string `json:"email" validate:"required,email,max=200"`
	Rol            Rol    `json:"rol" validate:"required,oneof=agente administrador"`
}

// UpdateUsuarioRequest DTO de actualización parcial.
// Campos nil no se modifican.
type UpdateUsuarioRequest struct {
	NombreCompleto *string `json:"nombre_completo,omitempty" validate:"omitempty,min=1,max=200"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email,max=200"`
	Activo         *bool   `json:"activo,omitempty"`
	Password       *string `json:"password,omitempty" validate:"omitempty,min=6"`
}

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse respuesta de POST /auth/login.
type TokenResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	User        Usuario `json:"user"`
}

// Validate valida el CreateUsuarioRequest.
func (r *CreateUsuarioRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	r.NombreCompleto = strings.TrimSpace(r.NombreCompleto)
	r.Email = strings.TrimSpace(r.Email)

	validate := validator.New()
	return validate.Struct(r)
}

// Validate valida el UpdateUsuarioRequest.
func (r *UpdateUsuarioRequest) Validate() error {
	if r.NombreCompleto != nil {
		trimmed := strings.TrimSpace(*r.NombreCompleto)
		r.NombreCompleto = &trimmed
	}
	if r.Email != nil {
		trimmed := strings.TrimSpace(*r.Email)
		r.Email = &trimmed
	}

	validate := validator.New()
	return validate.Struct(r)
}

// Validate valida el LoginRequest.
func (r *LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)

	validate := validator.New()
	return validate.Struct(r)
}
