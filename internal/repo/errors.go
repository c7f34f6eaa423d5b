package repo

import "errors"

// Sentinel errors returned by repositories. Services map these to HTTP
// responses without inspecting pgx internals.
var (
	ErrPacienteNotFound  = errors.New("paciente not found")
	ErrPacienteDuplicado = errors.New("paciente already exists")
	ErrCasoNotFound      = errors.New("caso not found")
	ErrMotivoNotFound    = errors.New("motivo not found")
	ErrUsuarioNotFound   = errors.New("usuario not found")
	ErrUsuarioDuplicado  = errors.New("usuario already exists")
	ErrAlertaNotFound    = errors.New("alerta not found")
)
