package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Caso representa una petición, queja o reclamo radicado por un paciente.
// NumeroCaso lo asigna siempre el servidor con formato PQR-YYYYMMDD-####.
// FechaCierre y TiempoResolucionHoras solo se fijan en el primer cierre.
type Caso struct {
	ID                    int64      `json:"id" db:"id"`
	NumeroCaso            string     `json:"numero_caso" db:"numero_caso"`
	PacienteID            int64      `json:"paciente_id" db:"paciente_id"`
	MotivoID              int64      `json:"motivo_id" db:"motivo_id"`
	Prioridad             Prioridad  `json:"prioridad" db:"prioridad"`
	Estado                EstadoCaso `json:"estado" db:"estado"`
	Origen                Origen     `json:"origen" db:"origen"`
	Descripcion           string     `json:"descripcion" db:"descripcion"`
	AgenteCreadorID       int64      `json:"agente_creador_id" db:"agente_creador_id"`
	AgenteAsignadoID      *int64     `json:"agente_asignado_id,omitempty" db:"agente_asignado_id"`
	FechaCreacion         time.Time  `json:"fecha_creacion" db:"fecha_creacion"`
	FechaActualizacion    time.Time  `json:"fecha_actualizacion" db:"fecha_actualizacion"`
	FechaCierre           *time.Time `json:"fecha_cierre,omitempty" db:"fecha_cierre"`
	TiempoResolucionHoras *float64   `json:"tiempo_resolucion_horas,omitempty" db:"tiempo_resolucion_horas"`

	// Paciente viene precargado en los listados para evitar N+1 en la UI.
	Paciente *Paciente `json:"paciente,omitempty" db:"-"`
}

// CasoDetalle es el caso con todas sus relaciones expandidas,
// respuesta de GET /casos/{id}.
type CasoDetalle struct {
	Caso
	Motivo           *MotivoPQR        `json:"motivo_obj,omitempty"`
	AgenteCreador    *Usuario          `json:"agente_creador,omitempty"`
	AgenteAsignado   *Usuario          `json:"agente_asignado,omitempty"`
	Interacciones    []Interaccion     `json:"interacciones"`
	HistorialEstados []HistorialEstado `json:"historial_estados"`
	HistorialEventos []Evento          `json:"historial_eventos"`
}

// HistorialEstado registro legado de transiciones de estado.
// Se conserva junto al historial unificado de eventos.
type HistorialEstado struct {
	ID             int64     `json:"id" db:"id"`
	CasoID         int64     `json:"caso_id" db:"caso_id"`
	EstadoAnterior *string   `json:"estado_anterior" db:"estado_anterior"`
	EstadoNuevo    string    `json:"estado_nuevo" db:"estado_nuevo"`
	UsuarioID      *int64    `json:"usuario_id" db:"usuario_id"`
	Comentario     *string   `json:"comentario" db:"comentario"`
	FechaCambio    time.Time `json:"fecha_cambio" db:"fecha_cambio"`
}

// CreateCasoRequest DTO para POST /casos.
type CreateCasoRequest struct {
	PacienteID       int64      `json:"paciente_id" validate:"required,gt=0"`
	MotivoID         int64      `json:"motivo_id" validate:"required,gt=0"`
	Prioridad        Prioridad  `json:"prioridad" validate:"omitempty,oneof=ALTA MEDIA BAJA"`
	Estado           EstadoCaso `json:"estado" validate:"omitempty,oneof=ABIERTO EN_PROCESO CERRADO"`
	Descripcion      string     `json:"descripcion" validate:"required,min=1"`
	AgenteAsignadoID *int64     `json:"agente_asignado_id,omitempty" validate:"omitempty,gt=0"`
}

// UpdateCasoRequest DTO de actualización parcial para PUT /casos/{id}.
// Comentario acompaña el cambio en el historial y no se persiste en el caso.
// AgenteAsignadoID distingue null explícito (desasignar) de campo ausente
// (no tocar la asignación); AgenteAsignadoSet marca la presencia de la llave.
type UpdateCasoRequest struct {
	Estado            *EstadoCaso `json:"estado,omitempty" validate:"omitempty,oneof=ABIERTO EN_PROCESO CERRADO"`
	Prioridad         *Prioridad  `json:"prioridad,omitempty" validate:"omitempty,oneof=ALTA MEDIA BAJA"`
	AgenteAsignadoID  *int64      `json:"agente_asignado_id,omitempty" validate:"omitempty,gt=0"`
	AgenteAsignadoSet bool        `json:"-"`
	Descripcion       *string     `json:"descripcion,omitempty" validate:"omitempty,min=1"`
	Comentario        *string     `json:"comentario,omitempty"`
}

// UnmarshalJSON detecta si agente_asignado_id viene en el cuerpo, porque un
// puntero nil no distingue null de ausente.
func (r *UpdateCasoRequest) UnmarshalJSON(data []byte) error {
	type alias UpdateCasoRequest
	var aux alias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = UpdateCasoRequest(aux)

	var campos map[string]json.RawMessage
	if err := json.Unmarshal(data, &campos); err != nil {
		return err
	}
	_, r.AgenteAsignadoSet = campos["agente_asignado_id"]
	return nil
}

// ListCasosParams filtros de GET /casos.
type ListCasosParams struct {
	NumeroCaso             *string // coincidencia parcial, case-insensitive
	Estado                 *EstadoCaso
	Prioridad              *Prioridad
	MotivoID               *int64
	PacienteIdentificacion *string
	AgenteID               *int64 // creador o asignado
	FechaDesde             *time.Time
	FechaHasta             *time.Time
	Skip                   int
	Limit                  int
}

// Validate valida el CreateCasoRequest y aplica los valores por defecto
// (prioridad MEDIA, estado ABIERTO).
func (r *CreateCasoRequest) Validate() error {
	r.Descripcion = strings.TrimSpace(r.Descripcion)
	if r.Prioridad == "" {
		r.Prioridad = PrioridadMedia
	}
	if r.Estado == "" {
		r.Estado = EstadoAbierto
	}

	validate := validator.New()
	return validate.Struct(r)
}

// Validate valida el UpdateCasoRequest.
func (r *UpdateCasoRequest) Validate() error {
	if r.Descripcion != nil {
		trimmed := strings.TrimSpace(*r.Descripcion)
		r.Descripcion = &trimmed
	}

	validate := validator.New()
	return validate.Struct(r)
}

// IsEmpty indica si la actualización no toca ningún campo del caso.
func (r *UpdateCasoRequest) IsEmpty() bool {
	return r.Estado == nil && r.Prioridad == nil && !r.AgenteAsignadoSet && r.Descripcion == nil
}
