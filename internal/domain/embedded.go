package domain

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// EmbeddedCasoRequest payload de POST /embedded/caso, enviado por la vista
// embebida en la plataforma de telefonía (sin autenticación).
// Con NumeroCasoExistente se actualiza ese caso en lugar de crear uno nuevo;
// en ambos escenarios se registra la interacción de la llamada.
type EmbeddedCasoRequest struct {
	Paciente            EmbeddedPaciente  `json:"paciente" validate:"required"`
	MotivoID            int64             `json:"motivo_id" validate:"omitempty,gt=0"`
	Prioridad           Prioridad         `json:"prioridad" validate:"omitempty,oneof=ALTA MEDIA BAJA"`
	Estado              EstadoCaso        `json:"estado" validate:"omitempty,oneof=ABIERTO EN_PROCESO CERRADO"`
	Descripcion         string            `json:"descripcion" validate:"required,min=1"`
	NumeroCasoExistente string            `json:"numero_caso_existente,omitempty"`
	Omnileads           EmbeddedOmnileads `json:"omnileads"`
}

// EmbeddedPaciente datos del paciente capturados en la vista embebida.
// Si la identificación no existe se crea el paciente.
type EmbeddedPaciente struct {
	Identificacion string `json:"identificacion" validate:"required,numeric,min=6,max=10"`
	Nombre         string `json:"nombre" validate:"required,min=1,max=200"`
	Apellidos      string `json:"apellidos" validate:"required,min=1,max=200"`
	Celular        string `json:"celular" validate:"required,len=10,numeric"`
	Direccion      string `json:"direccion" validate:"required,min=1"`
	Departamento   string `json:"departamento" validate:"required,min=1,max=100"`
	Ciudad         string `json:"ciudad" validate:"required,min=1,max=100"`
}

// EmbeddedOmnileads metadatos de la llamada entregados por la plataforma.
type EmbeddedOmnileads struct {
	CallID        *string `json:"call_id,omitempty"`
	CampaignID    *string `json:"campaign_id,omitempty"`
	CampaignName  *string `json:"campaign_name,omitempty"`
	CampaignType  *string `json:"campaign_type,omitempty"`
	AgentID       *string `json:"agent_id,omitempty"`
	AgentUsername *string `json:"agent_username,omitempty"`
	AgentName     *string `json:"agent_name,omitempty"`
	Telefono      *string `json:"telefono,omitempty"`
	Datetime      *string `json:"datetime,omitempty"`
	RecFilename   *string `json:"rec_filename,omitempty"`
}

// EmbeddedPacienteLookup respuesta de GET /embedded/paciente/{identificacion}.
type EmbeddedPacienteLookup struct {
	Found    bool      `json:"found"`
	Paciente *Paciente `json:"paciente,omitempty"`
	Casos    []Caso    `json:"casos"`
}

// EmbeddedHistorial respuesta de GET /embedded/paciente/{id}/historial.
type EmbeddedHistorial struct {
	Paciente *Paciente `json:"paciente"`
	Casos    []Caso    `json:"casos"`
}

// Validate valida el EmbeddedCasoRequest y aplica valores por defecto.
func (r *EmbeddedCasoRequest) Validate() error {
	r.Descripcion = strings.TrimSpace(r.Descripcion)
	r.NumeroCasoExistente = strings.TrimSpace(r.NumeroCasoExistente)
	r.Paciente.Identificacion = strings.TrimSpace(r.Paciente.Identificacion)
	r.Paciente.Nombre = strings.TrimSpace(r.Paciente.Nombre)
	r.Paciente.Apellidos = strings.TrimSpace(r.Paciente.Apellidos)
	r.Paciente.Celular = strings.TrimSpace(r.Paciente.Celular)
	if r.Prioridad == "" {
		r.Prioridad = PrioridadMedia
	}
	if r.Estado == "" {
		r.Estado = EstadoAbierto
	}

	// Un caso nuevo necesita motivo; el seguimiento hereda el del caso
	// existente.
	if r.NumeroCasoExistente == "" && r.MotivoID <= 0 {
		return errors.New("motivo_id is required when creating a new caso")
	}

	validate := validator.New()
	return validate.Struct(r)
}
