package domain

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Evento es una entrada del historial unificado de un caso: creación,
// cambios de estado/prioridad, asignaciones, ediciones de descripción y
// llamadas registradas. UsuarioNombre viene desnormalizado para que los
// consumidores no resuelvan el actor; vacío significa acción del sistema.
type Evento struct {
	ID            int64      `json:"id" db:"id"`
	CasoID        int64      `json:"caso_id" db:"caso_id"`
	TipoEvento    TipoEvento `json:"tipo_evento" db:"tipo_evento"`
	ValorAnterior *string    `json:"valor_anterior,omitempty" db:"valor_anterior"`
	ValorNuevo    *string    `json:"valor_nuevo,omitempty" db:"valor_nuevo"`
	UsuarioID     *int64     `json:"usuario_id,omitempty" db:"usuario_id"`
	UsuarioNombre string     `json:"usuario,omitempty" db:"usuario_nombre"`
	Comentario    *string    `json:"comentario,omitempty" db:"comentario"`
	FechaEvento   time.Time  `json:"fecha_evento" db:"fecha_evento"`
}

// Interaccion registra una llamada u otro contacto telefónico asociado a un
// caso, con los metadatos que entrega la plataforma de telefonía.
type Interaccion struct {
	ID                    int64      `json:"id" db:"id"`
	CasoID                int64      `json:"caso_id" db:"caso_id"`
	OmnileadsCallID       *string    `json:"omnileads_call_id,omitempty" db:"omnileads_call_id"`
	OmnileadsCampaignID   *string    `json:"omnileads_campaign_id,omitempty" db:"omnileads_campaign_id"`
	OmnileadsCampaignName *string    `json:"omnileads_campaign_name,omitempty" db:"omnileads_campaign_name"`
	OmnileadsCampaignType *string    `json:"omnileads_campaign_type,omitempty" db:"omnileads_campaign_type"`
	AgentID               *string    `json:"agent_id,omitempty" db:"agent_id"`
	AgentUsername         *string    `json:"agent_username,omitempty" db:"agent_username"`
	AgentName             *string    `json:"agent_name,omitempty" db:"agent_name"`
	TelefonoContacto      *string    `json:"telefono_contacto,omitempty" db:"telefono_contacto"`
	DatetimeLlamada       *time.Time `json:"datetime_llamada,omitempty" db:"datetime_llamada"`
	RecFilename           *string    `json:"rec_filename,omitempty" db:"rec_filename"`
	Observaciones         *string    `json:"observaciones,omitempty" db:"observaciones"`
	FechaRegistro         time.Time  `json:"fecha_registro" db:"fecha_registro"`
}

// CreateInteraccionRequest DTO para POST /interacciones.
type CreateInteraccionRequest struct {
	CasoID                int64      `json:"caso_id" validate:"required,gt=0"`
	OmnileadsCallID       *string    `json:"omnileads_call_id,omitempty"`
	OmnileadsCampaignID   *string    `json:"omnileads_campaign_id,omitempty"`
	OmnileadsCampaignName *string    `json:"omnileads_campaign_name,omitempty"`
	OmnileadsCampaignType *string    `json:"omnileads_campaign_type,omitempty"`
	AgentID               *string    `json:"agent_id,omitempty"`
	AgentUsername         *string    `json:"agent_username,omitempty"`
	AgentName             *string    `json:"agent_name,omitempty"`
	TelefonoContacto      *string    `json:"telefono_contacto,omitempty"`
	DatetimeLlamada       *time.Time `json:"datetime_llamada,omitempty"`
	RecFilename           *string    `json:"rec_filename,omitempty"`
	Observaciones         *string    `json:"observaciones,omitempty"`
}

// Validate valida el CreateInteraccionRequest.
func (r *CreateInteraccionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
