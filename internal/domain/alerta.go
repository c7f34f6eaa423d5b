package domain

import "time"

// Alerta notifica condiciones operativas sobre un caso: prioridad alta al
// radicarse o incumplimiento de la ventana SLA. Leida la marca el usuario
// que la atiende.
type Alerta struct {
	ID                  int64      `json:"id" db:"id"`
	CasoID              int64      `json:"caso_id" db:"caso_id"`
	TipoAlerta          TipoAlerta `json:"tipo_alerta" db:"tipo_alerta"`
	FechaCreacion       time.Time  `json:"fecha_creacion" db:"fecha_creacion"`
	Leida               bool       `json:"leida" db:"leida"`
	UsuarioNotificadoID *int64     `json:"usuario_notificado_id,omitempty" db:"usuario_notificado_id"`
}

// ListAlertasParams filtros de GET /alertas.
type ListAlertasParams struct {
	Leida *bool
	Tipo  *TipoAlerta
}
