package client

import "time"

// Wire values for caso estado.
const (
	EstadoAbierto   = "ABIERTO"
	EstadoEnProceso = "EN_PROCESO"
	EstadoCerrado   = "CERRADO"
)

// Wire values for caso prioridad.
const (
	PrioridadAlta  = "ALTA"
	PrioridadMedia = "MEDIA"
	PrioridadBaja  = "BAJA"
)

// Wire values for tipo de alerta.
const (
	AlertaSLA5Dias      = "SLA_5_DIAS"
	AlertaPrioridadAlta = "PRIORIDAD_ALTA"
)

// Usuario is an operator account.
type Usuario struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username"`
	NombreCompleto string     `json:"nombre_completo"`
	Email          string     `json:"email"`
	Rol            string     `json:"rol"`
	Activo         bool       `json:"activo"`
	FechaCreacion  time.Time  `json:"fecha_creacion"`
	UltimoAcceso   *time.Time `json:"ultimo_acceso,omitempty"`
}

// TokenResponse is the login reply.
type TokenResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	User        Usuario `json:"user"`
}

// Paciente is a pharmacy patient.
type Paciente struct {
	ID             int64     `json:"id"`
	Identificacion string    `json:"identificacion"`
	Nombre         string    `json:"nombre"`
	Apellidos      string    `json:"apellidos"`
	Celular        string    `json:"celular"`
	Direccion      string    `json:"direccion"`
	Departamento   string    `json:"departamento"`
	Ciudad         string    `json:"ciudad"`
	FechaRegistro  time.Time `json:"fecha_registro"`
}

// PacienteForm carries the fields needed to register a patient.
type PacienteForm struct {
	Identificacion string `json:"identificacion"`
	Nombre         string `json:"nombre"`
	Apellidos      string `json:"apellidos"`
	Celular        string `json:"celular"`
	Direccion      string `json:"direccion"`
	Departamento   string `json:"departamento"`
	Ciudad         string `json:"ciudad"`
}

// Motivo is a case reason from the catalog.
type Motivo struct {
	ID          int64   `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion,omitempty"`
	Activo      bool    `json:"activo"`
	Orden       int     `json:"orden"`
}

// Caso is a PQR case as listed by the API.
type Caso struct {
	ID                    int64      `json:"id"`
	NumeroCaso            string     `json:"numero_caso"`
	PacienteID            int64      `json:"paciente_id"`
	MotivoID              int64      `json:"motivo_id"`
	Prioridad             string     `json:"prioridad"`
	Estado                string     `json:"estado"`
	Origen                string     `json:"origen"`
	Descripcion           string     `json:"descripcion"`
	AgenteCreadorID       int64      `json:"agente_creador_id"`
	AgenteAsignadoID      *int64     `json:"agente_asignado_id,omitempty"`
	FechaCreacion         time.Time  `json:"fecha_creacion"`
	FechaActualizacion    time.Time  `json:"fecha_actualizacion"`
	FechaCierre           *time.Time `json:"fecha_cierre,omitempty"`
	TiempoResolucionHoras *float64   `json:"tiempo_resolucion_horas,omitempty"`
	Paciente              *Paciente  `json:"paciente,omitempty"`
}

// Evento is one entry of a caso's unified history.
type Evento struct {
	ID            int64     `json:"id"`
	CasoID        int64     `json:"caso_id"`
	TipoEvento    string    `json:"tipo_evento"`
	ValorAnterior *string   `json:"valor_anterior,omitempty"`
	ValorNuevo    *string   `json:"valor_nuevo,omitempty"`
	UsuarioID     *int64    `json:"usuario_id,omitempty"`
	Usuario       string    `json:"usuario,omitempty"`
	Comentario    *string   `json:"comentario,omitempty"`
	FechaEvento   time.Time `json:"fecha_evento"`
}

// HistorialEstado is one legacy status-change record.
type HistorialEstado struct {
	ID             int64     `json:"id"`
	CasoID         int64     `json:"caso_id"`
	EstadoAnterior *string   `json:"estado_anterior"`
	EstadoNuevo    string    `json:"estado_nuevo"`
	UsuarioID      *int64    `json:"usuario_id"`
	Comentario     *string   `json:"comentario"`
	FechaCambio    time.Time `json:"fecha_cambio"`
}

// Interaccion is one telephony call attached to a caso.
type Interaccion struct {
	ID                    int64      `json:"id"`
	CasoID                int64      `json:"caso_id"`
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
	FechaRegistro         time.Time  `json:"fecha_registro"`
}

// CasoDetalle is the full case detail, timeline collections included.
type CasoDetalle struct {
	Caso
	Motivo           *Motivo           `json:"motivo_obj,omitempty"`
	AgenteCreador    *Usuario          `json:"agente_creador,omitempty"`
	AgenteAsignado   *Usuario          `json:"agente_asignado,omitempty"`
	Interacciones    []Interaccion     `json:"interacciones"`
	HistorialEstados []HistorialEstado `json:"historial_estados"`
	HistorialEventos []Evento          `json:"historial_eventos"`
}

// Alerta is a case alert raised by the server.
type Alerta struct {
	ID                  int64     `json:"id"`
	CasoID              int64     `json:"caso_id"`
	TipoAlerta          string    `json:"tipo_alerta"`
	FechaCreacion       time.Time `json:"fecha_creacion"`
	Leida               bool      `json:"leida"`
	UsuarioNotificadoID *int64    `json:"usuario_notificado_id,omitempty"`
}

// DashboardMetricas are the daily dashboard counters.
type DashboardMetricas struct {
	CasosAbiertosHoy             int     `json:"casos_abiertos_hoy"`
	CasosCerradosHoy             int     `json:"casos_cerrados_hoy"`
	CasosEnProceso               int     `json:"casos_en_proceso"`
	TasaResolucionPrimeraLlamada float64 `json:"tasa_resolucion_primera_llamada"`
	TiempoPromedioResolucion     float64 `json:"tiempo_promedio_resolucion"`
	TotalCasos                   int     `json:"total_casos"`
	AlertasActivas               int     `json:"alertas_activas"`
}

// Departamento is one entry of the department catalog.
type Departamento struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

// Ciudad is one entry of the city catalog.
type Ciudad struct {
	ID             int64  `json:"id"`
	DepartamentoID int64  `json:"departamento_id"`
	Nombre         string `json:"nombre"`
}

// OmnileadsMetadata is the call metadata the telephony console injects into
// the embedded intake view.
type OmnileadsMetadata struct {
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
