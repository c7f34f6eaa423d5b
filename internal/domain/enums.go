package domain

// Enumeraciones del dominio PQR. Los valores coinciden con los que viajan
// por el API y se persisten en la base de datos.

// EstadoCaso representa el ciclo de vida de un caso.
type EstadoCaso string

const (
	EstadoAbierto   EstadoCaso = "ABIERTO"
	EstadoEnProceso EstadoCaso = "EN_PROCESO"
	EstadoCerrado   EstadoCaso = "CERRADO"
)

// IsValid indica si el estado es uno de los valores conocidos.
func (e EstadoCaso) IsValid() bool {
	switch e {
	case EstadoAbierto, EstadoEnProceso, EstadoCerrado:
		return true
	}
	return false
}

// Prioridad de atención de un caso.
type Prioridad string

const (
	PrioridadAlta  Prioridad = "ALTA"
	PrioridadMedia Prioridad = "MEDIA"
	PrioridadBaja  Prioridad = "BAJA"
)

func (p Prioridad) IsValid() bool {
	switch p {
	case PrioridadAlta, PrioridadMedia, PrioridadBaja:
		return true
	}
	return false
}

// Origen indica el canal por el que se radicó el caso.
type Origen string

const (
	OrigenCall Origen = "call" // vista embebida de telefonía
	OrigenWeb  Origen = "web"  // aplicación interna
)

func (o Origen) IsValid() bool {
	return o == OrigenCall || o == OrigenWeb
}

// Rol de un usuario del sistema.
type Rol string

const (
	RolAgente        Rol = "agente"
	RolAdministrador Rol = "administrador"
)

func (r Rol) IsValid() bool {
	return r == RolAgente || r == RolAdministrador
}

// TipoAlerta clasifica las alertas operativas.
type TipoAlerta string

const (
	AlertaSLA5Dias      TipoAlerta = "SLA_5_DIAS"
	AlertaPrioridadAlta TipoAlerta = "PRIORIDAD_ALTA"
)

func (t TipoAlerta) IsValid() bool {
	return t == AlertaSLA5Dias || t == AlertaPrioridadAlta
}

// TipoEvento clasifica las entradas del historial unificado de un caso.
type TipoEvento string

const (
	EventoCreacion           TipoEvento = "creacion"
	EventoCambioEstado       TipoEvento = "cambio_estado"
	EventoCambioPrioridad    TipoEvento = "cambio_prioridad"
	EventoAsignacion         TipoEvento = "asignacion"
	EventoInteraccion        TipoEvento = "interaccion"
	EventoEdicionDescripcion TipoEvento = "edicion_descripcion"
)

func (t TipoEvento) IsValid() bool {
	switch t {
	case EventoCreacion, EventoCambioEstado, EventoCambioPrioridad,
		EventoAsignacion, EventoInteraccion, EventoEdicionDescripcion:
		return true
	}
	return false
}
