// Package timeline construye el historial unificado de actividad de un caso
// mezclando eventos del historial e interacciones telefónicas en una sola
// línea de tiempo ordenada de lo más reciente a lo más antiguo.
package timeline

import (
	"fmt"
	"sort"
	"time"
)

// Kind discrimina el tipo de entrada de la línea de tiempo.
type Kind int

const (
	KindEvento Kind = iota
	KindInteraccion
)

// Evento es una entrada del historial de un caso tal como la entrega el API.
// Usuario vacío significa acción del sistema. FechaEvento viaja como
// timestamp RFC 3339.
type Evento struct {
	TipoEvento    string `json:"tipo_evento"`
	ValorAnterior string `json:"valor_anterior,omitempty"`
	ValorNuevo    string `json:"valor_nuevo,omitempty"`
	Usuario       string `json:"usuario,omitempty"`
	Comentario    string `json:"comentario,omitempty"`
	FechaEvento   string `json:"fecha_evento"`
}

// Interaccion es una llamada registrada sobre el caso.
type Interaccion struct {
	AgentName        string `json:"agent_name,omitempty"`
	TelefonoContacto string `json:"telefono_contacto,omitempty"`
	Observaciones    string `json:"observaciones,omitempty"`
	CampaignName     string `json:"omnileads_campaign_name,omitempty"`
	FechaRegistro    string `json:"fecha_registro"`
}

// Entry es una entrada de la línea de tiempo unificada. Según Kind, Evento o
// Interaccion está poblado; el otro es nil.
type Entry struct {
	Kind        Kind
	When        time.Time
	Evento      *Evento
	Interaccion *Interaccion
}

// Tipos de evento conocidos.
const (
	TipoCreacion           = "creacion"
	TipoCambioEstado       = "cambio_estado"
	TipoCambioPrioridad    = "cambio_prioridad"
	TipoAsignacion         = "asignacion"
	TipoInteraccion        = "interaccion"
	TipoEdicionDescripcion = "edicion_descripcion"
)

// SinAsignar es el valor que reporta el historial cuando un caso no tenía
// agente antes de una asignación.
const SinAsignar = "Sin asignar"

// Build mezcla eventos e interacciones en una sola línea de tiempo ordenada
// descendente por fecha. El orden es estable: ante fechas iguales los eventos
// preceden a las interacciones. Un timestamp que no se pueda interpretar no
// es un error: la entrada queda con fecha cero y se ordena al final.
func Build(eventos []Evento, interacciones []Interaccion) []Entry {
	entries := make([]Entry, 0, len(eventos)+len(interacciones))

	for i := range eventos {
		ev := eventos[i]
		entries = append(entries, Entry{
			Kind:   KindEvento,
			When:   parseWhen(ev.FechaEvento),
			Evento: &ev,
		})
	}

	for i := range interacciones {
		in := interacciones[i]
		entries = append(entries, Entry{
			Kind:        KindInteraccion,
			When:        parseWhen(in.FechaRegistro),
			Interaccion: &in,
		})
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].When.After(entries[b].When)
	})

	return entries
}

// Describe retorna el mensaje legible de la entrada, en el formato que usan
// los operadores.
func (e Entry) Describe() string {
	if e.Kind == KindInteraccion {
		agente := "Agente"
		if e.Interaccion != nil && e.Interaccion.AgentName != "" {
			agente = e.Interaccion.AgentName
		}
		return fmt.Sprintf("Interacción - %s", agente)
	}

	if e.Evento == nil {
		return ""
	}

	usuario := e.Evento.Usuario
	if usuario == "" {
		usuario = "Sistema"
	}

	switch e.Evento.TipoEvento {
	case TipoCreacion:
		return fmt.Sprintf("%s creó el caso", usuario)
	case TipoCambioEstado:
		return fmt.Sprintf("%s cambió el estado de %s a %s", usuario, e.Evento.ValorAnterior, e.Evento.ValorNuevo)
	case TipoCambioPrioridad:
		return fmt.Sprintf("%s cambió la prioridad de %s a %s", usuario, e.Evento.ValorAnterior, e.Evento.ValorNuevo)
	case TipoAsignacion:
		verbo := "reasignó"
		if e.Evento.ValorAnterior == SinAsignar {
			verbo = "asignó"
		}
		return fmt.Sprintf("%s %s el caso de %s a %s", usuario, verbo, e.Evento.ValorAnterior, e.Evento.ValorNuevo)
	case TipoInteraccion:
		return fmt.Sprintf("Llamada registrada - %s", e.Evento.ValorNuevo)
	case TipoEdicionDescripcion:
		return fmt.Sprintf("%s editó la descripción del caso", usuario)
	default:
		return fmt.Sprintf("%s realizó una acción", usuario)
	}
}

// Icon retorna el nombre del ícono de la categoría de la entrada.
func (e Entry) Icon() string {
	if e.Kind == KindInteraccion {
		return "phone-call"
	}
	if e.Evento == nil {
		return "file-text"
	}
	switch e.Evento.TipoEvento {
	case TipoCreacion:
		return "check-circle"
	case TipoCambioEstado:
		return "arrow-right-left"
	case TipoCambioPrioridad:
		return "alert-triangle"
	case TipoAsignacion:
		return "user-check"
	case TipoInteraccion:
		return "phone-call"
	case TipoEdicionDescripcion:
		return "file-edit"
	default:
		return "file-text"
	}
}

// TimeLabel retorna la fecha formateada estilo es-CO (dd/mm/aaaa, h:mm a. m.).
// Para entradas con timestamp inválido retorna cadena vacía.
func (e Entry) TimeLabel() string {
	if e.When.IsZero() {
		return ""
	}
	hour := e.When.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	meridiem := "a. m."
	if e.When.Hour() >= 12 {
		meridiem = "p. m."
	}
	return fmt.Sprintf("%02d/%02d/%04d, %d:%02d %s",
		e.When.Day(), int(e.When.Month()), e.When.Year(), hour, e.When.Minute(), meridiem)
}

func parseWhen(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
