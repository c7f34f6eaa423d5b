package timeline_test

import (
	"testing"

	"pqr-api/timeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_MergesAndSortsDescending(t *testing.T) {
	eventos := []timeline.Evento{
		{TipoEvento: timeline.TipoCreacion, Usuario: "Maria Lopez", FechaEvento: "2026-03-01T08:00:00Z"},
		{TipoEvento: timeline.TipoCambioEstado, Usuario: "Maria Lopez", ValorAnterior: "ABIERTO", ValorNuevo: "EN_PROCESO", FechaEvento: "2026-03-02T10:30:00Z"},
	}
	interacciones := []timeline.Interaccion{
		{AgentName: "Carlos Ruiz", FechaRegistro: "2026-03-01T15:00:00Z"},
	}

	entries := timeline.Build(eventos, interacciones)

	require.Len(t, entries, 3)
	assert.Equal(t, timeline.KindEvento, entries[0].Kind)
	assert.Equal(t, timeline.TipoCambioEstado, entries[0].Evento.TipoEvento)
	assert.Equal(t, timeline.KindInteraccion, entries[1].Kind)
	assert.Equal(t, timeline.KindEvento, entries[2].Kind)
	assert.Equal(t, timeline.TipoCreacion, entries[2].Evento.TipoEvento)

	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].When.After(entries[i-1].When),
			"entry %d should not be newer than entry %d", i, i-1)
	}
}

func TestBuild_EqualInstantsKeepEventsFirst(t *testing.T) {
	when := "2026-03-01T08:00:00Z"
	eventos := []timeline.Evento{
		{TipoEvento: timeline.TipoCreacion, FechaEvento: when},
	}
	interacciones := []timeline.Interaccion{
		{AgentName: "Carlos Ruiz", FechaRegistro: when},
	}

	entries := timeline.Build(eventos, interacciones)

	require.Len(t, entries, 2)
	assert.Equal(t, timeline.KindEvento, entries[0].Kind)
	assert.Equal(t, timeline.KindInteraccion, entries[1].Kind)
}

func TestBuild_Idempotent(t *testing.T) {
	eventos := []timeline.Evento{
		{TipoEvento: timeline.TipoCreacion, FechaEvento: "2026-03-01T08:00:00Z"},
		{TipoEvento: timeline.TipoAsignacion, ValorAnterior: "Sin asignar", ValorNuevo: "Maria Lopez", FechaEvento: "2026-03-01T09:00:00Z"},
	}
	interacciones := []timeline.Interaccion{
		{FechaRegistro: "2026-03-01T08:30:00Z"},
	}

	first := timeline.Build(eventos, interacciones)
	second := timeline.Build(eventos, interacciones)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Kind, second[i].Kind)
		assert.Equal(t, first[i].When, second[i].When)
		assert.Equal(t, first[i].Describe(), second[i].Describe())
	}
}

func TestBuild_MalformedTimestampSortsOldest(t *testing.T) {
	eventos := []timeline.Evento{
		{TipoEvento: timeline.TipoCreacion, FechaEvento: "no-es-una-fecha"},
		{TipoEvento: timeline.TipoCambioEstado, FechaEvento: "2026-03-01T08:00:00Z"},
	}

	entries := timeline.Build(eventos, nil)

	require.Len(t, entries, 2)
	assert.Equal(t, timeline.TipoCambioEstado, entries[0].Evento.TipoEvento)
	assert.Equal(t, timeline.TipoCreacion, entries[1].Evento.TipoEvento)
	assert.True(t, entries[1].When.IsZero())
	assert.Empty(t, entries[1].TimeLabel())
}

func TestDescribe_Messages(t *testing.T) {
	tests := []struct {
		name   string
		evento timeline.Evento
		want   string
	}{
		{
			name:   "creacion",
			evento: timeline.Evento{TipoEvento: timeline.TipoCreacion, Usuario: "Maria Lopez"},
			want:   "Maria Lopez creó el caso",
		},
		{
			name:   "creacion sin usuario",
			evento: timeline.Evento{TipoEvento: timeline.TipoCreacion},
			want:   "Sistema creó el caso",
		},
		{
			name:   "cambio de estado",
			evento: timeline.Evento{TipoEvento: timeline.TipoCambioEstado, Usuario: "Maria Lopez", ValorAnterior: "ABIERTO", ValorNuevo: "CERRADO"},
			want:   "Maria Lopez cambió el estado de ABIERTO a CERRADO",
		},
		{
			name:   "cambio de prioridad",
			evento: timeline.Evento{TipoEvento: timeline.TipoCambioPrioridad, Usuario: "Maria Lopez", ValorAnterior: "MEDIA", ValorNuevo: "ALTA"},
			want:   "Maria Lopez cambió la prioridad de MEDIA a ALTA",
		},
		{
			name:   "primera asignacion",
			evento: timeline.Evento{TipoEvento: timeline.TipoAsignacion, Usuario: "Admin", ValorAnterior: "Sin asignar", ValorNuevo: "Maria Lopez"},
			want:   "Admin asignó el caso de Sin asignar a Maria Lopez",
		},
		{
			name:   "reasignacion",
			evento: timeline.Evento{TipoEvento: timeline.TipoAsignacion, Usuario: "Admin", ValorAnterior: "Maria Lopez", ValorNuevo: "Carlos Ruiz"},
			want:   "Admin reasignó el caso de Maria Lopez a Carlos Ruiz",
		},
		{
			name:   "interaccion registrada como evento",
			evento: timeline.Evento{TipoEvento: timeline.TipoInteraccion, ValorNuevo: "Carlos Ruiz"},
			want:   "Llamada registrada - Carlos Ruiz",
		},
		{
			name:   "edicion de descripcion",
			evento: timeline.Evento{TipoEvento: timeline.TipoEdicionDescripcion, Usuario: "Maria Lopez"},
			want:   "Maria Lopez editó la descripción del caso",
		},
		{
			name:   "tipo desconocido",
			evento: timeline.Evento{TipoEvento: "otro", Usuario: "Maria Lopez"},
			want:   "Maria Lopez realizó una acción",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := timeline.Build([]timeline.Evento{tt.evento}, nil)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.want, entries[0].Describe())
		})
	}
}

func TestDescribe_Interaccion(t *testing.T) {
	entries := timeline.Build(nil, []timeline.Interaccion{
		{AgentName: "Carlos Ruiz", FechaRegistro: "2026-03-01T08:00:00Z"},
		{FechaRegistro: "2026-03-01T09:00:00Z"},
	})

	require.Len(t, entries, 2)
	assert.Equal(t, "Interacción - Carlos Ruiz", entries[1].Describe())
	assert.Equal(t, "Interacción - Agente", entries[0].Describe())
}

func TestIcon(t *testing.T) {
	tests := []struct {
		tipo string
		want string
	}{
		{timeline.TipoCreacion, "check-circle"},
		{timeline.TipoCambioEstado, "arrow-right-left"},
		{timeline.TipoCambioPrioridad, "alert-triangle"},
		{timeline.TipoAsignacion, "user-check"},
		{timeline.TipoInteraccion, "phone-call"},
		{timeline.TipoEdicionDescripcion, "file-edit"},
		{"otro", "file-text"},
	}

	for _, tt := range tests {
		entries := timeline.Build([]timeline.Evento{{TipoEvento: tt.tipo, FechaEvento: "2026-03-01T08:00:00Z"}}, nil)
		require.Len(t, entries, 1)
		assert.Equal(t, tt.want, entries[0].Icon(), tt.tipo)
	}

	interacciones := timeline.Build(nil, []timeline.Interaccion{{FechaRegistro: "2026-03-01T08:00:00Z"}})
	require.Len(t, interacciones, 1)
	assert.Equal(t, "phone-call", interacciones[0].Icon())
}

func TestTimeLabel(t *testing.T) {
	entries := timeline.Build([]timeline.Evento{
		{TipoEvento: timeline.TipoCreacion, FechaEvento: "2026-03-05T14:07:00Z"},
	}, nil)

	require.Len(t, entries, 1)
	assert.Equal(t, "05/03/2026, 2:07 p. m.", entries[0].TimeLabel())
}
