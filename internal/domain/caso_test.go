package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCasoRequestAgenteNullVsAusente(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantSet  bool
		wantID   *int64
		wantVoid bool
	}{
		{
			name:    "null explícito desasigna",
			body:    `{"estado":"ABIERTO","prioridad":"ALTA","agente_asignado_id":null}`,
			wantSet: true,
		},
		{
			name:    "campo ausente no toca la asignación",
			body:    `{"estado":"ABIERTO","prioridad":"ALTA"}`,
			wantSet: false,
		},
		{
			name:    "valor asigna",
			body:    `{"agente_asignado_id":7}`,
			wantSet: true,
			wantID:  int64Ptr(7),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateCasoRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			assert.Equal(t, tt.wantSet, req.AgenteAsignadoSet)
			if tt.wantID == nil {
				assert.Nil(t, req.AgenteAsignadoID)
			} else {
				require.NotNil(t, req.AgenteAsignadoID)
				assert.Equal(t, *tt.wantID, *req.AgenteAsignadoID)
			}

			require.NoError(t, req.Validate())
		})
	}
}

func TestUpdateCasoRequestIsEmpty(t *testing.T) {
	var vacio UpdateCasoRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &vacio))
	assert.True(t, vacio.IsEmpty())

	// A bare unassign is a real update even though every pointer is nil.
	var desasignar UpdateCasoRequest
	require.NoError(t, json.Unmarshal([]byte(`{"agente_asignado_id":null}`), &desasignar))
	assert.False(t, desasignar.IsEmpty())

	var comentario UpdateCasoRequest
	require.NoError(t, json.Unmarshal([]byte(`{"comentario":"solo un comentario"}`), &comentario))
	assert.True(t, comentario.IsEmpty(), "comentario alone does not touch the caso")
}

func int64Ptr(v int64) *int64 { return &v }
