package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func editorFixtureCaso() *Caso {
	agente := int64(3)
	return &Caso{
		ID:               42,
		NumeroCaso:       "PQR-20260830-0007",
		Estado:           EstadoAbierto,
		Prioridad:        PrioridadMedia,
		AgenteAsignadoID: &agente,
		Descripcion:      "Retraso en entrega",
	}
}

func TestCaseEditorOpenSeedsState(t *testing.T) {
	editor := NewCaseEditor(New("http://unused", NewSession()))
	caso := editorFixtureCaso()
	editor.Comentario = "sobras de un caso anterior"

	editor.Open(caso)

	assert.True(t, editor.IsOpen())
	assert.Equal(t, EstadoAbierto, editor.Estado)
	assert.Equal(t, PrioridadMedia, editor.Prioridad)
	require.NotNil(t, editor.AgenteAsignadoID)
	assert.Equal(t, int64(3), *editor.AgenteAsignadoID)
	assert.Empty(t, editor.Comentario, "comment must be cleared on open")

	// Seeded assignment is a copy, not an alias of the case field.
	*editor.AgenteAsignadoID = 99
	assert.Equal(t, int64(3), *caso.AgenteAsignadoID)
}

func TestCaseEditorSubmitSendsExactlyFourFields(t *testing.T) {
	var updateBody map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut:
			raw, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(raw, &updateBody))
			writeTestJSON(w, http.StatusOK, map[string]interface{}{"id": 42})
		case r.Method == http.MethodGet:
			writeTestJSON(w, http.StatusOK, map[string]interface{}{
				"id":          42,
				"numero_caso": "PQR-20260830-0007",
				"estado":      "CERRADO",
			})
		default:
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	editor := NewCaseEditor(New(srv.URL, NewSession()))
	editor.Open(editorFixtureCaso())
	editor.Estado = EstadoCerrado
	editor.Prioridad = PrioridadAlta
	agente := int64(7)
	editor.AgenteAsignadoID = &agente
	editor.Comentario = "resolved"

	detalle, err := editor.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "CERRADO", detalle.Estado)
	assert.False(t, editor.IsOpen())

	require.Len(t, updateBody, 4, "body must carry exactly four fields")
	assert.JSONEq(t, `"CERRADO"`, string(updateBody["estado"]))
	assert.JSONEq(t, `"ALTA"`, string(updateBody["prioridad"]))
	assert.JSONEq(t, `7`, string(updateBody["agente_asignado_id"]))
	assert.JSONEq(t, `"resolved"`, string(updateBody["comentario"]))
}

func TestCaseEditorSubmitOmitsEmptyComment(t *testing.T) {
	var updateBody map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&updateBody))
			writeTestJSON(w, http.StatusOK, map[string]interface{}{"id": 42})
			return
		}
		writeTestJSON(w, http.StatusOK, map[string]interface{}{"id": 42})
	}))
	defer srv.Close()

	editor := NewCaseEditor(New(srv.URL, NewSession()))
	editor.Open(editorFixtureCaso())
	editor.AgenteAsignadoID = nil // unassign

	_, err := editor.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, updateBody, 3)
	_, hasComentario := updateBody["comentario"]
	assert.False(t, hasComentario, "empty comment must be omitted, not sent as empty string")
	assert.JSONEq(t, `null`, string(updateBody["agente_asignado_id"]), "explicit null unassigns")
}

func TestCaseEditorKeepsStateOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusBadRequest, map[string]interface{}{
			"ok":    false,
			"error": map[string]interface{}{"code": "VALIDATION_ERROR", "detail": "Estado inválido"},
		})
	}))
	defer srv.Close()

	editor := NewCaseEditor(New(srv.URL, NewSession()))
	editor.Open(editorFixtureCaso())
	editor.Estado = EstadoCerrado
	editor.Comentario = "escrito con esfuerzo"

	_, err := editor.Submit(context.Background())
	require.Error(t, err)

	assert.True(t, editor.IsOpen(), "editor stays open on failure")
	assert.Equal(t, EstadoCerrado, editor.Estado)
	assert.Equal(t, "escrito con esfuerzo", editor.Comentario, "operator input is preserved for retry")
}
