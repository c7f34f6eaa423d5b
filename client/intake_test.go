package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntakeSearchNoMatchEntersCreationMode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/pacientes", r.URL.Path)
		writeTestJSON(w, http.StatusOK, []interface{}{})
	}))
	defer srv.Close()

	flow := NewIntakeFlow(New(srv.URL, NewSession()))
	require.NoError(t, flow.SearchPatient(context.Background(), "1234567890"))

	assert.Equal(t, ModeCrearPaciente, flow.Mode)
	assert.Equal(t, "1234567890", flow.Identificacion, "identification stays pre-filled")
	assert.Nil(t, flow.Paciente)
}

func TestIntakeSearchRejectsBadIdentification(t *testing.T) {
	flow := NewIntakeFlow(New("http://unused", NewSession()))

	for _, id := range []string{"", "12345", "12345678901", "12a4567"} {
		err := flow.SearchPatient(context.Background(), id)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, "identification %q", id)
		assert.Equal(t, "identificacion", vErr.Field)
	}
}

func TestIntakeCreatePatientValidations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusOK, []interface{}{})
	}))
	defer srv.Close()

	base := PacienteForm{
		Nombre:       "Ana María",
		Apellidos:    "Ruiz Ñáñez",
		Celular:      "3001234567",
		Direccion:    "Calle 1 # 2-3",
		Departamento: "Antioquia",
		Ciudad:       "Medellín",
	}

	tests := []struct {
		name   string
		mutate func(*PacienteForm)
		field  string
	}{
		{"celular too short", func(f *PacienteForm) { f.Celular = "300123456" }, "celular"},
		{"celular bad leading digit", func(f *PacienteForm) { f.Celular = "4001234567" }, "celular"},
		{"nombre with digits", func(f *PacienteForm) { f.Nombre = "Ana3" }, "nombre"},
		{"apellidos empty", func(f *PacienteForm) { f.Apellidos = "" }, "apellidos"},
		{"direccion empty", func(f *PacienteForm) { f.Direccion = "  " }, "direccion"},
		{"ciudad empty", func(f *PacienteForm) { f.Ciudad = "" }, "ciudad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow := NewIntakeFlow(New(srv.URL, NewSession()))
			require.NoError(t, flow.SearchPatient(context.Background(), "1234567890"))
			require.Equal(t, ModeCrearPaciente, flow.Mode)

			form := base
			tt.mutate(&form)

			err := flow.CreatePatient(context.Background(), form)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
			assert.Equal(t, ModeCrearPaciente, flow.Mode, "flow must not advance on invalid form")
		})
	}

	// A celular starting with 6 (landline style) is accepted.
	form := base
	form.Identificacion = "1234567890"
	form.Celular = "6041234567"
	assert.NoError(t, validarPaciente(form))
}

func TestIntakeNewPatientEndToEnd(t *testing.T) {
	var createdPaciente PacienteForm
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/pacientes" && r.Method == http.MethodGet:
			writeTestJSON(w, http.StatusOK, []interface{}{})
		case r.URL.Path == "/api/pacientes" && r.Method == http.MethodPost:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&createdPaciente))
			writeTestJSON(w, http.StatusCreated, map[string]interface{}{
				"id":             11,
				"identificacion": createdPaciente.Identificacion,
				"nombre":         createdPaciente.Nombre,
				"apellidos":      createdPaciente.Apellidos,
			})
		case r.URL.Path == "/api/casos" && r.Method == http.MethodPost:
			var req map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.EqualValues(t, 11, req["paciente_id"])
			assert.EqualValues(t, 2, req["motivo_id"])
			writeTestJSON(w, http.StatusCreated, map[string]interface{}{
				"id":          99,
				"numero_caso": "PQR-20260830-0004",
			})
		default:
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	flow := NewIntakeFlow(New(srv.URL, NewSession()))
	require.NoError(t, flow.SearchPatient(context.Background(), "1234567890"))
	require.Equal(t, ModeCrearPaciente, flow.Mode)

	err := flow.CreatePatient(context.Background(), PacienteForm{
		Nombre:       "Ana",
		Apellidos:    "Ruiz",
		Celular:      "3001234567",
		Direccion:    "Calle 1",
		Departamento: "Antioquia",
		Ciudad:       "Medellín",
	})
	require.NoError(t, err)
	assert.Equal(t, "1234567890", createdPaciente.Identificacion, "locked identification wins over the form")
	require.Equal(t, ModeRegistroCaso, flow.Mode)

	numero, err := flow.SubmitCase(context.Background(), CaseForm{
		MotivoID:    2,
		Prioridad:   PrioridadAlta,
		Estado:      EstadoAbierto,
		Descripcion: "Retraso en entrega",
	})
	require.NoError(t, err)
	assert.Equal(t, "PQR-20260830-0004", numero)
}

func TestIntakeEmbeddedFollowUpOnExistingCase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/embedded/paciente/1234567890":
			writeTestJSON(w, http.StatusOK, map[string]interface{}{
				"found": true,
				"paciente": map[string]interface{}{
					"id":             5,
					"identificacion": "1234567890",
					"nombre":         "Ana",
					"apellidos":      "Ruiz",
				},
				"casos": []interface{}{
					map[string]interface{}{"id": 1, "numero_caso": "PQR-20260820-0001", "estado": "ABIERTO"},
					map[string]interface{}{"id": 2, "numero_caso": "PQR-20260701-0009", "estado": "CERRADO"},
				},
			})
		case "/api/embedded/caso":
			var req EmbeddedCasoRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "PQR-20260820-0001", req.NumeroCasoExistente)
			assert.Equal(t, "1234567890", req.Paciente.Identificacion)
			writeTestJSON(w, http.StatusCreated, map[string]interface{}{
				"id":          1,
				"numero_caso": "PQR-20260820-0001",
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	session := NewSession()
	session.SetToken("must-not-be-sent")
	flow := NewEmbeddedIntake(New(srv.URL, session))

	require.NoError(t, flow.SearchPatient(context.Background(), "1234567890"))
	require.Equal(t, ModeRegistroCaso, flow.Mode)
	require.Len(t, flow.PendingCasos, 1, "closed cases are not offered for follow-up")
	assert.Equal(t, "PQR-20260820-0001", flow.PendingCasos[0].NumeroCaso)

	flow.SelectPendingCase(flow.PendingCasos[0].NumeroCaso)

	numero, err := flow.SubmitCase(context.Background(), CaseForm{
		Descripcion: "Segunda llamada del paciente",
	})
	require.NoError(t, err)
	assert.Equal(t, "PQR-20260820-0001", numero)
}
