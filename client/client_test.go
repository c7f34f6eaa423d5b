package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginStoresTokenAndSendsBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			assert.Empty(t, r.Header.Get("Authorization"))
			writeTestJSON(w, http.StatusOK, map[string]interface{}{
				"access_token": "tok-123",
				"token_type":   "bearer",
				"user":         map[string]interface{}{"id": 1, "username": "maria"},
			})
		case "/api/auth/me":
			gotAuth = r.Header.Get("Authorization")
			writeTestJSON(w, http.StatusOK, map[string]interface{}{"id": 1, "username": "maria"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	session := NewSession()
	c := New(srv.URL, session)

	resp, err := c.Auth.Login(context.Background(), "maria", "secreta")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", resp.AccessToken)
	assert.Equal(t, "tok-123", session.Token())

	me, err := c.Auth.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "maria", me.Username)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestUnauthorizedExpiresSessionFromAnyCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"ok": false,
			"error": map[string]interface{}{
				"code":    "INVALID_TOKEN",
				"message": "authentication required",
				"detail":  "No se pudieron validar las credenciales",
			},
		})
	}))
	defer srv.Close()

	calls := []func(c *Client) error{
		func(c *Client) error { _, err := c.Casos.List(context.Background(), ListCasosParams{}); return err },
		func(c *Client) error { _, err := c.Pacientes.Get(context.Background(), 7); return err },
		func(c *Client) error { _, err := c.Alertas.List(context.Background(), ListAlertasParams{}); return err },
		func(c *Client) error { _, err := c.Metricas.Dashboard(context.Background()); return err },
		func(c *Client) error { return c.Alertas.MarcarLeida(context.Background(), 3) },
	}

	for _, call := range calls {
		session := NewSession()
		session.SetToken("stale")
		expired := false
		session.OnExpired = func() { expired = true }

		c := New(srv.URL, session)
		err := call(c)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSessionExpired)
		assert.Empty(t, session.Token(), "token must be cleared")
		assert.True(t, expired, "OnExpired must fire")
	}
}

func TestAPIErrorDecoding(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{
			name:       "envelope shape",
			status:     http.StatusBadRequest,
			body:       `{"ok":false,"error":{"code":"VALIDATION_ERROR","message":"validation failed","detail":"Ya existe un paciente con esta identificación"}}`,
			wantDetail: "Ya existe un paciente con esta identificación",
		},
		{
			name:       "bare detail shape",
			status:     http.StatusNotFound,
			body:       `{"detail":"Caso no encontrado"}`,
			wantDetail: "Caso no encontrado",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(srv.URL, NewSession())
			_, err := c.Casos.List(context.Background(), ListCasosParams{})
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantDetail, apiErr.UserMessage())
		})
	}
}

func TestEmbeddedNeverSendsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeTestJSON(w, http.StatusOK, map[string]interface{}{"found": false, "casos": []interface{}{}})
	}))
	defer srv.Close()

	session := NewSession()
	session.SetToken("should-not-leak")
	c := New(srv.URL, session)

	lookup, err := c.Embedded.LookupPaciente(context.Background(), "123456789")
	require.NoError(t, err)
	assert.False(t, lookup.Found)
	assert.NotNil(t, lookup.Casos)
}

func TestEmbeddedLookupToleratesBarePacienteShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, http.StatusOK, map[string]interface{}{
			"id":             4,
			"identificacion": "123456789",
			"nombre":         "Ana",
			"apellidos":      "Ruiz",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, NewSession())
	lookup, err := c.Embedded.LookupPaciente(context.Background(), "123456789")
	require.NoError(t, err)
	require.True(t, lookup.Found)
	require.NotNil(t, lookup.Paciente)
	assert.Equal(t, "Ana", lookup.Paciente.Nombre)
}

func TestCasosListSendsFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "ABIERTO", q.Get("estado"))
		assert.Equal(t, "ALTA", q.Get("prioridad"))
		assert.Equal(t, "PQR-20260830-0001", q.Get("numero_caso"))
		assert.Equal(t, "25", q.Get("limit"))
		assert.Empty(t, q.Get("motivo_id"), "zero filters must be omitted")
		writeTestJSON(w, http.StatusOK, []interface{}{})
	}))
	defer srv.Close()

	c := New(srv.URL, NewSession())
	_, err := c.Casos.List(context.Background(), ListCasosParams{
		NumeroCaso: "PQR-20260830-0001",
		Estado:     EstadoAbierto,
		Prioridad:  PrioridadAlta,
		Limit:      25,
	})
	require.NoError(t, err)
}

func TestReporteFilename(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "desempeno_agentes", body["tipo"])
		assert.Equal(t, "excel", body["formato"])
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		_, _ = w.Write([]byte("PK\x03\x04"))
	}))
	defer srv.Close()

	c := New(srv.URL, NewSession())
	inicio := mustDate(t, "2026-08-01")
	fin := mustDate(t, "2026-08-30")

	reporte, err := c.Reportes.Generar(context.Background(), ReporteDesempenoAgentes, FormatoExcel, inicio, fin)
	require.NoError(t, err)
	assert.Equal(t, "reporte_desempeno_agentes_2026-08-01_2026-08-30.xlsx", reporte.Filename)
	assert.NotEmpty(t, reporte.Data)
}
