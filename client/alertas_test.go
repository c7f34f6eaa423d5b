package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// alertasFixtureServer answers /alertas with in-memory state so marking an
// alert read is visible in the next listing.
func alertasFixtureServer(t *testing.T) *httptest.Server {
	leidas := map[int64]bool{1: false, 2: false, 3: true}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/alertas":
			filtro := r.URL.Query().Get("leida")
			out := []map[string]interface{}{}
			for id, leida := range leidas {
				if filtro != "" && filtro != strconv.FormatBool(leida) {
					continue
				}
				out = append(out, map[string]interface{}{
					"id":      id,
					"caso_id": 10 + id,
					"tipo":    AlertaSLA5Dias,
					"leida":   leida,
				})
			}
			writeTestJSON(w, http.StatusOK, out)
		case r.Method == http.MethodPut && r.URL.Path == "/api/alertas/2/marcar-leida":
			leidas[2] = true
			writeTestJSON(w, http.StatusOK, map[string]interface{}{"message": "Alerta marcada como leída"})
		default:
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
	}))
}

func TestMarcarLeidaMovesAlertBetweenPartitions(t *testing.T) {
	srv := alertasFixtureServer(t)
	defer srv.Close()

	c := New(srv.URL, NewSession())
	ctx := context.Background()
	noLeida := false
	leida := true

	sinLeer, err := c.Alertas.List(ctx, ListAlertasParams{Leida: &noLeida})
	require.NoError(t, err)
	require.Len(t, sinLeer, 2)

	require.NoError(t, c.Alertas.MarcarLeida(ctx, 2))

	sinLeer, err = c.Alertas.List(ctx, ListAlertasParams{Leida: &noLeida})
	require.NoError(t, err)
	assert.Len(t, sinLeer, 1, "unread count drops by one")

	leidasAhora, err := c.Alertas.List(ctx, ListAlertasParams{Leida: &leida})
	require.NoError(t, err)
	assert.Len(t, leidasAhora, 2, "the alert shows up on the read side")
}

func TestAlertasListSendsFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "false", q.Get("leida"))
		assert.Equal(t, AlertaSLA5Dias, q.Get("tipo"))
		writeTestJSON(w, http.StatusOK, []interface{}{})
	}))
	defer srv.Close()

	c := New(srv.URL, NewSession())
	noLeida := false
	_, err := c.Alertas.List(context.Background(), ListAlertasParams{Leida: &noLeida, Tipo: AlertaSLA5Dias})
	require.NoError(t, err)
}
