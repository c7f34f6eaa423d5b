package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pqr-api/internal/domain"
)

type stubUserLoader struct {
	usuario *domain.Usuario
	err     error
}

func (s *stubUserLoader) GetByUsername(_ context.Context, _ string) (*domain.Usuario, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.usuario, nil
}

func decodeErrorDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		OK    bool `json:"ok"`
		Error struct {
			Code   string `json:"code"`
			Detail string `json:"detail"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.OK)
	return body.Error.Detail
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	manager := NewTokenManager(testSecret, "pqr-api", time.Hour)
	handler := Middleware(manager, &stubUserLoader{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/casos", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No se pudieron validar las credenciales", decodeErrorDetail(t, rec))
}

func TestMiddlewareRejectsBadScheme(t *testing.T) {
	manager := NewTokenManager(testSecret, "pqr-api", time.Hour)
	handler := Middleware(manager, &stubUserLoader{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	for _, header := range []string{"Basic abc", "bearer abc", "Bearer", "Bearer a b"} {
		req := httptest.NewRequest(http.MethodGet, "/api/casos", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestMiddlewareRejectsInvalidToken(t *testing.T) {
	manager := NewTokenManager(testSecret, "pqr-api", time.Hour)
	handler := Middleware(manager, &stubUserLoader{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/casos", nil)
	req.Header.Set("Authorization", "Bearer no.es.valido")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No se pudieron validar las credenciales", decodeErrorDetail(t, rec))
}

func TestMiddlewareRejectsUnknownSubject(t *testing.T) {
	manager := NewTokenManager(testSecret, "pqr-api", time.Hour)
	token, err := manager.Issue(testUsuario())
	require.NoError(t, err)

	loader := &stubUserLoader{err: errors.New("usuario no encontrado")}
	handler := Middleware(manager, loader)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/casos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareRejectsInactiveUser(t *testing.T) {
	manager := NewTokenManager(testSecret, "pqr-api", time.Hour)
	usuario := testUsuario()
	token, err := manager.Issue(usuario)
	require.NoError(t, err)

	usuario.Activo = false
	handler := Middleware(manager, &stubUserLoader{usuario: usuario})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/casos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Usuario inactivo", decodeErrorDetail(t, rec))
}

func TestMiddlewareInjectsUsuarioAndClaims(t *testing.T) {
	manager := NewTokenManager(testSecret, "pqr-api", time.Hour)
	usuario := testUsuario()
	token, err := manager.Issue(usuario)
	require.NoError(t, err)

	var reached bool
	handler := Middleware(manager, &stubUserLoader{usuario: usuario})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true

		gotUsuario, ok := GetUsuario(r.Context())
		require.True(t, ok)
		assert.Equal(t, usuario.Username, gotUsuario.Username)

		gotClaims, ok := GetClaims(r.Context())
		require.True(t, ok)
		assert.Equal(t, usuario.ID, gotClaims.UserID)
		assert.Equal(t, usuario.Rol, gotClaims.Rol)

		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/casos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("agente is rejected", func(t *testing.T) {
		agente := testUsuario()
		ctx := context.WithValue(context.Background(), usuarioContextKey, agente)
		req := httptest.NewRequest(http.MethodPost, "/api/motivos", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		RequireAdmin(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "No tiene permisos para realizar esta acción", decodeErrorDetail(t, rec))
	})

	t.Run("administrador passes", func(t *testing.T) {
		admin := testUsuario()
		admin.Rol = domain.RolAdministrador
		ctx := context.WithValue(context.Background(), usuarioContextKey, admin)
		req := httptest.NewRequest(http.MethodPost, "/api/motivos", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		RequireAdmin(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing usuario is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/motivos", nil)
		rec := httptest.NewRecorder()
		RequireAdmin(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
