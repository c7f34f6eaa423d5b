package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pqr-api/internal/domain"
)

const testSecret = "una-clave-de-prueba-con-suficiente-longitud"

func testUsuario() *domain.Usuario {
	return &domain.Usuario{
		ID:       7,
		Username: "maria.lopez",
		Rol:      domain.RolAgente,
		Activo:   true,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager(testSecret, "pqr-api", time.Hour)

	token, err := manager.Issue(testUsuario())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "maria.lopez", claims.Subject)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, domain.RolAgente, claims.Rol)
	assert.Equal(t, "pqr-api", claims.Issuer)
}

func TestValidateExpiredToken(t *testing.T) {
	// Negative TTL beyond the 30s clock skew.
	manager := NewTokenManager(testSecret, "pqr-api", -2*time.Minute)

	token, err := manager.Issue(testUsuario())
	require.NoError(t, err)

	_, err = manager.Validate(token)
	require.Error(t, err)
	authErr, ok := IsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, AuthFailureTokenExpired, authErr.Reason)
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := NewTokenManager(testSecret, "pqr-api", time.Hour)
	validator := NewTokenManager("otra-clave-distinta-igual-de-larga", "pqr-api", time.Hour)

	token, err := issuer.Issue(testUsuario())
	require.NoError(t, err)

	_, err = validator.Validate(token)
	require.Error(t, err)
	authErr, ok := IsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, AuthFailureInvalidSignature, authErr.Reason)
}

func TestValidateWrongIssuer(t *testing.T) {
	issuer := NewTokenManager(testSecret, "otro-servicio", time.Hour)
	validator := NewTokenManager(testSecret, "pqr-api", time.Hour)

	token, err := issuer.Issue(testUsuario())
	require.NoError(t, err)

	_, err = validator.Validate(token)
	require.Error(t, err)
	authErr, ok := IsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, AuthFailureInvalidIssuer, authErr.Reason)
}

func TestValidateGarbage(t *testing.T) {
	manager := NewTokenManager(testSecret, "pqr-api", time.Hour)

	_, err := manager.Validate("no.es.un.jwt")
	require.Error(t, err)
}

func TestClaimsValidate(t *testing.T) {
	manager := NewTokenManager(testSecret, "pqr-api", time.Hour)

	// A usuario with no ID produces claims the validator must reject.
	token, err := manager.Issue(&domain.Usuario{Username: "x", Rol: domain.RolAgente})
	require.NoError(t, err)

	_, err = manager.Validate(token)
	require.Error(t, err)
	authErr, ok := IsAuthError(err)
	require.True(t, ok)
	assert.Equal(t, AuthFailureInvalidClaims, authErr.Reason)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secreta123")
	require.NoError(t, err)
	require.NotEqual(t, "secreta123", hash)

	assert.True(t, VerifyPassword(hash, "secreta123"))
	assert.False(t, VerifyPassword(hash, "secreta124"))
	assert.False(t, VerifyPassword("not-a-hash", "secreta123"))
}
