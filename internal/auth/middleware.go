package auth

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"pqr-api/internal/domain"
	"pqr-api/internal/http/httperr"
	"pqr-api/internal/observability/logger"
)

type contextKey string

const (
	claimsContextKey  contextKey = "claims"
	usuarioContextKey contextKey = "usuario"
)

// UserLoader resolves the authenticated usuario from the token subject
type UserLoader interface {
	GetByUsername(ctx context.Context, username string) (*domain.Usuario, error)
}

// Middleware validates bearer tokens, loads the usuario and injects both
// into the request context. Inactive users are rejected even with a valid
// token.
func Middleware(manager *TokenManager, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.GetLogger(ctx)

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Warn(ctx, "missing authorization header",
					logger.Module("auth"), logger.Action("authenticate"))
				httperr.WriteErrorDetail(w, ctx, http.StatusUnauthorized, httperr.ErrCodeMissingAuthorization,
					"authentication required", "No se pudieron validar las credenciales")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Warn(ctx, "invalid authorization header format",
					logger.Module("auth"), logger.Action("authenticate"))
				httperr.WriteErrorDetail(w, ctx, http.StatusUnauthorized, httperr.ErrCodeInvalidScheme,
					"authentication required", "No se pudieron validar las credenciales")
				return
			}

			tokenString := parts[1]

			claims, err := manager.Validate(tokenString)
			if err != nil {
				reason := AuthFailureUnknown
				if authErr, ok := IsAuthError(err); ok {
					reason = authErr.Reason
				}
				log.Warn(ctx, "token validation failed",
					logger.Module("auth"), logger.Action("authenticate"),
					zap.String("reason", string(reason)),
					zap.String("token", maskToken(tokenString)),
				)
				httperr.WriteErrorDetail(w, ctx, http.StatusUnauthorized, httperr.ErrCodeInvalidToken,
					"authentication required", "No se pudieron validar las credenciales")
				return
			}

			usuario, err := users.GetByUsername(ctx, claims.Subject)
			if err != nil {
				log.Warn(ctx, "token subject not found",
					logger.Module("auth"), logger.Action("authenticate"))
				httperr.WriteErrorDetail(w, ctx, http.StatusUnauthorized, httperr.ErrCodeInvalidToken,
					"authentication required", "No se pudieron validar las credenciales")
				return
			}
			if !usuario.Activo {
				log.Warn(ctx, "inactive user rejected",
					logger.Module("auth"), logger.Action("authenticate"))
				httperr.WriteErrorDetail(w, ctx, http.StatusForbidden, httperr.ErrCodeForbidden,
					"Access denied", "Usuario inactivo")
				return
			}

			ctx = context.WithValue(ctx, claimsContextKey, claims)
			ctx = context.WithValue(ctx, usuarioContextKey, usuario)
			ctx = logger.SetUserIDInContext(ctx, strconv.FormatInt(usuario.ID, 10))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests whose authenticated usuario is not an
// administrador. Must run after Middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		usuario, ok := GetUsuario(ctx)
		if !ok || usuario.Rol != domain.RolAdministrador {
			httperr.WriteErrorDetail(w, ctx, http.StatusForbidden, httperr.ErrCodeForbidden,
				"Access denied", "No tiene permisos para realizar esta acción")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetClaims retrieves claims from context
func GetClaims(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok
}

// GetUsuario retrieves the authenticated usuario from context
func GetUsuario(ctx context.Context) (*domain.Usuario, bool) {
	usuario, ok := ctx.Value(usuarioContextKey).(*domain.Usuario)
	return usuario, ok
}
