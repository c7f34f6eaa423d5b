package handler

import (
	"net/http"

	"pqr-api/internal/auth"
	"pqr-api/internal/domain"
	"pqr-api/internal/http/httperr"
	"pqr-api/internal/observability/logger"
	"pqr-api/internal/service"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	var req domain.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		validationError(w, ctx, err)
		return
	}

	resp, err := h.service.Login(ctx, &req)
	if err != nil {
		handleServiceError(w, ctx, log, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Logout handles POST /api/auth/logout. Sessions are stateless JWTs, the
// endpoint exists so clients have a uniform sign out call.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, mensaje{Message: "Sesión cerrada exitosamente"})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	usuario, ok := auth.GetUsuario(ctx)
	if !ok {
		httperr.Unauthorized401(w, ctx, httperr.ErrCodeInvalidToken, "authentication required")
		return
	}

	writeJSON(w, http.StatusOK, usuario)
}
