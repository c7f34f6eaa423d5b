// Package handler exposes the HTTP surface of the PQR API.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"pqr-api/internal/http/httperr"
	"pqr-api/internal/observability/logger"
	"pqr-api/internal/repo"
	"pqr-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httperr.BadRequest400(w, r.Context(), httperr.ErrCodeInvalidFormat, "invalid JSON body")
		return false
	}
	return true
}

func parseID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		httperr.BadRequest400(w, r.Context(), httperr.ErrCodeInvalidParameter, param+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// validationError maps validator failures to the field map of the error
// envelope, keyed by lowercased struct field.
func validationError(w http.ResponseWriter, ctx context.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = fe.Tag()
		}
		httperr.BadRequest400WithFields(w, ctx, httperr.ErrCodeValidationError, "validation failed", fields)
		return
	}
	httperr.BadRequest400(w, ctx, httperr.ErrCodeValidationError, err.Error())
}

// handleServiceError maps service and repo sentinels to responses. The
// detail field carries the operator facing message in Spanish.
func handleServiceError(w http.ResponseWriter, ctx context.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httperr.WriteErrorDetail(w, ctx, http.StatusUnauthorized, httperr.ErrCodeInvalidCredentials,
			"authentication failed", "Usuario o contraseña incorrectos")
	case errors.Is(err, service.ErrUsuarioInactivo):
		httperr.WriteErrorDetail(w, ctx, http.StatusForbidden, httperr.ErrCodeForbidden,
			"access denied", "Usuario inactivo")
	case errors.Is(err, repo.ErrCasoNotFound):
		httperr.NotFound404(w, ctx, "Caso no encontrado")
	case errors.Is(err, repo.ErrPacienteNotFound):
		httperr.NotFound404(w, ctx, "Paciente no encontrado")
	case errors.Is(err, repo.ErrMotivoNotFound):
		httperr.NotFound404(w, ctx, "Motivo no encontrado")
	case errors.Is(err, repo.ErrUsuarioNotFound):
		httperr.NotFound404(w, ctx, "Usuario no encontrado")
	case errors.Is(err, repo.ErrAlertaNotFound):
		httperr.NotFound404(w, ctx, "Alerta no encontrada")
	case errors.Is(err, repo.ErrPacienteDuplicado):
		httperr.WriteErrorDetail(w, ctx, http.StatusBadRequest, httperr.ErrCodeConflict,
			"duplicate paciente", "Ya existe un paciente con esta identificación")
	case errors.Is(err, repo.ErrUsuarioDuplicado):
		httperr.WriteErrorDetail(w, ctx, http.StatusBadRequest, httperr.ErrCodeConflict,
			"duplicate usuario", "Usuario o email ya existe")
	default:
		log.Error(ctx, "unhandled internal server error", zap.Error(err), zap.String("error_details", err.Error()))
		logger.SetRootError(ctx, err)
		httperr.InternalError500(w, ctx, "an internal error occurred")
	}
}

// mensaje is the plain message envelope used by a few operations
type mensaje struct {
	Message string `json:"message"`
}
