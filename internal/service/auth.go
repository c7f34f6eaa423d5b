package service

import (
	"context"
	"errors"
	"fmt"

	"pqr-api/internal/auth"
	"pqr-api/internal/domain"
	"pqr-api/internal/observability/logger"
	"pqr-api/internal/repo"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsuarioInactivo    = errors.New("usuario is inactive")
)

// AuthService handles login and session issuance
type AuthService struct {
	usuarioRepo *repo.UsuarioRepo
	tokens      *auth.TokenManager
	log         *logger.Logger
}

func NewAuthService(usuarioRepo *repo.UsuarioRepo, tokens *auth.TokenManager, log *logger.Logger) *AuthService {
	return &AuthService{
		usuarioRepo: usuarioRepo,
		tokens:      tokens,
		log:         log,
	}
}

// Login verifies credentials and returns a signed session token.
// Bad username and bad password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.TokenResponse, error) {
	usuario, err := s.usuarioRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repo.ErrUsuarioNotFound) {
			s.log.Warn(ctx, "login failed: unknown username",
				logger.Module("auth"), logger.Action("login"))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}

	if !auth.VerifyPassword(usuario.PasswordHash, req.Password) {
		s.log.Warn(ctx, "login failed: wrong password",
			logger.Module("auth"), logger.Action("login"),
			zap.Int64("usuario_id", usuario.ID),
		)
		return nil, ErrInvalidCredentials
	}

	if !usuario.Activo {
		s.log.Warn(ctx, "login rejected: inactive usuario",
			logger.Module("auth"), logger.Action("login"),
			zap.Int64("usuario_id", usuario.ID),
		)
		return nil, ErrUsuarioInactivo
	}

	if err := s.usuarioRepo.TouchUltimoAcceso(ctx, usuario.ID); err != nil {
		// Non-fatal: the session is still valid without the access timestamp
		s.log.Warn(ctx, "failed to record ultimo_acceso",
			logger.Module("auth"), logger.Action("login"), zap.Error(err))
	}

	token, err := s.tokens.Issue(usuario)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info(ctx, "login successful",
		logger.Module("auth"), logger.Action("login"),
		zap.Int64("usuario_id", usuario.ID),
		zap.String("rol", string(usuario.Rol)),
	)

	return &domain.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        *usuario,
	}, nil
}
