package service

import (
	"context"

	"pqr-api/internal/auth"
	"pqr-api/internal/domain"
	"pqr-api/internal/observability/logger"
	"pqr-api/internal/repo"

	"go.uber.org/zap"
)

var (
	ErrUsuarioNotFound  = repo.ErrUsuarioNotFound
	ErrUsuarioDuplicado = repo.ErrUsuarioDuplicado
)

// UsuarioService handles user administration
type UsuarioService struct {
	usuarioRepo *repo.UsuarioRepo
	log         *logger.Logger
}

func NewUsuarioService(usuarioRepo *repo.UsuarioRepo, log *logger.Logger) *UsuarioService {
	return &UsuarioService{usuarioRepo: usuarioRepo, log: log}
}

// List returns all usuarios
func (s *UsuarioService) List(ctx context.Context) ([]domain.Usuario, error) {
	return s.usuarioRepo.List(ctx)
}

// Create registers a new usuario with a hashed password
func (s *UsuarioService) Create(ctx context.Context, req *domain.CreateUsuarioRequest) (*domain.Usuario, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	usuario, err := s.usuarioRepo.Create(ctx, req, hash)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "usuario created",
		logger.Module("usuario"), logger.Action("create"),
		zap.Int64("usuario_id", usuario.ID),
		zap.String("rol", string(usuario.Rol)))

	return usuario, nil
}

// Update applies a partial update, rehashing the password when provided
func (s *UsuarioService) Update(ctx context.Context, id int64, req *domain.UpdateUsuarioRequest) (*domain.Usuario, error) {
	var hash *string
	if req.Password != nil {
		h, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		hash = &h
	}

	usuario, err := s.usuarioRepo.Update(ctx, id, req, hash)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "usuario updated",
		logger.Module("usuario"), logger.Action("update"),
		zap.Int64("usuario_id", usuario.ID))

	return usuario, nil
}
