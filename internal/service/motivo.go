package service

import (
	"context"

	"pqr-api/internal/domain"
	"pqr-api/internal/observability/logger"
	"pqr-api/internal/repo"

	"go.uber.org/zap"
)

// MotivoService handles the motivos catalog
type MotivoService struct {
	motivoRepo *repo.MotivoRepo
	log        *logger.Logger
}

func NewMotivoService(motivoRepo *repo.MotivoRepo, log *logger.Logger) *MotivoService {
	return &MotivoService{motivoRepo: motivoRepo, log: log}
}

// List returns motivos sorted by orden, optionally filtered by activo
func (s *MotivoService) List(ctx context.Context, activo *bool) ([]domain.MotivoPQR, error) {
	return s.motivoRepo.List(ctx, activo)
}

// Create adds a motivo to the catalog
func (s *MotivoService) Create(ctx context.Context, req *domain.MotivoRequest) (*domain.MotivoPQR, error) {
	motivo, err := s.motivoRepo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "motivo created",
		logger.Module("motivo"), logger.Action("create"),
		zap.Int64("motivo_id", motivo.ID))

	return motivo, nil
}

// Update replaces the mutable fields of a motivo
func (s *MotivoService) Update(ctx context.Context, id int64, req *domain.MotivoRequest) (*domain.MotivoPQR, error) {
	motivo, err := s.motivoRepo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "motivo updated",
		logger.Module("motivo"), logger.Action("update"),
		zap.Int64("motivo_id", motivo.ID))

	return motivo, nil
}
