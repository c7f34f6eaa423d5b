package service

import (
	"context"

	"pqr-api/internal/domain"
	"pqr-api/internal/observability/logger"
	"pqr-api/internal/repo"

	"go.uber.org/zap"
)

// InteraccionService records follow up calls on existing casos
type InteraccionService struct {
	interaccionRepo *repo.InteraccionRepo
	casoRepo        *repo.CasoRepo
	log             *logger.Logger
}

func NewInteraccionService(interaccionRepo *repo.InteraccionRepo, casoRepo *repo.CasoRepo, log *logger.Logger) *InteraccionService {
	return &InteraccionService{
		interaccionRepo: interaccionRepo,
		casoRepo:        casoRepo,
		log:             log,
	}
}

// Create records an interaccion and its event log entry
func (s *InteraccionService) Create(ctx context.Context, req *domain.CreateInteraccionRequest) (*domain.Interaccion, error) {
	if _, err := s.casoRepo.GetByID(ctx, req.CasoID); err != nil {
		return nil, err
	}

	interaccion, err := s.interaccionRepo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.casoRepo.AddEvento(ctx, req.CasoID, domain.EventoInteraccion, nil, req.AgentName, nil, nil); err != nil {
		s.log.Error(ctx, "failed to add interaccion evento",
			logger.Module("interaccion"), logger.Action("create"),
			zap.Int64("caso_id", req.CasoID), zap.Error(err))
	}

	s.log.Info(ctx, "interaccion recorded",
		logger.Module("interaccion"), logger.Action("create"),
		zap.Int64("caso_id", req.CasoID))

	return interaccion, nil
}

// ListByCaso returns a caso's interacciones, oldest first
func (s *InteraccionService) ListByCaso(ctx context.Context, casoID int64) ([]domain.Interaccion, error) {
	if _, err := s.casoRepo.GetByID(ctx, casoID); err != nil {
		return nil, err
	}
	return s.interaccionRepo.ListByCaso(ctx, casoID)
}
