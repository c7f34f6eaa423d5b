package service

import (
	"context"
	"time"

	"pqr-api/internal/domain"
	"pqr-api/internal/observability/logger"
	"pqr-api/internal/repo"

	"go.uber.org/zap"
)

var ErrAlertaNotFound = repo.ErrAlertaNotFound

// AlertaService handles operational alerts and the SLA sweep
type AlertaService struct {
	alertaRepo *repo.AlertaRepo
	casoRepo   *repo.CasoRepo
	slaDias    int
	log        *logger.Logger
}

func NewAlertaService(alertaRepo *repo.AlertaRepo, casoRepo *repo.CasoRepo, slaDias int, log *logger.Logger) *AlertaService {
	return &AlertaService{
		alertaRepo: alertaRepo,
		casoRepo:   casoRepo,
		slaDias:    slaDias,
		log:        log,
	}
}

// List returns alertas matching the filters, newest first
func (s *AlertaService) List(ctx context.Context, params domain.ListAlertasParams) ([]domain.Alerta, error) {
	return s.alertaRepo.List(ctx, params)
}

// MarcarLeida marks an alerta as read by the acting usuario
func (s *AlertaService) MarcarLeida(ctx context.Context, id int64, actor *domain.Usuario) error {
	if err := s.alertaRepo.MarcarLeida(ctx, id, actor.ID); err != nil {
		return err
	}

	s.log.Info(ctx, "alerta marked as read",
		logger.Module("alerta"), logger.Action("marcar_leida"),
		zap.Int64("alerta_id", id))

	return nil
}

// VerificarSLA sweeps open casos older than the SLA window and raises one
// SLA alerta per caso at most. Returns the number of casos inspected.
func (s *AlertaService) VerificarSLA(ctx context.Context) (int, error) {
	limite := time.Now().UTC().AddDate(0, 0, -s.slaDias)

	vencidos, err := s.casoRepo.VencidosSLA(ctx, limite)
	if err != nil {
		return 0, err
	}

	for _, caso := range vencidos {
		exists, err := s.alertaRepo.ExistsForCaso(ctx, caso.ID, domain.AlertaSLA5Dias)
		if err != nil {
			return 0, err
		}
		if exists {
			continue
		}

		if _, err := s.alertaRepo.Create(ctx, caso.ID, domain.AlertaSLA5Dias); err != nil {
			return 0, err
		}

		s.log.Warn(ctx, "SLA alerta raised",
			logger.Module("alerta"), logger.Action("verificar_sla"),
			zap.Int64("caso_id", caso.ID),
			zap.String("numero_caso", caso.NumeroCaso))
	}

	return len(vencidos), nil
}
