package service

import (
	"context"
	"time"

	"pqr-api/internal/domain"
	"pqr-api/internal/observability/logger"
	"pqr-api/internal/repo"
)

// MetricasService exposes the dashboard aggregates
type MetricasService struct {
	metricasRepo *repo.MetricasRepo
	log          *logger.Logger
}

func NewMetricasService(metricasRepo *repo.MetricasRepo, log *logger.Logger) *MetricasService {
	return &MetricasService{metricasRepo: metricasRepo, log: log}
}

// Dashboard returns the operational summary
func (s *MetricasService) Dashboard(ctx context.Context) (*domain.DashboardMetrics, error) {
	return s.metricasRepo.Dashboard(ctx)
}

// CasosPorHora counts casos created per hour of the given day
func (s *MetricasService) CasosPorHora(ctx context.Context, fecha time.Time) ([]domain.CasosPorHora, error) {
	return s.metricasRepo.CasosPorHora(ctx, fecha)
}

// CasosPorMotivo returns the top motivos by case count in the range
func (s *MetricasService) CasosPorMotivo(ctx context.Context, rango domain.RangoFechas) ([]domain.CasosPorMotivo, error) {
	return s.metricasRepo.CasosPorMotivo(ctx, rango)
}

// DesempenoAgentes aggregates per agent performance over the range
func (s *MetricasService) DesempenoAgentes(ctx context.Context, rango domain.RangoFechas) ([]domain.DesempenoAgente, error) {
	return s.metricasRepo.DesempenoAgentes(ctx, rango)
}

// TiempoResolucion returns the daily average resolution hours over the range
func (s *MetricasService) TiempoResolucion(ctx context.Context, rango domain.RangoFechas) ([]domain.TiempoResolucionDia, error) {
	return s.metricasRepo.TiempoResolucion(ctx, rango)
}

// TendenciaHistorica returns per day created and closed counts over the range
func (s *MetricasService) TendenciaHistorica(ctx context.Context, rango domain.RangoFechas) ([]domain.TendenciaDia, error) {
	return s.metricasRepo.TendenciaHistorica(ctx, rango)
}
