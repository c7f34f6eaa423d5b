package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// MetricasService reads the dashboard and report metrics.
type MetricasService struct {
	client *Client
}

// Dashboard returns the daily counters.
func (s *MetricasService) Dashboard(ctx context.Context) (*DashboardMetricas, error) {
	var metricas DashboardMetricas
	if err := s.client.do(ctx, http.MethodGet, "/metricas/dashboard", nil, nil, &metricas, false); err != nil {
		return nil, err
	}
	return &metricas, nil
}

// CasosPorHora returns cases created per hour of one day.
func (s *MetricasService) CasosPorHora(ctx context.Context, fecha time.Time) ([]map[string]any, error) {
	q := url.Values{}
	q.Set("fecha", fecha.Format("2006-01-02"))
	return s.series(ctx, "/metricas/casos-por-hora", q)
}

// CasosPorMotivo returns the top motives between inicio and fin.
func (s *MetricasService) CasosPorMotivo(ctx context.Context, inicio, fin time.Time) ([]map[string]any, error) {
	return s.series(ctx, "/metricas/casos-por-motivo", rangoQuery(inicio, fin))
}

// DesempenoAgentes returns open/closed counts per agent between inicio and fin.
func (s *MetricasService) DesempenoAgentes(ctx context.Context, inicio, fin time.Time) ([]map[string]any, error) {
	return s.series(ctx, "/metricas/desempeno-agentes", rangoQuery(inicio, fin))
}

// TiempoResolucion returns the average resolution hours per close day.
func (s *MetricasService) TiempoResolucion(ctx context.Context, inicio, fin time.Time) ([]map[string]any, error) {
	return s.series(ctx, "/metricas/tiempo-resolucion", rangoQuery(inicio, fin))
}

// TendenciaHistorica returns created/closed counts per day over a trailing
// window of dias days.
func (s *MetricasService) TendenciaHistorica(ctx context.Context, dias int) ([]map[string]any, error) {
	q := url.Values{}
	if dias > 0 {
		q.Set("dias", strconv.Itoa(dias))
	}
	return s.series(ctx, "/metricas/tendencia-historica", q)
}

// series fetches one chart endpoint. The rows keep their wire shape since
// each chart reads different keys.
func (s *MetricasService) series(ctx context.Context, path string, q url.Values) ([]map[string]any, error) {
	var rows []map[string]any
	if err := s.client.do(ctx, http.MethodGet, path, q, nil, &rows, false); err != nil {
		return nil, err
	}
	return rows, nil
}

func rangoQuery(inicio, fin time.Time) url.Values {
	q := url.Values{}
	q.Set("inicio", inicio.Format("2006-01-02"))
	q.Set("fin", fin.Format("2006-01-02"))
	return q
}
