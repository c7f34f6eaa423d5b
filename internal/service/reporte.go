package service

import (
	"context"
	"fmt"
	"time"

	"pqr-api/internal/domain"
	"pqr-api/internal/observability/logger"
	"pqr-api/internal/repo"
	"pqr-api/internal/reports"

	"go.uber.org/zap"
)

// Reporte is a rendered report ready to download
type Reporte struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReporteService renders the downloadable reports from the metric aggregates
type ReporteService struct {
	metricasRepo *repo.MetricasRepo
	log          *logger.Logger
}

func NewReporteService(metricasRepo *repo.MetricasRepo, log *logger.Logger) *ReporteService {
	return &ReporteService{metricasRepo: metricasRepo, log: log}
}

// Generar builds the requested report. The range is inclusive: Fin covers the
// whole day.
func (s *ReporteService) Generar(ctx context.Context, req *domain.GenerarReporteRequest) (*Reporte, error) {
	inicio, err := time.Parse("2006-01-02", req.Inicio)
	if err != nil {
		return nil, fmt.Errorf("parse inicio: %w", err)
	}
	fin, err := time.Parse("2006-01-02", req.Fin)
	if err != nil {
		return nil, fmt.Errorf("parse fin: %w", err)
	}
	rango := domain.RangoFechas{
		Inicio: inicio,
		Fin:    fin.Add(24*time.Hour - time.Nanosecond),
	}

	var data []byte
	switch req.Tipo {
	case domain.ReporteDesempenoAgentes:
		agentes, err := s.metricasRepo.DesempenoAgentes(ctx, rango)
		if err != nil {
			return nil, err
		}
		if req.Formato == domain.FormatoPDF {
			data, err = reports.PDFDesempenoAgentes(agentes, req.Inicio, req.Fin)
		} else {
			data, err = reports.ExcelDesempenoAgentes(agentes, req.Inicio, req.Fin)
		}
		if err != nil {
			return nil, err
		}
	case domain.ReporteCasosPeriodo:
		resumen, err := s.metricasRepo.ResumenPeriodo(ctx, rango)
		if err != nil {
			return nil, err
		}
		if req.Formato == domain.FormatoPDF {
			data, err = reports.PDFCasosPeriodo(resumen, req.Inicio, req.Fin)
		} else {
			data, err = reports.ExcelCasosPeriodo(resumen, req.Inicio, req.Fin)
		}
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown report type %q", req.Tipo)
	}

	ext := "pdf"
	contentType := "application/pdf"
	if req.Formato == domain.FormatoExcel {
		ext = "xlsx"
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	s.log.Info(ctx, "report generated",
		logger.Module("reporte"), logger.Action("generar"),
		zap.String("tipo", req.Tipo),
		zap.String("formato", req.Formato))

	return &Reporte{
		Filename:    fmt.Sprintf("reporte_%s_%s_%s.%s", req.Tipo, req.Inicio, req.Fin, ext),
		ContentType: contentType,
		Data:        data,
	}, nil
}
