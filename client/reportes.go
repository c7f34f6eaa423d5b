package client

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Report types and formats accepted by Generar.
const (
	ReporteDesempenoAgentes = "desempeno_agentes"
	ReporteCasosPeriodo     = "casos_periodo"

	FormatoPDF   = "pdf"
	FormatoExcel = "excel"
)

// ReportesService renders downloadable reports.
type ReportesService struct {
	client *Client
}

// Reporte is a rendered report ready to hand to the operator. The filename
// follows reporte_{tipo}_{inicio}_{fin}.{ext}.
type Reporte struct {
	Filename string
	Data     []byte
}

// Generar renders a report for the inclusive date range and returns its
// bytes with the derived download filename.
func (s *ReportesService) Generar(ctx context.Context, tipo, formato string, inicio, fin time.Time) (*Reporte, error) {
	body := map[string]string{
		"tipo":    tipo,
		"formato": formato,
		"inicio":  inicio.Format("2006-01-02"),
		"fin":     fin.Format("2006-01-02"),
	}

	data, err := s.client.roundTrip(ctx, http.MethodPost, "/reportes/generar", nil, body, false)
	if err != nil {
		return nil, err
	}

	ext := "pdf"
	if formato == FormatoExcel {
		ext = "xlsx"
	}
	filename := fmt.Sprintf("reporte_%s_%s_%s.%s",
		tipo, inicio.Format("2006-01-02"), fin.Format("2006-01-02"), ext)

	return &Reporte{Filename: filename, Data: data}, nil
}
