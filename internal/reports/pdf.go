// Package reports renders the downloadable PDF and Excel reports.
package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"pqr-api/internal/domain"
)

// Corporate green used across headers and titles
var verde = [3]int{0x05, 0x96, 0x69}

func nuevoPDF(titulo, inicio, fin string, conFecha bool) (*fpdf.Fpdf, func(string) string) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(verde[0], verde[1], verde[2])
	pdf.CellFormat(0, 14, tr(titulo), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Período: %s a %s", inicio, fin)), "", 1, "L", false, 0, "")
	if conFecha {
		generado := time.Now().Format("2006-01-02 15:04")
		pdf.CellFormat(0, 7, tr("Fecha de generación: "+generado), "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)

	return pdf, tr
}

// PDFDesempenoAgentes renders the agent performance report
func PDFDesempenoAgentes(agentes []domain.DesempenoAgente, inicio, fin string) ([]byte, error) {
	pdf, tr := nuevoPDF("REPORTE DE DESEMPEÑO DE AGENTES", inicio, fin, true)

	widths := []float64{80, 30, 30, 35}
	headers := []string{"Agente", "Abiertos", "Cerrados", "Promedio (hrs)"}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(verde[0], verde[1], verde[2])
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 10, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetFillColor(0xF5, 0xF5, 0xDC)
	pdf.SetTextColor(0, 0, 0)
	for _, a := range agentes {
		pdf.CellFormat(widths[0], 8, tr(a.Agente), "1", 0, "C", true, 0, "")
		pdf.CellFormat(widths[1], 8, fmt.Sprintf("%d", a.Abiertos), "1", 0, "C", true, 0, "")
		pdf.CellFormat(widths[2], 8, fmt.Sprintf("%d", a.Cerrados), "1", 0, "C", true, 0, "")
		pdf.CellFormat(widths[3], 8, fmt.Sprintf("%.2f", a.PromedioHoras), "1", 0, "C", true, 0, "")
		pdf.Ln(-1)
	}

	return cerrarPDF(pdf)
}

// PDFCasosPeriodo renders the per period summary report
func PDFCasosPeriodo(resumen *domain.ResumenCasosPeriodo, inicio, fin string) ([]byte, error) {
	pdf, tr := nuevoPDF("REPORTE DE CASOS POR PERÍODO", inicio, fin, false)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, tr("Resumen Ejecutivo"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	filas := [][2]string{
		{"Total de Casos", fmt.Sprintf("%d", resumen.TotalCasos)},
		{"Casos Abiertos", fmt.Sprintf("%d", resumen.Abiertos)},
		{"Casos Cerrados", fmt.Sprintf("%d", resumen.Cerrados)},
		{"Casos en Proceso", fmt.Sprintf("%d", resumen.EnProceso)},
		{"Tiempo Promedio Resolución", fmt.Sprintf("%.2f horas", resumen.TiempoPromedio)},
	}

	for _, fila := range filas {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetFillColor(0xE8, 0xF5, 0xE9)
		pdf.CellFormat(80, 9, tr(fila[0]), "1", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(60, 9, tr(fila[1]), "1", 1, "L", false, 0, "")
	}

	return cerrarPDF(pdf)
}

func cerrarPDF(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
