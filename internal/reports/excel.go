package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"pqr-api/internal/domain"
)

const (
	colorVerde = "059669"
	colorTexto = "FFFFFF"
)

func estilosExcel(f *excelize.File) (titulo, encabezado, celda int, err error) {
	titulo, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16, Color: colorVerde},
	})
	if err != nil {
		return 0, 0, 0, err
	}

	borde := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}

	encabezado, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: colorTexto},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{colorVerde}},
		Border:    borde,
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return 0, 0, 0, err
	}

	celda, err = f.NewStyle(&excelize.Style{Border: borde})
	if err != nil {
		return 0, 0, 0, err
	}
	return titulo, encabezado, celda, nil
}

// ExcelDesempenoAgentes renders the agent performance workbook
func ExcelDesempenoAgentes(agentes []domain.DesempenoAgente, inicio, fin string) ([]byte, error) {
	f := excelize.NewFile()
	const hoja = "Desempeño Agentes"
	f.SetSheetName("Sheet1", hoja)

	estiloTitulo, estiloEncabezado, estiloCelda, err := estilosExcel(f)
	if err != nil {
		return nil, fmt.Errorf("failed to build styles: %w", err)
	}

	f.SetCellValue(hoja, "A1", "REPORTE DE DESEMPEÑO DE AGENTES")
	f.SetCellStyle(hoja, "A1", "A1", estiloTitulo)
	f.SetCellValue(hoja, "A2", fmt.Sprintf("Período: %s a %s", inicio, fin))
	f.SetCellValue(hoja, "A3", "Generado: "+time.Now().Format("2006-01-02 15:04"))

	encabezados := []string{"Agente", "Casos Abiertos", "Casos Cerrados", "Promedio Horas"}
	for i, h := range encabezados {
		col, _ := excelize.CoordinatesToCellName(i+1, 5)
		f.SetCellValue(hoja, col, h)
		f.SetCellStyle(hoja, col, col, estiloEncabezado)
	}

	for i, a := range agentes {
		fila := i + 6
		valores := []interface{}{a.Agente, a.Abiertos, a.Cerrados, a.PromedioHoras}
		for j, v := range valores {
			celda, _ := excelize.CoordinatesToCellName(j+1, fila)
			f.SetCellValue(hoja, celda, v)
			f.SetCellStyle(hoja, celda, celda, estiloCelda)
		}
	}

	f.SetColWidth(hoja, "A", "A", 30)
	f.SetColWidth(hoja, "B", "D", 15)

	return cerrarExcel(f)
}

// ExcelCasosPeriodo renders the per period summary workbook
func ExcelCasosPeriodo(resumen *domain.ResumenCasosPeriodo, inicio, fin string) ([]byte, error) {
	f := excelize.NewFile()
	const hoja = "Casos Período"
	f.SetSheetName("Sheet1", hoja)

	estiloTitulo, estiloEncabezado, estiloCelda, err := estilosExcel(f)
	if err != nil {
		return nil, fmt.Errorf("failed to build styles: %w", err)
	}

	f.SetCellValue(hoja, "A1", "REPORTE DE CASOS POR PERÍODO")
	f.SetCellStyle(hoja, "A1", "A1", estiloTitulo)
	f.SetCellValue(hoja, "A2", fmt.Sprintf("Período: %s a %s", inicio, fin))
	f.SetCellValue(hoja, "A3", "Generado: "+time.Now().Format("2006-01-02 15:04"))

	f.SetCellValue(hoja, "A5", "Resumen Ejecutivo")
	f.SetCellStyle(hoja, "A5", "A5", estiloEncabezado)

	filas := [][2]interface{}{
		{"Total de Casos", resumen.TotalCasos},
		{"Casos Abiertos", resumen.Abiertos},
		{"Casos Cerrados", resumen.Cerrados},
		{"Casos en Proceso", resumen.EnProceso},
		{"Tiempo Promedio Resolución", fmt.Sprintf("%.2f horas", resumen.TiempoPromedio)},
	}
	for i, fila := range filas {
		a, _ := excelize.CoordinatesToCellName(1, i+6)
		b, _ := excelize.CoordinatesToCellName(2, i+6)
		f.SetCellValue(hoja, a, fila[0])
		f.SetCellValue(hoja, b, fila[1])
		f.SetCellStyle(hoja, a, b, estiloCelda)
	}

	f.SetColWidth(hoja, "A", "A", 30)
	f.SetColWidth(hoja, "B", "B", 20)

	return cerrarExcel(f)
}

func cerrarExcel(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}
