package reports

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pqr-api/internal/domain"
)

func sampleAgentes() []domain.DesempenoAgente {
	return []domain.DesempenoAgente{
		{Agente: "María López", Abiertos: 4, Cerrados: 12, PromedioHoras: 18.5},
		{Agente: "Carlos Ñáñez", Abiertos: 1, Cerrados: 7, PromedioHoras: 26.25},
	}
}

func sampleResumen() *domain.ResumenCasosPeriodo {
	return &domain.ResumenCasosPeriodo{
		TotalCasos:     30,
		Abiertos:       5,
		Cerrados:       22,
		EnProceso:      3,
		TiempoPromedio: 21.4,
	}
}

func TestPDFDesempenoAgentes(t *testing.T) {
	data, err := PDFDesempenoAgentes(sampleAgentes(), "2026-08-01", "2026-08-30")
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestPDFCasosPeriodo(t *testing.T) {
	data, err := PDFCasosPeriodo(sampleResumen(), "2026-08-01", "2026-08-30")
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestPDFDesempenoAgentesEmpty(t *testing.T) {
	data, err := PDFDesempenoAgentes(nil, "2026-08-01", "2026-08-30")
	require.NoError(t, err)
	assert.NotEmpty(t, data, "empty data still renders the header rows")
}

func TestExcelDesempenoAgentes(t *testing.T) {
	data, err := ExcelDesempenoAgentes(sampleAgentes(), "2026-08-01", "2026-08-30")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	const hoja = "Desempeño Agentes"
	assert.Contains(t, f.GetSheetList(), hoja)

	titulo, err := f.GetCellValue(hoja, "A1")
	require.NoError(t, err)
	assert.Equal(t, "REPORTE DE DESEMPEÑO DE AGENTES", titulo)

	agente, err := f.GetCellValue(hoja, "A6")
	require.NoError(t, err)
	assert.Equal(t, "María López", agente)

	cerrados, err := f.GetCellValue(hoja, "C7")
	require.NoError(t, err)
	assert.Equal(t, "7", cerrados)
}

func TestExcelCasosPeriodo(t *testing.T) {
	data, err := ExcelCasosPeriodo(sampleResumen(), "2026-08-01", "2026-08-30")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	const hoja = "Casos Período"
	assert.Contains(t, f.GetSheetList(), hoja)

	total, err := f.GetCellValue(hoja, "B6")
	require.NoError(t, err)
	assert.Equal(t, "30", total)

	promedio, err := f.GetCellValue(hoja, "B10")
	require.NoError(t, err)
	assert.Equal(t, "21.40 horas", promedio)
}
