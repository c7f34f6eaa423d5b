package domain

import (
	"github.com/go-playground/validator/v10"
)

// Tipos de reporte disponibles.
const (
	ReporteDesempenoAgentes = "desempeno_agentes"
	ReporteCasosPeriodo     = "casos_periodo"
)

// Formatos de salida.
const (
	FormatoPDF   = "pdf"
	FormatoExcel = "excel"
)

// GenerarReporteRequest payload de POST /reportes/generar.
// Inicio y Fin van en formato YYYY-MM-DD.
type GenerarReporteRequest struct {
	Tipo    string `json:"tipo" validate:"required,oneof=desempeno_agentes casos_periodo"`
	Formato string `json:"formato" validate:"required,oneof=pdf excel"`
	Inicio  string `json:"inicio" validate:"required,datetime=2006-01-02"`
	Fin     string `json:"fin" validate:"required,datetime=2006-01-02"`
}

// ResumenCasosPeriodo datos agregados del reporte de casos por período.
type ResumenCasosPeriodo struct {
	TotalCasos     int     `json:"total_casos"`
	Abiertos       int     `json:"abiertos"`
	Cerrados       int     `json:"cerrados"`
	EnProceso      int     `json:"en_proceso"`
	TiempoPromedio float64 `json:"tiempo_promedio"`
}

// Validate valida el GenerarReporteRequest.
func (r *GenerarReporteRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
