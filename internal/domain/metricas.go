package domain

import "time"

// DashboardMetrics resumen operativo de GET /metricas/dashboard.
type DashboardMetrics struct {
	CasosAbiertosHoy             int     `json:"casos_abiertos_hoy"`
	CasosCerradosHoy             int     `json:"casos_cerrados_hoy"`
	CasosEnProceso               int     `json:"casos_en_proceso"`
	TasaResolucionPrimeraLlamada float64 `json:"tasa_resolucion_primera_llamada"`
	TiempoPromedioResolucion     float64 `json:"tiempo_promedio_resolucion"`
	TotalCasos                   int     `json:"total_casos"`
	AlertasActivas               int     `json:"alertas_activas"`
}

// CasosPorHora cantidad de casos creados en una hora del día consultado.
type CasosPorHora struct {
	Hora     int `json:"hora"`
	Cantidad int `json:"cantidad"`
}

// CasosPorMotivo cantidad de casos por motivo en un rango de fechas.
type CasosPorMotivo struct {
	Motivo   string `json:"motivo"`
	Cantidad int    `json:"cantidad"`
}

// DesempenoAgente casos abiertos/cerrados y promedio de resolución por
// agente asignado.
type DesempenoAgente struct {
	Agente        string  `json:"agente"`
	Abiertos      int     `json:"abiertos"`
	Cerrados      int     `json:"cerrados"`
	PromedioHoras float64 `json:"promedio_horas"`
}

// TiempoResolucionDia promedio diario de horas de resolución de los casos
// cerrados ese día.
type TiempoResolucionDia struct {
	Fecha         string  `json:"fecha"`
	PromedioHoras float64 `json:"promedio_horas"`
	Cerrados      int     `json:"cerrados"`
}

// TendenciaDia casos creados y cerrados por día para la serie histórica.
type TendenciaDia struct {
	Fecha    string `json:"fecha"`
	Creados  int    `json:"creados"`
	Cerrados int    `json:"cerrados"`
}

// RangoFechas rango inclusivo usado por las consultas de métricas.
type RangoFechas struct {
	Inicio time.Time
	Fin    time.Time
}
