package repo

import (
	"context"
	"fmt"
	"time"

	"pqr-api/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MetricasRepo runs the aggregate queries behind the dashboard and reports
type MetricasRepo struct {
	pool *pgxpool.Pool
}

// NewMetricasRepo creates a new MetricasRepo
func NewMetricasRepo(pool *pgxpool.Pool) *MetricasRepo {
	return &MetricasRepo{pool: pool}
}

// Dashboard computes the operational summary in a single round trip
func (r *MetricasRepo) Dashboard(ctx context.Context) (*domain.DashboardMetrics, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM casos WHERE fecha_creacion::date = CURRENT_DATE AND estado = 'ABIERTO'),
			(SELECT COUNT(*) FROM casos WHERE fecha_creacion::date = CURRENT_DATE AND estado = 'CERRADO'),
			(SELECT COUNT(*) FROM casos WHERE estado = 'EN_PROCESO'),
			(SELECT COUNT(*) FROM casos WHERE estado = 'CERRADO'),
			(SELECT COUNT(*) FROM casos c WHERE c.estado = 'CERRADO'
				AND (SELECT COUNT(*) FROM interacciones i WHERE i.caso_id = c.id) = 1),
			(SELECT COALESCE(ROUND(AVG(tiempo_resolucion_horas)::numeric, 2), 0) FROM casos WHERE tiempo_resolucion_horas IS NOT NULL),
			(SELECT COUNT(*) FROM casos),
			(SELECT COUNT(*) FROM alertas WHERE leida = FALSE)`

	var m domain.DashboardMetrics
	var cerrados, cerradosPrimera int
	err := r.pool.QueryRow(ctx, query).Scan(
		&m.CasosAbiertosHoy, &m.CasosCerradosHoy, &m.CasosEnProceso,
		&cerrados, &cerradosPrimera, &m.TiempoPromedioResolucion,
		&m.TotalCasos, &m.AlertasActivas,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard metrics: %w", err)
	}

	if cerrados > 0 {
		m.TasaResolucionPrimeraLlamada = round2(float64(cerradosPrimera) / float64(cerrados) * 100)
	}
	return &m, nil
}

// CasosPorHora counts casos created per hour of the given day
func (r *MetricasRepo) CasosPorHora(ctx context.Context, fecha time.Time) ([]domain.CasosPorHora, error) {
	query := `
		SELECT EXTRACT(HOUR FROM fecha_creacion)::int AS hora, COUNT(*)
		FROM casos
		WHERE fecha_creacion::date = $1::date
		GROUP BY hora
		ORDER BY hora`

	rows, err := r.pool.Query(ctx, query, fecha)
	if err != nil {
		return nil, fmt.Errorf("failed to count casos por hora: %w", err)
	}
	defer rows.Close()

	result := []domain.CasosPorHora{}
	for rows.Next() {
		var c domain.CasosPorHora
		if err := rows.Scan(&c.Hora, &c.Cantidad); err != nil {
			return nil, fmt.Errorf("failed to scan casos por hora: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// CasosPorMotivo returns the top ten motivos by case count in the range
func (r *MetricasRepo) CasosPorMotivo(ctx context.Context, rango domain.RangoFechas) ([]domain.CasosPorMotivo, error) {
	query := `
		SELECT m.nombre, COUNT(*) AS cantidad
		FROM casos c
		JOIN motivos_pqr m ON m.id = c.motivo_id
		WHERE c.fecha_creacion >= $1 AND c.fecha_creacion <= $2
		GROUP BY m.nombre
		ORDER BY cantidad DESC
		LIMIT 10`

	rows, err := r.pool.Query(ctx, query, rango.Inicio, rango.Fin)
	if err != nil {
		return nil, fmt.Errorf("failed to count casos por motivo: %w", err)
	}
	defer rows.Close()

	result := []domain.CasosPorMotivo{}
	for rows.Next() {
		var c domain.CasosPorMotivo
		if err := rows.Scan(&c.Motivo, &c.Cantidad); err != nil {
			return nil, fmt.Errorf("failed to scan casos por motivo: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// DesempenoAgentes aggregates open/closed counts and average resolution per
// assigned agent over the range.
func (r *MetricasRepo) DesempenoAgentes(ctx context.Context, rango domain.RangoFechas) ([]domain.DesempenoAgente, error) {
	query := `
		SELECT u.nombre_completo,
			COUNT(*) FILTER (WHERE c.estado = 'ABIERTO'),
			COUNT(*) FILTER (WHERE c.estado = 'CERRADO'),
			COALESCE(ROUND(AVG(c.tiempo_resolucion_horas)::numeric, 2), 0)
		FROM usuarios u
		JOIN casos c ON c.agente_asignado_id = u.id
		WHERE c.fecha_creacion >= $1 AND c.fecha_creacion <= $2
		GROUP BY u.nombre_completo
		ORDER BY u.nombre_completo`

	rows, err := r.pool.Query(ctx, query, rango.Inicio, rango.Fin)
	if err != nil {
		return nil, fmt.Errorf("failed to compute desempeno agentes: %w", err)
	}
	defer rows.Close()

	result := []domain.DesempenoAgente{}
	for rows.Next() {
		var d domain.DesempenoAgente
		if err := rows.Scan(&d.Agente, &d.Abiertos, &d.Cerrados, &d.PromedioHoras); err != nil {
			return nil, fmt.Errorf("failed to scan desempeno agente: %w", err)
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// TiempoResolucion returns the daily average resolution hours of casos closed
// on each day of the range.
func (r *MetricasRepo) TiempoResolucion(ctx context.Context, rango domain.RangoFechas) ([]domain.TiempoResolucionDia, error) {
	query := `
		SELECT to_char(fecha_cierre::date, 'YYYY-MM-DD'),
			COALESCE(ROUND(AVG(tiempo_resolucion_horas)::numeric, 2), 0),
			COUNT(*)
		FROM casos
		WHERE fecha_cierre IS NOT NULL AND fecha_cierre >= $1 AND fecha_cierre <= $2
		GROUP BY fecha_cierre::date
		ORDER BY fecha_cierre::date`

	rows, err := r.pool.Query(ctx, query, rango.Inicio, rango.Fin)
	if err != nil {
		return nil, fmt.Errorf("failed to compute tiempo resolucion: %w", err)
	}
	defer rows.Close()

	result := []domain.TiempoResolucionDia{}
	for rows.Next() {
		var d domain.TiempoResolucionDia
		if err := rows.Scan(&d.Fecha, &d.PromedioHoras, &d.Cerrados); err != nil {
			return nil, fmt.Errorf("failed to scan tiempo resolucion: %w", err)
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// TendenciaHistorica returns per day counts of casos created and closed
func (r *MetricasRepo) TendenciaHistorica(ctx context.Context, rango domain.RangoFechas) ([]domain.TendenciaDia, error) {
	query := `
		SELECT to_char(d.dia, 'YYYY-MM-DD'),
			(SELECT COUNT(*) FROM casos WHERE fecha_creacion::date = d.dia),
			(SELECT COUNT(*) FROM casos WHERE fecha_cierre::date = d.dia)
		FROM generate_series($1::date, $2::date, '1 day') AS d(dia)
		ORDER BY d.dia`

	rows, err := r.pool.Query(ctx, query, rango.Inicio, rango.Fin)
	if err != nil {
		return nil, fmt.Errorf("failed to compute tendencia historica: %w", err)
	}
	defer rows.Close()

	result := []domain.TendenciaDia{}
	for rows.Next() {
		var d domain.TendenciaDia
		if err := rows.Scan(&d.Fecha, &d.Creados, &d.Cerrados); err != nil {
			return nil, fmt.Errorf("failed to scan tendencia dia: %w", err)
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// ResumenPeriodo aggregates caso totals for the period report
func (r *MetricasRepo) ResumenPeriodo(ctx context.Context, rango domain.RangoFechas) (*domain.ResumenCasosPeriodo, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE estado = 'ABIERTO'),
			COUNT(*) FILTER (WHERE estado = 'CERRADO'),
			COUNT(*) FILTER (WHERE estado = 'EN_PROCESO'),
			COALESCE(ROUND(AVG(tiempo_resolucion_horas)::numeric, 2), 0)
		FROM casos
		WHERE fecha_creacion >= $1 AND fecha_creacion <= $2`

	var res domain.ResumenCasosPeriodo
	err := r.pool.QueryRow(ctx, query, rango.Inicio, rango.Fin).Scan(
		&res.TotalCasos, &res.Abiertos, &res.Cerrados, &res.EnProceso, &res.TiempoPromedio,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute resumen periodo: %w", err)
	}
	return &res, nil
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
