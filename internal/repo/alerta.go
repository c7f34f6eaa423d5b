package repo

import (
	"context"
	"fmt"

	"pqr-api/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AlertaRepo handles alerta persistence
type AlertaRepo struct {
	pool *pgxpool.Pool
}

// NewAlertaRepo creates a new AlertaRepo
func NewAlertaRepo(pool *pgxpool.Pool) *AlertaRepo {
	return &AlertaRepo{pool: pool}
}

const alertaColumns = `id, caso_id, tipo_alerta, fecha_creacion, leida, usuario_notificado_id`

func scanAlerta(row pgx.Row) (*domain.Alerta, error) {
	var a domain.Alerta
	err := row.Scan(&a.ID, &a.CasoID, &a.TipoAlerta, &a.FechaCreacion, &a.Leida, &a.UsuarioNotificadoID)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new unread alerta
func (r *AlertaRepo) Create(ctx context.Context, casoID int64, tipo domain.TipoAlerta) (*domain.Alerta, error) {
	query := `
		INSERT INTO alertas (caso_id, tipo_alerta)
		VALUES ($1, $2)
		RETURNING ` + alertaColumns

	a, err := scanAlerta(r.pool.QueryRow(ctx, query, casoID, tipo))
	if err != nil {
		return nil, fmt.Errorf("failed to create alerta: %w", err)
	}
	return a, nil
}

// List returns alertas matching the filters, newest first
func (r *AlertaRepo) List(ctx context.Context, params domain.ListAlertasParams) ([]domain.Alerta, error) {
	query := `SELECT ` + alertaColumns + ` FROM alertas WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if params.Leida != nil {
		query += fmt.Sprintf(" AND leida = $%d", argPos)
		args = append(args, *params.Leida)
		argPos++
	}
	if params.Tipo != nil {
		query += fmt.Sprintf(" AND tipo_alerta = $%d", argPos)
		args = append(args, *params.Tipo)
		argPos++
	}

	query += " ORDER BY fecha_creacion DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list alertas: %w", err)
	}
	defer rows.Close()

	alertas := []domain.Alerta{}
	for rows.Next() {
		a, err := scanAlerta(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alerta: %w", err)
		}
		alertas = append(alertas, *a)
	}
	return alertas, rows.Err()
}

// MarcarLeida marks an alerta as read by the given user
func (r *AlertaRepo) MarcarLeida(ctx context.Context, id, usuarioID int64) error {
	query := `UPDATE alertas SET leida = TRUE, usuario_notificado_id = $2 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, usuarioID)
	if err != nil {
		return fmt.Errorf("failed to mark alerta as read: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrAlertaNotFound
	}
	return nil
}

// ExistsForCaso reports whether the caso already has an alerta of the given type
func (r *AlertaRepo) ExistsForCaso(ctx context.Context, casoID int64, tipo domain.TipoAlerta) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM alertas WHERE caso_id = $1 AND tipo_alerta = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, casoID, tipo).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check alerta: %w", err)
	}
	return exists, nil
}
