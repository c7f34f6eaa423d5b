package repo

import (
	"context"
	"errors"
	"fmt"

	"pqr-api/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MotivoRepo handles the motivos catalog
type MotivoRepo struct {
	pool *pgxpool.Pool
}

// NewMotivoRepo creates a new MotivoRepo
func NewMotivoRepo(pool *pgxpool.Pool) *MotivoRepo {
	return &MotivoRepo{pool: pool}
}

const motivoColumns = `id, nombre, descripcion, activo, orden`

func scanMotivo(row pgx.Row) (*domain.MotivoPQR, error) {
	var m domain.MotivoPQR
	if err := row.Scan(&m.ID, &m.Nombre, &m.Descripcion, &m.Activo, &m.Orden); err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns motivos sorted by orden, optionally filtered by activo
func (r *MotivoRepo) List(ctx context.Context, activo *bool) ([]domain.MotivoPQR, error) {
	query := `SELECT ` + motivoColumns + ` FROM motivos_pqr`
	args := []interface{}{}
	if activo != nil {
		query += ` WHERE activo = $1`
		args = append(args, *activo)
	}
	query += ` ORDER BY orden`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list motivos: %w", err)
	}
	defer rows.Close()

	motivos := []domain.MotivoPQR{}
	for rows.Next() {
		m, err := scanMotivo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan motivo: %w", err)
		}
		motivos = append(motivos, *m)
	}
	return motivos, rows.Err()
}

// GetByID returns a motivo by primary key
func (r *MotivoRepo) GetByID(ctx context.Context, id int64) (*domain.MotivoPQR, error) {
	m, err := scanMotivo(r.pool.QueryRow(ctx, `SELECT `+motivoColumns+` FROM motivos_pqr WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMotivoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get motivo: %w", err)
	}
	return m, nil
}

// Create inserts a new motivo
func (r *MotivoRepo) Create(ctx context.Context, req *domain.MotivoRequest) (*domain.MotivoPQR, error) {
	activo := true
	if req.Activo != nil {
		activo = *req.Activo
	}

	query := `
		INSERT INTO motivos_pqr (nombre, descripcion, orden, activo)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + motivoColumns

	m, err := scanMotivo(r.pool.QueryRow(ctx, query, req.Nombre, req.Descripcion, req.Orden, activo))
	if err != nil {
		return nil, fmt.Errorf("failed to create motivo: %w", err)
	}
	return m, nil
}

// Update replaces the mutable fields of a motivo
func (r *MotivoRepo) Update(ctx context.Context, id int64, req *domain.MotivoRequest) (*domain.MotivoPQR, error) {
	query := `
		UPDATE motivos_pqr SET
			nombre = $2,
			descripcion = $3,
			orden = $4,
			activo = COALESCE($5, activo)
		WHERE id = $1
		RETURNING ` + motivoColumns

	m, err := scanMotivo(r.pool.QueryRow(ctx, query, id, req.Nombre, req.Descripcion, req.Orden, req.Activo))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMotivoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update motivo: %w", err)
	}
	return m, nil
}
