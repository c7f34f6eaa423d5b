package repo

import (
	"context"
	"fmt"

	"pqr-api/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UbicacionRepo reads the departamentos and ciudades catalogs
type UbicacionRepo struct {
	pool *pgxpool.Pool
}

// NewUbicacionRepo creates a new UbicacionRepo
func NewUbicacionRepo(pool *pgxpool.Pool) *UbicacionRepo {
	return &UbicacionRepo{pool: pool}
}

// ListDepartamentos returns all departamentos sorted by name
func (r *UbicacionRepo) ListDepartamentos(ctx context.Context) ([]domain.Departamento, error) {
	query := `SELECT id, nombre, codigo FROM departamentos ORDER BY nombre`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list departamentos: %w", err)
	}
	defer rows.Close()

	departamentos := []domain.Departamento{}
	for rows.Next() {
		var d domain.Departamento
		if err := rows.Scan(&d.ID, &d.Nombre, &d.Codigo); err != nil {
			return nil, fmt.Errorf("failed to scan departamento: %w", err)
		}
		departamentos = append(departamentos, d)
	}
	return departamentos, rows.Err()
}

// ListCiudades returns a departamento's ciudades sorted by name
func (r *UbicacionRepo) ListCiudades(ctx context.Context, departamentoID int64) ([]domain.Ciudad, error) {
	query := `SELECT id, nombre, departamento_id FROM ciudades WHERE departamento_id = $1 ORDER BY nombre`

	rows, err := r.pool.Query(ctx, query, departamentoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ciudades: %w", err)
	}
	defer rows.Close()

	ciudades := []domain.Ciudad{}
	for rows.Next() {
		var c domain.Ciudad
		if err := rows.Scan(&c.ID, &c.Nombre, &c.DepartamentoID); err != nil {
			return nil, fmt.Errorf("failed to scan ciudad: %w", err)
		}
		ciudades = append(ciudades, c)
	}
	return ciudades, rows.Err()
}
