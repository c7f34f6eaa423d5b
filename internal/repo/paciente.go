package repo

import (
	"context"
	"errors"
	"fmt"

	"pqr-api/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PacienteRepo handles paciente persistence
type PacienteRepo struct {
	pool *pgxpool.Pool
}

// NewPacienteRepo creates a new PacienteRepo
func NewPacienteRepo(pool *pgxpool.Pool) *PacienteRepo {
	return &PacienteRepo{pool: pool}
}

const pacienteColumns = `id, identificacion, nombre, apellidos, celular, direccion, departamento, ciudad, fecha_registro, actualizado_por`

func scanPaciente(row pgx.Row) (*domain.Paciente, error) {
	var p domain.Paciente
	err := row.Scan(
		&p.ID, &p.Identificacion, &p.Nombre, &p.Apellidos, &p.Celular,
		&p.Direccion, &p.Departamento, &p.Ciudad, &p.FechaRegistro, &p.ActualizadoPor,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new paciente
func (r *PacienteRepo) Create(ctx context.Context, req *domain.CreatePacienteRequest, actualizadoPor *int64) (*domain.Paciente, error) {
	query := `
		INSERT INTO pacientes (identificacion, nombre, apellidos, celular, direccion, departamento, ciudad, actualizado_por)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + pacienteColumns

	p, err := scanPaciente(r.pool.QueryRow(ctx, query,
		req.Identificacion, req.Nombre, req.Apellidos, req.Celular,
		req.Direccion, req.Departamento, req.Ciudad, actualizadoPor,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrPacienteDuplicado
		}
		return nil, fmt.Errorf("failed to create paciente: %w", err)
	}
	return p, nil
}

// GetByID returns a paciente by primary key
func (r *PacienteRepo) GetByID(ctx context.Context, id int64) (*domain.Paciente, error) {
	query := `SELECT ` + pacienteColumns + ` FROM pacientes WHERE id = $1`

	p, err := scanPaciente(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPacienteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get paciente: %w", err)
	}
	return p, nil
}

// GetByIdentificacion returns a paciente by cedula
func (r *PacienteRepo) GetByIdentificacion(ctx context.Context, identificacion string) (*domain.Paciente, error) {
	query := `SELECT ` + pacienteColumns + ` FROM pacientes WHERE identificacion = $1`

	p, err := scanPaciente(r.pool.QueryRow(ctx, query, identificacion))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPacienteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get paciente by identificacion: %w", err)
	}
	return p, nil
}

// List returns pacientes matching the filters
func (r *PacienteRepo) List(ctx context.Context, params domain.ListPacientesParams) ([]domain.Paciente, error) {
	query := `SELECT ` + pacienteColumns + ` FROM pacientes WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if params.Identificacion != nil {
		query += fmt.Sprintf(" AND identificacion = $%d", argPos)
		args = append(args, *params.Identificacion)
		argPos++
	}
	if params.Nombre != nil {
		query += fmt.Sprintf(" AND (nombre ILIKE $%d OR apellidos ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+*params.Nombre+"%")
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY fecha_registro DESC OFFSET $%d LIMIT $%d", argPos, argPos+1)
	args = append(args, params.Skip, params.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pacientes: %w", err)
	}
	defer rows.Close()

	pacientes := []domain.Paciente{}
	for rows.Next() {
		p, err := scanPaciente(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan paciente: %w", err)
		}
		pacientes = append(pacientes, *p)
	}
	return pacientes, rows.Err()
}

// Update applies a partial update and returns the updated paciente
func (r *PacienteRepo) Update(ctx context.Context, id int64, req *domain.UpdatePacienteRequest, actualizadoPor int64) (*domain.Paciente, error) {
	query := `
		UPDATE pacientes SET
			nombre = COALESCE($2, nombre),
			apellidos = COALESCE($3, apellidos),
			celular = COALESCE($4, celular),
			direccion = COALESCE($5, direccion),
			departamento = COALESCE($6, departamento),
			ciudad = COALESCE($7, ciudad),
			actualizado_por = $8
		WHERE id = $1
		RETURNING ` + pacienteColumns

	p, err := scanPaciente(r.pool.QueryRow(ctx, query, id,
		req.Nombre, req.Apellidos, req.Celular, req.Direccion,
		req.Departamento, req.Ciudad, actualizadoPor,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPacienteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update paciente: %w", err)
	}
	return p, nil
}
