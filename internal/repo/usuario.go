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

// UsuarioRepo handles usuario persistence
type UsuarioRepo struct {
	pool *pgxpool.Pool
}

// NewUsuarioRepo creates a new UsuarioRepo
func NewUsuarioRepo(pool *pgxpool.Pool) *UsuarioRepo {
	return &UsuarioRepo{pool: pool}
}

const usuarioColumns = `id, username, password_hash, nombre_completo, email, rol, activo, fecha_creacion, ultimo_acceso`

func scanUsuario(row pgx.Row) (*domain.Usuario, error) {
	var u domain.Usuario
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.NombreCompleto, &u.Email,
		&u.Rol, &u.Activo, &u.FechaCreacion, &u.UltimoAcceso,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID returns a usuario by primary key
func (r *UsuarioRepo) GetByID(ctx context.Context, id int64) (*domain.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE id = $1`

	u, err := scanUsuario(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUsuarioNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get usuario: %w", err)
	}
	return u, nil
}

// GetByUsername returns a usuario by login name
func (r *UsuarioRepo) GetByUsername(ctx context.Context, username string) (*domain.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE username = $1`

	u, err := scanUsuario(r.pool.QueryRow(ctx, query, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUsuarioNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get usuario by username: %w", err)
	}
	return u, nil
}

// List returns all usuarios
func (r *UsuarioRepo) List(ctx context.Context) ([]domain.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios ORDER BY nombre_completo`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list usuarios: %w", err)
	}
	defer rows.Close()

	usuarios := []domain.Usuario{}
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan usuario: %w", err)
		}
		usuarios = append(usuarios, *u)
	}
	return usuarios, rows.Err()
}

// Create inserts a new usuario with the given password hash
func (r *UsuarioRepo) Create(ctx context.Context, req *domain.CreateUsuarioRequest, passwordHash string) (*domain.Usuario, error) {
	query := `
		INSERT INTO usuarios (username, password_hash, nombre_completo, email, rol, activo)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING ` + usuarioColumns

	u, err := scanUsuario(r.pool.QueryRow(ctx, query,
		req.Username, passwordHash, req.NombreCompleto, req.Email, req.Rol,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrUsuarioDuplicado
		}
		return nil, fmt.Errorf("failed to create usuario: %w", err)
	}
	return u, nil
}

// Update applies a partial update. passwordHash is only written when non-nil.
func (r *UsuarioRepo) Update(ctx context.Context, id int64, req *domain.UpdateUsuarioRequest, passwordHash *string) (*domain.Usuario, error) {
	query := `
		UPDATE usuarios SET
			nombre_completo = COALESCE($2, nombre_completo),
			email = COALESCE($3, email),
			activo = COALESCE($4, activo),
			password_hash = COALESCE($5, password_hash)
		WHERE id = $1
		RETURNING ` + usuarioColumns

	u, err := scanUsuario(r.pool.QueryRow(ctx, query, id,
		req.NombreCompleto, req.Email, req.Activo, passwordHash,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUsuarioNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update usuario: %w", err)
	}
	return u, nil
}

// TouchUltimoAcceso records a successful login
func (r *UsuarioRepo) TouchUltimoAcceso(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE usuarios SET ultimo_acceso = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to touch ultimo_acceso: %w", err)
	}
	return nil
}

// FirstActiveAgent returns the default agent for unattended case intake:
// the first active agente, falling back to any active usuario.
func (r *UsuarioRepo) FirstActiveAgent(ctx context.Context) (*domain.Usuario, error) {
	query := `
		SELECT ` + usuarioColumns + ` FROM usuarios
		WHERE activo = TRUE
		ORDER BY (rol = 'agente') DESC, id
		LIMIT 1`

	u, err := scanUsuario(r.pool.QueryRow(ctx, query))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUsuarioNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get default agent: %w", err)
	}
	return u, nil
}
