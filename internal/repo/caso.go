package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pqr-api/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CasoRepo handles caso persistence, including the legacy estado history and
// the unified event log.
type CasoRepo struct {
	pool *pgxpool.Pool
}

// NewCasoRepo creates a new CasoRepo
func NewCasoRepo(pool *pgxpool.Pool) *CasoRepo {
	return &CasoRepo{pool: pool}
}

const casoColumns = `id, numero_caso, paciente_id, motivo_id, prioridad, estado, origen, descripcion,
	agente_creador_id, agente_asignado_id, fecha_creacion, fecha_actualizacion, fecha_cierre, tiempo_resolucion_horas`

func scanCaso(row pgx.Row) (*domain.Caso, error) {
	var c domain.Caso
	err := row.Scan(
		&c.ID, &c.NumeroCaso, &c.PacienteID, &c.MotivoID, &c.Prioridad, &c.Estado,
		&c.Origen, &c.Descripcion, &c.AgenteCreadorID, &c.AgenteAsignadoID,
		&c.FechaCreacion, &c.FechaActualizacion, &c.FechaCierre, &c.TiempoResolucionHoras,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCasoParams carries the fields the service resolved for a new caso.
type CreateCasoParams struct {
	NumeroCaso       string
	PacienteID       int64
	MotivoID         int64
	Prioridad        domain.Prioridad
	Estado           domain.EstadoCaso
	Origen           domain.Origen
	Descripcion      string
	AgenteCreadorID  int64
	AgenteAsignadoID *int64
}

// UpdateCasoParams partial update applied by the service after computing the
// resulting history entries. Cierre fields are only written on first close.
// AgenteAsignadoID is only applied when AgenteAsignadoSet is true; a nil value
// with the flag set writes NULL, unassigning the agent.
type UpdateCasoParams struct {
	Estado                *domain.EstadoCaso
	Prioridad             *domain.Prioridad
	AgenteAsignadoID      *int64
	AgenteAsignadoSet     bool
	Descripcion           *string
	FechaCierre           *time.Time
	TiempoResolucionHoras *float64
}

// LastNumeroForPrefix returns the highest numero_caso with the given prefix,
// or empty string when the prefix has no cases yet.
func (r *CasoRepo) LastNumeroForPrefix(ctx context.Context, prefix string) (string, error) {
	query := `SELECT numero_caso FROM casos WHERE numero_caso LIKE $1 ORDER BY numero_caso DESC LIMIT 1`

	var numero string
	err := r.pool.QueryRow(ctx, query, prefix+"%").Scan(&numero)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get last numero_caso: %w", err)
	}
	return numero, nil
}

// Create inserts a new caso
func (r *CasoRepo) Create(ctx context.Context, params CreateCasoParams) (*domain.Caso, error) {
	query := `
		INSERT INTO casos (numero_caso, paciente_id, motivo_id, prioridad, estado, origen, descripcion, agente_creador_id, agente_asignado_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + casoColumns

	c, err := scanCaso(r.pool.QueryRow(ctx, query,
		params.NumeroCaso, params.PacienteID, params.MotivoID, params.Prioridad,
		params.Estado, params.Origen, params.Descripcion, params.AgenteCreadorID, params.AgenteAsignadoID,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create caso: %w", err)
	}
	return c, nil
}

// GetByID returns a caso by primary key
func (r *CasoRepo) GetByID(ctx context.Context, id int64) (*domain.Caso, error) {
	c, err := scanCaso(r.pool.QueryRow(ctx, `SELECT `+casoColumns+` FROM casos WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCasoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get caso: %w", err)
	}
	return c, nil
}

// GetByNumeroCaso returns a caso by its case number
func (r *CasoRepo) GetByNumeroCaso(ctx context.Context, numero string) (*domain.Caso, error) {
	c, err := scanCaso(r.pool.QueryRow(ctx, `SELECT `+casoColumns+` FROM casos WHERE numero_caso = $1`, numero))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCasoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get caso by numero: %w", err)
	}
	return c, nil
}

// List returns casos matching the filters, newest first, with the paciente
// preloaded for list views.
func (r *CasoRepo) List(ctx context.Context, params domain.ListCasosParams) ([]domain.Caso, error) {
	query := `
		SELECT c.id, c.numero_caso, c.paciente_id, c.motivo_id, c.prioridad, c.estado, c.origen, c.descripcion,
			c.agente_creador_id, c.agente_asignado_id, c.fecha_creacion, c.fecha_actualizacion, c.fecha_cierre, c.tiempo_resolucion_horas,
			p.id, p.identificacion, p.nombre, p.apellidos, p.celular, p.direccion, p.departamento, p.ciudad, p.fecha_registro, p.actualizado_por
		FROM casos c
		JOIN pacientes p ON p.id = c.paciente_id
		WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	addFilter := func(clause string, value interface{}) {
		query += fmt.Sprintf(clause, argPos)
		args = append(args, value)
		argPos++
	}

	if params.NumeroCaso != nil {
		addFilter(" AND c.numero_caso ILIKE $%d", "%"+*params.NumeroCaso+"%")
	}
	if params.Estado != nil {
		addFilter(" AND c.estado = $%d", *params.Estado)
	}
	if params.Prioridad != nil {
		addFilter(" AND c.prioridad = $%d", *params.Prioridad)
	}
	if params.MotivoID != nil {
		addFilter(" AND c.motivo_id = $%d", *params.MotivoID)
	}
	if params.PacienteIdentificacion != nil {
		addFilter(" AND p.identificacion = $%d", *params.PacienteIdentificacion)
	}
	if params.AgenteID != nil {
		query += fmt.Sprintf(" AND (c.agente_creador_id = $%d OR c.agente_asignado_id = $%d)", argPos, argPos)
		args = append(args, *params.AgenteID)
		argPos++
	}
	if params.FechaDesde != nil {
		addFilter(" AND c.fecha_creacion >= $%d", *params.FechaDesde)
	}
	if params.FechaHasta != nil {
		addFilter(" AND c.fecha_creacion <= $%d", *params.FechaHasta)
	}

	query += fmt.Sprintf(" ORDER BY c.fecha_creacion DESC OFFSET $%d LIMIT $%d", argPos, argPos+1)
	args = append(args, params.Skip, params.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list casos: %w", err)
	}
	defer rows.Close()

	casos := []domain.Caso{}
	for rows.Next() {
		var c domain.Caso
		var p domain.Paciente
		err := rows.Scan(
			&c.ID, &c.NumeroCaso, &c.PacienteID, &c.MotivoID, &c.Prioridad, &c.Estado,
			&c.Origen, &c.Descripcion, &c.AgenteCreadorID, &c.AgenteAsignadoID,
			&c.FechaCreacion, &c.FechaActualizacion, &c.FechaCierre, &c.TiempoResolucionHoras,
			&p.ID, &p.Identificacion, &p.Nombre, &p.Apellidos, &p.Celular,
			&p.Direccion, &p.Departamento, &p.Ciudad, &p.FechaRegistro, &p.ActualizadoPor,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan caso: %w", err)
		}
		c.Paciente = &p
		casos = append(casos, c)
	}
	return casos, rows.Err()
}

// ListByPaciente returns a paciente's casos, newest first
func (r *CasoRepo) ListByPaciente(ctx context.Context, pacienteID int64) ([]domain.Caso, error) {
	query := `SELECT ` + casoColumns + ` FROM casos WHERE paciente_id = $1 ORDER BY fecha_creacion DESC`

	rows, err := r.pool.Query(ctx, query, pacienteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list casos by paciente: %w", err)
	}
	defer rows.Close()

	casos := []domain.Caso{}
	for rows.Next() {
		c, err := scanCaso(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan caso: %w", err)
		}
		casos = append(casos, *c)
	}
	return casos, rows.Err()
}

// Update applies a partial update and returns the updated caso
func (r *CasoRepo) Update(ctx context.Context, id int64, params UpdateCasoParams) (*domain.Caso, error) {
	query := `
		UPDATE casos SET
			estado = COALESCE($2, estado),
			prioridad = COALESCE($3, prioridad),
			agente_asignado_id = CASE WHEN $4 THEN $5 ELSE agente_asignado_id END,
			descripcion = COALESCE($6, descripcion),
			fecha_cierre = COALESCE($7, fecha_cierre),
			tiempo_resolucion_horas = COALESCE($8, tiempo_resolucion_horas),
			fecha_actualizacion = now()
		WHERE id = $1
		RETURNING ` + casoColumns

	c, err := scanCaso(r.pool.QueryRow(ctx, query, id,
		params.Estado, params.Prioridad, params.AgenteAsignadoSet, params.AgenteAsignadoID,
		params.Descripcion, params.FechaCierre, params.TiempoResolucionHoras,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCasoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update caso: %w", err)
	}
	return c, nil
}

// VencidosSLA returns non-closed casos created on or before the limit
func (r *CasoRepo) VencidosSLA(ctx context.Context, limite time.Time) ([]domain.Caso, error) {
	query := `SELECT ` + casoColumns + ` FROM casos WHERE estado <> 'CERRADO' AND fecha_creacion <= $1`

	rows, err := r.pool.Query(ctx, query, limite)
	if err != nil {
		return nil, fmt.Errorf("failed to list casos vencidos: %w", err)
	}
	defer rows.Close()

	casos := []domain.Caso{}
	for rows.Next() {
		c, err := scanCaso(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan caso: %w", err)
		}
		casos = append(casos, *c)
	}
	return casos, rows.Err()
}

// AddHistorialEstado appends a legacy estado transition row
func (r *CasoRepo) AddHistorialEstado(ctx context.Context, casoID int64, anterior *string, nuevo string, usuarioID *int64, comentario *string) error {
	query := `
		INSERT INTO historial_estados (caso_id, estado_anterior, estado_nuevo, usuario_id, comentario)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.pool.Exec(ctx, query, casoID, anterior, nuevo, usuarioID, comentario); err != nil {
		return fmt.Errorf("failed to add historial_estado: %w", err)
	}
	return nil
}

// HistorialEstados returns the legacy estado history, oldest first
func (r *CasoRepo) HistorialEstados(ctx context.Context, casoID int64) ([]domain.HistorialEstado, error) {
	query := `
		SELECT id, caso_id, estado_anterior, estado_nuevo, usuario_id, comentario, fecha_cambio
		FROM historial_estados WHERE caso_id = $1 ORDER BY fecha_cambio`

	rows, err := r.pool.Query(ctx, query, casoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list historial_estados: %w", err)
	}
	defer rows.Close()

	historial := []domain.HistorialEstado{}
	for rows.Next() {
		var h domain.HistorialEstado
		err := rows.Scan(&h.ID, &h.CasoID, &h.EstadoAnterior, &h.EstadoNuevo, &h.UsuarioID, &h.Comentario, &h.FechaCambio)
		if err != nil {
			return nil, fmt.Errorf("failed to scan historial_estado: %w", err)
		}
		historial = append(historial, h)
	}
	return historial, rows.Err()
}

// AddEvento appends a row to the unified event log
func (r *CasoRepo) AddEvento(ctx context.Context, casoID int64, tipo domain.TipoEvento, anterior, nuevo *string, usuarioID *int64, comentario *string) error {
	query := `
		INSERT INTO historial_eventos (caso_id, tipo_evento, valor_anterior, valor_nuevo, usuario_id, comentario)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := r.pool.Exec(ctx, query, casoID, tipo, anterior, nuevo, usuarioID, comentario); err != nil {
		return fmt.Errorf("failed to add evento: %w", err)
	}
	return nil
}

// Eventos returns the unified event log with the actor name denormalized,
// oldest first.
func (r *CasoRepo) Eventos(ctx context.Context, casoID int64) ([]domain.Evento, error) {
	query := `
		SELECT e.id, e.caso_id, e.tipo_evento, e.valor_anterior, e.valor_nuevo,
			e.usuario_id, COALESCE(u.nombre_completo, ''), e.comentario, e.fecha_evento
		FROM historial_eventos e
		LEFT JOIN usuarios u ON u.id = e.usuario_id
		WHERE e.caso_id = $1
		ORDER BY e.fecha_evento`

	rows, err := r.pool.Query(ctx, query, casoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list eventos: %w", err)
	}
	defer rows.Close()

	eventos := []domain.Evento{}
	for rows.Next() {
		var e domain.Evento
		err := rows.Scan(&e.ID, &e.CasoID, &e.TipoEvento, &e.ValorAnterior, &e.ValorNuevo,
			&e.UsuarioID, &e.UsuarioNombre, &e.Comentario, &e.FechaEvento)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evento: %w", err)
		}
		eventos = append(eventos, e)
	}
	return eventos, rows.Err()
}
