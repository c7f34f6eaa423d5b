package repo

import (
	"context"
	"fmt"

	"pqr-api/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InteraccionRepo handles telephony interaction records
type InteraccionRepo struct {
	pool *pgxpool.Pool
}

// NewInteraccionRepo creates a new InteraccionRepo
func NewInteraccionRepo(pool *pgxpool.Pool) *InteraccionRepo {
	return &InteraccionRepo{pool: pool}
}

const interaccionColumns = `id, caso_id, omnileads_call_id, omnileads_campaign_id, omnileads_campaign_name,
	omnileads_campaign_type, agent_id, agent_username, agent_name, telefono_contacto, datetime_llamada,
	rec_filename, observaciones, fecha_registro`

func scanInteraccion(row pgx.Row) (*domain.Interaccion, error) {
	var i domain.Interaccion
	err := row.Scan(
		&i.ID, &i.CasoID, &i.OmnileadsCallID, &i.OmnileadsCampaignID, &i.OmnileadsCampaignName,
		&i.OmnileadsCampaignType, &i.AgentID, &i.AgentUsername, &i.AgentName, &i.TelefonoContacto,
		&i.DatetimeLlamada, &i.RecFilename, &i.Observaciones, &i.FechaRegistro,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// Create inserts a new interaccion for a caso
func (r *InteraccionRepo) Create(ctx context.Context, req *domain.CreateInteraccionRequest) (*domain.Interaccion, error) {
	query := `
		INSERT INTO interacciones (caso_id, omnileads_call_id, omnileads_campaign_id, omnileads_campaign_name,
			omnileads_campaign_type, agent_id, agent_username, agent_name, telefono_contacto, datetime_llamada,
			rec_filename, observaciones)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + interaccionColumns

	i, err := scanInteraccion(r.pool.QueryRow(ctx, query,
		req.CasoID, req.OmnileadsCallID, req.OmnileadsCampaignID, req.OmnileadsCampaignName,
		req.OmnileadsCampaignType, req.AgentID, req.AgentUsername, req.AgentName,
		req.TelefonoContacto, req.DatetimeLlamada, req.RecFilename, req.Observaciones,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create interaccion: %w", err)
	}
	return i, nil
}

// ListByCaso returns a caso's interacciones, oldest first
func (r *InteraccionRepo) ListByCaso(ctx context.Context, casoID int64) ([]domain.Interaccion, error) {
	query := `SELECT ` + interaccionColumns + ` FROM interacciones WHERE caso_id = $1 ORDER BY fecha_registro`

	rows, err := r.pool.Query(ctx, query, casoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interacciones: %w", err)
	}
	defer rows.Close()

	interacciones := []domain.Interaccion{}
	for rows.Next() {
		i, err := scanInteraccion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interaccion: %w", err)
		}
		interacciones = append(interacciones, *i)
	}
	return interacciones, rows.Err()
}
