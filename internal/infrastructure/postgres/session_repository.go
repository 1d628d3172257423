package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nubecafe/pos-core/internal/domain"
	"github.com/nubecafe/pos-core/internal/domain/entity"
	"github.com/nubecafe/pos-core/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implementación del puerto SessionRepository sobre PostgreSQL.
type SessionRepo struct {
	c conn
}

// NewSessionRepository construye el adaptador de sesiones. Pasar pool o tx (Querier).
func NewSessionRepository(q Querier, timeout time.Duration) *SessionRepo {
	return &SessionRepo{c: newConn(q, timeout)}
}

const sessionCols = `id, client_name, hourly_rate, status, started_at, ended_at, paused_at,
	paused_seconds, items, billed_hours, subtotal, time_charge, total, cost, profit,
	payment_method, sale_id, created_by, created_at, updated_at`

func scanSession(row pgx.Row) (*entity.CoworkingSession, error) {
	var s entity.CoworkingSession
	var items []byte
	err := row.Scan(&s.ID, &s.ClientName, &s.HourlyRate, &s.Status, &s.StartedAt, &s.EndedAt,
		&s.PausedAt, &s.PausedSeconds, &items, &s.BilledHours, &s.Subtotal, &s.TimeCharge,
		&s.Total, &s.Cost, &s.Profit, &s.PaymentMethod, &s.SaleID, &s.CreatedBy,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &s.Items); err != nil {
			return nil, fmt.Errorf("decodificar items: %w", err)
		}
	}
	return &s, nil
}

// Create persiste una sesión.
func (r *SessionRepo) Create(ctx context.Context, session *entity.CoworkingSession) error {
	items, err := json.Marshal(session.Items)
	if err != nil {
		return storageErr("codificar items", err)
	}
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	_, err = r.c.q.Exec(ctx, `
		INSERT INTO coworking_sessions (`+sessionCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		session.ID, session.ClientName, session.HourlyRate, session.Status, session.StartedAt,
		session.EndedAt, session.PausedAt, session.PausedSeconds, items, session.BilledHours,
		session.Subtotal, session.TimeCharge, session.Total, session.Cost, session.Profit,
		session.PaymentMethod, session.SaleID, session.CreatedBy, session.CreatedAt, session.UpdatedAt,
	)
	if err != nil {
		return storageErr("insert session", err)
	}
	return nil
}

// GetByID obtiene una sesión por ID. Devuelve (nil, nil) si no existe.
func (r *SessionRepo) GetByID(ctx context.Context, id string) (*entity.CoworkingSession, error) {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	s, err := scanSession(r.c.q.QueryRow(ctx,
		`SELECT `+sessionCols+` FROM coworking_sessions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get session", err)
	}
	return s, nil
}

// List lista sesiones por status; status vacío lista todas.
func (r *SessionRepo) List(ctx context.Context, status string) ([]*entity.CoworkingSession, error) {
	query := `SELECT ` + sessionCols + ` FROM coworking_sessions`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY started_at`
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	rows, err := r.c.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list sessions", err)
	}
	defer rows.Close()
	var list []*entity.CoworkingSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, storageErr("scan session", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Update reemplaza la sesión existente con el mismo ID.
func (r *SessionRepo) Update(ctx context.Context, session *entity.CoworkingSession) error {
	items, err := json.Marshal(session.Items)
	if err != nil {
		return storageErr("codificar items", err)
	}
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	cmd, err := r.c.q.Exec(ctx, `
		UPDATE coworking_sessions SET status = $2, ended_at = $3, paused_at = $4,
			paused_seconds = $5, items = $6, billed_hours = $7, subtotal = $8, time_charge = $9,
			total = $10, cost = $11, profit = $12, payment_method = $13, sale_id = $14, updated_at = $15
		WHERE id = $1`,
		session.ID, session.Status, session.EndedAt, session.PausedAt, session.PausedSeconds,
		items, session.BilledHours, session.Subtotal, session.TimeCharge, session.Total,
		session.Cost, session.Profit, session.PaymentMethod, session.SaleID, session.UpdatedAt,
	)
	if err != nil {
		return storageErr("update session", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
