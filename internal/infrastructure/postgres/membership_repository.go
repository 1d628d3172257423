package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nubecafe/pos-core/internal/domain"
	"github.com/nubecafe/pos-core/internal/domain/entity"
	"github.com/nubecafe/pos-core/internal/domain/repository"
)

var _ repository.MembershipRepository = (*MembershipRepo)(nil)

// MembershipRepo implementación del puerto MembershipRepository sobre PostgreSQL.
type MembershipRepo struct {
	c conn
}

// NewMembershipRepository construye el adaptador de membresías. Pasar pool o tx (Querier).
func NewMembershipRepository(q Querier, timeout time.Duration) *MembershipRepo {
	return &MembershipRepo{c: newConn(q, timeout)}
}

const membershipCols = `id, customer_id, customer_name, type, price, start_date, end_date,
	status, benefit_hours_used, created_by, created_at, updated_at, is_deleted, deleted_at, deleted_by`

func scanMembership(row pgx.Row) (*entity.Membership, error) {
	var m entity.Membership
	err := row.Scan(&m.ID, &m.CustomerID, &m.CustomerName, &m.Type, &m.Price, &m.StartDate,
		&m.EndDate, &m.Status, &m.BenefitHoursUsed, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt,
		&m.IsDeleted, &m.DeletedAt, &m.DeletedBy)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste una membresía.
func (r *MembershipRepo) Create(ctx context.Context, membership *entity.Membership) error {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	_, err := r.c.q.Exec(ctx, `
		INSERT INTO memberships (`+membershipCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		membership.ID, membership.CustomerID, membership.CustomerName, membership.Type,
		membership.Price, membership.StartDate, membership.EndDate, membership.Status,
		membership.BenefitHoursUsed, membership.CreatedBy, membership.CreatedAt,
		membership.UpdatedAt, membership.IsDeleted, membership.DeletedAt, membership.DeletedBy,
	)
	if err != nil {
		return storageErr("insert membership", err)
	}
	return nil
}

// GetByID obtiene una membresía por ID. Devuelve (nil, nil) si no existe.
func (r *MembershipRepo) GetByID(ctx context.Context, id string) (*entity.Membership, error) {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	m, err := scanMembership(r.c.q.QueryRow(ctx,
		`SELECT `+membershipCols+` FROM memberships WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get membership", err)
	}
	return m, nil
}

// GetActiveByCustomer devuelve la membresía activa vigente del cliente,
// o (nil, nil) si no tiene ninguna.
func (r *MembershipRepo) GetActiveByCustomer(ctx context.Context, customerID string) (*entity.Membership, error) {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	m, err := scanMembership(r.c.q.QueryRow(ctx, `
		SELECT `+membershipCols+` FROM memberships
		WHERE customer_id = $1 AND status = $2 AND NOT is_deleted
			AND now() BETWEEN start_date AND end_date
		ORDER BY end_date DESC LIMIT 1`, customerID, entity.MembershipActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get active membership", err)
	}
	return m, nil
}

// List lista las membresías no borradas.
func (r *MembershipRepo) List(ctx context.Context) ([]*entity.Membership, error) {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	rows, err := r.c.q.Query(ctx, `
		SELECT `+membershipCols+` FROM memberships WHERE NOT is_deleted ORDER BY created_at`)
	if err != nil {
		return nil, storageErr("list memberships", err)
	}
	defer rows.Close()
	var list []*entity.Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, storageErr("scan membership", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Update reemplaza la membresía existente con el mismo ID.
func (r *MembershipRepo) Update(ctx context.Context, membership *entity.Membership) error {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	cmd, err := r.c.q.Exec(ctx, `
		UPDATE memberships SET type = $2, price = $3, start_date = $4, end_date = $5,
			status = $6, benefit_hours_used = $7, updated_at = $8
		WHERE id = $1`,
		membership.ID, membership.Type, membership.Price, membership.StartDate,
		membership.EndDate, membership.Status, membership.BenefitHoursUsed, membership.UpdatedAt,
	)
	if err != nil {
		return storageErr("update membership", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca la membresía como borrada con metadatos de baja.
func (r *MembershipRepo) SoftDelete(ctx context.Context, id, actor string) error {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	cmd, err := r.c.q.Exec(ctx, `
		UPDATE memberships SET is_deleted = true, deleted_at = now(), deleted_by = $2, updated_at = now()
		WHERE id = $1`, id, actor)
	if err != nil {
		return storageErr("soft delete membership", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
