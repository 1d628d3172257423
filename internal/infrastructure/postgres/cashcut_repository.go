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

var _ repository.CashCutRepository = (*CashCutRepo)(nil)

// CashCutRepo implementación del puerto CashCutRepository sobre PostgreSQL.
type CashCutRepo struct {
	c conn
}

// NewCashCutRepository construye el adaptador de cortes de caja. Pasar pool o tx (Querier).
func NewCashCutRepository(q Querier, timeout time.Duration) *CashCutRepo {
	return &CashCutRepo{c: newConn(q, timeout)}
}

const cashCutCols = `id, period_start, period_end, total_sales, total_cash, total_card,
	total_transfer, total_expenses, net_amount, counted_cash, cash_difference, notes,
	created_by, created_at, is_deleted, deleted_at, deleted_by`

func scanCashCut(row pgx.Row) (*entity.CashCut, error) {
	var c entity.CashCut
	err := row.Scan(&c.ID, &c.PeriodStart, &c.PeriodEnd, &c.TotalSales, &c.TotalCash,
		&c.TotalCard, &c.TotalTransfer, &c.TotalExpenses, &c.NetAmount, &c.CountedCash,
		&c.CashDifference, &c.Notes, &c.CreatedBy, &c.CreatedAt, &c.IsDeleted,
		&c.DeletedAt, &c.DeletedBy)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un corte de caja.
func (r *CashCutRepo) Create(ctx context.Context, cut *entity.CashCut) error {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	_, err := r.c.q.Exec(ctx, `
		INSERT INTO cashcuts (`+cashCutCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		cut.ID, cut.PeriodStart, cut.PeriodEnd, cut.TotalSales, cut.TotalCash, cut.TotalCard,
		cut.TotalTransfer, cut.TotalExpenses, cut.NetAmount, cut.CountedCash, cut.CashDifference,
		cut.Notes, cut.CreatedBy, cut.CreatedAt, cut.IsDeleted, cut.DeletedAt, cut.DeletedBy,
	)
	if err != nil {
		return storageErr("insert cashcut", err)
	}
	return nil
}

// GetByID obtiene un corte por ID. Devuelve (nil, nil) si no existe.
func (r *CashCutRepo) GetByID(ctx context.Context, id string) (*entity.CashCut, error) {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	c, err := scanCashCut(r.c.q.QueryRow(ctx, `SELECT `+cashCutCols+` FROM cashcuts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get cashcut", err)
	}
	return c, nil
}

// GetLast devuelve el corte no borrado más reciente, o (nil, nil) si no hay.
func (r *CashCutRepo) GetLast(ctx context.Context) (*entity.CashCut, error) {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	c, err := scanCashCut(r.c.q.QueryRow(ctx, `
		SELECT `+cashCutCols+` FROM cashcuts WHERE NOT is_deleted
		ORDER BY period_end DESC LIMIT 1`))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get last cashcut", err)
	}
	return c, nil
}

// List lista cortes no borrados dentro del rango de fechas (límites opcionales).
func (r *CashCutRepo) List(ctx context.Context, from, to *time.Time) ([]*entity.CashCut, error) {
	query := `SELECT ` + cashCutCols + ` FROM cashcuts WHERE NOT is_deleted`
	var args []any
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(` AND period_end >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(` AND period_end <= $%d`, len(args))
	}
	query += ` ORDER BY period_end`
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	rows, err := r.c.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list cashcuts", err)
	}
	defer rows.Close()
	var list []*entity.CashCut
	for rows.Next() {
		c, err := scanCashCut(rows)
		if err != nil {
			return nil, storageErr("scan cashcut", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// SoftDelete marca el corte como borrado con metadatos de baja.
func (r *CashCutRepo) SoftDelete(ctx context.Context, id, actor string) error {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	cmd, err := r.c.q.Exec(ctx, `
		UPDATE cashcuts SET is_deleted = true, deleted_at = now(), deleted_by = $2
		WHERE id = $1`, id, actor)
	if err != nil {
		return storageErr("soft delete cashcut", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
