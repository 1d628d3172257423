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

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementación del puerto ExpenseRepository sobre PostgreSQL.
type ExpenseRepo struct {
	c conn
}

// NewExpenseRepository construye el adaptador de gastos. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier, timeout time.Duration) *ExpenseRepo {
	return &ExpenseRepo{c: newConn(q, timeout)}
}

const expenseCols = `id, description, category, amount, payment_method, expense_date,
	created_by, created_at, updated_at, is_deleted, deleted_at, deleted_by`

func scanExpense(row pgx.Row) (*entity.Expense, error) {
	var e entity.Expense
	err := row.Scan(&e.ID, &e.Description, &e.Category, &e.Amount, &e.PaymentMethod,
		&e.ExpenseDate, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt, &e.IsDeleted,
		&e.DeletedAt, &e.DeletedBy)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create persiste un gasto.
func (r *ExpenseRepo) Create(ctx context.Context, expense *entity.Expense) error {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	_, err := r.c.q.Exec(ctx, `
		INSERT INTO expenses (`+expenseCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		expense.ID, expense.Description, expense.Category, expense.Amount,
		expense.PaymentMethod, expense.ExpenseDate, expense.CreatedBy, expense.CreatedAt,
		expense.UpdatedAt, expense.IsDeleted, expense.DeletedAt, expense.DeletedBy,
	)
	if err != nil {
		return storageErr("insert expense", err)
	}
	return nil
}

// GetByID obtiene un gasto por ID. Devuelve (nil, nil) si no existe.
func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*entity.Expense, error) {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	e, err := scanExpense(r.c.q.QueryRow(ctx, `SELECT `+expenseCols+` FROM expenses WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get expense", err)
	}
	return e, nil
}

// List lista gastos no borrados dentro del rango de fechas (límites opcionales).
func (r *ExpenseRepo) List(ctx context.Context, from, to *time.Time) ([]*entity.Expense, error) {
	query := `SELECT ` + expenseCols + ` FROM expenses WHERE NOT is_deleted`
	var args []any
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(` AND expense_date >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(` AND expense_date <= $%d`, len(args))
	}
	query += ` ORDER BY expense_date`
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	rows, err := r.c.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list expenses", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, storageErr("scan expense", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Update reemplaza el gasto existente con el mismo ID.
func (r *ExpenseRepo) Update(ctx context.Context, expense *entity.Expense) error {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	cmd, err := r.c.q.Exec(ctx, `
		UPDATE expenses SET description = $2, category = $3, amount = $4, payment_method = $5,
			expense_date = $6, updated_at = $7
		WHERE id = $1`,
		expense.ID, expense.Description, expense.Category, expense.Amount,
		expense.PaymentMethod, expense.ExpenseDate, expense.UpdatedAt,
	)
	if err != nil {
		return storageErr("update expense", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca el gasto como borrado con metadatos de baja.
func (r *ExpenseRepo) SoftDelete(ctx context.Context, id, actor string) error {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	cmd, err := r.c.q.Exec(ctx, `
		UPDATE expenses SET is_deleted = true, deleted_at = now(), deleted_by = $2, updated_at = now()
		WHERE id = $1`, id, actor)
	if err != nil {
		return storageErr("soft delete expense", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
