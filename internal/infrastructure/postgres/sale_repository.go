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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
// Las líneas de venta se guardan como JSONB (snapshot, nunca se consultan sueltas).
type SaleRepo struct {
	c conn
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier, timeout time.Duration) *SaleRepo {
	return &SaleRepo{c: newConn(q, timeout)}
}

const saleCols = `id, client_name, service_type, items, hours, payment_method, subtotal,
	service_charge, tip, total, cost, drinks_cost, profit, created_by, created_at,
	is_deleted, deleted_at, deleted_by`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var items []byte
	err := row.Scan(&s.ID, &s.ClientName, &s.ServiceType, &items, &s.Hours, &s.PaymentMethod,
		&s.Subtotal, &s.ServiceCharge, &s.Tip, &s.Total, &s.Cost, &s.DrinksCost, &s.Profit,
		&s.CreatedBy, &s.CreatedAt, &s.IsDeleted, &s.DeletedAt, &s.DeletedBy)
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

// Create persiste una venta.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	items, err := json.Marshal(sale.Items)
	if err != nil {
		return storageErr("codificar items", err)
	}
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	_, err = r.c.q.Exec(ctx, `
		INSERT INTO sales (`+saleCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		sale.ID, sale.ClientName, sale.ServiceType, items, sale.Hours, sale.PaymentMethod,
		sale.Subtotal, sale.ServiceCharge, sale.Tip, sale.Total, sale.Cost, sale.DrinksCost,
		sale.Profit, sale.CreatedBy, sale.CreatedAt, sale.IsDeleted, sale.DeletedAt, sale.DeletedBy,
	)
	if err != nil {
		return storageErr("insert sale", err)
	}
	return nil
}

// GetByID obtiene una venta por ID. Devuelve (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	s, err := scanSale(r.c.q.QueryRow(ctx, `SELECT `+saleCols+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get sale", err)
	}
	return s, nil
}

// List lista ventas aplicando el filtro en SQL.
func (r *SaleRepo) List(ctx context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	query := `SELECT ` + saleCols + ` FROM sales WHERE 1=1`
	var args []any
	if !filter.IncludeDeleted {
		query += ` AND NOT is_deleted`
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(` AND created_at >= $%d`, len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(` AND created_at <= $%d`, len(args))
	}
	if filter.ServiceType != "" {
		args = append(args, filter.ServiceType)
		query += fmt.Sprintf(` AND service_type = $%d`, len(args))
	}
	if filter.PaymentMethod != "" {
		args = append(args, filter.PaymentMethod)
		query += fmt.Sprintf(` AND payment_method = $%d`, len(args))
	}
	query += ` ORDER BY created_at`

	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	rows, err := r.c.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list sales", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, storageErr("scan sale", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Update reemplaza la venta existente con el mismo ID.
func (r *SaleRepo) Update(ctx context.Context, sale *entity.Sale) error {
	items, err := json.Marshal(sale.Items)
	if err != nil {
		return storageErr("codificar items", err)
	}
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	cmd, err := r.c.q.Exec(ctx, `
		UPDATE sales SET client_name = $2, service_type = $3, items = $4, hours = $5,
			payment_method = $6, subtotal = $7, service_charge = $8, tip = $9, total = $10,
			cost = $11, drinks_cost = $12, profit = $13, is_deleted = $14, deleted_at = $15, deleted_by = $16
		WHERE id = $1`,
		sale.ID, sale.ClientName, sale.ServiceType, items, sale.Hours, sale.PaymentMethod,
		sale.Subtotal, sale.ServiceCharge, sale.Tip, sale.Total, sale.Cost, sale.DrinksCost,
		sale.Profit, sale.IsDeleted, sale.DeletedAt, sale.DeletedBy,
	)
	if err != nil {
		return storageErr("update sale", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca la venta como borrada con metadatos de baja.
func (r *SaleRepo) SoftDelete(ctx context.Context, id, actor string) error {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	cmd, err := r.c.q.Exec(ctx, `
		UPDATE sales SET is_deleted = true, deleted_at = now(), deleted_by = $2
		WHERE id = $1`, id, actor)
	if err != nil {
		return storageErr("soft delete sale", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
