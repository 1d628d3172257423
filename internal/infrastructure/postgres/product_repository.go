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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	c conn
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier, timeout time.Duration) *ProductRepo {
	return &ProductRepo{c: newConn(q, timeout)}
}

const productCols = `id, name, category, quantity, cost, price, low_stock_alert, is_active, created_at, updated_at, deleted_at, deleted_by`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Quantity, &p.Cost, &p.Price,
		&p.LowStockAlert, &p.IsActive, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt, &p.DeletedBy)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	_, err := r.c.q.Exec(ctx, `
		INSERT INTO products (`+productCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		product.ID, product.Name, product.Category, product.Quantity, product.Cost,
		product.Price, product.LowStockAlert, product.IsActive,
		product.CreatedAt, product.UpdatedAt, product.DeletedAt, product.DeletedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storageErr("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	p, err := scanProduct(r.c.q.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get product", err)
	}
	return p, nil
}

// List lista los productos activos; con includeInactive también los dados de baja.
func (r *ProductRepo) List(ctx context.Context, includeInactive bool) ([]*entity.Product, error) {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	query := `SELECT ` + productCols + ` FROM products`
	if !includeInactive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY created_at`
	rows, err := r.c.q.Query(ctx, query)
	if err != nil {
		return nil, storageErr("list products", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, storageErr("scan product", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza un producto existente.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	cmd, err := r.c.q.Exec(ctx, `
		UPDATE products SET name = $2, category = $3, quantity = $4, cost = $5, price = $6,
			low_stock_alert = $7, is_active = $8, updated_at = $9
		WHERE id = $1`,
		product.ID, product.Name, product.Category, product.Quantity, product.Cost,
		product.Price, product.LowStockAlert, product.IsActive, product.UpdatedAt,
	)
	if err != nil {
		return storageErr("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca el producto como inactivo con metadatos de baja.
func (r *ProductRepo) SoftDelete(ctx context.Context, id, actor string) error {
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	cmd, err := r.c.q.Exec(ctx, `
		UPDATE products SET is_active = false, deleted_at = now(), deleted_by = $2, updated_at = now()
		WHERE id = $1`, id, actor)
	if err != nil {
		return storageErr("soft delete product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustStock aplica add|subtract|set sobre la cantidad en un solo UPDATE;
// subtract y set truncan en cero con GREATEST.
func (r *ProductRepo) AdjustStock(ctx context.Context, id string, amount int, op string) (*entity.Product, error) {
	var expr string
	switch op {
	case repository.StockAdd:
		expr = `quantity + $2`
	case repository.StockSubtract:
		expr = `GREATEST(quantity - $2, 0)`
	case repository.StockSet:
		expr = `GREATEST($2, 0)`
	default:
		return nil, domain.ErrInvalidInput
	}
	ctx, cancel := r.c.ctx(ctx)
	defer cancel()
	p, err := scanProduct(r.c.q.QueryRow(ctx, `
		UPDATE products SET quantity = `+expr+`, updated_at = now()
		WHERE id = $1
		RETURNING `+productCols, id, amount))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("adjust stock", err)
	}
	return p, nil
}
