package jsonstore

import (
	"context"
	"fmt"
	"time"

	"github.com/nubecafe/pos-core/internal/domain"
	"github.com/nubecafe/pos-core/internal/domain/entity"
	"github.com/nubecafe/pos-core/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre el almacén JSON.
type ProductRepo struct {
	store *Store
}

// NewProductRepository construye el adaptador de productos.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

// Create persiste un nuevo producto al final de la colección.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return mutate(ctx, r.store, ColProducts, func(records []entity.Product) ([]entity.Product, error) {
		for _, p := range records {
			if p.ID == product.ID {
				return nil, domain.ErrDuplicate
			}
		}
		return append(records, *product), nil
	})
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	records, err := view[entity.Product](ctx, r.store, ColProducts)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			p := records[i]
			return &p, nil
		}
	}
	return nil, nil
}

// List lista los productos activos; con includeInactive también los dados de baja.
func (r *ProductRepo) List(ctx context.Context, includeInactive bool) ([]*entity.Product, error) {
	records, err := view[entity.Product](ctx, r.store, ColProducts)
	if err != nil {
		return nil, err
	}
	var list []*entity.Product
	for i := range records {
		if !records[i].IsActive && !includeInactive {
			continue
		}
		p := records[i]
		list = append(list, &p)
	}
	return list, nil
}

// Update reemplaza el producto existente con el mismo ID.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	return mutate(ctx, r.store, ColProducts, func(records []entity.Product) ([]entity.Product, error) {
		for i := range records {
			if records[i].ID == product.ID {
				records[i] = *product
				return records, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}

// SoftDelete marca el producto como inactivo con metadatos de baja.
func (r *ProductRepo) SoftDelete(ctx context.Context, id, actor string) error {
	return mutate(ctx, r.store, ColProducts, func(records []entity.Product) ([]entity.Product, error) {
		for i := range records {
			if records[i].ID == id {
				now := time.Now()
				records[i].IsActive = false
				records[i].DeletedAt = &now
				records[i].DeletedBy = actor
				records[i].UpdatedAt = now
				return records, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}

// AdjustStock aplica la operación sobre la cantidad del producto.
// subtract y set truncan en cero: la cantidad nunca queda negativa.
func (r *ProductRepo) AdjustStock(ctx context.Context, id string, amount int, op string) (*entity.Product, error) {
	var out entity.Product
	err := mutate(ctx, r.store, ColProducts, func(records []entity.Product) ([]entity.Product, error) {
		for i := range records {
			if records[i].ID != id {
				continue
			}
			qty, err := applyStockOp(records[i].Quantity, amount, op)
			if err != nil {
				return nil, err
			}
			records[i].Quantity = qty
			records[i].UpdatedAt = time.Now()
			out = records[i]
			return records, nil
		}
		return nil, domain.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// applyStockOp calcula la nueva cantidad para add|subtract|set, truncando en cero.
func applyStockOp(current, amount int, op string) (int, error) {
	switch op {
	case repository.StockAdd:
		return current + amount, nil
	case repository.StockSubtract:
		next := current - amount
		if next < 0 {
			next = 0
		}
		return next, nil
	case repository.StockSet:
		if amount < 0 {
			amount = 0
		}
		return amount, nil
	}
	return 0, fmt.Errorf("%w: operación de stock desconocida %q", domain.ErrInvalidInput, op)
}
