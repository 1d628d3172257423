package repository

import (
	"context"

	"github.com/nubecafe/pos-core/internal/domain/entity"
)

// Operaciones de ajuste de stock.
const (
	StockAdd      = "add"
	StockSubtract = "subtract"
	StockSet      = "set"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, includeInactive bool) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	SoftDelete(ctx context.Context, id, actor string) error
	// AdjustStock aplica add|subtract|set sobre la cantidad. subtract y set
	// nunca dejan la cantidad negativa: se trunca en cero. Devuelve el
	// producto resultante.
	AdjustStock(ctx context.Context, id string, amount int, op string) (*entity.Product, error)
}
