package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/nubecafe/pos-core/internal/domain"
	"github.com/nubecafe/pos-core/internal/domain/entity"
	"github.com/nubecafe/pos-core/internal/domain/repository"
	"github.com/nubecafe/pos-core/pkg/ident"
	"github.com/nubecafe/pos-core/pkg/logger"
	"github.com/shopspring/decimal"
)

// UseCase administra el catálogo de productos y su inventario.
type UseCase struct {
	repos *repository.Set
	log   *logger.Logger
}

// NewUseCase construye el caso de uso de catálogo.
func NewUseCase(repos *repository.Set, log *logger.Logger) *UseCase {
	return &UseCase{repos: repos, log: log}
}

// CreateInput entrada para dar de alta un producto.
type CreateInput struct {
	Name          string
	Category      string
	Quantity      int
	Cost          decimal.Decimal
	Price         decimal.Decimal
	LowStockAlert int
}

// Create da de alta un producto activo.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Product, error) {
	if err := validate(in.Name, in.Category, in.Quantity, in.Cost, in.Price); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Product{
		ID:            ident.New(),
		Name:          in.Name,
		Category:      in.Category,
		Quantity:      in.Quantity,
		Cost:          in.Cost,
		Price:         in.Price,
		LowStockAlert: in.LowStockAlert,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if p.LowStockAlert <= 0 {
		p.LowStockAlert = entity.DefaultLowStockAlert
	}
	if err := uc.repos.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", p.ID).Str("name", p.Name).Msg("producto creado")
	return p, nil
}

// UpdateInput campos editables de un producto. Los punteros nil no cambian.
type UpdateInput struct {
	Name          *string
	Category      *string
	Cost          *decimal.Decimal
	Price         *decimal.Decimal
	LowStockAlert *int
}

// Update modifica un producto existente.
func (uc *UseCase) Update(ctx context.Context, id string, in UpdateInput) (*entity.Product, error) {
	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Cost != nil {
		p.Cost = *in.Cost
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.LowStockAlert != nil {
		p.LowStockAlert = *in.LowStockAlert
	}
	if err := validate(p.Name, p.Category, p.Quantity, p.Cost, p.Price); err != nil {
		return nil, err
	}
	if p.LowStockAlert <= 0 {
		p.LowStockAlert = entity.DefaultLowStockAlert
	}
	p.UpdatedAt = time.Now()
	if err := uc.repos.Products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete da de baja lógica un producto; su historial en ventas no se toca.
func (uc *UseCase) Delete(ctx context.Context, id, actor string) error {
	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil || !p.IsActive {
		return domain.ErrNotFound
	}
	return uc.repos.Products.SoftDelete(ctx, id, actor)
}

// GetByID obtiene un producto activo.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// List lista el catálogo, opcionalmente con los productos dados de baja.
func (uc *UseCase) List(ctx context.Context, includeInactive bool) ([]*entity.Product, error) {
	return uc.repos.Products.List(ctx, includeInactive)
}

// LowStock lista los productos activos por debajo de su umbral de alerta.
func (uc *UseCase) LowStock(ctx context.Context) ([]*entity.Product, error) {
	all, err := uc.repos.Products.List(ctx, false)
	if err != nil {
		return nil, err
	}
	low := make([]*entity.Product, 0)
	for _, p := range all {
		if p.LowStock() {
			low = append(low, p)
		}
	}
	return low, nil
}

// AdjustStock aplica add|subtract|set sobre el inventario del producto.
func (uc *UseCase) AdjustStock(ctx context.Context, id string, amount int, op string) (*entity.Product, error) {
	switch op {
	case repository.StockAdd, repository.StockSubtract, repository.StockSet:
	default:
		return nil, fmt.Errorf("%w: operación de stock %q", domain.ErrInvalidInput, op)
	}
	if amount < 0 {
		return nil, fmt.Errorf("%w: amount negativo", domain.ErrInvalidInput)
	}
	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive {
		return nil, domain.ErrNotFound
	}
	return uc.repos.Products.AdjustStock(ctx, id, amount, op)
}

func validate(name, category string, quantity int, cost, price decimal.Decimal) error {
	if name == "" {
		return fmt.Errorf("%w: name requerido", domain.ErrInvalidInput)
	}
	if !entity.ValidCategory(category) {
		return fmt.Errorf("%w: categoría %q", domain.ErrInvalidInput, category)
	}
	if quantity < 0 {
		return fmt.Errorf("%w: quantity negativa", domain.ErrInvalidInput)
	}
	if cost.IsNegative() || price.IsNegative() {
		return fmt.Errorf("%w: precio o costo negativo", domain.ErrInvalidInput)
	}
	return nil
}
