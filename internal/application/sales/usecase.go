package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/nubecafe/pos-core/internal/domain"
	"github.com/nubecafe/pos-core/internal/domain/billing"
	"github.com/nubecafe/pos-core/internal/domain/entity"
	"github.com/nubecafe/pos-core/internal/domain/repository"
	"github.com/nubecafe/pos-core/pkg/ident"
	"github.com/nubecafe/pos-core/pkg/logger"
	"github.com/shopspring/decimal"
)

// UseCase implementa el protocolo de venta compartido por ambos backends:
// validar, calcular totales, persistir, descontar stock y actualizar los
// agregados del cliente. En PostgreSQL todo corre dentro de una transacción;
// en el almacén JSON la atomicidad la da el orden validar-antes-de-mutar.
type UseCase struct {
	repos *repository.Set
	tx    repository.TxRunner
	rules billing.Rules
	log   *logger.Logger
}

// NewUseCase construye el caso de uso de ventas.
func NewUseCase(repos *repository.Set, tx repository.TxRunner, rules billing.Rules, log *logger.Logger) *UseCase {
	return &UseCase{repos: repos, tx: tx, rules: rules, log: log}
}

// ItemInput línea solicitada: producto y cantidad. Precio, costo y categoría
// se toman del producto al momento de la venta (snapshot).
type ItemInput struct {
	ProductID string
	Quantity  int
}

// CreateInput entrada para registrar una venta.
type CreateInput struct {
	ClientName    string
	ServiceType   string
	Items         []ItemInput
	Hours         decimal.Decimal // solo coworking
	HourlyRate    decimal.Decimal // solo coworking
	PaymentMethod string
	Tip           decimal.Decimal
	CreatedBy     string

	// ServiceChargeOverride lo fija el cierre de sesión de coworking, que ya
	// aplicó la regla de tarifa de día completo sobre las horas transcurridas.
	ServiceChargeOverride *decimal.Decimal
}

// Create valida y registra una venta completa.
// Toda validación (enums, campos requeridos, existencia de productos) ocurre
// antes de cualquier mutación: una entrada inválida no descuenta stock ni toca
// agregados de cliente.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Sale, error) {
	var sale *entity.Sale
	err := uc.tx.Run(ctx, func(repos *repository.Set) error {
		s, err := uc.CreateIn(ctx, repos, in)
		if err != nil {
			return err
		}
		sale = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("service", sale.ServiceType).
		Str("total", sale.Total.String()).
		Msg("venta registrada")
	return sale, nil
}

// CreateIn registra la venta sobre un conjunto de repositorios ya ligado a la
// transacción del llamador. El cierre de sesión de coworking lo usa para que la
// venta y el cierre de la sesión queden en la misma transacción.
func (uc *UseCase) CreateIn(ctx context.Context, repos *repository.Set, in CreateInput) (*entity.Sale, error) {
	if err := uc.validate(in); err != nil {
		return nil, err
	}
	now := time.Now()

	// Snapshot de productos: la venta falla completa si alguno no existe.
	items, available, err := uc.snapshotItems(ctx, repos, in.Items)
	if err != nil {
		return nil, err
	}

	customer, err := repos.Customers.GetByName(ctx, in.ClientName)
	if err != nil {
		return nil, err
	}
	var membership *entity.Membership
	if customer != nil {
		membership, err = repos.Memberships.GetActiveByCustomer(ctx, customer.ID)
		if err != nil {
			return nil, err
		}
	}

	s := &entity.Sale{
		ID:            ident.New(),
		ClientName:    in.ClientName,
		ServiceType:   in.ServiceType,
		Items:         items,
		Hours:         in.Hours,
		PaymentMethod: in.PaymentMethod,
		Tip:           in.Tip,
		CreatedBy:     in.CreatedBy,
		CreatedAt:     now,
	}
	s.ServiceCharge = uc.serviceCharge(in, membership)
	billing.Finalize(s)

	if err := repos.Sales.Create(ctx, s); err != nil {
		return nil, err
	}

	// Descontar stock (truncado en cero; el agotamiento es advertencia, no error).
	for i, it := range items {
		if available[i] < it.Quantity {
			uc.log.Warn().
				Err(domain.ErrInsufficientStock).
				Str("product_id", it.ProductID).
				Str("product", it.Name).
				Int("requested", it.Quantity).
				Int("available", available[i]).
				Msg("stock agotado")
		}
		if _, err := repos.Products.AdjustStock(ctx, it.ProductID, it.Quantity, repository.StockSubtract); err != nil {
			return nil, err
		}
	}

	if err := uc.applyCustomer(ctx, repos, customer, membership, s, now); err != nil {
		return nil, err
	}
	return s, nil
}

// validate rechaza la operación completa antes de cualquier efecto.
func (uc *UseCase) validate(in CreateInput) error {
	if in.ClientName == "" {
		return fmt.Errorf("%w: client_name requerido", domain.ErrInvalidInput)
	}
	if !entity.ValidServiceType(in.ServiceType) {
		return fmt.Errorf("%w: service_type %q", domain.ErrInvalidInput, in.ServiceType)
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return fmt.Errorf("%w: payment_method %q", domain.ErrInvalidInput, in.PaymentMethod)
	}
	if in.Tip.IsNegative() {
		return fmt.Errorf("%w: tip negativa", domain.ErrInvalidInput)
	}
	if in.Hours.IsNegative() {
		return fmt.Errorf("%w: hours negativas", domain.ErrInvalidInput)
	}
	switch in.ServiceType {
	case entity.ServiceCafeteria:
		if len(in.Items) == 0 {
			return fmt.Errorf("%w: una venta de cafetería requiere items", domain.ErrInvalidInput)
		}
	case entity.ServiceCoworking:
		if in.Hours.IsZero() && in.ServiceChargeOverride == nil {
			return fmt.Errorf("%w: hours requeridas para coworking", domain.ErrInvalidInput)
		}
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return fmt.Errorf("%w: item con producto o cantidad inválida", domain.ErrInvalidInput)
		}
	}
	return nil
}

// snapshotItems resuelve cada línea contra el catálogo actual y congela
// precio, costo y categoría. Un producto inexistente invalida la venta entera.
func (uc *UseCase) snapshotItems(ctx context.Context, repos *repository.Set, inputs []ItemInput) ([]entity.SaleItem, []int, error) {
	items := make([]entity.SaleItem, 0, len(inputs))
	available := make([]int, 0, len(inputs))
	for _, in := range inputs {
		p, err := repos.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return nil, nil, err
		}
		if p == nil || !p.IsActive {
			return nil, nil, fmt.Errorf("%w: producto %s inexistente", domain.ErrInvalidInput, in.ProductID)
		}
		items = append(items, entity.SaleItem{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  in.Quantity,
			UnitPrice: p.Price,
			UnitCost:  p.Cost,
			Category:  p.Category,
		})
		available = append(available, p.Quantity)
	}
	return items, available, nil
}

// serviceCharge resuelve el cargo por servicio de coworking. La membresía
// activa se evalúa primero y exenta el cargo por completo; sin membresía rige
// el override del cierre de sesión (que ya aplicó la tarifa de día) o el
// cálculo por hora.
func (uc *UseCase) serviceCharge(in CreateInput, membership *entity.Membership) decimal.Decimal {
	if in.ServiceType != entity.ServiceCoworking {
		return decimal.Zero
	}
	if membership != nil {
		return decimal.Zero
	}
	if in.ServiceChargeOverride != nil {
		return *in.ServiceChargeOverride
	}
	return in.HourlyRate.Mul(in.Hours).Round(2)
}

// applyCustomer actualiza (o crea) el agregado del cliente y, si la venta
// coworking quedó exenta por membresía, acumula las horas de beneficio.
func (uc *UseCase) applyCustomer(ctx context.Context, repos *repository.Set, customer *entity.Customer, membership *entity.Membership, s *entity.Sale, now time.Time) error {
	created := false
	if customer == nil {
		customer = &entity.Customer{
			ID:               ident.New(),
			Name:             s.ClientName,
			Tier:             entity.TierBronze,
			MembershipStatus: entity.MembershipNone,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		created = true
	}
	billing.ApplyVisit(customer, s, now)

	if membership != nil {
		customer.MembershipStatus = entity.MembershipActive
		customer.MembershipType = membership.Type
		start, end := membership.StartDate, membership.EndDate
		customer.MembershipStart = &start
		customer.MembershipEnd = &end
		if s.ServiceType == entity.ServiceCoworking {
			membership.BenefitHoursUsed = membership.BenefitHoursUsed.Add(s.Hours)
			membership.UpdatedAt = now
			if err := repos.Memberships.Update(ctx, membership); err != nil {
				return err
			}
		}
	}

	if created {
		return repos.Customers.Create(ctx, customer)
	}
	return repos.Customers.Update(ctx, customer)
}

// Delete borra (soft delete) la venta y devuelve al inventario exactamente las
// cantidades que la venta descontó. Los agregados del cliente NO se revierten:
// el historial de visitas se trata como append-only.
func (uc *UseCase) Delete(ctx context.Context, id, actor string) error {
	return uc.tx.Run(ctx, func(repos *repository.Set) error {
		s, err := repos.Sales.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if s == nil || s.IsDeleted {
			return domain.ErrNotFound
		}
		if err := repos.Sales.SoftDelete(ctx, id, actor); err != nil {
			return err
		}
		for _, it := range s.Items {
			if _, err := repos.Products.AdjustStock(ctx, it.ProductID, it.Quantity, repository.StockAdd); err != nil {
				return err
			}
		}
		uc.log.Info().Str("sale_id", id).Str("deleted_by", actor).Msg("venta borrada, stock restaurado")
		return nil
	})
}

// GetByID obtiene una venta; ErrNotFound si no existe o está borrada.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := uc.repos.Sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil || s.IsDeleted {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// List lista ventas según el filtro (las borradas quedan fuera por omisión).
func (uc *UseCase) List(ctx context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	return uc.repos.Sales.List(ctx, filter)
}
