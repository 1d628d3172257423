package coworking

import (
	"context"
	"fmt"
	"time"

	"github.com/nubecafe/pos-core/internal/application/sales"
	"github.com/nubecafe/pos-core/internal/domain"
	"github.com/nubecafe/pos-core/internal/domain/billing"
	"github.com/nubecafe/pos-core/internal/domain/entity"
	"github.com/nubecafe/pos-core/internal/domain/repository"
	"github.com/nubecafe/pos-core/pkg/ident"
	"github.com/nubecafe/pos-core/pkg/logger"
	"github.com/shopspring/decimal"
)

// UseCase gestiona el ciclo de vida de las sesiones de coworking:
// start -> (pause <-> resume)* -> close | cancel. El cierre emite una venta de
// coworking a través del motor de ventas, de modo que stock, agregados de
// cliente y membresías siguen exactamente el mismo camino que cualquier venta.
type UseCase struct {
	repos *repository.Set
	tx    repository.TxRunner
	sales *sales.UseCase
	rules billing.Rules
	rate  decimal.Decimal // tarifa horaria por omisión
	log   *logger.Logger
}

// NewUseCase construye el caso de uso de coworking.
func NewUseCase(repos *repository.Set, tx repository.TxRunner, salesUC *sales.UseCase, rules billing.Rules, defaultRate decimal.Decimal, log *logger.Logger) *UseCase {
	return &UseCase{repos: repos, tx: tx, sales: salesUC, rules: rules, rate: defaultRate, log: log}
}

// StartInput entrada para abrir una sesión.
type StartInput struct {
	ClientName string
	HourlyRate decimal.Decimal // cero usa la tarifa por omisión
	CreatedBy  string
}

// Start abre una sesión activa para el cliente.
func (uc *UseCase) Start(ctx context.Context, in StartInput) (*entity.CoworkingSession, error) {
	if in.ClientName == "" {
		return nil, fmt.Errorf("%w: client_name requerido", domain.ErrInvalidInput)
	}
	if in.HourlyRate.IsNegative() {
		return nil, fmt.Errorf("%w: hourly_rate negativa", domain.ErrInvalidInput)
	}
	rate := in.HourlyRate
	if rate.IsZero() {
		rate = uc.rate
	}
	now := time.Now()
	s := &entity.CoworkingSession{
		ID:         ident.New(),
		ClientName: in.ClientName,
		HourlyRate: rate,
		Status:     entity.SessionActive,
		StartedAt:  now,
		Items:      []entity.SaleItem{},
		CreatedBy:  in.CreatedBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repos.Sessions.Create(ctx, s); err != nil {
		return nil, err
	}
	uc.log.Info().Str("session_id", s.ID).Str("client", s.ClientName).Msg("sesión de coworking abierta")
	return uc.withLiveTotals(s, now), nil
}

// Pause detiene el reloj de una sesión activa.
func (uc *UseCase) Pause(ctx context.Context, id string) (*entity.CoworkingSession, error) {
	return uc.transition(ctx, id, func(s *entity.CoworkingSession, now time.Time) error {
		if s.Status != entity.SessionActive {
			return fmt.Errorf("%w: solo una sesión activa puede pausarse", domain.ErrConflict)
		}
		s.Status = entity.SessionPaused
		s.PausedAt = &now
		return nil
	})
}

// Resume reanuda el reloj de una sesión pausada, acumulando el tiempo pausado.
func (uc *UseCase) Resume(ctx context.Context, id string) (*entity.CoworkingSession, error) {
	return uc.transition(ctx, id, func(s *entity.CoworkingSession, now time.Time) error {
		if s.Status != entity.SessionPaused || s.PausedAt == nil {
			return fmt.Errorf("%w: solo una sesión pausada puede reanudarse", domain.ErrConflict)
		}
		s.PausedSeconds += int64(now.Sub(*s.PausedAt).Seconds())
		s.PausedAt = nil
		s.Status = entity.SessionActive
		return nil
	})
}

// AddItemInput línea de consumo para una sesión abierta.
type AddItemInput struct {
	ProductID string
	Quantity  int
}

// AddItem agrega consumo a una sesión abierta, congelando precio, costo y
// categoría del producto en ese momento. El stock no se toca aquí: se descuenta
// al cerrar, cuando la venta se emite.
func (uc *UseCase) AddItem(ctx context.Context, id string, in AddItemInput) (*entity.CoworkingSession, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: producto o cantidad inválida", domain.ErrInvalidInput)
	}
	p, err := uc.repos.Products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive {
		return nil, fmt.Errorf("%w: producto %s inexistente", domain.ErrInvalidInput, in.ProductID)
	}
	return uc.transition(ctx, id, func(s *entity.CoworkingSession, now time.Time) error {
		if !s.Open() {
			return fmt.Errorf("%w: la sesión ya está %s", domain.ErrConflict, s.Status)
		}
		for i := range s.Items {
			if s.Items[i].ProductID == p.ID {
				s.Items[i].Quantity += in.Quantity
				return nil
			}
		}
		s.Items = append(s.Items, entity.SaleItem{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  in.Quantity,
			UnitPrice: p.Price,
			UnitCost:  p.Cost,
			Category:  p.Category,
		})
		return nil
	})
}

// RemoveItem quita unidades de un producto de una sesión abierta.
func (uc *UseCase) RemoveItem(ctx context.Context, id, productID string, quantity int) (*entity.CoworkingSession, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: cantidad inválida", domain.ErrInvalidInput)
	}
	return uc.transition(ctx, id, func(s *entity.CoworkingSession, now time.Time) error {
		if !s.Open() {
			return fmt.Errorf("%w: la sesión ya está %s", domain.ErrConflict, s.Status)
		}
		for i := range s.Items {
			if s.Items[i].ProductID != productID {
				continue
			}
			s.Items[i].Quantity -= quantity
			if s.Items[i].Quantity <= 0 {
				s.Items = append(s.Items[:i], s.Items[i+1:]...)
			}
			return nil
		}
		return fmt.Errorf("%w: el producto %s no está en la sesión", domain.ErrNotFound, productID)
	})
}

// Close cierra la sesión y emite la venta de coworking asociada. El cargo por
// tiempo aplica la tarifa plana de día completo cuando las horas facturables
// superan el umbral; una membresía activa del cliente lo exenta por completo
// (lo resuelve el motor de ventas).
func (uc *UseCase) Close(ctx context.Context, id, paymentMethod, closedBy string) (*entity.CoworkingSession, error) {
	if !entity.ValidPaymentMethod(paymentMethod) {
		return nil, fmt.Errorf("%w: payment_method %q", domain.ErrInvalidInput, paymentMethod)
	}

	// La venta y el cierre de la sesión van en la misma transacción: un fallo
	// al persistir el cierre revierte también la venta, el stock y los
	// agregados del cliente. En el almacén JSON no hay rollback real; ahí la
	// sesión se relee dentro del Run y el candado !Open() evita que un
	// reintento de Close emita una segunda venta.
	var s *entity.CoworkingSession
	err := uc.tx.Run(ctx, func(repos *repository.Set) error {
		var err error
		s, err = repos.Sessions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		if !s.Open() {
			return fmt.Errorf("%w: la sesión ya está %s", domain.ErrConflict, s.Status)
		}

		now := time.Now()
		if s.Status == entity.SessionPaused && s.PausedAt != nil {
			s.PausedSeconds += int64(now.Sub(*s.PausedAt).Seconds())
			s.PausedAt = nil
		}
		s.EndedAt = &now
		s.BilledHours = hoursOf(s.ElapsedAt(now))
		charge := billing.TimeCharge(s.HourlyRate, s.BilledHours, uc.rules)

		items := make([]sales.ItemInput, 0, len(s.Items))
		for _, it := range s.Items {
			items = append(items, sales.ItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
		}
		sale, err := uc.sales.CreateIn(ctx, repos, sales.CreateInput{
			ClientName:            s.ClientName,
			ServiceType:           entity.ServiceCoworking,
			Items:                 items,
			Hours:                 s.BilledHours,
			HourlyRate:            s.HourlyRate,
			PaymentMethod:         paymentMethod,
			CreatedBy:             closedBy,
			ServiceChargeOverride: &charge,
		})
		if err != nil {
			return err
		}

		s.Status = entity.SessionClosed
		s.PaymentMethod = paymentMethod
		s.SaleID = sale.ID
		s.TimeCharge = sale.ServiceCharge
		s.Subtotal = sale.Subtotal
		s.Total = sale.Total
		s.Cost = sale.Cost
		s.Profit = sale.Profit
		s.UpdatedAt = now
		return repos.Sessions.Update(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("session_id", s.ID).
		Str("sale_id", s.SaleID).
		Str("billed_hours", s.BilledHours.String()).
		Str("total", s.Total.String()).
		Msg("sesión de coworking cerrada")
	return s, nil
}

// Cancel termina la sesión sin emitir venta ni tocar stock.
func (uc *UseCase) Cancel(ctx context.Context, id string) (*entity.CoworkingSession, error) {
	return uc.transition(ctx, id, func(s *entity.CoworkingSession, now time.Time) error {
		if !s.Open() {
			return fmt.Errorf("%w: la sesión ya está %s", domain.ErrConflict, s.Status)
		}
		s.Status = entity.SessionCancelled
		s.EndedAt = &now
		return nil
	})
}

// GetByID devuelve la sesión con sus totales en vivo si sigue abierta.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.CoworkingSession, error) {
	s, err := uc.repos.Sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return uc.withLiveTotals(s, time.Now()), nil
}

// List lista las sesiones por status (vacío = todas) con totales en vivo.
func (uc *UseCase) List(ctx context.Context, status string) ([]*entity.CoworkingSession, error) {
	list, err := uc.repos.Sessions.List(ctx, status)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i, s := range list {
		list[i] = uc.withLiveTotals(s, now)
	}
	return list, nil
}

// transition aplica fn bajo el candado de la sesión y persiste el resultado.
func (uc *UseCase) transition(ctx context.Context, id string, fn func(s *entity.CoworkingSession, now time.Time) error) (*entity.CoworkingSession, error) {
	s, err := uc.repos.Sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	if err := fn(s, now); err != nil {
		return nil, err
	}
	s.UpdatedAt = now
	if err := uc.repos.Sessions.Update(ctx, s); err != nil {
		return nil, err
	}
	return uc.withLiveTotals(s, now), nil
}

// withLiveTotals recalcula los campos derivados de una sesión abierta sin
// persistirlos: horas facturables, cargo por tiempo, subtotal de consumo y
// total estimado. Las sesiones cerradas se devuelven tal cual quedaron.
func (uc *UseCase) withLiveTotals(s *entity.CoworkingSession, now time.Time) *entity.CoworkingSession {
	if !s.Open() {
		return s
	}
	s.BilledHours = hoursOf(s.ElapsedAt(now))
	s.TimeCharge = billing.TimeCharge(s.HourlyRate, s.BilledHours, uc.rules)
	t := billing.SaleTotals(entity.ServiceCoworking, s.Items)
	s.Subtotal = t.Subtotal.Round(2)
	s.Cost = t.Cost.Round(2)
	s.Total = s.Subtotal.Add(s.TimeCharge).Round(2)
	s.Profit = s.Total.Sub(s.Cost).Round(2)
	return s
}

// hoursOf convierte una duración a horas decimales con dos decimales.
func hoursOf(d time.Duration) decimal.Decimal {
	return decimal.NewFromFloat(d.Hours()).Round(2)
}
