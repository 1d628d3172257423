package customers

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

// Tipos de membresía soportados y su vigencia.
const (
	MembershipWeekly  = "weekly"
	MembershipMonthly = "monthly"
)

// UseCase administra clientes y sus membresías de coworking. Los agregados de
// visita los mantiene el motor de ventas; aquí viven los datos de contacto, la
// consulta de resúmenes y el ciclo de vida de las membresías.
type UseCase struct {
	repos *repository.Set
	log   *logger.Logger
}

// NewUseCase construye el caso de uso de clientes.
func NewUseCase(repos *repository.Set, log *logger.Logger) *UseCase {
	return &UseCase{repos: repos, log: log}
}

// UpsertInput datos de contacto de un cliente.
type UpsertInput struct {
	Name  string
	Email string
	Phone string
}

// Upsert crea el cliente si no existe (comparando el nombre sin mayúsculas ni
// acentos) o actualiza sus datos de contacto si ya existe.
func (uc *UseCase) Upsert(ctx context.Context, in UpsertInput) (*entity.Customer, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name requerido", domain.ErrInvalidInput)
	}
	existing, err := uc.repos.Customers.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if existing != nil {
		if in.Email != "" {
			existing.Email = in.Email
		}
		if in.Phone != "" {
			existing.Phone = in.Phone
		}
		existing.UpdatedAt = now
		if err := uc.repos.Customers.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	c := &entity.Customer{
		ID:               ident.New(),
		Name:             in.Name,
		Email:            in.Email,
		Phone:            in.Phone,
		Tier:             entity.TierBronze,
		MembershipStatus: entity.MembershipNone,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repos.Customers.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.log.Info().Str("customer_id", c.ID).Str("name", c.Name).Msg("cliente creado")
	return c, nil
}

// Summary resumen de un cliente con su membresía vigente, si la hay.
type Summary struct {
	Customer   *entity.Customer   `json:"customer"`
	Membership *entity.Membership `json:"membership,omitempty"`
}

// GetSummary devuelve el cliente con sus agregados y su membresía activa.
// La vigencia se evalúa al momento de la consulta: una membresía vencida se
// marca expirada aquí mismo y se refleja en el resumen del cliente.
func (uc *UseCase) GetSummary(ctx context.Context, id string) (*Summary, error) {
	c, err := uc.repos.Customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.IsDeleted {
		return nil, domain.ErrNotFound
	}
	m, err := uc.repos.Memberships.GetActiveByCustomer(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if m != nil && !m.ActiveOn(now) {
		if err := uc.expire(ctx, c, m, now); err != nil {
			return nil, err
		}
		m = nil
	}
	return &Summary{Customer: c, Membership: m}, nil
}

// Search busca clientes por nombre, email o teléfono sin distinguir
// mayúsculas ni acentos.
func (uc *UseCase) Search(ctx context.Context, query string) ([]*entity.Customer, error) {
	if query == "" {
		return uc.repos.Customers.List(ctx)
	}
	return uc.repos.Customers.Search(ctx, query)
}

// List lista todos los clientes.
func (uc *UseCase) List(ctx context.Context) ([]*entity.Customer, error) {
	return uc.repos.Customers.List(ctx)
}

// Delete da de baja lógica un cliente.
func (uc *UseCase) Delete(ctx context.Context, id, actor string) error {
	c, err := uc.repos.Customers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil || c.IsDeleted {
		return domain.ErrNotFound
	}
	return uc.repos.Customers.SoftDelete(ctx, id, actor)
}

// SellMembershipInput entrada para vender una membresía.
type SellMembershipInput struct {
	CustomerID string
	Type       string // weekly | monthly
	Price      decimal.Decimal
	CreatedBy  string
}

// SellMembership activa una membresía para el cliente. Un cliente no puede
// tener dos membresías activas a la vez.
func (uc *UseCase) SellMembership(ctx context.Context, in SellMembershipInput) (*entity.Membership, error) {
	if in.Type != MembershipWeekly && in.Type != MembershipMonthly {
		return nil, fmt.Errorf("%w: tipo de membresía %q", domain.ErrInvalidInput, in.Type)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price negativo", domain.ErrInvalidInput)
	}
	c, err := uc.repos.Customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.IsDeleted {
		return nil, domain.ErrNotFound
	}
	current, err := uc.repos.Memberships.GetActiveByCustomer(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if current != nil && current.ActiveOn(now) {
		return nil, fmt.Errorf("%w: el cliente ya tiene una membresía activa", domain.ErrConflict)
	}

	end := now.AddDate(0, 1, 0)
	if in.Type == MembershipWeekly {
		end = now.AddDate(0, 0, 7)
	}
	m := &entity.Membership{
		ID:           ident.New(),
		CustomerID:   c.ID,
		CustomerName: c.Name,
		Type:         in.Type,
		Price:        in.Price,
		StartDate:    now,
		EndDate:      end,
		Status:       entity.MembershipActive,
		CreatedBy:    in.CreatedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repos.Memberships.Create(ctx, m); err != nil {
		return nil, err
	}

	c.MembershipStatus = entity.MembershipActive
	c.MembershipType = m.Type
	c.MembershipStart = &m.StartDate
	c.MembershipEnd = &m.EndDate
	c.UpdatedAt = now
	if err := uc.repos.Customers.Update(ctx, c); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("customer_id", c.ID).
		Str("membership_id", m.ID).
		Str("type", m.Type).
		Msg("membresía activada")
	return m, nil
}

// ListMemberships lista todas las membresías.
func (uc *UseCase) ListMemberships(ctx context.Context) ([]*entity.Membership, error) {
	return uc.repos.Memberships.List(ctx)
}

// CancelMembership termina una membresía antes de su vencimiento.
func (uc *UseCase) CancelMembership(ctx context.Context, id, actor string) error {
	m, err := uc.repos.Memberships.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil || m.IsDeleted {
		return domain.ErrNotFound
	}
	now := time.Now()
	c, err := uc.repos.Customers.GetByID(ctx, m.CustomerID)
	if err != nil {
		return err
	}
	if c != nil {
		if err := uc.expire(ctx, c, m, now); err != nil {
			return err
		}
	} else {
		m.Status = entity.MembershipExpired
		m.UpdatedAt = now
		if err := uc.repos.Memberships.Update(ctx, m); err != nil {
			return err
		}
	}
	uc.log.Info().Str("membership_id", id).Str("cancelled_by", actor).Msg("membresía cancelada")
	return nil
}

// ExpireOverdue marca como expiradas las membresías activas ya vencidas y
// actualiza el resumen de cada cliente. Devuelve cuántas expiraron.
func (uc *UseCase) ExpireOverdue(ctx context.Context) (int, error) {
	all, err := uc.repos.Memberships.List(ctx)
	if err != nil {
		return 0, err
	}
	now := time.Now()
	expired := 0
	for _, m := range all {
		if m.Status != entity.MembershipActive || m.IsDeleted || !now.After(m.EndDate) {
			continue
		}
		c, err := uc.repos.Customers.GetByID(ctx, m.CustomerID)
		if err != nil {
			return expired, err
		}
		if c == nil {
			continue
		}
		if err := uc.expire(ctx, c, m, now); err != nil {
			return expired, err
		}
		expired++
	}
	if expired > 0 {
		uc.log.Info().Int("count", expired).Msg("membresías expiradas")
	}
	return expired, nil
}

// expire marca la membresía como expirada y degrada el resumen del cliente.
func (uc *UseCase) expire(ctx context.Context, c *entity.Customer, m *entity.Membership, now time.Time) error {
	m.Status = entity.MembershipExpired
	m.UpdatedAt = now
	if err := uc.repos.Memberships.Update(ctx, m); err != nil {
		return err
	}
	c.MembershipStatus = entity.MembershipExpired
	c.UpdatedAt = now
	return uc.repos.Customers.Update(ctx, c)
}
