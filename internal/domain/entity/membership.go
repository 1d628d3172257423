package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Membership representa una membresía de coworking vendida a un cliente.
// Mientras está activa exenta el cargo por tiempo de las sesiones; las horas
// exentadas se acumulan en BenefitHoursUsed.
type Membership struct {
	ID               string          `json:"id"`
	CustomerID       string          `json:"customer_id"`
	CustomerName     string          `json:"customer_name"`
	Type             string          `json:"type"` // weekly | monthly
	Price            decimal.Decimal `json:"price"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	Status           string          `json:"status"` // active | expired
	BenefitHoursUsed decimal.Decimal `json:"benefit_hours_used"`
	CreatedBy        string          `json:"created_by"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	IsDeleted        bool            `json:"is_deleted"`
	DeletedAt        *time.Time      `json:"deleted_at,omitempty"`
	DeletedBy        string          `json:"deleted_by,omitempty"`
}

// ActiveOn indica si la membresía cubre la fecha dada.
func (m *Membership) ActiveOn(t time.Time) bool {
	return m.Status == MembershipActive && !m.IsDeleted &&
		!t.Before(m.StartDate) && !t.After(m.EndDate)
}
