package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Niveles de lealtad, función pura de los puntos acumulados.
const (
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
)

// Estado de membresía del cliente.
const (
	MembershipNone    = "none"
	MembershipActive  = "active"
	MembershipExpired = "expired"
)

// ProductStat consumo acumulado de un producto por un cliente.
type ProductStat struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Spent    decimal.Decimal `json:"spent"`
}

// Customer representa un cliente con sus estadísticas de visitas.
// Invariantes: AverageSpent = TotalSpent / TotalVisits cuando TotalVisits > 0;
// Tier se deriva siempre de LoyaltyPoints (1 punto por unidad monetaria gastada).
type Customer struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	TotalVisits  int        `json:"total_visits"`
	FirstVisit   *time.Time `json:"first_visit,omitempty"`
	LastVisit    *time.Time `json:"last_visit,omitempty"`

	TotalSpent   decimal.Decimal `json:"total_spent"`
	AverageSpent decimal.Decimal `json:"average_spent"`

	ProductStats map[string]*ProductStat `json:"product_stats,omitempty"`  // por product_id
	PaymentStats map[string]int          `json:"payment_stats,omitempty"` // histograma por método de pago

	LoyaltyPoints int64  `json:"loyalty_points"`
	Tier          string `json:"tier"`

	CoworkingVisits int             `json:"coworking_visits"`
	CoworkingHours  decimal.Decimal `json:"coworking_hours"`

	// Resumen de membresía (el registro completo vive en la colección memberships).
	MembershipStatus string     `json:"membership_status"`
	MembershipType   string     `json:"membership_type,omitempty"`
	MembershipStart  *time.Time `json:"membership_start,omitempty"`
	MembershipEnd    *time.Time `json:"membership_end,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	IsDeleted bool       `json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	DeletedBy string     `json:"deleted_by,omitempty"`
}
