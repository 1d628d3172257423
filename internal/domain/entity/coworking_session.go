package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una sesión de coworking.
// Transiciones válidas: active -> paused <-> active -> closed;
// active/paused -> cancelled (terminal).
const (
	SessionActive    = "active"
	SessionPaused    = "paused"
	SessionClosed    = "closed"
	SessionCancelled = "cancelled"
)

// CoworkingSession representa una estancia de coworking en curso o terminada.
// Mientras está activa, la duración y los totales derivados se recalculan en
// cada lectura; al cerrarse quedan congelados junto con el método de pago.
type CoworkingSession struct {
	ID            string          `json:"id"`
	ClientName    string          `json:"client_name"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	Status        string          `json:"status"`
	StartedAt     time.Time       `json:"started_at"`
	EndedAt       *time.Time      `json:"ended_at,omitempty"`
	PausedAt      *time.Time      `json:"paused_at,omitempty"`
	PausedSeconds int64           `json:"paused_seconds"` // tiempo acumulado en pausa, no facturable
	Items         []SaleItem      `json:"items"`
	BilledHours   decimal.Decimal `json:"billed_hours"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TimeCharge    decimal.Decimal `json:"time_charge"`
	Total         decimal.Decimal `json:"total"`
	Cost          decimal.Decimal `json:"cost"`
	Profit        decimal.Decimal `json:"profit"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	SaleID        string          `json:"sale_id,omitempty"` // venta emitida al cerrar
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Open indica si la sesión sigue en curso (activa o pausada).
func (s *CoworkingSession) Open() bool {
	return s.Status == SessionActive || s.Status == SessionPaused
}

// ElapsedAt devuelve la duración facturable transcurrida hasta now,
// descontando el tiempo acumulado en pausa.
func (s *CoworkingSession) ElapsedAt(now time.Time) time.Duration {
	end := now
	if s.EndedAt != nil {
		end = *s.EndedAt
	}
	elapsed := end.Sub(s.StartedAt) - time.Duration(s.PausedSeconds)*time.Second
	if s.Status == SessionPaused && s.PausedAt != nil {
		elapsed -= end.Sub(*s.PausedAt)
	}
	if elapsed < 0 {
		return 0
	}
	return elapsed
}
