package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense representa un gasto operativo del local.
type Expense struct {
	ID            string          `json:"id"`
	Description   string          `json:"description"`
	Category      string          `json:"category,omitempty"` // insumos, renta, servicios, otros
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	ExpenseDate   time.Time       `json:"expense_date"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	IsDeleted     bool            `json:"is_deleted"`
	DeletedAt     *time.Time      `json:"deleted_at,omitempty"`
	DeletedBy     string          `json:"deleted_by,omitempty"`
}
