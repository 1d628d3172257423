package dto

import "github.com/shopspring/decimal"

// FinancialReportRequest rango del reporte financiero.
type FinancialReportRequest struct {
	From string `query:"from" validate:"required"` // RFC 3339 o YYYY-MM-DD
	To   string `query:"to" validate:"required"`
}

// CreateCashCutRequest entrada para cerrar un corte de caja.
type CreateCashCutRequest struct {
	CountedCash decimal.Decimal `json:"counted_cash"`
	Notes       string          `json:"notes" validate:"max=500"`
}

// CreateExpenseRequest entrada para registrar un gasto.
type CreateExpenseRequest struct {
	Description   string          `json:"description" validate:"required,min=1,max=300"`
	Category      string          `json:"category" validate:"max=50"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=cash card transfer"`
	ExpenseDate   string          `json:"expense_date"` // RFC 3339 o YYYY-MM-DD; vacío usa ahora
}
