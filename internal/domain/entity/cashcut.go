package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashCut representa un corte de caja: el consolidado de ventas y gastos
// desde el corte anterior hasta el momento del corte.
type CashCut struct {
	ID             string          `json:"id"`
	PeriodStart    time.Time       `json:"period_start"`
	PeriodEnd      time.Time       `json:"period_end"`
	TotalSales     decimal.Decimal `json:"total_sales"`
	TotalCash      decimal.Decimal `json:"total_cash"`
	TotalCard      decimal.Decimal `json:"total_card"`
	TotalTransfer  decimal.Decimal `json:"total_transfer"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	NetAmount      decimal.Decimal `json:"net_amount"`
	CountedCash    decimal.Decimal `json:"counted_cash"`
	CashDifference decimal.Decimal `json:"cash_difference"` // CountedCash - TotalCash
	Notes          string          `json:"notes,omitempty"`
	CreatedBy      string          `json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
	IsDeleted      bool            `json:"is_deleted"`
	DeletedAt      *time.Time      `json:"deleted_at,omitempty"`
	DeletedBy      string          `json:"deleted_by,omitempty"`
}
