package reports

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

// UseCase produce los reportes financieros, los cortes de caja y administra
// los gastos operativos. Todos los números se recalculan desde las ventas y
// gastos persistidos; nada se precomputa fuera de los cortes mismos.
type UseCase struct {
	repos *repository.Set
	log   *logger.Logger
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(repos *repository.Set, log *logger.Logger) *UseCase {
	return &UseCase{repos: repos, log: log}
}

// FinancialReport reporte de un rango de fechas.
type FinancialReport struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	DrinksCost    decimal.Decimal `json:"drinks_cost"`
	GrossProfit   decimal.Decimal `json:"gross_profit"` // ingreso menos costo de lo vendido
	NetProfit     decimal.Decimal `json:"net_profit"`   // ganancia bruta menos gastos

	SalesCount int `json:"sales_count"`

	ByService  map[string]decimal.Decimal `json:"by_service"`
	ByPayment  map[string]decimal.Decimal `json:"by_payment"`
	ByCategory map[string]decimal.Decimal `json:"by_category"` // ingreso por categoría de producto
}

// Financial consolida ventas y gastos del rango dado. Las ventas borradas no
// cuentan.
func (uc *UseCase) Financial(ctx context.Context, from, to time.Time) (*FinancialReport, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: rango de fechas invertido", domain.ErrInvalidInput)
	}
	sales, err := uc.repos.Sales.List(ctx, repository.SaleFilter{From: &from, To: &to})
	if err != nil {
		return nil, err
	}
	expenses, err := uc.repos.Expenses.List(ctx, &from, &to)
	if err != nil {
		return nil, err
	}

	r := &FinancialReport{
		From:       from,
		To:         to,
		ByService:  make(map[string]decimal.Decimal),
		ByPayment:  make(map[string]decimal.Decimal),
		ByCategory: make(map[string]decimal.Decimal),
	}
	for _, s := range sales {
		r.SalesCount++
		r.TotalIncome = r.TotalIncome.Add(s.Total)
		r.TotalCost = r.TotalCost.Add(s.Cost)
		r.DrinksCost = r.DrinksCost.Add(s.DrinksCost)
		r.ByService[s.ServiceType] = r.ByService[s.ServiceType].Add(s.Total)
		r.ByPayment[s.PaymentMethod] = r.ByPayment[s.PaymentMethod].Add(s.Total)
		for _, it := range s.Items {
			line := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
			if s.ServiceType == entity.ServiceCoworking && it.Category != entity.CategoryRefrigerator {
				continue
			}
			r.ByCategory[it.Category] = r.ByCategory[it.Category].Add(line)
		}
	}
	for _, e := range expenses {
		if e.IsDeleted {
			continue
		}
		r.TotalExpenses = r.TotalExpenses.Add(e.Amount)
	}
	r.GrossProfit = r.TotalIncome.Sub(r.TotalCost).Round(2)
	r.NetProfit = r.GrossProfit.Sub(r.TotalExpenses).Round(2)
	return r, nil
}

// CreateCashCutInput entrada para cerrar un corte de caja.
type CreateCashCutInput struct {
	CountedCash decimal.Decimal
	Notes       string
	CreatedBy   string
}

// CreateCashCut consolida el periodo desde el corte anterior (o desde la
// primera venta si no hay cortes) hasta ahora y lo deja congelado.
// CashDifference = CountedCash - TotalCash: positivo sobra, negativo falta.
func (uc *UseCase) CreateCashCut(ctx context.Context, in CreateCashCutInput) (*entity.CashCut, error) {
	if in.CountedCash.IsNegative() {
		return nil, fmt.Errorf("%w: counted_cash negativo", domain.ErrInvalidInput)
	}
	now := time.Now()
	start := time.Time{}
	last, err := uc.repos.CashCuts.GetLast(ctx)
	if err != nil {
		return nil, err
	}
	if last != nil {
		start = last.PeriodEnd
	}

	var from *time.Time
	if !start.IsZero() {
		from = &start
	}
	sales, err := uc.repos.Sales.List(ctx, repository.SaleFilter{From: from, To: &now})
	if err != nil {
		return nil, err
	}
	expenses, err := uc.repos.Expenses.List(ctx, from, &now)
	if err != nil {
		return nil, err
	}

	cut := &entity.CashCut{
		ID:          ident.New(),
		PeriodStart: start,
		PeriodEnd:   now,
		CountedCash: in.CountedCash,
		Notes:       in.Notes,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   now,
	}
	// El inicio del periodo es exclusivo: lo registrado exactamente en el
	// PeriodEnd del corte anterior ya quedó contado en ese corte.
	for _, s := range sales {
		if !start.IsZero() && !s.CreatedAt.After(start) {
			continue
		}
		cut.TotalSales = cut.TotalSales.Add(s.Total)
		switch s.PaymentMethod {
		case entity.PaymentCash:
			cut.TotalCash = cut.TotalCash.Add(s.Total)
		case entity.PaymentCard:
			cut.TotalCard = cut.TotalCard.Add(s.Total)
		case entity.PaymentTransfer:
			cut.TotalTransfer = cut.TotalTransfer.Add(s.Total)
		}
	}
	for _, e := range expenses {
		if e.IsDeleted {
			continue
		}
		if !start.IsZero() && !e.ExpenseDate.After(start) {
			continue
		}
		cut.TotalExpenses = cut.TotalExpenses.Add(e.Amount)
	}
	cut.NetAmount = cut.TotalSales.Sub(cut.TotalExpenses).Round(2)
	cut.CashDifference = cut.CountedCash.Sub(cut.TotalCash).Round(2)

	if err := uc.repos.CashCuts.Create(ctx, cut); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("cashcut_id", cut.ID).
		Str("total_sales", cut.TotalSales.String()).
		Str("difference", cut.CashDifference.String()).
		Msg("corte de caja creado")
	return cut, nil
}

// GetCashCut obtiene un corte por id.
func (uc *UseCase) GetCashCut(ctx context.Context, id string) (*entity.CashCut, error) {
	cut, err := uc.repos.CashCuts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cut == nil || cut.IsDeleted {
		return nil, domain.ErrNotFound
	}
	return cut, nil
}

// ListCashCuts lista los cortes del rango (nil = sin límite).
func (uc *UseCase) ListCashCuts(ctx context.Context, from, to *time.Time) ([]*entity.CashCut, error) {
	return uc.repos.CashCuts.List(ctx, from, to)
}

// CreateExpenseInput entrada para registrar un gasto.
type CreateExpenseInput struct {
	Description   string
	Category      string
	Amount        decimal.Decimal
	PaymentMethod string
	ExpenseDate   time.Time
	CreatedBy     string
}

// CreateExpense registra un gasto operativo.
func (uc *UseCase) CreateExpense(ctx context.Context, in CreateExpenseInput) (*entity.Expense, error) {
	if in.Description == "" {
		return nil, fmt.Errorf("%w: description requerida", domain.ErrInvalidInput)
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount debe ser positivo", domain.ErrInvalidInput)
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: payment_method %q", domain.ErrInvalidInput, in.PaymentMethod)
	}
	now := time.Now()
	date := in.ExpenseDate
	if date.IsZero() {
		date = now
	}
	e := &entity.Expense{
		ID:            ident.New(),
		Description:   in.Description,
		Category:      in.Category,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		ExpenseDate:   date,
		CreatedBy:     in.CreatedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repos.Expenses.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// ListExpenses lista los gastos del rango (nil = sin límite).
func (uc *UseCase) ListExpenses(ctx context.Context, from, to *time.Time) ([]*entity.Expense, error) {
	return uc.repos.Expenses.List(ctx, from, to)
}

// DeleteExpense borra (soft delete) un gasto.
func (uc *UseCase) DeleteExpense(ctx context.Context, id, actor string) error {
	e, err := uc.repos.Expenses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil || e.IsDeleted {
		return domain.ErrNotFound
	}
	return uc.repos.Expenses.SoftDelete(ctx, id, actor)
}
