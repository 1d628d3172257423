package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/nubecafe/pos-core/internal/application/reports"
	"github.com/nubecafe/pos-core/internal/domain"
	"github.com/nubecafe/pos-core/internal/domain/entity"
	"github.com/nubecafe/pos-core/internal/domain/repository"
	"github.com/nubecafe/pos-core/internal/infrastructure/jsonstore"
	"github.com/nubecafe/pos-core/pkg/ident"
	"github.com/nubecafe/pos-core/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func newEnv(t *testing.T) (*reports.UseCase, *repository.Set) {
	t.Helper()
	store, err := jsonstore.NewStore(t.TempDir(), 5*time.Second)
	require.NoError(t, err)
	set := jsonstore.NewSet(store)
	return reports.NewUseCase(set, logger.Nop()), set
}

func seedSale(t *testing.T, set *repository.Set, serviceType, payment, total, cost, drinks string, at time.Time) {
	t.Helper()
	require.NoError(t, set.Sales.Create(context.Background(), &entity.Sale{
		ID:            ident.New(),
		ClientName:    "Ana",
		ServiceType:   serviceType,
		PaymentMethod: payment,
		Total:         dec(total),
		Cost:          dec(cost),
		DrinksCost:    dec(drinks),
		Profit:        dec(total).Sub(dec(cost)),
		CreatedAt:     at,
	}))
}

func TestFinancial_ConsolidaVentasYGastos(t *testing.T) {
	uc, set := newEnv(t)
	ctx := context.Background()
	now := time.Now()

	seedSale(t, set, entity.ServiceCafeteria, entity.PaymentCash, "100", "30", "0", now)
	seedSale(t, set, entity.ServiceCoworking, entity.PaymentCard, "141", "10", "5", now)
	require.NoError(t, set.Expenses.Create(ctx, &entity.Expense{
		ID: ident.New(), Description: "Leche", Amount: dec("40"),
		PaymentMethod: entity.PaymentCash, ExpenseDate: now, CreatedAt: now,
	}))

	r, err := uc.Financial(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 2, r.SalesCount)
	assert.True(t, r.TotalIncome.Equal(dec("241")), "ingreso: %s", r.TotalIncome)
	assert.True(t, r.TotalCost.Equal(dec("40")), "costo: %s", r.TotalCost)
	assert.True(t, r.TotalExpenses.Equal(dec("40")))
	assert.True(t, r.DrinksCost.Equal(dec("5")))
	assert.True(t, r.GrossProfit.Equal(dec("201")), "bruta: %s", r.GrossProfit)
	assert.True(t, r.NetProfit.Equal(dec("161")), "neta: %s", r.NetProfit)
	assert.True(t, r.ByService[entity.ServiceCafeteria].Equal(dec("100")))
	assert.True(t, r.ByService[entity.ServiceCoworking].Equal(dec("141")))
	assert.True(t, r.ByPayment[entity.PaymentCash].Equal(dec("100")))
	assert.True(t, r.ByPayment[entity.PaymentCard].Equal(dec("141")))
}

func TestFinancial_IgnoraVentasFueraDeRangoYBorradas(t *testing.T) {
	uc, set := newEnv(t)
	ctx := context.Background()
	now := time.Now()

	seedSale(t, set, entity.ServiceCafeteria, entity.PaymentCash, "100", "30", "0", now)
	seedSale(t, set, entity.ServiceCafeteria, entity.PaymentCash, "999", "0", "0", now.AddDate(0, 0, -10))

	// Venta borrada dentro del rango: fuera del reporte.
	deleted := &entity.Sale{
		ID: "del-1", ClientName: "X", ServiceType: entity.ServiceCafeteria,
		PaymentMethod: entity.PaymentCash, Total: dec("500"), CreatedAt: now,
	}
	require.NoError(t, set.Sales.Create(ctx, deleted))
	require.NoError(t, set.Sales.SoftDelete(ctx, deleted.ID, "admin"))

	r, err := uc.Financial(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, r.SalesCount)
	assert.True(t, r.TotalIncome.Equal(dec("100")), "ingreso: %s", r.TotalIncome)
}

func TestFinancial_RangoInvertido(t *testing.T) {
	uc, _ := newEnv(t)
	now := time.Now()
	_, err := uc.Financial(context.Background(), now, now.Add(-time.Hour))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateCashCut_ConsolidaDesdeElCorteAnterior(t *testing.T) {
	uc, set := newEnv(t)
	ctx := context.Background()
	now := time.Now()

	seedSale(t, set, entity.ServiceCafeteria, entity.PaymentCash, "200", "50", "0", now.Add(-time.Hour))
	seedSale(t, set, entity.ServiceCafeteria, entity.PaymentCard, "100", "20", "0", now.Add(-time.Hour))
	seedSale(t, set, entity.ServiceCoworking, entity.PaymentTransfer, "80", "0", "0", now.Add(-time.Hour))
	require.NoError(t, set.Expenses.Create(ctx, &entity.Expense{
		ID: ident.New(), Description: "Hielo", Amount: dec("30"),
		PaymentMethod: entity.PaymentCash, ExpenseDate: now.Add(-time.Hour), CreatedAt: now.Add(-time.Hour),
	}))

	cut, err := uc.CreateCashCut(ctx, reports.CreateCashCutInput{
		CountedCash: dec("190"),
		Notes:       "faltan 10",
		CreatedBy:   "admin",
	})
	require.NoError(t, err)

	assert.True(t, cut.TotalSales.Equal(dec("380")), "ventas: %s", cut.TotalSales)
	assert.True(t, cut.TotalCash.Equal(dec("200")))
	assert.True(t, cut.TotalCard.Equal(dec("100")))
	assert.True(t, cut.TotalTransfer.Equal(dec("80")))
	assert.True(t, cut.TotalExpenses.Equal(dec("30")))
	assert.True(t, cut.NetAmount.Equal(dec("350")))
	assert.True(t, cut.CashDifference.Equal(dec("-10")), "contado - esperado: %s", cut.CashDifference)
	assert.True(t, cut.PeriodStart.IsZero(), "el primer corte abarca desde el inicio")

	// El siguiente corte arranca donde terminó este y no recuenta nada.
	cut2, err := uc.CreateCashCut(ctx, reports.CreateCashCutInput{CountedCash: dec("0"), CreatedBy: "admin"})
	require.NoError(t, err)
	assert.True(t, cut2.PeriodStart.Equal(cut.PeriodEnd), "el periodo continúa sin huecos")
	assert.True(t, cut2.TotalSales.IsZero(), "sin ventas nuevas el corte queda en cero")
}

func TestCreateCashCut_VentaEnLaFronteraCuentaUnaVez(t *testing.T) {
	uc, set := newEnv(t)
	ctx := context.Background()
	now := time.Now()

	seedSale(t, set, entity.ServiceCafeteria, entity.PaymentCash, "100", "0", "0", now.Add(-time.Hour))
	cut, err := uc.CreateCashCut(ctx, reports.CreateCashCutInput{CountedCash: dec("100"), CreatedBy: "admin"})
	require.NoError(t, err)
	require.True(t, cut.TotalSales.Equal(dec("100")))

	// Una venta registrada exactamente en el PeriodEnd del corte pertenece a
	// ese corte: el siguiente no la recuenta.
	boundary := &entity.Sale{
		ID: ident.New(), ClientName: "Ana", ServiceType: entity.ServiceCafeteria,
		PaymentMethod: entity.PaymentCash, Total: dec("55"), CreatedAt: cut.PeriodEnd,
	}
	require.NoError(t, set.Sales.Create(ctx, boundary))
	require.NoError(t, set.Expenses.Create(ctx, &entity.Expense{
		ID: ident.New(), Description: "Hielo", Amount: dec("30"),
		PaymentMethod: entity.PaymentCash, ExpenseDate: cut.PeriodEnd, CreatedAt: cut.PeriodEnd,
	}))

	cut2, err := uc.CreateCashCut(ctx, reports.CreateCashCutInput{CountedCash: dec("0"), CreatedBy: "admin"})
	require.NoError(t, err)
	assert.True(t, cut2.TotalSales.IsZero(), "la venta de la frontera no se recuenta: %s", cut2.TotalSales)
	assert.True(t, cut2.TotalExpenses.IsZero(), "el gasto de la frontera no se recuenta: %s", cut2.TotalExpenses)
}

func TestExpenses_CicloCompleto(t *testing.T) {
	uc, _ := newEnv(t)
	ctx := context.Background()

	e, err := uc.CreateExpense(ctx, reports.CreateExpenseInput{
		Description:   "Renta",
		Category:      "renta",
		Amount:        dec("1500"),
		PaymentMethod: entity.PaymentTransfer,
		CreatedBy:     "admin",
	})
	require.NoError(t, err)
	assert.False(t, e.ExpenseDate.IsZero(), "sin fecha usa ahora")

	list, err := uc.ListExpenses(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.DeleteExpense(ctx, e.ID, "admin"))
	assert.ErrorIs(t, uc.DeleteExpense(ctx, e.ID, "admin"), domain.ErrNotFound)

	// Validaciones.
	_, err = uc.CreateExpense(ctx, reports.CreateExpenseInput{Description: "", Amount: dec("1"), PaymentMethod: entity.PaymentCash})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CreateExpense(ctx, reports.CreateExpenseInput{Description: "x", Amount: dec("0"), PaymentMethod: entity.PaymentCash})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
