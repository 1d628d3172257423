package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/nubecafe/pos-core/internal/application/sales"
	"github.com/nubecafe/pos-core/internal/domain"
	"github.com/nubecafe/pos-core/internal/domain/billing"
	"github.com/nubecafe/pos-core/internal/domain/entity"
	"github.com/nubecafe/pos-core/internal/domain/repository"
	"github.com/nubecafe/pos-core/internal/infrastructure/jsonstore"
	"github.com/nubecafe/pos-core/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

var testRules = billing.Rules{
	DayRate:      decimal.NewFromInt(180),
	DayRateAfter: decimal.NewFromInt(4),
}

// newEnv levanta el caso de uso sobre el backend de archivos JSON.
func newEnv(t *testing.T) (*sales.UseCase, *repository.Set) {
	t.Helper()
	store, err := jsonstore.NewStore(t.TempDir(), 5*time.Second)
	require.NoError(t, err)
	set := jsonstore.NewSet(store)
	uc := sales.NewUseCase(set, jsonstore.NewTxRunner(set), testRules, logger.Nop())
	return uc, set
}

func seedProduct(t *testing.T, set *repository.Set, id, name, category string, qty int, price, cost string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, set.Products.Create(context.Background(), &entity.Product{
		ID:            id,
		Name:          name,
		Category:      category,
		Quantity:      qty,
		Price:         dec(price),
		Cost:          dec(cost),
		LowStockAlert: entity.DefaultLowStockAlert,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}))
}

func TestCreate_VentaCafeteriaCompleta(t *testing.T) {
	uc, set := newEnv(t)
	ctx := context.Background()
	seedProduct(t, set, "latte", "Latte", entity.CategoryCafeteria, 10, "25", "5")
	seedProduct(t, set, "sandwich", "Sándwich", entity.CategoryFood, 5, "10", "5")

	sale, err := uc.Create(ctx, sales.CreateInput{
		ClientName:  "Ana",
		ServiceType: entity.ServiceCafeteria,
		Items: []sales.ItemInput{
			{ProductID: "latte", Quantity: 2},
			{ProductID: "sandwich", Quantity: 1},
		},
		PaymentMethod: entity.PaymentCash,
		CreatedBy:     "cajero1",
	})
	require.NoError(t, err)

	assert.True(t, sale.Total.Equal(dec("60")), "total: %s", sale.Total)
	assert.True(t, sale.Cost.Equal(dec("15")), "costo: %s", sale.Cost)
	assert.True(t, sale.Profit.Equal(dec("45")), "ganancia: %s", sale.Profit)

	// El snapshot congela precio y costo del momento de la venta.
	require.Len(t, sale.Items, 2)
	assert.True(t, sale.Items[0].UnitPrice.Equal(dec("25")))

	// Stock descontado.
	p, err := set.Products.GetByID(ctx, "latte")
	require.NoError(t, err)
	assert.Equal(t, 8, p.Quantity)

	// Cliente creado con sus agregados.
	c, err := set.Customers.GetByName(ctx, "Ana")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 1, c.TotalVisits)
	assert.True(t, c.TotalSpent.Equal(dec("60")))
	assert.Equal(t, int64(60), c.LoyaltyPoints)
}

func TestCreate_ProductoInexistenteNoMutaNada(t *testing.T) {
	uc, set := newEnv(t)
	ctx := context.Background()
	seedProduct(t, set, "latte", "Latte", entity.CategoryCafeteria, 10, "25", "5")

	_, err := uc.Create(ctx, sales.CreateInput{
		ClientName:  "Ana",
		ServiceType: entity.ServiceCafeteria,
		Items: []sales.ItemInput{
			{ProductID: "latte", Quantity: 2},
			{ProductID: "fantasma", Quantity: 1},
		},
		PaymentMethod: entity.PaymentCash,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "fantasma", "el error nombra al producto faltante")

	// La venta inválida no descuenta stock ni crea cliente ni venta.
	p, _ := set.Products.GetByID(ctx, "latte")
	assert.Equal(t, 10, p.Quantity)
	c, _ := set.Customers.GetByName(ctx, "Ana")
	assert.Nil(t, c)
	list, _ := set.Sales.List(ctx, repository.SaleFilter{})
	assert.Empty(t, list)
}

func TestCreate_StockSeTruncaEnCero(t *testing.T) {
	uc, set := newEnv(t)
	ctx := context.Background()
	seedProduct(t, set, "latte", "Latte", entity.CategoryCafeteria, 2, "25", "5")

	// Vender más de lo disponible no es error: la venta procede y el stock
	// queda en cero.
	sale, err := uc.Create(ctx, sales.CreateInput{
		ClientName:    "Ana",
		ServiceType:   entity.ServiceCafeteria,
		Items:         []sales.ItemInput{{ProductID: "latte", Quantity: 5}},
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(dec("125")), "se cobran las 5 unidades")

	p, _ := set.Products.GetByID(ctx, "latte")
	assert.Equal(t, 0, p.Quantity)
}

func TestCreate_CoworkingCobraPorHora(t *testing.T) {
	uc, set := newEnv(t)
	ctx := context.Background()
	seedProduct(t, set, "cafe", "Americano", entity.CategoryCafeteria, 10, "30", "5")
	seedProduct(t, set, "agua", "Agua mineral", entity.CategoryRefrigerator, 10, "25", "5")

	sale, err := uc.Create(ctx, sales.CreateInput{
		ClientName:  "Luis",
		ServiceType: entity.ServiceCoworking,
		Items: []sales.ItemInput{
			{ProductID: "cafe", Quantity: 1},
			{ProductID: "agua", Quantity: 1},
		},
		Hours:         dec("2"),
		HourlyRate:    dec("58"),
		PaymentMethod: entity.PaymentCard,
	})
	require.NoError(t, err)

	assert.True(t, sale.ServiceCharge.Equal(dec("116")), "2h x 58: %s", sale.ServiceCharge)
	assert.True(t, sale.Subtotal.Equal(dec("25")), "solo el refrigerador se cobra")
	assert.True(t, sale.Total.Equal(dec("141")), "total: %s", sale.Total)
	assert.True(t, sale.Profit.Equal(dec("131")), "ganancia: %s", sale.Profit)
	assert.True(t, sale.DrinksCost.Equal(dec("5")), "el costo del café de barra va a DrinksCost")

	// Ambos productos descuentan stock aunque uno no se cobre.
	p, _ := set.Products.GetByID(ctx, "cafe")
	assert.Equal(t, 9, p.Quantity)
}

func TestCreate_MembresiaExentaElCargo(t *testing.T) {
	uc, set := newEnv(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, set.Customers.Create(ctx, &entity.Customer{
		ID: "c1", Name: "Luis", Tier: entity.TierBronze,
		MembershipStatus: entity.MembershipActive,
		CreatedAt:        now, UpdatedAt: now,
	}))
	require.NoError(t, set.Memberships.Create(ctx, &entity.Membership{
		ID: "m1", CustomerID: "c1", CustomerName: "Luis",
		Type: "monthly", Status: entity.MembershipActive,
		StartDate: now.Add(-24 * time.Hour), EndDate: now.Add(24 * time.Hour),
		CreatedAt: now, UpdatedAt: now,
	}))

	sale, err := uc.Create(ctx, sales.CreateInput{
		ClientName:    "Luis",
		ServiceType:   entity.ServiceCoworking,
		Hours:         dec("6"),
		HourlyRate:    dec("58"),
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)

	// La membresía se evalúa antes que la tarifa de día: cargo cero aunque
	// las horas superen el umbral.
	assert.True(t, sale.ServiceCharge.IsZero(), "cargo: %s", sale.ServiceCharge)
	assert.True(t, sale.Total.IsZero())

	// Las horas exentadas se acumulan en la membresía.
	m, err := set.Memberships.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, m.BenefitHoursUsed.Equal(dec("6")), "horas de beneficio: %s", m.BenefitHoursUsed)
}

func TestDelete_RestauraStockSinTocarAgregados(t *testing.T) {
	uc, set := newEnv(t)
	ctx := context.Background()
	seedProduct(t, set, "latte", "Latte", entity.CategoryCafeteria, 10, "25", "5")

	sale, err := uc.Create(ctx, sales.CreateInput{
		ClientName:    "Ana",
		ServiceType:   entity.ServiceCafeteria,
		Items:         []sales.ItemInput{{ProductID: "latte", Quantity: 3}},
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, sale.ID, "admin"))

	// El stock vuelve exactamente a donde estaba.
	p, _ := set.Products.GetByID(ctx, "latte")
	assert.Equal(t, 10, p.Quantity)

	// La venta queda marcada, no eliminada.
	_, err = uc.GetByID(ctx, sale.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	raw, err := set.Sales.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	require.NotNil(t, raw)
	assert.True(t, raw.IsDeleted)
	assert.Equal(t, "admin", raw.DeletedBy)

	// Los agregados del cliente no se revierten.
	c, _ := set.Customers.GetByName(ctx, "Ana")
	require.NotNil(t, c)
	assert.Equal(t, 1, c.TotalVisits)
	assert.True(t, c.TotalSpent.Equal(dec("75")))

	// Borrar dos veces es ErrNotFound.
	assert.ErrorIs(t, uc.Delete(ctx, sale.ID, "admin"), domain.ErrNotFound)
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _ := newEnv(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   sales.CreateInput
	}{
		{"sin cliente", sales.CreateInput{ServiceType: entity.ServiceCafeteria, PaymentMethod: entity.PaymentCash, Items: []sales.ItemInput{{ProductID: "x", Quantity: 1}}}},
		{"servicio inválido", sales.CreateInput{ClientName: "Ana", ServiceType: "spa", PaymentMethod: entity.PaymentCash}},
		{"pago inválido", sales.CreateInput{ClientName: "Ana", ServiceType: entity.ServiceCafeteria, PaymentMethod: "bitcoin", Items: []sales.ItemInput{{ProductID: "x", Quantity: 1}}}},
		{"cafetería sin items", sales.CreateInput{ClientName: "Ana", ServiceType: entity.ServiceCafeteria, PaymentMethod: entity.PaymentCash}},
		{"coworking sin horas", sales.CreateInput{ClientName: "Ana", ServiceType: entity.ServiceCoworking, PaymentMethod: entity.PaymentCash}},
		{"propina negativa", sales.CreateInput{ClientName: "Ana", ServiceType: entity.ServiceCafeteria, PaymentMethod: entity.PaymentCash, Tip: dec("-1"), Items: []sales.ItemInput{{ProductID: "x", Quantity: 1}}}},
		{"cantidad cero", sales.CreateInput{ClientName: "Ana", ServiceType: entity.ServiceCafeteria, PaymentMethod: entity.PaymentCash, Items: []sales.ItemInput{{ProductID: "x", Quantity: 0}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestList_Filtros(t *testing.T) {
	uc, set := newEnv(t)
	ctx := context.Background()
	seedProduct(t, set, "latte", "Latte", entity.CategoryCafeteria, 100, "25", "5")

	_, err := uc.Create(ctx, sales.CreateInput{
		ClientName: "Ana", ServiceType: entity.ServiceCafeteria,
		Items:         []sales.ItemInput{{ProductID: "latte", Quantity: 1}},
		PaymentMethod: entity.PaymentCash,
	})
	require.NoError(t, err)
	_, err = uc.Create(ctx, sales.CreateInput{
		ClientName: "Luis", ServiceType: entity.ServiceCoworking, Hours: dec("1"), HourlyRate: dec("58"),
		PaymentMethod: entity.PaymentCard,
	})
	require.NoError(t, err)

	all, err := uc.List(ctx, repository.SaleFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	coworking, err := uc.List(ctx, repository.SaleFilter{ServiceType: entity.ServiceCoworking})
	require.NoError(t, err)
	require.Len(t, coworking, 1)
	assert.Equal(t, "Luis", coworking[0].ClientName)

	cash, err := uc.List(ctx, repository.SaleFilter{PaymentMethod: entity.PaymentCash})
	require.NoError(t, err)
	assert.Len(t, cash, 1)
}
