package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de servicio de una venta.
const (
	ServiceCafeteria = "cafeteria"
	ServiceCoworking = "coworking"
)

// Métodos de pago aceptados.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
)

// SaleItem es la línea de una venta: snapshot del producto al momento de vender
// (precio y costo quedan congelados aunque el producto cambie después).
type SaleItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Category  string          `json:"category"`
}

// Sale representa una venta registrada.
// Invariantes: Total = Subtotal + ServiceCharge + Tip; Profit = Total - Cost.
// En ventas coworking solo los items de refrigerador suman al subtotal; el costo
// de los items de cafetería consumidos se acumula en DrinksCost para reportes.
type Sale struct {
	ID            string          `json:"id"`
	ClientName    string          `json:"client_name"`
	ServiceType   string          `json:"service_type"`
	Items         []SaleItem      `json:"items"`
	Hours         decimal.Decimal `json:"hours"`
	PaymentMethod string          `json:"payment_method"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	ServiceCharge decimal.Decimal `json:"service_charge"`
	Tip           decimal.Decimal `json:"tip"`
	Total         decimal.Decimal `json:"total"`
	Cost          decimal.Decimal `json:"cost"`
	DrinksCost    decimal.Decimal `json:"drinks_cost"`
	Profit        decimal.Decimal `json:"profit"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	IsDeleted     bool            `json:"is_deleted"`
	DeletedAt     *time.Time      `json:"deleted_at,omitempty"`
	DeletedBy     string          `json:"deleted_by,omitempty"`
}

// ValidServiceType indica si el tipo de servicio es soportado.
func ValidServiceType(s string) bool {
	return s == ServiceCafeteria || s == ServiceCoworking
}

// ValidPaymentMethod indica si el método de pago es soportado.
func ValidPaymentMethod(p string) bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}
