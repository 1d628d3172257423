package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto del punto de venta.
const (
	CategoryCafeteria    = "cafeteria"    // bebidas preparadas en barra
	CategoryRefrigerator = "refrigerator" // bebidas embotelladas del refrigerador
	CategoryFood         = "food"
)

// DefaultLowStockAlert umbral de alerta de stock bajo cuando no se indica otro.
const DefaultLowStockAlert = 5

// Product representa un producto del inventario de la cafetería.
// Quantity nunca es negativo; las bajas son soft delete (IsActive = false).
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Quantity      int             `json:"quantity"`
	Cost          decimal.Decimal `json:"cost"`
	Price         decimal.Decimal `json:"price"`
	LowStockAlert int             `json:"low_stock_alert"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     *time.Time      `json:"deleted_at,omitempty"`
	DeletedBy     string          `json:"deleted_by,omitempty"`
}

// ValidCategory indica si la categoría es una de las soportadas.
func ValidCategory(c string) bool {
	switch c {
	case CategoryCafeteria, CategoryRefrigerator, CategoryFood:
		return true
	}
	return false
}

// LowStock indica si el producto está por debajo de su umbral de alerta.
func (p *Product) LowStock() bool {
	return p.Quantity <= p.LowStockAlert
}
