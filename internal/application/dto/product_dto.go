package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Category      string          `json:"category" validate:"required,oneof=cafeteria refrigerator food"`
	Quantity      int             `json:"quantity" validate:"min=0"`
	Cost          decimal.Decimal `json:"cost"`
	Price         decimal.Decimal `json:"price"`
	LowStockAlert int             `json:"low_stock_alert" validate:"min=0"`
}

// UpdateProductRequest entrada para actualizar un producto; los campos nulos
// no cambian.
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category      *string          `json:"category" validate:"omitempty,oneof=cafeteria refrigerator food"`
	Cost          *decimal.Decimal `json:"cost"`
	Price         *decimal.Decimal `json:"price"`
	LowStockAlert *int             `json:"low_stock_alert" validate:"omitempty,min=0"`
}

// AdjustStockRequest entrada para ajustar el inventario de un producto.
type AdjustStockRequest struct {
	Amount    int    `json:"amount" validate:"min=0"`
	Operation string `json:"operation" validate:"required,oneof=add subtract set"`
}
