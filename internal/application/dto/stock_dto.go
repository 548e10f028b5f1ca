package dto

import "time"

// CreateStockItemRequest cadastro de item de estoque.
type CreateStockItemRequest struct {
	Name               string `json:"name" validate:"required,min=2,max=200"`
	SKU                string `json:"sku" validate:"required,min=2,max=60"`
	InitialStock       int    `json:"initial_stock" validate:"min=0"`
	MinStockLevel      int    `json:"min_stock_level" validate:"min=0"`
	UnitCostCents      int64  `json:"unit_cost_cents" validate:"min=0"`
	UnitSalePriceCents int64  `json:"unit_sale_price_cents" validate:"min=0"`
	Description        string `json:"description" validate:"omitempty,max=2000"`
	Supplier           string `json:"supplier" validate:"omitempty,max=200"`
}

// UpdateStockItemPricesRequest atualização de custo/preço (revalida a margem).
type UpdateStockItemPricesRequest struct {
	UnitCostCents      int64 `json:"unit_cost_cents" validate:"min=0"`
	UnitSalePriceCents int64 `json:"unit_sale_price_cents" validate:"min=0"`
}

// CreateStockMovementRequest registro de movimentação.
// Para ADJUSTMENT, quantity é o nível absoluto alvo, não um delta.
type CreateStockMovementRequest struct {
	StockItemID string `json:"stock_item_id" validate:"required,uuid4"`
	Type        string `json:"type" validate:"required,oneof=IN OUT ADJUSTMENT"`
	Quantity    int    `json:"quantity" validate:"min=0"`
	Reason      string `json:"reason" validate:"omitempty,max=500"`
	Notes       string `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateStockMovementRequest emenda de movimentação; campos nil preservam o original.
type UpdateStockMovementRequest struct {
	Type     *string `json:"type" validate:"omitempty,oneof=IN OUT ADJUSTMENT"`
	Quantity *int    `json:"quantity" validate:"omitempty,min=0"`
	Reason   *string `json:"reason" validate:"omitempty,max=500"`
	Notes    *string `json:"notes" validate:"omitempty,max=2000"`
}

// StockMovementResponse projeção da movimentação para a API.
type StockMovementResponse struct {
	ID           string    `json:"id"`
	StockItemID  string    `json:"stock_item_id"`
	Type         string    `json:"type"`
	Quantity     int       `json:"quantity"`
	MovementDate time.Time `json:"movement_date"`
	Reason       string    `json:"reason,omitempty"`
	Notes        string    `json:"notes,omitempty"`
}

// StockItemResponse projeção do item de estoque para a API.
type StockItemResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	SKU                string `json:"sku"`
	CurrentStock       int    `json:"current_stock"`
	MinStockLevel      int    `json:"min_stock_level"`
	UnitCostCents      int64  `json:"unit_cost_cents"`
	UnitSalePriceCents int64  `json:"unit_sale_price_cents"`
	Description        string `json:"description,omitempty"`
	Supplier           string `json:"supplier,omitempty"`
	BelowMinimum       bool   `json:"below_minimum"`
}

// LowStockItemResponse item abaixo do mínimo com o déficit sugerido de compra.
type LowStockItemResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SKU           string `json:"sku"`
	CurrentStock  int    `json:"current_stock"`
	MinStockLevel int    `json:"min_stock_level"`
	Deficit       int    `json:"deficit"`
	Supplier      string `json:"supplier,omitempty"`
}
