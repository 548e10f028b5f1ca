package dto

import "time"

// BudgetItemInput linha do orçamento na criação.
type BudgetItemInput struct {
	StockItemID    string `json:"stock_item_id" validate:"omitempty,uuid4"`
	Description    string `json:"description" validate:"required,max=500"`
	Quantity       int    `json:"quantity" validate:"required,min=1"`
	UnitPriceCents int64  `json:"unit_price_cents" validate:"required,min=0"`
}

// GenerateBudgetRequest criação de orçamento para uma ordem em diagnóstico.
type GenerateBudgetRequest struct {
	ServiceOrderID string            `json:"service_order_id" validate:"required,uuid4"`
	ValidityDays   int               `json:"validity_days" validate:"required,min=1,max=90"`
	Items          []BudgetItemInput `json:"items" validate:"required,min=1,dive"`
}

// UpdateBudgetRequest setters incondicionais de campos do orçamento.
type UpdateBudgetRequest struct {
	ValidityDays   *int    `json:"validity_days" validate:"omitempty,min=1,max=90"`
	DeliveryMethod *string `json:"delivery_method" validate:"omitempty,max=100"`
	Notes          *string `json:"notes" validate:"omitempty,max=2000"`
}

// BudgetResponse projeção do orçamento para a API.
type BudgetResponse struct {
	ID               string     `json:"id"`
	ServiceOrderID   string     `json:"service_order_id"`
	ClientID         string     `json:"client_id"`
	Status           string     `json:"status"`
	TotalAmountCents int64      `json:"total_amount_cents"`
	ValidityDays     int        `json:"validity_days"`
	GenerationDate   time.Time  `json:"generation_date"`
	ExpirationDate   time.Time  `json:"expiration_date"`
	SentDate         *time.Time `json:"sent_date,omitempty"`
	ApprovalDate     *time.Time `json:"approval_date,omitempty"`
	RejectionDate    *time.Time `json:"rejection_date,omitempty"`
	DeliveryMethod   string     `json:"delivery_method,omitempty"`
	Notes            string     `json:"notes,omitempty"`
}
