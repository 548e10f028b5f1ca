package dto

import "time"

// CreateServiceOrderRequest abertura de ordem de serviço.
type CreateServiceOrderRequest struct {
	ClientID  string `json:"client_id" validate:"required,uuid4"`
	VehicleID string `json:"vehicle_id" validate:"required,uuid4"`
	Notes     string `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateOrderStatusRequest transição de status da ordem.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CancelOrderRequest cancelamento com motivo obrigatório.
type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}

// ServiceOrderResponse projeção da ordem para a API.
type ServiceOrderResponse struct {
	ID                 string     `json:"id"`
	Status             string     `json:"status"`
	ClientID           string     `json:"client_id"`
	VehicleID          string     `json:"vehicle_id"`
	RequestDate        time.Time  `json:"request_date"`
	DeliveryDate       *time.Time `json:"delivery_date,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
