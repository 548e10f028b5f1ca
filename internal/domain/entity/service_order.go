package entity

import (
	"strings"
	"time"

	"github.com/oficinapro/oficina-api/internal/domain"
)

// OrderStatus status da ordem de serviço.
type OrderStatus string

// Estados da ordem de serviço. REQUESTED quando aberta pelo cliente,
// RECEIVED quando aberta no balcão por um funcionário.
const (
	OrderStatusRequested        OrderStatus = "REQUESTED"
	OrderStatusReceived         OrderStatus = "RECEIVED"
	OrderStatusInDiagnosis      OrderStatus = "IN_DIAGNOSIS"
	OrderStatusAwaitingApproval OrderStatus = "AWAITING_APPROVAL"
	OrderStatusApproved         OrderStatus = "APPROVED"
	OrderStatusScheduled        OrderStatus = "SCHEDULED"
	OrderStatusInExecution      OrderStatus = "IN_EXECUTION"
	OrderStatusFinished         OrderStatus = "FINISHED"
	OrderStatusDelivered        OrderStatus = "DELIVERED"
	OrderStatusRejected         OrderStatus = "REJECTED"
	OrderStatusCancelled        OrderStatus = "CANCELLED"
)

// orderTransitions tabela fixa de transições permitidas, autorada à mão.
// DELIVERED ainda admite REJECTED (contestação/garantia pós-entrega) e
// REJECTED ainda admite CANCELLED; as direções inversas não existem.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusRequested:        {OrderStatusReceived, OrderStatusCancelled, OrderStatusRejected},
	OrderStatusReceived:         {OrderStatusInDiagnosis, OrderStatusCancelled, OrderStatusRejected},
	OrderStatusInDiagnosis:      {OrderStatusAwaitingApproval, OrderStatusCancelled, OrderStatusRejected},
	OrderStatusAwaitingApproval: {OrderStatusApproved, OrderStatusRejected, OrderStatusCancelled},
	OrderStatusApproved:         {OrderStatusInExecution, OrderStatusCancelled, OrderStatusRejected},
	OrderStatusScheduled:        {OrderStatusInExecution, OrderStatusCancelled, OrderStatusRejected},
	OrderStatusInExecution:      {OrderStatusFinished, OrderStatusCancelled, OrderStatusRejected},
	OrderStatusFinished:         {OrderStatusDelivered, OrderStatusCancelled, OrderStatusRejected},
	OrderStatusDelivered:        {OrderStatusCancelled, OrderStatusRejected},
	OrderStatusRejected:         {OrderStatusCancelled},
	OrderStatusCancelled:        {},
}

// ValidOrderStatus informa se o valor é um status conhecido.
func ValidOrderStatus(s OrderStatus) bool {
	_, ok := orderTransitions[s]
	return ok
}

// AllowedOrderTransitions devolve uma cópia dos destinos permitidos a partir de um status.
func AllowedOrderTransitions(from OrderStatus) []OrderStatus {
	targets := orderTransitions[from]
	out := make([]OrderStatus, len(targets))
	copy(out, targets)
	return out
}

// ServiceOrder ordem de serviço da oficina. Os campos do ciclo de vida
// (status, datas, motivo de cancelamento) são privados: a única via de
// mutação são os métodos abaixo.
type ServiceOrder struct {
	ID          string
	ClientID    string
	VehicleID   string
	RequestDate time.Time
	Notes       string
	CreatedAt   time.Time

	status             OrderStatus
	deliveryDate       *time.Time
	cancellationReason string
	updatedAt          time.Time
}

// NewServiceOrder cria uma ordem: REQUESTED quando aberta pelo cliente,
// RECEIVED quando aberta por um funcionário.
func NewServiceOrder(id, clientID, vehicleID, notes string, openedByEmployee bool, now time.Time) *ServiceOrder {
	status := OrderStatusRequested
	if openedByEmployee {
		status = OrderStatusReceived
	}
	return &ServiceOrder{
		ID:          id,
		ClientID:    clientID,
		VehicleID:   vehicleID,
		RequestDate: now,
		Notes:       notes,
		CreatedAt:   now,
		status:      status,
		updatedAt:   now,
	}
}

// RestoreServiceOrder reidrata uma ordem a partir da persistência, sem validar transições.
func RestoreServiceOrder(
	id, clientID, vehicleID string,
	status OrderStatus,
	requestDate time.Time,
	deliveryDate *time.Time,
	cancellationReason, notes string,
	createdAt, updatedAt time.Time,
) *ServiceOrder {
	return &ServiceOrder{
		ID:                 id,
		ClientID:           clientID,
		VehicleID:          vehicleID,
		RequestDate:        requestDate,
		Notes:              notes,
		CreatedAt:          createdAt,
		status:             status,
		deliveryDate:       deliveryDate,
		cancellationReason: cancellationReason,
		updatedAt:          updatedAt,
	}
}

// Status devolve o status atual.
func (o *ServiceOrder) Status() OrderStatus { return o.status }

// DeliveryDate devolve a data de entrega (nil enquanto não entregue).
func (o *ServiceOrder) DeliveryDate() *time.Time { return o.deliveryDate }

// CancellationReason devolve o motivo do cancelamento (vazio se não cancelada via Cancel).
func (o *ServiceOrder) CancellationReason() string { return o.cancellationReason }

// UpdatedAt devolve o instante da última mutação.
func (o *ServiceOrder) UpdatedAt() time.Time { return o.updatedAt }

// CanTransitionTo informa se a tabela permite a transição.
func (o *ServiceOrder) CanTransitionTo(target OrderStatus) bool {
	for _, t := range orderTransitions[o.status] {
		if t == target {
			return true
		}
	}
	return false
}

// UpdateStatus valida a transição contra a tabela e aplica. Em DELIVERED
// registra a data de entrega. Falha sem mutar nada.
func (o *ServiceOrder) UpdateStatus(target OrderStatus, now time.Time) error {
	if !o.CanTransitionTo(target) {
		allowed := orderTransitions[o.status]
		names := make([]string, len(allowed))
		for i, t := range allowed {
			names[i] = string(t)
		}
		return &domain.InvalidStatusTransitionError{
			Current:   string(o.status),
			Attempted: string(target),
			Allowed:   names,
		}
	}
	o.status = target
	if target == OrderStatusDelivered {
		d := now
		o.deliveryDate = &d
	}
	o.updatedAt = now
	return nil
}

// Cancel é UpdateStatus(CANCELLED) com registro atômico do motivo, que é obrigatório.
func (o *ServiceOrder) Cancel(reason string, now time.Time) error {
	if strings.TrimSpace(reason) == "" {
		return domain.ErrCancellationReasonRequired
	}
	if err := o.UpdateStatus(OrderStatusCancelled, now); err != nil {
		return err
	}
	o.cancellationReason = reason
	return nil
}

// CanAddBudgetItems itens de orçamento só entram durante o diagnóstico.
func (o *ServiceOrder) CanAddBudgetItems() bool {
	return o.status == OrderStatusInDiagnosis
}

// CanBeApprovedOrRejected a ordem está aguardando decisão do cliente.
func (o *ServiceOrder) CanBeApprovedOrRejected() bool {
	return o.status == OrderStatusAwaitingApproval
}

// IsInFinalState entregue, cancelada ou rejeitada.
func (o *ServiceOrder) IsInFinalState() bool {
	return o.status == OrderStatusDelivered ||
		o.status == OrderStatusCancelled ||
		o.status == OrderStatusRejected
}
