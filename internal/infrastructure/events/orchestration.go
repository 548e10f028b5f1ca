package events

import (
	"github.com/oficinapro/oficina-api/internal/application/budget"
	"github.com/oficinapro/oficina-api/internal/application/ports"
	"github.com/oficinapro/oficina-api/internal/domain"
	"github.com/oficinapro/oficina-api/internal/domain/entity"
	"github.com/oficinapro/oficina-api/internal/domain/repository"
	"github.com/oficinapro/oficina-api/pkg/logger"
)

// OrderOrchestrator avança a ordem de serviço quando o orçamento transiciona:
//
//	budget.sent     -> IN_DIAGNOSIS      -> AWAITING_APPROVAL
//	budget.approved -> AWAITING_APPROVAL -> APPROVED
//	budget.rejected -> AWAITING_APPROVAL -> REJECTED
//
// A transição é best-effort: se a ordem já saiu do estado esperado, o evento
// é ignorado com log, sem retry.
type OrderOrchestrator struct {
	orderRepo repository.ServiceOrderRepository
	clock     ports.Clock
	log       *logger.Logger
}

// NewOrderOrchestrator constrói o orquestrador.
func NewOrderOrchestrator(orderRepo repository.ServiceOrderRepository, clock ports.Clock, log *logger.Logger) *OrderOrchestrator {
	return &OrderOrchestrator{orderRepo: orderRepo, clock: clock, log: log}
}

// Register assina os eventos de orçamento no barramento.
func (o *OrderOrchestrator) Register(bus *Bus) {
	bus.Subscribe(budget.EventBudgetSent, o.advanceTo(entity.OrderStatusAwaitingApproval))
	bus.Subscribe(budget.EventBudgetApproved, o.advanceTo(entity.OrderStatusApproved))
	bus.Subscribe(budget.EventBudgetRejected, o.advanceTo(entity.OrderStatusRejected))
}

func (o *OrderOrchestrator) advanceTo(target entity.OrderStatus) Handler {
	return func(evt Event) error {
		orderID, _ := evt.Payload["service_order_id"].(string)
		if orderID == "" {
			o.log.Warn().Str("event", evt.Type).Msg("evento de orçamento sem service_order_id")
			return nil
		}
		order, err := o.orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrServiceOrderNotFound
		}
		if err := order.UpdateStatus(target, o.clock.Now()); err != nil {
			// Ordem fora do estado esperado; nada a fazer.
			o.log.Warn().
				Err(err).
				Str("event", evt.Type).
				Str("order_id", orderID).
				Str("target", string(target)).
				Msg("ordem não avançou com o evento de orçamento")
			return nil
		}
		if err := o.orderRepo.Update(order); err != nil {
			return err
		}
		o.log.Info().
			Str("order_id", orderID).
			Str("status", string(target)).
			Msg("ordem avançada por evento de orçamento")
		return nil
	}
}
