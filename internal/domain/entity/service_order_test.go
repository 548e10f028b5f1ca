package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oficinapro/oficina-api/internal/domain"
	"github.com/oficinapro/oficina-api/internal/domain/entity"
)

var t0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newOrder(t *testing.T, openedByEmployee bool) *entity.ServiceOrder {
	t.Helper()
	return entity.NewServiceOrder("ord-1", "cli-1", "veh-1", "", openedByEmployee, t0)
}

// orderAt reidrata uma ordem diretamente em um status arbitrário.
func orderAt(status entity.OrderStatus) *entity.ServiceOrder {
	return entity.RestoreServiceOrder("ord-1", "cli-1", "veh-1", status, t0, nil, "", "", t0, t0)
}

// ──────────────────────────────────────────────────────────────────────────────
// Criação
// ──────────────────────────────────────────────────────────────────────────────

func TestNewServiceOrder_ClienteAbreEmRequested(t *testing.T) {
	o := newOrder(t, false)
	assert.Equal(t, entity.OrderStatusRequested, o.Status())
}

func TestNewServiceOrder_FuncionarioAbreEmReceived(t *testing.T) {
	o := newOrder(t, true)
	assert.Equal(t, entity.OrderStatusReceived, o.Status())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tabela de transições
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_TabelaCompleta(t *testing.T) {
	// Verifica toda a tabela: cada origem contra cada destino possível.
	all := []entity.OrderStatus{
		entity.OrderStatusRequested, entity.OrderStatusReceived,
		entity.OrderStatusInDiagnosis, entity.OrderStatusAwaitingApproval,
		entity.OrderStatusApproved, entity.OrderStatusScheduled,
		entity.OrderStatusInExecution, entity.OrderStatusFinished,
		entity.OrderStatusDelivered, entity.OrderStatusRejected,
		entity.OrderStatusCancelled,
	}
	for _, from := range all {
		allowed := map[entity.OrderStatus]bool{}
		for _, to := range entity.AllowedOrderTransitions(from) {
			allowed[to] = true
		}
		for _, to := range all {
			o := orderAt(from)
			err := o.UpdateStatus(to, t0.Add(time.Hour))
			if allowed[to] {
				assert.NoError(t, err, "%s -> %s deveria ser permitida", from, to)
				assert.Equal(t, to, o.Status())
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition, "%s -> %s deveria falhar", from, to)
				assert.Equal(t, from, o.Status(), "falha não pode mutar o status")
			}
		}
	}
}

func TestUpdateStatus_TerminaisAssimetricos(t *testing.T) {
	// DELIVERED ainda admite REJECTED (contestação pós-entrega).
	o := orderAt(entity.OrderStatusDelivered)
	require.NoError(t, o.UpdateStatus(entity.OrderStatusRejected, t0))

	// REJECTED ainda admite CANCELLED.
	o = orderAt(entity.OrderStatusRejected)
	require.NoError(t, o.UpdateStatus(entity.OrderStatusCancelled, t0))

	// As direções inversas não existem.
	o = orderAt(entity.OrderStatusRejected)
	assert.Error(t, o.UpdateStatus(entity.OrderStatusDelivered, t0))
	o = orderAt(entity.OrderStatusCancelled)
	assert.Error(t, o.UpdateStatus(entity.OrderStatusRejected, t0))
}

func TestUpdateStatus_CancelledEstadoMorto(t *testing.T) {
	o := orderAt(entity.OrderStatusCancelled)
	assert.Empty(t, entity.AllowedOrderTransitions(entity.OrderStatusCancelled))
	err := o.UpdateStatus(entity.OrderStatusRequested, t0)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
}

func TestUpdateStatus_DeliveredRegistraDataDeEntrega(t *testing.T) {
	o := orderAt(entity.OrderStatusFinished)
	delivered := t0.Add(48 * time.Hour)
	require.NoError(t, o.UpdateStatus(entity.OrderStatusDelivered, delivered))
	require.NotNil(t, o.DeliveryDate())
	assert.Equal(t, delivered, *o.DeliveryDate())
}

func TestUpdateStatus_ErroCarregaDestinosPermitidos(t *testing.T) {
	o := orderAt(entity.OrderStatusRequested)
	err := o.UpdateStatus(entity.OrderStatusDelivered, t0)

	var transErr *domain.InvalidStatusTransitionError
	require.ErrorAs(t, err, &transErr)
	assert.Equal(t, "REQUESTED", transErr.Current)
	assert.Equal(t, "DELIVERED", transErr.Attempted)
	assert.ElementsMatch(t, []string{"RECEIVED", "CANCELLED", "REJECTED"}, transErr.Allowed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelamento
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_MotivoObrigatorio(t *testing.T) {
	o := orderAt(entity.OrderStatusReceived)
	err := o.Cancel("   ", t0)
	assert.ErrorIs(t, err, domain.ErrCancellationReasonRequired)
	assert.Equal(t, entity.OrderStatusReceived, o.Status(), "falha não pode mutar o status")
	assert.Empty(t, o.CancellationReason())
}

func TestCancel_RegistraMotivoAtomicamente(t *testing.T) {
	o := orderAt(entity.OrderStatusInExecution)
	require.NoError(t, o.Cancel("cliente desistiu do serviço", t0))
	assert.Equal(t, entity.OrderStatusCancelled, o.Status())
	assert.Equal(t, "cliente desistiu do serviço", o.CancellationReason())
}

func TestCancel_DeTerminalCancelledFalha(t *testing.T) {
	o := orderAt(entity.OrderStatusCancelled)
	err := o.Cancel("de novo", t0)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Predicados
// ──────────────────────────────────────────────────────────────────────────────

func TestPredicados(t *testing.T) {
	assert.True(t, orderAt(entity.OrderStatusInDiagnosis).CanAddBudgetItems())
	assert.False(t, orderAt(entity.OrderStatusReceived).CanAddBudgetItems())

	assert.True(t, orderAt(entity.OrderStatusAwaitingApproval).CanBeApprovedOrRejected())
	assert.False(t, orderAt(entity.OrderStatusApproved).CanBeApprovedOrRejected())

	assert.True(t, orderAt(entity.OrderStatusDelivered).IsInFinalState())
	assert.True(t, orderAt(entity.OrderStatusCancelled).IsInFinalState())
	assert.True(t, orderAt(entity.OrderStatusRejected).IsInFinalState())
	assert.False(t, orderAt(entity.OrderStatusFinished).IsInFinalState())
}
