package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/oficinapro/oficina-api/internal/application/dto"
	"github.com/oficinapro/oficina-api/internal/application/ports"
	"github.com/oficinapro/oficina-api/internal/domain"
	"github.com/oficinapro/oficina-api/internal/domain/authz"
	"github.com/oficinapro/oficina-api/internal/domain/entity"
	"github.com/oficinapro/oficina-api/internal/domain/repository"
)

// Eventos emitidos após transições de ordem.
const (
	EventOrderStatusChanged = "service_order.status_changed"
)

// UseCase ciclo de vida da ordem de serviço. A política de autorização é
// avaliada antes da transição; negação falha sem mutar o agregado.
// Não há bloqueio de linha aqui: duas transições concorrentes na mesma ordem
// resolvem por last-writer-wins (lacuna conhecida, ver DESIGN.md).
type UseCase struct {
	orderRepo   repository.ServiceOrderRepository
	clientRepo  repository.ClientRepository
	vehicleRepo repository.VehicleRepository
	clock       ports.Clock
	emitter     ports.EventEmitter
}

// NewUseCase constrói o caso de uso.
func NewUseCase(
	orderRepo repository.ServiceOrderRepository,
	clientRepo repository.ClientRepository,
	vehicleRepo repository.VehicleRepository,
	clock ports.Clock,
	emitter ports.EventEmitter,
) *UseCase {
	return &UseCase{
		orderRepo:   orderRepo,
		clientRepo:  clientRepo,
		vehicleRepo: vehicleRepo,
		clock:       clock,
		emitter:     emitter,
	}
}

// Open abre uma ordem: REQUESTED quando o chamador é CLIENT, RECEIVED quando
// é EMPLOYEE ou ADMIN. Valida que cliente e veículo existem e se pertencem.
func (uc *UseCase) Open(ctx context.Context, in dto.CreateServiceOrderRequest, role authz.Role) (*entity.ServiceOrder, error) {
	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrClientNotFound
	}
	vehicle, err := uc.vehicleRepo.GetByID(in.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, domain.ErrVehicleNotFound
	}
	if vehicle.ClientID != client.ID {
		return nil, domain.ErrForbidden
	}

	openedByEmployee := role == authz.RoleEmployee || role == authz.RoleAdmin
	o := entity.NewServiceOrder(uuid.New().String(), client.ID, vehicle.ID, in.Notes, openedByEmployee, uc.clock.Now())
	if err := uc.orderRepo.Create(o); err != nil {
		return nil, err
	}
	return o, nil
}

// GetByID carrega uma ordem.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.ServiceOrder, error) {
	o, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrServiceOrderNotFound
	}
	return o, nil
}

// ListByClient lista ordens de um cliente.
func (uc *UseCase) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*entity.ServiceOrder, error) {
	return uc.orderRepo.ListByClient(clientID, limit, offset)
}

// ListByStatus lista ordens em um status.
func (uc *UseCase) ListByStatus(ctx context.Context, status entity.OrderStatus, limit, offset int) ([]*entity.ServiceOrder, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	return uc.orderRepo.ListByStatus(status, limit, offset)
}

// UpdateStatus valida papel e tabela de transições e aplica o novo status.
// A checagem de autorização vem primeiro e nunca muta o agregado.
func (uc *UseCase) UpdateStatus(ctx context.Context, orderID string, target entity.OrderStatus, role authz.Role) (*entity.ServiceOrder, error) {
	if !entity.ValidOrderStatus(target) {
		return nil, domain.ErrInvalidInput
	}
	o, err := uc.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !authz.CanChangeOrderStatus(o.Status(), target, role) {
		return nil, &domain.UnauthorizedStatusChangeError{
			EntityID: o.ID,
			Current:  string(o.Status()),
			Target:   string(target),
			Role:     string(role),
		}
	}
	previous := o.Status()
	if err := o.UpdateStatus(target, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.orderRepo.Update(o); err != nil {
		return nil, err
	}
	uc.emitter.Emit(EventOrderStatusChanged, o.ID, map[string]any{
		"client_id": o.ClientID,
		"from":      string(previous),
		"to":        string(target),
	})
	return o, nil
}

// Cancel é UpdateStatus(CANCELLED) com motivo obrigatório registrado
// atomicamente. Cancelamento é exclusivo do ADMIN.
func (uc *UseCase) Cancel(ctx context.Context, orderID, reason string, role authz.Role) (*entity.ServiceOrder, error) {
	o, err := uc.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !authz.CanChangeOrderStatus(o.Status(), entity.OrderStatusCancelled, role) {
		return nil, &domain.UnauthorizedStatusChangeError{
			EntityID: o.ID,
			Current:  string(o.Status()),
			Target:   string(entity.OrderStatusCancelled),
			Role:     string(role),
		}
	}
	previous := o.Status()
	if err := o.Cancel(reason, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.orderRepo.Update(o); err != nil {
		return nil, err
	}
	uc.emitter.Emit(EventOrderStatusChanged, o.ID, map[string]any{
		"client_id": o.ClientID,
		"from":      string(previous),
		"to":        string(entity.OrderStatusCancelled),
		"reason":    reason,
	})
	return o, nil
}

// Response converte a entidade para o DTO da API.
func Response(o *entity.ServiceOrder) dto.ServiceOrderResponse {
	return dto.ServiceOrderResponse{
		ID:                 o.ID,
		Status:             string(o.Status()),
		ClientID:           o.ClientID,
		VehicleID:          o.VehicleID,
		RequestDate:        o.RequestDate,
		DeliveryDate:       o.DeliveryDate(),
		CancellationReason: o.CancellationReason(),
		Notes:              o.Notes,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt(),
	}
}
