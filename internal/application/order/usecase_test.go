package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oficinapro/oficina-api/internal/application/dto"
	"github.com/oficinapro/oficina-api/internal/application/order"
	"github.com/oficinapro/oficina-api/internal/domain"
	"github.com/oficinapro/oficina-api/internal/domain/authz"
	"github.com/oficinapro/oficina-api/internal/domain/entity"
	"github.com/oficinapro/oficina-api/internal/domain/repository"
)

var t0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// recordingEmitter captura eventos emitidos para inspeção nos testes.
type recordingEmitter struct {
	events []emitted
}

type emitted struct {
	Type        string
	AggregateID string
	Payload     map[string]any
}

func (e *recordingEmitter) Emit(eventType, aggregateID string, payload map[string]any) {
	e.events = append(e.events, emitted{eventType, aggregateID, payload})
}

type fakeOrderRepo struct {
	orders map[string]*entity.ServiceOrder
}

var _ repository.ServiceOrderRepository = (*fakeOrderRepo)(nil)

func (r *fakeOrderRepo) Create(o *entity.ServiceOrder) error {
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.ServiceOrder, error) {
	return r.orders[id], nil
}

func (r *fakeOrderRepo) ListByClient(clientID string, limit, offset int) ([]*entity.ServiceOrder, error) {
	var out []*entity.ServiceOrder
	for _, o := range r.orders {
		if o.ClientID == clientID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListByStatus(status entity.OrderStatus, limit, offset int) ([]*entity.ServiceOrder, error) {
	var out []*entity.ServiceOrder
	for _, o := range r.orders {
		if o.Status() == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Update(o *entity.ServiceOrder) error {
	r.orders[o.ID] = o
	return nil
}

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

var _ repository.ClientRepository = (*fakeClientRepo)(nil)

func (r *fakeClientRepo) Create(c *entity.Client) error { r.clients[c.ID] = c; return nil }
func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	return r.clients[id], nil
}
func (r *fakeClientRepo) GetByDocument(string) (*entity.Client, error) { return nil, nil }
func (r *fakeClientRepo) List(int, int) ([]*entity.Client, error)      { return nil, nil }
func (r *fakeClientRepo) Update(c *entity.Client) error                { r.clients[c.ID] = c; return nil }
func (r *fakeClientRepo) Delete(id string) error                       { delete(r.clients, id); return nil }

type fakeVehicleRepo struct {
	vehicles map[string]*entity.Vehicle
}

var _ repository.VehicleRepository = (*fakeVehicleRepo)(nil)

func (r *fakeVehicleRepo) Create(v *entity.Vehicle) error { r.vehicles[v.ID] = v; return nil }
func (r *fakeVehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	return r.vehicles[id], nil
}
func (r *fakeVehicleRepo) GetByPlate(string) (*entity.Vehicle, error)             { return nil, nil }
func (r *fakeVehicleRepo) ListByClient(string, int, int) ([]*entity.Vehicle, error) { return nil, nil }
func (r *fakeVehicleRepo) Update(v *entity.Vehicle) error                         { r.vehicles[v.ID] = v; return nil }
func (r *fakeVehicleRepo) Delete(id string) error                                 { delete(r.vehicles, id); return nil }

type orderFixture struct {
	uc      *order.UseCase
	orders  *fakeOrderRepo
	emitter *recordingEmitter
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	orders := &fakeOrderRepo{orders: map[string]*entity.ServiceOrder{}}
	clients := &fakeClientRepo{clients: map[string]*entity.Client{
		"cli-1": {ID: "cli-1", Name: "João da Silva", Document: "52998224725", Email: "joao@example.com"},
	}}
	vehicles := &fakeVehicleRepo{vehicles: map[string]*entity.Vehicle{
		"veh-1": {ID: "veh-1", ClientID: "cli-1", LicensePlate: "ABC1D23", Brand: "VW", Model: "Gol", Year: 2019},
		"veh-2": {ID: "veh-2", ClientID: "cli-outro", LicensePlate: "XYZ9A87", Brand: "Fiat", Model: "Uno", Year: 2015},
	}}
	emitter := &recordingEmitter{}
	return &orderFixture{
		uc:      order.NewUseCase(orders, clients, vehicles, fixedClock{now: t0}, emitter),
		orders:  orders,
		emitter: emitter,
	}
}

func (f *orderFixture) seedOrder(status entity.OrderStatus) *entity.ServiceOrder {
	o := entity.RestoreServiceOrder("ord-1", "cli-1", "veh-1", status, t0, nil, "", "", t0, t0)
	f.orders.orders[o.ID] = o
	return o
}

// ──────────────────────────────────────────────────────────────────────────────
// Open
// ──────────────────────────────────────────────────────────────────────────────

func TestOpen_StatusInicialDependeDoPapel(t *testing.T) {
	req := dto.CreateServiceOrderRequest{ClientID: "cli-1", VehicleID: "veh-1", Notes: "barulho no freio"}

	f := newOrderFixture(t)
	o, err := f.uc.Open(context.Background(), req, authz.RoleClient)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusRequested, o.Status())

	o, err = f.uc.Open(context.Background(), req, authz.RoleEmployee)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusReceived, o.Status())

	o, err = f.uc.Open(context.Background(), req, authz.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusReceived, o.Status())
}

func TestOpen_ClienteOuVeiculoInexistente(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.uc.Open(context.Background(), dto.CreateServiceOrderRequest{
		ClientID: "cli-fantasma", VehicleID: "veh-1",
	}, authz.RoleClient)
	assert.ErrorIs(t, err, domain.ErrClientNotFound)

	_, err = f.uc.Open(context.Background(), dto.CreateServiceOrderRequest{
		ClientID: "cli-1", VehicleID: "veh-fantasma",
	}, authz.RoleClient)
	assert.ErrorIs(t, err, domain.ErrVehicleNotFound)
}

func TestOpen_VeiculoDeOutroClienteFalha(t *testing.T) {
	f := newOrderFixture(t)
	_, err := f.uc.Open(context.Background(), dto.CreateServiceOrderRequest{
		ClientID: "cli-1", VehicleID: "veh-2",
	}, authz.RoleClient)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_TransicaoValidaEmiteEvento(t *testing.T) {
	f := newOrderFixture(t)
	f.seedOrder(entity.OrderStatusRequested)

	o, err := f.uc.UpdateStatus(context.Background(), "ord-1", entity.OrderStatusReceived, authz.RoleEmployee)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusReceived, o.Status())

	require.Len(t, f.emitter.events, 1)
	evt := f.emitter.events[0]
	assert.Equal(t, order.EventOrderStatusChanged, evt.Type)
	assert.Equal(t, "ord-1", evt.AggregateID)
	assert.Equal(t, "REQUESTED", evt.Payload["from"])
	assert.Equal(t, "RECEIVED", evt.Payload["to"])
	assert.Equal(t, "cli-1", evt.Payload["client_id"])
}

func TestUpdateStatus_PapelSemPermissaoNaoMutaNemEmite(t *testing.T) {
	f := newOrderFixture(t)
	f.seedOrder(entity.OrderStatusReceived)

	// Diagnóstico é etapa operacional: só EMPLOYEE.
	_, err := f.uc.UpdateStatus(context.Background(), "ord-1", entity.OrderStatusInDiagnosis, authz.RoleClient)

	var authErr *domain.UnauthorizedStatusChangeError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "CLIENT", authErr.Role)
	assert.Equal(t, "IN_DIAGNOSIS", authErr.Target)

	assert.Equal(t, entity.OrderStatusReceived, f.orders.orders["ord-1"].Status(), "negação não muta")
	assert.Empty(t, f.emitter.events, "negação não emite evento")
}

func TestUpdateStatus_TransicaoInvalidaNaoEmite(t *testing.T) {
	f := newOrderFixture(t)
	f.seedOrder(entity.OrderStatusRequested)

	_, err := f.uc.UpdateStatus(context.Background(), "ord-1", entity.OrderStatusDelivered, authz.RoleEmployee)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)
	assert.Empty(t, f.emitter.events)
}

func TestUpdateStatus_StatusDesconhecido(t *testing.T) {
	f := newOrderFixture(t)
	f.seedOrder(entity.OrderStatusRequested)

	_, err := f.uc.UpdateStatus(context.Background(), "ord-1", entity.OrderStatus("EM_BANHO_MARIA"), authz.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_OrdemInexistente(t *testing.T) {
	f := newOrderFixture(t)
	_, err := f.uc.UpdateStatus(context.Background(), "ord-fantasma", entity.OrderStatusReceived, authz.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrServiceOrderNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancel
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_SomenteAdmin(t *testing.T) {
	for _, role := range []authz.Role{authz.RoleEmployee, authz.RoleClient} {
		f := newOrderFixture(t)
		f.seedOrder(entity.OrderStatusReceived)

		_, err := f.uc.Cancel(context.Background(), "ord-1", "cliente desistiu", role)
		var authErr *domain.UnauthorizedStatusChangeError
		require.ErrorAs(t, err, &authErr, "papel %s", role)
		assert.Equal(t, entity.OrderStatusReceived, f.orders.orders["ord-1"].Status())
	}
}

func TestCancel_AdminComMotivoEmiteEvento(t *testing.T) {
	f := newOrderFixture(t)
	f.seedOrder(entity.OrderStatusInExecution)

	o, err := f.uc.Cancel(context.Background(), "ord-1", "peça indisponível", authz.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, o.Status())
	assert.Equal(t, "peça indisponível", o.CancellationReason())

	require.Len(t, f.emitter.events, 1)
	assert.Equal(t, "peça indisponível", f.emitter.events[0].Payload["reason"])
	assert.Equal(t, "CANCELLED", f.emitter.events[0].Payload["to"])
}

func TestCancel_SemMotivoFalhaSemEmitir(t *testing.T) {
	f := newOrderFixture(t)
	f.seedOrder(entity.OrderStatusReceived)

	_, err := f.uc.Cancel(context.Background(), "ord-1", "  ", authz.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrCancellationReasonRequired)
	assert.Equal(t, entity.OrderStatusReceived, f.orders.orders["ord-1"].Status())
	assert.Empty(t, f.emitter.events)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listagens
// ──────────────────────────────────────────────────────────────────────────────

func TestListByStatus_StatusDesconhecido(t *testing.T) {
	f := newOrderFixture(t)
	_, err := f.uc.ListByStatus(context.Background(), entity.OrderStatus("QUALQUER"), 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
