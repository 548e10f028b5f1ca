package budget_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oficinapro/oficina-api/internal/application/budget"
	"github.com/oficinapro/oficina-api/internal/application/dto"
	"github.com/oficinapro/oficina-api/internal/domain"
	"github.com/oficinapro/oficina-api/internal/domain/authz"
	"github.com/oficinapro/oficina-api/internal/domain/entity"
	"github.com/oficinapro/oficina-api/internal/domain/money"
	"github.com/oficinapro/oficina-api/internal/domain/repository"
)

var t0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

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

type fakeBudgetRepo struct {
	budgets map[string]*entity.Budget
}

var _ repository.BudgetRepository = (*fakeBudgetRepo)(nil)

func (r *fakeBudgetRepo) Create(b *entity.Budget) error { r.budgets[b.ID] = b; return nil }
func (r *fakeBudgetRepo) GetByID(id string) (*entity.Budget, error) {
	return r.budgets[id], nil
}
func (r *fakeBudgetRepo) GetByServiceOrder(serviceOrderID string) ([]*entity.Budget, error) {
	var out []*entity.Budget
	for _, b := range r.budgets {
		if b.ServiceOrderID == serviceOrderID {
			out = append(out, b)
		}
	}
	return out, nil
}
func (r *fakeBudgetRepo) Update(b *entity.Budget) error { r.budgets[b.ID] = b; return nil }
func (r *fakeBudgetRepo) ListExpiredCandidates(now time.Time) ([]*entity.Budget, error) {
	decidable := map[entity.BudgetStatus]bool{
		entity.BudgetStatusGenerated: true,
		entity.BudgetStatusSent:      true,
		entity.BudgetStatusReceived:  true,
	}
	var out []*entity.Budget
	for _, b := range r.budgets {
		if decidable[b.Status()] && b.IsExpired(now) {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeBudgetItemRepo struct {
	items map[string][]*entity.BudgetItem // por budgetID
}

var _ repository.BudgetItemRepository = (*fakeBudgetItemRepo)(nil)

func (r *fakeBudgetItemRepo) Create(it *entity.BudgetItem) error {
	r.items[it.BudgetID] = append(r.items[it.BudgetID], it)
	return nil
}
func (r *fakeBudgetItemRepo) ListByBudget(budgetID string) ([]*entity.BudgetItem, error) {
	return r.items[budgetID], nil
}
func (r *fakeBudgetItemRepo) Delete(string) error { return nil }

type fakeOrderRepo struct {
	orders map[string]*entity.ServiceOrder
}

var _ repository.ServiceOrderRepository = (*fakeOrderRepo)(nil)

func (r *fakeOrderRepo) Create(o *entity.ServiceOrder) error { r.orders[o.ID] = o; return nil }
func (r *fakeOrderRepo) GetByID(id string) (*entity.ServiceOrder, error) {
	return r.orders[id], nil
}
func (r *fakeOrderRepo) ListByClient(string, int, int) ([]*entity.ServiceOrder, error) {
	return nil, nil
}
func (r *fakeOrderRepo) ListByStatus(entity.OrderStatus, int, int) ([]*entity.ServiceOrder, error) {
	return nil, nil
}
func (r *fakeOrderRepo) Update(o *entity.ServiceOrder) error { r.orders[o.ID] = o; return nil }

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

var _ repository.ClientRepository = (*fakeClientRepo)(nil)

func (r *fakeClientRepo) Create(c *entity.Client) error              { r.clients[c.ID] = c; return nil }
func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error)  { return r.clients[id], nil }
func (r *fakeClientRepo) GetByDocument(string) (*entity.Client, error) { return nil, nil }
func (r *fakeClientRepo) List(int, int) ([]*entity.Client, error)    { return nil, nil }
func (r *fakeClientRepo) Update(c *entity.Client) error              { r.clients[c.ID] = c; return nil }
func (r *fakeClientRepo) Delete(id string) error                     { delete(r.clients, id); return nil }

type stubPDF struct{ out []byte }

func (p stubPDF) GenerateBudgetPDF(context.Context, *entity.Budget, *entity.Client, []*entity.BudgetItem) ([]byte, error) {
	return p.out, nil
}

type budgetFixture struct {
	uc      *budget.UseCase
	budgets *fakeBudgetRepo
	items   *fakeBudgetItemRepo
	orders  *fakeOrderRepo
	emitter *recordingEmitter
	clock   *fixedClock
}

func newBudgetFixture(t *testing.T) *budgetFixture {
	t.Helper()
	budgets := &fakeBudgetRepo{budgets: map[string]*entity.Budget{}}
	items := &fakeBudgetItemRepo{items: map[string][]*entity.BudgetItem{}}
	orders := &fakeOrderRepo{orders: map[string]*entity.ServiceOrder{}}
	clients := &fakeClientRepo{clients: map[string]*entity.Client{
		"cli-1": {ID: "cli-1", Name: "João da Silva", Email: "joao@example.com"},
	}}
	emitter := &recordingEmitter{}
	clock := &fixedClock{now: t0}
	return &budgetFixture{
		uc:      budget.NewUseCase(budgets, items, orders, clients, clock, emitter, stubPDF{out: []byte("%PDF-1.7")}),
		budgets: budgets,
		items:   items,
		orders:  orders,
		emitter: emitter,
		clock:   clock,
	}
}

func (f *budgetFixture) seedOrder(status entity.OrderStatus) {
	f.orders.orders["ord-1"] = entity.RestoreServiceOrder("ord-1", "cli-1", "veh-1", status, t0, nil, "", "", t0, t0)
}

func (f *budgetFixture) seedBudget(status entity.BudgetStatus, validityDays int) *entity.Budget {
	b := entity.RestoreBudget("bud-1", "ord-1", "cli-1", status,
		money.FromCents(10900), validityDays, t0, nil, nil, nil, "", "", t0, t0)
	f.budgets.budgets[b.ID] = b
	return b
}

// ──────────────────────────────────────────────────────────────────────────────
// Generate
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerate_OrdemEmDiagnostico(t *testing.T) {
	f := newBudgetFixture(t)
	f.seedOrder(entity.OrderStatusInDiagnosis)

	b, err := f.uc.Generate(context.Background(), dto.GenerateBudgetRequest{
		ServiceOrderID: "ord-1",
		ValidityDays:   7,
		Items: []dto.BudgetItemInput{
			{Description: "Troca de óleo", Quantity: 1, UnitPriceCents: 4500},
			{Description: "Filtro de óleo", Quantity: 2, UnitPriceCents: 3200},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.BudgetStatusGenerated, b.Status())
	assert.Equal(t, int64(10900), b.TotalAmount().Cents())
	assert.Len(t, f.items.items[b.ID], 2, "linhas persistidas junto com o orçamento")
}

func TestGenerate_ForaDoDiagnosticoFalha(t *testing.T) {
	f := newBudgetFixture(t)
	f.seedOrder(entity.OrderStatusInExecution)

	_, err := f.uc.Generate(context.Background(), dto.GenerateBudgetRequest{
		ServiceOrderID: "ord-1", ValidityDays: 7,
		Items: []dto.BudgetItemInput{{Description: "X", Quantity: 1, UnitPriceCents: 100}},
	})

	var statusErr *domain.InvalidBudgetStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "generate", statusErr.Operation)
	assert.Empty(t, f.budgets.budgets, "nada persistido")
}

func TestGenerate_OrdemInexistente(t *testing.T) {
	f := newBudgetFixture(t)
	_, err := f.uc.Generate(context.Background(), dto.GenerateBudgetRequest{
		ServiceOrderID: "ord-fantasma", ValidityDays: 7,
		Items: []dto.BudgetItemInput{{Description: "X", Quantity: 1, UnitPriceCents: 100}},
	})
	assert.ErrorIs(t, err, domain.ErrServiceOrderNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Send / Approve / Reject — autorização e eventos
// ──────────────────────────────────────────────────────────────────────────────

func TestSend_FuncionarioEmiteBudgetSent(t *testing.T) {
	f := newBudgetFixture(t)
	f.seedBudget(entity.BudgetStatusGenerated, 7)

	b, err := f.uc.Send(context.Background(), "bud-1", authz.RoleEmployee)
	require.NoError(t, err)
	assert.Equal(t, entity.BudgetStatusSent, b.Status())

	require.Len(t, f.emitter.events, 1)
	evt := f.emitter.events[0]
	assert.Equal(t, budget.EventBudgetSent, evt.Type)
	assert.Equal(t, "bud-1", evt.AggregateID)
	assert.Equal(t, "ord-1", evt.Payload["service_order_id"])
	assert.Equal(t, "cli-1", evt.Payload["client_id"])
	assert.Equal(t, int64(10900), evt.Payload["total_amount_cents"])
	assert.Equal(t, "SENT", evt.Payload["status"])
}

func TestSend_ClienteNaoEnviaNemMuta(t *testing.T) {
	f := newBudgetFixture(t)
	f.seedBudget(entity.BudgetStatusGenerated, 7)

	_, err := f.uc.Send(context.Background(), "bud-1", authz.RoleClient)

	var authErr *domain.UnauthorizedStatusChangeError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "CLIENT", authErr.Role)
	assert.Equal(t, entity.BudgetStatusGenerated, f.budgets.budgets["bud-1"].Status(), "negação não muta")
	assert.Empty(t, f.emitter.events, "negação não emite evento")
}

func TestApprove_ClienteEmiteComPapelNoPayload(t *testing.T) {
	f := newBudgetFixture(t)
	f.seedBudget(entity.BudgetStatusSent, 7)
	f.clock.now = t0.AddDate(0, 0, 3)

	b, err := f.uc.Approve(context.Background(), "bud-1", authz.RoleClient)
	require.NoError(t, err)
	assert.Equal(t, entity.BudgetStatusApproved, b.Status())

	require.Len(t, f.emitter.events, 1)
	assert.Equal(t, budget.EventBudgetApproved, f.emitter.events[0].Type)
	assert.Equal(t, "CLIENT", f.emitter.events[0].Payload["role"])
}

func TestApprove_ExpiradoNaoEmite(t *testing.T) {
	f := newBudgetFixture(t)
	f.seedBudget(entity.BudgetStatusSent, 7)
	f.clock.now = t0.AddDate(0, 0, 8)

	_, err := f.uc.Approve(context.Background(), "bud-1", authz.RoleClient)
	assert.ErrorIs(t, err, domain.ErrBudgetExpired)
	assert.Equal(t, entity.BudgetStatusSent, f.budgets.budgets["bud-1"].Status())
	assert.Empty(t, f.emitter.events)
}

func TestReject_EmiteBudgetRejected(t *testing.T) {
	f := newBudgetFixture(t)
	f.seedBudget(entity.BudgetStatusSent, 7)

	b, err := f.uc.Reject(context.Background(), "bud-1", authz.RoleEmployee)
	require.NoError(t, err)
	assert.Equal(t, entity.BudgetStatusRejected, b.Status())
	require.Len(t, f.emitter.events, 1)
	assert.Equal(t, budget.EventBudgetRejected, f.emitter.events[0].Type)
}

// ──────────────────────────────────────────────────────────────────────────────
// Varredura de expiração
// ──────────────────────────────────────────────────────────────────────────────

func TestExpireOverdue_MarcaSoDecidiveisVencidos(t *testing.T) {
	f := newBudgetFixture(t)
	// Vencido e decidível: expira.
	f.budgets.budgets["bud-velho"] = entity.RestoreBudget("bud-velho", "ord-1", "cli-1",
		entity.BudgetStatusSent, money.FromCents(100), 7, t0, nil, nil, nil, "", "", t0, t0)
	// Dentro da janela: fica.
	f.budgets.budgets["bud-novo"] = entity.RestoreBudget("bud-novo", "ord-1", "cli-1",
		entity.BudgetStatusSent, money.FromCents(100), 30, t0, nil, nil, nil, "", "", t0, t0)
	// Vencido mas já decidido: fica.
	f.budgets.budgets["bud-aprovado"] = entity.RestoreBudget("bud-aprovado", "ord-1", "cli-1",
		entity.BudgetStatusApproved, money.FromCents(100), 7, t0, nil, nil, nil, "", "", t0, t0)

	f.clock.now = t0.AddDate(0, 0, 10)
	n, err := f.uc.ExpireOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t, entity.BudgetStatusExpired, f.budgets.budgets["bud-velho"].Status())
	assert.Equal(t, entity.BudgetStatusSent, f.budgets.budgets["bud-novo"].Status())
	assert.Equal(t, entity.BudgetStatusApproved, f.budgets.budgets["bud-aprovado"].Status())

	require.Len(t, f.emitter.events, 1)
	assert.Equal(t, budget.EventBudgetExpired, f.emitter.events[0].Type)
	assert.Equal(t, "bud-velho", f.emitter.events[0].AggregateID)
}

func TestExpireOverdue_SemCandidatos(t *testing.T) {
	f := newBudgetFixture(t)
	n, err := f.uc.ExpireOverdue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, f.emitter.events)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateFields / RecalculateTotal / PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateFields_CamposNilPreservamOriginal(t *testing.T) {
	f := newBudgetFixture(t)
	b := f.seedBudget(entity.BudgetStatusGenerated, 7)
	b.UpdateNotes("observação original", t0)

	method := "whatsapp"
	got, err := f.uc.UpdateFields(context.Background(), "bud-1", dto.UpdateBudgetRequest{
		DeliveryMethod: &method,
	})
	require.NoError(t, err)
	assert.Equal(t, "whatsapp", got.DeliveryMethod())
	assert.Equal(t, 7, got.ValidityDays(), "nil preserva")
	assert.Equal(t, "observação original", got.Notes(), "nil preserva")
}

func TestRecalculateTotal_SomaDasLinhasPersistidas(t *testing.T) {
	f := newBudgetFixture(t)
	f.seedBudget(entity.BudgetStatusGenerated, 7)
	f.items.items["bud-1"] = []*entity.BudgetItem{
		entity.NewBudgetItem("i1", "bud-1", "", "Troca de óleo", 1, money.FromCents(4500), t0),
		entity.NewBudgetItem("i2", "bud-1", "", "Filtro", 3, money.FromCents(1000), t0),
	}

	b, err := f.uc.RecalculateTotal(context.Background(), "bud-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7500), b.TotalAmount().Cents())
}

func TestGeneratePDF_DelegaAoGerador(t *testing.T) {
	f := newBudgetFixture(t)
	f.seedBudget(entity.BudgetStatusSent, 7)

	out, err := f.uc.GeneratePDF(context.Background(), "bud-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7"), out)
}

func TestGetByID_NaoEncontrado(t *testing.T) {
	f := newBudgetFixture(t)
	_, err := f.uc.GetByID(context.Background(), "bud-fantasma")
	assert.ErrorIs(t, err, domain.ErrBudgetNotFound)
}
