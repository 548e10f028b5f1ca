package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oficinapro/oficina-api/internal/application/dto"
	"github.com/oficinapro/oficina-api/internal/application/stock"
	"github.com/oficinapro/oficina-api/internal/domain"
	"github.com/oficinapro/oficina-api/internal/domain/entity"
	"github.com/oficinapro/oficina-api/internal/domain/money"
	"github.com/oficinapro/oficina-api/internal/domain/repository"
)

var t0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// ledgerStore estado em memória compartilhado pelos repositórios falsos.
type ledgerStore struct {
	items     map[string]*entity.StockItem
	movements map[string]*entity.StockMovement
}

func newLedgerStore() *ledgerStore {
	return &ledgerStore{
		items:     map[string]*entity.StockItem{},
		movements: map[string]*entity.StockMovement{},
	}
}

func (s *ledgerStore) clone() *ledgerStore {
	c := newLedgerStore()
	for id, it := range s.items {
		cp := *it
		c.items[id] = &cp
	}
	for id, m := range s.movements {
		cp := *m
		c.movements[id] = &cp
	}
	return c
}

type fakeItemRepo struct{ store *ledgerStore }

var _ repository.StockItemRepository = (*fakeItemRepo)(nil)

func (r *fakeItemRepo) Create(item *entity.StockItem) error {
	cp := *item
	r.store.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.StockItem, error) {
	it, ok := r.store.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) GetBySKU(string) (*entity.StockItem, error) { return nil, nil }

func (r *fakeItemRepo) GetForUpdate(id string) (*entity.StockItem, error) {
	return r.GetByID(id)
}

func (r *fakeItemRepo) List(int, int) ([]*entity.StockItem, error)    { return nil, nil }
func (r *fakeItemRepo) ListBelowMinimum() ([]*entity.StockItem, error) { return nil, nil }

func (r *fakeItemRepo) Update(item *entity.StockItem) error {
	cp := *item
	r.store.items[item.ID] = &cp
	return nil
}

type fakeMovementRepo struct{ store *ledgerStore }

var _ repository.StockMovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.store.movements[m.ID] = &cp
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	m, ok := r.store.movements[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMovementRepo) ListByStockItem(stockItemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.store.movements {
		if m.StockItemID != stockItemID {
			continue
		}
		if from != nil && m.MovementDate.Before(*from) {
			continue
		}
		if to != nil && m.MovementDate.After(*to) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeMovementRepo) Update(m *entity.StockMovement) error {
	cp := *m
	r.store.movements[m.ID] = &cp
	return nil
}

// fakeTxRunner emula commit/rollback: a função roda sobre uma cópia do estado
// e só no sucesso a cópia substitui o original.
type fakeTxRunner struct{ store *ledgerStore }

func (tx *fakeTxRunner) Run(_ context.Context, fn func(
	itemRepo repository.StockItemRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	working := tx.store.clone()
	err := fn(&fakeItemRepo{store: working}, &fakeMovementRepo{store: working})
	if err != nil {
		return err
	}
	*tx.store = *working
	return nil
}

func newLedger(t *testing.T, initialStock int) (*stock.LedgerUseCase, *ledgerStore) {
	t.Helper()
	store := newLedgerStore()
	item, err := entity.NewStockItem("stk-1", "Filtro de óleo", "FILTRO-OLEO",
		initialStock, 2, money.FromCents(1500), money.FromCents(3200), "", "", t0)
	require.NoError(t, err)
	store.items[item.ID] = item

	uc := stock.NewLedgerUseCase(&fakeTxRunner{store: store}, &fakeMovementRepo{store: store}, fixedClock{now: t0})
	return uc, store
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateMovement_EntradaAtualizaSaldoEGravaMovimento(t *testing.T) {
	uc, store := newLedger(t, 10)

	mov, err := uc.CreateMovement(context.Background(), dto.CreateStockMovementRequest{
		StockItemID: "stk-1", Type: "IN", Quantity: 5, Reason: "compra",
	})
	require.NoError(t, err)

	assert.Equal(t, 15, store.items["stk-1"].CurrentStock)
	require.NotNil(t, mov)
	assert.Equal(t, entity.MovementTypeIn, mov.Type)
	assert.Equal(t, 5, mov.Quantity)
	assert.Contains(t, store.movements, mov.ID, "movimentação persistida na mesma transação")
}

func TestCreateMovement_SaidaInsuficienteNaoDeixaEfeitoParcial(t *testing.T) {
	uc, store := newLedger(t, 3)

	_, err := uc.CreateMovement(context.Background(), dto.CreateStockMovementRequest{
		StockItemID: "stk-1", Type: "OUT", Quantity: 5,
	})

	var insufErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufErr)
	assert.Equal(t, 5, insufErr.Requested)
	assert.Equal(t, 3, insufErr.Available)

	assert.Equal(t, 3, store.items["stk-1"].CurrentStock, "rollback: saldo intacto")
	assert.Empty(t, store.movements, "rollback: nenhuma movimentação gravada")
}

func TestCreateMovement_AjusteGravaNivelAbsoluto(t *testing.T) {
	uc, store := newLedger(t, 40)

	_, err := uc.CreateMovement(context.Background(), dto.CreateStockMovementRequest{
		StockItemID: "stk-1", Type: "ADJUSTMENT", Quantity: 7, Reason: "inventário físico",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, store.items["stk-1"].CurrentStock)
}

func TestCreateMovement_TipoInvalidoOuItemInexistente(t *testing.T) {
	uc, _ := newLedger(t, 10)

	_, err := uc.CreateMovement(context.Background(), dto.CreateStockMovementRequest{
		StockItemID: "stk-1", Type: "TRANSFER", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateMovement(context.Background(), dto.CreateStockMovementRequest{
		StockItemID: "stk-nao-existe", Type: "IN", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrStockItemNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateMovement (emenda)
// ──────────────────────────────────────────────────────────────────────────────

func seedMovement(store *ledgerStore, typ entity.MovementType, qty int) *entity.StockMovement {
	mov := &entity.StockMovement{
		ID: "mov-1", StockItemID: "stk-1", Type: typ, Quantity: qty,
		MovementDate: t0, Reason: "original", Notes: "nota original", CreatedAt: t0,
	}
	store.movements[mov.ID] = mov
	return mov
}

func TestUpdateMovement_EmendaReaplicaAlgebricamente(t *testing.T) {
	// Saldo 12 após IN 10. Emenda IN 10 -> OUT 2: base 2, final 0.
	uc, store := newLedger(t, 12)
	seedMovement(store, entity.MovementTypeIn, 10)

	newType, newQty := "OUT", 2
	mov, err := uc.UpdateMovement(context.Background(), "mov-1", dto.UpdateStockMovementRequest{
		Type: &newType, Quantity: &newQty,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, store.items["stk-1"].CurrentStock)
	assert.Equal(t, entity.MovementTypeOut, mov.Type)
	assert.Equal(t, 2, mov.Quantity)
}

func TestUpdateMovement_SaldoFinalNegativoDesfazTudo(t *testing.T) {
	// Saldo 10 após IN 10 (base 0). Emenda para OUT 3 falha; nada muda.
	uc, store := newLedger(t, 10)
	seedMovement(store, entity.MovementTypeIn, 10)

	newType, newQty := "OUT", 3
	_, err := uc.UpdateMovement(context.Background(), "mov-1", dto.UpdateStockMovementRequest{
		Type: &newType, Quantity: &newQty,
	})

	var insufErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufErr)
	assert.Equal(t, 10, store.items["stk-1"].CurrentStock, "rollback: saldo intacto")
	assert.Equal(t, entity.MovementTypeIn, store.movements["mov-1"].Type, "rollback: movimentação intacta")
	assert.Equal(t, 10, store.movements["mov-1"].Quantity)
}

func TestUpdateMovement_CamposNilPreservamOriginal(t *testing.T) {
	uc, store := newLedger(t, 12)
	seedMovement(store, entity.MovementTypeIn, 10)

	// Só a quantidade muda; tipo, motivo e notas ficam.
	newQty := 4
	mov, err := uc.UpdateMovement(context.Background(), "mov-1", dto.UpdateStockMovementRequest{
		Quantity: &newQty,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.MovementTypeIn, mov.Type)
	assert.Equal(t, 4, mov.Quantity)
	assert.Equal(t, "original", mov.Reason)
	assert.Equal(t, "nota original", mov.Notes)
	assert.Equal(t, 6, store.items["stk-1"].CurrentStock, "12 - 10 + 4")
}

func TestUpdateMovement_AjusteOriginalSoParaAjuste(t *testing.T) {
	uc, store := newLedger(t, 42)
	seedMovement(store, entity.MovementTypeAdjustment, 42)

	newType := "IN"
	newQty := 5
	_, err := uc.UpdateMovement(context.Background(), "mov-1", dto.UpdateStockMovementRequest{
		Type: &newType, Quantity: &newQty,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStockAdjustment)
	assert.Equal(t, 42, store.items["stk-1"].CurrentStock)

	// Para outro ADJUSTMENT pode: nível final = nova quantidade.
	newType = "ADJUSTMENT"
	newQty = 9
	_, err = uc.UpdateMovement(context.Background(), "mov-1", dto.UpdateStockMovementRequest{
		Type: &newType, Quantity: &newQty,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, store.items["stk-1"].CurrentStock)
}

func TestUpdateMovement_NaoEncontrada(t *testing.T) {
	uc, _ := newLedger(t, 10)
	_, err := uc.UpdateMovement(context.Background(), "mov-fantasma", dto.UpdateStockMovementRequest{})
	assert.ErrorIs(t, err, domain.ErrStockMovementNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ListMovements
// ──────────────────────────────────────────────────────────────────────────────

func TestListMovements_FiltraPorPeriodo(t *testing.T) {
	uc, store := newLedger(t, 10)
	store.movements["m1"] = &entity.StockMovement{ID: "m1", StockItemID: "stk-1", Type: entity.MovementTypeIn, Quantity: 1, MovementDate: t0}
	store.movements["m2"] = &entity.StockMovement{ID: "m2", StockItemID: "stk-1", Type: entity.MovementTypeIn, Quantity: 1, MovementDate: t0.AddDate(0, 0, 5)}
	store.movements["m3"] = &entity.StockMovement{ID: "m3", StockItemID: "stk-2", Type: entity.MovementTypeIn, Quantity: 1, MovementDate: t0}

	from := t0.AddDate(0, 0, 1)
	got, err := uc.ListMovements(context.Background(), "stk-1", &from, nil, 50, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "m2", got[0].ID)
}
