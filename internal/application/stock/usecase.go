package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/oficinapro/oficina-api/internal/application/dto"
	"github.com/oficinapro/oficina-api/internal/application/ports"
	"github.com/oficinapro/oficina-api/internal/domain"
	"github.com/oficinapro/oficina-api/internal/domain/entity"
	"github.com/oficinapro/oficina-api/internal/domain/repository"
)

// LedgerUseCase motor transacional do estoque: aplica e emenda movimentações
// (IN/OUT/ADJUSTMENT) mantendo o saldo corrente de cada item, com bloqueio de
// linha (SELECT FOR UPDATE) e Commit/Rollback pela TxRunner. O saldo nunca
// fica negativo; falha em qualquer passo não deixa efeito parcial visível.
type LedgerUseCase struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository // leituras fora de transação
	clock    ports.Clock
}

// NewLedgerUseCase constrói o caso de uso.
func NewLedgerUseCase(txRunner TxRunner, movRepo repository.StockMovementRepository, clock ports.Clock) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, movRepo: movRepo, clock: clock}
}

// CreateMovement registra uma movimentação dentro de uma transação:
// carrega o item com bloqueio de linha, calcula o novo saldo conforme o tipo,
// persiste saldo e movimentação juntos e devolve a movimentação criada.
func (uc *LedgerUseCase) CreateMovement(ctx context.Context, in dto.CreateStockMovementRequest) (*entity.StockMovement, error) {
	typ := entity.MovementType(in.Type)
	if !entity.ValidMovementType(typ) || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := uc.clock.Now()
	var created *entity.StockMovement

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		movRepo repository.StockMovementRepository,
	) error {
		// Bloqueia a linha do item pela duração da transação; movimentações
		// concorrentes no mesmo item serializam aqui (lost update).
		item, err := itemRepo.GetForUpdate(in.StockItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrStockItemNotFound
		}

		next, err := entity.NextStockLevel(item.ID, item.CurrentStock, typ, in.Quantity)
		if err != nil {
			return err
		}
		if err := item.SetStockLevel(next, now); err != nil {
			return err
		}
		if err := itemRepo.Update(item); err != nil {
			return err
		}

		mov := &entity.StockMovement{
			ID:           uuid.New().String(),
			StockItemID:  item.ID,
			Type:         typ,
			Quantity:     in.Quantity,
			MovementDate: now,
			Reason:       in.Reason,
			Notes:        in.Notes,
			CreatedAt:    now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateMovement emenda uma movimentação existente em uma transação:
// desfaz algebricamente o efeito original e aplica o novo de uma só vez —
// só o saldo final é validado e persistido, nunca um estado intermediário.
// Campos nil no patch preservam os valores originais.
func (uc *LedgerUseCase) UpdateMovement(ctx context.Context, id string, patch dto.UpdateStockMovementRequest) (*entity.StockMovement, error) {
	now := uc.clock.Now()
	var amended *entity.StockMovement

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		movRepo repository.StockMovementRepository,
	) error {
		mov, err := movRepo.GetByID(id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrStockMovementNotFound
		}

		item, err := itemRepo.GetForUpdate(mov.StockItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrStockItemNotFound
		}

		newType := mov.Type
		if patch.Type != nil {
			newType = entity.MovementType(*patch.Type)
			if !entity.ValidMovementType(newType) {
				return domain.ErrInvalidInput
			}
		}
		newQty := mov.Quantity
		if patch.Quantity != nil {
			newQty = *patch.Quantity
		}

		final, err := entity.AmendedStockLevel(item.ID, item.CurrentStock, mov.Type, mov.Quantity, newType, newQty)
		if err != nil {
			return err
		}
		if err := item.SetStockLevel(final, now); err != nil {
			return err
		}
		if err := itemRepo.Update(item); err != nil {
			return err
		}

		mov.Type = newType
		mov.Quantity = newQty
		if patch.Reason != nil {
			mov.Reason = *patch.Reason
		}
		if patch.Notes != nil {
			mov.Notes = *patch.Notes
		}
		mov.MovementDate = now
		if err := movRepo.Update(mov); err != nil {
			return err
		}
		amended = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return amended, nil
}

// ListMovements lista o histórico de movimentações de um item, com filtro
// opcional de período.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, stockItemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movRepo.ListByStockItem(stockItemID, from, to, limit, offset)
}

// MovementResponse converte a entidade para o DTO da API.
func MovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:           m.ID,
		StockItemID:  m.StockItemID,
		Type:         string(m.Type),
		Quantity:     m.Quantity,
		MovementDate: m.MovementDate,
		Reason:       m.Reason,
		Notes:        m.Notes,
	}
}
