package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/oficinapro/oficina-api/internal/application/dto"
	"github.com/oficinapro/oficina-api/internal/application/ports"
	"github.com/oficinapro/oficina-api/internal/domain"
	"github.com/oficinapro/oficina-api/internal/domain/entity"
	"github.com/oficinapro/oficina-api/internal/domain/money"
	"github.com/oficinapro/oficina-api/internal/domain/repository"
)

// StockItemUseCase cadastro de itens de estoque e relatório de reposição.
// Movimentações de saldo não passam por aqui; são papel do ledger
// (internal/application/stock), que roda dentro de transação.
type StockItemUseCase struct {
	itemRepo repository.StockItemRepository
	clock    ports.Clock
}

// NewStockItemUseCase constrói o caso de uso.
func NewStockItemUseCase(itemRepo repository.StockItemRepository, clock ports.Clock) *StockItemUseCase {
	return &StockItemUseCase{itemRepo: itemRepo, clock: clock}
}

// Create cadastra um item; SKU duplicado falha com ErrDuplicate e preço de
// venda menor que o custo falha com ErrInvalidPriceMargin.
func (uc *StockItemUseCase) Create(ctx context.Context, in dto.CreateStockItemRequest) (*entity.StockItem, error) {
	sku := strings.ToUpper(strings.TrimSpace(in.SKU))
	existing, err := uc.itemRepo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	item, err := entity.NewStockItem(
		uuid.New().String(),
		strings.TrimSpace(in.Name),
		sku,
		in.InitialStock,
		in.MinStockLevel,
		money.FromCents(in.UnitCostCents),
		money.FromCents(in.UnitSalePriceCents),
		in.Description,
		in.Supplier,
		uc.clock.Now(),
	)
	if err != nil {
		return nil, err
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetByID carrega um item.
func (uc *StockItemUseCase) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrStockItemNotFound
	}
	return item, nil
}

// List lista itens paginados.
func (uc *StockItemUseCase) List(ctx context.Context, limit, offset int) ([]*entity.StockItem, error) {
	return uc.itemRepo.List(limit, offset)
}

// UpdatePrices atualiza custo e preço de venda revalidando a margem.
func (uc *StockItemUseCase) UpdatePrices(ctx context.Context, id string, in dto.UpdateStockItemPricesRequest) (*entity.StockItem, error) {
	item, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := item.UpdatePrices(money.FromCents(in.UnitCostCents), money.FromCents(in.UnitSalePriceCents), uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// LowStockReport lista itens com saldo abaixo do mínimo e o déficit de cada um.
func (uc *StockItemUseCase) LowStockReport(ctx context.Context) ([]dto.LowStockItemResponse, error) {
	items, err := uc.itemRepo.ListBelowMinimum()
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.LowStockItemResponse{
			ID:            item.ID,
			Name:          item.Name,
			SKU:           item.SKU,
			CurrentStock:  item.CurrentStock,
			MinStockLevel: item.MinStockLevel,
			Deficit:       item.StockDeficit(),
			Supplier:      item.Supplier,
		})
	}
	return out, nil
}

// StockItemResponse converte a entidade para o DTO da API.
func StockItemResponse(item *entity.StockItem) dto.StockItemResponse {
	return dto.StockItemResponse{
		ID:                 item.ID,
		Name:               item.Name,
		SKU:                item.SKU,
		CurrentStock:       item.CurrentStock,
		MinStockLevel:      item.MinStockLevel,
		UnitCostCents:      item.UnitCost.Cents(),
		UnitSalePriceCents: item.UnitSalePrice.Cents(),
		Description:        item.Description,
		Supplier:           item.Supplier,
		BelowMinimum:       item.IsBelowMinimumStock(),
	}
}
