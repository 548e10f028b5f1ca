package entity

import (
	"time"

	"github.com/oficinapro/oficina-api/internal/domain"
	"github.com/oficinapro/oficina-api/internal/domain/money"
)

// StockItem item do estoque da oficina (peças e insumos). CurrentStock é o
// saldo corrente derivado dos movimentos aplicados — mantido incrementalmente
// pelo ledger dentro de transação, nunca recalculado do histórico completo.
type StockItem struct {
	ID            string
	Name          string
	SKU           string // único
	CurrentStock  int    // nunca negativo
	MinStockLevel int
	UnitCost      money.Money
	UnitSalePrice money.Money // sempre >= UnitCost
	Description   string
	Supplier      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewStockItem cria um item validando a margem de preço e o nível mínimo.
func NewStockItem(id, name, sku string, initialStock, minStockLevel int, unitCost, unitSalePrice money.Money, description, supplier string, now time.Time) (*StockItem, error) {
	if initialStock < 0 {
		return nil, domain.ErrInvalidStockAdjustment
	}
	if minStockLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	if unitSalePrice.LessThan(unitCost) {
		return nil, domain.ErrInvalidPriceMargin
	}
	return &StockItem{
		ID:            id,
		Name:          name,
		SKU:           sku,
		CurrentStock:  initialStock,
		MinStockLevel: minStockLevel,
		UnitCost:      unitCost,
		UnitSalePrice: unitSalePrice,
		Description:   description,
		Supplier:      supplier,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// HasStock informa se o saldo cobre a quantidade pedida.
func (s *StockItem) HasStock(quantity int) bool {
	return s.CurrentStock >= quantity
}

// IsBelowMinimumStock saldo abaixo do nível mínimo configurado.
func (s *StockItem) IsBelowMinimumStock() bool {
	return s.CurrentStock < s.MinStockLevel
}

// StockDeficit quanto falta para alcançar o nível mínimo (zero se coberto).
func (s *StockItem) StockDeficit() int {
	if s.CurrentStock >= s.MinStockLevel {
		return 0
	}
	return s.MinStockLevel - s.CurrentStock
}

// UpdatePrices atualiza custo e preço de venda validando a margem.
// A checagem roda na criação e na atualização de qualquer um dos dois campos.
func (s *StockItem) UpdatePrices(unitCost, unitSalePrice money.Money, now time.Time) error {
	if unitSalePrice.LessThan(unitCost) {
		return domain.ErrInvalidPriceMargin
	}
	s.UnitCost = unitCost
	s.UnitSalePrice = unitSalePrice
	s.UpdatedAt = now
	return nil
}

// SetStockLevel grava um novo saldo já validado pelo ledger.
// Mutação direta para valor negativo é vedada como invariante geral.
func (s *StockItem) SetStockLevel(level int, now time.Time) error {
	if level < 0 {
		return domain.ErrInvalidStockAdjustment
	}
	s.CurrentStock = level
	s.UpdatedAt = now
	return nil
}
