package entity

import (
	"time"

	"github.com/oficinapro/oficina-api/internal/domain/money"
)

// BudgetItem linha do orçamento (peça ou serviço). TotalPrice é derivado
// de UnitPrice * Quantity na criação e persiste junto com a linha.
type BudgetItem struct {
	ID          string
	BudgetID    string
	StockItemID string // vazio para mão de obra / serviço
	Description string
	Quantity    int
	UnitPrice   money.Money
	TotalPrice  money.Money
	CreatedAt   time.Time
}

// NewBudgetItem cria a linha com o total derivado.
func NewBudgetItem(id, budgetID, stockItemID, description string, quantity int, unitPrice money.Money, now time.Time) *BudgetItem {
	return &BudgetItem{
		ID:          id,
		BudgetID:    budgetID,
		StockItemID: stockItemID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  unitPrice.MulInt(quantity),
		CreatedAt:   now,
	}
}
