package repository

import "github.com/oficinapro/oficina-api/internal/domain/entity"

// BudgetItemRepository porta de persistência das linhas de orçamento (DIP).
type BudgetItemRepository interface {
	Create(item *entity.BudgetItem) error
	ListByBudget(budgetID string) ([]*entity.BudgetItem, error)
	Delete(id string) error
}
