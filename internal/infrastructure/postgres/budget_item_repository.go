package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/oficinapro/oficina-api/internal/domain/entity"
	"github.com/oficinapro/oficina-api/internal/domain/money"
	"github.com/oficinapro/oficina-api/internal/domain/repository"
)

var _ repository.BudgetItemRepository = (*BudgetItemRepo)(nil)

// BudgetItemRepo implementação sobre PostgreSQL (usável com pool ou tx).
type BudgetItemRepo struct {
	q Querier
}

// NewBudgetItemRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewBudgetItemRepository(q Querier) *BudgetItemRepo {
	return &BudgetItemRepo{q: q}
}

// Create persiste uma linha de orçamento. stock_item_id vazio vira NULL
// (serviços de mão de obra não referenciam estoque).
func (r *BudgetItemRepo) Create(item *entity.BudgetItem) error {
	stockItemID := (*string)(nil)
	if item.StockItemID != "" {
		stockItemID = &item.StockItemID
	}
	query := `
		INSERT INTO budget_items (id, budget_id, stock_item_id, description, quantity, unit_price, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.BudgetID, stockItemID, item.Description,
		item.Quantity, item.UnitPrice.Decimal(), item.TotalPrice.Decimal(), item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert budget item: %w", err)
	}
	return nil
}

// ListByBudget lista as linhas de um orçamento na ordem de criação.
func (r *BudgetItemRepo) ListByBudget(budgetID string) ([]*entity.BudgetItem, error) {
	query := `
		SELECT id, budget_id, stock_item_id, description, quantity, unit_price, total_price, created_at
		FROM budget_items WHERE budget_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, budgetID)
	if err != nil {
		return nil, fmt.Errorf("list budget items: %w", err)
	}
	defer rows.Close()

	var out []*entity.BudgetItem
	for rows.Next() {
		var (
			it                    entity.BudgetItem
			stockItemID           *string
			unitPrice, totalPrice decimal.Decimal
		)
		err := rows.Scan(
			&it.ID, &it.BudgetID, &stockItemID, &it.Description,
			&it.Quantity, &unitPrice, &totalPrice, &it.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan budget item: %w", err)
		}
		if stockItemID != nil {
			it.StockItemID = *stockItemID
		}
		it.UnitPrice = money.FromDecimal(unitPrice)
		it.TotalPrice = money.FromDecimal(totalPrice)
		out = append(out, &it)
	}
	return out, rows.Err()
}

// Delete remove uma linha de orçamento.
func (r *BudgetItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM budget_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete budget item: %w", err)
	}
	return nil
}
