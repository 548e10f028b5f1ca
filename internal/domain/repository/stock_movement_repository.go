package repository

import (
	"time"

	"github.com/oficinapro/oficina-api/internal/domain/entity"
)

// StockMovementRepository porta de persistência de movimentações de estoque (DIP).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByStockItem(stockItemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	Update(movement *entity.StockMovement) error
}
