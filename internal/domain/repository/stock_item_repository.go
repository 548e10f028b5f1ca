package repository

import "github.com/oficinapro/oficina-api/internal/domain/entity"

// StockItemRepository porta de persistência de itens de estoque (DIP).
type StockItemRepository interface {
	Create(item *entity.StockItem) error
	GetByID(id string) (*entity.StockItem, error)
	GetBySKU(sku string) (*entity.StockItem, error)
	// GetForUpdate carrega o item bloqueando a linha (SELECT ... FOR UPDATE)
	// pela duração da transação corrente; usado pelo ledger.
	GetForUpdate(id string) (*entity.StockItem, error)
	List(limit, offset int) ([]*entity.StockItem, error)
	ListBelowMinimum() ([]*entity.StockItem, error)
	Update(item *entity.StockItem) error
}
