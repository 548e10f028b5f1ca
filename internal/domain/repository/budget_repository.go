package repository

import (
	"time"

	"github.com/oficinapro/oficina-api/internal/domain/entity"
)

// BudgetRepository porta de persistência de orçamentos (DIP).
type BudgetRepository interface {
	Create(budget *entity.Budget) error
	GetByID(id string) (*entity.Budget, error)
	GetByServiceOrder(serviceOrderID string) ([]*entity.Budget, error)
	Update(budget *entity.Budget) error
	// ListExpiredCandidates devolve orçamentos ainda decidíveis
	// (GENERATED, SENT ou RECEIVED) cuja janela de validade já passou em now.
	ListExpiredCandidates(now time.Time) ([]*entity.Budget, error)
}
