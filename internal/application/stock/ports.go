package stock

import (
	"context"

	"github.com/oficinapro/oficina-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de banco, passando
// repositórios atados a essa transação. Garante atomicidade para o ledger:
// a atualização do saldo e a escrita da movimentação são uma unidade —
// falha em qualquer passo desfaz as duas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.StockItemRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
