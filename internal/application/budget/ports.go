package budget

import (
	"context"

	"github.com/oficinapro/oficina-api/internal/domain/entity"
)

// PDFGenerator renderiza a representação do orçamento para envio ao cliente.
type PDFGenerator interface {
	GenerateBudgetPDF(ctx context.Context, b *entity.Budget, client *entity.Client, items []*entity.BudgetItem) ([]byte, error)
}
