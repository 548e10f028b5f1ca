// Package pdf implementa a geração do orçamento em PDF para envio ao cliente.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nome da oficina  │  N° Orçamento + Data             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nome + CPF/CNPJ + contato                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Qtd | Descrição | Preço Unit. | Subtotal            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL + validade do orçamento                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appbudget "github.com/oficinapro/oficina-api/internal/application/budget"
	"github.com/oficinapro/oficina-api/internal/domain/entity"
	"github.com/oficinapro/oficina-api/internal/domain/money"
)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbudget.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa budget.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	workshopName string
}

// NewMarotoPDFGenerator constrói o gerador com o nome da oficina no cabeçalho.
func NewMarotoPDFGenerator(workshopName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{workshopName: workshopName}
}

// GenerateBudgetPDF gera o PDF do orçamento e devolve seus bytes.
func (g *MarotoPDFGenerator) GenerateBudgetPDF(
	_ context.Context,
	b *entity.Budget,
	client *entity.Client,
	items []*entity.BudgetItem,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orçamento de Serviço", true).
		WithAuthor(g.workshopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.workshopName, b))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(b))
	m.AddRows(validityRow(b))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow: nome da oficina (esq) e número + data do orçamento (dir).
func headerRow(workshopName string, b *entity.Budget) core.Row {
	data := b.GenerationDate.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(workshopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Ordem de serviço: "+b.ServiceOrderID, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORÇAMENTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(b.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Data: "+data, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// clientRow: dados do cliente.
func clientRow(client *entity.Client) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(client.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("CPF/CNPJ: %s   |   Email: %s   |   Tel: %s",
				client.Document,
				nonEmpty(client.Email, "—"),
				nonEmpty(client.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabeçalho da tabela de itens.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qtd.", 1, align.Center),
		h("Descrição do serviço/peça", 6, align.Left),
		h("Preço Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableItemRows: uma linha por item do orçamento.
func tableItemRows(items []*entity.BudgetItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				it.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatReal(it.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				formatReal(it.TotalPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: total do orçamento alinhado à direita.
func totalRow(b *entity.Budget) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(formatReal(b.TotalAmount()), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// validityRow: data limite de aprovação.
func validityRow(b *entity.Budget) core.Row {
	msg := fmt.Sprintf("Válido até %s (%d dias a partir da geração). Após essa data o orçamento expira e deve ser refeito.",
		b.ExpirationDate().Format("02/01/2006"), b.ValidityDays())
	return row.New(10).Add(
		col.New(12).Add(text.New(msg, props.Text{
			Size: 8, Color: colorGray, Top: 3,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID encurta um UUID para exibição (primeiro bloco).
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatReal formata centavos como moeda brasileira.
// Ex: 2500000 centavos → "R$ 25.000,00"
func formatReal(m money.Money) string {
	cents := m.Cents()
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	reais := fmt.Sprintf("%d", cents/100)
	frac := fmt.Sprintf("%02d", cents%100)

	n := len(reais)
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, reais[i])
	}
	return fmt.Sprintf("R$ %s%s,%s", sign, string(buf), frac)
}
