package entity

import (
	"time"

	"github.com/oficinapro/oficina-api/internal/domain"
	"github.com/oficinapro/oficina-api/internal/domain/money"
)

// BudgetStatus status do orçamento.
type BudgetStatus string

// Estados do orçamento. Diferente da ordem de serviço, as transições são
// guardadas por pré-condição em cada método, não por tabela central.
const (
	BudgetStatusGenerated BudgetStatus = "GENERATED"
	BudgetStatusSent      BudgetStatus = "SENT"
	BudgetStatusReceived  BudgetStatus = "RECEIVED"
	BudgetStatusApproved  BudgetStatus = "APPROVED"
	BudgetStatusRejected  BudgetStatus = "REJECTED"
	BudgetStatusExpired   BudgetStatus = "EXPIRED"
)

// Budget orçamento de uma ordem de serviço. Janela de validade em dias a
// partir da geração; aprovar/rejeitar só é possível dentro da janela e com
// status SENT. Campos de ciclo de vida privados, mutação só pelos métodos.
type Budget struct {
	ID             string
	ServiceOrderID string
	ClientID       string
	GenerationDate time.Time
	CreatedAt      time.Time

	status         BudgetStatus
	totalAmount    money.Money
	validityDays   int
	sentDate       *time.Time
	approvalDate   *time.Time
	rejectionDate  *time.Time
	deliveryMethod string
	notes          string
	updatedAt      time.Time
}

// NewBudget cria um orçamento GENERATED com o total calculado dos itens.
func NewBudget(id, serviceOrderID, clientID string, items []BudgetItem, validityDays int, now time.Time) *Budget {
	return &Budget{
		ID:             id,
		ServiceOrderID: serviceOrderID,
		ClientID:       clientID,
		GenerationDate: now,
		CreatedAt:      now,
		status:         BudgetStatusGenerated,
		totalAmount:    CalculateTotalAmount(items),
		validityDays:   validityDays,
		updatedAt:      now,
	}
}

// RestoreBudget reidrata um orçamento a partir da persistência.
func RestoreBudget(
	id, serviceOrderID, clientID string,
	status BudgetStatus,
	totalAmount money.Money,
	validityDays int,
	generationDate time.Time,
	sentDate, approvalDate, rejectionDate *time.Time,
	deliveryMethod, notes string,
	createdAt, updatedAt time.Time,
) *Budget {
	return &Budget{
		ID:             id,
		ServiceOrderID: serviceOrderID,
		ClientID:       clientID,
		GenerationDate: generationDate,
		CreatedAt:      createdAt,
		status:         status,
		totalAmount:    totalAmount,
		validityDays:   validityDays,
		sentDate:       sentDate,
		approvalDate:   approvalDate,
		rejectionDate:  rejectionDate,
		deliveryMethod: deliveryMethod,
		notes:          notes,
		updatedAt:      updatedAt,
	}
}

// Status devolve o status atual.
func (b *Budget) Status() BudgetStatus { return b.status }

// TotalAmount devolve o total em centavos.
func (b *Budget) TotalAmount() money.Money { return b.totalAmount }

// ValidityDays devolve a janela de validade em dias.
func (b *Budget) ValidityDays() int { return b.validityDays }

// SentDate devolve a data de envio (nil se nunca enviado).
func (b *Budget) SentDate() *time.Time { return b.sentDate }

// ApprovalDate devolve a data de aprovação (nil se não aprovado).
func (b *Budget) ApprovalDate() *time.Time { return b.approvalDate }

// RejectionDate devolve a data de rejeição (nil se não rejeitado).
func (b *Budget) RejectionDate() *time.Time { return b.rejectionDate }

// DeliveryMethod devolve o meio de envio ao cliente (email, whatsapp...).
func (b *Budget) DeliveryMethod() string { return b.deliveryMethod }

// Notes devolve as observações.
func (b *Budget) Notes() string { return b.notes }

// UpdatedAt devolve o instante da última mutação.
func (b *Budget) UpdatedAt() time.Time { return b.updatedAt }

// ExpirationDate data limite: geração + validade em dias.
func (b *Budget) ExpirationDate() time.Time {
	return b.GenerationDate.AddDate(0, 0, b.validityDays)
}

// IsExpired o orçamento passou da janela de validade.
func (b *Budget) IsExpired(now time.Time) bool {
	return now.After(b.ExpirationDate())
}

// Send envia o orçamento ao cliente. Exige status GENERATED.
func (b *Budget) Send(now time.Time) error {
	if b.status != BudgetStatusGenerated {
		return &domain.InvalidBudgetStatusError{Current: string(b.status), Operation: "send"}
	}
	b.status = BudgetStatusSent
	d := now
	b.sentDate = &d
	b.updatedAt = now
	return nil
}

// MarkAsReceived o cliente confirmou o recebimento. Exige status SENT.
func (b *Budget) MarkAsReceived(now time.Time) error {
	if b.status != BudgetStatusSent {
		return &domain.InvalidBudgetStatusError{Current: string(b.status), Operation: "markAsReceived"}
	}
	b.status = BudgetStatusReceived
	b.updatedAt = now
	return nil
}

// Approve aprova o orçamento. Exige status SENT e dentro da janela de
// validade; aprovar duas vezes é erro próprio (idempotência guardada).
func (b *Budget) Approve(now time.Time) error {
	if b.status == BudgetStatusApproved {
		return domain.ErrBudgetAlreadyApproved
	}
	if b.status != BudgetStatusSent {
		return &domain.InvalidBudgetStatusError{Current: string(b.status), Operation: "approve"}
	}
	if b.IsExpired(now) {
		return domain.ErrBudgetExpired
	}
	b.status = BudgetStatusApproved
	d := now
	b.approvalDate = &d
	b.updatedAt = now
	return nil
}

// Reject rejeita o orçamento. Mesmas guardas de Approve.
func (b *Budget) Reject(now time.Time) error {
	if b.status == BudgetStatusRejected {
		return domain.ErrBudgetAlreadyRejected
	}
	if b.status != BudgetStatusSent {
		return &domain.InvalidBudgetStatusError{Current: string(b.status), Operation: "reject"}
	}
	if b.IsExpired(now) {
		return domain.ErrBudgetExpired
	}
	b.status = BudgetStatusRejected
	d := now
	b.rejectionDate = &d
	b.updatedAt = now
	return nil
}

// MarkAsExpired transição incondicional para EXPIRED, disparada pela
// varredura agendada — não valida o status atual.
func (b *Budget) MarkAsExpired(now time.Time) {
	b.status = BudgetStatusExpired
	b.updatedAt = now
}

// RecalculateTotalAmount recalcula o total a partir dos itens; não muta outros campos.
func (b *Budget) RecalculateTotalAmount(items []BudgetItem) {
	b.totalAmount = CalculateTotalAmount(items)
}

// UpdateTotalAmount setter incondicional do total.
func (b *Budget) UpdateTotalAmount(total money.Money, now time.Time) {
	b.totalAmount = total
	b.updatedAt = now
}

// UpdateValidityPeriod setter incondicional da validade em dias.
func (b *Budget) UpdateValidityPeriod(days int, now time.Time) {
	b.validityDays = days
	b.updatedAt = now
}

// UpdateDeliveryMethod setter incondicional do meio de envio.
func (b *Budget) UpdateDeliveryMethod(method string, now time.Time) {
	b.deliveryMethod = method
	b.updatedAt = now
}

// UpdateNotes setter incondicional das observações.
func (b *Budget) UpdateNotes(notes string, now time.Time) {
	b.notes = notes
	b.updatedAt = now
}

// CalculateTotalAmount soma o TotalPrice de cada item em centavos.
// Aritmética inteira, nunca ponto flutuante.
func CalculateTotalAmount(items []BudgetItem) money.Money {
	total := money.Zero
	for _, it := range items {
		total = total.Add(it.TotalPrice)
	}
	return total
}
