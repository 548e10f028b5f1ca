package budget

import (
	"context"

	"github.com/google/uuid"
	"github.com/oficinapro/oficina-api/internal/application/dto"
	"github.com/oficinapro/oficina-api/internal/application/ports"
	"github.com/oficinapro/oficina-api/internal/domain"
	"github.com/oficinapro/oficina-api/internal/domain/authz"
	"github.com/oficinapro/oficina-api/internal/domain/entity"
	"github.com/oficinapro/oficina-api/internal/domain/money"
	"github.com/oficinapro/oficina-api/internal/domain/repository"
)

// Eventos emitidos após transições de orçamento. Consumidos pela
// orquestração (avanço da ordem relacionada) e pelo notificador de e-mail;
// a emissão é fire-and-forget, o core não espera o processamento.
const (
	EventBudgetSent     = "budget.sent"
	EventBudgetApproved = "budget.approved"
	EventBudgetRejected = "budget.rejected"
	EventBudgetExpired  = "budget.expired"
)

// UseCase ciclo de vida do orçamento. As transições são guardadas por
// pré-condição em cada método da entidade; aqui entram autorização,
// persistência e emissão de eventos.
type UseCase struct {
	budgetRepo repository.BudgetRepository
	itemRepo   repository.BudgetItemRepository
	orderRepo  repository.ServiceOrderRepository
	clientRepo repository.ClientRepository
	clock      ports.Clock
	emitter    ports.EventEmitter
	pdf        PDFGenerator
}

// NewUseCase constrói o caso de uso.
func NewUseCase(
	budgetRepo repository.BudgetRepository,
	itemRepo repository.BudgetItemRepository,
	orderRepo repository.ServiceOrderRepository,
	clientRepo repository.ClientRepository,
	clock ports.Clock,
	emitter ports.EventEmitter,
	pdf PDFGenerator,
) *UseCase {
	return &UseCase{
		budgetRepo: budgetRepo,
		itemRepo:   itemRepo,
		orderRepo:  orderRepo,
		clientRepo: clientRepo,
		clock:      clock,
		emitter:    emitter,
		pdf:        pdf,
	}
}

// Generate cria um orçamento GENERATED para uma ordem em diagnóstico, com o
// total calculado das linhas em centavos (aritmética inteira).
func (uc *UseCase) Generate(ctx context.Context, in dto.GenerateBudgetRequest) (*entity.Budget, error) {
	o, err := uc.orderRepo.GetByID(in.ServiceOrderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrServiceOrderNotFound
	}
	// Itens de orçamento só entram durante o diagnóstico.
	if !o.CanAddBudgetItems() {
		return nil, &domain.InvalidBudgetStatusError{Current: string(o.Status()), Operation: "generate"}
	}

	now := uc.clock.Now()
	budgetID := uuid.New().String()
	items := make([]entity.BudgetItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, *entity.NewBudgetItem(
			uuid.New().String(), budgetID, it.StockItemID, it.Description,
			it.Quantity, money.FromCents(it.UnitPriceCents), now,
		))
	}

	b := entity.NewBudget(budgetID, o.ID, o.ClientID, items, in.ValidityDays, now)
	if err := uc.budgetRepo.Create(b); err != nil {
		return nil, err
	}
	for i := range items {
		if err := uc.itemRepo.Create(&items[i]); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// GetByID carrega um orçamento.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Budget, error) {
	b, err := uc.budgetRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrBudgetNotFound
	}
	return b, nil
}

// Send envia o orçamento ao cliente (exclusivo do EMPLOYEE) e emite budget.sent.
func (uc *UseCase) Send(ctx context.Context, id string, role authz.Role) (*entity.Budget, error) {
	b, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanChangeBudgetStatus(b.Status(), entity.BudgetStatusSent, role) {
		return nil, &domain.UnauthorizedStatusChangeError{
			EntityID: b.ID,
			Current:  string(b.Status()),
			Target:   string(entity.BudgetStatusSent),
			Role:     string(role),
		}
	}
	if err := b.Send(uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.budgetRepo.Update(b); err != nil {
		return nil, err
	}
	uc.emitter.Emit(EventBudgetSent, b.ID, uc.eventPayload(b))
	return b, nil
}

// MarkAsReceived registra que o cliente confirmou o recebimento.
func (uc *UseCase) MarkAsReceived(ctx context.Context, id string) (*entity.Budget, error) {
	b, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.MarkAsReceived(uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.budgetRepo.Update(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Approve aprova o orçamento dentro da janela de validade e emite budget.approved.
func (uc *UseCase) Approve(ctx context.Context, id string, role authz.Role) (*entity.Budget, error) {
	b, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanChangeBudgetStatus(b.Status(), entity.BudgetStatusApproved, role) {
		return nil, &domain.UnauthorizedStatusChangeError{
			EntityID: b.ID,
			Current:  string(b.Status()),
			Target:   string(entity.BudgetStatusApproved),
			Role:     string(role),
		}
	}
	if err := b.Approve(uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.budgetRepo.Update(b); err != nil {
		return nil, err
	}
	payload := uc.eventPayload(b)
	payload["role"] = string(role)
	uc.emitter.Emit(EventBudgetApproved, b.ID, payload)
	return b, nil
}

// Reject rejeita o orçamento dentro da janela de validade e emite budget.rejected.
func (uc *UseCase) Reject(ctx context.Context, id string, role authz.Role) (*entity.Budget, error) {
	b, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanChangeBudgetStatus(b.Status(), entity.BudgetStatusRejected, role) {
		return nil, &domain.UnauthorizedStatusChangeError{
			EntityID: b.ID,
			Current:  string(b.Status()),
			Target:   string(entity.BudgetStatusRejected),
			Role:     string(role),
		}
	}
	if err := b.Reject(uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.budgetRepo.Update(b); err != nil {
		return nil, err
	}
	payload := uc.eventPayload(b)
	payload["role"] = string(role)
	uc.emitter.Emit(EventBudgetRejected, b.ID, payload)
	return b, nil
}

// UpdateFields setters incondicionais (validade, meio de envio, observações);
// não validam status.
func (uc *UseCase) UpdateFields(ctx context.Context, id string, in dto.UpdateBudgetRequest) (*entity.Budget, error) {
	b, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	if in.ValidityDays != nil {
		b.UpdateValidityPeriod(*in.ValidityDays, now)
	}
	if in.DeliveryMethod != nil {
		b.UpdateDeliveryMethod(*in.DeliveryMethod, now)
	}
	if in.Notes != nil {
		b.UpdateNotes(*in.Notes, now)
	}
	if err := uc.budgetRepo.Update(b); err != nil {
		return nil, err
	}
	return b, nil
}

// RecalculateTotal recalcula o total a partir das linhas persistidas.
func (uc *UseCase) RecalculateTotal(ctx context.Context, id string) (*entity.Budget, error) {
	b, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.itemRepo.ListByBudget(b.ID)
	if err != nil {
		return nil, err
	}
	values := make([]entity.BudgetItem, len(items))
	for i, it := range items {
		values[i] = *it
	}
	b.RecalculateTotalAmount(values)
	if err := uc.budgetRepo.Update(b); err != nil {
		return nil, err
	}
	return b, nil
}

// ExpireOverdue varredura dirigida por tempo: marca EXPIRED todo orçamento
// ainda decidível cuja janela já passou. Devolve quantos foram expirados.
func (uc *UseCase) ExpireOverdue(ctx context.Context) (int, error) {
	now := uc.clock.Now()
	candidates, err := uc.budgetRepo.ListExpiredCandidates(now)
	if err != nil {
		return 0, err
	}
	expired := 0
	for _, b := range candidates {
		b.MarkAsExpired(now)
		if err := uc.budgetRepo.Update(b); err != nil {
			return expired, err
		}
		uc.emitter.Emit(EventBudgetExpired, b.ID, uc.eventPayload(b))
		expired++
	}
	return expired, nil
}

// GeneratePDF renderiza o orçamento para envio ao cliente.
func (uc *UseCase) GeneratePDF(ctx context.Context, id string) ([]byte, error) {
	b, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	client, err := uc.clientRepo.GetByID(b.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrClientNotFound
	}
	items, err := uc.itemRepo.ListByBudget(b.ID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateBudgetPDF(ctx, b, client, items)
}

func (uc *UseCase) eventPayload(b *entity.Budget) map[string]any {
	return map[string]any{
		"service_order_id":   b.ServiceOrderID,
		"client_id":          b.ClientID,
		"total_amount_cents": b.TotalAmount().Cents(),
		"status":             string(b.Status()),
	}
}

// Response converte a entidade para o DTO da API.
func Response(b *entity.Budget) dto.BudgetResponse {
	return dto.BudgetResponse{
		ID:               b.ID,
		ServiceOrderID:   b.ServiceOrderID,
		ClientID:         b.ClientID,
		Status:           string(b.Status()),
		TotalAmountCents: b.TotalAmount().Cents(),
		ValidityDays:     b.ValidityDays(),
		GenerationDate:   b.GenerationDate,
		ExpirationDate:   b.ExpirationDate(),
		SentDate:         b.SentDate(),
		ApprovalDate:     b.ApprovalDate(),
		RejectionDate:    b.RejectionDate(),
		DeliveryMethod:   b.DeliveryMethod(),
		Notes:            b.Notes(),
	}
}
