package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Erros de domínio (sem dependências externas). São violações de regra de
// negócio: propagam de forma síncrona e nunca são re-tentados internamente.
var (
	ErrNotFound              = errors.New("recurso não encontrado")
	ErrClientNotFound        = errors.New("cliente não encontrado")
	ErrVehicleNotFound       = errors.New("veículo não encontrado")
	ErrServiceOrderNotFound  = errors.New("ordem de serviço não encontrada")
	ErrBudgetNotFound        = errors.New("orçamento não encontrado")
	ErrStockItemNotFound     = errors.New("item de estoque não encontrado")
	ErrStockMovementNotFound = errors.New("movimentação de estoque não encontrada")
	ErrUserNotFound          = errors.New("usuário não encontrado")

	ErrEmailAlreadyExists = errors.New("o e-mail já está cadastrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso negado")

	ErrInvalidStatusTransition  = errors.New("transição de status inválida")
	ErrUnauthorizedStatusChange = errors.New("mudança de status não autorizada para o papel")
	ErrCancellationReasonRequired = errors.New("motivo de cancelamento é obrigatório")

	ErrInvalidBudgetStatus   = errors.New("status do orçamento não permite a operação")
	ErrBudgetExpired         = errors.New("orçamento expirado")
	ErrBudgetAlreadyApproved = errors.New("orçamento já aprovado")
	ErrBudgetAlreadyRejected = errors.New("orçamento já rejeitado")

	ErrInsufficientStock      = errors.New("estoque insuficiente")
	ErrInvalidPriceMargin     = errors.New("preço de venda abaixo do custo")
	ErrInvalidStockAdjustment = errors.New("ajuste de estoque inválido")
)

// InvalidStatusTransitionError transição fora da tabela permitida.
// Carrega o status atual, o tentado e o conjunto permitido para a camada HTTP.
type InvalidStatusTransitionError struct {
	Current   string
	Attempted string
	Allowed   []string
}

func (e *InvalidStatusTransitionError) Error() string {
	return fmt.Sprintf("transição de status inválida: %s -> %s (permitidas: %s)",
		e.Current, e.Attempted, strings.Join(e.Allowed, ", "))
}

func (e *InvalidStatusTransitionError) Unwrap() error { return ErrInvalidStatusTransition }

// UnauthorizedStatusChangeError transição válida na tabela, mas vedada ao papel do chamador.
type UnauthorizedStatusChangeError struct {
	EntityID string
	Current  string
	Target   string
	Role     string
}

func (e *UnauthorizedStatusChangeError) Error() string {
	return fmt.Sprintf("papel %s não pode mudar %s de %s para %s",
		e.Role, e.EntityID, e.Current, e.Target)
}

func (e *UnauthorizedStatusChangeError) Unwrap() error { return ErrUnauthorizedStatusChange }

// InvalidBudgetStatusError operação de orçamento chamada em status incompatível.
type InvalidBudgetStatusError struct {
	Current   string
	Operation string
}

func (e *InvalidBudgetStatusError) Error() string {
	return fmt.Sprintf("orçamento em %s não permite %s", e.Current, e.Operation)
}

func (e *InvalidBudgetStatusError) Unwrap() error { return ErrInvalidBudgetStatus }

// InsufficientStockError saída ou emenda deixaria o estoque negativo.
type InsufficientStockError struct {
	StockItemID string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("estoque insuficiente no item %s: solicitado %d, disponível %d",
		e.StockItemID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
