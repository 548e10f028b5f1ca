// Package authz concentra as decisões de autorização dos ciclos de vida como
// funções puras (currentStatus, targetStatus, role) -> bool, sem estado e sem
// efeito colateral. Os casos de uso avaliam a política ANTES de invocar a
// transição; negação não muta nada.
package authz

import "github.com/oficinapro/oficina-api/internal/domain/entity"

// Role papel do chamador, extraído do claim JWT.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
	RoleClient   Role = "CLIENT"
)

// ValidRole informa se o valor é um papel conhecido.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleEmployee || r == RoleClient
}

// CanChangeOrderStatus decide se o papel pode levar a ordem ao status alvo.
// Cancelamento é exclusivo do ADMIN; aprovação/rejeição cabe a CLIENT ou
// EMPLOYEE; etapas operacionais (diagnóstico, execução, término, entrega)
// exigem EMPLOYEE; os demais alvos são livres.
func CanChangeOrderStatus(_ entity.OrderStatus, target entity.OrderStatus, role Role) bool {
	switch target {
	case entity.OrderStatusCancelled:
		return role == RoleAdmin
	case entity.OrderStatusApproved, entity.OrderStatusRejected:
		return role == RoleClient || role == RoleEmployee
	case entity.OrderStatusInDiagnosis, entity.OrderStatusInExecution,
		entity.OrderStatusFinished, entity.OrderStatusDelivered:
		return role == RoleEmployee
	default:
		return true
	}
}

// CanChangeBudgetStatus decide se o papel pode levar o orçamento ao status
// alvo. Envio é do EMPLOYEE; aprovação/rejeição de CLIENT ou EMPLOYEE;
// expiração é da varredura agendada (sem restrição); o restante é livre.
func CanChangeBudgetStatus(_ entity.BudgetStatus, target entity.BudgetStatus, role Role) bool {
	switch target {
	case entity.BudgetStatusSent:
		return role == RoleEmployee
	case entity.BudgetStatusApproved, entity.BudgetStatusRejected:
		return role == RoleClient || role == RoleEmployee
	default:
		return true
	}
}
