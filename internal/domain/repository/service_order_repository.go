package repository

import "github.com/oficinapro/oficina-api/internal/domain/entity"

// ServiceOrderRepository porta de persistência de ordens de serviço (DIP).
// O core nunca apaga ordens; exclusão é preocupação externa.
type ServiceOrderRepository interface {
	Create(order *entity.ServiceOrder) error
	GetByID(id string) (*entity.ServiceOrder, error)
	ListByClient(clientID string, limit, offset int) ([]*entity.ServiceOrder, error)
	ListByStatus(status entity.OrderStatus, limit, offset int) ([]*entity.ServiceOrder, error)
	Update(order *entity.ServiceOrder) error
}
