package repository

import "github.com/oficinapro/oficina-api/internal/domain/entity"

// VehicleRepository porta de persistência de veículos (DIP).
type VehicleRepository interface {
	Create(vehicle *entity.Vehicle) error
	GetByID(id string) (*entity.Vehicle, error)
	GetByPlate(plate string) (*entity.Vehicle, error)
	ListByClient(clientID string, limit, offset int) ([]*entity.Vehicle, error)
	Update(vehicle *entity.Vehicle) error
	Delete(id string) error
}
