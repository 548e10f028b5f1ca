package repository

import "github.com/oficinapro/oficina-api/internal/domain/entity"

// UserRepository porta de persistência de usuários (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
