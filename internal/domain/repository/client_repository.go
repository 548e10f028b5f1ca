package repository

import "github.com/oficinapro/oficina-api/internal/domain/entity"

// ClientRepository porta de persistência de clientes (DIP).
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	GetByDocument(document string) (*entity.Client, error)
	List(limit, offset int) ([]*entity.Client, error)
	Update(client *entity.Client) error
	Delete(id string) error
}
