package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/oficinapro/oficina-api/internal/application/dto"
	"github.com/oficinapro/oficina-api/internal/application/ports"
	"github.com/oficinapro/oficina-api/internal/domain"
	"github.com/oficinapro/oficina-api/internal/domain/entity"
	"github.com/oficinapro/oficina-api/internal/domain/repository"
	"github.com/oficinapro/oficina-api/internal/domain/validate"
)

// ClientUseCase cadastro de clientes. O documento (CPF ou CNPJ) é validado
// pelos dígitos verificadores e armazenado normalizado, só dígitos.
type ClientUseCase struct {
	clientRepo repository.ClientRepository
	clock      ports.Clock
}

// NewClientUseCase constrói o caso de uso.
func NewClientUseCase(clientRepo repository.ClientRepository, clock ports.Clock) *ClientUseCase {
	return &ClientUseCase{clientRepo: clientRepo, clock: clock}
}

// Create cadastra um cliente; documento duplicado falha com ErrDuplicate.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*entity.Client, error) {
	if err := validate.CPFOrCNPJ(in.Document); err != nil {
		return nil, err
	}
	doc := validate.NormalizeDocument(in.Document)

	existing, err := uc.clientRepo.GetByDocument(doc)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := uc.clock.Now()
	c := &entity.Client{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Document:  doc,
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.clientRepo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID carrega um cliente.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	c, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrClientNotFound
	}
	return c, nil
}

// List lista clientes paginados.
func (uc *ClientUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Client, error) {
	return uc.clientRepo.List(limit, offset)
}

// Update atualiza nome, e-mail e telefone. O documento é imutável.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.UpdateClientRequest) (*entity.Client, error) {
	c, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Email = strings.ToLower(strings.TrimSpace(in.Email))
	c.Phone = in.Phone
	c.UpdatedAt = uc.clock.Now()
	if err := uc.clientRepo.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete remove um cliente.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.clientRepo.Delete(id)
}
