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

// VehicleUseCase cadastro de veículos, sempre atados a um cliente existente.
type VehicleUseCase struct {
	vehicleRepo repository.VehicleRepository
	clientRepo  repository.ClientRepository
	clock       ports.Clock
}

// NewVehicleUseCase constrói o caso de uso.
func NewVehicleUseCase(vehicleRepo repository.VehicleRepository, clientRepo repository.ClientRepository, clock ports.Clock) *VehicleUseCase {
	return &VehicleUseCase{vehicleRepo: vehicleRepo, clientRepo: clientRepo, clock: clock}
}

// Create cadastra um veículo validando placa, chassi e dono.
func (uc *VehicleUseCase) Create(ctx context.Context, in dto.CreateVehicleRequest) (*entity.Vehicle, error) {
	if err := validate.LicensePlate(in.LicensePlate); err != nil {
		return nil, err
	}
	if in.VIN != "" {
		if err := validate.VIN(in.VIN); err != nil {
			return nil, err
		}
	}

	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrClientNotFound
	}

	plate := normalizePlate(in.LicensePlate)
	existing, err := uc.vehicleRepo.GetByPlate(plate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := uc.clock.Now()
	v := &entity.Vehicle{
		ID:           uuid.New().String(),
		ClientID:     client.ID,
		LicensePlate: plate,
		VIN:          strings.ToUpper(strings.TrimSpace(in.VIN)),
		Brand:        in.Brand,
		Model:        in.Model,
		Year:         in.Year,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.vehicleRepo.Create(v); err != nil {
		return nil, err
	}
	return v, nil
}

// GetByID carrega um veículo.
func (uc *VehicleUseCase) GetByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	v, err := uc.vehicleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrVehicleNotFound
	}
	return v, nil
}

// ListByClient lista os veículos de um cliente.
func (uc *VehicleUseCase) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*entity.Vehicle, error) {
	return uc.vehicleRepo.ListByClient(clientID, limit, offset)
}

// Delete remove um veículo.
func (uc *VehicleUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.vehicleRepo.Delete(id)
}

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(plate), "-", ""))
}
