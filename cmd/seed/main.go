// seed popula o banco com dados de desenvolvimento: um usuário ADMIN, um
// cliente com veículo e alguns itens de estoque.
//
// Uso: go run ./cmd/seed
// Idempotente: registros já existentes (por e-mail, documento, SKU) são pulados.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/oficinapro/oficina-api/internal/application/auth"
	"github.com/oficinapro/oficina-api/internal/application/dto"
	"github.com/oficinapro/oficina-api/internal/application/ports"
	"github.com/oficinapro/oficina-api/internal/application/usecase"
	"github.com/oficinapro/oficina-api/internal/domain"
	"github.com/oficinapro/oficina-api/internal/infrastructure/postgres"
	"github.com/oficinapro/oficina-api/pkg/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	clock := ports.SystemClock{}
	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	stockItemRepo := postgres.NewStockItemRepository(pool)

	authUC := auth.NewUseCase(userRepo, clock, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	clientUC := usecase.NewClientUseCase(clientRepo, clock)
	vehicleUC := usecase.NewVehicleUseCase(vehicleRepo, clientRepo, clock)
	stockUC := usecase.NewStockItemUseCase(stockItemRepo, clock)

	if _, err := authUC.Register(ctx, dto.RegisterRequest{
		Name:     "Administrador",
		Email:    "admin@oficina.local",
		Password: "admin12345",
		Role:     "ADMIN",
	}); err != nil && err != domain.ErrEmailAlreadyExists {
		return err
	}
	fmt.Println("usuário admin pronto: admin@oficina.local")

	client, err := clientUC.Create(ctx, dto.CreateClientRequest{
		Name:     "João da Silva",
		Document: "52998224725", // CPF válido de teste
		Email:    "joao@example.com",
		Phone:    "+55 11 91234-5678",
	})
	if err != nil {
		if err != domain.ErrDuplicate {
			return err
		}
		client, err = clientRepo.GetByDocument("52998224725")
		if err != nil {
			return err
		}
	}
	fmt.Println("cliente pronto:", client.Name)

	if _, err := vehicleUC.Create(ctx, dto.CreateVehicleRequest{
		ClientID:     client.ID,
		LicensePlate: "ABC1D23",
		Brand:        "Volkswagen",
		Model:        "Gol",
		Year:         2019,
	}); err != nil && err != domain.ErrDuplicate {
		return err
	}
	fmt.Println("veículo pronto: ABC1D23")

	items := []dto.CreateStockItemRequest{
		{Name: "Óleo de motor 5W30 1L", SKU: "OLEO-5W30", InitialStock: 40, MinStockLevel: 10, UnitCostCents: 2500, UnitSalePriceCents: 4500},
		{Name: "Filtro de óleo", SKU: "FILTRO-OLEO", InitialStock: 25, MinStockLevel: 8, UnitCostCents: 1500, UnitSalePriceCents: 3200},
		{Name: "Pastilha de freio dianteira", SKU: "PAST-FREIO-D", InitialStock: 12, MinStockLevel: 4, UnitCostCents: 8900, UnitSalePriceCents: 15900},
	}
	for _, in := range items {
		if _, err := stockUC.Create(ctx, in); err != nil && err != domain.ErrDuplicate {
			return err
		}
		fmt.Println("item de estoque pronto:", in.SKU)
	}

	return nil
}
