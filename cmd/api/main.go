package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appauth "github.com/oficinapro/oficina-api/internal/application/auth"
	appbudget "github.com/oficinapro/oficina-api/internal/application/budget"
	apporder "github.com/oficinapro/oficina-api/internal/application/order"
	"github.com/oficinapro/oficina-api/internal/application/ports"
	appstock "github.com/oficinapro/oficina-api/internal/application/stock"
	"github.com/oficinapro/oficina-api/internal/application/usecase"
	"github.com/oficinapro/oficina-api/internal/infrastructure/email"
	"github.com/oficinapro/oficina-api/internal/infrastructure/events"
	infrapdf "github.com/oficinapro/oficina-api/internal/infrastructure/pdf"
	"github.com/oficinapro/oficina-api/internal/infrastructure/postgres"
	httpRouter "github.com/oficinapro/oficina-api/internal/interfaces/http"
	"github.com/oficinapro/oficina-api/internal/scheduler"
	"github.com/oficinapro/oficina-api/pkg/config"
	"github.com/oficinapro/oficina-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	clientRepo := postgres.NewClientRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	orderRepo := postgres.NewServiceOrderRepository(pool)
	budgetRepo := postgres.NewBudgetRepository(pool)
	budgetItemRepo := postgres.NewBudgetItemRepository(pool)
	stockItemRepo := postgres.NewStockItemRepository(pool)
	stockMovementRepo := postgres.NewStockMovementRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	clock := ports.SystemClock{}

	// Barramento de eventos: orquestração da ordem + notificações por e-mail
	bus := events.NewBus(log)
	events.NewOrderOrchestrator(orderRepo, clock, log).Register(bus)
	email.NewNotifier(cfg.SMTP, clientRepo, log).Register(bus)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)

	authUC := appauth.NewUseCase(userRepo, clock, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	clientUC := usecase.NewClientUseCase(clientRepo, clock)
	vehicleUC := usecase.NewVehicleUseCase(vehicleRepo, clientRepo, clock)
	orderUC := apporder.NewUseCase(orderRepo, clientRepo, vehicleRepo, clock, bus)
	budgetUC := appbudget.NewUseCase(budgetRepo, budgetItemRepo, orderRepo, clientRepo, clock, bus, pdfGenerator)
	stockItemUC := usecase.NewStockItemUseCase(stockItemRepo, clock)
	ledgerUC := appstock.NewLedgerUseCase(txRunner, stockMovementRepo, clock)

	// Varredura periódica de orçamentos vencidos
	sched := scheduler.NewScheduler(cfg.Scheduler, budgetUC, log)
	sched.Start()
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ClientUC:    clientUC,
		VehicleUC:   vehicleUC,
		OrderUC:     orderUC,
		BudgetUC:    budgetUC,
		StockItemUC: stockItemUC,
		LedgerUC:    ledgerUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	// Espera os handlers de evento em voo antes de soltar o pool.
	bus.Wait()

	log.Info().Msg("aplicação encerrada")
}
