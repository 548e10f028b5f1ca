package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/oficinapro/oficina-api/internal/application/auth"
	"github.com/oficinapro/oficina-api/internal/application/budget"
	"github.com/oficinapro/oficina-api/internal/application/order"
	"github.com/oficinapro/oficina-api/internal/application/stock"
	"github.com/oficinapro/oficina-api/internal/application/usecase"
	"github.com/oficinapro/oficina-api/internal/domain/authz"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	ClientUC    *usecase.ClientUseCase
	VehicleUC   *usecase.VehicleUseCase
	OrderUC     *order.UseCase
	BudgetUC    *budget.UseCase
	StockItemUC *usecase.StockItemUseCase
	LedgerUC    *stock.LedgerUseCase
	JWTSecret   string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	staff := RequireRole(authz.RoleAdmin, authz.RoleEmployee)

	// Clients (protegido; escrita restrita a ADMIN/EMPLOYEE)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", staff, clientHandler.Create)
	clients.Get("/", staff, clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", staff, clientHandler.Update)
	clients.Delete("/:id", RequireRole(authz.RoleAdmin), clientHandler.Delete)

	// Vehicles (protegido)
	vehicles := protected.Group("/vehicles")
	vehicleHandler := NewVehicleHandler(deps.VehicleUC)
	vehicles.Post("/", vehicleHandler.Create)
	vehicles.Get("/:id", vehicleHandler.GetByID)
	vehicles.Delete("/:id", staff, vehicleHandler.Delete)
	clients.Get("/:clientId/vehicles", vehicleHandler.ListByClient)

	// Service orders (protegido; a política de papéis por transição vive no
	// domínio, não aqui)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)
	orders.Post("/:id/cancel", orderHandler.Cancel)

	// Budgets (protegido)
	budgets := protected.Group("/budgets")
	budgetHandler := NewBudgetHandler(deps.BudgetUC)
	budgets.Post("/", staff, budgetHandler.Create)
	budgets.Get("/:id", budgetHandler.GetByID)
	budgets.Post("/:id/send", budgetHandler.Send)
	budgets.Post("/:id/receive", budgetHandler.MarkAsReceived)
	budgets.Post("/:id/approve", budgetHandler.Approve)
	budgets.Post("/:id/reject", budgetHandler.Reject)
	budgets.Put("/:id", staff, budgetHandler.Update)
	budgets.Get("/:id/pdf", budgetHandler.GetPDF)

	// Stock (protegido, só staff)
	stockGroup := protected.Group("/stock", staff)
	stockHandler := NewStockHandler(deps.StockItemUC, deps.LedgerUC)
	stockGroup.Post("/items", stockHandler.CreateItem)
	stockGroup.Get("/items", stockHandler.ListItems)
	stockGroup.Get("/items/low", stockHandler.LowStockReport)
	stockGroup.Get("/items/:id", stockHandler.GetItem)
	stockGroup.Put("/items/:id/prices", stockHandler.UpdateItemPrices)
	stockGroup.Get("/items/:id/movements", stockHandler.ListMovements)
	stockGroup.Post("/movements", stockHandler.CreateMovement)
	stockGroup.Put("/movements/:id", stockHandler.UpdateMovement)
}
