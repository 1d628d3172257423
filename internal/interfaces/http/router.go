package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nubecafe/pos-core/internal/application/catalog"
	"github.com/nubecafe/pos-core/internal/application/coworking"
	"github.com/nubecafe/pos-core/internal/application/customers"
	"github.com/nubecafe/pos-core/internal/application/reports"
	"github.com/nubecafe/pos-core/internal/application/sales"
	"github.com/nubecafe/pos-core/internal/application/users"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC   *catalog.UseCase
	SalesUC     *sales.UseCase
	CoworkingUC *coworking.UseCase
	CustomersUC *customers.UseCase
	ReportsUC   *reports.UseCase
	UsersUC     *users.UseCase
	CashCutPDF  CashCutPDFGenerator
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.UsersUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo e inventario
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Post("/:id/stock", productHandler.AdjustStock)
	products.Delete("/:id", productHandler.Delete)

	// Ventas
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SalesUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Delete("/:id", saleHandler.Delete)

	// Sesiones de coworking
	sessions := protected.Group("/coworking/sessions")
	coworkingHandler := NewCoworkingHandler(deps.CoworkingUC)
	sessions.Post("/", coworkingHandler.Start)
	sessions.Get("/", coworkingHandler.List)
	sessions.Get("/:id", coworkingHandler.GetByID)
	sessions.Post("/:id/pause", coworkingHandler.Pause)
	sessions.Post("/:id/resume", coworkingHandler.Resume)
	sessions.Post("/:id/items", coworkingHandler.AddItem)
	sessions.Delete("/:id/items/:productId", coworkingHandler.RemoveItem)
	sessions.Post("/:id/close", coworkingHandler.Close)
	sessions.Post("/:id/cancel", coworkingHandler.Cancel)

	// Clientes y membresías
	customerHandler := NewCustomerHandler(deps.CustomersUC)
	customersGroup := protected.Group("/customers")
	customersGroup.Post("/", customerHandler.Upsert)
	customersGroup.Get("/", customerHandler.Search)
	customersGroup.Get("/:id", customerHandler.GetSummary)
	customersGroup.Delete("/:id", customerHandler.Delete)
	memberships := protected.Group("/memberships")
	memberships.Post("/", customerHandler.SellMembership)
	memberships.Get("/", customerHandler.ListMemberships)
	memberships.Delete("/:id", customerHandler.CancelMembership)

	// Reportes, cortes de caja y gastos
	reportHandler := NewReportHandler(deps.ReportsUC, deps.CashCutPDF)
	protected.Get("/reports/financial", reportHandler.Financial)
	cashcuts := protected.Group("/cashcuts")
	cashcuts.Post("/", reportHandler.CreateCashCut)
	cashcuts.Get("/", reportHandler.ListCashCuts)
	cashcuts.Get("/:id/pdf", reportHandler.CashCutPDF)
	expenses := protected.Group("/expenses")
	expenses.Post("/", reportHandler.CreateExpense)
	expenses.Get("/", reportHandler.ListExpenses)
	expenses.Delete("/:id", reportHandler.DeleteExpense)

	// Usuarios (solo admin)
	usersGroup := protected.Group("/users", AdminOnly())
	usersGroup.Post("/", authHandler.CreateUser)
	usersGroup.Get("/", authHandler.ListUsers)
	usersGroup.Put("/:id/password", authHandler.ChangePassword)
	usersGroup.Delete("/:id", authHandler.DeleteUser)
}
