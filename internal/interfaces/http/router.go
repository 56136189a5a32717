package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/auth"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/application/reports"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	SupplierUC    *usecase.SupplierUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	TransactionUC *inventory.TransactionUseCase
	ReportUC      *reports.ReportUseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	// Transacciones y stock (protegido)
	transactionHandler := NewTransactionHandler(deps.TransactionUC)
	transactions := protected.Group("/transactions")
	transactions.Post("/purchases", transactionHandler.RecordPurchase)
	transactions.Post("/sales", transactionHandler.RecordSale)
	transactions.Get("/", transactionHandler.List)

	// Stock y dashboard (protegido)
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/stock", transactionHandler.GetQuantity)
	protected.Get("/stock/levels", reportHandler.StockView)
	protected.Get("/dashboard", reportHandler.Dashboard)

	// Reports (protegido)
	reportsGroup := protected.Group("/reports")
	reportsGroup.Get("/low-stock", reportHandler.LowStock)
	reportsGroup.Get("/low-stock/pdf", reportHandler.LowStockPDF)
	reportsGroup.Get("/categories", reportHandler.Categories)

	// Admin (protegido + rol admin)
	admin := protected.Group("/admin", RequireRole(entity.RoleAdmin))
	admin.Post("/stock/rebuild", transactionHandler.RebuildStock)
}
