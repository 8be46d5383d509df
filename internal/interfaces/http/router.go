package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/slip"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ItemUC      *usecase.ItemUseCase
	WarehouseUC *usecase.WarehouseUseCase
	LocationUC  *usecase.StorageLocationUseCase
	StockOps    *stock.OperationsUseCase
	StockQuery  *stock.QueryUseCase
	SlipUC      *slip.UseCase
	SlipPDF     *slip.PDFUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Liveness + métricas (público)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Solo admin y bodeguero mutan inventario; consulta es de solo lectura.
	canWrite := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	// Items (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", canWrite, itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", canWrite, itemHandler.Update)
	items.Delete("/:id", RequireRole(entity.RoleAdmin), itemHandler.Delete)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", canWrite, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", canWrite, warehouseHandler.Update)

	// Storage locations (protegido)
	locations := protected.Group("/locations")
	locationHandler := NewStorageLocationHandler(deps.LocationUC)
	locations.Post("/", canWrite, locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/code/:code", locationHandler.GetByCode)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", canWrite, locationHandler.Update)

	// Stock: operaciones y consultas (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockOps, deps.StockQuery)
	stockGroup.Post("/inbound", canWrite, stockHandler.Inbound)
	stockGroup.Post("/outbound", canWrite, stockHandler.Outbound)
	stockGroup.Post("/transfer", canWrite, stockHandler.Transfer)
	stockGroup.Post("/freeze", canWrite, stockHandler.Freeze)
	stockGroup.Post("/scrap", canWrite, stockHandler.Scrap)
	stockGroup.Post("/unfreeze", canWrite, stockHandler.Unfreeze)
	stockGroup.Get("/", stockHandler.GetStock)
	stockGroup.Get("/low", stockHandler.LowStocks)
	stockGroup.Get("/zero", stockHandler.ZeroStocks)
	stockGroup.Get("/location-codes", stockHandler.Locations)
	stockGroup.Get("/items/:id", stockHandler.StocksByItem)
	stockGroup.Get("/items/:id/total", stockHandler.TotalStock)
	stockGroup.Get("/locations/:code", stockHandler.StocksByLocation)

	// Movimientos (protegido, solo lectura)
	movements := protected.Group("/movements")
	movements.Get("/recent", stockHandler.RecentMovements)
	movements.Get("/items/:id", stockHandler.MovementsByItem)
	movements.Get("/locations/:code", stockHandler.MovementsByLocation)
	movements.Get("/slips/:id", stockHandler.MovementsBySlip)

	// Slips (protegido)
	slips := protected.Group("/slips")
	slipHandler := NewSlipHandler(deps.SlipUC, deps.SlipPDF)
	slips.Post("/", canWrite, slipHandler.Create)
	slips.Get("/", slipHandler.List)
	slips.Get("/count", slipHandler.Count)
	slips.Get("/:id", slipHandler.GetByID)
	slips.Get("/:id/pdf", slipHandler.DownloadPDF)
	slips.Post("/:id/complete", canWrite, slipHandler.Complete)
	slips.Post("/:id/cancel", canWrite, slipHandler.Cancel)
	slips.Post("/:id/redispatch", canWrite, slipHandler.Redispatch)
}
