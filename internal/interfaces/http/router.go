package http

import (
	"github.com/gofiber/fiber/v2"

	appinventory "github.com/jhoicas/retail-backoffice/internal/application/inventory"
	"github.com/jhoicas/retail-backoffice/internal/application/purchasing"
	"github.com/jhoicas/retail-backoffice/pkg/logger"
)

// Roles con permiso de escritura sobre inventario y compras.
var writerRoles = []string{"admin", "bodeguero"}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger        *appinventory.StockLedger
	BulkAdjust    *appinventory.BulkAdjustmentUseCase
	LowStock      *appinventory.LowStockUseCase
	Batches       *appinventory.BatchTracker
	PurchaseOrder *purchasing.PurchaseOrderUseCase
	Receiving     *purchasing.ReceivingUseCase
	OrderPDF      *purchasing.PDFUseCase
	JWTSecret     string
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log.Component("http")
	writer := RequireRole(writerRoles...)

	// Rutas protegidas (requieren Bearer Token)
	protected := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Inventario
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.BulkAdjust, deps.LowStock, deps.Batches, log)
	invGroup.Post("/movements", writer, inventoryHandler.RecordMovement)
	invGroup.Get("/variants/:id/movements", inventoryHandler.History)
	invGroup.Post("/adjustments/bulk", writer, inventoryHandler.BulkAdjust)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)
	invGroup.Get("/inputs/:id/batches", inventoryHandler.Batches)

	// Órdenes de compra
	orders := protected.Group("/purchase-orders")
	orderHandler := NewPurchaseOrderHandler(deps.PurchaseOrder, deps.Receiving, deps.OrderPDF, log)
	orders.Post("/", writer, orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", writer, orderHandler.Update)
	orders.Delete("/:id", writer, orderHandler.Delete)
	orders.Patch("/:id/status", writer, orderHandler.Transition)
	orders.Post("/:id/receive", writer, orderHandler.Receive)
	orders.Get("/:id/pdf", orderHandler.PDF)
}
