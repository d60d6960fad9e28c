package http

import (
	"github.com/gofiber/fiber/v2"
	appalloc "github.com/jhoicas/fulfillment-api/internal/application/allocation"
	"github.com/jhoicas/fulfillment-api/internal/application/auth"
	"github.com/jhoicas/fulfillment-api/internal/application/inventory"
	"github.com/jhoicas/fulfillment-api/internal/application/orders"
	"github.com/jhoicas/fulfillment-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrderImportUC     *orders.ImportUseCase
	InventoryImportUC *inventory.ImportUseCase
	RecomputeUC       *appalloc.RecomputeUseCase
	QueryUC           *appalloc.QueryUseCase
	PushUC            *appalloc.PushUseCase
	PickTicketUC      *appalloc.PickTicketUseCase
	AuthUC            *auth.AuthUseCase
	JWTSecret         string
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

	// Los imports y mutaciones del ledger quedan fuera del alcance del operador:
	// el operador consulta, el bodeguero y el admin operan.
	operate := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	orderHandler := NewOrderHandler(deps.OrderImportUC)
	ordersGroup := protected.Group("/orders")
	ordersGroup.Post("/import", operate, orderHandler.ImportOpen)
	ordersGroup.Post("/import-by-ids", operate, orderHandler.ImportByIDs)
	ordersGroup.Get("/:id/lines", orderHandler.ListLines)

	inventoryHandler := NewInventoryHandler(deps.InventoryImportUC)
	invGroup := protected.Group("/inventory")
	invGroup.Post("/import", operate, inventoryHandler.Import)
	invGroup.Get("/receipts", inventoryHandler.ListAvailable)

	allocationHandler := NewAllocationHandler(deps.RecomputeUC, deps.QueryUC, deps.PushUC, deps.PickTicketUC)
	allocGroup := protected.Group("/allocations")
	allocGroup.Post("/recompute", operate, allocationHandler.Recompute)
	ordersGroup.Get("/:id/allocations", allocationHandler.GetByOrder)
	ordersGroup.Post("/:id/allocations/push", operate, allocationHandler.Push)
	ordersGroup.Get("/:id/pick-ticket", allocationHandler.PickTicket)
}
