package router

import (
	"github.com/gin-gonic/gin"

	"github.com/resto/backend/internal/infrastructure/auth"
	"github.com/resto/backend/internal/interfaces/http/handler"
	"github.com/resto/backend/internal/interfaces/http/middleware"
)

// Handlers collects the HTTP handlers the API exposes.
type Handlers struct {
	Auth       *handler.AuthHandler
	Ingredient *handler.IngredientHandler
	Import     *handler.ImportHandler
	Export     *handler.ExportHandler
	Monitor    *handler.MonitorHandler
	Supplier   *handler.SupplierHandler
	Table      *handler.TableHandler
	System     *handler.SystemHandler
}

// Setup wires every API route onto the engine. Login, health and the
// system probes stay public; everything else requires a valid token and
// destructive operations additionally require the admin role.
func Setup(engine *gin.Engine, jwtService *auth.JWTService, h Handlers) {
	requireAuth := middleware.JWTAuth(jwtService)
	requireAdmin := middleware.RequireAdmin()

	engine.GET("/health", h.System.Health)

	r := NewRouter(engine, WithAPIVersion("v1"))

	systemRoutes := NewDomainGroup("system", "/system")
	systemRoutes.GET("/ping", h.System.Ping)
	systemRoutes.GET("/info", h.System.GetSystemInfo)
	r.Register(systemRoutes)

	authRoutes := NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", h.Auth.Login)
	authRoutes.POST("/register", requireAuth, requireAdmin, h.Auth.Register)
	authRoutes.GET("/me", requireAuth, h.Auth.Me)
	authRoutes.POST("/change-password", requireAuth, h.Auth.ChangePassword)
	r.Register(authRoutes)

	inventoryRoutes := NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.Use(requireAuth)

	inventoryRoutes.POST("/ingredients", h.Ingredient.Create)
	inventoryRoutes.GET("/ingredients", h.Ingredient.List)
	inventoryRoutes.GET("/ingredients/:id", h.Ingredient.GetByID)
	inventoryRoutes.PUT("/ingredients/:id", h.Ingredient.Update)
	inventoryRoutes.GET("/ingredients/:id/batches", h.Ingredient.Batches)
	inventoryRoutes.GET("/ingredients/:id/stock", h.Ingredient.Stock)
	inventoryRoutes.DELETE("/ingredients/:id", requireAdmin, h.Ingredient.Delete)
	inventoryRoutes.POST("/ingredients/:id/restore", requireAdmin, h.Ingredient.Restore)

	inventoryRoutes.POST("/imports", h.Import.Create)
	inventoryRoutes.GET("/imports", h.Import.List)
	inventoryRoutes.GET("/imports/:id", h.Import.GetByID)
	inventoryRoutes.DELETE("/imports/:id", requireAdmin, h.Import.Delete)
	inventoryRoutes.POST("/imports/:id/restore", requireAdmin, h.Import.Restore)

	inventoryRoutes.POST("/exports", h.Export.Create)
	inventoryRoutes.GET("/exports", h.Export.List)
	inventoryRoutes.GET("/exports/:id", h.Export.GetByID)
	inventoryRoutes.DELETE("/exports/:id", requireAdmin, h.Export.Delete)
	inventoryRoutes.POST("/exports/:id/restore", requireAdmin, h.Export.Restore)

	inventoryRoutes.GET("/monitor/expiring", h.Monitor.Expiring)
	inventoryRoutes.GET("/monitor/low-stock", h.Monitor.LowStock)
	r.Register(inventoryRoutes)

	partnerRoutes := NewDomainGroup("partner", "/partner")
	partnerRoutes.Use(requireAuth)
	partnerRoutes.POST("/suppliers", h.Supplier.Create)
	partnerRoutes.GET("/suppliers", h.Supplier.List)
	partnerRoutes.GET("/suppliers/:id", h.Supplier.GetByID)
	partnerRoutes.PUT("/suppliers/:id", h.Supplier.Update)
	partnerRoutes.DELETE("/suppliers/:id", requireAdmin, h.Supplier.Delete)
	partnerRoutes.POST("/suppliers/:id/restore", requireAdmin, h.Supplier.Restore)
	r.Register(partnerRoutes)

	diningRoutes := NewDomainGroup("dining", "/dining")
	diningRoutes.Use(requireAuth)
	diningRoutes.POST("/tables", h.Table.Create)
	diningRoutes.GET("/tables", h.Table.List)
	diningRoutes.GET("/tables/:id", h.Table.GetByID)
	diningRoutes.PATCH("/tables/:id/status", h.Table.ChangeStatus)
	diningRoutes.GET("/tables/:id/qrcode", h.Table.QRCode)
	diningRoutes.DELETE("/tables/:id", requireAdmin, h.Table.Delete)
	r.Register(diningRoutes)

	r.Setup()
}
