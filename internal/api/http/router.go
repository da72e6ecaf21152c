package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tritonops/admin-gateway/internal/api/http/handlers"
	"github.com/tritonops/admin-gateway/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Auth      *handlers.AuthHandler
	Ping      *handlers.PingHandler
	VMs       *handlers.VMsHandler
	Inventory *handlers.InventoryHandler
	Catalog   *handlers.CatalogHandler
	Gate      *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Every route below the gate requires a
// valid bearer token; mutating VM routes additionally require admin.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group("/api")

	api.Post("/auth", cfg.Auth.Login)
	api.Delete("/auth", cfg.Auth.Logout)
	api.Get("/auth", cfg.Gate.Handle, cfg.Auth.Me)

	api.Get("/ping", cfg.Ping.Ping)

	protected := api.Group("", cfg.Gate.Handle)

	protected.Get("/vms", cfg.VMs.List)
	protected.Get("/vms/:uuid", cfg.VMs.Get)
	protected.Post("/vms", auth.RequireAdmin(), cfg.VMs.Create)
	protected.Delete("/vms/:uuid", auth.RequireAdmin(), cfg.VMs.Delete)
	protected.Post("/vms/:uuid/action", auth.RequireAdmin(), cfg.VMs.Action)

	protected.Get("/servers", cfg.Inventory.ListServers)
	protected.Get("/servers/:uuid", cfg.Inventory.GetServer)
	protected.Get("/networks", cfg.Inventory.ListNetworks)
	protected.Get("/networks/:uuid", cfg.Inventory.GetNetwork)

	protected.Get("/packages", cfg.Catalog.ListPackages)
	protected.Get("/packages/:uuid", cfg.Catalog.GetPackage)
	protected.Post("/packages", auth.RequireAdmin(), cfg.Catalog.CreatePackage)
	protected.Patch("/packages/:uuid", auth.RequireAdmin(), cfg.Catalog.UpdatePackage)
	protected.Get("/images", cfg.Catalog.ListImages)
	protected.Get("/images/:uuid", cfg.Catalog.GetImage)
	protected.Patch("/images/:uuid", auth.RequireAdmin(), cfg.Catalog.UpdateImage)
}
