package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tritonops/admin-gateway/internal/upstream"
	apperrors "github.com/tritonops/admin-gateway/pkg/util"
)

// InventoryHandler proxies compute node and network routes.
type InventoryHandler struct {
	cnapi *upstream.CNAPI
	napi  *upstream.NAPI
}

// NewInventoryHandler constructs handler.
func NewInventoryHandler(cnapi *upstream.CNAPI, napi *upstream.NAPI) *InventoryHandler {
	return &InventoryHandler{cnapi: cnapi, napi: napi}
}

// ListServers handles GET /api/servers.
func (h *InventoryHandler) ListServers(c *fiber.Ctx) error {
	servers, err := h.cnapi.ListServers(c.UserContext())
	if err != nil {
		return apperrors.NewUpstreamError("cnapi", err)
	}
	return c.JSON(servers)
}

// GetServer handles GET /api/servers/:uuid.
func (h *InventoryHandler) GetServer(c *fiber.Ctx) error {
	server, err := h.cnapi.GetServer(c.UserContext(), c.Params("uuid"))
	if err != nil {
		return apperrors.NewUpstreamError("cnapi", err)
	}
	return c.JSON(server)
}

// ListNetworks handles GET /api/networks.
func (h *InventoryHandler) ListNetworks(c *fiber.Ctx) error {
	networks, err := h.napi.ListNetworks(c.UserContext())
	if err != nil {
		return apperrors.NewUpstreamError("napi", err)
	}
	return c.JSON(networks)
}

// GetNetwork handles GET /api/networks/:uuid.
func (h *InventoryHandler) GetNetwork(c *fiber.Ctx) error {
	network, err := h.napi.GetNetwork(c.UserContext(), c.Params("uuid"))
	if err != nil {
		return apperrors.NewUpstreamError("napi", err)
	}
	return c.JSON(network)
}
