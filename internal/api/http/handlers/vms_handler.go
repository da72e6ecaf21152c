package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/tritonops/admin-gateway/internal/upstream"
	apperrors "github.com/tritonops/admin-gateway/pkg/util"
)

// VMsHandler proxies VM inventory and lifecycle routes to VMAPI.
type VMsHandler struct {
	vmapi *upstream.VMAPI
}

// NewVMsHandler constructs handler.
func NewVMsHandler(vmapi *upstream.VMAPI) *VMsHandler {
	return &VMsHandler{vmapi: vmapi}
}

// List handles GET /api/vms.
func (h *VMsHandler) List(c *fiber.Ctx) error {
	vms, err := h.vmapi.ListVMs(c.UserContext())
	if err != nil {
		return apperrors.NewUpstreamError("vmapi", err)
	}
	return c.JSON(vms)
}

// Get handles GET /api/vms/:uuid.
func (h *VMsHandler) Get(c *fiber.Ctx) error {
	vm, err := h.vmapi.GetVM(c.UserContext(), c.Params("uuid"))
	if err != nil {
		return apperrors.NewUpstreamError("vmapi", err)
	}
	return c.JSON(vm)
}

// Create handles POST /api/vms (admin only).
func (h *VMsHandler) Create(c *fiber.Ctx) error {
	var spec map[string]any
	if err := c.BodyParser(&spec); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	result, err := h.vmapi.CreateVM(c.UserContext(), spec)
	if err != nil {
		return apperrors.NewUpstreamError("vmapi", err)
	}
	return c.Status(http.StatusCreated).JSON(result)
}

// Delete handles DELETE /api/vms/:uuid (admin only).
func (h *VMsHandler) Delete(c *fiber.Ctx) error {
	if err := h.vmapi.DeleteVM(c.UserContext(), c.Params("uuid")); err != nil {
		return apperrors.NewUpstreamError("vmapi", err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Action handles POST /api/vms/:uuid/action (admin only).
func (h *VMsHandler) Action(c *fiber.Ctx) error {
	action := c.Query("action")
	if action == "" {
		return fiber.NewError(http.StatusBadRequest, "action query parameter required")
	}
	result, err := h.vmapi.VMAction(c.UserContext(), c.Params("uuid"), action)
	if err != nil {
		return apperrors.NewUpstreamError("vmapi", err)
	}
	return c.JSON(result)
}
