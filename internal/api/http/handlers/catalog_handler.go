package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/tritonops/admin-gateway/internal/upstream"
	apperrors "github.com/tritonops/admin-gateway/pkg/util"
)

// CatalogHandler proxies package and image catalog routes.
type CatalogHandler struct {
	papi   *upstream.PAPI
	imgapi *upstream.IMGAPI
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(papi *upstream.PAPI, imgapi *upstream.IMGAPI) *CatalogHandler {
	return &CatalogHandler{papi: papi, imgapi: imgapi}
}

// ListPackages handles GET /api/packages.
func (h *CatalogHandler) ListPackages(c *fiber.Ctx) error {
	packages, err := h.papi.ListPackages(c.UserContext())
	if err != nil {
		return apperrors.NewUpstreamError("papi", err)
	}
	return c.JSON(packages)
}

// GetPackage handles GET /api/packages/:uuid.
func (h *CatalogHandler) GetPackage(c *fiber.Ctx) error {
	pkg, err := h.papi.GetPackage(c.UserContext(), c.Params("uuid"))
	if err != nil {
		return apperrors.NewUpstreamError("papi", err)
	}
	return c.JSON(pkg)
}

// CreatePackage handles POST /api/packages (admin only).
func (h *CatalogHandler) CreatePackage(c *fiber.Ctx) error {
	var spec map[string]any
	if err := c.BodyParser(&spec); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	pkg, err := h.papi.CreatePackage(c.UserContext(), spec)
	if err != nil {
		return apperrors.NewUpstreamError("papi", err)
	}
	return c.Status(http.StatusCreated).JSON(pkg)
}

// UpdatePackage handles PATCH /api/packages/:uuid (admin only).
func (h *CatalogHandler) UpdatePackage(c *fiber.Ctx) error {
	var changes map[string]any
	if err := c.BodyParser(&changes); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	pkg, err := h.papi.UpdatePackage(c.UserContext(), c.Params("uuid"), changes)
	if err != nil {
		return apperrors.NewUpstreamError("papi", err)
	}
	return c.JSON(pkg)
}

// ListImages handles GET /api/images.
func (h *CatalogHandler) ListImages(c *fiber.Ctx) error {
	images, err := h.imgapi.ListImages(c.UserContext())
	if err != nil {
		return apperrors.NewUpstreamError("imgapi", err)
	}
	return c.JSON(images)
}

// GetImage handles GET /api/images/:uuid.
func (h *CatalogHandler) GetImage(c *fiber.Ctx) error {
	image, err := h.imgapi.GetImage(c.UserContext(), c.Params("uuid"))
	if err != nil {
		return apperrors.NewUpstreamError("imgapi", err)
	}
	return c.JSON(image)
}

// UpdateImage handles PATCH /api/images/:uuid (admin only).
func (h *CatalogHandler) UpdateImage(c *fiber.Ctx) error {
	var changes map[string]any
	if err := c.BodyParser(&changes); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	image, err := h.imgapi.UpdateImage(c.UserContext(), c.Params("uuid"), changes)
	if err != nil {
		return apperrors.NewUpstreamError("imgapi", err)
	}
	return c.JSON(image)
}
