package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tritonops/admin-gateway/internal/observability"
)

// PingHandler responds to health probes with service state and auth stats.
type PingHandler struct {
	serviceName string
	version     string
	datacenter  string
	metrics     *observability.Metrics
}

// NewPingHandler returns a new handler instance.
func NewPingHandler(serviceName, version, datacenter string, metrics *observability.Metrics) *PingHandler {
	return &PingHandler{serviceName: serviceName, version: version, datacenter: datacenter, metrics: metrics}
}

// Ping handles GET /api/ping.
func (h *PingHandler) Ping(c *fiber.Ctx) error {
	response := fiber.Map{
		"service":    h.serviceName,
		"version":    h.version,
		"datacenter": h.datacenter,
		"services": fiber.Map{
			"ufds": true,
		},
		"time": time.Now().UTC().Format(time.RFC3339),
	}
	if h.metrics != nil {
		response["stats"] = h.metrics.Snapshot()
	}
	return c.JSON(response)
}
