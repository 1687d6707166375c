// Package web serves the read-only VLAN dashboard.
package web

import (
	"github.com/labstack/echo/v4"

	"evalgo.org/vlanreg/internal/registry"
)

// Handler handles web UI requests.
type Handler struct {
	registry *registry.Registry
}

// NewHandler creates a new web handler.
func NewHandler(reg *registry.Registry) *Handler {
	return &Handler{registry: reg}
}

// Dashboard renders the VLAN dashboard.
func (h *Handler) Dashboard(c echo.Context) error {
	vlans, _ := h.registry.List()
	lo, hi := h.registry.Bounds()

	return Render(c, Dashboard(DashboardData{
		Health: h.registry.Health(),
		VLANs:  vlans,
		MinID:  lo,
		MaxID:  hi,
	}))
}
