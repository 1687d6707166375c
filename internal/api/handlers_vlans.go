package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"evalgo.org/vlanreg/internal/metrics"
	"evalgo.org/vlanreg/internal/registry"
)

// listVLANs handles GET /vlans
// @Summary List VLANs
// @Description Returns every registered VLAN ordered by ID
// @Tags vlans
// @Produce json
// @Success 200 {object} VLANsResponse "Registered VLANs"
// @Router /vlans [get]
func (s *Server) listVLANs(c echo.Context) error {
	vlans, total := s.registry.List()

	return c.JSON(http.StatusOK, VLANsResponse{
		TotalVLANs: total,
		Count:      total,
		VLANs:      vlans,
	})
}

// getVLAN handles GET /vlans/:id
// @Summary Get a VLAN
// @Description Returns a single registered VLAN
// @Tags vlans
// @Produce json
// @Param id path int true "VLAN ID"
// @Success 200 {object} models.VLAN "VLAN details"
// @Failure 404 {object} APIError "VLAN not registered"
// @Router /vlans/{id} [get]
func (s *Server) getVLAN(c echo.Context) error {
	param := c.Param("id")
	id, err := strconv.Atoi(param)
	if err != nil {
		apiErr := NotFoundError("VLAN", param)
		apiErr.Details = "VLAN ID must be an integer"
		return apiErr
	}

	vlan, err := s.registry.Get(id)
	if errors.Is(err, registry.ErrNotFound) {
		return NotFoundError("VLAN", param)
	}
	if err != nil {
		return registryError(err)
	}

	return c.JSON(http.StatusOK, vlan)
}

// createVLAN handles POST /vlans
// @Summary Register a VLAN
// @Description Registers a VLAN ID between 2 and 4094. The name defaults to VLAN_<id>
// @Tags vlans
// @Accept json
// @Produce json
// @Param vlan body registry.CreateRequest true "VLAN to register"
// @Success 201 {object} CreateVLANResponse "VLAN created"
// @Failure 400 {object} APIError "id missing, not an integer, or out of range"
// @Failure 409 {object} APIError "VLAN already registered"
// @Failure 415 {object} APIError "Body is not a JSON object"
// @Router /vlans [post]
func (s *Server) createVLAN(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		return BadRequestError("Invalid request", "failed to read request body")
	}

	req, err := registry.DecodeCreateRequest(body)
	if err != nil {
		s.metrics.RecordCreate(metrics.ResultInvalid)
		return registryError(err)
	}

	vlan, total, err := s.registry.Create(req)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrConflict):
			s.metrics.RecordCreate(metrics.ResultConflict)
		case errors.Is(err, registry.ErrOutOfRange):
			s.metrics.RecordCreate(metrics.ResultOutOfRange)
		case errors.Is(err, registry.ErrInvalidType):
			s.metrics.RecordCreate(metrics.ResultInvalid)
		default:
			s.metrics.RecordCreate(metrics.ResultInternalFail)
		}
		return registryError(err)
	}

	s.metrics.RecordCreate(metrics.ResultCreated)
	s.logger.Info("vlan created",
		zap.Int("id", vlan.ID),
		zap.String("name", vlan.Name),
		zap.Int("total_vlans", total),
	)

	return c.JSON(http.StatusCreated, CreateVLANResponse{
		Message:    "VLAN created successfully",
		VLAN:       vlan,
		TotalVLANs: total,
	})
}
