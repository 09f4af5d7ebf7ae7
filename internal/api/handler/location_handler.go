package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fleetpulse/tracking-api/internal/core/domain"
	"github.com/fleetpulse/tracking-api/internal/core/ports"
)

// LocationHandler serves the latest known position per agent.
type LocationHandler struct {
	service ports.LocationService
}

func NewLocationHandler(service ports.LocationService) *LocationHandler {
	return &LocationHandler{service: service}
}

// Latest handles GET /api/agents/:agent_id/location.
//
// @Summary      Get an agent's latest known position
// @Tags         agents
// @Produce      json
// @Security     BearerAuth
// @Param        agent_id  path      string  true  "Agent id"
// @Success      200       {object}  agentLocationResponse
// @Failure      401       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /agents/{agent_id}/location [get]
func (h *LocationHandler) Latest(c echo.Context) error {
	agentID := c.Param("agent_id")

	sample, err := h.service.Latest(c.Request().Context(), agentID)
	if err != nil {
		if errors.Is(err, domain.ErrLocationNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "no recent location for agent"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, toAgentLocationResponse(sample))
}
