package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fleetpulse/tracking-api/internal/api/metrics"
	"github.com/fleetpulse/tracking-api/internal/core/domain"
	"github.com/fleetpulse/tracking-api/internal/core/ports"
)

// OrderHandler handles HTTP requests for order lifecycle operations.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Assigned handles GET /api/orders/assigned/:agent_id.
//
// @Summary      List orders assigned to an agent
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        agent_id  path      string  true  "Agent id"
// @Success      200       {array}   orderResponse
// @Failure      401       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /orders/assigned/{agent_id} [get]
func (h *OrderHandler) Assigned(c echo.Context) error {
	agentID := c.Param("agent_id")

	orders, err := h.service.AssignedOrders(c.Request().Context(), agentID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}

	// toOrderListResponse never returns nil, so an agent with no orders gets
	// an empty JSON array rather than null.
	return c.JSON(http.StatusOK, toOrderListResponse(orders))
}

// Get handles GET /api/orders/:order_id.
//
// @Summary      Get an order by id
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        order_id  path      string  true  "Order id"
// @Success      200       {object}  orderResponse
// @Failure      401       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /orders/{order_id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	orderID := c.Param("order_id")

	order, err := h.service.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// Start handles PUT /api/orders/:order_id/start.
//
// @Summary      Start a pending order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        order_id  path      string  true  "Order id"
// @Success      200       {object}  messageResponse
// @Failure      401       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Failure      409       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /orders/{order_id}/start [put]
func (h *OrderHandler) Start(c echo.Context) error {
	orderID := c.Param("order_id")

	if err := h.service.Start(c.Request().Context(), orderID); err != nil {
		return transitionError(c, err)
	}

	metrics.OrderTransitionsTotal.WithLabelValues(string(domain.StatusInProgress)).Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Order started successfully"})
}

// Complete handles PUT /api/orders/:order_id/complete.
//
// @Summary      Complete an in-progress order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        order_id  path      string  true  "Order id"
// @Success      200       {object}  messageResponse
// @Failure      401       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Failure      409       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /orders/{order_id}/complete [put]
func (h *OrderHandler) Complete(c echo.Context) error {
	orderID := c.Param("order_id")

	if err := h.service.Complete(c.Request().Context(), orderID); err != nil {
		return transitionError(c, err)
	}

	metrics.OrderTransitionsTotal.WithLabelValues(string(domain.StatusCompleted)).Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Order completed successfully"})
}

// transitionError maps lifecycle failures: a missing order is 404, an order
// in the wrong state is 409.
func transitionError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "order not found"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
