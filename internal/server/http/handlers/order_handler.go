package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peerbay/marketplace/internal/server/http/dto"
)

// OrderHandler manages order ledger endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/market/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	buyerID := CurrentAccountID(c)

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), buyerID, req.ProductID, req.Quantity)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusCreated, dto.CreateOrderResponse{ID: order.ID})
}

// Ship handles POST /api/market/orders/:id/ship.
func (h *OrderHandler) Ship(c *gin.Context) {
	h.transition(c, h.facade.ShipOrder)
}

// Receive handles POST /api/market/orders/:id/receive.
func (h *OrderHandler) Receive(c *gin.Context) {
	h.transition(c, h.facade.ReceiveOrder)
}

// RequestCancel handles POST /api/market/orders/:id/cancel/request.
func (h *OrderHandler) RequestCancel(c *gin.Context) {
	h.transition(c, h.facade.RequestCancel)
}

// AcceptCancel handles POST /api/market/orders/:id/cancel/accept.
func (h *OrderHandler) AcceptCancel(c *gin.Context) {
	h.transition(c, h.facade.AcceptCancel)
}

func (h *OrderHandler) transition(c *gin.Context, op func(ctx context.Context, callerID int64, orderID uint64) error) {
	callerID := CurrentAccountID(c)
	orderID, ok := pathUint64(c, "id")
	if !ok {
		return
	}

	if err := op(c.Request.Context(), callerID, orderID); err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.Status(http.StatusOK)
}

// State handles GET /api/market/orders/:id/state.
func (h *OrderHandler) State(c *gin.Context) {
	orderID, ok := pathUint64(c, "id")
	if !ok {
		return
	}

	state, err := h.facade.OrderState(c.Request.Context(), orderID)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusOK, dto.OrderStateResponse{ID: orderID, State: string(state)})
}

// Count handles GET /api/market/accounts/:account/orders/count.
func (h *OrderHandler) Count(c *gin.Context) {
	accountID, ok := pathInt64(c, "account")
	if !ok {
		return
	}

	count, err := h.facade.OrdersCount(c.Request.Context(), accountID)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusOK, dto.OrdersCountResponse{Account: accountID, Count: count})
}
