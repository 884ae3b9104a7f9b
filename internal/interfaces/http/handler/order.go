package handler

import (
	"github.com/gin-gonic/gin"

	appordering "github.com/vendora/backend/internal/application/ordering"
	"github.com/vendora/backend/internal/interfaces/http/dto"
	"github.com/vendora/backend/internal/interfaces/http/middleware"
)

// OrderHandler is the vendor-facing surface over the order partitions
// written by webhook ingestion.
type OrderHandler struct {
	BaseHandler
	orders *appordering.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *appordering.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// List handles GET /vendor/orders
func (h *OrderHandler) List(c *gin.Context) {
	vendorID, ok := middleware.GetVendorID(c)
	if !ok {
		h.Forbidden(c, "Vendor identity required")
		return
	}

	req, err := bindListRequest(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filters := make(map[string]interface{})
	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}

	orders, err := h.orders.ListByVendor(c.Request.Context(), vendorID, toFilter(req, filters))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewVendorOrderListResponse(orders))
}

// Get handles GET /vendor/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	vendorID, ok := middleware.GetVendorID(c)
	if !ok {
		h.Forbidden(c, "Vendor identity required")
		return
	}
	orderID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orders.Get(c.Request.Context(), orderID, vendorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewVendorOrderResponse(order))
}

// Fulfill handles POST /vendor/orders/:id/fulfill
func (h *OrderHandler) Fulfill(c *gin.Context) {
	vendorID, ok := middleware.GetVendorID(c)
	if !ok {
		h.Forbidden(c, "Vendor identity required")
		return
	}
	orderID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orders.Fulfill(c.Request.Context(), orderID, vendorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewVendorOrderResponse(order))
}

// Cancel handles POST /vendor/orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	vendorID, ok := middleware.GetVendorID(c)
	if !ok {
		h.Forbidden(c, "Vendor identity required")
		return
	}
	orderID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orders.Cancel(c.Request.Context(), orderID, vendorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.NewVendorOrderResponse(order))
}
