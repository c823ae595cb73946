package router

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront.dev/shop/pkg/global"
	"storefront.dev/shop/pkg/models"
)

func (h *Handler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.Orders.Create(c.Request.Context(), currentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, global.SuccessResponse(order))
}

func (h *Handler) GetOrders(c *gin.Context) {
	orders, err := h.Orders.All(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(orders))
}

func (h *Handler) GetMyOrders(c *gin.Context) {
	orders, err := h.Orders.Mine(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(orders))
}

func (h *Handler) GetOrderByID(c *gin.Context) {
	id, ok := paramID(c, "id", "Order")
	if !ok {
		return
	}

	order, err := h.Orders.Get(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(order))
}

func (h *Handler) UpdateOrderToPaid(c *gin.Context) {
	id, ok := paramID(c, "id", "Order")
	if !ok {
		return
	}

	var req models.PayOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.Orders.MarkPaid(c.Request.Context(), currentUser(c), id, req.ToResult())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(order))
}

func (h *Handler) UpdateOrderToDelivered(c *gin.Context) {
	id, ok := paramID(c, "id", "Order")
	if !ok {
		return
	}

	order, err := h.Orders.MarkDelivered(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(order))
}

func (h *Handler) CancelOrder(c *gin.Context) {
	id, ok := paramID(c, "id", "Order")
	if !ok {
		return
	}

	order, err := h.Orders.Cancel(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(order))
}

func (h *Handler) ExportOrdersCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.Orders.ExportCSV(c.Request.Context(), &buf); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="orders.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func (h *Handler) GetOrderInvoice(c *gin.Context) {
	id, ok := paramID(c, "id", "Order")
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.Orders.Invoice(c.Request.Context(), currentUser(c), id, &buf); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", id.Hex()))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
