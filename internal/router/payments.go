package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront.dev/shop/pkg/global"
	"storefront.dev/shop/pkg/models"
	"storefront.dev/shop/pkg/payment"
)

func (h *Handler) CreatePaymentOrder(c *gin.Context) {
	var req models.CreatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.Payments.CreateOrder(c.Request.Context(), currentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(order))
}

// PaymentNotification is called by the gateway, not by users, so it carries
// no bearer token; the notification signature authenticates it.
func (h *Handler) PaymentNotification(c *gin.Context) {
	var n payment.Notification
	if !bindJSON(c, &n) {
		return
	}

	order, err := h.Payments.HandleNotification(c.Request.Context(), &n)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.MessageResponse(order, "Notification processed"))
}

func (h *Handler) GetPaymentConfig(c *gin.Context) {
	c.JSON(http.StatusOK, global.SuccessResponse(h.Payments.Config()))
}
