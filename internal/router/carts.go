package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"storefront.dev/shop/pkg/global"
	"storefront.dev/shop/pkg/models"
)

func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.Carts.Get(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if !bindJSON(c, &req) {
		return
	}

	productID, err := bson.ObjectIDFromHex(req.Product)
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid product id", []global.ValidationError{
			{Field: "product", Message: "Invalid id format", Code: "invalid_format"},
		}))
		return
	}

	cart, err := h.Carts.AddItem(c.Request.Context(), c.Param("sessionId"), productID, req.Qty)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	productID, ok := paramID(c, "productId", "Product")
	if !ok {
		return
	}

	cart, err := h.Carts.RemoveItem(c.Request.Context(), c.Param("sessionId"), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func (h *Handler) SaveShippingAddress(c *gin.Context) {
	var req models.ShippingAddress
	if !bindJSON(c, &req) {
		return
	}

	cart, err := h.Carts.SaveShippingAddress(c.Request.Context(), c.Param("sessionId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func (h *Handler) SavePaymentMethod(c *gin.Context) {
	var req models.PaymentMethodRequest
	if !bindJSON(c, &req) {
		return
	}

	cart, err := h.Carts.SavePaymentMethod(c.Request.Context(), c.Param("sessionId"), req.PaymentMethod)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func (h *Handler) ClearCart(c *gin.Context) {
	cart, err := h.Carts.Clear(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func (h *Handler) Checkout(c *gin.Context) {
	order, err := h.Carts.Checkout(c.Request.Context(), currentUser(c), c.Param("sessionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, global.SuccessResponse(order))
}
