package router

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront.dev/shop/pkg/global"
	"storefront.dev/shop/pkg/models"
)

func (h *Handler) GetProducts(c *gin.Context) {
	page, err := strconv.Atoi(c.Query("pageNumber"))
	if err != nil {
		page = 1
	}

	result, err := h.Catalog.List(c.Request.Context(), c.Query("keyword"), c.Query("category"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(result))
}

func (h *Handler) GetProductByID(c *gin.Context) {
	id, ok := paramID(c, "id", "Product")
	if !ok {
		return
	}

	product, err := h.Catalog.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(product))
}

func (h *Handler) GetTopProducts(c *gin.Context) {
	products, err := h.Catalog.Top(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(products))
}

func (h *Handler) GetProductCategories(c *gin.Context) {
	categories, err := h.Catalog.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(categories))
}

func (h *Handler) GetProductRecommendations(c *gin.Context) {
	id, ok := paramID(c, "id", "Product")
	if !ok {
		return
	}

	products, err := h.Catalog.Recommendations(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(products))
}

func (h *Handler) CreateProduct(c *gin.Context) {
	product, err := h.Catalog.CreatePlaceholder(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, global.SuccessResponse(product))
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := paramID(c, "id", "Product")
	if !ok {
		return
	}

	var req models.ProductUpdate
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.Catalog.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(product))
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := paramID(c, "id", "Product")
	if !ok {
		return
	}

	if err := h.Catalog.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.MessageResponse(nil, "Product removed"))
}

func (h *Handler) CreateProductReview(c *gin.Context) {
	id, ok := paramID(c, "id", "Product")
	if !ok {
		return
	}

	var req models.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.Catalog.AddReview(c.Request.Context(), currentUser(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, global.MessageResponse(product, "Review added"))
}
