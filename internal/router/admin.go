package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront.dev/shop/pkg/global"
)

func (h *Handler) GetSummary(c *gin.Context) {
	summary, err := h.Admin.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(summary))
}

func (h *Handler) GetSalesOverTime(c *gin.Context) {
	series, err := h.Admin.SalesOverTime(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(series))
}

func (h *Handler) GetInsights(c *gin.Context) {
	report, err := h.Admin.Insights(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(report))
}
