package router

import (
	"context"
	"errors"
	"net/http"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/v2/bson"

	"storefront.dev/shop/internal/services"
	"storefront.dev/shop/pkg/auth"
	"storefront.dev/shop/pkg/global"
)

// Handler carries the services the HTTP layer talks to.
type Handler struct {
	Catalog   *services.CatalogService
	Orders    *services.OrderService
	Users     *services.UserService
	Admin     *services.AdminService
	Payments  *services.PaymentService
	Carts     *services.CartService
	Providers map[string]auth.Provider

	FrontendURL  string
	SecureCookie bool

	// Checks named dependency -> ping, reported by the health endpoint.
	Checks map[string]func(ctx context.Context) error
}

func (h *Handler) HealthCheck(c *gin.Context) {
	status := map[string]string{"status": "OK"}
	healthy := true
	for name, check := range h.Checks {
		if err := check(c.Request.Context()); err != nil {
			global.Log.WithError(err).WithField("dependency", name).Error("Health check failed")
			status[name] = "Disconnected"
			healthy = false
			continue
		}
		status[name] = "Connected"
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, global.APIResponse{Success: false, Data: status, Message: "Dependency unavailable"})
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(status))
}

// respondError writes the error envelope. Server errors are logged with the
// underlying cause and answered with a generic message.
func respondError(c *gin.Context, err error) {
	status := global.StatusFor(err)
	if status >= http.StatusInternalServerError {
		global.Log.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
	}
	c.JSON(status, global.ResponseFor(err))
}

// bindJSON binds the request body into req and answers 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request body", bindingErrors(err)))
		return false
	}
	return true
}

func bindingErrors(err error) []global.ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []global.ValidationError{{Field: "body", Message: err.Error(), Code: "json_parse_error"}}
	}

	out := make([]global.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		field := lowerFirst(fe.Field())
		out = append(out, global.ValidationError{
			Field:   field,
			Message: field + " failed on the '" + fe.Tag() + "' rule",
			Code:    fe.Tag(),
		})
	}
	return out
}

// paramID parses the named path parameter as an ObjectID. An invalid id is
// reported as not found, the same as an id that does not exist.
func paramID(c *gin.Context, name, resource string) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusNotFound, global.ErrorResponse(resource+" not found", []global.ValidationError{
			{Field: name, Message: "Invalid id format", Code: "invalid_format"},
		}))
		return bson.ObjectID{}, false
	}
	return id, true
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
