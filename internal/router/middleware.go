package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront.dev/shop/internal/services"
	"storefront.dev/shop/pkg/global"
	"storefront.dev/shop/pkg/models"
)

const userKey = "user"

// RequestLogger logs one line per request through the shared logrus logger.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := global.Log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		})
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request handled")
		}
	}
}

// Protect requires a valid bearer token and stores the user in the context.
func Protect(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, global.ErrorResponse("Not authorized, no token", nil))
			return
		}

		user, err := users.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(global.StatusFor(err), global.ResponseFor(err))
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// Admin must run after Protect.
func Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, global.ErrorResponse("Not authorized as an admin", nil))
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	value, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}
