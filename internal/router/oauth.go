package router

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront.dev/shop/pkg/auth"
	"storefront.dev/shop/pkg/global"
)

const (
	stateCookie    = "oauth_state"
	stateCookieTTL = 10 * 60
)

var providerNames = map[string]string{
	auth.ProviderGoogle: "Google",
	auth.ProviderGitHub: "GitHub",
}

func displayName(provider string) string {
	if name, ok := providerNames[provider]; ok {
		return name
	}
	return provider
}

// OAuthStart redirects to the provider's consent page. The state value is
// kept in a short-lived cookie and checked on the callback.
func (h *Handler) OAuthStart(c *gin.Context) {
	name := c.Param("provider")
	provider, ok := h.Providers[name]
	if !ok {
		c.JSON(http.StatusServiceUnavailable, global.ErrorResponse(displayName(name)+" authentication is not configured", nil))
		return
	}

	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, stateCookieTTL, "/api/auth", "", h.SecureCookie, true)
	c.Redirect(http.StatusFound, provider.AuthCodeURL(state))
}

func (h *Handler) OAuthCallback(c *gin.Context) {
	name := c.Param("provider")
	provider, ok := h.Providers[name]
	if !ok {
		h.redirectLoginError(c, displayName(name)+" authentication is not configured")
		return
	}

	state, err := c.Cookie(stateCookie)
	c.SetCookie(stateCookie, "", -1, "/api/auth", "", h.SecureCookie, true)
	if err != nil || state == "" || state != c.Query("state") {
		global.Log.WithField("provider", name).Warn("OAuth state mismatch")
		h.redirectLoginError(c, "Authentication failed")
		return
	}

	identity, err := provider.Identify(c.Request.Context(), c.Query("code"))
	if err != nil {
		global.Log.WithError(err).WithField("provider", name).Error("OAuth identity lookup failed")
		h.redirectLoginError(c, "Authentication failed")
		return
	}

	resp, err := h.Users.OAuthLogin(c.Request.Context(), identity)
	if err != nil {
		global.Log.WithError(err).WithField("provider", name).Error("OAuth login failed")
		h.redirectLoginError(c, "Authentication failed")
		return
	}

	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		c.JSON(http.StatusOK, global.SuccessResponse(resp))
		return
	}
	c.Redirect(http.StatusFound, h.FrontendURL+"/oauth-callback?token="+url.QueryEscape(resp.Token))
}

func (h *Handler) redirectLoginError(c *gin.Context, message string) {
	c.Redirect(http.StatusFound, h.FrontendURL+"/login?error="+url.QueryEscape(message))
}
