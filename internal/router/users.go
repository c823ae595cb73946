package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront.dev/shop/pkg/global"
	"storefront.dev/shop/pkg/models"
)

func (h *Handler) RegisterUser(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.Users.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, global.SuccessResponse(resp))
}

func (h *Handler) AuthUser(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.Users.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(resp))
}

func (h *Handler) GetUserProfile(c *gin.Context) {
	c.JSON(http.StatusOK, global.SuccessResponse(currentUser(c)))
}

func (h *Handler) UpdateUserProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.Users.UpdateProfile(c.Request.Context(), currentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(resp))
}

func (h *Handler) GetUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(users))
}

func (h *Handler) GetUserByID(c *gin.Context) {
	id, ok := paramID(c, "id", "User")
	if !ok {
		return
	}

	user, err := h.Users.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(user))
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := paramID(c, "id", "User")
	if !ok {
		return
	}

	var req models.AdminUpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.Users.AdminUpdate(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(user))
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id", "User")
	if !ok {
		return
	}

	if err := h.Users.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.MessageResponse(nil, "User removed"))
}
