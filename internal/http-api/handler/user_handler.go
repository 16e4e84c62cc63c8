package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"comichub/internal/http-api/dto"
	"comichub/internal/http-api/service"
)

// UserHandler serves the authenticated user's own account endpoints.
type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me handles GET /api/user.
func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(currentUser(c)))
}

// UpdateName handles PUT /api/user/name.
func (h *UserHandler) UpdateName(c *gin.Context) {
	var req dto.UpdateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userService.UpdateName(c.Request.Context(), currentUserID(c), req.Name); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "name updated"})
}

// ChangePassword handles PUT /api/user/password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.userService.ChangePassword(c.Request.Context(), currentUserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// SetAvatar handles POST /api/user/avatar. The refreshed user is
// returned so clients can swap the image without a second fetch.
func (h *UserHandler) SetAvatar(c *gin.Context) {
	var req dto.AvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.SetAvatar(c.Request.Context(), currentUserID(c), req.Avatar)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// RemoveAvatar handles DELETE /api/user/avatar.
func (h *UserHandler) RemoveAvatar(c *gin.Context) {
	user, err := h.userService.RemoveAvatar(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToUserResponse(user))
}

// SetFCMToken handles POST /api/user/fcm_token.
func (h *UserHandler) SetFCMToken(c *gin.Context) {
	var req dto.FCMTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userService.SetFCMToken(c.Request.Context(), currentUserID(c), req.Token); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "token saved"})
}

// SetNotificationSettings handles PUT /api/user/notification_settings.
func (h *UserHandler) SetNotificationSettings(c *gin.Context) {
	var req dto.NotificationSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.userService.SetNotificationsEnabled(c.Request.Context(), currentUserID(c), *req.Enabled)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "settings updated"})
}
