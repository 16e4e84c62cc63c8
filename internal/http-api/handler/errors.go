package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"comichub/internal/http-api/models"
	"comichub/internal/http-api/repository"
	"comichub/internal/http-api/service"
)

// respondError translates service-level errors into HTTP responses.
// Unrecognized errors become a 500 with the underlying message in
// "details" so operators can diagnose without digging through logs.
func respondError(c *gin.Context, err error) {
	var locked *service.LockedOutError
	var duplicate *repository.DuplicateComicError

	switch {
	case errors.As(err, &locked):
		c.Header("Retry-After", strconv.Itoa(locked.RetryAfterSeconds()))
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":      "too many failed login attempts",
			"retryAfter": locked.RetryAfterSeconds(),
		})
	case errors.As(err, &duplicate):
		c.JSON(http.StatusConflict, gin.H{
			"error":      "comic with identical content already exists",
			"existingId": duplicate.ExistingID,
		})
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, service.ErrInvalidPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
	case errors.Is(err, service.ErrComicNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "comic not found"})
	case errors.Is(err, service.ErrPageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
	case errors.Is(err, service.ErrImageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
	case errors.Is(err, service.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
	case errors.Is(err, service.ErrNotCreator):
		c.JSON(http.StatusForbidden, gin.H{"error": "only the creator can modify this comic"})
	case errors.Is(err, service.ErrSelfSubscription):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot subscribe to yourself"})
	case errors.Is(err, service.ErrSamePassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": "new password must differ from the current one"})
	case errors.Is(err, service.ErrBadImageData):
		c.JSON(http.StatusBadRequest, gin.H{"error": "image data is not valid base64"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": err.Error(),
		})
	}
}

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) string {
	id, _ := c.MustGet("userID").(string)
	return id
}

// currentUser reads the authenticated user set by the auth middleware.
func currentUser(c *gin.Context) *models.User {
	user, _ := c.MustGet("user").(*models.User)
	return user
}

// parseIDParam validates a UUID path parameter, answering 400 on garbage.
func parseIDParam(c *gin.Context, name string) (string, bool) {
	raw := c.Param(name)
	if _, err := uuid.Parse(raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " parameter"})
		return "", false
	}
	return raw, true
}
