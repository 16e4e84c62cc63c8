package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"comichub/internal/http-api/dto"
	"comichub/internal/http-api/service"
)

// UsersHandler serves other users' public profiles and the subscription
// graph around them.
type UsersHandler struct {
	userService   service.UserService
	socialService service.SocialService
}

func NewUsersHandler(userService service.UserService, socialService service.SocialService) *UsersHandler {
	return &UsersHandler{userService: userService, socialService: socialService}
}

// Profile handles GET /api/users/:userId.
func (h *UsersHandler) Profile(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	profile, err := h.userService.Profile(c.Request.Context(), userID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ProfileResponse{
		ID:                 profile.User.ID,
		Name:               profile.User.Name,
		Avatar:             dto.EncodeCover(profile.User.Avatar),
		TotalLikes:         profile.TotalLikes,
		SubscribersCount:   profile.SubscribersCount,
		SubscriptionsCount: profile.SubscriptionsCount,
		IsSubscribed:       profile.IsSubscribed,
		Comics:             make([]dto.ProfileComicResponse, 0, len(profile.Comics)),
	}
	for _, pc := range profile.Comics {
		resp.Comics = append(resp.Comics, dto.ProfileComicResponse{
			ID:          pc.Comic.ID,
			Text:        pc.Comic.Text,
			Description: pc.Comic.Description,
			LikesCount:  pc.LikeCount,
			Image:       dto.EncodeCover(pc.Cover),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// ToggleSubscription handles POST /api/users/:userId/subscribe.
func (h *UsersHandler) ToggleSubscription(c *gin.Context) {
	targetID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	subscribed, err := h.socialService.ToggleSubscription(c.Request.Context(), currentUserID(c), targetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SubscriptionStateResponse{Subscribed: subscribed})
}

// SubscriptionState handles GET /api/users/:userId/subscribe.
func (h *UsersHandler) SubscriptionState(c *gin.Context) {
	targetID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	subscribed, err := h.socialService.IsSubscribed(c.Request.Context(), currentUserID(c), targetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SubscriptionStateResponse{Subscribed: subscribed})
}

// Subscribers handles GET /api/users/:userId/subscribers.
func (h *UsersHandler) Subscribers(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	related, err := h.userService.Subscribers(c.Request.Context(), userID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRelatedUserResponses(related))
}

// Subscriptions handles GET /api/users/:userId/subscriptions.
func (h *UsersHandler) Subscriptions(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	related, err := h.userService.Subscriptions(c.Request.Context(), userID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRelatedUserResponses(related))
}

func toRelatedUserResponses(related []service.RelatedUser) []dto.RelatedUserResponse {
	out := make([]dto.RelatedUserResponse, 0, len(related))
	for _, r := range related {
		out = append(out, dto.RelatedUserResponse{
			ID:               r.User.ID,
			Name:             r.User.Name,
			Avatar:           dto.EncodeCover(r.User.Avatar),
			IsSubscribedByMe: r.IsSubscribedByMe,
		})
	}
	return out
}
