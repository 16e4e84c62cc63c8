package dto

import (
	"encoding/base64"

	"comichub/internal/http-api/models"
)

type UpdateNameRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

type AvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"` // base64
}

type FCMTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type NotificationSettingsRequest struct {
	// Pointer so an explicit false still binds.
	Enabled *bool `json:"enabled" binding:"required"`
}

type UserResponse struct {
	ID     string  `json:"id"`
	Login  string  `json:"login"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"` // base64, null when unset
}

func FromModelToUserResponse(user *models.User) *UserResponse {
	resp := &UserResponse{
		ID:    user.ID,
		Login: user.Login,
		Name:  user.Name,
	}
	if len(user.Avatar) > 0 {
		encoded := base64.StdEncoding.EncodeToString(user.Avatar)
		resp.Avatar = &encoded
	}
	return resp
}

// ProfileComicResponse is one entry of a profile's comic list.
type ProfileComicResponse struct {
	ID          string  `json:"id"`
	Text        string  `json:"text"`
	Description string  `json:"description"`
	LikesCount  int64   `json:"likes_count"`
	Image       *string `json:"image"`
}

// ProfileResponse is the public view of a user: social counts and comics.
// IsSubscribed is null when the viewer looks at their own profile.
type ProfileResponse struct {
	ID                 string                 `json:"id"`
	Name               string                 `json:"name"`
	Avatar             *string                `json:"avatar"`
	TotalLikes         int64                  `json:"total_likes"`
	SubscribersCount   int64                  `json:"subscribers_count"`
	SubscriptionsCount int64                  `json:"subscriptions_count"`
	IsSubscribed       *bool                  `json:"is_subscribed"`
	Comics             []ProfileComicResponse `json:"comics"`
}

// RelatedUserResponse is one entry of a subscriber/subscription listing.
// IsSubscribedByMe is null for the viewer's own row.
type RelatedUserResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Avatar           *string `json:"avatar"`
	IsSubscribedByMe *bool   `json:"is_subscribed_by_me"`
}
