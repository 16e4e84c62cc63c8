package dto

import (
	"time"

	"comichub/internal/http-api/models"
)

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required,min=1,max=5000"`
}

type CommentResponse struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	IsCommentMy bool      `json:"isCommentMy"`
}

// FromModelToCommentResponse converts a comment with its author preloaded.
// viewerID marks the viewer's own comments.
func FromModelToCommentResponse(comment *models.Comment, viewerID string) *CommentResponse {
	resp := &CommentResponse{
		ID:          comment.ID,
		Text:        comment.Text,
		CreatedAt:   comment.CreatedAt,
		UserID:      comment.UserID,
		IsCommentMy: viewerID != "" && comment.UserID == viewerID,
	}
	if comment.User != nil {
		resp.UserName = comment.User.Name
	}
	return resp
}

type LikeStateResponse struct {
	Liked bool `json:"liked"`
}

type LikeCountResponse struct {
	Count int64 `json:"count"`
}

type FavoriteStateResponse struct {
	Favorited bool `json:"favorited"`
}

type SubscriptionStateResponse struct {
	Subscribed bool `json:"subscribed"`
}
