package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"comichub/internal/http-api/dto"
	"comichub/internal/http-api/service"
)

// SocialHandler serves likes, favorites and comments.
type SocialHandler struct {
	socialService service.SocialService
}

func NewSocialHandler(socialService service.SocialService) *SocialHandler {
	return &SocialHandler{socialService: socialService}
}

// ToggleLike handles POST /api/comics/:id/like.
func (h *SocialHandler) ToggleLike(c *gin.Context) {
	comicID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	liked, err := h.socialService.ToggleLike(c.Request.Context(), currentUserID(c), comicID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LikeStateResponse{Liked: liked})
}

// Unlike handles DELETE /api/comics/:id/like. Unlike the POST toggle it
// only ever removes, so retries are safe.
func (h *SocialHandler) Unlike(c *gin.Context) {
	comicID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.socialService.Unlike(c.Request.Context(), currentUserID(c), comicID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LikeStateResponse{Liked: false})
}

// LikeState handles GET /api/comics/:id/like.
func (h *SocialHandler) LikeState(c *gin.Context) {
	comicID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	liked, err := h.socialService.IsLiked(c.Request.Context(), currentUserID(c), comicID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LikeStateResponse{Liked: liked})
}

// LikeCount handles GET /api/comics/:id/likes/count.
func (h *SocialHandler) LikeCount(c *gin.Context) {
	comicID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	count, err := h.socialService.LikeCount(c.Request.Context(), comicID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LikeCountResponse{Count: count})
}

// ToggleFavorite handles POST /api/comics/:id/favorite.
func (h *SocialHandler) ToggleFavorite(c *gin.Context) {
	comicID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	favorited, err := h.socialService.ToggleFavorite(c.Request.Context(), currentUserID(c), comicID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FavoriteStateResponse{Favorited: favorited})
}

// FavoriteState handles GET /api/comics/:id/favorite.
func (h *SocialHandler) FavoriteState(c *gin.Context) {
	comicID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	favorited, err := h.socialService.IsFavorited(c.Request.Context(), currentUserID(c), comicID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FavoriteStateResponse{Favorited: favorited})
}

// Favorites handles GET /api/user/favorites.
func (h *SocialHandler) Favorites(c *gin.Context) {
	items, err := h.socialService.Favorites(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toComicListResponses(items))
}

// AddComment handles POST /api/comics/:id/comments.
func (h *SocialHandler) AddComment(c *gin.Context) {
	comicID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	viewerID := currentUserID(c)
	comment, err := h.socialService.AddComment(c.Request.Context(), viewerID, comicID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToCommentResponse(comment, viewerID))
}

// DeleteComment handles DELETE /api/comments/:commentId. Allowed for the
// comment author and for the creator of the comic it sits under.
func (h *SocialHandler) DeleteComment(c *gin.Context) {
	commentID, ok := parseIDParam(c, "commentId")
	if !ok {
		return
	}

	if err := h.socialService.DeleteComment(c.Request.Context(), currentUserID(c), commentID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
