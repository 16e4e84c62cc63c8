package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"comichub/internal/http-api/dto"
	"comichub/internal/http-api/service"
)

type ComicHandler struct {
	comicService service.ComicService
}

func NewComicHandler(comicService service.ComicService) *ComicHandler {
	return &ComicHandler{comicService: comicService}
}

// List handles GET /api/comics.
func (h *ComicHandler) List(c *gin.Context) {
	items, err := h.comicService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toComicListResponses(items))
}

// ListMine handles GET /api/mycomics.
func (h *ComicHandler) ListMine(c *gin.Context) {
	items, err := h.comicService.ListMine(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toComicListResponses(items))
}

// Create handles POST /api/comics. Publishing an aggregate identical to
// one the user already published answers 409 with the existing id.
func (h *ComicHandler) Create(c *gin.Context) {
	var req dto.CreateComicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comicID, err := h.comicService.Create(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreateComicResponse{Message: "comic created", ComicID: comicID})
}

// Get handles GET /api/comics/:id and returns the full aggregate.
func (h *ComicHandler) Get(c *gin.Context) {
	comicID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	comic, err := h.comicService.Get(c.Request.Context(), comicID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToComicResponse(comic))
}

// Info handles GET /api/comics/:id/info.
func (h *ComicHandler) Info(c *gin.Context) {
	comicID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	viewerID := currentUserID(c)
	info, err := h.comicService.Info(c.Request.Context(), comicID, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ComicInfoResponse{
		ID:            info.Comic.ID,
		Text:          info.Comic.Text,
		Description:   info.Comic.Description,
		Creator:       info.Comic.Creator,
		CreatorName:   info.CreatorName,
		LikesCount:    info.LikesCount,
		UserLiked:     info.UserLiked,
		UserFavorited: info.UserFavorited,
		Comments:      make([]dto.CommentResponse, 0, len(info.Comments)),
	}
	if info.FirstPage != nil {
		resp.FirstPage = dto.FromModelToPageResponse(info.FirstPage)
	}
	for i := range info.Comments {
		resp.Comments = append(resp.Comments, *dto.FromModelToCommentResponse(&info.Comments[i], viewerID))
	}
	c.JSON(http.StatusOK, resp)
}

// Update handles PUT /api/comics/:id.
func (h *ComicHandler) Update(c *gin.Context) {
	comicID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateComicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.comicService.Update(c.Request.Context(), currentUserID(c), comicID, req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comic updated"})
}

// Delete handles DELETE /api/comics/:id.
func (h *ComicHandler) Delete(c *gin.Context) {
	comicID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.comicService.Delete(c.Request.Context(), currentUserID(c), comicID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comic deleted"})
}

func toComicListResponses(items []service.ComicListItem) []dto.ComicListItemResponse {
	out := make([]dto.ComicListItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.ComicListItemResponse{
			ID:          item.ID,
			Text:        item.Text,
			Description: item.Description,
			Image:       dto.EncodeCover(item.Cover),
		})
	}
	return out
}
