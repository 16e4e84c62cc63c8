package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"comichub/internal/http-api/dto"
	"comichub/internal/http-api/service"
)

// PageHandler serves the page and image sub-resources of a comic.
type PageHandler struct {
	comicService service.ComicService
}

func NewPageHandler(comicService service.ComicService) *PageHandler {
	return &PageHandler{comicService: comicService}
}

// AddPage handles POST /api/comics/pages/:id where :id is the comic id.
// The page is appended after the current last one.
func (h *PageHandler) AddPage(c *gin.Context) {
	comicID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AddPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.comicService.AddPage(c.Request.Context(), currentUserID(c), comicID, req.Rows, req.Columns)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToPageResponse(page))
}

// GetPage handles GET /api/comics/pages/:id where :id is the page id.
func (h *PageHandler) GetPage(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	page, err := h.comicService.GetPage(c.Request.Context(), pageID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToPageResponse(page))
}

// DeletePage handles DELETE /api/comics/pages/:id. Remaining pages are
// renumbered so numbers stay contiguous from zero.
func (h *PageHandler) DeletePage(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.comicService.DeletePage(c.Request.Context(), currentUserID(c), pageID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "page deleted"})
}

// AddImage handles POST /api/comics/pages/images/:id where :id is the
// page id.
func (h *PageHandler) AddImage(c *gin.Context) {
	pageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AddImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	imageID, err := h.comicService.AddImage(c.Request.Context(), currentUserID(c), pageID, *req.CellIndex, req.Image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "image added", "imageId": imageID})
}

// UpdateImage handles PUT /api/comics/pages/images/:id where :id is the
// image id.
func (h *PageHandler) UpdateImage(c *gin.Context) {
	imageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateImageDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.comicService.UpdateImage(c.Request.Context(), currentUserID(c), imageID, req.Image); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "image updated"})
}

// DeleteImage handles DELETE /api/comics/pages/images/:id.
func (h *PageHandler) DeleteImage(c *gin.Context) {
	imageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.comicService.DeleteImage(c.Request.Context(), currentUserID(c), imageID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "image deleted"})
}
