package dto

import (
	"encoding/base64"

	"comichub/internal/http-api/models"
)

// CreateComicRequest is the nested aggregate submitted on publish. Page
// numbers are assigned from array position; image cell indexes default to
// array position when omitted.
type CreateComicRequest struct {
	Text        string           `json:"text" binding:"required"`
	Description string           `json:"description" binding:"required"`
	Pages       []NewPageRequest `json:"pages" binding:"required,min=1,dive"`
}

type NewPageRequest struct {
	Rows    int               `json:"rows" binding:"required,min=1"`
	Columns int               `json:"columns" binding:"required,min=1"`
	Images  []NewImageRequest `json:"images" binding:"omitempty,dive"`
}

type NewImageRequest struct {
	CellIndex *int   `json:"cellIndex,omitempty"`
	Image     string `json:"image" binding:"required"` // base64
}

// UpdateComicRequest upserts pages and images by id. Entries without an id
// are inserted; rows omitted from the payload are left alone (partial
// updates accumulate, they never delete).
type UpdateComicRequest struct {
	Comic ComicFields         `json:"comic" binding:"required"`
	Pages []UpdatePageRequest `json:"pages" binding:"required,dive"`
}

type ComicFields struct {
	Text        string `json:"text" binding:"required"`
	Description string `json:"description"`
}

type UpdatePageRequest struct {
	PageID  string               `json:"pageId"`
	Number  int                  `json:"number"`
	Rows    int                  `json:"rows" binding:"required,min=1"`
	Columns int                  `json:"columns" binding:"required,min=1"`
	Images  []UpdateImageRequest `json:"images" binding:"omitempty,dive"`
}

type UpdateImageRequest struct {
	ID        string `json:"id"`
	CellIndex int    `json:"cellIndex"`
	Image     string `json:"image" binding:"required"` // base64
}

type AddPageRequest struct {
	Rows    int `json:"rows" binding:"required,min=1"`
	Columns int `json:"columns" binding:"required,min=1"`
}

type AddImageRequest struct {
	CellIndex *int   `json:"cellIndex" binding:"required"`
	Image     string `json:"image" binding:"required"` // base64
}

type UpdateImageDataRequest struct {
	Image string `json:"image" binding:"required"` // base64
}

// CreateComicResponse carries the new comic's id.
type CreateComicResponse struct {
	Message string `json:"message"`
	ComicID string `json:"comicId"`
}

type ComicResponse struct {
	ID          string         `json:"id"`
	Text        string         `json:"text"`
	Description string         `json:"description"`
	Pages       []PageResponse `json:"pages"`
}

type PageResponse struct {
	PageID  string          `json:"pageId"`
	Number  int             `json:"number"`
	Rows    int             `json:"rows"`
	Columns int             `json:"columns"`
	Images  []ImageResponse `json:"images"`
}

type ImageResponse struct {
	ID        string `json:"id"`
	CellIndex int    `json:"cellIndex"`
	Image     string `json:"image"` // base64
}

// ComicListItemResponse is a listing entry with an optional cover image.
type ComicListItemResponse struct {
	ID          string  `json:"id"`
	Text        string  `json:"text"`
	Description string  `json:"description"`
	Image       *string `json:"image"` // base64 cover, null when none
}

// ComicInfoResponse is the detail view: header, first page, social state
// relative to the viewer, and comments.
type ComicInfoResponse struct {
	ID            string            `json:"id"`
	Text          string            `json:"text"`
	Description   string            `json:"description"`
	Creator       string            `json:"creator"`
	CreatorName   string            `json:"creator_name"`
	FirstPage     *PageResponse     `json:"firstPage"`
	LikesCount    int64             `json:"likesCount"`
	UserLiked     bool              `json:"userLiked"`
	UserFavorited bool              `json:"userFavorited"`
	Comments      []CommentResponse `json:"comments"`
}

// FromModelToComicResponse converts a fully loaded comic aggregate.
func FromModelToComicResponse(comic *models.Comic) *ComicResponse {
	resp := &ComicResponse{
		ID:          comic.ID,
		Text:        comic.Text,
		Description: comic.Description,
		Pages:       make([]PageResponse, 0, len(comic.Pages)),
	}
	for i := range comic.Pages {
		resp.Pages = append(resp.Pages, *FromModelToPageResponse(&comic.Pages[i]))
	}
	return resp
}

func FromModelToPageResponse(page *models.Page) *PageResponse {
	resp := &PageResponse{
		PageID:  page.PageID,
		Number:  page.Number,
		Rows:    page.Rows,
		Columns: page.Columns,
		Images:  make([]ImageResponse, 0, len(page.Images)),
	}
	for _, img := range page.Images {
		resp.Images = append(resp.Images, ImageResponse{
			ID:        img.ID,
			CellIndex: img.CellIndex,
			Image:     base64.StdEncoding.EncodeToString(img.Image),
		})
	}
	return resp
}

// EncodeCover renders an optional binary cover as the nullable base64
// string listings expect.
func EncodeCover(cover []byte) *string {
	if len(cover) == 0 {
		return nil
	}
	s := base64.StdEncoding.EncodeToString(cover)
	return &s
}
