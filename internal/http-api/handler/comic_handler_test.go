package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"comichub/internal/http-api/dto"
	"comichub/internal/http-api/models"
	"comichub/internal/http-api/repository"
	"comichub/internal/http-api/service"
)

var testUser = &models.User{
	ID:    "11111111-1111-1111-1111-111111111111",
	Login: "alice",
	Name:  "Alice",
}

const comicID = "33333333-3333-3333-3333-333333333333"

func TestCreateComicEndpoint_Success(t *testing.T) {
	comicService := new(MockComicService)
	h := NewComicHandler(comicService)
	router := setupRouter()
	router.POST("/api/comics", asUser(testUser), h.Create)

	comicService.On("Create", mock.Anything, testUser.ID, mock.AnythingOfType("dto.CreateComicRequest")).
		Return(comicID, nil)

	w := postJSON(t, router, "/api/comics", dto.CreateComicRequest{
		Text:        "My comic",
		Description: "about things",
		Pages:       []dto.NewPageRequest{{Rows: 1, Columns: 1}},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp dto.CreateComicResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, comicID, resp.ComicID)
}

func TestCreateComicEndpoint_Duplicate(t *testing.T) {
	comicService := new(MockComicService)
	h := NewComicHandler(comicService)
	router := setupRouter()
	router.POST("/api/comics", asUser(testUser), h.Create)

	comicService.On("Create", mock.Anything, testUser.ID, mock.Anything).
		Return("", &repository.DuplicateComicError{ExistingID: comicID})

	w := postJSON(t, router, "/api/comics", dto.CreateComicRequest{
		Text:        "My comic",
		Description: "about things",
		Pages:       []dto.NewPageRequest{{Rows: 1, Columns: 1}},
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, comicID, resp["existingId"])
}

func TestCreateComicEndpoint_NoPages(t *testing.T) {
	comicService := new(MockComicService)
	h := NewComicHandler(comicService)
	router := setupRouter()
	router.POST("/api/comics", asUser(testUser), h.Create)

	w := postJSON(t, router, "/api/comics", map[string]any{
		"text":        "My comic",
		"description": "about things",
		"pages":       []any{},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	comicService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateComicEndpoint_Forbidden(t *testing.T) {
	comicService := new(MockComicService)
	h := NewComicHandler(comicService)
	router := setupRouter()
	router.PUT("/api/comics/:id", asUser(testUser), h.Update)

	comicService.On("Update", mock.Anything, testUser.ID, comicID, mock.Anything).
		Return(service.ErrNotCreator)

	body, _ := json.Marshal(dto.UpdateComicRequest{
		Comic: dto.ComicFields{Text: "t"},
		Pages: []dto.UpdatePageRequest{},
	})
	req, _ := http.NewRequest(http.MethodPut, "/api/comics/"+comicID, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetComicEndpoint_NotFound(t *testing.T) {
	comicService := new(MockComicService)
	h := NewComicHandler(comicService)
	router := setupRouter()
	router.GET("/api/comics/:id", asUser(testUser), h.Get)

	comicService.On("Get", mock.Anything, comicID).Return(nil, service.ErrComicNotFound)

	req, _ := http.NewRequest(http.MethodGet, "/api/comics/"+comicID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetComicEndpoint_BadID(t *testing.T) {
	comicService := new(MockComicService)
	h := NewComicHandler(comicService)
	router := setupRouter()
	router.GET("/api/comics/:id", asUser(testUser), h.Get)

	req, _ := http.NewRequest(http.MethodGet, "/api/comics/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	comicService.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestListComicsEndpoint_NullCoverForEmpty(t *testing.T) {
	comicService := new(MockComicService)
	h := NewComicHandler(comicService)
	router := setupRouter()
	router.GET("/api/comics", asUser(testUser), h.List)

	comicService.On("List", mock.Anything).Return([]service.ComicListItem{
		{ID: "c1", Text: "first", Cover: []byte{1}},
		{ID: "c2", Text: "second"},
	}, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/comics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []dto.ComicListItemResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
	assert.NotNil(t, resp[0].Image)
	assert.Nil(t, resp[1].Image)
}

func TestComicInfoEndpoint(t *testing.T) {
	comicService := new(MockComicService)
	h := NewComicHandler(comicService)
	router := setupRouter()
	router.GET("/api/comics/:id/info", asUser(testUser), h.Info)

	info := &service.ComicInfo{
		Comic:       &models.Comic{ID: comicID, Text: "My comic", Creator: "creator-id"},
		CreatorName: "Bob",
		FirstPage:   &models.Page{PageID: "44444444-4444-4444-4444-444444444444"},
		LikesCount:  5,
		UserLiked:   true,
		Comments: []models.Comment{
			{ID: "cm1", Text: "hello", UserID: testUser.ID, User: &models.User{Name: "Alice"}},
		},
	}
	comicService.On("Info", mock.Anything, comicID, testUser.ID).Return(info, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/comics/"+comicID+"/info", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.ComicInfoResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Bob", resp.CreatorName)
	assert.Equal(t, int64(5), resp.LikesCount)
	assert.True(t, resp.UserLiked)
	assert.NotNil(t, resp.FirstPage)
	assert.Len(t, resp.Comments, 1)
	// The viewer's own comment is flagged.
	assert.True(t, resp.Comments[0].IsCommentMy)
}

func TestDeleteComicEndpoint_Success(t *testing.T) {
	comicService := new(MockComicService)
	h := NewComicHandler(comicService)
	router := setupRouter()
	router.DELETE("/api/comics/:id", asUser(testUser), h.Delete)

	comicService.On("Delete", mock.Anything, testUser.ID, comicID).Return(nil)

	req, _ := http.NewRequest(http.MethodDelete, "/api/comics/"+comicID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	comicService.AssertExpectations(t)
}
