package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"comichub/internal/http-api/dto"
	"comichub/internal/http-api/models"
	"comichub/internal/http-api/service"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// asUser stands in for the auth middleware in handler tests.
func asUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", user.ID)
		c.Set("user", user)
		c.Next()
	}
}

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, login, password, name string) (*models.User, string, error) {
	args := m.Called(ctx, login, password, name)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, login, password string) (*models.User, string, error) {
	args := m.Called(ctx, login, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockComicService mocks the ComicService interface
type MockComicService struct {
	mock.Mock
}

func (m *MockComicService) Create(ctx context.Context, creatorID string, req dto.CreateComicRequest) (string, error) {
	args := m.Called(ctx, creatorID, req)
	return args.String(0), args.Error(1)
}

func (m *MockComicService) Update(ctx context.Context, userID, comicID string, req dto.UpdateComicRequest) error {
	args := m.Called(ctx, userID, comicID, req)
	return args.Error(0)
}

func (m *MockComicService) Delete(ctx context.Context, userID, comicID string) error {
	args := m.Called(ctx, userID, comicID)
	return args.Error(0)
}

func (m *MockComicService) Get(ctx context.Context, comicID string) (*models.Comic, error) {
	args := m.Called(ctx, comicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comic), args.Error(1)
}

func (m *MockComicService) Info(ctx context.Context, comicID, viewerID string) (*service.ComicInfo, error) {
	args := m.Called(ctx, comicID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ComicInfo), args.Error(1)
}

func (m *MockComicService) List(ctx context.Context) ([]service.ComicListItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.ComicListItem), args.Error(1)
}

func (m *MockComicService) ListMine(ctx context.Context, userID string) ([]service.ComicListItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.ComicListItem), args.Error(1)
}

func (m *MockComicService) AddPage(ctx context.Context, userID, comicID string, rows, columns int) (*models.Page, error) {
	args := m.Called(ctx, userID, comicID, rows, columns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page), args.Error(1)
}

func (m *MockComicService) GetPage(ctx context.Context, pageID string) (*models.Page, error) {
	args := m.Called(ctx, pageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page), args.Error(1)
}

func (m *MockComicService) DeletePage(ctx context.Context, userID, pageID string) error {
	args := m.Called(ctx, userID, pageID)
	return args.Error(0)
}

func (m *MockComicService) AddImage(ctx context.Context, userID, pageID string, cellIndex int, imageB64 string) (string, error) {
	args := m.Called(ctx, userID, pageID, cellIndex, imageB64)
	return args.String(0), args.Error(1)
}

func (m *MockComicService) UpdateImage(ctx context.Context, userID, imageID, imageB64 string) error {
	args := m.Called(ctx, userID, imageID, imageB64)
	return args.Error(0)
}

func (m *MockComicService) DeleteImage(ctx context.Context, userID, imageID string) error {
	args := m.Called(ctx, userID, imageID)
	return args.Error(0)
}

// MockSocialService mocks the SocialService interface
type MockSocialService struct {
	mock.Mock
}

func (m *MockSocialService) ToggleLike(ctx context.Context, userID, comicID string) (bool, error) {
	args := m.Called(ctx, userID, comicID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSocialService) Unlike(ctx context.Context, userID, comicID string) error {
	args := m.Called(ctx, userID, comicID)
	return args.Error(0)
}

func (m *MockSocialService) IsLiked(ctx context.Context, userID, comicID string) (bool, error) {
	args := m.Called(ctx, userID, comicID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSocialService) LikeCount(ctx context.Context, comicID string) (int64, error) {
	args := m.Called(ctx, comicID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSocialService) ToggleFavorite(ctx context.Context, userID, comicID string) (bool, error) {
	args := m.Called(ctx, userID, comicID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSocialService) IsFavorited(ctx context.Context, userID, comicID string) (bool, error) {
	args := m.Called(ctx, userID, comicID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSocialService) Favorites(ctx context.Context, userID string) ([]service.ComicListItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.ComicListItem), args.Error(1)
}

func (m *MockSocialService) AddComment(ctx context.Context, userID, comicID, text string) (*models.Comment, error) {
	args := m.Called(ctx, userID, comicID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockSocialService) DeleteComment(ctx context.Context, userID, commentID string) error {
	args := m.Called(ctx, userID, commentID)
	return args.Error(0)
}

func (m *MockSocialService) ToggleSubscription(ctx context.Context, userID, targetUserID string) (bool, error) {
	args := m.Called(ctx, userID, targetUserID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSocialService) IsSubscribed(ctx context.Context, userID, targetUserID string) (bool, error) {
	args := m.Called(ctx, userID, targetUserID)
	return args.Bool(0), args.Error(1)
}

// MockUserService mocks the UserService interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Get(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateName(ctx context.Context, userID, name string) error {
	args := m.Called(ctx, userID, name)
	return args.Error(0)
}

func (m *MockUserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	args := m.Called(ctx, userID, currentPassword, newPassword)
	return args.Error(0)
}

func (m *MockUserService) SetAvatar(ctx context.Context, userID, avatarB64 string) (*models.User, error) {
	args := m.Called(ctx, userID, avatarB64)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) RemoveAvatar(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) SetFCMToken(ctx context.Context, userID, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *MockUserService) SetNotificationsEnabled(ctx context.Context, userID string, enabled bool) error {
	args := m.Called(ctx, userID, enabled)
	return args.Error(0)
}

func (m *MockUserService) Profile(ctx context.Context, userID, viewerID string) (*service.Profile, error) {
	args := m.Called(ctx, userID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Profile), args.Error(1)
}

func (m *MockUserService) Subscribers(ctx context.Context, userID, viewerID string) ([]service.RelatedUser, error) {
	args := m.Called(ctx, userID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.RelatedUser), args.Error(1)
}

func (m *MockUserService) Subscriptions(ctx context.Context, userID, viewerID string) ([]service.RelatedUser, error) {
	args := m.Called(ctx, userID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.RelatedUser), args.Error(1)
}
