package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"comichub/internal/http-api/models"
	"comichub/internal/http-api/repository"
	"comichub/internal/push"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateName(ctx context.Context, id, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MockUserRepository) ChangePassword(ctx context.Context, id string, verify func(storedHash string) error, newHash string) error {
	args := m.Called(ctx, id, verify, newHash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateAvatar(ctx context.Context, id string, avatar []byte) error {
	args := m.Called(ctx, id, avatar)
	return args.Error(0)
}

// MockLoginAttemptRepository mocks the LoginAttemptRepository interface
type MockLoginAttemptRepository struct {
	mock.Mock
}

func (m *MockLoginAttemptRepository) BlockedUntil(ctx context.Context, login string) (*time.Time, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockLoginAttemptRepository) TrackFailure(ctx context.Context, login string, threshold int, window time.Duration) (int, error) {
	args := m.Called(ctx, login, threshold, window)
	return args.Int(0), args.Error(1)
}

func (m *MockLoginAttemptRepository) Clear(ctx context.Context, login string) error {
	args := m.Called(ctx, login)
	return args.Error(0)
}

// MockComicRepository mocks the ComicRepository interface
type MockComicRepository struct {
	mock.Mock
}

func (m *MockComicRepository) CreateWithPages(ctx context.Context, comic *models.Comic) error {
	args := m.Called(ctx, comic)
	return args.Error(0)
}

func (m *MockComicRepository) Update(ctx context.Context, comicID, text, description string, pages []models.Page) error {
	args := m.Called(ctx, comicID, text, description, pages)
	return args.Error(0)
}

func (m *MockComicRepository) Delete(ctx context.Context, comicID string) error {
	args := m.Called(ctx, comicID)
	return args.Error(0)
}

func (m *MockComicRepository) GetByID(ctx context.Context, comicID string) (*models.Comic, error) {
	args := m.Called(ctx, comicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comic), args.Error(1)
}

func (m *MockComicRepository) GetFull(ctx context.Context, comicID string) (*models.Comic, error) {
	args := m.Called(ctx, comicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comic), args.Error(1)
}

func (m *MockComicRepository) ListAll(ctx context.Context) ([]models.Comic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comic), args.Error(1)
}

func (m *MockComicRepository) ListByCreator(ctx context.Context, creator string) ([]models.Comic, error) {
	args := m.Called(ctx, creator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comic), args.Error(1)
}

func (m *MockComicRepository) CoverImage(ctx context.Context, comicID string) ([]byte, error) {
	args := m.Called(ctx, comicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockComicRepository) Exists(ctx context.Context, comicID string) (bool, error) {
	args := m.Called(ctx, comicID)
	return args.Bool(0), args.Error(1)
}

func (m *MockComicRepository) AddPage(ctx context.Context, page *models.Page) error {
	args := m.Called(ctx, page)
	return args.Error(0)
}

func (m *MockComicRepository) GetPage(ctx context.Context, pageID string) (*models.Page, error) {
	args := m.Called(ctx, pageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page), args.Error(1)
}

func (m *MockComicRepository) FirstPage(ctx context.Context, comicID string) (*models.Page, error) {
	args := m.Called(ctx, comicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page), args.Error(1)
}

func (m *MockComicRepository) DeletePageAndRenumber(ctx context.Context, pageID string) error {
	args := m.Called(ctx, pageID)
	return args.Error(0)
}

func (m *MockComicRepository) AddImage(ctx context.Context, image *models.Image) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockComicRepository) UpdateImageData(ctx context.Context, imageID string, data []byte) error {
	args := m.Called(ctx, imageID, data)
	return args.Error(0)
}

func (m *MockComicRepository) DeleteImage(ctx context.Context, imageID string) error {
	args := m.Called(ctx, imageID)
	return args.Error(0)
}

func (m *MockComicRepository) OwnerOfComic(ctx context.Context, comicID string) (string, error) {
	args := m.Called(ctx, comicID)
	return args.String(0), args.Error(1)
}

func (m *MockComicRepository) OwnerOfPage(ctx context.Context, pageID string) (*repository.Ownership, error) {
	args := m.Called(ctx, pageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Ownership), args.Error(1)
}

func (m *MockComicRepository) OwnerOfImage(ctx context.Context, imageID string) (*repository.Ownership, error) {
	args := m.Called(ctx, imageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Ownership), args.Error(1)
}

// MockSocialRepository mocks the SocialRepository interface
type MockSocialRepository struct {
	mock.Mock
}

func (m *MockSocialRepository) ToggleLike(ctx context.Context, userID, comicID string) (bool, error) {
	args := m.Called(ctx, userID, comicID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSocialRepository) RemoveLike(ctx context.Context, userID, comicID string) error {
	args := m.Called(ctx, userID, comicID)
	return args.Error(0)
}

func (m *MockSocialRepository) IsLiked(ctx context.Context, userID, comicID string) (bool, error) {
	args := m.Called(ctx, userID, comicID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSocialRepository) LikeCount(ctx context.Context, comicID string) (int64, error) {
	args := m.Called(ctx, comicID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSocialRepository) LikeCountByCreator(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSocialRepository) ToggleFavorite(ctx context.Context, userID, comicID string) (bool, error) {
	args := m.Called(ctx, userID, comicID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSocialRepository) IsFavorited(ctx context.Context, userID, comicID string) (bool, error) {
	args := m.Called(ctx, userID, comicID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSocialRepository) ListFavorites(ctx context.Context, userID string) ([]models.Comic, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comic), args.Error(1)
}

func (m *MockSocialRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockSocialRepository) GetCommentWithAuthor(ctx context.Context, commentID string) (*models.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockSocialRepository) ListComments(ctx context.Context, comicID string) ([]models.Comment, error) {
	args := m.Called(ctx, comicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockSocialRepository) DeleteComment(ctx context.Context, commentID string) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}

func (m *MockSocialRepository) ToggleSubscription(ctx context.Context, subscriberID, targetUserID string) (bool, error) {
	args := m.Called(ctx, subscriberID, targetUserID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSocialRepository) IsSubscribed(ctx context.Context, subscriberID, targetUserID string) (bool, error) {
	args := m.Called(ctx, subscriberID, targetUserID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSocialRepository) SubscriberCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSocialRepository) SubscriptionCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSocialRepository) ListSubscribers(ctx context.Context, userID string) ([]models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockSocialRepository) ListSubscriptions(ctx context.Context, userID string) ([]models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockSettingsRepository mocks the SettingsRepository interface
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) UpsertToken(ctx context.Context, userID, token string) error {
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *MockSettingsRepository) UpsertEnabled(ctx context.Context, userID string, enabled bool) error {
	args := m.Called(ctx, userID, enabled)
	return args.Error(0)
}

func (m *MockSettingsRepository) NotifiableSubscribers(ctx context.Context, targetUserID string) ([]repository.Recipient, error) {
	args := m.Called(ctx, targetUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.Recipient), args.Error(1)
}

// MockSender mocks the push.Sender interface
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg push.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
