package service

import (
	"context"
	"encoding/base64"
	"errors"

	"gorm.io/gorm"

	"comichub/internal/auth"
	"comichub/internal/http-api/models"
	"comichub/internal/http-api/repository"
)

// ProfileComic is one comic in a public profile, with its like count and
// cover.
type ProfileComic struct {
	Comic     models.Comic
	LikeCount int64
	Cover     []byte
}

// Profile is the public view of a user. IsSubscribed is nil when the
// viewer is the profile owner.
type Profile struct {
	User               *models.User
	TotalLikes         int64
	SubscribersCount   int64
	SubscriptionsCount int64
	IsSubscribed       *bool
	Comics             []ProfileComic
}

// RelatedUser is one entry of a subscriber/subscription listing.
// IsSubscribedByMe is nil for the viewer's own row.
type RelatedUser struct {
	User             models.User
	IsSubscribedByMe *bool
}

type UserService interface {
	Get(ctx context.Context, userID string) (*models.User, error)
	UpdateName(ctx context.Context, userID, name string) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	SetAvatar(ctx context.Context, userID, avatarB64 string) (*models.User, error)
	RemoveAvatar(ctx context.Context, userID string) (*models.User, error)

	SetFCMToken(ctx context.Context, userID, token string) error
	SetNotificationsEnabled(ctx context.Context, userID string, enabled bool) error

	Profile(ctx context.Context, userID, viewerID string) (*Profile, error)
	Subscribers(ctx context.Context, userID, viewerID string) ([]RelatedUser, error)
	Subscriptions(ctx context.Context, userID, viewerID string) ([]RelatedUser, error)
}

type userService struct {
	users    repository.UserRepository
	comics   repository.ComicRepository
	social   repository.SocialRepository
	settings repository.SettingsRepository
}

func NewUserService(
	users repository.UserRepository,
	comics repository.ComicRepository,
	social repository.SocialRepository,
	settings repository.SettingsRepository,
) UserService {
	return &userService{
		users:    users,
		comics:   comics,
		social:   social,
		settings: settings,
	}
}

func (s *userService) Get(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *userService) UpdateName(ctx context.Context, userID, name string) error {
	return s.users.UpdateName(ctx, userID, name)
}

func (s *userService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if currentPassword == newPassword {
		return ErrSamePassword
	}

	newHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	// Verification and write share one transaction.
	err = s.users.ChangePassword(ctx, userID, func(storedHash string) error {
		if auth.VerifyPassword(storedHash, currentPassword) != nil {
			return ErrInvalidPassword
		}
		return nil
	}, newHash)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	return err
}

func (s *userService) SetAvatar(ctx context.Context, userID, avatarB64 string) (*models.User, error) {
	data, err := base64.StdEncoding.DecodeString(avatarB64)
	if err != nil {
		return nil, ErrBadImageData
	}
	if err := s.users.UpdateAvatar(ctx, userID, data); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

func (s *userService) RemoveAvatar(ctx context.Context, userID string) (*models.User, error) {
	if err := s.users.UpdateAvatar(ctx, userID, nil); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

func (s *userService) SetFCMToken(ctx context.Context, userID, token string) error {
	return s.settings.UpsertToken(ctx, userID, token)
}

func (s *userService) SetNotificationsEnabled(ctx context.Context, userID string, enabled bool) error {
	return s.settings.UpsertEnabled(ctx, userID, enabled)
}

func (s *userService) Profile(ctx context.Context, userID, viewerID string) (*Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	profile := &Profile{User: user}

	if profile.TotalLikes, err = s.social.LikeCountByCreator(ctx, userID); err != nil {
		return nil, err
	}
	if profile.SubscribersCount, err = s.social.SubscriberCount(ctx, userID); err != nil {
		return nil, err
	}
	if profile.SubscriptionsCount, err = s.social.SubscriptionCount(ctx, userID); err != nil {
		return nil, err
	}

	if viewerID != "" && viewerID != userID {
		subscribed, err := s.social.IsSubscribed(ctx, viewerID, userID)
		if err != nil {
			return nil, err
		}
		profile.IsSubscribed = &subscribed
	}

	comics, err := s.comics.ListByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, comic := range comics {
		likeCount, err := s.social.LikeCount(ctx, comic.ID)
		if err != nil {
			return nil, err
		}
		cover, err := s.comics.CoverImage(ctx, comic.ID)
		if err != nil {
			return nil, err
		}
		profile.Comics = append(profile.Comics, ProfileComic{
			Comic:     comic,
			LikeCount: likeCount,
			Cover:     cover,
		})
	}
	return profile, nil
}

func (s *userService) Subscribers(ctx context.Context, userID, viewerID string) ([]RelatedUser, error) {
	users, err := s.social.ListSubscribers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, users, viewerID)
}

func (s *userService) Subscriptions(ctx context.Context, userID, viewerID string) ([]RelatedUser, error) {
	users, err := s.social.ListSubscriptions(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, users, viewerID)
}

// annotate marks which listed users the viewer is subscribed to; the
// viewer's own row stays nil.
func (s *userService) annotate(ctx context.Context, users []models.User, viewerID string) ([]RelatedUser, error) {
	related := make([]RelatedUser, 0, len(users))
	for _, user := range users {
		entry := RelatedUser{User: user}
		if viewerID != "" && user.ID != viewerID {
			subscribed, err := s.social.IsSubscribed(ctx, viewerID, user.ID)
			if err != nil {
				return nil, err
			}
			entry.IsSubscribedByMe = &subscribed
		}
		related = append(related, entry)
	}
	return related, nil
}
