package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"comichub/internal/http-api/models"
	"comichub/internal/http-api/repository"
)

type SocialService interface {
	ToggleLike(ctx context.Context, userID, comicID string) (bool, error)
	Unlike(ctx context.Context, userID, comicID string) error
	IsLiked(ctx context.Context, userID, comicID string) (bool, error)
	LikeCount(ctx context.Context, comicID string) (int64, error)

	ToggleFavorite(ctx context.Context, userID, comicID string) (bool, error)
	IsFavorited(ctx context.Context, userID, comicID string) (bool, error)
	Favorites(ctx context.Context, userID string) ([]ComicListItem, error)

	AddComment(ctx context.Context, userID, comicID, text string) (*models.Comment, error)
	// DeleteComment is permitted to the comment's author and to the
	// creator of the comic it belongs to. Everyone else gets the same
	// not-found outcome so existence never leaks.
	DeleteComment(ctx context.Context, userID, commentID string) error

	ToggleSubscription(ctx context.Context, userID, targetUserID string) (bool, error)
	IsSubscribed(ctx context.Context, userID, targetUserID string) (bool, error)
}

type socialService struct {
	social repository.SocialRepository
	comics repository.ComicRepository
	users  repository.UserRepository
}

func NewSocialService(
	social repository.SocialRepository,
	comics repository.ComicRepository,
	users repository.UserRepository,
) SocialService {
	return &socialService{
		social: social,
		comics: comics,
		users:  users,
	}
}

func (s *socialService) ToggleLike(ctx context.Context, userID, comicID string) (bool, error) {
	if err := s.requireComic(ctx, comicID); err != nil {
		return false, err
	}
	return s.social.ToggleLike(ctx, userID, comicID)
}

func (s *socialService) Unlike(ctx context.Context, userID, comicID string) error {
	if err := s.requireComic(ctx, comicID); err != nil {
		return err
	}
	return s.social.RemoveLike(ctx, userID, comicID)
}

func (s *socialService) IsLiked(ctx context.Context, userID, comicID string) (bool, error) {
	return s.social.IsLiked(ctx, userID, comicID)
}

func (s *socialService) LikeCount(ctx context.Context, comicID string) (int64, error) {
	return s.social.LikeCount(ctx, comicID)
}

func (s *socialService) ToggleFavorite(ctx context.Context, userID, comicID string) (bool, error) {
	if err := s.requireComic(ctx, comicID); err != nil {
		return false, err
	}
	return s.social.ToggleFavorite(ctx, userID, comicID)
}

func (s *socialService) IsFavorited(ctx context.Context, userID, comicID string) (bool, error) {
	return s.social.IsFavorited(ctx, userID, comicID)
}

func (s *socialService) Favorites(ctx context.Context, userID string) ([]ComicListItem, error) {
	comics, err := s.social.ListFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]ComicListItem, 0, len(comics))
	for _, comic := range comics {
		cover, err := s.comics.CoverImage(ctx, comic.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, ComicListItem{
			ID:          comic.ID,
			Text:        comic.Text,
			Description: comic.Description,
			Cover:       cover,
		})
	}
	return items, nil
}

func (s *socialService) AddComment(ctx context.Context, userID, comicID, text string) (*models.Comment, error) {
	if err := s.requireComic(ctx, comicID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:      uuid.New().String(),
		ComicID: comicID,
		UserID:  userID,
		Text:    text,
	}
	if err := s.social.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	// Reload joined with the author for the response.
	return s.social.GetCommentWithAuthor(ctx, comment.ID)
}

func (s *socialService) DeleteComment(ctx context.Context, userID, commentID string) error {
	comment, err := s.social.GetCommentWithAuthor(ctx, commentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCommentNotFound
	}
	if err != nil {
		return err
	}

	allowed := comment.UserID == userID
	if !allowed && comment.Comic != nil {
		allowed = comment.Comic.Creator == userID
	}
	if !allowed {
		return ErrCommentNotFound
	}
	return s.social.DeleteComment(ctx, commentID)
}

func (s *socialService) ToggleSubscription(ctx context.Context, userID, targetUserID string) (bool, error) {
	if userID == targetUserID {
		return false, ErrSelfSubscription
	}
	if _, err := s.users.FindByID(ctx, targetUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}
	return s.social.ToggleSubscription(ctx, userID, targetUserID)
}

func (s *socialService) IsSubscribed(ctx context.Context, userID, targetUserID string) (bool, error) {
	return s.social.IsSubscribed(ctx, userID, targetUserID)
}

func (s *socialService) requireComic(ctx context.Context, comicID string) error {
	exists, err := s.comics.Exists(ctx, comicID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrComicNotFound
	}
	return nil
}
