package repository

import (
	"context"

	"gorm.io/gorm"

	"comichub/internal/http-api/models"
)

// SocialRepository covers the toggle resources (likes, favorites,
// subscriptions), their derived counts, and comments.
type SocialRepository interface {
	// ToggleLike flips the like state of (userID, comicID) and returns the
	// new state: true when the row was inserted, false when it was removed.
	ToggleLike(ctx context.Context, userID, comicID string) (bool, error)
	// RemoveLike deletes the pair if present; removing an absent like is
	// a no-op, not an error.
	RemoveLike(ctx context.Context, userID, comicID string) error
	IsLiked(ctx context.Context, userID, comicID string) (bool, error)
	LikeCount(ctx context.Context, comicID string) (int64, error)
	// LikeCountByCreator sums likes across all comics created by the user.
	LikeCountByCreator(ctx context.Context, userID string) (int64, error)

	ToggleFavorite(ctx context.Context, userID, comicID string) (bool, error)
	IsFavorited(ctx context.Context, userID, comicID string) (bool, error)
	ListFavorites(ctx context.Context, userID string) ([]models.Comic, error)

	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentWithAuthor(ctx context.Context, commentID string) (*models.Comment, error)
	ListComments(ctx context.Context, comicID string) ([]models.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error

	ToggleSubscription(ctx context.Context, subscriberID, targetUserID string) (bool, error)
	IsSubscribed(ctx context.Context, subscriberID, targetUserID string) (bool, error)
	SubscriberCount(ctx context.Context, userID string) (int64, error)
	SubscriptionCount(ctx context.Context, userID string) (int64, error)
	ListSubscribers(ctx context.Context, userID string) ([]models.User, error)
	ListSubscriptions(ctx context.Context, userID string) ([]models.User, error)
}

type socialRepository struct {
	db *gorm.DB
}

func NewSocialRepository(db *gorm.DB) SocialRepository {
	return &socialRepository{db: db}
}

// toggle implements the shared existence-flip for the join tables. The
// check and the insert/delete run in one transaction so double taps
// serialize instead of erroring.
func toggle(db *gorm.DB, model interface{}, insert func(tx *gorm.DB) error, query string, args ...interface{}) (bool, error) {
	var on bool
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(model).Where(query, args...).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			on = false
			return tx.Where(query, args...).Delete(model).Error
		}
		on = true
		return insert(tx)
	})
	return on, err
}

func (r *socialRepository) ToggleLike(ctx context.Context, userID, comicID string) (bool, error) {
	return toggle(r.db.WithContext(ctx), &models.Like{}, func(tx *gorm.DB) error {
		return tx.Create(&models.Like{UserID: userID, ComicID: comicID}).Error
	}, "user_id = ? AND comic_id = ?", userID, comicID)
}

func (r *socialRepository) RemoveLike(ctx context.Context, userID, comicID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND comic_id = ?", userID, comicID).
		Delete(&models.Like{}).Error
}

func (r *socialRepository) IsLiked(ctx context.Context, userID, comicID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND comic_id = ?", userID, comicID).
		Count(&count).Error
	return count > 0, err
}

func (r *socialRepository) LikeCount(ctx context.Context, comicID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("comic_id = ?", comicID).
		Count(&count).Error
	return count, err
}

func (r *socialRepository) LikeCountByCreator(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Joins("JOIN comics ON comics.id = likes.comic_id").
		Where("comics.creator = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *socialRepository) ToggleFavorite(ctx context.Context, userID, comicID string) (bool, error) {
	return toggle(r.db.WithContext(ctx), &models.Favorite{}, func(tx *gorm.DB) error {
		return tx.Create(&models.Favorite{UserID: userID, ComicID: comicID}).Error
	}, "user_id = ? AND comic_id = ?", userID, comicID)
}

func (r *socialRepository) IsFavorited(ctx context.Context, userID, comicID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND comic_id = ?", userID, comicID).
		Count(&count).Error
	return count > 0, err
}

func (r *socialRepository) ListFavorites(ctx context.Context, userID string) ([]models.Comic, error) {
	var comics []models.Comic
	err := r.db.WithContext(ctx).
		Select("comics.id", "comics.text", "comics.description", "comics.creator").
		Joins("JOIN favorites ON favorites.comic_id = comics.id").
		Where("favorites.user_id = ?", userID).
		Find(&comics).Error
	return comics, err
}

func (r *socialRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *socialRepository) GetCommentWithAuthor(ctx context.Context, commentID string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Comic").
		First(&comment, "id = ?", commentID).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *socialRepository) ListComments(ctx context.Context, comicID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("comic_id = ?", comicID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

func (r *socialRepository) DeleteComment(ctx context.Context, commentID string) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", commentID).Error
}

func (r *socialRepository) ToggleSubscription(ctx context.Context, subscriberID, targetUserID string) (bool, error) {
	return toggle(r.db.WithContext(ctx), &models.Subscription{}, func(tx *gorm.DB) error {
		return tx.Create(&models.Subscription{
			SubscriberID: subscriberID,
			TargetUserID: targetUserID,
		}).Error
	}, "subscriber_id = ? AND target_user_id = ?", subscriberID, targetUserID)
}

func (r *socialRepository) IsSubscribed(ctx context.Context, subscriberID, targetUserID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("subscriber_id = ? AND target_user_id = ?", subscriberID, targetUserID).
		Count(&count).Error
	return count > 0, err
}

func (r *socialRepository) SubscriberCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("target_user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *socialRepository) SubscriptionCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("subscriber_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *socialRepository) ListSubscribers(ctx context.Context, userID string) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Select("users.id", "users.name", "users.avatar").
		Joins("JOIN subscriptions ON subscriptions.subscriber_id = users.id").
		Where("subscriptions.target_user_id = ?", userID).
		Find(&users).Error
	return users, err
}

func (r *socialRepository) ListSubscriptions(ctx context.Context, userID string) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Select("users.id", "users.name", "users.avatar").
		Joins("JOIN subscriptions ON subscriptions.target_user_id = users.id").
		Where("subscriptions.subscriber_id = ?", userID).
		Find(&users).Error
	return users, err
}
