package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"comichub/internal/http-api/models"
)

// Recipient is a subscriber eligible for push delivery: registered token,
// notifications not turned off.
type Recipient struct {
	UserID   string
	FCMToken string
}

type SettingsRepository interface {
	UpsertToken(ctx context.Context, userID, token string) error
	UpsertEnabled(ctx context.Context, userID string, enabled bool) error
	// NotifiableSubscribers lists subscribers of targetUserID that have a
	// push token registered and notifications enabled.
	NotifiableSubscribers(ctx context.Context, targetUserID string) ([]Recipient, error)
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) UpsertToken(ctx context.Context, userID, token string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"fcm_token"}),
	}).Create(&models.UserSettings{
		UserID:               userID,
		FCMToken:             token,
		NotificationsEnabled: true,
	}).Error
}

func (r *settingsRepository) UpsertEnabled(ctx context.Context, userID string, enabled bool) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"notifications_enabled"}),
	}).Create(&models.UserSettings{
		UserID:               userID,
		NotificationsEnabled: enabled,
	}).Error
}

func (r *settingsRepository) NotifiableSubscribers(ctx context.Context, targetUserID string) ([]Recipient, error) {
	var recipients []Recipient
	err := r.db.WithContext(ctx).Raw(
		`SELECT u.id AS user_id, s.fcm_token
		 FROM subscriptions sub
		 JOIN users u ON sub.subscriber_id = u.id
		 JOIN user_settings s ON u.id = s.user_id
		 WHERE sub.target_user_id = ?
		   AND s.fcm_token <> ''
		   AND s.notifications_enabled`, targetUserID).
		Scan(&recipients).Error
	return recipients, err
}
