package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"comichub/internal/http-api/models"
)

// LoginAttemptRepository tracks consecutive authentication failures per
// login and the resulting lockout window.
type LoginAttemptRepository interface {
	// BlockedUntil returns the lockout expiry for the login, or nil when
	// the login is not currently blocked.
	BlockedUntil(ctx context.Context, login string) (*time.Time, error)
	// TrackFailure increments the failure counter and, once the counter
	// reaches threshold, sets a lockout expiring after the given window.
	// The returned value is the cumulative failure count.
	TrackFailure(ctx context.Context, login string, threshold int, window time.Duration) (int, error)
	// Clear removes the tracking row after a successful login.
	Clear(ctx context.Context, login string) error
}

type loginAttemptRepository struct {
	db *gorm.DB
}

func NewLoginAttemptRepository(db *gorm.DB) LoginAttemptRepository {
	return &loginAttemptRepository{db: db}
}

func (r *loginAttemptRepository) BlockedUntil(ctx context.Context, login string) (*time.Time, error) {
	var attempt models.LoginAttempt
	err := r.db.WithContext(ctx).
		Where("login = ? AND blocked_until > ?", login, time.Now()).
		First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return attempt.BlockedUntil, nil
}

func (r *loginAttemptRepository) TrackFailure(ctx context.Context, login string, threshold int, window time.Duration) (int, error) {
	var attempts int
	now := time.Now()

	// Single transaction so two simultaneous failures for the same login
	// serialize on the row lock.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "login"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"attempts":     gorm.Expr("attempts + 1"),
				"last_attempt": now,
			}),
		}).Create(&models.LoginAttempt{
			Login:       login,
			Attempts:    1,
			LastAttempt: &now,
		}).Error; err != nil {
			return err
		}

		var attempt models.LoginAttempt
		if err := tx.First(&attempt, "login = ?", login).Error; err != nil {
			return err
		}
		attempts = attempt.Attempts

		if attempts >= threshold {
			until := now.Add(window)
			return tx.Model(&models.LoginAttempt{}).
				Where("login = ?", login).
				Update("blocked_until", until).Error
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return attempts, nil
}

func (r *loginAttemptRepository) Clear(ctx context.Context, login string) error {
	return r.db.WithContext(ctx).
		Where("login = ?", login).
		Delete(&models.LoginAttempt{}).Error
}
