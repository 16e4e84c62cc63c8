package repository

import (
	"context"

	"gorm.io/gorm"

	"comichub/internal/http-api/models"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByLogin(ctx context.Context, login string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpdateName(ctx context.Context, id, name string) error
	// ChangePassword loads the stored hash inside a transaction, lets the
	// caller verify it, and only then writes the new hash. The whole unit
	// rolls back when verify fails.
	ChangePassword(ctx context.Context, id string, verify func(storedHash string) error, newHash string) error
	UpdateAvatar(ctx context.Context, id string, avatar []byte) error
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("login = ?", login).First(&user).Error; err != nil {
		// never return a zero-value struct alongside an error
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateName(ctx context.Context, id, name string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("name", name).Error
}

func (r *userRepository) ChangePassword(ctx context.Context, id string, verify func(storedHash string) error, newHash string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return err
		}
		if err := verify(user.Password); err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", id).
			Update("password", newHash).Error
	})
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id string, avatar []byte) error {
	// nil clears the avatar
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("avatar", avatar).Error
}
