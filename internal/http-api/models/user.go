package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Login    string `gorm:"uniqueIndex;not null" json:"login"`
	Password string `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	Name     string `gorm:"not null" json:"name"`
	Avatar   []byte `gorm:"type:bytea" json:"-"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
