package models

// UserSettings stores the push-delivery registration for a user. A user
// only receives new-comic notifications when a token is registered and
// notifications are enabled.
type UserSettings struct {
	UserID               string `gorm:"column:user_id;primaryKey;type:uuid" json:"user_id"`
	FCMToken             string `gorm:"column:fcm_token" json:"fcm_token,omitempty"`
	NotificationsEnabled bool   `gorm:"column:notifications_enabled;default:true" json:"notifications_enabled"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}
