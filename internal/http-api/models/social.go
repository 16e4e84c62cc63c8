package models

import "time"

// Like and Favorite are toggle resources: the mere existence of the
// (user, comic) row represents the "on" state.

type Like struct {
	UserID  string `gorm:"column:user_id;primaryKey;type:uuid" json:"user_id"`
	ComicID string `gorm:"column:comic_id;primaryKey;type:uuid" json:"comic_id"`

	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Comic *Comic `gorm:"foreignKey:ComicID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Like) TableName() string {
	return "likes"
}

type Favorite struct {
	UserID  string `gorm:"column:user_id;primaryKey;type:uuid" json:"user_id"`
	ComicID string `gorm:"column:comic_id;primaryKey;type:uuid" json:"comic_id"`

	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Comic *Comic `gorm:"foreignKey:ComicID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Favorite) TableName() string {
	return "favorites"
}

type Comment struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	ComicID   string    `gorm:"column:comic_id;type:uuid;not null;index" json:"comic_id"`
	UserID    string    `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Text      string    `gorm:"not null;type:text" json:"text"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Comic *Comic `gorm:"foreignKey:ComicID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}

// Subscription is directional: subscriber follows target. Self-subscription
// is rejected at the service layer.
type Subscription struct {
	SubscriberID string `gorm:"column:subscriber_id;primaryKey;type:uuid" json:"subscriber_id"`
	TargetUserID string `gorm:"column:target_user_id;primaryKey;type:uuid" json:"target_user_id"`

	Subscriber *User `gorm:"foreignKey:SubscriberID;constraint:OnDelete:CASCADE" json:"-"`
	Target     *User `gorm:"foreignKey:TargetUserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
