package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultProfilePictureURL = "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_960_720.png"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID                string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username          string    `gorm:"uniqueIndex;not null" json:"username"`
	Email             string    `gorm:"uniqueIndex;not null" json:"email"`
	Password          string    `gorm:"column:password_hash;not null" json:"-"`
	Role              string    `gorm:"default:'user';not null" json:"role"` // "user" or "admin"
	ProfilePictureURL string    `gorm:"size:500" json:"profile_picture_url"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// BeforeCreate sets the UUID and the placeholder picture before insert.
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.ProfilePictureURL == "" {
		user.ProfilePictureURL = DefaultProfilePictureURL
	}
	return
}

func (User) TableName() string {
	return "users"
}
