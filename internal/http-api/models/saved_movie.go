package models

import "time"

type SavedMovie struct {
	ID      int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  string    `gorm:"type:uuid;not null;index" json:"user_id"`
	MovieID int64     `gorm:"not null;index" json:"movie_id"`
	SavedAt time.Time `gorm:"autoCreateTime" json:"saved_at"`

	// Associations
	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	Movie *Movie `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;" json:"movie,omitempty"`
}

func (SavedMovie) TableName() string {
	return "saved_movies"
}
