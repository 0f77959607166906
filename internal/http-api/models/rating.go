package models

import "time"

type Rating struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index"`
	MovieID   int64     `json:"movie_id" gorm:"not null;index"`
	Score     int       `json:"score" gorm:"not null;check:score >= 1 AND score <= 10"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Movie Movie `json:"movie,omitempty" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;"`
}

func (Rating) TableName() string {
	return "ratings"
}
