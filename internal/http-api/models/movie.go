package models

import "time"

type Movie struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title         string    `json:"title" gorm:"size:100;not null"`
	Description   *string   `json:"description,omitempty" gorm:"size:500"`
	PosterURL     string    `json:"poster_url" gorm:"not null"`
	TrailerURL    *string   `json:"trailer_url,omitempty" gorm:"size:300"`
	DirectorName  *string   `json:"director_name,omitempty" gorm:"size:50"`
	ReleaseDate   time.Time `json:"release_date"`
	AverageRating float64   `json:"average_rating" gorm:"type:decimal(4,2);default:0"`

	// associations
	Genres []Genre `json:"genres,omitempty" gorm:"many2many:movie_genres;constraint:OnDelete:CASCADE;"`
}

func (Movie) TableName() string {
	return "movies"
}
