package models

// explicit join model so the table keeps its own id column
type MovieGenre struct {
	ID      int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	MovieID int64 `json:"movie_id" gorm:"index;not null"`
	GenreID int64 `json:"genre_id" gorm:"index;not null"`
}

func (MovieGenre) TableName() string {
	return "movie_genres"
}
