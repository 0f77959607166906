package dto

import (
	"time"

	"cinemavault/internal/http-api/models"
)

// SavedMovieResponse denormalizes the referenced movie for the saved list view.
type SavedMovieResponse struct {
	MovieID       int64     `json:"movie_id"`
	Title         string    `json:"title"`
	PosterURL     string    `json:"poster_url"`
	Description   *string   `json:"description,omitempty"`
	AverageRating float64   `json:"average_rating"`
	SavedAt       time.Time `json:"saved_at"`
}

func FromSavedMovieModel(s models.SavedMovie) SavedMovieResponse {
	resp := SavedMovieResponse{
		MovieID: s.MovieID,
		SavedAt: s.SavedAt,
	}
	if s.Movie != nil {
		resp.Title = s.Movie.Title
		resp.PosterURL = s.Movie.PosterURL
		resp.Description = s.Movie.Description
		resp.AverageRating = s.Movie.AverageRating
	}
	return resp
}
