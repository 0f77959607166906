package dto

import (
	"time"

	"cinemavault/internal/http-api/models"
)

// CreateMovieDTO binds the multipart form of POST /api/Movie. The poster
// file itself is read from the form separately; the release date is stamped
// server-side and never client-supplied.
type CreateMovieDTO struct {
	Title        string  `form:"Title" binding:"required,max=100"`
	Description  *string `form:"Description" binding:"omitempty,max=500"`
	TrailerURL   *string `form:"TrailerUrl" binding:"omitempty,max=300"`
	DirectorName *string `form:"DirectorName" binding:"omitempty,max=50"`
	GenreIDs     []int64 `form:"GenreIds"`
}

// UpdateMovieDTO binds the multipart form of PUT /api/Movie/:id. Every
// mutable field is overwritten, matching the admin edit workflow.
type UpdateMovieDTO struct {
	Title        string  `form:"Title" binding:"required,max=100"`
	Description  *string `form:"Description" binding:"omitempty,max=500"`
	TrailerURL   *string `form:"TrailerUrl" binding:"omitempty,max=300"`
	DirectorName *string `form:"DirectorName" binding:"omitempty,max=50"`
	GenreIDs     []int64 `form:"GenreIds"`
}

type MovieResponse struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Description   *string         `json:"description,omitempty"`
	PosterURL     string          `json:"poster_url"`
	TrailerURL    *string         `json:"trailer_url,omitempty"`
	DirectorName  *string         `json:"director_name,omitempty"`
	ReleaseDate   time.Time       `json:"release_date"`
	AverageRating float64         `json:"average_rating"`
	Genres        []GenreResponse `json:"genres"`
	IsSaved       bool            `json:"is_saved"`
}

func (d CreateMovieDTO) ToModel() models.Movie {
	return models.Movie{
		Title:        d.Title,
		Description:  d.Description,
		TrailerURL:   d.TrailerURL,
		DirectorName: d.DirectorName,
	}
}

func (d UpdateMovieDTO) ApplyTo(m *models.Movie) {
	m.Title = d.Title
	m.Description = d.Description
	m.TrailerURL = d.TrailerURL
	m.DirectorName = d.DirectorName
}

// FromMovieModel always yields a non-nil genres slice and a numeric average.
func FromMovieModel(m models.Movie, genres []models.Genre) MovieResponse {
	genreDTOs := make([]GenreResponse, 0, len(genres))
	for _, g := range genres {
		genreDTOs = append(genreDTOs, GenreResponse{ID: g.ID, Name: g.Name})
	}
	return MovieResponse{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		PosterURL:     m.PosterURL,
		TrailerURL:    m.TrailerURL,
		DirectorName:  m.DirectorName,
		ReleaseDate:   m.ReleaseDate,
		AverageRating: m.AverageRating,
		Genres:        genreDTOs,
	}
}
