package repository

import (
	"context"
	"fmt"

	"cinemavault/internal/http-api/models"

	"gorm.io/gorm"
)

type GenreRepository interface {
	GetAll(ctx context.Context) ([]models.Genre, error)
	GetByMovieID(ctx context.Context, movieID int64) ([]models.Genre, error)
	Create(ctx context.Context, g *models.Genre) error
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) GetAll(ctx context.Context) ([]models.Genre, error) {
	var list []models.Genre
	if err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}
	return list, nil
}

func (r *genreRepository) GetByMovieID(ctx context.Context, movieID int64) ([]models.Genre, error) {
	var list []models.Genre
	if err := r.db.WithContext(ctx).
		Model(&models.Genre{}).
		Joins("JOIN movie_genres mg ON mg.genre_id = genres.id").
		Where("mg.movie_id = ?", movieID).
		Order("name asc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get genres by movie: %w", err)
	}
	return list, nil
}

func (r *genreRepository) Create(ctx context.Context, g *models.Genre) error {
	if err := r.db.WithContext(ctx).Create(g).Error; err != nil {
		return fmt.Errorf("create genre: %w", err)
	}
	return nil
}
