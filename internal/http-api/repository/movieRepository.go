package repository

import (
	"context"
	"fmt"

	"cinemavault/internal/http-api/models"

	"gorm.io/gorm"
)

type MovieRepository interface {
	GetAll(ctx context.Context) ([]models.Movie, error)
	GetByID(ctx context.Context, id int64) (*models.Movie, error)
	GetByIDWithGenres(ctx context.Context, id int64) (*models.Movie, error)
	GetLatest(ctx context.Context, count int) ([]models.Movie, error)
	GetTopRated(ctx context.Context, count int) ([]models.Movie, error)
	SearchByTitle(ctx context.Context, term string) ([]models.Movie, error)
	GetByGenreID(ctx context.Context, genreID int64) ([]models.Movie, error)
	Create(ctx context.Context, m *models.Movie) error
	Update(ctx context.Context, m *models.Movie) error
	Delete(ctx context.Context, id int64) error
	ReplaceGenres(ctx context.Context, movieID int64, genreIDs []int64) error
	UpdateAverageRating(ctx context.Context, movieID int64, avg float64) error
}

type movieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

func (r *movieRepository) GetAll(ctx context.Context) ([]models.Movie, error) {
	var list []models.Movie
	if err := r.db.WithContext(ctx).
		Order("release_date desc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}
	return list, nil
}

func (r *movieRepository) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	var m models.Movie
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByIDWithGenres eagerly loads the genre association for the details view.
func (r *movieRepository) GetByIDWithGenres(ctx context.Context, id int64) (*models.Movie, error) {
	var m models.Movie
	if err := r.db.WithContext(ctx).Preload("Genres").First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *movieRepository) GetLatest(ctx context.Context, count int) ([]models.Movie, error) {
	var list []models.Movie
	if err := r.db.WithContext(ctx).
		Order("release_date desc").
		Limit(count).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get latest movies: %w", err)
	}
	return list, nil
}

func (r *movieRepository) GetTopRated(ctx context.Context, count int) ([]models.Movie, error) {
	var list []models.Movie
	if err := r.db.WithContext(ctx).
		Order("average_rating desc").
		Limit(count).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get top rated movies: %w", err)
	}
	return list, nil
}

// SearchByTitle performs a case-insensitive substring match on title.
func (r *movieRepository) SearchByTitle(ctx context.Context, term string) ([]models.Movie, error) {
	var list []models.Movie
	if err := r.db.WithContext(ctx).
		Where("title ILIKE ?", "%"+term+"%").
		Order("release_date desc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("search movies by title: %w", err)
	}
	return list, nil
}

func (r *movieRepository) GetByGenreID(ctx context.Context, genreID int64) ([]models.Movie, error) {
	var list []models.Movie
	if err := r.db.WithContext(ctx).
		Model(&models.Movie{}).
		Joins("JOIN movie_genres mg ON mg.movie_id = movies.id").
		Where("mg.genre_id = ?", genreID).
		Order("release_date desc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get movies by genre: %w", err)
	}
	return list, nil
}

func (r *movieRepository) Create(ctx context.Context, m *models.Movie) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create movie: %w", err)
	}
	return nil
}

func (r *movieRepository) Update(ctx context.Context, m *models.Movie) error {
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return fmt.Errorf("update movie: %w", err)
	}
	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Movie{}, id).Error; err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	return nil
}

// ReplaceGenres swaps the movie's genre set for the given ids inside one transaction.
func (r *movieRepository) ReplaceGenres(ctx context.Context, movieID int64, genreIDs []int64) error {
	tx := r.db.WithContext(ctx).Begin()
	var m models.Movie
	if err := tx.First(&m, movieID).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("movie not found: %w", err)
	}
	genres := make([]models.Genre, 0, len(genreIDs))
	for _, id := range genreIDs {
		genres = append(genres, models.Genre{ID: id})
	}
	if err := tx.Model(&m).Association("Genres").Replace(&genres); err != nil {
		tx.Rollback()
		return fmt.Errorf("replace genres: %w", err)
	}
	return tx.Commit().Error
}

func (r *movieRepository) UpdateAverageRating(ctx context.Context, movieID int64, avg float64) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Movie{}).
		Where("id = ?", movieID).
		Update("average_rating", avg).Error; err != nil {
		return fmt.Errorf("update average rating: %w", err)
	}
	return nil
}
