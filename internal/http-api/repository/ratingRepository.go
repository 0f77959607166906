package repository

import (
	"context"
	"errors"
	"fmt"

	"cinemavault/internal/http-api/models"

	"gorm.io/gorm"
)

type RatingRepository interface {
	Get(ctx context.Context, userID string, movieID int64) (*models.Rating, error)
	Upsert(ctx context.Context, rating *models.Rating) error
	AverageByMovie(ctx context.Context, movieID int64) (float64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Get(ctx context.Context, userID string, movieID int64) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get rating: %w", err)
	}
	return &rating, nil
}

// Upsert overwrites the caller's previous vote if one exists.
func (r *ratingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	existing, err := r.Get(ctx, rating.UserID, rating.MovieID)
	if err != nil {
		return err
	}
	if existing != nil {
		existing.Score = rating.Score
		if err := r.db.WithContext(ctx).Save(existing).Error; err != nil {
			return fmt.Errorf("update rating: %w", err)
		}
		*rating = *existing
		return nil
	}
	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		return fmt.Errorf("create rating: %w", err)
	}
	return nil
}

func (r *ratingRepository) AverageByMovie(ctx context.Context, movieID int64) (float64, error) {
	var avg float64
	if err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("movie_id = ?", movieID).
		Select("COALESCE(AVG(score), 0)").
		Scan(&avg).Error; err != nil {
		return 0, fmt.Errorf("average rating: %w", err)
	}
	return avg, nil
}
