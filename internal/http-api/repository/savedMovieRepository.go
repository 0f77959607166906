package repository

import (
	"context"
	"fmt"

	"cinemavault/internal/http-api/models"

	"gorm.io/gorm"
)

type SavedMovieRepository interface {
	Add(ctx context.Context, userID string, movieID int64) error
	Remove(ctx context.Context, userID string, movieID int64) error
	List(ctx context.Context, userID string) ([]models.SavedMovie, error)
	Exists(ctx context.Context, userID string, movieID int64) (bool, error)
	RemoveByMovie(ctx context.Context, movieID int64) error
	RemoveByUser(ctx context.Context, userID string) error
}

type savedMovieRepository struct {
	db *gorm.DB
}

func NewSavedMovieRepository(db *gorm.DB) SavedMovieRepository {
	return &savedMovieRepository{db: db}
}

func (r *savedMovieRepository) Add(ctx context.Context, userID string, movieID int64) error {
	saved := &models.SavedMovie{
		UserID:  userID,
		MovieID: movieID,
	}
	if err := r.db.WithContext(ctx).Create(saved).Error; err != nil {
		return fmt.Errorf("save movie: %w", err)
	}
	return nil
}

func (r *savedMovieRepository) Remove(ctx context.Context, userID string, movieID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&models.SavedMovie{})

	if result.Error != nil {
		return fmt.Errorf("unsave movie: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *savedMovieRepository) List(ctx context.Context, userID string) ([]models.SavedMovie, error) {
	var saved []models.SavedMovie
	if err := r.db.WithContext(ctx).
		Preload("Movie").
		Where("user_id = ?", userID).
		Order("saved_at DESC").
		Find(&saved).Error; err != nil {
		return nil, fmt.Errorf("list saved movies: %w", err)
	}
	return saved, nil
}

func (r *savedMovieRepository) Exists(ctx context.Context, userID string, movieID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SavedMovie{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// RemoveByMovie clears every user's bookmark of a movie when the movie goes away.
func (r *savedMovieRepository) RemoveByMovie(ctx context.Context, movieID int64) error {
	if err := r.db.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Delete(&models.SavedMovie{}).Error; err != nil {
		return fmt.Errorf("remove saved entries for movie: %w", err)
	}
	return nil
}

// RemoveByUser clears a user's bookmarks when the account goes away.
func (r *savedMovieRepository) RemoveByUser(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.SavedMovie{}).Error; err != nil {
		return fmt.Errorf("remove saved entries for user: %w", err)
	}
	return nil
}
