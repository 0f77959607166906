package service

import (
	"context"
	"errors"
	"math"

	"gorm.io/gorm"

	"cinemavault/internal/cache"
	"cinemavault/internal/http-api/dto"
	"cinemavault/internal/http-api/models"
	"cinemavault/internal/http-api/repository"
)

type RatingService interface {
	RateMovie(ctx context.Context, userID string, movieID int64, score int) (*dto.RatingResponse, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	movieRepo  repository.MovieRepository
	movieCache *cache.MovieCache
}

func NewRatingService(ratingRepo repository.RatingRepository, movieRepo repository.MovieRepository, movieCache *cache.MovieCache) RatingService {
	return &ratingService{ratingRepo: ratingRepo, movieRepo: movieRepo, movieCache: movieCache}
}

// RateMovie upserts the caller's vote and recomputes the movie's persisted
// average.
func (s *ratingService) RateMovie(ctx context.Context, userID string, movieID int64, score int) (*dto.RatingResponse, error) {
	if _, err := s.movieRepo.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	rating := &models.Rating{
		UserID:  userID,
		MovieID: movieID,
		Score:   score,
	}
	if err := s.ratingRepo.Upsert(ctx, rating); err != nil {
		return nil, err
	}

	avg, err := s.ratingRepo.AverageByMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}
	avg = math.Round(avg*100) / 100
	if err := s.movieRepo.UpdateAverageRating(ctx, movieID, avg); err != nil {
		return nil, err
	}

	s.movieCache.Invalidate(ctx)
	return &dto.RatingResponse{
		MovieID:       movieID,
		Score:         score,
		AverageRating: avg,
	}, nil
}
