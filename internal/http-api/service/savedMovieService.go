package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"cinemavault/internal/http-api/dto"
	"cinemavault/internal/http-api/repository"
)

var (
	ErrAlreadySaved = errors.New("movie already saved")
	ErrNotSaved     = errors.New("movie not in saved list")
)

type SavedMovieService interface {
	Save(ctx context.Context, userID string, movieID int64) error
	Unsave(ctx context.Context, userID string, movieID int64) error
	List(ctx context.Context, userID string) ([]dto.SavedMovieResponse, error)
}

type savedMovieService struct {
	repo      repository.SavedMovieRepository
	movieRepo repository.MovieRepository
}

func NewSavedMovieService(repo repository.SavedMovieRepository, movieRepo repository.MovieRepository) SavedMovieService {
	return &savedMovieService{repo: repo, movieRepo: movieRepo}
}

func (s *savedMovieService) Save(ctx context.Context, userID string, movieID int64) error {
	if _, err := s.movieRepo.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMovieNotFound
		}
		return err
	}

	exists, err := s.repo.Exists(ctx, userID, movieID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadySaved
	}
	return s.repo.Add(ctx, userID, movieID)
}

func (s *savedMovieService) Unsave(ctx context.Context, userID string, movieID int64) error {
	if err := s.repo.Remove(ctx, userID, movieID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotSaved
		}
		return err
	}
	return nil
}

func (s *savedMovieService) List(ctx context.Context, userID string) ([]dto.SavedMovieResponse, error) {
	saved, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SavedMovieResponse, 0, len(saved))
	for _, entry := range saved {
		out = append(out, dto.FromSavedMovieModel(entry))
	}
	return out, nil
}
