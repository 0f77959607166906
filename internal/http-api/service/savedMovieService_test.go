package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cinemavault/internal/http-api/models"
	"cinemavault/internal/http-api/service"
)

func TestSavedMovieService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		saved := new(MockSavedMovieRepository)
		movies := new(MockMovieRepository)
		movies.On("GetByID", ctx, int64(5)).Return(&models.Movie{ID: 5}, nil).Once()
		saved.On("Exists", ctx, "user-1", int64(5)).Return(false, nil).Once()
		saved.On("Add", ctx, "user-1", int64(5)).Return(nil).Once()

		err := service.NewSavedMovieService(saved, movies).Save(ctx, "user-1", 5)

		assert.NoError(t, err)
		saved.AssertExpectations(t)
	})

	t.Run("MovieMissing", func(t *testing.T) {
		saved := new(MockSavedMovieRepository)
		movies := new(MockMovieRepository)
		movies.On("GetByID", ctx, int64(99)).Return(nil, gorm.ErrRecordNotFound).Once()

		err := service.NewSavedMovieService(saved, movies).Save(ctx, "user-1", 99)

		assert.ErrorIs(t, err, service.ErrMovieNotFound)
		saved.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AlreadySaved", func(t *testing.T) {
		saved := new(MockSavedMovieRepository)
		movies := new(MockMovieRepository)
		movies.On("GetByID", ctx, int64(5)).Return(&models.Movie{ID: 5}, nil).Once()
		saved.On("Exists", ctx, "user-1", int64(5)).Return(true, nil).Once()

		err := service.NewSavedMovieService(saved, movies).Save(ctx, "user-1", 5)

		assert.ErrorIs(t, err, service.ErrAlreadySaved)
		saved.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSavedMovieService_Unsave(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		saved := new(MockSavedMovieRepository)
		saved.On("Remove", ctx, "user-1", int64(5)).Return(nil).Once()

		err := service.NewSavedMovieService(saved, new(MockMovieRepository)).Unsave(ctx, "user-1", 5)
		assert.NoError(t, err)
	})

	t.Run("NotSaved", func(t *testing.T) {
		saved := new(MockSavedMovieRepository)
		saved.On("Remove", ctx, "user-1", int64(5)).Return(gorm.ErrRecordNotFound).Once()

		err := service.NewSavedMovieService(saved, new(MockMovieRepository)).Unsave(ctx, "user-1", 5)
		assert.ErrorIs(t, err, service.ErrNotSaved)
	})
}

func TestSavedMovieService_List(t *testing.T) {
	ctx := context.Background()
	saved := new(MockSavedMovieRepository)
	desc := "a heist goes sideways"
	saved.On("List", ctx, "user-1").Return([]models.SavedMovie{
		{MovieID: 1, Movie: &models.Movie{ID: 1, Title: "Heat", Description: &desc, AverageRating: 8.7}},
		{MovieID: 2},
	}, nil).Once()

	list, err := service.NewSavedMovieService(saved, new(MockMovieRepository)).List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "Heat", list[0].Title)
	assert.Equal(t, 8.7, list[0].AverageRating)
	// entries whose movie row is gone still list with bare IDs
	assert.Equal(t, int64(2), list[1].MovieID)
	assert.Empty(t, list[1].Title)
}

func TestRatingService_RateMovie(t *testing.T) {
	ctx := context.Background()

	t.Run("MovieMissing", func(t *testing.T) {
		ratings := new(MockRatingRepository)
		movies := new(MockMovieRepository)
		movies.On("GetByID", ctx, int64(99)).Return(nil, gorm.ErrRecordNotFound).Once()

		_, err := service.NewRatingService(ratings, movies, nil).RateMovie(ctx, "user-1", 99, 8)

		assert.ErrorIs(t, err, service.ErrMovieNotFound)
		ratings.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("UpsertsAndPersistsRoundedAverage", func(t *testing.T) {
		ratings := new(MockRatingRepository)
		movies := new(MockMovieRepository)
		movies.On("GetByID", ctx, int64(5)).Return(&models.Movie{ID: 5}, nil).Once()
		ratings.On("Upsert", ctx, mock.MatchedBy(func(r *models.Rating) bool {
			return r.UserID == "user-1" && r.MovieID == 5 && r.Score == 9
		})).Return(nil).Once()
		ratings.On("AverageByMovie", ctx, int64(5)).Return(8.666666, nil).Once()
		movies.On("UpdateAverageRating", ctx, int64(5), 8.67).Return(nil).Once()

		resp, err := service.NewRatingService(ratings, movies, nil).RateMovie(ctx, "user-1", 5, 9)

		require.NoError(t, err)
		assert.Equal(t, 9, resp.Score)
		assert.Equal(t, 8.67, resp.AverageRating)
		movies.AssertExpectations(t)
	})
}

type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Get(ctx context.Context, userID string, movieID int64) (*models.Rating, error) {
	args := m.Called(ctx, userID, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) AverageByMovie(ctx context.Context, movieID int64) (float64, error) {
	args := m.Called(ctx, movieID)
	return args.Get(0).(float64), args.Error(1)
}
