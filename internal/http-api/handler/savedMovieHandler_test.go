package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cinemavault/internal/http-api/dto"
	"cinemavault/internal/http-api/handler"
	"cinemavault/internal/http-api/service"
)

type MockSavedMovieService struct {
	mock.Mock
}

func (m *MockSavedMovieService) Save(ctx context.Context, userID string, movieID int64) error {
	args := m.Called(ctx, userID, movieID)
	return args.Error(0)
}

func (m *MockSavedMovieService) Unsave(ctx context.Context, userID string, movieID int64) error {
	args := m.Called(ctx, userID, movieID)
	return args.Error(0)
}

func (m *MockSavedMovieService) List(ctx context.Context, userID string) ([]dto.SavedMovieResponse, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]dto.SavedMovieResponse), args.Error(1)
}

func setupSavedMovieRouter(svc *MockSavedMovieService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler.NewSavedMovieHandler(svc).
		RegisterRoutes(r.Group("/api/SavedMovie"), mockAuthMiddleware(userID, "user"))
	return r
}

func TestSavedMovieHandler_Save(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		svc := new(MockSavedMovieService)
		svc.On("Save", mock.Anything, "user-1", int64(5)).Return(nil).Once()

		req, _ := http.NewRequest(http.MethodPost, "/api/SavedMovie/5", nil)
		w := httptest.NewRecorder()
		setupSavedMovieRouter(svc, "user-1").ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Duplicate", func(t *testing.T) {
		svc := new(MockSavedMovieService)
		svc.On("Save", mock.Anything, "user-1", int64(5)).Return(service.ErrAlreadySaved).Once()

		req, _ := http.NewRequest(http.MethodPost, "/api/SavedMovie/5", nil)
		w := httptest.NewRecorder()
		setupSavedMovieRouter(svc, "user-1").ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("MovieMissing", func(t *testing.T) {
		svc := new(MockSavedMovieService)
		svc.On("Save", mock.Anything, "user-1", int64(99)).Return(service.ErrMovieNotFound).Once()

		req, _ := http.NewRequest(http.MethodPost, "/api/SavedMovie/99", nil)
		w := httptest.NewRecorder()
		setupSavedMovieRouter(svc, "user-1").ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSavedMovieHandler_Unsave(t *testing.T) {
	t.Run("NoContent", func(t *testing.T) {
		svc := new(MockSavedMovieService)
		svc.On("Unsave", mock.Anything, "user-1", int64(5)).Return(nil).Once()

		req, _ := http.NewRequest(http.MethodDelete, "/api/SavedMovie/5", nil)
		w := httptest.NewRecorder()
		setupSavedMovieRouter(svc, "user-1").ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("NotSaved", func(t *testing.T) {
		svc := new(MockSavedMovieService)
		svc.On("Unsave", mock.Anything, "user-1", int64(5)).Return(service.ErrNotSaved).Once()

		req, _ := http.NewRequest(http.MethodDelete, "/api/SavedMovie/5", nil)
		w := httptest.NewRecorder()
		setupSavedMovieRouter(svc, "user-1").ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSavedMovieHandler_List(t *testing.T) {
	svc := new(MockSavedMovieService)
	svc.On("List", mock.Anything, "user-1").Return([]dto.SavedMovieResponse{
		{MovieID: 1, Title: "Heat"},
	}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/SavedMovie", nil)
	w := httptest.NewRecorder()
	setupSavedMovieRouter(svc, "user-1").ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(1), response["total"])
}
