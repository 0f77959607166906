package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cinemavault/internal/http-api/dto"
	"cinemavault/internal/http-api/middleware"
	"cinemavault/internal/http-api/service"
)

type MovieHandler struct {
	svc       service.MovieService
	ratingSvc service.RatingService
}

func NewMovieHandler(svc service.MovieService, ratingSvc service.RatingService) *MovieHandler {
	return &MovieHandler{svc: svc, ratingSvc: ratingSvc}
}

func (h *MovieHandler) RegisterRoutes(rg *gin.RouterGroup, optionalAuth, requireAuth, requireAdmin gin.HandlerFunc) {
	// Public reads; optional auth resolves is_saved for signed-in users
	rg.GET("", optionalAuth, h.List)
	rg.GET("/search", optionalAuth, h.Search)
	rg.GET("/latest/:count", optionalAuth, h.Latest)
	rg.GET("/top-rated/:count", optionalAuth, h.TopRated)
	rg.GET("/genre/:genre_id", optionalAuth, h.ByGenre)
	rg.GET("/:movie_id", optionalAuth, h.Get)

	// Authenticated user routes
	rg.POST("/:movie_id/rate", requireAuth, h.Rate)

	// Admin-only routes
	rg.POST("", requireAuth, requireAdmin, h.Create)
	rg.PUT("/:movie_id", requireAuth, requireAdmin, h.Update)
	rg.DELETE("/:movie_id", requireAuth, requireAdmin, h.Delete)
}

func (h *MovieHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.GetAllMovies(ctx, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": len(list)})
}

func (h *MovieHandler) Latest(c *gin.Context) {
	count, ok := parseCount(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.GetLatestMovies(ctx, count, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": len(list)})
}

func (h *MovieHandler) TopRated(c *gin.Context) {
	count, ok := parseCount(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.GetTopRatedMovies(ctx, count, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": len(list)})
}

func (h *MovieHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q query parameter is required"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.SearchMovies(ctx, q, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": len(list)})
}

func (h *MovieHandler) ByGenre(c *gin.Context) {
	genreID, err := strconv.ParseInt(c.Param("genre_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid genre id"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.GetMoviesByGenreID(ctx, genreID, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": len(list)})
}

func (h *MovieHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("movie_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	movie, err := h.svc.GetMovieDetailsByID(ctx, id, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, movie)
}

func (h *MovieHandler) Create(c *gin.Context) {
	var in dto.CreateMovieDTO
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// missing poster is a validation failure, not an upload error
	poster, err := c.FormFile("PosterImg")
	if err != nil {
		poster = nil
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	created, err := h.svc.AddMovie(ctx, in, poster, c.Request)
	if err != nil {
		if isImageValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *MovieHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("movie_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var in dto.UpdateMovieDTO
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	poster, err := c.FormFile("PosterImg")
	if err != nil {
		poster = nil
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	updated, err := h.svc.UpdateMovie(ctx, id, in, poster, c.Request)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMovieNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
		case isImageValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *MovieHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("movie_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.DeleteMovie(ctx, id); err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MovieHandler) Rate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("movie_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var in dto.RateMovieRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	result, err := h.ratingSvc.RateMovie(ctx, middleware.UserID(c), id, in.Score)
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseCount(c *gin.Context) (int, bool) {
	count, err := strconv.Atoi(c.Param("count"))
	if err != nil || count < 1 || count > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count must be between 1 and 100"})
		return 0, false
	}
	return count, true
}

func isImageValidationError(err error) bool {
	return errors.Is(err, service.ErrPosterRequired) ||
		errors.Is(err, service.ErrImageRequired) ||
		errors.Is(err, service.ErrImageFormat) ||
		errors.Is(err, service.ErrImageNotImage) ||
		errors.Is(err, service.ErrImageTooLarge)
}
