package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"cinemavault/internal/http-api/middleware"
	"cinemavault/internal/http-api/service"
)

type SavedMovieHandler struct {
	svc service.SavedMovieService
}

func NewSavedMovieHandler(svc service.SavedMovieService) *SavedMovieHandler {
	return &SavedMovieHandler{svc: svc}
}

func (h *SavedMovieHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.GET("", requireAuth, h.List)
	rg.POST("/:movie_id", requireAuth, h.Save)
	rg.DELETE("/:movie_id", requireAuth, h.Unsave)
}

func (h *SavedMovieHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.List(ctx, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": len(list)})
}

func (h *SavedMovieHandler) Save(c *gin.Context) {
	movieID, err := strconv.ParseInt(c.Param("movie_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Save(ctx, middleware.UserID(c), movieID); err != nil {
		switch {
		case errors.Is(err, service.ErrMovieNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
		case errors.Is(err, service.ErrAlreadySaved):
			c.JSON(http.StatusConflict, gin.H{"error": "movie already saved"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "movie saved"})
}

func (h *SavedMovieHandler) Unsave(c *gin.Context) {
	movieID, err := strconv.ParseInt(c.Param("movie_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid movie id"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Unsave(ctx, middleware.UserID(c), movieID); err != nil {
		if errors.Is(err, service.ErrNotSaved) {
			c.JSON(http.StatusNotFound, gin.H{"error": "movie not in saved list"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
