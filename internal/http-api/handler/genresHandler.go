package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cinemavault/internal/http-api/dto"
	"cinemavault/internal/http-api/repository"
)

type GenreHandler struct {
	repo repository.GenreRepository
}

func NewGenreHandler(repo repository.GenreRepository) *GenreHandler {
	return &GenreHandler{repo: repo}
}

func (h *GenreHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
}

func (h *GenreHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	genres, err := h.repo.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.GenreResponse, 0, len(genres))
	for _, g := range genres {
		resp = append(resp, dto.GenreResponse{ID: g.ID, Name: g.Name})
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
