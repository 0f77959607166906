package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cinemavault/internal/http-api/dto"
	"cinemavault/internal/http-api/service"
)

type UserPermissionHandler struct {
	svc service.UserPermissionService
}

func NewUserPermissionHandler(svc service.UserPermissionService) *UserPermissionHandler {
	return &UserPermissionHandler{svc: svc}
}

func (h *UserPermissionHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth, requireAdmin gin.HandlerFunc) {
	rg.POST("", requireAuth, requireAdmin, h.Add)
	rg.DELETE("", requireAuth, requireAdmin, h.Remove)
	rg.GET("/:user_id", requireAuth, requireAdmin, h.ListByUser)
}

func (h *UserPermissionHandler) Add(c *gin.Context) {
	var in dto.UserPermissionRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.AddPermissionToUser(ctx, in); err != nil {
		if errors.Is(err, service.ErrPermissionExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user permission already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "permission added to user successfully"})
}

func (h *UserPermissionHandler) Remove(c *gin.Context) {
	var in dto.UserPermissionRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.RemovePermissionFromUser(ctx, in); err != nil {
		if errors.Is(err, service.ErrPermissionNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user permission does not exist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "permission removed from user successfully"})
}

func (h *UserPermissionHandler) ListByUser(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user id is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.GetUserPermissionsByUserID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}
