package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cinemavault/internal/http-api/dto"
	"cinemavault/internal/http-api/middleware"
	"cinemavault/internal/http-api/service"
)

type UsersHandler struct {
	svc service.UserService
}

func NewUsersHandler(svc service.UserService) *UsersHandler {
	return &UsersHandler{svc: svc}
}

func (h *UsersHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.GET("/profile", requireAuth, h.GetProfile)
	rg.PATCH("/profile-picture", requireAuth, h.UpdateProfilePicture)
	rg.PATCH("/update-profile", requireAuth, h.UpdateProfile)
	rg.DELETE("/delete", requireAuth, h.Delete)
}

func (h *UsersHandler) GetProfile(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	profile, err := h.svc.GetCurrentUserProfile(ctx, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UsersHandler) UpdateProfilePicture(c *gin.Context) {
	picture, err := c.FormFile("ProfilePicture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile picture data"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	if err := h.svc.UpdateProfilePicture(ctx, middleware.UserID(c), picture, c.Request); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case isImageValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile picture updated successfully"})
}

func (h *UsersHandler) UpdateProfile(c *gin.Context) {
	var in dto.PatchUserInfoRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.UpdateUserInfo(ctx, middleware.UserID(c), in); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, service.ErrNameInUse):
			c.JSON(http.StatusConflict, gin.H{"error": "username already in use"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated successfully"})
}

func (h *UsersHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.DeleteCurrentUser(ctx, middleware.UserID(c)); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted successfully"})
}
