package repository

import (
	"context"
	"errors"
	"fmt"

	"cinemavault/internal/http-api/models"

	"gorm.io/gorm"
)

type UserPermissionRepository interface {
	Get(ctx context.Context, permissionID int, userID string) (*models.UserPermission, error)
	ListByUserID(ctx context.Context, userID string) ([]models.UserPermission, error)
	Add(ctx context.Context, up *models.UserPermission) error
	Remove(ctx context.Context, up *models.UserPermission) error
	RemoveByUser(ctx context.Context, userID string) error
}

type userPermissionRepository struct {
	db *gorm.DB
}

func NewUserPermissionRepository(db *gorm.DB) UserPermissionRepository {
	return &userPermissionRepository{db: db}
}

// Get returns nil, nil when the pair does not exist.
func (r *userPermissionRepository) Get(ctx context.Context, permissionID int, userID string) (*models.UserPermission, error) {
	var up models.UserPermission
	err := r.db.WithContext(ctx).
		Where("permission_id = ? AND user_id = ?", permissionID, userID).
		First(&up).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user permission: %w", err)
	}
	return &up, nil
}

func (r *userPermissionRepository) ListByUserID(ctx context.Context, userID string) ([]models.UserPermission, error) {
	var list []models.UserPermission
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list user permissions: %w", err)
	}
	return list, nil
}

func (r *userPermissionRepository) Add(ctx context.Context, up *models.UserPermission) error {
	if err := r.db.WithContext(ctx).Create(up).Error; err != nil {
		return fmt.Errorf("add user permission: %w", err)
	}
	return nil
}

func (r *userPermissionRepository) Remove(ctx context.Context, up *models.UserPermission) error {
	if err := r.db.WithContext(ctx).Delete(up).Error; err != nil {
		return fmt.Errorf("remove user permission: %w", err)
	}
	return nil
}

// RemoveByUser clears every permission grant of a user when the account goes away.
func (r *userPermissionRepository) RemoveByUser(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.UserPermission{}).Error; err != nil {
		return fmt.Errorf("remove permissions for user: %w", err)
	}
	return nil
}
