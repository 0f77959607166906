package service

import (
	"context"
	"errors"

	"cinemavault/internal/http-api/dto"
	"cinemavault/internal/http-api/models"
	"cinemavault/internal/http-api/repository"
)

var (
	ErrPermissionExists   = errors.New("user permission already exists")
	ErrPermissionNotFound = errors.New("user permission does not exist")
)

// UserPermissionService keeps the (permission, user) relation duplicate-free
// with an existence check before insert and delete. Two concurrent adds of
// the same pair can race; the relation carries no DB constraint.
type UserPermissionService interface {
	AddPermissionToUser(ctx context.Context, in dto.UserPermissionRequest) error
	RemovePermissionFromUser(ctx context.Context, in dto.UserPermissionRequest) error
	GetUserPermissionsByUserID(ctx context.Context, userID string) ([]models.UserPermission, error)
}

type userPermissionService struct {
	repo repository.UserPermissionRepository
}

func NewUserPermissionService(repo repository.UserPermissionRepository) UserPermissionService {
	return &userPermissionService{repo: repo}
}

func (s *userPermissionService) AddPermissionToUser(ctx context.Context, in dto.UserPermissionRequest) error {
	existing, err := s.repo.Get(ctx, in.PermissionID, in.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrPermissionExists
	}
	return s.repo.Add(ctx, &models.UserPermission{
		PermissionID: in.PermissionID,
		UserID:       in.UserID,
	})
}

func (s *userPermissionService) RemovePermissionFromUser(ctx context.Context, in dto.UserPermissionRequest) error {
	existing, err := s.repo.Get(ctx, in.PermissionID, in.UserID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrPermissionNotFound
	}
	return s.repo.Remove(ctx, existing)
}

func (s *userPermissionService) GetUserPermissionsByUserID(ctx context.Context, userID string) ([]models.UserPermission, error) {
	return s.repo.ListByUserID(ctx, userID)
}
