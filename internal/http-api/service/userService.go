package service

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"gorm.io/gorm"

	"cinemavault/internal/http-api/dto"
	"cinemavault/internal/http-api/repository"
)

var ErrUserNotFound = errors.New("user not found")

const profilePictureFolder = "UsersProfilePic"

type UserService interface {
	GetCurrentUserProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error)
	UpdateProfilePicture(ctx context.Context, userID string, picture *multipart.FileHeader, req *http.Request) error
	UpdateUserInfo(ctx context.Context, userID string, in dto.PatchUserInfoRequest) error
	DeleteCurrentUser(ctx context.Context, userID string) error
}

type userService struct {
	userRepo  repository.UserRepository
	savedRepo repository.SavedMovieRepository
	permRepo  repository.UserPermissionRepository
	images    ImageStore
}

func NewUserService(
	userRepo repository.UserRepository,
	savedRepo repository.SavedMovieRepository,
	permRepo repository.UserPermissionRepository,
	images ImageStore,
) UserService {
	return &userService{
		userRepo:  userRepo,
		savedRepo: savedRepo,
		permRepo:  permRepo,
		images:    images,
	}
}

func (s *userService) GetCurrentUserProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &dto.UserProfileResponse{
		ID:                user.ID,
		UserName:          user.Username,
		ProfilePictureURL: user.ProfilePictureURL,
	}, nil
}

// UpdateProfilePicture uploads the new picture and overwrites the URL.
// The superseded picture file is left on disk, unlike the movie poster flow.
func (s *userService) UpdateProfilePicture(ctx context.Context, userID string, picture *multipart.FileHeader, req *http.Request) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	pictureURL, err := s.images.UploadImage(picture, profilePictureFolder, req)
	if err != nil {
		return err
	}

	user.ProfilePictureURL = pictureURL
	return s.userRepo.Update(ctx, user)
}

func (s *userService) UpdateUserInfo(ctx context.Context, userID string, in dto.PatchUserInfoRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	// a name held by a different account is a conflict
	if existing, err := s.userRepo.FindByUsername(ctx, in.UserName); err == nil && existing.ID != user.ID {
		return ErrNameInUse
	}

	user.Username = in.UserName
	return s.userRepo.Update(ctx, user)
}

// DeleteCurrentUser clears the user's saved movies and permission grants,
// then hard-deletes the row. Ratings go with the row via the FK cascade.
func (s *userService) DeleteCurrentUser(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.savedRepo.RemoveByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.permRepo.RemoveByUser(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, user)
}
