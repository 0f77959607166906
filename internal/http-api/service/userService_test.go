package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cinemavault/internal/http-api/dto"
	"cinemavault/internal/http-api/models"
	"cinemavault/internal/http-api/service"
)

type userServiceMocks struct {
	users  *MockUserRepository
	saved  *MockSavedMovieRepository
	perms  *MockUserPermissionRepository
	images *MockImageStore
}

func newUserService() (service.UserService, userServiceMocks) {
	m := userServiceMocks{
		users:  new(MockUserRepository),
		saved:  new(MockSavedMovieRepository),
		perms:  new(MockUserPermissionRepository),
		images: new(MockImageStore),
	}
	return service.NewUserService(m.users, m.saved, m.perms, m.images), m
}

func TestUserService_GetCurrentUserProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, m := newUserService()
		m.users.On("FindByID", ctx, "u1").Return(&models.User{
			ID:                "u1",
			Username:          "alice",
			ProfilePictureURL: "/uploads/images/UsersProfilePic/a.png",
		}, nil).Once()

		profile, err := svc.GetCurrentUserProfile(ctx, "u1")
		require.NoError(t, err)

		assert.Equal(t, "alice", profile.UserName)
		assert.Equal(t, "/uploads/images/UsersProfilePic/a.png", profile.ProfilePictureURL)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc, m := newUserService()
		m.users.On("FindByID", ctx, "ghost").Return(nil, gorm.ErrRecordNotFound).Once()

		_, err := svc.GetCurrentUserProfile(ctx, "ghost")
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})
}

func TestUserService_UpdateProfilePicture(t *testing.T) {
	ctx := context.Background()

	t.Run("OverwritesURL", func(t *testing.T) {
		svc, m := newUserService()
		picture := makeFileHeader(t, "me.png", "image/png", 64)

		m.users.On("FindByID", ctx, "u1").Return(&models.User{ID: "u1", ProfilePictureURL: "old-url"}, nil).Once()
		m.images.On("UploadImage", picture, "UsersProfilePic", (*http.Request)(nil)).
			Return("/uploads/images/UsersProfilePic/new.png", nil).Once()
		m.users.On("Update", ctx, mock.MatchedBy(func(u *models.User) bool {
			return u.ProfilePictureURL == "/uploads/images/UsersProfilePic/new.png"
		})).Return(nil).Once()

		err := svc.UpdateProfilePicture(ctx, "u1", picture, nil)

		assert.NoError(t, err)
		// the superseded picture file stays on disk
		m.images.AssertNotCalled(t, "DeleteImage", mock.Anything)
		m.users.AssertExpectations(t)
	})

	t.Run("InvalidImage", func(t *testing.T) {
		svc, m := newUserService()
		picture := makeFileHeader(t, "me.pdf", "application/pdf", 64)

		m.users.On("FindByID", ctx, "u1").Return(&models.User{ID: "u1"}, nil).Once()
		m.images.On("UploadImage", picture, "UsersProfilePic", (*http.Request)(nil)).
			Return("", service.ErrImageFormat).Once()

		err := svc.UpdateProfilePicture(ctx, "u1", picture, nil)

		assert.ErrorIs(t, err, service.ErrImageFormat)
		m.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestUserService_UpdateUserInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, m := newUserService()
		m.users.On("FindByID", ctx, "u1").Return(&models.User{ID: "u1", Username: "alice"}, nil).Once()
		m.users.On("FindByUsername", ctx, "alice_new").Return(nil, gorm.ErrRecordNotFound).Once()
		m.users.On("Update", ctx, mock.MatchedBy(func(u *models.User) bool {
			return u.Username == "alice_new"
		})).Return(nil).Once()

		err := svc.UpdateUserInfo(ctx, "u1", dto.PatchUserInfoRequest{UserName: "alice_new"})

		assert.NoError(t, err)
		m.users.AssertExpectations(t)
	})

	t.Run("NameTakenByAnotherUser", func(t *testing.T) {
		svc, m := newUserService()
		m.users.On("FindByID", ctx, "u1").Return(&models.User{ID: "u1", Username: "alice"}, nil).Once()
		m.users.On("FindByUsername", ctx, "bob").Return(&models.User{ID: "u2", Username: "bob"}, nil).Once()

		err := svc.UpdateUserInfo(ctx, "u1", dto.PatchUserInfoRequest{UserName: "bob"})

		assert.ErrorIs(t, err, service.ErrNameInUse)
		m.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("OwnNameIsNotAConflict", func(t *testing.T) {
		svc, m := newUserService()
		m.users.On("FindByID", ctx, "u1").Return(&models.User{ID: "u1", Username: "alice"}, nil).Once()
		m.users.On("FindByUsername", ctx, "alice").Return(&models.User{ID: "u1", Username: "alice"}, nil).Once()
		m.users.On("Update", ctx, mock.Anything).Return(nil).Once()

		err := svc.UpdateUserInfo(ctx, "u1", dto.PatchUserInfoRequest{UserName: "alice"})

		assert.NoError(t, err)
	})
}

func TestUserService_DeleteCurrentUser(t *testing.T) {
	ctx := context.Background()

	t.Run("ClearsSavedMoviesAndPermissionsFirst", func(t *testing.T) {
		svc, m := newUserService()
		user := &models.User{ID: "u1"}
		m.users.On("FindByID", ctx, "u1").Return(user, nil).Once()
		m.saved.On("RemoveByUser", ctx, "u1").Return(nil).Once()
		m.perms.On("RemoveByUser", ctx, "u1").Return(nil).Once()
		m.users.On("Delete", ctx, user).Return(nil).Once()

		err := svc.DeleteCurrentUser(ctx, "u1")

		assert.NoError(t, err)
		m.saved.AssertExpectations(t)
		m.perms.AssertExpectations(t)
		m.users.AssertExpectations(t)
	})

	t.Run("SavedCleanupFailureAbortsDelete", func(t *testing.T) {
		svc, m := newUserService()
		m.users.On("FindByID", ctx, "u1").Return(&models.User{ID: "u1"}, nil).Once()
		m.saved.On("RemoveByUser", ctx, "u1").Return(assert.AnError).Once()

		err := svc.DeleteCurrentUser(ctx, "u1")

		assert.Error(t, err)
		m.users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc, m := newUserService()
		m.users.On("FindByID", ctx, "ghost").Return(nil, gorm.ErrRecordNotFound).Once()

		err := svc.DeleteCurrentUser(ctx, "ghost")
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})
}
