package service

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrImageRequired = errors.New("image is required")
	ErrImageFormat   = errors.New("unsupported image format, allowed: jpg, jpeg, png, gif")
	ErrImageNotImage = errors.New("file is not a valid image")
	ErrImageTooLarge = errors.New("image size exceeds the 5MB limit")
)

const maxImageSizeBytes = 5 * 1024 * 1024

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// ImageStore owns uploaded image files on local disk. Replacing or deleting
// a record's image removes the old file; delete failures are returned so the
// caller decides whether to log and continue.
type ImageStore interface {
	UploadImage(file *multipart.FileHeader, folder string, req *http.Request) (string, error)
	UpdateImage(oldImageURL string, file *multipart.FileHeader, folder string, req *http.Request) (string, error)
	DeleteImage(imageURL string) error
}

type localImageStore struct {
	webRoot string
	logger  *slog.Logger
}

// NewLocalImageStore writes under {webRoot}/uploads/images/{folder}/.
func NewLocalImageStore(webRoot string, logger *slog.Logger) ImageStore {
	return &localImageStore{webRoot: webRoot, logger: logger}
}

func (s *localImageStore) UploadImage(file *multipart.FileHeader, folder string, req *http.Request) (string, error) {
	if file == nil || file.Size == 0 {
		return "", ErrImageRequired
	}
	if err := validateImage(file); err != nil {
		return "", err
	}

	fileName := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	folderPath := filepath.Join(s.webRoot, "uploads", "images", folder)
	if err := os.MkdirAll(folderPath, 0o755); err != nil {
		return "", fmt.Errorf("create upload folder: %w", err)
	}

	if err := s.saveToDisk(file, filepath.Join(folderPath, fileName)); err != nil {
		return "", err
	}

	return imageURL(req, folder, fileName), nil
}

// UpdateImage is delete-then-upload; the two steps are not atomic.
func (s *localImageStore) UpdateImage(oldImageURL string, file *multipart.FileHeader, folder string, req *http.Request) (string, error) {
	if err := s.DeleteImage(oldImageURL); err != nil {
		s.logger.Error("failed to delete superseded image", "url", oldImageURL, "error", err)
	}
	return s.UploadImage(file, folder, req)
}

// DeleteImage removes the file behind an upload URL. A missing file is not
// an error; anything else is returned to the caller.
func (s *localImageStore) DeleteImage(imageURL string) error {
	if strings.TrimSpace(imageURL) == "" {
		return nil
	}

	parsed, err := url.Parse(imageURL)
	if err != nil {
		return fmt.Errorf("parse image url: %w", err)
	}

	imagePath := filepath.Join(s.webRoot, filepath.FromSlash(strings.TrimPrefix(parsed.Path, "/")))

	// refuse paths that escape the web root
	rel, err := filepath.Rel(s.webRoot, imagePath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("image path %q outside web root", parsed.Path)
	}

	if err := os.Remove(imagePath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("delete image file: %w", err)
	}
	return nil
}

func validateImage(file *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		return ErrImageFormat
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return ErrImageNotImage
	}
	if file.Size > maxImageSizeBytes {
		return ErrImageTooLarge
	}
	return nil
}

func (s *localImageStore) saveToDisk(file *multipart.FileHeader, path string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		s.logger.Error("failed to save image", "path", path, "error", err)
		return fmt.Errorf("save image: %w", err)
	}
	return nil
}

// imageURL builds an absolute URL from the serving request's scheme and host,
// falling back to a relative path when no request is in flight.
func imageURL(req *http.Request, folder, fileName string) string {
	rel := fmt.Sprintf("/uploads/images/%s/%s", folder, fileName)
	if req == nil {
		return rel
	}
	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s", scheme, req.Host, rel)
}
