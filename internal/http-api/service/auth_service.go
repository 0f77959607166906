package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cinemavault/internal/config"
	"cinemavault/internal/http-api/models"
	"cinemavault/internal/http-api/repository"
	"cinemavault/internal/middleware/auth"
)

var (
	ErrNameInUse          = errors.New("username already in use")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// Claims is the normalized identity extracted from a validated token.
type Claims struct {
	UserID   string
	Username string
	Role     string
}

func (c Claims) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (token string, user *models.User, err error)
	ValidateToken(tokenString string) (*Claims, error)
	TokenTTL() time.Duration
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: cfg.JWTSecret,
		jwtExpiry: cfg.JWTExpiry,
	}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrNameInUse
	}
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		// dummy compare so unknown users cost the same as bad passwords
		auth.VerifyPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e", password)
		return "", nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.jwtExpiry).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return extractClaims(mapClaims)
}

func (s *authService) TokenTTL() time.Duration {
	return s.jwtExpiry
}

// roleClaimKeys enumerates the claim keys a role may arrive under; tokens
// minted by other issuers use namespaced or plural variants.
var roleClaimKeys = []string{
	"role",
	"roles",
	"http://schemas.microsoft.com/ws/2008/06/identity/claims/role",
}

// extractClaims normalizes a token payload into typed Claims. The role claim
// may be a plain string or an array under any of the recognized keys.
func extractClaims(mapClaims jwt.MapClaims) (*Claims, error) {
	userID, ok := mapClaims["user_id"].(string)
	if !ok || userID == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{UserID: userID, Role: models.RoleUser}
	if username, ok := mapClaims["username"].(string); ok {
		claims.Username = username
	}

	for _, key := range roleClaimKeys {
		switch v := mapClaims[key].(type) {
		case string:
			if v != "" {
				claims.Role = normalizeRole(v)
				return claims, nil
			}
		case []interface{}:
			for _, item := range v {
				if role, ok := item.(string); ok && role != "" {
					claims.Role = normalizeRole(role)
					return claims, nil
				}
			}
		}
	}
	return claims, nil
}

func normalizeRole(role string) string {
	switch role {
	case "Admin", "admin":
		return models.RoleAdmin
	default:
		return models.RoleUser
	}
}
