package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/LackyKannauje/college-updates/internal/apperrors"
	"github.com/LackyKannauje/college-updates/internal/auth"
	"github.com/LackyKannauje/college-updates/internal/models"
	"github.com/LackyKannauje/college-updates/internal/repositories"
	"github.com/LackyKannauje/college-updates/validators"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (string, error)
	Login(ctx context.Context, req models.LoginRequest) (string, error)
	Authenticate(ctx context.Context, token string) (string, error)
}

type authService struct {
	users      repositories.UserRepository
	jwt        *auth.JWTService
	validator  *validators.CustomValidator
	bcryptCost int
}

// NewAuthService creates a new authentication service
func NewAuthService(users repositories.UserRepository, jwt *auth.JWTService, v *validators.CustomValidator) AuthService {
	return &authService{
		users:      users,
		jwt:        jwt,
		validator:  v,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// Register creates an account and returns a session token valid for three days.
func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = normalizeEmail(req.Email)
	if err := s.validator.Validate(req); err != nil {
		return "", apperrors.Validation(err.Error())
	}

	_, err := s.users.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return "", apperrors.ErrEmailTaken
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return "", fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperrors.Validation("Password must be at most 72 bytes")
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return "", err
	}

	return s.jwt.GenerateToken(user.ID.Hex(), auth.RegisterTokenExpiry)
}

// Login checks the credentials and returns a session token valid for one hour.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validator.Validate(req); err != nil {
		return "", apperrors.Validation(err.Error())
	}

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	return s.jwt.GenerateToken(user.ID.Hex(), auth.LoginTokenExpiry)
}

// Authenticate resolves a bearer token to the caller's user id. Tokens of deleted
// accounts are rejected even before they expire.
func (s *authService) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("no token: %w", apperrors.ErrUnauthenticated)
	}
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return "", fmt.Errorf("token is not valid: %w", apperrors.ErrUnauthenticated)
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return "", fmt.Errorf("token subject is not a user id: %w", apperrors.ErrUnauthenticated)
	}
	exists, err := s.users.UserExists(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to check token owner: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("account %s no longer exists: %w", claims.UserID, apperrors.ErrUnauthenticated)
	}
	return claims.UserID, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
