package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/LackyKannauje/college-updates/internal/apperrors"
	"github.com/LackyKannauje/college-updates/internal/models"
	"github.com/LackyKannauje/college-updates/internal/repositories"
)

// UserService defines the interface for account business logic
type UserService interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	SearchUsers(ctx context.Context, pattern string) ([]models.UserSummary, error)
	EditProfile(ctx context.Context, userID string, req models.UpdateProfileRequest, picture *models.Upload) (*models.User, error)
	DeleteAccount(ctx context.Context, userID string) error
}

type userService struct {
	users   repositories.UserRepository
	posts   repositories.PostRepository
	follows repositories.FollowRepository
	media   MediaResolver
}

// NewUserService creates a new user service
func NewUserService(
	users repositories.UserRepository,
	posts repositories.PostRepository,
	follows repositories.FollowRepository,
	media MediaResolver,
) UserService {
	return &userService{
		users:   users,
		posts:   posts,
		follows: follows,
		media:   media,
	}
}

func (s *userService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	id, err := parseID("user", userID)
	if err != nil {
		return nil, err
	}
	return s.users.GetUserByID(ctx, id)
}

// SearchUsers finds users whose username contains pattern, ignoring case.
func (s *userService) SearchUsers(ctx context.Context, pattern string) ([]models.UserSummary, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, apperrors.Validation("Username is required")
	}
	users, err := s.users.SearchUsers(ctx, pattern)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("no users matching %q: %w", pattern, apperrors.ErrNotFound)
	}
	return users, nil
}

// EditProfile applies the non-empty fields. A new picture replaces the previous one,
// which is released afterwards.
func (s *userService) EditProfile(ctx context.Context, userID string, req models.UpdateProfileRequest, picture *models.Upload) (*models.User, error) {
	id, err := parseCaller(userID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if username := strings.TrimSpace(req.Username); username != "" {
		user.Username = username
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}

	var previous string
	if picture != nil {
		pictureURL, err := s.media.IngestProfilePicture(ctx, *picture)
		if err != nil {
			return nil, fmt.Errorf("failed to upload profile picture: %w", err)
		}
		previous = user.ProfilePicture
		user.ProfilePicture = pictureURL
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		if picture != nil {
			s.media.ReleaseProfilePicture(ctx, user.ProfilePicture)
		}
		return nil, err
	}
	s.media.ReleaseProfilePicture(ctx, previous)
	return user, nil
}

// DeleteAccount removes the user and everything hanging off the account: follow edges,
// owned posts with their media, likes and comments on other posts, and the profile picture.
// The user record goes last so a failed cascade can be retried.
func (s *userService) DeleteAccount(ctx context.Context, userID string) error {
	id, err := parseCaller(userID)
	if err != nil {
		return err
	}
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.follows.RemoveFromGraph(ctx, id); err != nil {
		return fmt.Errorf("failed to detach follow graph: %w", err)
	}

	posts, err := s.posts.GetPostsByUserID(ctx, id)
	if err != nil {
		return err
	}
	for _, p := range posts {
		s.media.ReleaseAll(ctx, p.Media)
		if err := s.posts.DeletePost(ctx, p.ID); err != nil {
			return fmt.Errorf("failed to delete post %s: %w", p.ID.Hex(), err)
		}
	}

	if err := s.posts.RemoveUserActivity(ctx, id); err != nil {
		return fmt.Errorf("failed to remove likes and comments: %w", err)
	}

	s.media.ReleaseProfilePicture(ctx, user.ProfilePicture)

	if err := s.users.DeleteUser(ctx, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "account deleted", "user_id", userID, "posts", len(posts))
	return nil
}
