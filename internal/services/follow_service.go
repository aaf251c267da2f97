package services

import (
	"context"

	"github.com/LackyKannauje/college-updates/internal/apperrors"
	"github.com/LackyKannauje/college-updates/internal/models"
	"github.com/LackyKannauje/college-updates/internal/repositories"
)

// FollowService defines the interface for the follow graph
type FollowService interface {
	Follow(ctx context.Context, followerID, targetID string) error
	Unfollow(ctx context.Context, followerID, targetID string) error
	ListFollowers(ctx context.Context, userID string) ([]models.UserSummary, error)
	ListFollowing(ctx context.Context, userID string) ([]models.UserSummary, error)
}

type followService struct {
	users   repositories.UserRepository
	follows repositories.FollowRepository
}

// NewFollowService creates a new follow service
func NewFollowService(users repositories.UserRepository, follows repositories.FollowRepository) FollowService {
	return &followService{users: users, follows: follows}
}

func (s *followService) Follow(ctx context.Context, followerID, targetID string) error {
	follower, target, err := s.pair(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if follower.IsFollowing(target.ID) {
		return apperrors.ErrAlreadyFollowing
	}
	return s.follows.Follow(ctx, follower.ID, target.ID)
}

func (s *followService) Unfollow(ctx context.Context, followerID, targetID string) error {
	follower, target, err := s.pair(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if !follower.IsFollowing(target.ID) {
		return apperrors.ErrNotFollowing
	}
	return s.follows.Unfollow(ctx, follower.ID, target.ID)
}

func (s *followService) ListFollowers(ctx context.Context, userID string) ([]models.UserSummary, error) {
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	return identities(ctx, s.users, user.Followers)
}

func (s *followService) ListFollowing(ctx context.Context, userID string) ([]models.UserSummary, error) {
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	return identities(ctx, s.users, user.Following)
}

// pair loads both sides of a follow edge. Self-follow is rejected.
func (s *followService) pair(ctx context.Context, followerID, targetID string) (*models.User, *models.User, error) {
	fid, err := parseCaller(followerID)
	if err != nil {
		return nil, nil, err
	}
	tid, err := parseID("user", targetID)
	if err != nil {
		return nil, nil, err
	}
	if fid == tid {
		return nil, nil, apperrors.Validation("You cannot follow yourself")
	}

	target, err := s.users.GetUserByID(ctx, tid)
	if err != nil {
		return nil, nil, err
	}
	follower, err := s.users.GetUserByID(ctx, fid)
	if err != nil {
		return nil, nil, err
	}
	return follower, target, nil
}

func (s *followService) user(ctx context.Context, userID string) (*models.User, error) {
	id, err := parseID("user", userID)
	if err != nil {
		return nil, err
	}
	return s.users.GetUserByID(ctx, id)
}
