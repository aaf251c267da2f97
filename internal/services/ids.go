package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/LackyKannauje/college-updates/internal/apperrors"
	"github.com/LackyKannauje/college-updates/internal/models"
	"github.com/LackyKannauje/college-updates/internal/repositories"
)

// parseID treats a malformed id like an unknown one.
func parseID(kind, hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s %q: %w", kind, hex, apperrors.ErrNotFound)
	}
	return id, nil
}

// parseCaller parses the authenticated user id taken from the session token.
func parseCaller(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("caller %q: %w", hex, apperrors.ErrUnauthenticated)
	}
	return id, nil
}

// identities resolves ids to {username, profilePicture} summaries in the given order.
// Ids of users that no longer exist are kept with an empty identity.
func identities(ctx context.Context, users repositories.UserRepository, ids []primitive.ObjectID) ([]models.UserSummary, error) {
	byID, err := users.GetUserSummaries(ctx, unique(ids))
	if err != nil {
		return nil, err
	}
	out := make([]models.UserSummary, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			s = models.UserSummary{ID: id}
		}
		out = append(out, s.Identity())
	}
	return out, nil
}

func unique(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
