package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/LackyKannauje/college-updates/internal/apperrors"
	"github.com/LackyKannauje/college-updates/internal/models"
)

func TestFollowService_FollowUnfollowScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u1 := f.register(t, "u1")
	u2 := f.register(t, "u2")

	require.NoError(t, f.follows.Follow(ctx, u1, u2))

	followers, err := f.follows.ListFollowers(ctx, u2)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, usernames(followers))

	following, err := f.follows.ListFollowing(ctx, u1)
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, usernames(following))

	assert.ErrorIs(t, f.follows.Follow(ctx, u1, u2), apperrors.ErrAlreadyFollowing)

	require.NoError(t, f.follows.Unfollow(ctx, u1, u2))
	assert.ErrorIs(t, f.follows.Unfollow(ctx, u1, u2), apperrors.ErrNotFollowing)

	for _, id := range []string{u1, u2} {
		user, err := f.users.GetUser(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, user.Followers)
		assert.Empty(t, user.Following)
	}
}

func TestFollowService_FollowIsMirrored(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.register(t, "a")
	b := f.register(t, "b")
	c := f.register(t, "c")

	require.NoError(t, f.follows.Follow(ctx, a, b))
	require.NoError(t, f.follows.Follow(ctx, c, b))
	require.NoError(t, f.follows.Follow(ctx, b, a))

	userB, err := f.users.GetUser(ctx, b)
	require.NoError(t, err)
	assert.ElementsMatch(t, []primitive.ObjectID{oid(t, a), oid(t, c)}, userB.Followers)
	assert.Equal(t, []primitive.ObjectID{oid(t, a)}, userB.Following)

	userA, err := f.users.GetUser(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{oid(t, b)}, userA.Following)
	assert.Equal(t, []primitive.ObjectID{oid(t, b)}, userA.Followers)
}

func TestFollowService_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u1 := f.register(t, "u1")
	missing := primitive.NewObjectID().Hex()

	tests := []struct {
		name    string
		call    func() error
		wantErr error
	}{
		{"self follow", func() error { return f.follows.Follow(ctx, u1, u1) }, apperrors.ErrValidation},
		{"follow unknown user", func() error { return f.follows.Follow(ctx, u1, missing) }, apperrors.ErrNotFound},
		{"follow malformed id", func() error { return f.follows.Follow(ctx, u1, "zzz") }, apperrors.ErrNotFound},
		{"unfollow unknown user", func() error { return f.follows.Unfollow(ctx, u1, missing) }, apperrors.ErrNotFound},
		{"followers of unknown user", func() error { _, err := f.follows.ListFollowers(ctx, missing); return err }, apperrors.ErrNotFound},
		{"following of unknown user", func() error { _, err := f.follows.ListFollowing(ctx, missing); return err }, apperrors.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), tt.wantErr)
		})
	}
}

func usernames(users []models.UserSummary) []string {
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Username
	}
	return names
}

func oid(t *testing.T, hex string) primitive.ObjectID {
	t.Helper()
	id, err := primitive.ObjectIDFromHex(hex)
	require.NoError(t, err)
	return id
}
