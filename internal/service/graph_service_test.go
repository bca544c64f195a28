package service

import (
	"context"
	"testing"

	"warbler/backend/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphService_Follow(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the edge", func(t *testing.T) {
		db := newTestDB(t)
		alice := mustRegister(t, db, "alice")
		bob := mustRegister(t, db, "bob")
		graph := NewGraphService(db)

		require.NoError(t, graph.Follow(ctx, alice.ID, bob.ID))

		following, err := graph.IsFollowing(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, following)

		// Direction matters: bob does not follow alice.
		reverse, err := graph.IsFollowing(ctx, bob.ID, alice.ID)
		require.NoError(t, err)
		assert.False(t, reverse)

		followedBy, err := graph.IsFollowedBy(ctx, bob.ID, alice.ID)
		require.NoError(t, err)
		assert.True(t, followedBy)
	})

	t.Run("is idempotent", func(t *testing.T) {
		db := newTestDB(t)
		alice := mustRegister(t, db, "alice")
		bob := mustRegister(t, db, "bob")
		graph := NewGraphService(db)

		require.NoError(t, graph.Follow(ctx, alice.ID, bob.ID))
		require.NoError(t, graph.Follow(ctx, alice.ID, bob.ID))

		count, err := graph.FollowerCount(ctx, bob.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("rejects self-follow", func(t *testing.T) {
		db := newTestDB(t)
		alice := mustRegister(t, db, "alice")

		err := NewGraphService(db).Follow(ctx, alice.ID, alice.ID)
		assert.ErrorIs(t, err, apperr.ErrSelfFollow)
	})

	t.Run("unknown followee", func(t *testing.T) {
		db := newTestDB(t)
		alice := mustRegister(t, db, "alice")

		err := NewGraphService(db).Follow(ctx, alice.ID, 9999)
		assert.ErrorIs(t, err, apperr.ErrUserNotFound)
	})
}

func TestGraphService_Unfollow(t *testing.T) {
	ctx := context.Background()

	t.Run("follow then unfollow restores the prior edge set", func(t *testing.T) {
		db := newTestDB(t)
		alice := mustRegister(t, db, "alice")
		bob := mustRegister(t, db, "bob")
		graph := NewGraphService(db)

		require.NoError(t, graph.Follow(ctx, alice.ID, bob.ID))
		require.NoError(t, graph.Unfollow(ctx, alice.ID, bob.ID))

		following, err := graph.IsFollowing(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, following)

		count, err := graph.FollowingCount(ctx, alice.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 0, count)
	})

	t.Run("absent edge is a no-op success", func(t *testing.T) {
		db := newTestDB(t)
		alice := mustRegister(t, db, "alice")
		bob := mustRegister(t, db, "bob")

		assert.NoError(t, NewGraphService(db).Unfollow(ctx, alice.ID, bob.ID))
	})
}

func TestGraphService_Sets(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	alice := mustRegister(t, db, "alice")
	bob := mustRegister(t, db, "bob")
	carol := mustRegister(t, db, "carol")
	graph := NewGraphService(db)

	require.NoError(t, graph.Follow(ctx, bob.ID, alice.ID))
	require.NoError(t, graph.Follow(ctx, carol.ID, alice.ID))
	require.NoError(t, graph.Follow(ctx, alice.ID, bob.ID))

	followers, err := graph.Followers(ctx, alice.ID)
	require.NoError(t, err)
	names := []string{}
	for _, u := range followers {
		names = append(names, u.Username)
	}
	assert.ElementsMatch(t, []string{"bob", "carol"}, names)

	following, err := graph.Following(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "bob", following[0].Username)

	followerCount, err := graph.FollowerCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, len(followers), followerCount)

	followingCount, err := graph.FollowingCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, len(following), followingCount)
}
