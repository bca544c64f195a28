package service

import (
	"context"
	"strings"
	"testing"

	"warbler/backend/internal/models"
	"warbler/backend/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageService_Post(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns a server timestamp and the author", func(t *testing.T) {
		db := newTestDB(t)
		alice := mustRegister(t, db, "alice")

		msg, err := NewMessageService(db).Post(ctx, alice.ID, "first warble")
		require.NoError(t, err)
		assert.Equal(t, "first warble", msg.Text)
		assert.Equal(t, alice.ID, msg.UserID)
		assert.False(t, msg.CreatedAt.IsZero())
		assert.Equal(t, "alice", msg.User.Username)
	})

	t.Run("empty text", func(t *testing.T) {
		db := newTestDB(t)
		alice := mustRegister(t, db, "alice")

		_, err := NewMessageService(db).Post(ctx, alice.ID, "")
		assert.ErrorIs(t, err, apperr.ErrEmptyText)
	})

	t.Run("oversized text", func(t *testing.T) {
		db := newTestDB(t)
		alice := mustRegister(t, db, "alice")

		_, err := NewMessageService(db).Post(ctx, alice.ID, strings.Repeat("x", models.MaxMessageLength+1))
		assert.ErrorIs(t, err, apperr.ErrOversizedText)
	})

	t.Run("exactly at the bound is fine", func(t *testing.T) {
		db := newTestDB(t)
		alice := mustRegister(t, db, "alice")

		_, err := NewMessageService(db).Post(ctx, alice.ID, strings.Repeat("x", models.MaxMessageLength))
		assert.NoError(t, err)
	})

	t.Run("unknown author", func(t *testing.T) {
		db := newTestDB(t)

		_, err := NewMessageService(db).Post(ctx, 9999, "ghost warble")
		assert.ErrorIs(t, err, apperr.ErrUnknownAuthor)
	})
}

func TestMessageService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("author can delete, likes go with the message", func(t *testing.T) {
		db := newTestDB(t)
		alice := mustRegister(t, db, "alice")
		bob := mustRegister(t, db, "bob")
		svc := NewMessageService(db)

		msg := mustPost(t, db, alice.ID, "delete me")
		_, err := svc.ToggleLike(ctx, bob.ID, msg.ID)
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, alice.ID, msg.ID))

		_, found, err := svc.Get(ctx, msg.ID)
		require.NoError(t, err)
		assert.False(t, found)

		var likes int64
		require.NoError(t, db.Model(&models.Like{}).Count(&likes).Error)
		assert.EqualValues(t, 0, likes)
	})

	t.Run("another user may not delete", func(t *testing.T) {
		db := newTestDB(t)
		alice := mustRegister(t, db, "alice")
		bob := mustRegister(t, db, "bob")
		svc := NewMessageService(db)

		msg := mustPost(t, db, alice.ID, "hands off")

		err := svc.Delete(ctx, bob.ID, msg.ID)
		assert.ErrorIs(t, err, apperr.ErrNotAuthorized)

		_, found, err := svc.Get(ctx, msg.ID)
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("admin may delete any message", func(t *testing.T) {
		db := newTestDB(t)
		alice := mustRegister(t, db, "alice")
		mod := mustRegister(t, db, "moderator")
		require.NoError(t, db.Model(&models.User{}).Where("id = ?", mod.ID).Update("role", "admin").Error)

		svc := NewMessageService(db)
		msg := mustPost(t, db, alice.ID, "rule-breaking warble")

		assert.NoError(t, svc.Delete(ctx, mod.ID, msg.ID))
	})

	t.Run("missing message", func(t *testing.T) {
		db := newTestDB(t)
		alice := mustRegister(t, db, "alice")

		err := NewMessageService(db).Delete(ctx, alice.ID, 9999)
		assert.ErrorIs(t, err, apperr.ErrMessageNotFound)
	})
}

func TestMessageService_ToggleLike(t *testing.T) {
	ctx := context.Background()

	t.Run("applying it twice restores the original state", func(t *testing.T) {
		db := newTestDB(t)
		alice := mustRegister(t, db, "alice")
		bob := mustRegister(t, db, "bob")
		svc := NewMessageService(db)

		msg := mustPost(t, db, alice.ID, "like me, unlike me")

		liked, err := svc.ToggleLike(ctx, bob.ID, msg.ID)
		require.NoError(t, err)
		assert.True(t, liked)

		isLiked, err := svc.IsLiked(ctx, bob.ID, msg.ID)
		require.NoError(t, err)
		assert.True(t, isLiked)

		liked, err = svc.ToggleLike(ctx, bob.ID, msg.ID)
		require.NoError(t, err)
		assert.False(t, liked)

		isLiked, err = svc.IsLiked(ctx, bob.ID, msg.ID)
		require.NoError(t, err)
		assert.False(t, isLiked)
	})

	t.Run("missing message", func(t *testing.T) {
		db := newTestDB(t)
		alice := mustRegister(t, db, "alice")

		_, err := NewMessageService(db).ToggleLike(ctx, alice.ID, 9999)
		assert.ErrorIs(t, err, apperr.ErrMessageNotFound)
	})
}

func TestMessageService_LikedMessages(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	alice := mustRegister(t, db, "alice")
	bob := mustRegister(t, db, "bob")
	svc := NewMessageService(db)

	m1 := mustPost(t, db, alice.ID, "one")
	m2 := mustPost(t, db, alice.ID, "two")
	mustPost(t, db, alice.ID, "three")

	_, err := svc.ToggleLike(ctx, bob.ID, m1.ID)
	require.NoError(t, err)
	_, err = svc.ToggleLike(ctx, bob.ID, m2.ID)
	require.NoError(t, err)

	liked, err := svc.LikedMessages(ctx, bob.ID)
	require.NoError(t, err)
	texts := []string{}
	for _, m := range liked {
		texts = append(texts, m.Text)
	}
	assert.ElementsMatch(t, []string{"one", "two"}, texts)

	count, err := svc.LikeCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	msgLikes, err := svc.MessageLikeCount(ctx, m1.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, msgLikes)
}
