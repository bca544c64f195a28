package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"warbler/backend/internal/database"
	"warbler/backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// newTestDB opens an isolated in-memory sqlite database and migrates the
// schema. The shared-cache DSN keeps every pooled connection on the same
// in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, testDBSeq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// mustRegister creates a user through the real registration path.
func mustRegister(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user, err := NewUserService(db).Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}

// mustPost creates a message through the real posting path.
func mustPost(t *testing.T, db *gorm.DB, authorID uint, text string) *models.Message {
	t.Helper()

	msg, err := NewMessageService(db).Post(context.Background(), authorID, text)
	require.NoError(t, err)
	return msg
}
