package repository

import (
	"fmt"
	"sync/atomic"
	"testing"

	"snsproject/internal/database"
	"snsproject/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var fixtureSeq atomic.Int64

// setupTestDB opens a migrated in-memory SQLite database. A single
// connection keeps every statement on the same in-memory schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(sqlite.Open(":memory:"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// setupMockDB creates a GORM *gorm.DB backed by sqlmock for unit tests.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	return gormDB, mock
}

func createUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		UserName: fmt.Sprintf("%s_%d", gofakeit.Username(), fixtureSeq.Add(1)),
		Password: gofakeit.Password(true, true, true, false, false, 16),
		Role:     models.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createPost(t *testing.T, db *gorm.DB, owner *models.User) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:  gofakeit.Sentence(4),
		Body:   gofakeit.Paragraph(1, 2, 8, " "),
		UserID: owner.ID,
	}
	require.NoError(t, db.Omit("User").Create(post).Error)
	return post
}
