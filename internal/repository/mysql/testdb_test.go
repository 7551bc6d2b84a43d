package mysql

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"campushub/internal/model"
)

// openTestDB gives each test its own in-memory schema. The sqlite driver
// translates unique violations the same way the mysql driver does, so the
// duplicate-key paths behave identically.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Community{},
		&model.Membership{},
		&model.Post{},
		&model.Event{},
		&model.Comment{},
		&model.Announcement{},
		&model.Like{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Name:     username,
		Email:    username + "@example.com",
		Username: username,
		Password: "x",
		Role:     model.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, ownerID uint64, content string) *model.Post {
	t.Helper()
	post := &model.Post{Content: content, OwnerID: ownerID}
	require.NoError(t, db.Create(post).Error)
	return post
}
