package repository

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"comichub/internal/http-api/models"
)

// testDB opens a fresh in-memory database per test. The pool is pinned to
// a single connection because every pooled connection would otherwise get
// its own empty :memory: instance.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Comic{},
		&models.Page{},
		&models.Image{},
		&models.LoginAttempt{},
		&models.Like{},
		&models.Favorite{},
		&models.Comment{},
		&models.Subscription{},
		&models.UserSettings{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.New().String(),
		Login:    name,
		Password: "irrelevant",
		Name:     name,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedComic(t *testing.T, db *gorm.DB, creatorID, title string, pages ...models.Page) *models.Comic {
	t.Helper()
	comic := &models.Comic{
		ID:      uuid.New().String(),
		Text:    title,
		Creator: creatorID,
		Hash:    uuid.New().String(),
	}
	for i := range pages {
		if pages[i].PageID == "" {
			pages[i].PageID = uuid.New().String()
		}
		pages[i].ComicsID = comic.ID
		for j := range pages[i].Images {
			if pages[i].Images[j].ID == "" {
				pages[i].Images[j].ID = uuid.New().String()
			}
			pages[i].Images[j].PageID = pages[i].PageID
		}
	}
	comic.Pages = pages
	require.NoError(t, db.Create(comic).Error)
	return comic
}
