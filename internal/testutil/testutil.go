// Package testutil holds database and fixture helpers shared by package tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"anoa.com/videohub/internal/bootstrap"
	"anoa.com/videohub/internal/entity"
	"anoa.com/videohub/pkg/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

// NewDB returns a migrated in-memory database private to the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	name := fmt.Sprintf("%s_%d", strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()), dbSeq.Add(1))
	db, err := database.OpenMemory(name)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	if err := bootstrap.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func CreateUser(t testing.TB, db *gorm.DB, username string) entity.User {
	t.Helper()
	u := entity.User{ID: uuid.New(), Username: username, Email: username + "@example.com", PasswordHash: "x"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

// CreateVideo inserts a video with an explicit creation time.
func CreateVideo(t testing.TB, db *gorm.DB, owner entity.User, title string, createdAt time.Time) entity.Video {
	t.Helper()
	v := entity.Video{Title: title, YoutubeLink: "https://youtu.be/" + title, UserID: owner.ID, CreatedAt: createdAt.UTC()}
	if err := db.Create(&v).Error; err != nil {
		t.Fatalf("create video: %v", err)
	}
	return v
}

func React(t testing.TB, db *gorm.DB, user entity.User, video entity.Video, kind entity.ReactionType) {
	t.Helper()
	if err := db.Create(&entity.Reaction{UserID: user.ID, VideoID: video.ID, ReactionType: kind}).Error; err != nil {
		t.Fatalf("create reaction: %v", err)
	}
}

func Comment(t testing.TB, db *gorm.DB, user entity.User, video entity.Video, text string) entity.Comment {
	t.Helper()
	c := entity.Comment{UserID: user.ID, VideoID: video.ID, Text: text}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return c
}
