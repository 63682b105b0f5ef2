package bootstrap

import (
	"anoa.com/videohub/internal/entity"
	"anoa.com/videohub/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	DemoUsername = "demo"
	DemoPassword = "demo1234"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Video{},
		&entity.Reaction{},
		&entity.Comment{},
		&entity.History{},
		&entity.Todo{},
	)
}

// SeedDemoUser creates a login for local development. It is a no-op when the user exists.
func SeedDemoUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).
		Where("username = ?", DemoUsername).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Log.Debug("demo user already exists, skipping seed")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	demo := entity.User{
		Username:     DemoUsername,
		Email:        "demo@videohub.local",
		PasswordHash: string(hashed),
	}
	if err := db.Create(&demo).Error; err != nil {
		return err
	}

	logger.Log.Info("demo user seeded", zap.String("username", DemoUsername))
	return nil
}
