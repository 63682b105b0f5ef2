package database

import (
	"context"
	"fmt"
	"time"

	"anoa.com/videohub/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type Options struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SQLitePath string
	Debug      bool
}

func (o Options) dialector() (gorm.Dialector, error) {
	switch o.Driver {
	case "", "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			o.Host, o.User, o.Password, o.Name, o.Port,
		)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(o.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", o.Driver)
	}
}

// Connect opens the configured database. Timestamps are always written in UTC.
func Connect(o Options) (*gorm.DB, error) {
	dialector, err := o.dialector()
	if err != nil {
		return nil, err
	}

	level := gormlogger.Warn
	if o.Debug {
		level = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(level),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if o.Driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	logger.Log.Info("database connected", zap.String("driver", o.Driver))
	return db, nil
}

// OpenMemory opens a private in-memory sqlite database under the given name.
func OpenMemory(name string) (*gorm.DB, error) {
	return Connect(Options{
		Driver:     "sqlite",
		SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name),
	})
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
