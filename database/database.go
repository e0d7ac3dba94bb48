package database

import (
	"fmt"

	"investment-app/internal/domain/investments"
	"investment-app/internal/domain/plans"
	"investment-app/internal/domain/users"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Open connects with the named driver: "postgres" (default) or "sqlite".
func Open(driver, dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database dsn is empty")
	}

	var dialector gorm.Dialector
	switch driver {
	case "", "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if driver == "sqlite" {
		// one writer at a time, and in-memory databases live per connection
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&users.Preferences{},
		&investments.Investment{},
		&plans.Plan{},
	)
}

func InitDB(driver, dsn string, log *zap.Logger) {
	db, err := Open(driver, dsn)
	if err != nil {
		log.Fatal("❌ Failed to connect to database", zap.Error(err))
	}

	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatal("❌ AutoMigrate error", zap.Error(err))
	}

	log.Info("✅ Connected and migrated successfully", zap.String("driver", driver))
}
