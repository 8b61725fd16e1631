package db

import (
	"backend/internal/config"
	"backend/internal/domain"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	dsn := cfg.PostgresDSN()
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	logger.Info("Connected to PostgreSQL",
		zap.String("host", cfg.DBHost),
		zap.String("database", cfg.DBName),
	)

	return db, nil
}

func Migrate(db *gorm.DB, logger *zap.Logger) error {
	err := db.AutoMigrate(
		&domain.Workspace{},
		&domain.Board{},
		&domain.List{},
		&domain.Card{},
		&domain.Label{},
		&domain.Checklist{},
		&domain.Comment{},
		&domain.Activity{},
	)
	if err != nil {
		return err
	}
	logger.Info("Database migrations applied")
	return nil
}
