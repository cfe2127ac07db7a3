package db

import (
	"context"
	"fmt"
	"time"

	"github.com/snnyvrz/shelfshare/apps/library-api/internal/config"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const pingTimeout = 5 * time.Second

func dialector(cfg *config.Config) gorm.Dialector {
	if cfg.DBDriver == config.DriverSQLite {
		return sqlite.Open(cfg.SQLiteDSN())
	}
	return postgres.Open(cfg.DSN())
}

// ConnectWithRetry opens the configured database and pings it, retrying
// while the server is still starting up.
func ConnectWithRetry(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	var lastErr error

	for attempt := 1; attempt <= cfg.DBMaxAttempts; attempt++ {
		db, err := open(ctx, dialector(cfg), logger, cfg.LogLevel)
		if err == nil {
			logger.Info("database connected",
				zap.String("driver", cfg.DBDriver),
				zap.Int("attempt", attempt),
			)
			return db, nil
		}
		lastErr = err

		logger.Warn("db not ready",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", cfg.DBMaxAttempts),
			zap.Error(err),
		)

		if attempt == cfg.DBMaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.DBRetryDelay):
		}
	}

	return nil, fmt.Errorf("could not connect to db after %d attempts: %w", cfg.DBMaxAttempts, lastErr)
}

func open(ctx context.Context, d gorm.Dialector, logger *zap.Logger, level zapcore.Level) (*gorm.DB, error) {
	db, err := gorm.Open(d, &gorm.Config{
		Logger:         NewGormLogger(logger, level),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the authors and books tables. Authors must
// come first so the books foreign key has a target.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Author{}, &model.Book{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
