package database

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"equiptrack/internal/domain/auth"
	"equiptrack/internal/domain/equipment"
	"equiptrack/internal/domain/history"
	"equiptrack/internal/domain/reservation"
	"equiptrack/internal/domain/status"
)

//go:embed migrations/*.sql
var migrations embed.FS

// IsPostgres reports whether dsn points at PostgreSQL.
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func Connect(dsn string, log *zap.Logger) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	if IsPostgres(dsn) {
		log.Info("connecting to postgres")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Info("using sqlite for local development", zap.String("dsn", dsn))
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
	if err != nil {
		return nil, err
	}

	// sqlite allows one writer at a time.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// Models lists every table the service owns.
func Models() []any {
	return []any{
		&status.EquipmentStatus{},
		&status.ReservationStatus{},
		&status.HistoryStatus{},
		&auth.User{},
		&equipment.Equipment{},
		&reservation.Reservation{},
		&history.History{},
	}
}

// Migrate applies the embedded goose migrations on postgres and falls back
// to AutoMigrate on sqlite.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return db.WithContext(ctx).AutoMigrate(Models()...)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Bootstrap migrates and seeds the status dictionaries.
func Bootstrap(ctx context.Context, db *gorm.DB) error {
	if err := Migrate(ctx, db); err != nil {
		return err
	}
	return status.NewDictionary(db).Seed(ctx)
}
