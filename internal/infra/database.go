package infra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/amalSheikhdaher/Simple-Library-API/internal/config"
	"github.com/amalSheikhdaher/Simple-Library-API/internal/model"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the store selected by cfg.DBDriver with its schema
// up to date.
func NewDatabase(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "sqlite":
		return NewSQLiteDatabase(cfg.SQLitePath)
	case "postgres", "":
		return NewPostgresDatabase(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// NewPostgresDatabase connects through pgx, applies the embedded goose
// migrations, then hands the pool to GORM. The schema (unique index on
// categories.name, books → categories foreign key) is owned by the
// migrations, never by AutoMigrate.
func NewPostgresDatabase(ctx context.Context, dsn string) (*gorm.DB, error) {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := Migrate(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig())
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// NewSQLiteDatabase opens a SQLite store (a file path or a "file:...?mode=memory"
// DSN) and creates the schema with AutoMigrate. Foreign keys are switched on
// and the pool is pinned to one connection so the pragma and in-memory
// databases survive across queries.
func NewSQLiteDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
	}
	if err := db.AutoMigrate(&model.Category{}, &model.Book{}); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}
	return db, nil
}

// Ping checks the connection pool behind db.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// gormConfig turns on TranslateError so both drivers report
// gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated, which the services
// map onto domain errors.
func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}
}
