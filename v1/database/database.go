package database

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gov-dx-sandbox/member-service/internal/config"
	"github.com/gov-dx-sandbox/member-service/v1/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds GORM database connection configuration
type Config struct {
	Driver          string
	Host            string
	Port            string
	Username        string
	Password        string
	Database        string
	SSLMode         string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	MaxRetries      int
	RunMigration    bool
}

// NewDatabaseConfig creates a GORM database configuration from the service config
func NewDatabaseConfig(cfg *config.DBConfigs) *Config {
	return &Config{
		Driver:          cfg.Driver,
		Host:            cfg.Host,
		Port:            cfg.Port,
		Username:        cfg.Username,
		Password:        cfg.Password,
		Database:        cfg.Database,
		SSLMode:         cfg.SSLMode,
		SQLitePath:      cfg.SQLitePath,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
		MaxRetries:      cfg.MaxRetries,
		RunMigration:    cfg.RunMigration,
	}
}

// Dialector returns the GORM dialector for the configured driver
func (c *Config) Dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case config.DriverPostgres, "":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode)
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		if c.SQLitePath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(c.SQLitePath), 0o755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
			}
		}
		return sqlite.Open(c.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.Driver)
	}
}

// ConnectGormDB establishes a GORM connection, retrying with exponential backoff
func ConnectGormDB(cfg *Config) (*gorm.DB, error) {
	dialector, err := cfg.Dialector()
	if err != nil {
		return nil, err
	}

	// ParameterizedQueries keeps member data out of the SQL log
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 1
	}
	var db *gorm.DB

	for i := 0; i < maxRetries; i++ {
		db, err = gorm.Open(dialector, &gorm.Config{
			Logger: gormLogger,
		})
		if err == nil {
			break
		}

		if i < maxRetries-1 {
			waitTime := time.Second * time.Duration(1<<i) // 1s, 2s, 4s, ...
			slog.Warn("Failed to connect to database, retrying...",
				"attempt", i+1,
				"maxRetries", maxRetries,
				"error", err,
				"waitTime", waitTime)
			time.Sleep(waitTime)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		// SQLite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Successfully connected to database with GORM",
		"driver", cfg.Driver,
		"host", cfg.Host,
		"database", cfg.Database)

	if cfg.RunMigration || cfg.Driver == config.DriverSQLite {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	} else {
		slog.Info("Database connected (migration skipped)")
	}

	return db, nil
}

// Migrate creates or updates the members table
func Migrate(db *gorm.DB) error {
	slog.Info("Running GORM auto-migration")
	if err := db.AutoMigrate(&models.Member{}); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}
	slog.Info("GORM auto-migration completed successfully")
	return nil
}

// Close closes the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}
