// Package config loads member-service configuration from an optional YAML file,
// environment variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gov-dx-sandbox/member-service/shared/utils"
	"gopkg.in/yaml.v3"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the service
type Config struct {
	Environment string           `yaml:"environment"`
	Service     ServiceConfig    `yaml:"service"`
	Logging     LoggingConfig    `yaml:"logging"`
	Security    SecurityConfig   `yaml:"security"`
	DBConfigs   DBConfigs        `yaml:"database"`
	Monitoring  MonitoringConfig `yaml:"monitoring"`
}

// ServiceConfig holds listener configuration for both transports
type ServiceConfig struct {
	Name            string        `yaml:"name"`
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	GRPCPort        string        `yaml:"grpcPort"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	IdleTimeout     time.Duration `yaml:"idleTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SecurityConfig holds CORS configuration for the REST listener
type SecurityConfig struct {
	EnableCORS     bool   `yaml:"enableCors"`
	AllowedOrigins string `yaml:"allowedOrigins"`
}

// DBConfigs holds database configuration
type DBConfigs struct {
	Driver          string        `yaml:"driver"`
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	Username        string        `yaml:"username"`
	Password        string        `yaml:"password"`
	Database        string        `yaml:"database"`
	SSLMode         string        `yaml:"sslMode"`
	SQLitePath      string        `yaml:"sqlitePath"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
	ConnMaxIdleTime time.Duration `yaml:"connMaxIdleTime"`
	MaxRetries      int           `yaml:"maxRetries"`
	RunMigration    bool          `yaml:"runMigration"`
}

// MonitoringConfig selects the metrics exporter. Enabled is only read from
// ENABLE_OBSERVABILITY; a config file disables metrics with exporter "none".
type MonitoringConfig struct {
	Enabled      bool   `yaml:"-"`
	ExporterType string `yaml:"exporter"`
	OTLPEndpoint string `yaml:"otlpEndpoint"`
}

// LoadConfig loads configuration for serviceName. args are the command-line
// arguments without the program name.
func LoadConfig(serviceName string, args []string) (*Config, error) {
	file, fileCORS, err := loadFile(utils.GetEnvOrDefault("CONFIG_FILE", ""))
	if err != nil {
		return nil, err
	}

	env := utils.GetEnvOrDefault("ENVIRONMENT", orDefault(file.Environment, "local"))

	fs := flag.NewFlagSet(serviceName, flag.ContinueOnError)
	envFlag := fs.String("env", env, "Environment: local or production")
	host := fs.String("host", utils.GetEnvOrDefault("HOST", orDefault(file.Service.Host, "0.0.0.0")), "Host address")
	port := fs.String("port", utils.GetEnvOrDefault("PORT", orDefault(file.Service.Port, "8080")), "REST port")
	grpcPort := fs.String("grpc-port", utils.GetEnvOrDefault("GRPC_PORT", orDefault(file.Service.GRPCPort, "9090")), "gRPC port")
	logLevel := fs.String("log-level", utils.GetEnvOrDefault("LOG_LEVEL", orDefault(file.Logging.Level, getDefaultLogLevel(env))), "Log level")
	logFormat := fs.String("log-format", utils.GetEnvOrDefault("LOG_FORMAT", orDefault(file.Logging.Format, getDefaultLogFormat(env))), "Log format: text or json")
	defaultCORS := getDefaultCORS(env)
	if fileCORS != nil {
		defaultCORS = *fileCORS
	}
	enableCORS := fs.Bool("cors", utils.GetEnvBoolOrDefault("ENABLE_CORS", defaultCORS), "Enable CORS")
	dbDriver := fs.String("db-driver", utils.GetEnvOrDefault("DB_DRIVER", orDefault(file.DBConfigs.Driver, DriverPostgres)), "Database driver: postgres or sqlite")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	cfg := &Config{
		Environment: *envFlag,
		Service: ServiceConfig{
			Name:            serviceName,
			Host:            *host,
			Port:            *port,
			GRPCPort:        *grpcPort,
			ReadTimeout:     utils.GetEnvDurationOrDefault("HTTP_READ_TIMEOUT", durationOrDefault(file.Service.ReadTimeout, 15*time.Second)),
			WriteTimeout:    utils.GetEnvDurationOrDefault("HTTP_WRITE_TIMEOUT", durationOrDefault(file.Service.WriteTimeout, 15*time.Second)),
			IdleTimeout:     utils.GetEnvDurationOrDefault("HTTP_IDLE_TIMEOUT", durationOrDefault(file.Service.IdleTimeout, 60*time.Second)),
			ShutdownTimeout: utils.GetEnvDurationOrDefault("SHUTDOWN_TIMEOUT", durationOrDefault(file.Service.ShutdownTimeout, 30*time.Second)),
		},
		Logging: LoggingConfig{
			Level:  *logLevel,
			Format: *logFormat,
		},
		Security: SecurityConfig{
			EnableCORS:     *enableCORS,
			AllowedOrigins: utils.GetEnvOrDefault("CORS_ALLOWED_ORIGINS", orDefault(file.Security.AllowedOrigins, "http://localhost:3000")),
		},
		DBConfigs: DBConfigs{
			Driver:          *dbDriver,
			Host:            utils.GetEnvOrDefault("DB_HOST", orDefault(file.DBConfigs.Host, "localhost")),
			Port:            utils.GetEnvOrDefault("DB_PORT", orDefault(file.DBConfigs.Port, "5432")),
			Username:        utils.GetEnvOrDefault("DB_USERNAME", orDefault(file.DBConfigs.Username, "postgres")),
			Password:        utils.GetEnvOrDefault("DB_PASSWORD", file.DBConfigs.Password),
			Database:        utils.GetEnvOrDefault("DB_NAME", orDefault(file.DBConfigs.Database, "member_service")),
			SSLMode:         utils.GetEnvOrDefault("DB_SSLMODE", orDefault(file.DBConfigs.SSLMode, "disable")),
			SQLitePath:      utils.GetEnvOrDefault("DB_SQLITE_PATH", orDefault(file.DBConfigs.SQLitePath, "./data/members.db")),
			MaxOpenConns:    utils.GetEnvIntOrDefault("DB_MAX_OPEN_CONNS", intOrDefault(file.DBConfigs.MaxOpenConns, 25)),
			MaxIdleConns:    utils.GetEnvIntOrDefault("DB_MAX_IDLE_CONNS", intOrDefault(file.DBConfigs.MaxIdleConns, 5)),
			ConnMaxLifetime: utils.GetEnvDurationOrDefault("DB_CONN_MAX_LIFETIME", durationOrDefault(file.DBConfigs.ConnMaxLifetime, time.Hour)),
			ConnMaxIdleTime: utils.GetEnvDurationOrDefault("DB_CONN_MAX_IDLE_TIME", durationOrDefault(file.DBConfigs.ConnMaxIdleTime, 30*time.Minute)),
			MaxRetries:      utils.GetEnvIntOrDefault("DB_MAX_RETRIES", intOrDefault(file.DBConfigs.MaxRetries, 5)),
			RunMigration:    utils.GetEnvBoolOrDefault("RUN_MIGRATION", file.DBConfigs.RunMigration),
		},
		Monitoring: MonitoringConfig{
			Enabled:      utils.GetEnvBoolOrDefault("ENABLE_OBSERVABILITY", true),
			ExporterType: utils.GetEnvOrDefault("OTEL_METRICS_EXPORTER", orDefault(file.Monitoring.ExporterType, "prometheus")),
			OTLPEndpoint: utils.GetEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", file.Monitoring.OTLPEndpoint),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot start with
func (c *Config) Validate() error {
	var errs []error
	switch c.DBConfigs.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver %q (supported: postgres, sqlite)", c.DBConfigs.Driver))
	}
	if err := validatePort("port", c.Service.Port); err != nil {
		errs = append(errs, err)
	}
	if err := validatePort("grpc-port", c.Service.GRPCPort); err != nil {
		errs = append(errs, err)
	}
	if c.Service.Port == c.Service.GRPCPort {
		errs = append(errs, fmt.Errorf("REST and gRPC ports must differ (both %s)", c.Service.Port))
	}
	return errors.Join(errs...)
}

// IsProduction reports whether the service runs in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// loadFile also reports security.enableCors separately, nil when the file
// leaves it unset, so an explicit false is not mistaken for a missing value.
func loadFile(path string) (*Config, *bool, error) {
	file := &Config{}
	if path == "" {
		return file, nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, file); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	var presence struct {
		Security struct {
			EnableCORS *bool `yaml:"enableCors"`
		} `yaml:"security"`
	}
	if err := yaml.Unmarshal(data, &presence); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return file, presence.Security.EnableCORS, nil
}

func validatePort(name, port string) error {
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("invalid %s %q", name, port)
	}
	return nil
}

func orDefault(value, defaultValue string) string {
	if value != "" {
		return value
	}
	return defaultValue
}

func intOrDefault(value, defaultValue int) int {
	if value > 0 {
		return value
	}
	return defaultValue
}

func durationOrDefault(value, defaultValue time.Duration) time.Duration {
	if value > 0 {
		return value
	}
	return defaultValue
}

func getDefaultLogLevel(env string) string {
	if env == "production" {
		return "warn"
	}
	return "debug"
}

func getDefaultLogFormat(env string) string {
	if env == "production" {
		return "json"
	}
	return "text"
}

func getDefaultCORS(env string) bool {
	return env != "production"
}
