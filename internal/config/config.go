package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Seed modes applied to the default scheme list at startup.
const (
	SeedUpsert = "upsert"
	SeedReset  = "reset"
	SeedOff    = "off"
)

// Config holds all configuration for our application
type Config struct {
	Port           string
	Origin         string
	Environment    string
	SeedMode       string
	LogLevel       string
	LogFormat      string
	MetricsEnabled bool
	Database       DatabaseConfig
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Driver          string
	Path            string
	Host            string
	Port            string
	Username        string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
	DSN             string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	driver := strings.ToLower(getEnv("DB_DRIVER", DriverSQLite))

	dbConfig := DatabaseConfig{
		Driver:   driver,
		Path:     getEnv("DB_PATH", "hospital_schemes.db"),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", defaultPort(driver)),
		Username: getEnv("DB_USER", defaultUser(driver)),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hospital_schemes"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	var err error
	if dbConfig.MaxOpenConns, err = getEnvInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return nil, err
	}
	if dbConfig.MaxIdleConns, err = getEnvInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return nil, err
	}
	lifetimeMinutes, err := getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	if err != nil {
		return nil, err
	}
	dbConfig.ConnMaxLifetime = time.Duration(lifetimeMinutes) * time.Minute

	timeoutSeconds, err := getEnvInt("DB_CONNECT_TIMEOUT_SECONDS", 5)
	if err != nil {
		return nil, err
	}
	dbConfig.ConnectTimeout = time.Duration(timeoutSeconds) * time.Second

	dbConfig.DSN, err = BuildDSN(dbConfig)
	if err != nil {
		return nil, err
	}

	seedMode := strings.ToLower(getEnv("SEED_MODE", SeedUpsert))
	switch seedMode {
	case SeedUpsert, SeedReset, SeedOff:
	default:
		return nil, fmt.Errorf("invalid SEED_MODE %q: want upsert, reset or off", seedMode)
	}

	metricsEnabled, err := strconv.ParseBool(getEnv("ENABLE_METRICS", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENABLE_METRICS: %w", err)
	}

	return &Config{
		Port:           getEnv("PORT", "5000"),
		Origin:         getEnv("ORIGIN", "http://localhost:5000"),
		Environment:    getEnv("APP_ENV", "development"),
		SeedMode:       seedMode,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		MetricsEnabled: metricsEnabled,
		Database:       dbConfig,
	}, nil
}

// BuildDSN renders the driver specific data source name.
func BuildDSN(db DatabaseConfig) (string, error) {
	timeout := int(db.ConnectTimeout / time.Second)
	if timeout <= 0 {
		timeout = 5
	}

	switch db.Driver {
	case DriverSQLite:
		if strings.TrimSpace(db.Path) == "" {
			return "", fmt.Errorf("DB_PATH is required for the sqlite driver")
		}
		return fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=%d&_journal_mode=WAL&_txlock=immediate",
			db.Path, timeout*1000), nil
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC&timeout=%ds",
			db.Username, db.Password, db.Host, db.Port, db.Name, timeout), nil
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d TimeZone=UTC",
			db.Host, db.Port, db.Username, db.Password, db.Name, db.SSLMode, timeout), nil
	default:
		return "", fmt.Errorf("unsupported DB_DRIVER %q: want sqlite, mysql or postgres", db.Driver)
	}
}

func defaultPort(driver string) string {
	switch driver {
	case DriverPostgres:
		return "5432"
	case DriverMySQL:
		return "3306"
	}
	return ""
}

func defaultUser(driver string) string {
	if driver == DriverPostgres {
		return "postgres"
	}
	return "root"
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
