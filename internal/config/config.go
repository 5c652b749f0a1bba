package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Config is the full runtime configuration of the service.
type Config struct {
	Port        string
	Env         string
	ServiceName string
	CORSOrigins string

	RateLimitMax    int
	RateLimitWindow time.Duration

	CEP     CEPConfig
	Storage StorageConfig
	DB      DBConfig
	Redis   RedisConfig

	OTLPEndpoint string
}

// CEPConfig configures the Banxico CEP client.
type CEPConfig struct {
	BaseURL string
	Timeout time.Duration
}

type StorageConfig struct {
	Driver       string
	DocumentsDir string
}

// DBConfig holds the Postgres connection and pool settings.
type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Host        string
	Port        string
	Password    string
	DB          int
	DocumentTTL time.Duration
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found", slog.String("error", err.Error()))
	}
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		Port:            GetEnv("PORT", "3000"),
		Env:             GetEnv("ENV", "development"),
		ServiceName:     GetEnv("SERVICE_NAME", "apix"),
		CORSOrigins:     GetEnv("CORS_ORIGINS", "*"),
		RateLimitMax:    GetIntEnv("RATE_LIMIT_MAX", 0),
		RateLimitWindow: GetDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
		CEP: CEPConfig{
			BaseURL: GetEnv("CEP_BASE_URL", "https://www.banxico.org.mx/cep"),
			Timeout: GetDurationEnv("CEP_TIMEOUT", 30*time.Second),
		},
		Storage: StorageConfig{
			Driver:       strings.ToLower(GetEnv("STORAGE_DRIVER", StorageFile)),
			DocumentsDir: GetEnv("DOCUMENTS_DIR", "."),
		},
		DB: DBConfig{
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", "postgres"),
			Name:            GetEnv("DB_NAME", "apix"),
			SSLMode:         GetEnv("DB_SSLMODE", "disable"),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		Redis: RedisConfig{
			Host:        GetEnv("REDIS_HOST", "localhost"),
			Port:        GetEnv("REDIS_PORT", "6379"),
			Password:    GetEnv("REDIS_PASSWORD", ""),
			DB:          GetIntEnv("REDIS_DB", 0),
			DocumentTTL: GetDurationEnv("REDIS_DOCUMENT_TTL", 0),
		},
		OTLPEndpoint: GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable (e.g. "30s") or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
