package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Model    ModelConfig
	Data     DataConfig
	Features FeatureConfig
}

type ServerConfig struct {
	Port    int
	GinMode string
}

type DatabaseConfig struct {
	Driver   string
	Path     string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Channel  string
}

// Enabled reports whether a redis host was configured.
func (r RedisConfig) Enabled() bool { return r.Host != "" }

type CORSConfig struct {
	AllowedOrigins string
}

type ModelConfig struct {
	Path string
}

type DataConfig struct {
	MappingPath       string
	AuditFile         string
	DefaultDataset    string
	PersistSuggestion bool
}

type FeatureConfig struct {
	Timeout       time.Duration
	WhoisCacheTTL time.Duration
}

func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// Dialector returns the gorm dialector for the configured driver.
func (d DatabaseConfig) Dialector() (gorm.Dialector, error) {
	switch d.Driver {
	case "sqlite":
		return sqlite.Open(d.Path), nil
	case "postgres":
		return postgres.Open(d.GetDSN()), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", d.Driver)
	}
}

func LoadConfig() (*Config, error) {
	serverPort, err := getIntEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	dbPort, err := getIntEnv("DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	redisPort, err := getIntEnv("REDIS_PORT", 6379)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}

	redisDB, err := getIntEnv("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	persistSuggestion, err := getBoolEnv("PERSIST_SUGGESTION", false)
	if err != nil {
		return nil, fmt.Errorf("invalid PERSIST_SUGGESTION: %w", err)
	}

	featureTimeout, err := getIntEnv("FEATURE_TIMEOUT_SEC", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid FEATURE_TIMEOUT_SEC: %w", err)
	}

	whoisTTL, err := getIntEnv("WHOIS_CACHE_TTL_MIN", 1440)
	if err != nil {
		return nil, fmt.Errorf("invalid WHOIS_CACHE_TTL_MIN: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:    serverPort,
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "sqlite"),
			Path:     getEnv("DB_PATH", "phishing_predictions.db"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "phishguard"),
			Password: getEnv("DB_PASSWORD", "phishguard_dev_password"),
			Name:     getEnv("DB_NAME", "phishguard"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     redisPort,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			Channel:  getEnv("REDIS_CHANNEL", "phishguard:predictions"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Model: ModelConfig{
			Path: getEnv("MODEL_PATH", "model.json"),
		},
		Data: DataConfig{
			MappingPath:       getEnv("MAPPING_PATH", "Mapping.xlsx"),
			AuditFile:         getEnv("AUDIT_FILE", "phishing_websites.txt"),
			DefaultDataset:    getEnv("DEFAULT_DATASET", "upload.csv"),
			PersistSuggestion: persistSuggestion,
		},
		Features: FeatureConfig{
			Timeout:       time.Duration(featureTimeout) * time.Second,
			WhoisCacheTTL: time.Duration(whoisTTL) * time.Minute,
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getIntEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func getBoolEnv(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseBool(value)
}
