package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "phishguard",
		Password: "secret",
		Name:     "phishguard",
		SSLMode:  "disable",
	}
	dsn := db.GetDSN()

	expected := "host=localhost port=5432 user=phishguard password=secret dbname=phishguard sslmode=disable"
	if dsn != expected {
		t.Errorf("GetDSN() = %q, want %q", dsn, expected)
	}
}

func TestGetDSNCustomValues(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db.example.com",
		Port:     5433,
		User:     "admin",
		Password: "p@ss",
		Name:     "mydb",
		SSLMode:  "require",
	}
	dsn := db.GetDSN()

	if !strings.Contains(dsn, "host=db.example.com") {
		t.Errorf("DSN missing host, got: %s", dsn)
	}
	if !strings.Contains(dsn, "port=5433") {
		t.Errorf("DSN missing port, got: %s", dsn)
	}
	if !strings.Contains(dsn, "sslmode=require") {
		t.Errorf("DSN missing sslmode, got: %s", dsn)
	}
}

func TestDialector(t *testing.T) {
	tests := []struct {
		driver  string
		name    string
		wantErr bool
	}{
		{"sqlite", "sqlite", false},
		{"postgres", "postgres", false},
		{"mysql", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			d, err := DatabaseConfig{Driver: tt.driver, Path: ":memory:"}.Dialector()
			if tt.wantErr {
				if err == nil {
					t.Error("expected error for unsupported driver")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Name() != tt.name {
				t.Errorf("Dialector().Name() = %q, want %q", d.Name(), tt.name)
			}
		})
	}
}

func TestRedisEnabled(t *testing.T) {
	if (RedisConfig{}).Enabled() {
		t.Error("empty host should disable redis")
	}
	if !(RedisConfig{Host: "localhost"}).Enabled() {
		t.Error("host set should enable redis")
	}
}

func TestGetEnv(t *testing.T) {
	os.Unsetenv("TEST_CONFIG_VAR")
	if got := getEnv("TEST_CONFIG_VAR", "default"); got != "default" {
		t.Errorf("getEnv() = %q, want %q", got, "default")
	}

	os.Setenv("TEST_CONFIG_VAR", "custom")
	defer os.Unsetenv("TEST_CONFIG_VAR")
	if got := getEnv("TEST_CONFIG_VAR", "default"); got != "custom" {
		t.Errorf("getEnv() = %q, want %q", got, "custom")
	}
}

func TestGetIntEnv(t *testing.T) {
	t.Run("fallback when unset", func(t *testing.T) {
		os.Unsetenv("TEST_INT_VAR")
		got, err := getIntEnv("TEST_INT_VAR", 8080)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 8080 {
			t.Errorf("getIntEnv() = %d, want %d", got, 8080)
		}
	})

	t.Run("parses valid int", func(t *testing.T) {
		os.Setenv("TEST_INT_VAR", "9090")
		defer os.Unsetenv("TEST_INT_VAR")
		got, err := getIntEnv("TEST_INT_VAR", 8080)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 9090 {
			t.Errorf("getIntEnv() = %d, want %d", got, 9090)
		}
	})

	t.Run("error on invalid int", func(t *testing.T) {
		os.Setenv("TEST_INT_VAR", "not_int")
		defer os.Unsetenv("TEST_INT_VAR")
		_, err := getIntEnv("TEST_INT_VAR", 8080)
		if err == nil {
			t.Error("expected error for invalid int value")
		}
	})
}

func TestGetBoolEnv(t *testing.T) {
	os.Unsetenv("TEST_BOOL_VAR")
	if got, err := getBoolEnv("TEST_BOOL_VAR", true); err != nil || !got {
		t.Errorf("getBoolEnv() = %v, %v, want true, nil", got, err)
	}

	os.Setenv("TEST_BOOL_VAR", "false")
	defer os.Unsetenv("TEST_BOOL_VAR")
	if got, err := getBoolEnv("TEST_BOOL_VAR", true); err != nil || got {
		t.Errorf("getBoolEnv() = %v, %v, want false, nil", got, err)
	}

	os.Setenv("TEST_BOOL_VAR", "maybe")
	if _, err := getBoolEnv("TEST_BOOL_VAR", true); err == nil {
		t.Error("expected error for invalid bool value")
	}
}

var configKeys = []string{
	"SERVER_PORT", "GIN_MODE", "DB_DRIVER", "DB_PATH", "DB_HOST", "DB_PORT", "DB_USER",
	"DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD",
	"REDIS_DB", "REDIS_CHANNEL", "CORS_ALLOWED_ORIGINS", "MODEL_PATH", "MAPPING_PATH",
	"AUDIT_FILE", "DEFAULT_DATASET", "PERSIST_SUGGESTION", "FEATURE_TIMEOUT_SEC",
	"WHOIS_CACHE_TTL_MIN",
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range configKeys {
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want %q", cfg.Database.Driver, "sqlite")
	}
	if cfg.Database.Path != "phishing_predictions.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "phishing_predictions.db")
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want 5432", cfg.Database.Port)
	}
	if cfg.Redis.Enabled() {
		t.Error("Redis should be disabled by default")
	}
	if cfg.Redis.Channel != "phishguard:predictions" {
		t.Errorf("Redis.Channel = %q", cfg.Redis.Channel)
	}
	if cfg.CORS.AllowedOrigins != "*" {
		t.Errorf("CORS.AllowedOrigins = %q, want %q", cfg.CORS.AllowedOrigins, "*")
	}
	if cfg.Data.MappingPath != "Mapping.xlsx" {
		t.Errorf("Data.MappingPath = %q, want %q", cfg.Data.MappingPath, "Mapping.xlsx")
	}
	if cfg.Data.AuditFile != "phishing_websites.txt" {
		t.Errorf("Data.AuditFile = %q, want %q", cfg.Data.AuditFile, "phishing_websites.txt")
	}
	if cfg.Data.PersistSuggestion {
		t.Error("Data.PersistSuggestion should default to false")
	}
	if cfg.Features.Timeout != 10*time.Second {
		t.Errorf("Features.Timeout = %s, want 10s", cfg.Features.Timeout)
	}
	if cfg.Features.WhoisCacheTTL != 24*time.Hour {
		t.Errorf("Features.WhoisCacheTTL = %s, want 24h", cfg.Features.WhoisCacheTTL)
	}
}

func TestLoadConfigCustom(t *testing.T) {
	os.Setenv("SERVER_PORT", "3000")
	os.Setenv("DB_DRIVER", "postgres")
	os.Setenv("DB_HOST", "db.prod")
	os.Setenv("DB_PORT", "5433")
	os.Setenv("REDIS_HOST", "cache.prod")
	os.Setenv("PERSIST_SUGGESTION", "true")
	defer func() {
		for _, key := range []string{"SERVER_PORT", "DB_DRIVER", "DB_HOST", "DB_PORT", "REDIS_HOST", "PERSIST_SUGGESTION"} {
			os.Unsetenv(key)
		}
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Database.Driver = %q, want %q", cfg.Database.Driver, "postgres")
	}
	if cfg.Database.Host != "db.prod" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "db.prod")
	}
	if cfg.Database.Port != 5433 {
		t.Errorf("Database.Port = %d, want 5433", cfg.Database.Port)
	}
	if !cfg.Redis.Enabled() {
		t.Error("Redis should be enabled when REDIS_HOST is set")
	}
	if !cfg.Data.PersistSuggestion {
		t.Error("Data.PersistSuggestion should be true")
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "REDIS_DB", "PERSIST_SUGGESTION", "FEATURE_TIMEOUT_SEC"} {
		t.Run(key, func(t *testing.T) {
			os.Setenv(key, "invalid")
			defer os.Unsetenv(key)

			if _, err := LoadConfig(); err == nil {
				t.Errorf("expected error for invalid %s", key)
			}
		})
	}
}
