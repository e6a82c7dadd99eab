package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"DB_DRIVER", "DB_PATH", "PORT", "SEED_MODE", "ENABLE_METRICS"} {
		t.Setenv(key, "")
	}
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "test.db")
	t.Setenv("PORT", "5000")
	t.Setenv("SEED_MODE", "upsert")
	t.Setenv("ENABLE_METRICS", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("Driver = %q, want %q", cfg.Database.Driver, DriverSQLite)
	}
	if !strings.HasPrefix(cfg.Database.DSN, "test.db?") {
		t.Errorf("DSN = %q, want test.db prefix", cfg.Database.DSN)
	}
	if !strings.Contains(cfg.Database.DSN, "_foreign_keys=on") {
		t.Errorf("DSN = %q, foreign keys must be enabled", cfg.Database.DSN)
	}
	if cfg.SeedMode != SeedUpsert {
		t.Errorf("SeedMode = %q, want %q", cfg.SeedMode, SeedUpsert)
	}
	if cfg.Database.ConnectTimeout != 5*time.Second {
		t.Errorf("ConnectTimeout = %v, want 5s", cfg.Database.ConnectTimeout)
	}
	if !cfg.MetricsEnabled {
		t.Error("MetricsEnabled = false, want true")
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad seed mode", "SEED_MODE", "truncate"},
		{"bad driver", "DB_DRIVER", "oracle"},
		{"bad pool size", "DB_MAX_OPEN_CONNS", "many"},
		{"bad metrics flag", "ENABLE_METRICS", "perhaps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DB_DRIVER", "sqlite")
			t.Setenv("SEED_MODE", "upsert")
			t.Setenv(tt.key, tt.value)

			if _, err := LoadConfig(); err == nil {
				t.Errorf("LoadConfig() with %s=%q succeeded, want error", tt.key, tt.value)
			}
		})
	}
}

func TestBuildDSN(t *testing.T) {
	base := DatabaseConfig{
		Path:           "data/app.db",
		Host:           "db.internal",
		Port:           "1234",
		Username:       "admin",
		Password:       "secret",
		Name:           "hospital_schemes",
		SSLMode:        "require",
		ConnectTimeout: 3 * time.Second,
	}

	tests := []struct {
		driver string
		want   []string
	}{
		{DriverSQLite, []string{"data/app.db?", "_foreign_keys=on", "_busy_timeout=3000"}},
		{DriverMySQL, []string{"admin:secret@tcp(db.internal:1234)/hospital_schemes", "parseTime=True", "timeout=3s"}},
		{DriverPostgres, []string{"host=db.internal", "port=1234", "dbname=hospital_schemes", "sslmode=require", "connect_timeout=3"}},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			db := base
			db.Driver = tt.driver
			dsn, err := BuildDSN(db)
			if err != nil {
				t.Fatalf("BuildDSN() error = %v", err)
			}
			for _, part := range tt.want {
				if !strings.Contains(dsn, part) {
					t.Errorf("DSN %q missing %q", dsn, part)
				}
			}
		})
	}
}

func TestBuildDSNRequiresSQLitePath(t *testing.T) {
	if _, err := BuildDSN(DatabaseConfig{Driver: DriverSQLite}); err == nil {
		t.Error("BuildDSN() with empty sqlite path succeeded, want error")
	}
}
