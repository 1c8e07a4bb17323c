package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Set only required env var
	os.Setenv("DATABASE_URL", "postgres://localhost/test")
	defer os.Unsetenv("DATABASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Verify defaults
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Import.MaxFileSize != 20971520 {
		t.Errorf("Import.MaxFileSize = %d, want %d", cfg.Import.MaxFileSize, 20971520)
	}
	if cfg.Import.EntryTimeout != 2*time.Minute {
		t.Errorf("Import.EntryTimeout = %s, want 2m", cfg.Import.EntryTimeout)
	}
	if cfg.Import.TaskTTL != time.Hour {
		t.Errorf("Import.TaskTTL = %s, want 1h", cfg.Import.TaskTTL)
	}
	if cfg.Rate.RequestsPerMinute != 100 {
		t.Errorf("Rate.RequestsPerMinute = %d, want %d", cfg.Rate.RequestsPerMinute, 100)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://localhost/test")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("IMPORT_ENTRY_TIMEOUT", "30s")
	os.Setenv("LOG_LEVEL", "debug")
	defer func() {
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("IMPORT_ENTRY_TIMEOUT")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Import.EntryTimeout != 30*time.Second {
		t.Errorf("Import.EntryTimeout = %s, want 30s", cfg.Import.EntryTimeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	// Test that DB_URL works as fallback
	os.Setenv("DB_URL", "postgres://localhost/alttest")
	defer os.Unsetenv("DB_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.URL != "postgres://localhost/alttest" {
		t.Errorf("Database.URL = %q, want %q", cfg.Database.URL, "postgres://localhost/alttest")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("DB_URL")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for missing DATABASE_URL")
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://localhost/test")
	os.Setenv("IMPORT_TASK_TTL", "not-a-duration")
	defer func() {
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("IMPORT_TASK_TTL")
	}()

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for invalid duration")
	}
}

func TestValidate_WordPressCredentials(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://localhost/test")
	os.Setenv("WORDPRESS_BASE_URL", "https://blog.example.com")
	defer func() {
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("WORDPRESS_BASE_URL")
	}()

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for WordPress URL without credentials")
	}

	os.Setenv("WORDPRESS_USERNAME", "admin")
	os.Setenv("WORDPRESS_APP_PASSWORD", "secret")
	defer func() {
		os.Unsetenv("WORDPRESS_USERNAME")
		os.Unsetenv("WORDPRESS_APP_PASSWORD")
	}()

	if _, err := Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
}

func TestValidate_LogLevel(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://localhost/test")
	os.Setenv("LOG_LEVEL", "verbose")
	defer func() {
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("LOG_LEVEL")
	}()

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for invalid log level")
	}
}

func TestServerConfig_Addr(t *testing.T) {
	tests := []struct {
		name string
		host string
		port int
		want string
	}{
		{"host and port", "127.0.0.1", 9000, "127.0.0.1:9000"},
		{"empty host", "", 8080, ":8080"},
		{"zero port", "localhost", 0, "localhost:0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ServerConfig{Host: tt.host, Port: tt.port}
			if got := c.Addr(); got != tt.want {
				t.Errorf("Addr() = %q, want %q", got, tt.want)
			}
		})
	}
}
