package config

import (
	"os"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid config",
			config: Config{
				Port:            "8081",
				SQLiteDBPath:    "./test.db",
				ReportsPath:     "./reports.json",
				ShutdownTimeout: 10 * time.Second,
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:            "abc",
				SQLiteDBPath:    "./test.db",
				ReportsPath:     "./reports.json",
				ShutdownTimeout: 10 * time.Second,
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range low",
			config: Config{
				Port:            "0",
				SQLiteDBPath:    "./test.db",
				ReportsPath:     "./reports.json",
				ShutdownTimeout: 10 * time.Second,
			},
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name: "invalid port - out of range high",
			config: Config{
				Port:            "70000",
				SQLiteDBPath:    "./test.db",
				ReportsPath:     "./reports.json",
				ShutdownTimeout: 10 * time.Second,
			},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name: "missing database path",
			config: Config{
				Port:            "8080",
				SQLiteDBPath:    "",
				ReportsPath:     "./reports.json",
				ShutdownTimeout: 10 * time.Second,
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "missing reports path",
			config: Config{
				Port:            "8080",
				SQLiteDBPath:    "./test.db",
				ReportsPath:     "",
				ShutdownTimeout: 10 * time.Second,
			},
			wantErr:     true,
			errorString: "reports path cannot be empty",
		},
		{
			name: "shutdown timeout too short",
			config: Config{
				Port:            "8080",
				SQLiteDBPath:    "./test.db",
				ReportsPath:     "./reports.json",
				ShutdownTimeout: 500 * time.Millisecond,
			},
			wantErr:     true,
			errorString: "invalid shutdown timeout 500ms: must be at least 1 second",
		},
		{
			name: "shutdown timeout too long",
			config: Config{
				Port:            "8080",
				SQLiteDBPath:    "./test.db",
				ReportsPath:     "./reports.json",
				ShutdownTimeout: 2 * time.Hour,
			},
			wantErr:     true,
			errorString: "invalid shutdown timeout 2h0m0s: must be at most 1 minute",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else {
				if err != nil {
					t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			}
		})
	}
}

func TestLoad(t *testing.T) {
	// Save original env vars
	originalVars := map[string]string{
		"PORT":             os.Getenv("PORT"),
		"SQLITE_DB_PATH":   os.Getenv("SQLITE_DB_PATH"),
		"REPORTS_PATH":     os.Getenv("REPORTS_PATH"),
		"GEMINI_API_KEY":   os.Getenv("GEMINI_API_KEY"),
		"GEMINI_MODEL":     os.Getenv("GEMINI_MODEL"),
		"SHUTDOWN_TIMEOUT": os.Getenv("SHUTDOWN_TIMEOUT"),
	}

	// Clean environment
	for key := range originalVars {
		os.Unsetenv(key)
	}

	// Restore env vars at end of test
	defer func() {
		for key, value := range originalVars {
			if value != "" {
				os.Setenv(key, value)
			} else {
				os.Unsetenv(key)
			}
		}
	}()

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		if cfg.Port != "8081" {
			t.Errorf("Load() Port = %v, want 8081", cfg.Port)
		}
		if cfg.SQLiteDBPath != "./data/butcem.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want ./data/butcem.db", cfg.SQLiteDBPath)
		}
		if cfg.ReportsPath != "./data/reports.json" {
			t.Errorf("Load() ReportsPath = %v, want ./data/reports.json", cfg.ReportsPath)
		}
		if cfg.ShutdownTimeout != 10*time.Second {
			t.Errorf("Load() ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout)
		}
		if cfg.GeminiEnabled() {
			t.Errorf("Load() GeminiEnabled() = true without API key")
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		os.Setenv("PORT", "9090")
		os.Setenv("SQLITE_DB_PATH", "/tmp/test.db")
		os.Setenv("REPORTS_PATH", "/tmp/reports.json")
		os.Setenv("GEMINI_API_KEY", "test-key")
		os.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
		os.Setenv("SHUTDOWN_TIMEOUT", "15s")

		cfg := Load()

		if cfg.Port != "9090" {
			t.Errorf("Load() Port = %v, want 9090", cfg.Port)
		}
		if cfg.SQLiteDBPath != "/tmp/test.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want /tmp/test.db", cfg.SQLiteDBPath)
		}
		if cfg.ReportsPath != "/tmp/reports.json" {
			t.Errorf("Load() ReportsPath = %v, want /tmp/reports.json", cfg.ReportsPath)
		}
		if cfg.GeminiModel != "gemini-2.5-pro" {
			t.Errorf("Load() GeminiModel = %v, want gemini-2.5-pro", cfg.GeminiModel)
		}
		if cfg.ShutdownTimeout != 15*time.Second {
			t.Errorf("Load() ShutdownTimeout = %v, want 15s", cfg.ShutdownTimeout)
		}
		if !cfg.GeminiEnabled() {
			t.Errorf("Load() GeminiEnabled() = false with API key set")
		}
	})

	t.Run("invalid environment variables use defaults", func(t *testing.T) {
		os.Setenv("SHUTDOWN_TIMEOUT", "invalid")

		cfg := Load()

		if cfg.ShutdownTimeout != 10*time.Second {
			t.Errorf("Load() ShutdownTimeout = %v, want 10s (default for invalid input)", cfg.ShutdownTimeout)
		}
	})
}

// Helper function to check if string contains substring
func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || func() bool {
		for i := 0; i <= len(s)-len(substr); i++ {
			if s[i:i+len(substr)] == substr {
				return true
			}
		}
		return false
	}())
}
