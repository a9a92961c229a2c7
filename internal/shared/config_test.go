package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./better.db" {
			t.Errorf("expected database path ./better.db, got %s", config.Database.Path)
		}

		if config.TrueCoach.BaseURL != "https://api.truecoach.co/v1" {
			t.Errorf("expected truecoach base URL, got %s", config.TrueCoach.BaseURL)
		}

		if config.Linking.Scheme != "truecoach" {
			t.Errorf("expected scheme truecoach, got %s", config.Linking.Scheme)
		}

		if len(config.Linking.AndroidPackages) != 5 {
			t.Errorf("expected 5 android packages, got %d", len(config.Linking.AndroidPackages))
		}

		if config.Support.Recipient == "" {
			t.Error("expected a default support recipient")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"

[truecoach]
api_key = "secret"

[linking]
platform = "ios"
android_packages = ["co.truecoach.client"]
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}
		if config.TrueCoach.APIKey != "secret" {
			t.Errorf("expected api key secret, got %s", config.TrueCoach.APIKey)
		}
		if config.Linking.Platform != "ios" || len(config.Linking.AndroidPackages) != 1 {
			t.Errorf("unexpected linking config: %+v", config.Linking)
		}
		if config.TrueCoach.BaseURL != "https://api.truecoach.co/v1" {
			t.Errorf("expected unset keys to keep defaults, got %s", config.TrueCoach.BaseURL)
		}
	})

	t.Run("LoadConfig Invalid TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[database\npath ="), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("LoadConfig Missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
		if !errors.Is(err, ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		envPath := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(envPath, []byte("BETTER_TRUECOACH_API_KEY=from-env\nBETTER_DATABASE_PATH=/tmp/env.db\n"), 0644); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}
		t.Cleanup(func() {
			os.Unsetenv("BETTER_TRUECOACH_API_KEY")
			os.Unsetenv("BETTER_DATABASE_PATH")
		})

		config := DefaultConfig()
		if err := ApplyEnv(config, envPath); err != nil {
			t.Fatalf("ApplyEnv() error = %v", err)
		}

		if config.TrueCoach.APIKey != "from-env" {
			t.Errorf("expected api key from-env, got %s", config.TrueCoach.APIKey)
		}
		if config.Database.Path != "/tmp/env.db" {
			t.Errorf("expected database path /tmp/env.db, got %s", config.Database.Path)
		}
	})

	t.Run("ApplyEnv Missing File", func(t *testing.T) {
		config := DefaultConfig()
		if err := ApplyEnv(config, filepath.Join(t.TempDir(), "missing.env")); err != nil {
			t.Errorf("missing env file should be ignored, got %v", err)
		}
	})

	t.Run("DocumentsDir", func(t *testing.T) {
		config := DefaultConfig()
		config.Storage.DocumentsDir = "/data/docs"

		dir, err := config.DocumentsDir()
		if err != nil || dir != "/data/docs" {
			t.Errorf("DocumentsDir() = %q, %v", dir, err)
		}
	})
}
