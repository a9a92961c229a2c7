package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database  DatabaseConfig  `toml:"database"`
	Content   ContentConfig   `toml:"content"`
	TrueCoach TrueCoachConfig `toml:"truecoach"`
	Linking   LinkingConfig   `toml:"linking"`
	Storage   StorageConfig   `toml:"storage"`
	Support   SupportConfig   `toml:"support"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ContentConfig points at the repository-contents listings for remote screens.
type ContentConfig struct {
	CoursesURL        string  `toml:"courses_url"`
	NutritionURL      string  `toml:"nutrition_url"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
}

// Timeout returns the HTTP client timeout. Zero leaves the stdlib default.
func (c ContentConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// TrueCoachConfig contains partner API settings.
//
// APIKey seeds the token store on first run; the persisted token wins afterwards.
type TrueCoachConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
}

// LinkingConfig drives the partner-app resolver.
type LinkingConfig struct {
	Platform          string   `toml:"platform"`
	Scheme            string   `toml:"scheme"`
	AndroidPackages   []string `toml:"android_packages"`
	IOSAppStoreURL    string   `toml:"ios_app_store_url"`
	PlaySearchURL     string   `toml:"play_search_url"`
	AppStoreSearchURL string   `toml:"app_store_search_url"`
}

// StorageConfig contains local file locations.
type StorageConfig struct {
	DocumentsDir string `toml:"documents_dir"`
}

// SupportConfig configures the issue report mail composer.
type SupportConfig struct {
	Recipient string `toml:"recipient"`
	Sender    string `toml:"sender"`
	Subject   string `toml:"subject"`
	Transport string `toml:"transport"` // "mailto" or "ses"
	AWSRegion string `toml:"aws_region"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv loads an optional .env file and applies BETTER_* overrides to the config.
//
// A missing .env file is not an error; variables already set in the process win over the file.
func ApplyEnv(config *Config, envFiles ...string) error {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("%w: failed to load %s: %v", ErrInvalidConfig, f, err)
		}
	}

	if v := os.Getenv("BETTER_DATABASE_PATH"); v != "" {
		config.Database.Path = v
	}
	if v := os.Getenv("BETTER_TRUECOACH_API_KEY"); v != "" {
		config.TrueCoach.APIKey = v
	}
	if v := os.Getenv("BETTER_SUPPORT_EMAIL"); v != "" {
		config.Support.Recipient = v
	}
	if v := os.Getenv("BETTER_DOCUMENTS_DIR"); v != "" {
		config.Storage.DocumentsDir = v
	}
	return nil
}

// DocumentsDir resolves the directory holding downloaded documents.
//
// Defaults to <user config dir>/better/documents.
func (c *Config) DocumentsDir() (string, error) {
	if c.Storage.DocumentsDir != "" {
		return c.Storage.DocumentsDir, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, "better", "documents"), nil
}
