package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// EnvDatabaseURL is the environment variable holding the network backend's
// connection string. DatabaseURL falls back to DATABASE_URL when unset.
const EnvDatabaseURL = "KINO_DATABASE_URL"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Cache    CacheConfig    `toml:"cache"`
}

// DatabaseConfig selects the storage backend and its pool settings.
//
// Backend is either "sqlite" (embedded, file at Path) or "postgres" (network,
// connection string supplied via the environment, see [DatabaseURL]).
type DatabaseConfig struct {
	Backend      string `toml:"backend"`
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// CacheConfig contains settings for the in-memory list cache.
type CacheConfig struct {
	TTLSeconds       int     `toml:"ttl_seconds"`
	MaxEntries       int     `toml:"max_entries"`
	RefreshPerSecond float64 `toml:"refresh_per_second"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
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
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DatabaseURL returns the connection string for the network backend from the
// environment, preferring KINO_DATABASE_URL over DATABASE_URL. Returns an
// empty string when neither is set; the caller decides whether that is fatal.
func DatabaseURL() string {
	if dsn := os.Getenv(EnvDatabaseURL); dsn != "" {
		return dsn
	}
	return os.Getenv("DATABASE_URL")
}
