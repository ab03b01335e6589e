package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Extractor ExtractorConfig `mapstructure:"extractor"`
	UI        UIConfig        `mapstructure:"ui"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// CatalogConfig holds movie catalog provider configuration
type CatalogConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	BearerToken string `mapstructure:"bearer_token"` // v4 read access token
	APIKey      string `mapstructure:"api_key"`      // v3 API key
	Language    string `mapstructure:"language"`
}

// ExtractorConfig holds generative-text provider configuration
type ExtractorConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme        string `mapstructure:"theme"`
	HistoryLines int    `mapstructure:"history_lines"` // recent searches shown on the welcome screen
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:  "https://api.themoviedb.org/3",
			Language: "en-US",
		},
		Extractor: ExtractorConfig{
			BaseURL: "https://generativelanguage.googleapis.com/v1beta",
			Model:   "gemini-2.0-flash",
		},
		UI: UIConfig{
			Theme:        "default",
			HistoryLines: 8,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "moodreel", "moodreel.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "moodreel", "moodreel.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "moodreel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "moodreel")
	}
}

// defaultDataPath returns the default data directory (search history db)
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "moodreel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "moodreel")
	}
}

// LoadConfig loads configuration from file and environment.
// Environment variables use the MOODREEL_ prefix with underscores, e.g.
// MOODREEL_CATALOG_BEARER_TOKEN, MOODREEL_EXTRACTOR_API_KEY.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("MOODREEL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Explicit env bindings so credentials work without a config file
	for _, key := range []string{
		"catalog.base_url", "catalog.bearer_token", "catalog.api_key", "catalog.language",
		"extractor.base_url", "extractor.api_key", "extractor.model",
		"ui.theme", "ui.history_lines",
		"logging.file", "logging.level",
	} {
		viper.BindEnv(key)
	}

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults + env
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// MissingCatalogCredentials returns the names of catalog credentials that are
// not configured. Empty means the catalog call path is usable.
func (c *Config) MissingCatalogCredentials() []string {
	var missing []string
	if c.Catalog.BearerToken == "" {
		missing = append(missing, "catalog bearer token")
	}
	if c.Catalog.APIKey == "" {
		missing = append(missing, "catalog API key")
	}
	return missing
}

// MissingExtractorCredentials returns the names of generative-text credentials
// that are not configured.
func (c *Config) MissingExtractorCredentials() []string {
	if c.Extractor.APIKey == "" {
		return []string{"extractor API key"}
	}
	return nil
}

// MissingCredentials returns every unconfigured credential, in call-path order.
func (c *Config) MissingCredentials() []string {
	return append(c.MissingExtractorCredentials(), c.MissingCatalogCredentials()...)
}

// DataPath returns the directory where the search history db lives
func (c *Config) DataPath() string {
	return defaultDataPath()
}
