package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mmcdole/marquee/internal/completion"
	"github.com/mmcdole/marquee/internal/tmdb"
)

// Config holds all application configuration
type Config struct {
	TMDB       TMDBConfig       `mapstructure:"tmdb"`
	Completion CompletionConfig `mapstructure:"completion"`
	Search     SearchConfig     `mapstructure:"search"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// TMDBConfig holds metadata service configuration
type TMDBConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	Token        string `mapstructure:"token"` // v4 read access token
	Language     string `mapstructure:"language"`
	ImageBaseURL string `mapstructure:"image_base_url"`
}

// CompletionConfig holds LLM gateway configuration
type CompletionConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`
	Token       string  `mapstructure:"token"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// SearchConfig holds debounce delays and suggestion limits
type SearchConfig struct {
	KeywordDebounce   time.Duration `mapstructure:"keyword_debounce"`
	AssistDebounce    time.Duration `mapstructure:"assist_debounce"`
	RecommendDebounce time.Duration `mapstructure:"recommend_debounce"`
	AssistLimit       int           `mapstructure:"assist_limit"`
	RecommendLimit    int           `mapstructure:"recommend_limit"`
}

// StorageConfig holds the saved-movies database location
type StorageConfig struct {
	Path string `mapstructure:"path"` // Directory; empty keeps favorites in memory
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:      tmdb.DefaultBaseURL,
			Language:     "en-US",
			ImageBaseURL: tmdb.DefaultImageBaseURL,
		},
		Completion: CompletionConfig{
			Endpoint:    completion.DefaultEndpoint,
			Model:       completion.DefaultModel,
			Temperature: completion.DefaultTemperature,
			MaxTokens:   completion.DefaultMaxTokens,
		},
		Search: SearchConfig{
			KeywordDebounce:   500 * time.Millisecond,
			AssistDebounce:    500 * time.Millisecond,
			RecommendDebounce: 800 * time.Millisecond,
			AssistLimit:       completion.TitleLimit,
			RecommendLimit:    completion.RecommendLimit,
		},
		Storage: StorageConfig{
			Path: defaultDataPath(),
		},
		Logging: LoggingConfig{
			File:       filepath.Join(defaultDataPath(), "marquee.log"),
			Level:      "INFO",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee")
	}
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "marquee")
	}
}

// values flattens cfg into viper keys using snake_case names
func values(cfg *Config) map[string]any {
	return map[string]any{
		"tmdb.base_url":       cfg.TMDB.BaseURL,
		"tmdb.token":          cfg.TMDB.Token,
		"tmdb.language":       cfg.TMDB.Language,
		"tmdb.image_base_url": cfg.TMDB.ImageBaseURL,

		"completion.endpoint":    cfg.Completion.Endpoint,
		"completion.token":       cfg.Completion.Token,
		"completion.model":       cfg.Completion.Model,
		"completion.temperature": cfg.Completion.Temperature,
		"completion.max_tokens":  cfg.Completion.MaxTokens,

		"search.keyword_debounce":   cfg.Search.KeywordDebounce.String(),
		"search.assist_debounce":    cfg.Search.AssistDebounce.String(),
		"search.recommend_debounce": cfg.Search.RecommendDebounce.String(),
		"search.assist_limit":       cfg.Search.AssistLimit,
		"search.recommend_limit":    cfg.Search.RecommendLimit,

		"storage.path": cfg.Storage.Path,

		"logging.file":        cfg.Logging.File,
		"logging.level":       cfg.Logging.Level,
		"logging.max_size_mb": cfg.Logging.MaxSizeMB,
		"logging.max_backups": cfg.Logging.MaxBackups,
	}
}

// LoadConfig loads configuration from config.yaml in dir (or the working
// directory) and the environment. A missing file yields the defaults.
func LoadConfig(dir string) (*Config, error) {
	if dir == "" {
		dir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.AddConfigPath(".")
	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Registered defaults let AutomaticEnv override keys absent from the file
	for key, value := range values(DefaultConfig()) {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg to config.yaml in dir
func SaveConfig(cfg *Config, dir string) error {
	if dir == "" {
		dir = DefaultConfigDir()
	}

	// Ensure config directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	for key, value := range values(cfg) {
		v.Set(key, value)
	}

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if both service tokens are set
func (c *Config) IsConfigured() bool {
	return c.TMDB.Token != "" && c.Completion.Token != ""
}
