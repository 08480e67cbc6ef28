package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Materials MaterialsConfig `mapstructure:"materials"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MaterialsConfig holds dictionary and scoring configuration
type MaterialsConfig struct {
	DictionaryPath string        `mapstructure:"dictionary_path"` // empty = embedded dictionary
	MinEcoScore    float64       `mapstructure:"min_eco_score"`
	Weights        WeightsConfig `mapstructure:"weights"`
}

// WeightsConfig holds the eco score component weights
type WeightsConfig struct {
	MaterialScore    float64 `mapstructure:"material_score"`
	Recyclability    float64 `mapstructure:"recyclability"`
	Biodegradability float64 `mapstructure:"biodegradability"`
}

// AnalysisConfig holds product analysis configuration
type AnalysisConfig struct {
	DetectHints bool `mapstructure:"detect_hints"`
	BatchLimit  int  `mapstructure:"batch_limit"`
	Workers     int  `mapstructure:"workers"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute, 0 disables
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "text" or "json"
}

var validEnvironments = map[string]bool{
	"development": true,
	"test":        true,
	"production":  true,
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile loads configuration like Load, reading the given config file instead of
// searching the default paths when path is not empty
func LoadFile(path string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/ecoscan/")
	}

	// Environment variable settings: ECOSCAN_SERVER_PORT -> server.port
	v.SetEnvPrefix("ECOSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads a .env file from the working directory if present.
// Variables already set in the environment are never overridden.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return gotenv.Load(".env")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"chrome-extension://*"})

	// Material defaults
	v.SetDefault("materials.dictionary_path", "")
	v.SetDefault("materials.min_eco_score", 0.5)
	v.SetDefault("materials.weights.material_score", 0.6)
	v.SetDefault("materials.weights.recyclability", 0.2)
	v.SetDefault("materials.weights.biodegradability", 0.2)

	// Analysis defaults
	v.SetDefault("analysis.detect_hints", true)
	v.SetDefault("analysis.batch_limit", 100)
	v.SetDefault("analysis.workers", 8)

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("cache.cleanup_interval", "1m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// validate validates the configuration
func validate(config *Config) error {
	if !validEnvironments[config.Server.Environment] {
		return fmt.Errorf("environment must be development, test or production, got: %s", config.Server.Environment)
	}

	if config.Materials.MinEcoScore < 0 || config.Materials.MinEcoScore > 1 {
		return fmt.Errorf("min eco score must be between 0 and 1, got: %g", config.Materials.MinEcoScore)
	}

	weights := map[string]float64{
		"material_score":   config.Materials.Weights.MaterialScore,
		"recyclability":    config.Materials.Weights.Recyclability,
		"biodegradability": config.Materials.Weights.Biodegradability,
	}
	for name, w := range weights {
		if w < 0 || w > 1 {
			return fmt.Errorf("weight %s must be between 0 and 1, got: %g", name, w)
		}
	}
	if config.Materials.Weights.MaterialScore == 0 {
		return fmt.Errorf("weight material_score must be greater than 0")
	}

	if config.Analysis.BatchLimit <= 0 {
		return fmt.Errorf("batch limit must be positive, got: %d", config.Analysis.BatchLimit)
	}

	if config.Analysis.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got: %d", config.Analysis.Workers)
	}

	if config.Cache.Enabled && config.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive when cache is enabled")
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("per-IP rate limit cannot be negative, got: %d", config.RateLimit.PerIP)
	}

	if config.Logging.Format != "text" && config.Logging.Format != "json" {
		return fmt.Errorf("log format must be 'text' or 'json', got: %s", config.Logging.Format)
	}

	return nil
}
