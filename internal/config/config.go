package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/newthinker/stratdeck/internal/core"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Data      DataConfig      `mapstructure:"data"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	APIKey       string `mapstructure:"api_key"`
	HomePath     string `mapstructure:"home_path"`
	TemplatesDir string `mapstructure:"templates_dir"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// DataConfig locates data.json and the report artifacts inside storage.
type DataConfig struct {
	File          string `mapstructure:"file"`
	ReportsPrefix string `mapstructure:"reports_prefix"`
}

type StorageConfig struct {
	Type string   `mapstructure:"type"` // "localfs" or "s3"
	Path string   `mapstructure:"path"` // For localfs
	S3   S3Config `mapstructure:"s3"`   // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// DashboardConfig controls page copy and chart geometry.
type DashboardConfig struct {
	DefaultDescription string           `mapstructure:"default_description"`
	Categories         []CategoryConfig `mapstructure:"categories"`
	Chart              ChartConfig      `mapstructure:"chart"`
}

// CategoryConfig adds or overrides the description of one category.
// A list is used instead of a map because viper lowercases map keys.
type CategoryConfig struct {
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
}

type ChartConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file, layered over Defaults.
func Load(path string) (*Config, error) {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     "0.0.0.0",
			Port:     8080,
			HomePath: "/",
		},
		Log: LogConfig{
			Level: "info",
		},
		Data: DataConfig{
			File:          "data.json",
			ReportsPrefix: "reports",
		},
		Storage: StorageConfig{
			Type: "localfs",
			Path: "docs",
		},
		Dashboard: DashboardConfig{
			Chart: ChartConfig{
				Width:  320,
				Height: 120,
			},
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.HomePath != "" && !strings.HasPrefix(c.Server.HomePath, "/") {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("home_path must start with /, got %q", c.Server.HomePath))
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown log level %q", c.Log.Level))
	}

	switch c.Storage.Type {
	case "", "localfs":
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("s3 bucket required when storage type is s3"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("storage type must be localfs or s3, got %q", c.Storage.Type))
	}

	if c.Dashboard.Chart.Width < 0 || c.Dashboard.Chart.Height < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("chart size cannot be negative, got %dx%d",
				c.Dashboard.Chart.Width, c.Dashboard.Chart.Height))
	}
	for i, cat := range c.Dashboard.Categories {
		if cat.Name == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("dashboard.categories[%d] has no name", i))
		}
	}

	return nil
}
