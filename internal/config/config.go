package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Service   ServiceConfig   `mapstructure:"service"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Data      DataConfig      `mapstructure:"data"`
	Logger    LoggerConfig    `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// ServiceConfig holds the remote entity-query service configuration
type ServiceConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DashboardConfig holds dashboard defaults
type DashboardConfig struct {
	DefaultVendorCode string `mapstructure:"default_vendor_code"`
	NoticeLimit       int    `mapstructure:"notice_limit"`
}

// DataConfig holds local static data configuration
type DataConfig struct {
	ModelDir string `mapstructure:"model_dir"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)

	// Entity-query service defaults
	viper.SetDefault("service.timeout", 30*time.Second)

	// Dashboard defaults
	viper.SetDefault("dashboard.default_vendor_code", "100000")
	viper.SetDefault("dashboard.notice_limit", 50)

	// Local data defaults
	viper.SetDefault("data.model_dir", "model")

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "json")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars() {
	viper.BindEnv("service.base_url", "ENTITY_SERVICE_BASE_URL")
	viper.BindEnv("dashboard.default_vendor_code", "DEFAULT_VENDOR_CODE")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Service.BaseURL == "" {
		return fmt.Errorf("service.base_url is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid port number: %d", c.Server.Port)
	}
	if c.Dashboard.DefaultVendorCode == "" {
		return fmt.Errorf("dashboard.default_vendor_code is required")
	}
	return nil
}
