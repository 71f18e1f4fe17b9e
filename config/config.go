package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Routing engine specifics
	Policy     PolicyConfig
	Classifier ClassifierConfig
	Routing    RoutingConfig
	Telemetry  TelemetryConfig
	Admin      AdminConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// PolicyConfig points at the policy document loaded on startup.
type PolicyConfig struct {
	Path string
}

// ClassifierConfig tunes the classification result cache.
type ClassifierConfig struct {
	CacheSize int
	CacheTTL  time.Duration
}

// RoutingConfig holds engine-level knobs that are not part of the policy
// document itself.
type RoutingConfig struct {
	DefaultEstimatedTokens int // token estimate used when the caller supplies none
}

// TelemetryConfig configures the async decision event sink.
type TelemetryConfig struct {
	BufferSize int
	OutputPath string // file path, or "stderr"/"stdout"
}

// AdminConfig guards the policy admin endpoints.
type AdminConfig struct {
	RateLimitPerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Policy document
	cfg.Policy.Path = viper.GetString("policy.path")
	if policyPath := viper.GetString("policy_path"); policyPath != "" {
		cfg.Policy.Path = policyPath
	}

	// Classifier cache
	cfg.Classifier.CacheSize = viper.GetInt("classifier.cache_size")
	cfg.Classifier.CacheTTL = viper.GetDuration("classifier.cache_ttl")

	// Routing engine
	cfg.Routing.DefaultEstimatedTokens = viper.GetInt("routing.default_estimated_tokens")
	if cfg.Routing.DefaultEstimatedTokens <= 0 {
		return nil, fmt.Errorf("routing.default_estimated_tokens must be positive")
	}

	// Telemetry
	cfg.Telemetry.BufferSize = viper.GetInt("telemetry.buffer_size")
	cfg.Telemetry.OutputPath = viper.GetString("telemetry.output_path")

	// Admin surface
	cfg.Admin.RateLimitPerMin = viper.GetInt("admin.rate_limit_per_min")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("policy.path", "./config/policy.yaml")
	viper.SetDefault("classifier.cache_size", 1024)
	viper.SetDefault("classifier.cache_ttl", "5m")
	viper.SetDefault("routing.default_estimated_tokens", 1000)
	viper.SetDefault("telemetry.buffer_size", 256)
	viper.SetDefault("telemetry.output_path", "stderr")
	viper.SetDefault("admin.rate_limit_per_min", 30)
}
