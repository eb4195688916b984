package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/nulzo/prompt-optimizer-api/internal/core/domain"
)

type Config struct {
	Server       ServerConfig            `mapstructure:"server"`
	Redis        RedisConfig             `mapstructure:"redis"`
	RateLimit    RateLimitConfig         `mapstructure:"rate_limit"`
	Batch        BatchConfig             `mapstructure:"batch"`
	Output       OutputConfig            `mapstructure:"output"`
	Database     DatabaseConfig          `mapstructure:"database"`
	Optimizer    domain.CapabilityConfig `mapstructure:"optimizer"`
	Targets      TargetsConfig           `mapstructure:"targets"`
	ScenarioFile string                  `mapstructure:"scenario_file"`
}

type ServerConfig struct {
	Port    string   `mapstructure:"port"`
	Env     string   `mapstructure:"env"`
	APIKeys []string `mapstructure:"api_keys"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Enabled  bool   `mapstructure:"enabled"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type BatchConfig struct {
	// FailFast aborts a batch on the first scenario failure instead of
	// isolating it and continuing.
	FailFast bool `mapstructure:"fail_fast"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

type DatabaseConfig struct {
	DSN     string `mapstructure:"dsn"`
	Enabled bool   `mapstructure:"enabled"`
}

type TargetsConfig struct {
	Supported []string         `mapstructure:"supported"`
	Redirects []RedirectConfig `mapstructure:"redirects"`
}

type RedirectConfig struct {
	ID         string `mapstructure:"id"`
	Substitute string `mapstructure:"substitute"`
	Reason     string `mapstructure:"reason"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig() (*Config, error) {
	// Load .env file if present
	_ = godotenv.Load()

	v := viper.New()

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Default Values
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("rate_limit.requests_per_second", 10.0)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("batch.fail_fast", false)
	v.SetDefault("output.dir", ".")
	v.SetDefault("database.enabled", true)
	v.SetDefault("database.dsn", "file:optimizer_runs.db?cache=shared&mode=rwc&_journal_mode=WAL&_busy_timeout=5000")
	v.SetDefault("optimizer.type", "bedrock")
	v.SetDefault("optimizer.region", "us-east-1")

	// Environment Variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	// Resolve secrets held behind ENV: indirection
	cfg.Redis.Password = resolveEnv(v, cfg.Redis.Password)
	for i, key := range cfg.Server.APIKeys {
		cfg.Server.APIKeys[i] = resolveEnv(v, key)
	}

	// Target tables default to the Nova matrix the optimizer was built for.
	if len(cfg.Targets.Supported) == 0 && len(cfg.Targets.Redirects) == 0 {
		cfg.Targets = defaultTargets()
	}

	return &cfg, nil
}

// TargetTable builds and validates the domain table from the raw config.
func (c *Config) TargetTable() (*domain.TargetTable, error) {
	redirects := make(map[string]domain.RedirectRule, len(c.Targets.Redirects))
	for _, r := range c.Targets.Redirects {
		redirects[r.ID] = domain.RedirectRule{
			Substitute: r.Substitute,
			Reason:     r.Reason,
		}
	}
	return domain.NewTargetTable(c.Targets.Supported, redirects)
}

func defaultTargets() TargetsConfig {
	return TargetsConfig{
		Supported: []string{
			"amazon.nova-lite-v1:0",
			"amazon.nova-micro-v1:0",
			"amazon.nova-pro-v1:0",
			"amazon.nova-premier-v1:0",
		},
		Redirects: []RedirectConfig{
			{
				ID:         "amazon.nova-2-lite-v1:0",
				Substitute: "amazon.nova-lite-v1:0",
				Reason:     "Nova Lite 2.0 not yet supported by the prompt optimizer, reusing Nova Lite 1.0 optimizations",
			},
		},
	}
}

func resolveEnv(v *viper.Viper, value string) string {
	if !strings.HasPrefix(value, "ENV:") {
		return value
	}

	envVar := strings.TrimPrefix(value, "ENV:")
	// Check process environment first (explicit override)
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	// Then check viper (which might have it from other sources)
	return v.GetString(envVar)
}
