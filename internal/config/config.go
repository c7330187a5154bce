package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds runtime settings. Values come from, in increasing priority:
// defaults, an optional config file, ENERGYDASH_* environment variables,
// and command-line flags bound by the caller.
type Config struct {
	Port               string `mapstructure:"port"`
	DBPath             string `mapstructure:"db_path"`
	StaticDir          string `mapstructure:"static_dir"`
	LogLevel           string `mapstructure:"log_level"`
	LogFormat          string `mapstructure:"log_format"`
	RateLimitPerMinute int    `mapstructure:"rate_limit_per_minute"`
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("db_path", "energydash.db")
	v.SetDefault("static_dir", "static")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("rate_limit_per_minute", 60)

	v.SetEnvPrefix("ENERGYDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file into v and decodes the result.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == "" {
		return nil, fmt.Errorf("port must not be empty")
	}
	if cfg.RateLimitPerMinute < 0 {
		return nil, fmt.Errorf("rate_limit_per_minute must be >= 0, got %d", cfg.RateLimitPerMinute)
	}
	return &cfg, nil
}
