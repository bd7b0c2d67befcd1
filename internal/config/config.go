package config

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type Config struct {
	Env            string `mapstructure:"ENV"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	Rooms          int    `mapstructure:"ROOMS"`
	Color          bool   `mapstructure:"COLOR"`
	TraceFile      string `mapstructure:"TRACE_FILE"`
	ServiceName    string `mapstructure:"SERVICE_NAME"`
	ServiceVersion string `mapstructure:"SERVICE_VERSION"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ENV", "production")
	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("ROOMS", 0) // 0 -> ask at startup
	v.SetDefault("COLOR", true)
	v.SetDefault("SERVICE_NAME", "ward")
	v.SetDefault("SERVICE_VERSION", "0.1.0")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("ENV")
	v.BindEnv("LOG_LEVEL")
	v.BindEnv("ROOMS")
	v.BindEnv("COLOR")
	v.BindEnv("TRACE_FILE")
	v.BindEnv("SERVICE_NAME")
	v.BindEnv("SERVICE_VERSION")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Level returns the parsed LOG_LEVEL. Validate has already rejected bad values.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.WarnLevel
	}
	return lvl
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Rooms < 0 {
		return fmt.Errorf("ROOMS must not be negative, got %d", c.Rooms)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL is not a valid level: %w", err)
	}
	return nil
}
