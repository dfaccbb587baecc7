package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Logging
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	Env       string `mapstructure:"ENV"`

	// Elite tiers
	TierDepth int `mapstructure:"TIER_DEPTH"`

	// Solver
	SolverTimeoutSeconds int     `mapstructure:"SOLVER_TIMEOUT_SECONDS"`
	SalaryBonusWeight    float64 `mapstructure:"SALARY_BONUS_WEIGHT"`

	// Portfolio
	MaxLineups          int     `mapstructure:"MAX_LINEUPS"`
	FallbackMaxExposure float64 `mapstructure:"FALLBACK_MAX_EXPOSURE"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("TIER_DEPTH", 15)
	viper.SetDefault("SOLVER_TIMEOUT_SECONDS", 30)
	viper.SetDefault("SALARY_BONUS_WEIGHT", 0.0001)
	viper.SetDefault("MAX_LINEUPS", 150)
	viper.SetDefault("FALLBACK_MAX_EXPOSURE", 1.0)

	viper.AutomaticEnv()

	// Config file is optional; environment variables and defaults cover
	// everything when it is absent.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the engine defaults without touching the environment.
// Intended for embedding callers and tests.
func Default() *Config {
	return &Config{
		LogLevel:             "info",
		LogFormat:            "text",
		Env:                  "development",
		TierDepth:            15,
		SolverTimeoutSeconds: 30,
		SalaryBonusWeight:    0.0001,
		MaxLineups:           150,
		FallbackMaxExposure:  1.0,
	}
}

func (c *Config) Validate() error {
	if c.TierDepth < 1 {
		return fmt.Errorf("TIER_DEPTH must be at least 1, got %d", c.TierDepth)
	}
	if c.SolverTimeoutSeconds < 1 {
		return fmt.Errorf("SOLVER_TIMEOUT_SECONDS must be at least 1, got %d", c.SolverTimeoutSeconds)
	}
	if c.SalaryBonusWeight < 0 {
		return fmt.Errorf("SALARY_BONUS_WEIGHT must be non-negative, got %f", c.SalaryBonusWeight)
	}
	if c.MaxLineups < 1 {
		return fmt.Errorf("MAX_LINEUPS must be at least 1, got %d", c.MaxLineups)
	}
	if c.FallbackMaxExposure <= 0 || c.FallbackMaxExposure > 1 {
		return fmt.Errorf("FALLBACK_MAX_EXPOSURE must be in (0, 1], got %f", c.FallbackMaxExposure)
	}
	return nil
}

func (c *Config) SolverTimeout() time.Duration {
	return time.Duration(c.SolverTimeoutSeconds) * time.Second
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
