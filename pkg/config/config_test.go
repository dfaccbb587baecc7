package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 15, cfg.TierDepth)
	assert.Equal(t, 150, cfg.MaxLineups)
	assert.Equal(t, 30*time.Second, cfg.SolverTimeout())
	assert.True(t, cfg.IsDevelopment())
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero tier depth", func(c *Config) { c.TierDepth = 0 }},
		{"zero solver timeout", func(c *Config) { c.SolverTimeoutSeconds = 0 }},
		{"negative bonus weight", func(c *Config) { c.SalaryBonusWeight = -0.1 }},
		{"zero max lineups", func(c *Config) { c.MaxLineups = 0 }},
		{"zero fallback exposure", func(c *Config) { c.FallbackMaxExposure = 0 }},
		{"fallback exposure above one", func(c *Config) { c.FallbackMaxExposure = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("TIER_DEPTH", "8")
	t.Setenv("MAX_LINEUPS", "40")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.TierDepth)
	assert.Equal(t, 40, cfg.MaxLineups)
	assert.Equal(t, 0.0001, cfg.SalaryBonusWeight)
}
