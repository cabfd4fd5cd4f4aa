package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultArcadeConfig(t *testing.T) {
	cfg := DefaultArcadeConfig()

	assert.Equal(t, 20.0, cfg.Projectile.Speed)
	assert.Equal(t, 8.0, cfg.Projectile.Radius)
	assert.Equal(t, 45.0, cfg.Target.Radius)
	assert.Equal(t, 120.0, cfg.Target.FloorMargin)
	assert.Equal(t, 12, cfg.Particle.BurstCount)
	assert.Equal(t, 10, cfg.Round.RecentMemory)
	assert.Equal(t, 3, cfg.Session.Lives)
	assert.InDelta(t, 0.6, cfg.Session.TransitionDelay, 1e-9)
}

func TestTargetCount(t *testing.T) {
	cfg := DefaultArcadeConfig()

	tests := []struct {
		level int
		want  int
	}{
		{-3, 3},
		{0, 3},
		{1, 3},
		{4, 3},
		{5, 4},
		{9, 4},
		{10, 5},
		{100, 5},
	}

	for _, tt := range tests {
		if got := cfg.Round.TargetCount(tt.level); got != tt.want {
			t.Errorf("TargetCount(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestLoadArcadeConfigFile(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *ArcadeConfig)
	}{
		{
			name: "partial override keeps defaults",
			yamlContent: `
projectile:
  speed: 24
target:
  radius: 40
`,
			validate: func(t *testing.T, cfg *ArcadeConfig) {
				assert.Equal(t, 24.0, cfg.Projectile.Speed)
				assert.Equal(t, 40.0, cfg.Target.Radius)
				assert.Equal(t, 8.0, cfg.Projectile.Radius)
			},
		},
		{
			name: "zero projectile speed",
			yamlContent: `
projectile:
  speed: 0
`,
			wantErr:     true,
			errContains: "invalid arcade config",
		},
		{
			name: "max targets below min targets",
			yamlContent: `
round:
  minTargets: 4
  maxTargets: 3
`,
			wantErr:     true,
			errContains: "MaxTargets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "arcade.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yamlContent), 0644))

			cfg, err := LoadArcadeConfig(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, strings.Contains(err.Error(), tt.errContains), "error %q should contain %q", err, tt.errContains)
				return
			}
			require.NoError(t, err)
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadArcadeConfigMissingFile(t *testing.T) {
	_, err := LoadArcadeConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadArcadeConfigEnvOverride(t *testing.T) {
	t.Setenv("KOTOBA_PROJECTILE_SPEED", "25")
	t.Setenv("KOTOBA_SESSION_LIVES", "5")

	cfg, err := LoadArcadeConfig("")
	require.NoError(t, err)
	assert.Equal(t, 25.0, cfg.Projectile.Speed)
	assert.Equal(t, 5, cfg.Session.Lives)
}

func TestShippedArcadeConfig(t *testing.T) {
	data, err := os.ReadFile("../../data/arcade.yaml")
	require.NoError(t, err)

	cfg, err := LoadArcadeConfigFromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, *DefaultArcadeConfig(), *cfg, "shipped arcade.yaml should match built-in defaults")
}

func TestFloorY(t *testing.T) {
	cfg := DefaultArcadeConfig()
	assert.Equal(t, 480.0, cfg.Target.FloorY(600))
}
