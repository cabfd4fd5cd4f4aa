package entities

import (
	"math"
	"testing"

	"github.com/Fannzxyl/kotoba-test/pkg/config"
	"github.com/stretchr/testify/assert"
)

// TestNewProjectile 测试子弹沿开火角度飞行并绑定目标
func TestNewProjectile(t *testing.T) {
	cfg := config.DefaultArcadeConfig().Projectile

	tests := []struct {
		name   string
		angle  float64
		wantVX float64
		wantVY float64
	}{
		{"向上", -math.Pi / 2, 0, -20},
		{"向右", 0, 20, 0},
		{"左上45度", -3 * math.Pi / 4, -20 / math.Sqrt2, -20 / math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProjectile("target-1", 400, 520, tt.angle, &cfg)
			assert.Equal(t, "target-1", p.BoundTargetID)
			assert.Equal(t, 400.0, p.X)
			assert.Equal(t, 520.0, p.Y)
			assert.InDelta(t, tt.wantVX, p.VX, 1e-9)
			assert.InDelta(t, tt.wantVY, p.VY, 1e-9)
			assert.InDelta(t, cfg.Speed, math.Hypot(p.VX, p.VY), 1e-9)
			assert.Equal(t, cfg.Radius, p.Radius)
			assert.True(t, p.IsActive)
			assert.Equal(t, ProjectileColor, p.Color)
		})
	}
}
