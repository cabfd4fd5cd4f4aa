package entities

import (
	"image/color"
	"math"

	"github.com/Fannzxyl/kotoba-test/pkg/components"
	"github.com/Fannzxyl/kotoba-test/pkg/config"
)

// ProjectileColor 子弹颜色
var ProjectileColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// NewProjectile 创建一发绑定到指定气泡的子弹
//
// 参数:
//   - targetID: 开火时瞄准的气泡ID
//   - x, y: 炮口位置
//   - angle: 开火角度（弧度）
//   - cfg: 子弹参数
func NewProjectile(targetID string, x, y, angle float64, cfg *config.ProjectileConfig) *components.ProjectileComponent {
	return &components.ProjectileComponent{
		BoundTargetID: targetID,
		X:             x,
		Y:             y,
		VX:            math.Cos(angle) * cfg.Speed,
		VY:            math.Sin(angle) * cfg.Speed,
		Radius:        cfg.Radius,
		IsActive:      true,
		Color:         ProjectileColor,
	}
}
