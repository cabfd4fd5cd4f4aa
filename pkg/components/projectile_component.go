package components

import "image/color"

// ProjectileComponent 表示一发飞行中的子弹
//
// BoundTargetID 不是子弹自身的唯一ID，而是开火时瞄准的气泡ID。
// 碰撞检测只针对这个气泡，飞行途中经过的其他气泡不会被误判命中。
type ProjectileComponent struct {
	BoundTargetID string

	X, Y   float64
	VX, VY float64 // 速度（像素/tick）
	Radius float64

	IsActive bool
	Color    color.RGBA
}
