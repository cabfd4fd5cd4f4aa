package components

import "math"

// CannonComponent 炮台状态（每个引擎一个）
//
// Angle 每帧向 TargetAngle 平滑靠近，Recoil 每帧线性衰减到 0。
type CannonComponent struct {
	X, Y        float64
	Angle       float64 // 当前炮管角度（弧度，0 指向右侧，-π/2 指向上方）
	TargetAngle float64 // 目标角度
	Recoil      float64 // 后坐位移（像素）
}

// NewCannonComponent 创建炮口朝上的炮台
func NewCannonComponent(x, y float64) CannonComponent {
	return CannonComponent{
		X:           x,
		Y:           y,
		Angle:       -math.Pi / 2,
		TargetAngle: -math.Pi / 2,
	}
}
