package components

import "image/color"

// ParticleComponent 命中爆炸产生的单个粒子
//
// Life 从 1 开始线性递减，渲染时作为透明度使用；Life<=0 时由粒子系统移除。
type ParticleComponent struct {
	ID string

	X, Y   float64
	VX, VY float64 // 速度（像素/tick）

	Life    float64 // 剩余生命 [0, 1]
	MaxLife float64
	Color   color.RGBA
	Size    float64 // 半径
}
