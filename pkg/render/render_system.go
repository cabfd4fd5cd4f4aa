// Package render 用 Ebitengine 绘制街机模式的模拟状态
//
// 模拟本身（engine、systems）不依赖 Ebitengine，可以在无窗口环境中运行；
// 本包只读取状态，不修改任何实体。
package render

import (
	"image/color"
	"math"

	"github.com/Fannzxyl/kotoba-test/pkg/components"
	"github.com/Fannzxyl/kotoba-test/pkg/engine"
	"github.com/Fannzxyl/kotoba-test/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// BackgroundColor 每帧清屏使用的背景色
var BackgroundColor = color.NRGBA{R: 17, G: 24, B: 39, A: 255}

// 渲染颜色
var (
	targetFillNormal   = color.NRGBA{R: 124, G: 58, B: 237, A: 102} // 主题紫，40% 透明度
	targetStrokeNormal = color.NRGBA{R: 168, G: 85, B: 247, A: 255}
	targetFillWrong    = color.NRGBA{R: 239, G: 68, B: 68, A: 204} // 红色，80% 透明度
	targetStrokeWrong  = color.NRGBA{R: 252, G: 165, B: 165, A: 255}
	targetHighlight    = color.NRGBA{R: 255, G: 255, B: 255, A: 77}
	labelColor         = color.White

	cannonBaseColor   = color.NRGBA{R: 55, G: 65, B: 81, A: 255}
	cannonBarrelColor = color.NRGBA{R: 139, G: 92, B: 246, A: 255}
)

const (
	cannonBaseRadius   = 30.0
	cannonBarrelLength = 50.0
	cannonBarrelWidth  = 20.0
	targetStrokeWidth  = 2.0
	projectileGlow     = 2.0 // 光晕半径倍数
)

// Renderer 绘制街机模式的实体
//
// 渲染是当前状态的纯函数，不修改任何实体。
type Renderer struct {
	labelFace text.Face // 气泡文字字体
}

// NewRenderer 创建渲染器
//
// 参数:
//   - labelFace: 气泡文字字体，为 nil 时不绘制文字
func NewRenderer(labelFace text.Face) *Renderer {
	return &Renderer{labelFace: labelFace}
}

// DrawFrame 清屏并按 子弹 → 气泡 → 粒子 → 炮台 的顺序重绘整帧
func (rs *Renderer) DrawFrame(screen *ebiten.Image, s *engine.State) {
	screen.Fill(BackgroundColor)
	rs.DrawProjectiles(screen, s.Projectiles)
	rs.DrawTargets(screen, s.Targets)
	rs.DrawParticles(screen, s.Particles)
	rs.DrawCannon(screen, &s.Cannon)
}

// DrawProjectiles 绘制所有有效子弹（带光晕）
func (rs *Renderer) DrawProjectiles(screen *ebiten.Image, projectiles []*components.ProjectileComponent) {
	for _, p := range projectiles {
		if !p.IsActive {
			continue
		}
		glow := color.NRGBA{R: p.Color.R, G: p.Color.G, B: p.Color.B, A: 60}
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Radius*projectileGlow), glow, true)
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Radius), p.Color, true)
	}
}

// DrawTargets 绘制所有存活气泡
// 气泡按 Scale 缓出缩放（弹出动画），颜色由视觉状态决定，文字居中
func (rs *Renderer) DrawTargets(screen *ebiten.Image, targets []*components.TargetComponent) {
	for _, t := range targets {
		if !t.IsAlive || t.Scale <= 0 {
			continue
		}

		scale := utils.EaseOutCubic(t.Scale)
		r := t.Radius * scale
		fill, stroke := TargetColors(t.State)

		vector.DrawFilledCircle(screen, float32(t.X), float32(t.Y), float32(r), fill, true)
		vector.StrokeCircle(screen, float32(t.X), float32(t.Y), float32(r), targetStrokeWidth, stroke, true)

		// 高光
		vector.DrawFilledCircle(screen,
			float32(t.X-r*0.3), float32(t.Y-r*0.3), float32(r*0.2),
			targetHighlight, true)

		if rs.labelFace == nil || t.DisplayText == "" {
			continue
		}
		op := &text.DrawOptions{}
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(t.X, t.Y)
		op.ColorScale.ScaleWithColor(labelColor)
		text.Draw(screen, t.DisplayText, rs.labelFace, op)
	}
}

// DrawParticles 绘制粒子，透明度等于剩余生命值
func (rs *Renderer) DrawParticles(screen *ebiten.Image, particles []*components.ParticleComponent) {
	for _, p := range particles {
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Size), ParticleColor(p), true)
	}
}

// DrawCannon 绘制炮台底座和带后坐位移的旋转炮管
func (rs *Renderer) DrawCannon(screen *ebiten.Image, cannon *components.CannonComponent) {
	vector.DrawFilledCircle(screen, float32(cannon.X), float32(cannon.Y), cannonBaseRadius, cannonBaseColor, true)

	cos, sin := math.Cos(cannon.Angle), math.Sin(cannon.Angle)
	startX := cannon.X - cos*cannon.Recoil
	startY := cannon.Y - sin*cannon.Recoil
	endX := startX + cos*cannonBarrelLength
	endY := startY + sin*cannonBarrelLength
	vector.StrokeLine(screen,
		float32(startX), float32(startY), float32(endX), float32(endY),
		cannonBarrelWidth, cannonBarrelColor, true)
}

// TargetColors 返回视觉状态对应的填充色和描边色
func TargetColors(state components.TargetState) (fill, stroke color.NRGBA) {
	if state == components.TargetWrong {
		return targetFillWrong, targetStrokeWrong
	}
	return targetFillNormal, targetStrokeNormal
}

// ParticleColor 返回按剩余生命值缩放透明度后的粒子颜色
func ParticleColor(p *components.ParticleComponent) color.NRGBA {
	life := math.Max(0, math.Min(1, p.Life))
	return color.NRGBA{R: p.Color.R, G: p.Color.G, B: p.Color.B, A: uint8(life * 255)}
}
