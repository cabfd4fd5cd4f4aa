package systems

import (
	"math"

	"github.com/Fannzxyl/kotoba-test/pkg/components"
	"github.com/Fannzxyl/kotoba-test/pkg/config"
)

// UpdateTargets 更新所有存活气泡的弹出动画、位置和边界反弹
//
// 处理顺序：
//  1. 缩放从 0 以 PopInRate/秒 增长到 1
//  2. 按每 tick 速度移动
//  3. 错误状态的气泡额外水平抖动
//  4. 左右墙、顶部和地板（Height-FloorMargin）夹紧并反弹
//
// 抖动在夹紧之前施加，保证气泡始终位于 [r, W-r] × [r, H-FloorMargin] 之内。
//
// 参数:
//   - targets: 气泡列表
//   - bounds: 表面尺寸
//   - cfg: 气泡参数
//   - dt: 帧间隔（秒）
//   - clock: 引擎累计运行时间（秒），用于抖动相位
func UpdateTargets(targets []*components.TargetComponent, bounds Bounds, cfg *config.TargetConfig, dt, clock float64) {
	floor := cfg.FloorY(bounds.Height)

	for _, t := range targets {
		if !t.IsAlive {
			continue
		}

		// 弹出动画
		if t.Scale < 1 {
			t.Scale = math.Min(1, t.Scale+cfg.PopInRate*dt)
		}

		t.X += t.VX
		t.Y += t.VY

		if t.State == components.TargetWrong {
			t.X += math.Sin(clock*cfg.WiggleFrequency) * cfg.WiggleAmplitude
		}

		// 左右墙
		if t.X < t.Radius {
			t.X = t.Radius
			t.VX = -t.VX
		}
		if t.X > bounds.Width-t.Radius {
			t.X = bounds.Width - t.Radius
			t.VX = -t.VX
		}

		// 顶部
		if t.Y < t.Radius {
			t.Y = t.Radius
			t.VY = math.Abs(t.VY)
		}
		// 地板：不允许气泡落到炮台附近
		if t.Y > floor {
			t.Y = floor
			t.VY = -t.VY
		}
	}
}

// PickTarget 返回点击点命中的存活气泡
//
// 点击点必须严格落在气泡圆内。多个气泡重叠时选择圆心离点击点最近的一个，
// 距离相同时按列表顺序取第一个。没有命中时返回 nil。
func PickTarget(targets []*components.TargetComponent, x, y float64) *components.TargetComponent {
	var picked *components.TargetComponent
	best := math.Inf(1)

	for _, t := range targets {
		if !t.IsAlive || !t.Contains(x, y) {
			continue
		}
		d := components.DistanceSq(x, y, t.X, t.Y)
		if d < best {
			best = d
			picked = t
		}
	}
	return picked
}

// FindTarget 按ID查找气泡（包括已死亡的气泡）
func FindTarget(targets []*components.TargetComponent, id string) *components.TargetComponent {
	for _, t := range targets {
		if t.ID == id {
			return t
		}
	}
	return nil
}
