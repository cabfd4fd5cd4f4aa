package systems

import "github.com/Fannzxyl/kotoba-test/pkg/components"

// Collision 一次子弹命中结果
type Collision struct {
	Projectile *components.ProjectileComponent
	Target     *components.TargetComponent
	Correct    bool
}

// UpdateProjectiles 移动子弹并处理碰撞
//
// 每发子弹只与 BoundTargetID 对应的气泡做碰撞检测，飞行途中重叠的其他气泡不会被命中。
// 出界的子弹直接失效（过期，不是错误）。
//
// 命中时：
//   - 子弹失效
//   - 正确气泡：IsAlive=false
//   - 错误气泡：State=TargetWrong，保持存活，可以再次被射击
//
// 参数:
//   - projectiles: 子弹列表
//   - targets: 气泡列表
//   - bounds: 表面尺寸
//
// 返回:
//   - []Collision: 本帧发生的命中，按子弹顺序排列
func UpdateProjectiles(projectiles []*components.ProjectileComponent, targets []*components.TargetComponent, bounds Bounds) []Collision {
	var collisions []Collision

	for _, p := range projectiles {
		if !p.IsActive {
			continue
		}

		p.X += p.VX
		p.Y += p.VY

		if !bounds.Contains(p.X, p.Y) {
			p.IsActive = false
			continue
		}

		target := FindTarget(targets, p.BoundTargetID)
		if target == nil || !target.IsAlive {
			continue
		}

		if !components.CirclesOverlap(p.X, p.Y, p.Radius, target.X, target.Y, target.Radius) {
			continue
		}

		p.IsActive = false
		if target.IsCorrect {
			target.IsAlive = false
		} else {
			target.State = components.TargetWrong
		}
		collisions = append(collisions, Collision{
			Projectile: p,
			Target:     target,
			Correct:    target.IsCorrect,
		})
	}

	return collisions
}

// PruneProjectiles 移除已失效的子弹，复用原切片底层数组
func PruneProjectiles(projectiles []*components.ProjectileComponent) []*components.ProjectileComponent {
	alive := projectiles[:0]
	for _, p := range projectiles {
		if p.IsActive {
			alive = append(alive, p)
		}
	}
	for i := len(alive); i < len(projectiles); i++ {
		projectiles[i] = nil
	}
	return alive
}
