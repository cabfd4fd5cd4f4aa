package engine

import (
	"math/rand"

	"github.com/Fannzxyl/kotoba-test/pkg/components"
	"github.com/Fannzxyl/kotoba-test/pkg/config"
	"github.com/Fannzxyl/kotoba-test/pkg/entities"
	"github.com/Fannzxyl/kotoba-test/pkg/systems"
)

// EventKind 模拟事件类型
type EventKind int

const (
	// EventTargetHit 正确气泡被击中
	EventTargetHit EventKind = iota
	// EventWrongTarget 错误气泡被击中
	EventWrongTarget
)

// String 返回事件类型的字符串表示
func (k EventKind) String() string {
	switch k {
	case EventTargetHit:
		return "target_hit"
	case EventWrongTarget:
		return "wrong_target"
	default:
		return "unknown"
	}
}

// Event 一帧中发生的命中事件
type Event struct {
	Kind   EventKind
	Target *components.TargetComponent
}

// State 街机模拟的全部可变状态
//
// State 只由 Advance 和 Fire 修改，渲染只读取它。
// 所有切片中的实体由 State 独占，调用方不应保留引用后再修改。
type State struct {
	Config *config.ArcadeConfig

	Width, Height float64

	Cannon      components.CannonComponent
	Targets     []*components.TargetComponent
	Projectiles []*components.ProjectileComponent
	Particles   []*components.ParticleComponent

	Clock float64 // 累计模拟时间（秒）

	rng *rand.Rand
}

// NewState 创建初始状态，表面尺寸取配置中的默认值
//
// 参数:
//   - cfg: 街机参数
//   - rng: 随机源（用于爆炸粒子）
func NewState(cfg *config.ArcadeConfig, rng *rand.Rand) *State {
	s := &State{
		Config: cfg,
		Cannon: components.NewCannonComponent(0, 0),
		rng:    rng,
	}
	s.Resize(cfg.Surface.Width, cfg.Surface.Height)
	return s
}

// Resize 更新逻辑尺寸并把炮台重新放到底部中央
//
// 非正尺寸表示没有宿主表面，保持原状态不变。
//
// 返回:
//   - bool: 尺寸是否被应用
func (s *State) Resize(width, height float64) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	s.Width = width
	s.Height = height

	s.Cannon.X = width / 2
	s.Cannon.Y = height - s.Config.Cannon.BottomOffset
	return true
}

// SetTargets 替换气泡，同时清空子弹和粒子
func (s *State) SetTargets(targets []*components.TargetComponent) {
	s.Targets = targets
	s.Projectiles = nil
	s.Particles = nil
}

// Bounds 返回当前表面尺寸
func (s *State) Bounds() systems.Bounds {
	return systems.Bounds{Width: s.Width, Height: s.Height}
}

// Fire 对点击点做命中测试，命中存活气泡时瞄准并发射一发绑定到它的子弹
//
// 返回:
//   - *components.TargetComponent: 被瞄准的气泡，点击空白处时返回 nil
func (s *State) Fire(x, y float64) *components.TargetComponent {
	target := systems.PickTarget(s.Targets, x, y)
	if target == nil {
		return nil
	}

	angle := systems.AimCannon(&s.Cannon, &s.Config.Cannon, target.X, target.Y)
	mx, my := systems.MuzzlePosition(&s.Cannon, &s.Config.Cannon, angle)
	s.Projectiles = append(s.Projectiles, entities.NewProjectile(target.ID, mx, my, angle, &s.Config.Projectile))
	return target
}

// Advance 推进一帧模拟
//
// 处理顺序：
//  1. 炮台角度平滑和后坐力衰减
//  2. 气泡弹出动画、移动和边界反弹
//  3. 子弹移动、出界失效和绑定目标碰撞；正确命中产生爆炸粒子
//  4. 粒子移动和衰减
//  5. 移除失效子弹
//
// Advance 不调用任何回调，命中结果以事件形式返回，由调用方决定如何分发。
//
// 参数:
//   - s: 模拟状态
//   - dt: 帧间隔（秒），非正值时只返回 nil
//
// 返回:
//   - []Event: 本帧命中事件，按子弹顺序排列
func Advance(s *State, dt float64) []Event {
	if dt <= 0 {
		return nil
	}
	s.Clock += dt
	cfg := s.Config
	bounds := s.Bounds()

	systems.UpdateCannon(&s.Cannon, &cfg.Cannon, dt)
	systems.UpdateTargets(s.Targets, bounds, &cfg.Target, dt, s.Clock)

	var events []Event
	for _, c := range systems.UpdateProjectiles(s.Projectiles, s.Targets, bounds) {
		if c.Correct {
			s.Particles = append(s.Particles, entities.NewExplosion(c.Target.X, c.Target.Y, &cfg.Particle, s.rng)...)
			events = append(events, Event{Kind: EventTargetHit, Target: c.Target})
		} else {
			events = append(events, Event{Kind: EventWrongTarget, Target: c.Target})
		}
	}

	s.Particles = systems.UpdateParticles(s.Particles, cfg.Particle.DecayRate, dt)
	s.Projectiles = systems.PruneProjectiles(s.Projectiles)
	return events
}
