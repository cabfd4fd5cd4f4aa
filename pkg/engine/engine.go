package engine

import (
	"log"
	"math/rand"

	"github.com/Fannzxyl/kotoba-test/pkg/components"
	"github.com/Fannzxyl/kotoba-test/pkg/config"
)

// TargetCallback 命中回调
type TargetCallback func(target *components.TargetComponent)

// Engine 街机模式的模拟引擎
//
// 职责：
//   - 持有模拟状态，运行时每帧调用 Advance 推进
//   - 把点击转换为瞄准射击
//   - 把命中事件分发给 OnTargetHit / OnWrongTarget 回调
//
// 绘制由 render 包根据 State() 完成，本包不依赖 Ebitengine。
//
// Engine 不是并发安全的，所有方法都应在游戏主循环（Update/Draw）中调用。
// 所有操作都不会返回错误或 panic。
type Engine struct {
	state   *State
	running bool

	onTargetHit   TargetCallback
	onWrongTarget TargetCallback
}

// New 创建引擎（未启动）
//
// 参数:
//   - cfg: 街机参数
//   - rng: 随机源
func New(cfg *config.ArcadeConfig, rng *rand.Rand) *Engine {
	return &Engine{state: NewState(cfg, rng)}
}

// OnTargetHit 设置正确命中回调
func (e *Engine) OnTargetHit(cb TargetCallback) {
	e.onTargetHit = cb
}

// OnWrongTarget 设置错误命中回调
func (e *Engine) OnWrongTarget(cb TargetCallback) {
	e.onWrongTarget = cb
}

// Start 开始模拟，重复调用无副作用
func (e *Engine) Start() {
	if e.running {
		return
	}
	e.running = true
	log.Printf("[Engine] Started (surface=%.0fx%.0f)", e.state.Width, e.state.Height)
}

// Stop 停止模拟
//
// 可以在回调中调用：本帧尚未分发的事件会被丢弃，之后的 Update 不再修改状态。
func (e *Engine) Stop() {
	if !e.running {
		return
	}
	e.running = false
	log.Printf("[Engine] Stopped at clock=%.2fs", e.state.Clock)
}

// IsRunning 返回引擎是否在运行
func (e *Engine) IsRunning() bool {
	return e.running
}

// SetTargets 替换本轮气泡，清空子弹和粒子
func (e *Engine) SetTargets(targets []*components.TargetComponent) {
	e.state.SetTargets(targets)
}

// Resize 更新逻辑尺寸并重新放置炮台
// 非正尺寸被忽略；可以在 Start 之前调用
func (e *Engine) Resize(width, height float64) {
	if e.state.Resize(width, height) {
		log.Printf("[Engine] Resized to %.0fx%.0f", width, height)
	}
}

// HandleInput 处理一次点击（逻辑坐标）
//
// 点中存活气泡时瞄准并发射绑定该气泡的子弹；点中空白处或引擎未运行时忽略。
//
// 返回:
//   - bool: 是否发射了子弹
func (e *Engine) HandleInput(x, y float64) bool {
	if !e.running {
		return false
	}
	return e.state.Fire(x, y) != nil
}

// Update 推进一帧并分发命中事件
//
// 参数:
//   - dt: 帧间隔（秒）
func (e *Engine) Update(dt float64) {
	if !e.running {
		return
	}

	for _, ev := range Advance(e.state, dt) {
		if !e.running {
			// 回调中调用了 Stop
			return
		}
		switch ev.Kind {
		case EventTargetHit:
			if e.onTargetHit != nil {
				e.onTargetHit(ev.Target)
			}
		case EventWrongTarget:
			if e.onWrongTarget != nil {
				e.onWrongTarget(ev.Target)
			}
		}
	}
}

// State 返回模拟状态（只读使用）
func (e *Engine) State() *State {
	return e.state
}

// Targets 返回当前气泡
func (e *Engine) Targets() []*components.TargetComponent {
	return e.state.Targets
}
