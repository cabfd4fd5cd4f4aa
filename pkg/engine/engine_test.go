package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/Fannzxyl/kotoba-test/pkg/components"
	"github.com/Fannzxyl/kotoba-test/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const testDT = 1.0 / 60.0

func newTestEngine() *Engine {
	return New(config.DefaultArcadeConfig(), rand.New(rand.NewSource(1)))
}

func newStill(id string, x, y float64, correct bool) *components.TargetComponent {
	return &components.TargetComponent{
		ID:        id,
		X:         x,
		Y:         y,
		Radius:    45,
		IsAlive:   true,
		IsCorrect: correct,
		Scale:     1,
	}
}

// recorder 记录回调次数
type recorder struct {
	hits   []*components.TargetComponent
	wrongs []*components.TargetComponent
}

func (r *recorder) attach(e *Engine) {
	e.OnTargetHit(func(t *components.TargetComponent) { r.hits = append(r.hits, t) })
	e.OnWrongTarget(func(t *components.TargetComponent) { r.wrongs = append(r.wrongs, t) })
}

func runTicks(e *Engine, n int) {
	for i := 0; i < n; i++ {
		e.Update(testDT)
	}
}

func TestCorrectHit(t *testing.T) {
	e := newTestEngine()
	rec := &recorder{}
	rec.attach(e)

	target := newStill("a", 400, 200, true)
	e.SetTargets([]*components.TargetComponent{target})
	e.Start()

	assert.True(t, e.HandleInput(400, 200))
	require.Len(t, e.State().Projectiles, 1)
	assert.Equal(t, "a", e.State().Projectiles[0].BoundTargetID)

	// 推进到命中为止
	for i := 0; i < 60 && len(rec.hits) == 0; i++ {
		e.Update(testDT)
	}

	require.Len(t, rec.hits, 1)
	assert.Same(t, target, rec.hits[0])
	assert.Empty(t, rec.wrongs)
	assert.False(t, target.IsAlive)
	assert.Len(t, e.State().Particles, 12)
	assert.Empty(t, e.State().Projectiles, "inactive projectiles are pruned")

	// 之后不再产生事件
	runTicks(e, 30)
	assert.Len(t, rec.hits, 1)
}

func TestWrongHitCanBeShotAgain(t *testing.T) {
	e := newTestEngine()
	rec := &recorder{}
	rec.attach(e)

	target := newStill("w", 400, 200, false)
	e.SetTargets([]*components.TargetComponent{target})
	e.Start()

	e.HandleInput(400, 200)
	runTicks(e, 30)

	require.Len(t, rec.wrongs, 1)
	assert.Empty(t, rec.hits)
	assert.True(t, target.IsAlive)
	assert.Equal(t, components.TargetWrong, target.State)
	assert.Empty(t, e.State().Particles)

	e.HandleInput(target.X, target.Y)
	runTicks(e, 30)
	assert.Len(t, rec.wrongs, 2)
	assert.True(t, target.IsAlive)
}

func TestCollisionIsScopedToBoundTarget(t *testing.T) {
	e := newTestEngine()
	rec := &recorder{}
	rec.attach(e)

	// 错误气泡正好挡在炮台和正确气泡之间
	blocker := newStill("blocker", 400, 380, false)
	correct := newStill("correct", 400, 150, true)
	e.SetTargets([]*components.TargetComponent{blocker, correct})
	e.Start()

	e.HandleInput(400, 150)
	runTicks(e, 60)

	assert.Empty(t, rec.wrongs)
	require.Len(t, rec.hits, 1)
	assert.Equal(t, "correct", rec.hits[0].ID)
	assert.Equal(t, components.TargetNormal, blocker.State)
	assert.True(t, blocker.IsAlive)
}

func TestHandleInputEmptySpace(t *testing.T) {
	e := newTestEngine()
	rec := &recorder{}
	rec.attach(e)

	e.SetTargets([]*components.TargetComponent{newStill("a", 200, 200, true)})
	e.Start()

	assert.False(t, e.HandleInput(700, 100))
	assert.Empty(t, e.State().Projectiles)
	runTicks(e, 60)
	assert.Empty(t, rec.hits)
	assert.Empty(t, rec.wrongs)
}

func TestHandleInputIgnoresDeadTargets(t *testing.T) {
	e := newTestEngine()
	dead := newStill("dead", 400, 200, true)
	dead.IsAlive = false
	e.SetTargets([]*components.TargetComponent{dead})
	e.Start()

	e.HandleInput(400, 200)
	assert.Empty(t, e.State().Projectiles)
}

func TestHandleInputNearestTarget(t *testing.T) {
	e := newTestEngine()
	a := newStill("a", 380, 200, false)
	b := newStill("b", 420, 200, true)
	e.SetTargets([]*components.TargetComponent{a, b})
	e.Start()

	e.HandleInput(410, 200)
	require.Len(t, e.State().Projectiles, 1)
	assert.Equal(t, "b", e.State().Projectiles[0].BoundTargetID)

	// 距离相同时取列表中的第一个
	e.HandleInput(400, 200)
	require.Len(t, e.State().Projectiles, 2)
	assert.Equal(t, "a", e.State().Projectiles[1].BoundTargetID)
}

func TestFireAimsCannon(t *testing.T) {
	e := newTestEngine()
	e.SetTargets([]*components.TargetComponent{newStill("a", 600, 360, true)})
	e.Start()

	e.HandleInput(600, 360)
	s := e.State()
	wantAngle := math.Atan2(360-560, 600-400)
	assert.InDelta(t, wantAngle, s.Cannon.TargetAngle, 1e-9)
	assert.Equal(t, s.Config.Cannon.RecoilImpulse, s.Cannon.Recoil)

	p := s.Projectiles[0]
	assert.InDelta(t, 400+math.Cos(wantAngle)*40, p.X, 1e-9)
	assert.InDelta(t, 560+math.Sin(wantAngle)*40, p.Y, 1e-9)
	assert.InDelta(t, 20, math.Hypot(p.VX, p.VY), 1e-9)
}

func TestStopThenTicksDoesNothing(t *testing.T) {
	e := newTestEngine()
	rec := &recorder{}
	rec.attach(e)

	target := newStill("a", 400, 200, true)
	target.VX, target.VY = 1, 1
	e.SetTargets([]*components.TargetComponent{target})
	e.Start()
	e.HandleInput(400, 200)
	e.Stop()
	e.Stop()

	before := *target
	projectile := *e.State().Projectiles[0]
	cannon := e.State().Cannon
	clock := e.State().Clock

	runTicks(e, 120)

	assert.Equal(t, before, *target)
	assert.Equal(t, projectile, *e.State().Projectiles[0])
	assert.Equal(t, cannon, e.State().Cannon)
	assert.Equal(t, clock, e.State().Clock)
	assert.Empty(t, rec.hits)
	assert.Empty(t, rec.wrongs)

	// 停止后点击也被忽略
	assert.False(t, e.HandleInput(400, 200))
	assert.Len(t, e.State().Projectiles, 1)
}

func TestStopInsideCallbackDropsPendingEvents(t *testing.T) {
	e := newTestEngine()

	a := newStill("a", 200, 200, false)
	b := newStill("b", 600, 200, false)
	e.SetTargets([]*components.TargetComponent{a, b})

	// 两发子弹在同一帧命中
	s := e.State()
	s.Projectiles = []*components.ProjectileComponent{
		{BoundTargetID: "a", X: 200, Y: 200, Radius: 8, IsActive: true},
		{BoundTargetID: "b", X: 600, Y: 200, Radius: 8, IsActive: true},
	}

	calls := 0
	e.OnWrongTarget(func(*components.TargetComponent) {
		calls++
		e.Stop()
	})
	e.Start()
	e.Update(testDT)

	assert.Equal(t, 1, calls)
	assert.False(t, e.IsRunning())
}

func TestStartIsIdempotent(t *testing.T) {
	e := newTestEngine()
	assert.False(t, e.IsRunning())
	e.Start()
	e.Start()
	assert.True(t, e.IsRunning())
	e.Stop()
	assert.False(t, e.IsRunning())
	e.Start()
	assert.True(t, e.IsRunning())
}

func TestResize(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		wantW, wantH  float64
	}{
		{"正常尺寸", 1024, 768, 1024, 768},
		{"零宽度被忽略", 0, 768, 800, 600},
		{"负高度被忽略", 1024, -1, 800, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			e.Resize(tt.width, tt.height)
			s := e.State()
			assert.Equal(t, tt.wantW, s.Width)
			assert.Equal(t, tt.wantH, s.Height)
			assert.Equal(t, tt.wantW/2, s.Cannon.X)
			assert.Equal(t, tt.wantH-40, s.Cannon.Y)
		})
	}
}

func TestResizeKeepsCannonAim(t *testing.T) {
	e := newTestEngine()
	e.SetTargets([]*components.TargetComponent{newStill("a", 600, 300, true)})
	e.Start()
	e.HandleInput(600, 300)
	angle := e.State().Cannon.TargetAngle

	e.Resize(1000, 700)
	assert.Equal(t, angle, e.State().Cannon.TargetAngle)
	assert.Equal(t, 500.0, e.State().Cannon.X)
}

func TestSetTargetsClearsProjectilesAndParticles(t *testing.T) {
	e := newTestEngine()
	e.SetTargets([]*components.TargetComponent{newStill("a", 400, 200, true)})
	e.Start()
	e.HandleInput(400, 200)
	runTicks(e, 20)
	e.HandleInput(400, 200)

	fresh := []*components.TargetComponent{newStill("b", 300, 200, true)}
	e.SetTargets(fresh)
	assert.Empty(t, e.State().Projectiles)
	assert.Empty(t, e.State().Particles)
	assert.Equal(t, fresh, e.Targets())
}

func TestProjectileLeavingBoundsExpires(t *testing.T) {
	e := newTestEngine()
	rec := &recorder{}
	rec.attach(e)

	target := newStill("a", 400, 200, false)
	e.SetTargets([]*components.TargetComponent{target})
	s := e.State()
	// 目标已失效时子弹一直飞到出界
	target.IsAlive = false
	s.Projectiles = []*components.ProjectileComponent{
		{BoundTargetID: "a", X: 400, Y: 50, VY: -20, Radius: 8, IsActive: true},
	}
	e.Start()
	runTicks(e, 5)

	assert.Empty(t, s.Projectiles)
	assert.Empty(t, rec.hits)
	assert.Empty(t, rec.wrongs)
}

func TestParticlesDecayAndDisappear(t *testing.T) {
	cfg := config.DefaultArcadeConfig()
	s := NewState(cfg, rand.New(rand.NewSource(2)))
	target := newStill("a", 400, 200, true)
	s.SetTargets([]*components.TargetComponent{target})
	s.Projectiles = []*components.ProjectileComponent{
		{BoundTargetID: "a", X: 400, Y: 200, Radius: 8, IsActive: true},
	}

	events := Advance(s, testDT)
	require.Len(t, events, 1)
	assert.Equal(t, EventTargetHit, events[0].Kind)
	require.Len(t, s.Particles, 12)

	lives := make([]float64, len(s.Particles))
	for i, p := range s.Particles {
		lives[i] = p.Life
	}
	Advance(s, 0.1)
	for i, p := range s.Particles {
		assert.InDelta(t, lives[i]-2*0.1, p.Life, 1e-9)
	}

	Advance(s, 0.5)
	assert.Empty(t, s.Particles)
}

func TestAdvanceIgnoresNonPositiveDT(t *testing.T) {
	s := NewState(config.DefaultArcadeConfig(), rand.New(rand.NewSource(1)))
	target := newStill("a", 400, 200, true)
	target.VX = 5
	s.SetTargets([]*components.TargetComponent{target})

	assert.Nil(t, Advance(s, 0))
	assert.Nil(t, Advance(s, -1))
	assert.Equal(t, 400.0, target.X)
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "target_hit", EventTargetHit.String())
	assert.Equal(t, "wrong_target", EventWrongTarget.String())
	assert.Equal(t, "unknown", EventKind(9).String())
}

// 第一次更新之后，存活气泡始终位于 [r, W-r] × [r, H-FloorMargin] 内
func TestTargetsStayInsideBoundsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := config.DefaultArcadeConfig()
		s := NewState(cfg, rand.New(rand.NewSource(1)))
		w := rapid.Float64Range(300, 1600).Draw(t, "width")
		h := rapid.Float64Range(300, 1200).Draw(t, "height")
		s.Resize(w, h)

		n := rapid.IntRange(1, 5).Draw(t, "targets")
		targets := make([]*components.TargetComponent, n)
		for i := range targets {
			targets[i] = &components.TargetComponent{
				ID:      string(rune('a' + i)),
				X:       rapid.Float64Range(-200, 2000).Draw(t, "x"),
				Y:       rapid.Float64Range(-200, 1500).Draw(t, "y"),
				VX:      rapid.Float64Range(-30, 30).Draw(t, "vx"),
				VY:      rapid.Float64Range(-30, 30).Draw(t, "vy"),
				Radius:  cfg.Target.Radius,
				IsAlive: true,
			}
			if rapid.Bool().Draw(t, "wrong") {
				targets[i].State = components.TargetWrong
			}
		}
		s.SetTargets(targets)

		ticks := rapid.IntRange(1, 120).Draw(t, "ticks")
		for i := 0; i < ticks; i++ {
			Advance(s, testDT)
			for _, tg := range s.Targets {
				r := tg.Radius
				if tg.X < r || tg.X > w-r || tg.Y < r || tg.Y > h-cfg.Target.FloorMargin {
					t.Fatalf("target %s escaped bounds: (%f, %f) in %fx%f", tg.ID, tg.X, tg.Y, w, h)
				}
			}
		}
	})
}
