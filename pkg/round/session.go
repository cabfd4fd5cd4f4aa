package round

import (
	"log"

	"github.com/Fannzxyl/kotoba-test/pkg/config"
)

// Phase 街机会话阶段
type Phase int

const (
	// PhaseMenu 等待开始
	PhaseMenu Phase = iota
	// PhasePlaying 本轮进行中
	PhasePlaying
	// PhaseTransition 已答对，等待进入下一轮
	PhaseTransition
	// PhaseGameOver 生命耗尽
	PhaseGameOver
)

// String 返回阶段的字符串表示
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseTransition:
		return "transition"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// SessionStats 一局游戏的统计
type SessionStats struct {
	Score        int
	Streak       int
	MaxStreak    int
	CorrectCount int
	WrongCount   int
	Lives        int
	Level        int
	Round        int
}

// Session 街机会话状态
//
// 管理分数、连击、生命和轮次，以及 菜单 → 游戏中 → 轮间过渡 → 结束 的阶段切换。
// 不依赖引擎和渲染，由街机场景在回调中驱动。
type Session struct {
	Stats SessionStats
	Phase Phase

	cfg            *config.SessionConfig
	transitionLeft float64 // 距离下一轮的剩余时间（秒）
}

// NewSession 创建处于菜单阶段的会话
func NewSession(cfg *config.SessionConfig) *Session {
	s := &Session{cfg: cfg}
	s.resetStats()
	return s
}

func (s *Session) resetStats() {
	s.Stats = SessionStats{
		Lives: s.cfg.Lives,
		Level: 1,
	}
	s.transitionLeft = 0
}

// Start 重置统计并进入游戏阶段
// 调用方随后应调用 NextRound 生成第一轮
func (s *Session) Start() {
	s.resetStats()
	s.Phase = PhasePlaying
	log.Printf("[Session] Started with %d lives", s.Stats.Lives)
}

// NextRound 进入下一轮
//
// 返回:
//   - int: 新一轮的等级（round/RoundsPerLevel + 1）
func (s *Session) NextRound() int {
	s.Stats.Round++
	s.Stats.Level = s.Stats.Round/s.cfg.RoundsPerLevel + 1
	s.Phase = PhasePlaying
	s.transitionLeft = 0
	return s.Stats.Level
}

// RecordHit 记录一次正确命中并进入轮间过渡
//
// 得分 = ScorePerHit × 当前连击数
//
// 返回:
//   - int: 本次得分（会话已结束时为 0）
func (s *Session) RecordHit() int {
	if s.Phase != PhasePlaying {
		return 0
	}
	s.Stats.Streak++
	points := s.cfg.ScorePerHit * s.Stats.Streak
	s.Stats.Score += points
	if s.Stats.Streak > s.Stats.MaxStreak {
		s.Stats.MaxStreak = s.Stats.Streak
	}
	s.Stats.CorrectCount++

	s.Phase = PhaseTransition
	s.transitionLeft = s.cfg.TransitionDelay
	return points
}

// RecordWrong 记录一次错误命中
// 连击清零并扣除一条生命，生命耗尽时进入结束阶段
//
// 返回:
//   - bool: 本次错误是否导致游戏结束
func (s *Session) RecordWrong() bool {
	if s.Phase != PhasePlaying && s.Phase != PhaseTransition {
		return false
	}
	s.Stats.Streak = 0
	s.Stats.Lives--
	s.Stats.WrongCount++

	if s.Stats.Lives <= 0 {
		s.Stats.Lives = 0
		s.Phase = PhaseGameOver
		log.Printf("[Session] Game over: score=%d rounds=%d", s.Stats.Score, s.Stats.Round)
		return true
	}
	return false
}

// Tick 推进轮间过渡计时
//
// 返回:
//   - bool: 过渡结束时返回 true，调用方应随即调用 NextRound
func (s *Session) Tick(dt float64) bool {
	if s.Phase != PhaseTransition {
		return false
	}
	s.transitionLeft -= dt
	return s.transitionLeft <= 0
}

// Accuracy 返回正确率（0~1），没有任何命中时为 0
func (s *Session) Accuracy() float64 {
	total := s.Stats.CorrectCount + s.Stats.WrongCount
	if total == 0 {
		return 0
	}
	return float64(s.Stats.CorrectCount) / float64(total)
}
