package round

import (
	"testing"

	"github.com/Fannzxyl/kotoba-test/pkg/config"
	"github.com/stretchr/testify/assert"
)

func newTestSession() *Session {
	return NewSession(&config.DefaultArcadeConfig().Session)
}

func TestNewSession(t *testing.T) {
	s := newTestSession()
	assert.Equal(t, PhaseMenu, s.Phase)
	assert.Equal(t, 3, s.Stats.Lives)
	assert.Equal(t, 1, s.Stats.Level)
	assert.Equal(t, 0, s.Stats.Round)
}

func TestSessionLevelProgression(t *testing.T) {
	s := newTestSession()
	s.Start()

	tests := []struct {
		round int
		level int
	}{
		{1, 1}, {2, 1}, {3, 2}, {5, 2}, {6, 3}, {15, 6},
	}

	for _, tt := range tests {
		for s.Stats.Round < tt.round {
			s.NextRound()
		}
		assert.Equal(t, tt.level, s.Stats.Level, "round %d", tt.round)
	}
}

func TestSessionScoringStreak(t *testing.T) {
	s := newTestSession()
	s.Start()
	s.NextRound()

	assert.Equal(t, 100, s.RecordHit())
	assert.Equal(t, PhaseTransition, s.Phase)
	s.NextRound()
	assert.Equal(t, 200, s.RecordHit())
	s.NextRound()
	assert.Equal(t, 300, s.RecordHit())
	assert.Equal(t, 600, s.Stats.Score)
	assert.Equal(t, 3, s.Stats.MaxStreak)

	s.NextRound()
	assert.False(t, s.RecordWrong())
	assert.Equal(t, 0, s.Stats.Streak)
	assert.Equal(t, 2, s.Stats.Lives)

	assert.Equal(t, 100, s.RecordHit())
	assert.Equal(t, 700, s.Stats.Score)
	assert.Equal(t, 3, s.Stats.MaxStreak)
	assert.Equal(t, 4, s.Stats.CorrectCount)
	assert.Equal(t, 1, s.Stats.WrongCount)
	assert.InDelta(t, 0.8, s.Accuracy(), 1e-9)
}

func TestSessionGameOver(t *testing.T) {
	s := newTestSession()
	s.Start()
	s.NextRound()

	assert.False(t, s.RecordWrong())
	assert.False(t, s.RecordWrong())
	assert.True(t, s.RecordWrong())
	assert.Equal(t, PhaseGameOver, s.Phase)
	assert.Equal(t, 0, s.Stats.Lives)

	// 结束后不再计分
	assert.False(t, s.RecordWrong())
	assert.Equal(t, 0, s.RecordHit())
	assert.Equal(t, 3, s.Stats.WrongCount)

	// 重新开始
	s.Start()
	assert.Equal(t, PhasePlaying, s.Phase)
	assert.Equal(t, 3, s.Stats.Lives)
	assert.Equal(t, 0, s.Stats.Score)
}

func TestSessionTransitionDelay(t *testing.T) {
	s := newTestSession()
	s.Start()
	s.NextRound()

	assert.False(t, s.Tick(1), "no transition while playing")

	s.RecordHit()
	assert.False(t, s.Tick(0.3))
	assert.False(t, s.Tick(0.2))
	assert.True(t, s.Tick(0.1+1e-9))

	s.NextRound()
	assert.Equal(t, PhasePlaying, s.Phase)
	assert.False(t, s.Tick(1))
}

func TestSessionWrongDuringTransition(t *testing.T) {
	s := newTestSession()
	s.Start()
	s.NextRound()
	s.RecordHit()

	assert.False(t, s.RecordWrong())
	assert.Equal(t, 2, s.Stats.Lives)
	assert.Equal(t, PhaseTransition, s.Phase)
}

func TestSessionAccuracyEmpty(t *testing.T) {
	assert.Equal(t, 0.0, newTestSession().Accuracy())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "menu", PhaseMenu.String())
	assert.Equal(t, "playing", PhasePlaying.String())
	assert.Equal(t, "transition", PhaseTransition.String())
	assert.Equal(t, "gameover", PhaseGameOver.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
