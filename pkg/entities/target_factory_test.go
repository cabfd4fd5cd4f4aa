package entities

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/Fannzxyl/kotoba-test/pkg/components"
	"github.com/Fannzxyl/kotoba-test/pkg/config"
	"github.com/Fannzxyl/kotoba-test/pkg/round"
	"github.com/Fannzxyl/kotoba-test/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func makeRound(targetCount int) *round.RoundData {
	rd := &round.RoundData{
		CorrectCard: types.Card{ID: "c0", Word: "ねこ", Romaji: "neko", Meaning: "cat"},
		PromptText:  "cat",
		PromptMode:  types.PromptMeaning,
		TargetCount: targetCount,
	}
	for i := 1; i < targetCount; i++ {
		rd.Distractors = append(rd.Distractors, types.Card{
			ID:      fmt.Sprintf("c%d", i),
			Word:    fmt.Sprintf("word%d", i),
			Meaning: fmt.Sprintf("meaning%d", i),
		})
	}
	return rd
}

func TestNewTargetsFromRoundLayout(t *testing.T) {
	cfg := config.DefaultArcadeConfig()

	tests := []struct {
		name          string
		targetCount   int
		width, height float64
	}{
		{"三个气泡", 3, 800, 600},
		{"四个气泡", 4, 800, 600},
		{"五个气泡-窄屏", 5, 400, 700},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(1))
			targets := NewTargetsFromRound(makeRound(tt.targetCount), tt.width, tt.height, cfg, rng)
			require.Len(t, targets, tt.targetCount)

			laneWidth := (tt.width - 2*cfg.Spawn.Padding) / float64(tt.targetCount)
			correct := 0
			ids := map[string]bool{}
			for i, target := range targets {
				laneCenter := cfg.Spawn.Padding + laneWidth*float64(i) + laneWidth/2
				assert.InDelta(t, laneCenter, target.X, cfg.Spawn.JitterX/2)
				assert.GreaterOrEqual(t, target.Y, cfg.Spawn.TopMin)
				assert.Less(t, target.Y, cfg.Spawn.TopMin+cfg.Spawn.BandHeight)
				assert.InDelta(t, 0, target.VX, cfg.Spawn.DriftX/2)
				assert.GreaterOrEqual(t, target.VY, cfg.Spawn.FallMin)
				assert.Less(t, target.VY, cfg.Spawn.FallMin+cfg.Spawn.FallRange)
				assert.Equal(t, 0.0, target.Scale)
				assert.Equal(t, cfg.Target.Radius, target.Radius)
				assert.True(t, target.IsAlive)
				assert.Equal(t, components.TargetNormal, target.State)
				assert.Equal(t, target.Card.Label(), target.DisplayText)

				assert.False(t, ids[target.ID], "duplicate id %s", target.ID)
				ids[target.ID] = true
				if target.IsCorrect {
					correct++
					assert.Equal(t, "c0", target.Card.ID)
				}
			}
			assert.Equal(t, 1, correct)
		})
	}
}

func TestNewTargetsFromRoundDeterministic(t *testing.T) {
	cfg := config.DefaultArcadeConfig()
	a := NewTargetsFromRound(makeRound(4), 800, 600, cfg, rand.New(rand.NewSource(99)))
	b := NewTargetsFromRound(makeRound(4), 800, 600, cfg, rand.New(rand.NewSource(99)))
	assert.Equal(t, a, b)
}

func TestNewTargetsFromRoundNil(t *testing.T) {
	assert.Nil(t, NewTargetsFromRound(nil, 800, 600, config.DefaultArcadeConfig(), rand.New(rand.NewSource(1))))
}

func TestNewTargetsFromRoundFreshIDs(t *testing.T) {
	cfg := config.DefaultArcadeConfig()
	rng := rand.New(rand.NewSource(5))
	first := NewTargetsFromRound(makeRound(3), 800, 600, cfg, rng)
	second := NewTargetsFromRound(makeRound(3), 800, 600, cfg, rng)

	for _, a := range first {
		for _, b := range second {
			assert.NotEqual(t, a.ID, b.ID)
		}
	}
}

func TestExactlyOneCorrectTargetProperty(t *testing.T) {
	cfg := config.DefaultArcadeConfig()
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, 5).Draw(t, "count")
		seed := rapid.Int64().Draw(t, "seed")
		targets := NewTargetsFromRound(makeRound(count), 800, 600, cfg, rand.New(rand.NewSource(seed)))

		correct := 0
		for _, target := range targets {
			if target.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			t.Fatalf("expected exactly one correct target, got %d", correct)
		}
	})
}
