package round

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/Fannzxyl/kotoba-test/pkg/config"
	"github.com/Fannzxyl/kotoba-test/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func makeTestCards(n int) []types.Card {
	cards := make([]types.Card, n)
	for i := range cards {
		cards[i] = types.Card{
			ID:      fmt.Sprintf("c%d", i+1),
			Word:    fmt.Sprintf("word%d", i+1),
			Romaji:  fmt.Sprintf("romaji%d", i+1),
			Meaning: fmt.Sprintf("meaning%d", i+1),
		}
	}
	return cards
}

func newTestRoundManager(cards []types.Card, seed int64) *RoundManager {
	cfg := config.DefaultArcadeConfig()
	return NewRoundManager(cards, &cfg.Round, rand.New(rand.NewSource(seed)))
}

func TestGenerateRoundEmptyPool(t *testing.T) {
	tests := []struct {
		name  string
		cards []types.Card
	}{
		{"nil pool", nil},
		{"no eligible cards", []types.Card{
			{ID: "a", Word: "ねこ"},
			{ID: "b", Meaning: "dog"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rm := newTestRoundManager(tt.cards, 1)
			round, err := rm.GenerateRound(1)
			assert.Nil(t, round)
			assert.True(t, errors.Is(err, ErrNoCardsAvailable))
		})
	}
}

func TestGenerateRoundTargetCount(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{0, 3},
		{1, 3},
		{5, 4},
		{10, 5},
		{100, 5},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("level %d", tt.level), func(t *testing.T) {
			rm := newTestRoundManager(makeTestCards(15), 7)
			round, err := rm.GenerateRound(tt.level)
			require.NoError(t, err)
			assert.Equal(t, tt.want, round.TargetCount)
			assert.Len(t, round.Distractors, tt.want-1)
		})
	}
}

func TestGenerateRoundPoolOfFour(t *testing.T) {
	cards := makeTestCards(4)
	rm := newTestRoundManager(cards, 3)

	round, err := rm.GenerateRound(1)
	require.NoError(t, err)

	assert.Equal(t, 3, round.TargetCount)
	assert.Len(t, round.Distractors, 2)

	pool := map[string]bool{}
	for _, c := range cards {
		pool[c.ID] = true
	}
	seen := map[string]bool{}
	for _, c := range round.Cards() {
		assert.True(t, pool[c.ID], "card %s should come from the pool", c.ID)
		assert.False(t, seen[c.ID], "card %s appears twice", c.ID)
		seen[c.ID] = true
	}
	assert.Equal(t, round.CorrectCard.Meaning, round.PromptText)
	assert.Equal(t, types.PromptMeaning, round.PromptMode)
}

func TestGenerateRoundSkipsIneligibleCards(t *testing.T) {
	cards := append(makeTestCards(4), types.Card{ID: "blank", Word: "ねこ"})
	rm := newTestRoundManager(cards, 11)

	for i := 0; i < 30; i++ {
		round, err := rm.GenerateRound(10)
		require.NoError(t, err)
		for _, c := range round.Cards() {
			assert.NotEqual(t, "blank", c.ID)
		}
		// 只有 3 张干扰项可用
		assert.Len(t, round.Distractors, 3)
	}
}

func TestGenerateRoundDeterministicWithSeed(t *testing.T) {
	a := newTestRoundManager(makeTestCards(12), 42)
	b := newTestRoundManager(makeTestCards(12), 42)

	for i := 0; i < 5; i++ {
		ra, err := a.GenerateRound(i)
		require.NoError(t, err)
		rb, err := b.GenerateRound(i)
		require.NoError(t, err)
		assert.Equal(t, ra, rb)
	}
}

func TestRecentMemoryBounded(t *testing.T) {
	rm := newTestRoundManager(makeTestCards(20), 5)
	for i := 0; i < 25; i++ {
		_, err := rm.GenerateRound(0)
		require.NoError(t, err)
	}
	assert.Len(t, rm.RecentIDs(), 10)
}

// 卡池 >= 11 时，任意连续 10 次选题的正确答案互不相同
func TestAntiRepeatProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.IntRange(11, 40).Draw(t, "poolSize")
		seed := rapid.Int64().Draw(t, "seed")
		rounds := rapid.IntRange(11, 60).Draw(t, "rounds")

		rm := newTestRoundManager(makeTestCards(size), seed)
		picks := make([]string, 0, rounds)
		for i := 0; i < rounds; i++ {
			round, err := rm.GenerateRound(rapid.IntRange(0, 30).Draw(t, "level"))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			picks = append(picks, round.CorrectCard.ID)
		}

		for i := range picks {
			for j := i + 1; j < len(picks) && j < i+10; j++ {
				if picks[i] == picks[j] {
					t.Fatalf("card %s repeated at picks %d and %d", picks[i], i, j)
				}
			}
		}
	})
}

// 小卡池退回全部可用卡片，仍然能正常出题
func TestAntiRepeatFallbackSmallPool(t *testing.T) {
	rm := newTestRoundManager(makeTestCards(4), 9)
	for i := 0; i < 20; i++ {
		round, err := rm.GenerateRound(0)
		require.NoError(t, err)
		assert.NotEmpty(t, round.CorrectCard.ID)
	}
}

func TestExactlyOneCorrectProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.IntRange(4, 30).Draw(t, "poolSize")
		rm := newTestRoundManager(makeTestCards(size), rapid.Int64().Draw(t, "seed"))

		round, err := rm.GenerateRound(rapid.IntRange(0, 50).Draw(t, "level"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, d := range round.Distractors {
			if d.ID == round.CorrectCard.ID {
				t.Fatalf("distractor duplicates the correct card %s", d.ID)
			}
		}
	})
}
