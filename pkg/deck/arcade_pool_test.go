package deck

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func poolCards() []Card {
	return []Card{
		{ID: "a", Japanese: "ねこ", Romaji: "neko", Meaning: "cat", Review: ReviewMeta{Repetitions: 2}},
		{ID: "b", Japanese: "いぬ", Romaji: "inu", Meaning: "dog"},
		{ID: "c", Japanese: "とり", Meaning: "bird"},
		{ID: "d", Japanese: "さかな", Romaji: "sakana"},
		{ID: "e", Japanese: "", Romaji: "mizu", Meaning: "water"},
		{ID: "f", Japanese: "やま"},
	}
}

func TestArcadePool(t *testing.T) {
	pool, err := ArcadePool(poolCards(), nil, 4)
	require.NoError(t, err)
	require.Len(t, pool, 4)

	assert.Equal(t, "a", pool[0].ID)
	assert.Equal(t, "ねこ", pool[0].Word)
	assert.Equal(t, 2, pool[0].ProficiencyLevel)
	assert.Equal(t, "?", pool[2].Romaji)
	assert.Equal(t, "", pool[3].Meaning)
}

func TestArcadePoolSelection(t *testing.T) {
	tests := []struct {
		name    string
		ids     []string
		min     int
		wantLen int
		wantErr bool
	}{
		{"全部卡片", nil, 4, 4, false},
		{"手动选择不足", []string{"a", "b", "c"}, 4, 0, true},
		{"手动选择包含无效卡片", []string{"a", "b", "e", "f"}, 2, 2, false},
		{"选择不存在的ID", []string{"zzz"}, 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, err := ArcadePool(poolCards(), tt.ids, tt.min)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrNotEnoughCards), "got %v", err)
				assert.Nil(t, pool)
				return
			}
			require.NoError(t, err)
			assert.Len(t, pool, tt.wantLen)
		})
	}
}

func TestParseIDs(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{" a, b ,,c ", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseIDs(tt.in), "ParseIDs(%q)", tt.in)
	}
}
