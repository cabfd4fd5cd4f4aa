package deck

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Fannzxyl/kotoba-test/pkg/types"
)

// ErrNotEnoughCards 可用于街机模式的卡片不足
// 属于前置条件错误，应在创建引擎之前报告给用户
var ErrNotEnoughCards = errors.New("not enough cards to play arcade")

// ArcadePool 把卡组卡片转换为街机模式的卡池
//
// 规则：
//   - ids 非空时只保留这些ID的卡片
//   - 只保留有日文、且有释义或罗马音的卡片
//   - 罗马音为空时显示 "?"，熟练度取连续答对次数
//
// 参数：
//   - cards: 卡组卡片
//   - ids: 手动选择的卡片ID，可为空
//   - minSize: 开始游戏所需的最少卡片数
//
// 返回：
//   - []types.Card: 卡池
//   - error: 少于 minSize 张时返回 ErrNotEnoughCards
func ArcadePool(cards []Card, ids []string, minSize int) ([]types.Card, error) {
	var selected map[string]bool
	if len(ids) > 0 {
		selected = make(map[string]bool, len(ids))
		for _, id := range ids {
			selected[id] = true
		}
	}

	pool := make([]types.Card, 0, len(cards))
	for _, c := range cards {
		if selected != nil && !selected[c.ID] {
			continue
		}
		if c.Japanese == "" || (c.Meaning == "" && c.Romaji == "") {
			continue
		}
		romaji := c.Romaji
		if romaji == "" {
			romaji = "?"
		}
		pool = append(pool, types.Card{
			ID:               c.ID,
			Word:             c.Japanese,
			Romaji:           romaji,
			Meaning:          c.Meaning,
			ProficiencyLevel: c.Review.Repetitions,
		})
	}

	if len(pool) < minSize {
		return nil, fmt.Errorf("%w: have %d, need at least %d cards with meanings and romaji", ErrNotEnoughCards, len(pool), minSize)
	}
	return pool, nil
}

// ParseIDs 解析逗号分隔的卡片ID列表，忽略空白项
func ParseIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
