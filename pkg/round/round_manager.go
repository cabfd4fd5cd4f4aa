// Package round 生成街机模式的题目，并记录一局游戏的分数、连击和生命
package round

import (
	"errors"
	"log"
	"math/rand"

	"github.com/Fannzxyl/kotoba-test/pkg/config"
	"github.com/Fannzxyl/kotoba-test/pkg/types"
)

// ErrNoCardsAvailable 卡池中没有任何可用卡片（单词和释义都不为空）
// 调用方应在开始游戏前检查卡池大小，出现此错误说明前置检查被绕过
var ErrNoCardsAvailable = errors.New("no cards available")

// RoundData 一轮题目
// 每轮生成一次，立即用于创建气泡，之后不再保留
type RoundData struct {
	CorrectCard types.Card
	Distractors []types.Card
	PromptText  string
	PromptMode  types.PromptMode
	TargetCount int
}

// Cards 返回本轮全部卡片（正确答案在前）
func (r *RoundData) Cards() []types.Card {
	cards := make([]types.Card, 0, 1+len(r.Distractors))
	cards = append(cards, r.CorrectCard)
	return append(cards, r.Distractors...)
}

// RoundManager 把词汇卡池转换为一轮轮的射击题目
//
// 职责：
//   - 从可用卡片中随机选择正确答案，避免最近 RecentMemory 轮重复
//   - 按等级决定气泡数量并挑选干扰项
//
// 随机源由调用方注入，测试中使用固定种子保证结果可复现。
type RoundManager struct {
	cards  []types.Card
	recent []string // 最近选中的正确卡片ID，最旧的在前
	cfg    *config.RoundConfig
	rng    *rand.Rand
}

// NewRoundManager 创建出题器
//
// 参数:
//   - cards: 卡池（由卡片桥提供，只读）
//   - cfg: 出题参数
//   - rng: 随机源
func NewRoundManager(cards []types.Card, cfg *config.RoundConfig, rng *rand.Rand) *RoundManager {
	return &RoundManager{
		cards:  cards,
		recent: make([]string, 0, cfg.RecentMemory),
		cfg:    cfg,
		rng:    rng,
	}
}

// SetCards 替换卡池，防重复记忆保留
func (m *RoundManager) SetCards(cards []types.Card) {
	m.cards = cards
}

// RecentIDs 返回防重复记忆的副本（最旧的在前）
func (m *RoundManager) RecentIDs() []string {
	ids := make([]string, len(m.recent))
	copy(ids, m.recent)
	return ids
}

// GenerateRound 生成一轮题目
//
// 算法：
//  1. 过滤出单词和释义都不为空的卡片，为空时返回 ErrNoCardsAvailable
//  2. 从排除最近选中ID后的卡片中均匀随机选出正确答案；排除后为空则退回全部可用卡片
//  3. 气泡数 = TargetCount(level)，从其余卡片打乱后取前 N-1 张作为干扰项
//  4. 提示文字为正确答案的释义
//
// 参数:
//   - level: 当前等级（>=0）
//
// 返回:
//   - *RoundData: 本轮题目
//   - error: 卡池为空时返回 ErrNoCardsAvailable
func (m *RoundManager) GenerateRound(level int) (*RoundData, error) {
	eligible := make([]types.Card, 0, len(m.cards))
	for _, c := range m.cards {
		if c.IsEligible() {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 {
		return nil, ErrNoCardsAvailable
	}

	correct := m.pickCorrect(eligible)
	m.remember(correct.ID)

	targetCount := m.cfg.TargetCount(level)

	others := make([]types.Card, 0, len(eligible)-1)
	for _, c := range eligible {
		if c.ID != correct.ID {
			others = append(others, c)
		}
	}
	m.rng.Shuffle(len(others), func(i, j int) {
		others[i], others[j] = others[j], others[i]
	})

	distractorCount := targetCount - 1
	if distractorCount > len(others) {
		log.Printf("[RoundManager] Warning: only %d distractors available, wanted %d", len(others), distractorCount)
		distractorCount = len(others)
	}

	return &RoundData{
		CorrectCard: correct,
		Distractors: others[:distractorCount],
		PromptText:  correct.Meaning,
		PromptMode:  types.PromptMeaning,
		TargetCount: targetCount,
	}, nil
}

// pickCorrect 从未在最近记忆中出现的卡片里随机选择
func (m *RoundManager) pickCorrect(eligible []types.Card) types.Card {
	candidates := make([]types.Card, 0, len(eligible))
	for _, c := range eligible {
		if !m.isRecent(c.ID) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		candidates = eligible
	}
	return candidates[m.rng.Intn(len(candidates))]
}

func (m *RoundManager) isRecent(id string) bool {
	for _, r := range m.recent {
		if r == id {
			return true
		}
	}
	return false
}

// remember 记录选中的ID，超过容量时淘汰最旧的
func (m *RoundManager) remember(id string) {
	if m.cfg.RecentMemory <= 0 {
		return
	}
	m.recent = append(m.recent, id)
	if len(m.recent) > m.cfg.RecentMemory {
		m.recent = m.recent[len(m.recent)-m.cfg.RecentMemory:]
	}
}
