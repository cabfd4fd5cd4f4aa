// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// Card 是街机模式使用的词汇卡片
// 由卡片桥（deck 包）从卡组存储中过滤生成，生成后只读
type Card struct {
	ID               string // 卡片ID（与存储中的卡片ID一致）
	Word             string // 日文单词，如 "たべます"
	Romaji           string // 罗马音，如 "tabemasu"
	Meaning          string // 释义，如 "to eat"
	ProficiencyLevel int    // 熟练度（连续答对次数）
}

// IsEligible 判断卡片能否进入一轮游戏
// 单词和释义都不能为空
func (c Card) IsEligible() bool {
	return c.Word != "" && c.Meaning != ""
}

// Label 返回气泡上显示的文字
// 优先显示罗马音，缺失时显示日文单词
func (c Card) Label() string {
	if c.Romaji != "" {
		return c.Romaji
	}
	return c.Word
}

// PromptMode 定义提示文字的类型
type PromptMode int

const (
	// PromptMeaning 显示释义，玩家选择对应单词
	PromptMeaning PromptMode = iota
	// PromptReading 显示读音（保留给变体玩法，引擎不使用）
	PromptReading
)

// String 返回提示模式的字符串表示
func (m PromptMode) String() string {
	switch m {
	case PromptMeaning:
		return "meaning"
	case PromptReading:
		return "romaji"
	default:
		return "unknown"
	}
}
