// Package deck 管理词汇卡组和卡片的持久化，并为街机模式提供卡池
package deck

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultEF SM-2 初始难度系数
const DefaultEF = 2.5

// ReviewMeta 复习进度
// 街机模式只读取 Repetitions 作为熟练度，复习调度不在本包实现
type ReviewMeta struct {
	EF          float64   `yaml:"ef"`
	Interval    int       `yaml:"interval"`    // 距离下次复习的天数
	Repetitions int       `yaml:"repetitions"` // 连续答对次数
	NextReview  time.Time `yaml:"nextReview"`
}

// Card 卡组中的一张词汇卡片
type Card struct {
	ID        string     `yaml:"id" validate:"required"`
	DeckID    string     `yaml:"deckId" validate:"required"`
	Japanese  string     `yaml:"japanese" validate:"required"`
	Romaji    string     `yaml:"romaji"`
	Meaning   string     `yaml:"meaning" validate:"required_without=Romaji"`
	Example   string     `yaml:"example,omitempty"`
	Tags      []string   `yaml:"tags,omitempty"`
	CreatedAt time.Time  `yaml:"createdAt"`
	Review    ReviewMeta `yaml:"review"`
}

// Deck 卡组元数据（卡片单独存储，通过 DeckID 关联）
type Deck struct {
	ID   string `yaml:"id" validate:"required"`
	Name string `yaml:"name" validate:"required"`
}

// seedFile 卡组文件格式，用于嵌入的默认卡组（data/decks/*.yaml）和导入
// 默认卡组必须有 id，导入的文件可以省略
type seedFile struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Cards []Card `yaml:"cards"`
}

// parseSeed 解析卡组文件
func parseSeed(data []byte) (*seedFile, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deck file: %w", err)
	}
	seed.Name = strings.TrimSpace(seed.Name)
	if seed.Name == "" {
		return nil, fmt.Errorf("deck file is missing name")
	}
	return &seed, nil
}
