package game

import (
	"log"

	"github.com/Fannzxyl/kotoba-test/pkg/storage"
	"github.com/quasilyte/gdata/v2"
)

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// GameSettings 玩家设置和街机成绩
type GameSettings struct {
	SoundVolume  float64 `yaml:"soundVolume"` // 0.0 ~ 1.0
	SoundEnabled bool    `yaml:"soundEnabled"`
	Fullscreen   bool    `yaml:"fullscreen"`

	// LastDeckID 卡组列表默认选中的卡组
	LastDeckID string `yaml:"lastDeckId,omitempty"`
	// BestScores 每个卡组的街机最高分
	BestScores map[string]int `yaml:"bestScores,omitempty"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		SoundVolume:  0.8,
		SoundEnabled: true,
	}
}

// SettingsManager 设置管理器
//
// 修改方法只改内存，调用 Save 才写入存档。
// gdataManager 为 nil 时只在内存中保存。
type SettingsManager struct {
	gdataManager *gdata.Manager
	settings     *GameSettings
}

// NewSettingsManager 创建设置管理器并读取存档
//
// 存档损坏时记录警告并使用默认设置，不返回错误。
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{gdataManager: gdataManager}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: %v (using defaults)", err)
	}
	return sm, nil
}

// Load 重新读取存档，没有存档或读取失败时恢复默认设置
func (sm *SettingsManager) Load() error {
	loaded := DefaultSettings()
	found, err := storage.LoadYAML(sm.gdataManager, settingsObject, settingsProperty, loaded)
	if err != nil {
		sm.settings = DefaultSettings()
		return err
	}
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)
	sm.settings = loaded
	if found {
		log.Printf("[SettingsManager] Settings loaded (%d best scores)", len(loaded.BestScores))
	}
	return nil
}

// Save 写入存档
func (sm *SettingsManager) Save() error {
	return storage.SaveYAML(sm.gdataManager, settingsObject, settingsProperty, sm.settings)
}

// GetSettings 返回当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetSoundVolume 设置音效音量，超出 0.0 ~ 1.0 的值被截断
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// SetSoundEnabled 设置音效开关
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetFullscreen 设置启动时是否全屏
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetLastDeckID 记录上次使用的卡组
func (sm *SettingsManager) SetLastDeckID(deckID string) {
	sm.settings.LastDeckID = deckID
}

// BestScore 返回卡组的最高分，没有记录时为 0
func (sm *SettingsManager) BestScore(deckID string) int {
	return sm.settings.BestScores[deckID]
}

// RecordScore 提交一局的分数
//
// 参数:
//   - deckID: 卡组ID
//   - score: 本局分数
//
// 返回:
//   - bool: 是否刷新了该卡组的最高分（0 分不计）
func (sm *SettingsManager) RecordScore(deckID string, score int) bool {
	if deckID == "" || score <= sm.BestScore(deckID) {
		return false
	}
	if sm.settings.BestScores == nil {
		sm.settings.BestScores = make(map[string]int)
	}
	sm.settings.BestScores[deckID] = score
	return true
}

func clampVolume(volume float64) float64 {
	switch {
	case volume < 0:
		return 0
	case volume > 1:
		return 1
	}
	return volume
}
