package game

import (
	"log"
	"time"

	"github.com/Fannzxyl/kotoba-test/internal/audio"
	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate 音频上下文采样率
const SampleRate = 48000

// SoundID 音效ID
type SoundID string

const (
	// SoundFire 开火
	SoundFire SoundID = "fire"
	// SoundHit 击中正确答案
	SoundHit SoundID = "hit"
	// SoundWrong 击中错误答案
	SoundWrong SoundID = "wrong"
	// SoundGameOver 生命耗尽
	SoundGameOver SoundID = "gameover"
)

// DefaultSoundBank 街机模式的合成音效
var DefaultSoundBank = map[SoundID]audio.Tone{
	SoundFire:     {StartHz: 880, EndHz: 220, Duration: 80 * time.Millisecond, Volume: 0.35, Wave: audio.WaveSquare},
	SoundHit:      {StartHz: 520, EndHz: 1040, Duration: 180 * time.Millisecond, Volume: 0.5, Wave: audio.WaveTriangle},
	SoundWrong:    {StartHz: 180, EndHz: 110, Duration: 250 * time.Millisecond, Volume: 0.45, Wave: audio.WaveSquare},
	SoundGameOver: {StartHz: 440, EndHz: 110, Duration: 600 * time.Millisecond, Volume: 0.5, Wave: audio.WaveTriangle},
}

// AudioManager 音频管理器
// 职责：
//   - 启动时把音效表合成为 PCM 数据
//   - 实现音量控制（从 SettingsManager 读取设置）
//   - 提供便捷的播放接口
//
// 每次播放创建新的播放器，连续开火时音效可以重叠。
type AudioManager struct {
	audioContext    *ebitenaudio.Context
	settingsManager *SettingsManager   // 设置管理器（用于读取音量设置，可为 nil）
	sounds          map[SoundID][]byte // 合成后的 PCM 数据
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（提供音频上下文，可为 nil，此时不播放任何声音）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
//   - bank: 音效表
//
// 返回：
//   - *AudioManager: 音频管理器实例
func NewAudioManager(rm *ResourceManager, sm *SettingsManager, bank map[SoundID]audio.Tone) *AudioManager {
	am := &AudioManager{
		settingsManager: sm,
		sounds:          make(map[SoundID][]byte, len(bank)),
	}
	if rm != nil {
		am.audioContext = rm.AudioContext()
	}

	sampleRate := SampleRate
	if am.audioContext != nil {
		sampleRate = am.audioContext.SampleRate()
	}
	for id, tone := range bank {
		pcm, err := tone.Render(sampleRate)
		if err != nil {
			log.Printf("[AudioManager] Warning: Failed to synthesize sound %s: %v", id, err)
			continue
		}
		am.sounds[id] = pcm
	}
	log.Printf("[AudioManager] Synthesized %d sounds at %d Hz", len(am.sounds), sampleRate)
	return am
}

// PlaySound 播放音效
// 音效使用 SoundVolume 设置控制音量，单次播放后停止
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(id SoundID) bool {
	if am == nil || am.audioContext == nil {
		return false
	}
	if !am.SoundEnabled() {
		return false
	}

	pcm, ok := am.sounds[id]
	if !ok {
		log.Printf("[AudioManager] Warning: Sound not found: %s", id)
		return false
	}

	player := am.audioContext.NewPlayerFromBytes(pcm)
	player.SetVolume(am.GetSoundVolume())
	player.Play()
	return true
}

// HasSound 返回音效是否已合成
func (am *AudioManager) HasSound(id SoundID) bool {
	_, ok := am.sounds[id]
	return ok
}

// SoundEnabled 返回音效开关
func (am *AudioManager) SoundEnabled() bool {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundEnabled
	}
	return true
}

// SetSoundVolume 设置音效音量
// 此方法会影响后续播放的所有音效
//
// 参数：
//   - volume: 音量值 (0.0 ~ 1.0)
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8 // 默认值
}
