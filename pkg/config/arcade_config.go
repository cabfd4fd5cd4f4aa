package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ArcadeConfig 街机模式的静态参数
//
// 在引擎创建或窗口尺寸变化时读取，模拟过程中只读。
// 速度类参数（Projectile.Speed、Spawn.DriftX 等）单位为 像素/tick，
// 速率类参数（Cannon.TurnRate、Target.PopInRate 等）单位为 每秒。
//
// 配置文件位置: data/arcade.yaml，环境变量前缀 KOTOBA_（如 KOTOBA_PROJECTILE_SPEED）
type ArcadeConfig struct {
	Surface    SurfaceConfig    `mapstructure:"surface"`
	Cannon     CannonConfig     `mapstructure:"cannon"`
	Projectile ProjectileConfig `mapstructure:"projectile"`
	Target     TargetConfig     `mapstructure:"target"`
	Spawn      SpawnConfig      `mapstructure:"spawn"`
	Particle   ParticleConfig   `mapstructure:"particle"`
	Round      RoundConfig      `mapstructure:"round"`
	Session    SessionConfig    `mapstructure:"session"`
}

// SurfaceConfig 绘制表面的默认逻辑尺寸
type SurfaceConfig struct {
	Width  float64 `mapstructure:"width" validate:"gt=0"`
	Height float64 `mapstructure:"height" validate:"gt=0"`
}

// CannonConfig 炮台参数
type CannonConfig struct {
	BottomOffset  float64 `mapstructure:"bottomOffset" validate:"gte=0"`  // 炮台距离底边的距离
	TurnRate      float64 `mapstructure:"turnRate" validate:"gt=0"`       // 角度一阶平滑系数
	RecoilImpulse float64 `mapstructure:"recoilImpulse" validate:"gte=0"` // 开火后坐力
	RecoilDecay   float64 `mapstructure:"recoilDecay" validate:"gte=0"`   // 后坐力线性衰减（每秒）
	MuzzleOffset  float64 `mapstructure:"muzzleOffset" validate:"gte=0"`  // 子弹生成点距炮台中心的距离
}

// ProjectileConfig 子弹参数
type ProjectileConfig struct {
	Speed  float64 `mapstructure:"speed" validate:"gt=0"`
	Radius float64 `mapstructure:"radius" validate:"gt=0"`
}

// TargetConfig 气泡参数
type TargetConfig struct {
	Radius          float64 `mapstructure:"radius" validate:"gt=0"`
	PopInRate       float64 `mapstructure:"popInRate" validate:"gt=0"`
	FloorMargin     float64 `mapstructure:"floorMargin" validate:"gt=0"` // 地板距离底边的距离，气泡不会越过
	WiggleAmplitude float64 `mapstructure:"wiggleAmplitude" validate:"gte=0"`
	WiggleFrequency float64 `mapstructure:"wiggleFrequency" validate:"gte=0"`
}

// SpawnConfig 气泡生成布局参数
type SpawnConfig struct {
	Padding    float64 `mapstructure:"padding" validate:"gte=0"`
	JitterX    float64 `mapstructure:"jitterX" validate:"gte=0"` // 水平抖动总宽度（±JitterX/2）
	TopMin     float64 `mapstructure:"topMin" validate:"gte=0"`
	BandHeight float64 `mapstructure:"bandHeight" validate:"gte=0"`
	DriftX     float64 `mapstructure:"driftX" validate:"gte=0"` // 水平漂移总宽度（±DriftX/2）
	FallMin    float64 `mapstructure:"fallMin" validate:"gte=0"`
	FallRange  float64 `mapstructure:"fallRange" validate:"gte=0"`
}

// ParticleConfig 命中爆炸粒子参数
type ParticleConfig struct {
	BurstCount int     `mapstructure:"burstCount" validate:"gt=0"`
	DecayRate  float64 `mapstructure:"decayRate" validate:"gt=0"`
	SpeedMin   float64 `mapstructure:"speedMin" validate:"gte=0"`
	SpeedRange float64 `mapstructure:"speedRange" validate:"gte=0"`
	SizeMin    float64 `mapstructure:"sizeMin" validate:"gt=0"`
	SizeRange  float64 `mapstructure:"sizeRange" validate:"gte=0"`
}

// RoundConfig 出题参数
type RoundConfig struct {
	MinTargets   int `mapstructure:"minTargets" validate:"gte=2"`
	MaxTargets   int `mapstructure:"maxTargets" validate:"gtefield=MinTargets"`
	LevelStep    int `mapstructure:"levelStep" validate:"gt=0"`    // 每多少级增加一个气泡
	RecentMemory int `mapstructure:"recentMemory" validate:"gte=0"` // 防重复记忆长度
	MinPoolSize  int `mapstructure:"minPoolSize" validate:"gte=1"`  // 开始游戏所需的最少卡片数
}

// SessionConfig 会话（外壳）参数
type SessionConfig struct {
	Lives           int     `mapstructure:"lives" validate:"gt=0"`
	TransitionDelay float64 `mapstructure:"transitionDelay" validate:"gte=0"` // 命中后进入下一轮的延迟（秒）
	RoundsPerLevel  int     `mapstructure:"roundsPerLevel" validate:"gt=0"`
	ScorePerHit     int     `mapstructure:"scorePerHit" validate:"gt=0"`
}

// arcadeDefaults 默认参数，键名与 YAML 配置一致
var arcadeDefaults = map[string]interface{}{
	"surface.width":  float64(GameWindowWidth),
	"surface.height": float64(GameWindowHeight),

	"cannon.bottomOffset":  40.0,
	"cannon.turnRate":      15.0,
	"cannon.recoilImpulse": 15.0,
	"cannon.recoilDecay":   30.0,
	"cannon.muzzleOffset":  40.0,

	"projectile.speed":  20.0,
	"projectile.radius": 8.0,

	"target.radius":          45.0,
	"target.popInRate":       4.0,
	"target.floorMargin":     120.0,
	"target.wiggleAmplitude": 3.0,
	"target.wiggleFrequency": 50.0,

	"spawn.padding":    80.0,
	"spawn.jitterX":    40.0,
	"spawn.topMin":     80.0,
	"spawn.bandHeight": 100.0,
	"spawn.driftX":     0.5,
	"spawn.fallMin":    0.5,
	"spawn.fallRange":  0.5,

	"particle.burstCount": 12,
	"particle.decayRate":  2.0,
	"particle.speedMin":   2.0,
	"particle.speedRange": 5.0,
	"particle.sizeMin":    2.0,
	"particle.sizeRange":  4.0,

	"round.minTargets":   3,
	"round.maxTargets":   5,
	"round.levelStep":    5,
	"round.recentMemory": 10,
	"round.minPoolSize":  4,

	"session.lives":           3,
	"session.transitionDelay": 0.6,
	"session.roundsPerLevel":  3,
	"session.scorePerHit":     100,
}

var validate = validator.New()

// DefaultArcadeConfig 返回默认街机参数（不读取文件和环境变量）
func DefaultArcadeConfig() *ArcadeConfig {
	v := newArcadeViper(false)
	cfg, err := decodeArcadeConfig(v)
	if err != nil {
		// 默认值由本包维护，解码失败说明默认表本身有误
		panic(fmt.Sprintf("invalid arcade defaults: %v", err))
	}
	return cfg
}

// LoadArcadeConfig 从 YAML 文件加载街机参数
//
// 加载顺序：默认值 < 配置文件 < 环境变量（KOTOBA_ 前缀）。
// path 为空时只使用默认值和环境变量。
//
// 参数:
//   - path: 配置文件路径（如 "data/arcade.yaml"）
//
// 返回:
//   - *ArcadeConfig: 校验通过的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadArcadeConfig(path string) (*ArcadeConfig, error) {
	v := newArcadeViper(true)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read arcade config %s: %w", path, err)
		}
	}
	return decodeArcadeConfig(v)
}

// LoadArcadeConfigFromBytes 从内存中的 YAML 数据加载街机参数
// 用于读取嵌入的 data/arcade.yaml
func LoadArcadeConfigFromBytes(data []byte) (*ArcadeConfig, error) {
	v := newArcadeViper(true)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to parse arcade config: %w", err)
	}
	return decodeArcadeConfig(v)
}

func newArcadeViper(withEnv bool) *viper.Viper {
	v := viper.New()
	for key, value := range arcadeDefaults {
		v.SetDefault(key, value)
	}
	v.SetConfigType("yaml")
	if !withEnv {
		return v
	}
	v.SetEnvPrefix("KOTOBA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decodeArcadeConfig(v *viper.Viper) (*ArcadeConfig, error) {
	var cfg ArcadeConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal arcade config: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid arcade config: %w", err)
	}
	return &cfg, nil
}

// TargetCount 根据等级计算一轮的气泡数量
// 公式：min(MaxTargets, MinTargets + level/LevelStep)，等级小于0按0处理
//
// 示例（默认配置）:
//
//	TargetCount(0) = 3, TargetCount(5) = 4, TargetCount(10) = 5, TargetCount(100) = 5
func (c *RoundConfig) TargetCount(level int) int {
	if level < 0 {
		level = 0
	}
	count := c.MinTargets + level/c.LevelStep
	if count > c.MaxTargets {
		return c.MaxTargets
	}
	return count
}

// FloorY 返回给定表面高度下气泡可到达的最低Y坐标
func (c *TargetConfig) FloorY(surfaceHeight float64) float64 {
	return surfaceHeight - c.FloorMargin
}
