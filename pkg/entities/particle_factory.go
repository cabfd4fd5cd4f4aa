package entities

import (
	"image/color"
	"math"
	"math/rand"
	"strconv"

	"github.com/Fannzxyl/kotoba-test/pkg/components"
	"github.com/Fannzxyl/kotoba-test/pkg/config"
)

// ExplosionColor 命中爆炸粒子颜色（#a855f7）
var ExplosionColor = color.RGBA{R: 0xa8, G: 0x55, B: 0xf7, A: 0xff}

// NewExplosion 在指定位置生成一组爆炸粒子
//
// 粒子方向均匀随机，速度 [SpeedMin, SpeedMin+SpeedRange)，
// 半径 [SizeMin, SizeMin+SizeRange)，Life 从 1 开始。
//
// 参数:
//   - x, y: 爆炸中心
//   - cfg: 粒子参数
//   - rng: 随机源
//
// 返回:
//   - []*components.ParticleComponent: BurstCount 个粒子
func NewExplosion(x, y float64, cfg *config.ParticleConfig, rng *rand.Rand) []*components.ParticleComponent {
	particles := make([]*components.ParticleComponent, cfg.BurstCount)
	for i := range particles {
		angle := rng.Float64() * 2 * math.Pi
		speed := cfg.SpeedMin + rng.Float64()*cfg.SpeedRange
		particles[i] = &components.ParticleComponent{
			ID:      strconv.Itoa(i),
			X:       x,
			Y:       y,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle) * speed,
			Life:    1,
			MaxLife: 1,
			Color:   ExplosionColor,
			Size:    cfg.SizeMin + rng.Float64()*cfg.SizeRange,
		}
	}
	return particles
}
