package entities

import (
	"log"
	"math/rand"

	"github.com/Fannzxyl/kotoba-test/pkg/components"
	"github.com/Fannzxyl/kotoba-test/pkg/config"
	"github.com/Fannzxyl/kotoba-test/pkg/round"
	"github.com/google/uuid"
)

// NewTargetsFromRound 把一轮题目布置为气泡
//
// 布局规则：
//   - 卡片先打乱顺序，保证正确答案不总在同一条泳道
//   - 可用宽度 (width - 2*Padding) 平均分成 N 条泳道，气泡位于泳道中心 ± JitterX/2
//   - Y 位于 [TopMin, TopMin+BandHeight)
//   - 水平漂移 ±DriftX/2，下落速度 [FallMin, FallMin+FallRange)
//   - Scale 从 0 开始，由引擎完成弹出动画
//
// 气泡ID由注入的随机源生成 UUID，同一种子得到同样的ID序列。
//
// 参数:
//   - rd: 本轮题目
//   - width, height: 当前绘制表面尺寸
//   - cfg: 街机参数
//   - rng: 随机源
//
// 返回:
//   - []*components.TargetComponent: 气泡列表（恰好一个 IsCorrect）
func NewTargetsFromRound(rd *round.RoundData, width, height float64, cfg *config.ArcadeConfig, rng *rand.Rand) []*components.TargetComponent {
	if rd == nil {
		return nil
	}

	cards := rd.Cards()
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	spawn := cfg.Spawn
	laneWidth := (width - 2*spawn.Padding) / float64(len(cards))

	targets := make([]*components.TargetComponent, 0, len(cards))
	for i, card := range cards {
		laneCenter := spawn.Padding + laneWidth*float64(i) + laneWidth/2

		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			// rand.Rand 的 Read 不会失败，这里只做兜底
			log.Printf("[TargetFactory] Warning: uuid from rng failed: %v", err)
			id = uuid.New()
		}

		targets = append(targets, &components.TargetComponent{
			ID:          id.String(),
			Card:        card,
			DisplayText: card.Label(),
			X:           laneCenter + (rng.Float64()-0.5)*spawn.JitterX,
			Y:           spawn.TopMin + rng.Float64()*spawn.BandHeight,
			VX:          (rng.Float64() - 0.5) * spawn.DriftX,
			VY:          spawn.FallMin + rng.Float64()*spawn.FallRange,
			Radius:      cfg.Target.Radius,
			IsAlive:     true,
			IsCorrect:   card.ID == rd.CorrectCard.ID,
			State:       components.TargetNormal,
			Scale:       0,
		})
	}

	log.Printf("[TargetFactory] 生成 %d 个气泡 (surface=%.0fx%.0f, lane=%.1f)", len(targets), width, height, laneWidth)
	return targets
}
