package systems

import (
	"math"

	"github.com/Fannzxyl/kotoba-test/pkg/components"
	"github.com/Fannzxyl/kotoba-test/pkg/config"
	"github.com/Fannzxyl/kotoba-test/pkg/utils"
)

// UpdateCannon 更新炮台角度和后坐力
//
// 角度按一阶平滑向目标角度靠近：每帧移动剩余误差的 TurnRate*dt（最多一次到位）；
// 后坐力按 RecoilDecay 每秒线性衰减，最小为 0。
//
// 参数:
//   - cannon: 炮台状态
//   - cfg: 炮台参数
//   - dt: 自上一帧以来经过的时间（秒）
func UpdateCannon(cannon *components.CannonComponent, cfg *config.CannonConfig, dt float64) {
	cannon.Angle = utils.Lerp(cannon.Angle, cannon.TargetAngle, math.Min(1, cfg.TurnRate*dt))
	cannon.Recoil = math.Max(0, cannon.Recoil-cfg.RecoilDecay*dt)
}

// AimCannon 将炮台瞄准目标点并施加后坐力
//
// 目标角度直接设置为炮台到目标点的 atan2 角度，实际炮管由 UpdateCannon 平滑转动。
//
// 返回:
//   - float64: 开火角度（弧度）
func AimCannon(cannon *components.CannonComponent, cfg *config.CannonConfig, x, y float64) float64 {
	angle := math.Atan2(y-cannon.Y, x-cannon.X)
	cannon.TargetAngle = angle
	cannon.Recoil = cfg.RecoilImpulse
	return angle
}

// MuzzlePosition 返回沿开火角度偏移后的炮口位置
func MuzzlePosition(cannon *components.CannonComponent, cfg *config.CannonConfig, angle float64) (float64, float64) {
	return cannon.X + math.Cos(angle)*cfg.MuzzleOffset,
		cannon.Y + math.Sin(angle)*cfg.MuzzleOffset
}
