package components

import "github.com/Fannzxyl/kotoba-test/pkg/types"

// TargetState 气泡的视觉状态
type TargetState int

const (
	// TargetNormal 普通状态
	TargetNormal TargetState = iota
	// TargetHit 已被击中（保留给命中动画）
	TargetHit
	// TargetWrong 被错误击中，持续抖动
	TargetWrong
)

// String 返回视觉状态的字符串表示
func (s TargetState) String() string {
	switch s {
	case TargetNormal:
		return "normal"
	case TargetHit:
		return "hit"
	case TargetWrong:
		return "wrong"
	default:
		return "unknown"
	}
}

// TargetComponent 表示一轮中的一个答案气泡
//
// 由出题器按轮次创建，交给引擎后由引擎独占。
// 正确答案被击中或新一轮替换气泡时销毁（IsAlive=false 或从列表中移除）。
type TargetComponent struct {
	ID          string     // 每个气泡新生成的唯一ID，子弹通过它绑定目标
	Card        types.Card // 气泡对应的词汇卡片
	DisplayText string     // 气泡上显示的文字

	X, Y   float64 // 中心位置（逻辑坐标）
	VX, VY float64 // 速度（像素/tick）
	Radius float64 // 半径

	IsAlive   bool
	IsCorrect bool
	State     TargetState
	Scale     float64 // 弹出动画缩放，0 → 1
}

// Contains 判断点是否落在气泡圆内（不含边界）
func (t *TargetComponent) Contains(x, y float64) bool {
	return DistanceSq(x, y, t.X, t.Y) < t.Radius*t.Radius
}
