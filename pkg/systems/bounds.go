package systems

// Bounds 表示绘制表面的逻辑尺寸
// 物理系统用它做边界反弹和出界判定
type Bounds struct {
	Width  float64
	Height float64
}

// Contains 判断点是否在表面范围内（含边界）
func (b Bounds) Contains(x, y float64) bool {
	return x >= 0 && x <= b.Width && y >= 0 && y <= b.Height
}
