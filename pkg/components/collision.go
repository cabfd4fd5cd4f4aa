package components

// 圆形碰撞辅助函数
// 所有实体（气泡、子弹、点击点）都按圆形处理

// DistanceSq 返回两点之间距离的平方
func DistanceSq(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// CirclesOverlap 判断两个圆是否相交（圆心距离严格小于半径之和）
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	sum := r1 + r2
	return DistanceSq(x1, y1, x2, y2) < sum*sum
}
