// Package ui 提供场景共用的指针输入和文字排版工具
package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Pointer 一帧的指针状态，鼠标和触摸统一处理
type Pointer struct {
	X, Y     int
	Pressed  bool // 本帧刚点击或刚触摸
	Touching bool // 来自触摸屏
}

// ReadPointer 读取当前帧的指针，触摸优先于鼠标
func ReadPointer() Pointer {
	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return Pointer{X: x, Y: y, Pressed: true, Touching: true}
	}
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return Pointer{X: x, Y: y, Touching: true}
	}
	x, y := ebiten.CursorPosition()
	return Pointer{X: x, Y: y, Pressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)}
}

// JustPressed 返回本帧是否点击或触摸，以及位置
func JustPressed() (bool, int, int) {
	p := ReadPointer()
	return p.Pressed, p.X, p.Y
}

// PointerTracker 记住上一帧的指针位置
//
// 光标静止在某一行上时不应覆盖键盘选择，
// 场景用 Moved 区分"移动到这里"和"一直停在这里"。
type PointerTracker struct {
	x, y int
	seen bool
}

// Moved 返回指针相对上一次调用是否移动，并记录新位置
// 第一次调用只记录位置，返回 false
func (pt *PointerTracker) Moved(p Pointer) bool {
	moved := pt.seen && (p.X != pt.x || p.Y != pt.y)
	pt.x, pt.y, pt.seen = p.X, p.Y, true
	return moved
}
