package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a screen of the application (deck selection, arcade, notices).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Resizable 是一个可选接口，用于接收逻辑画面尺寸变化
//
// SceneManager 在尺寸变化和切换场景时调用 Resize，
// 调用发生在 Update 开始之前，场景不会在一帧中读到两种尺寸。
type Resizable interface {
	Resize(width, height float64)
}
