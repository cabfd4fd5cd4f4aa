package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// 路由名称
const (
	RouteDecks  = "decks"
	RouteArcade = "arcade"
	RouteNotice = "notice"
)

// Route 描述要打开的场景
type Route struct {
	Name    string
	DeckID  string   // 街机模式使用的卡组
	CardIDs []string // 手动选择的卡片，为空时使用整个卡组
	Message string   // 提示场景显示的文字
}

// SceneFactory 场景工厂函数类型
// 用于按路由创建场景，避免 game 包依赖 scenes 包
type SceneFactory func(route Route) Scene

// SceneManager manages the application's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
//
// Size changes reported by Layout are queued and applied at the start of the next Update.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory // 场景工厂函数，用于创建新场景

	width, height float64
	pendingResize bool
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// The new scene receives the last known size before its first Update.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
	if sm.width > 0 && sm.height > 0 {
		sm.pendingResize = true
	}
}

// GetCurrentScene 返回当前活动的场景
//
// 返回：
//   - Scene: 当前场景，如果没有活动场景则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Navigate 按路由创建并切换场景
func (sm *SceneManager) Navigate(route Route) {
	log.Printf("[SceneManager] 切换场景: %s (deck=%s)", route.Name, route.DeckID)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return
	}

	newScene := sm.sceneFactory(route)
	if newScene == nil {
		log.Printf("[SceneManager] 错误: 无法创建场景: %s", route.Name)
		return
	}
	sm.SwitchTo(newScene)
}

// Resize 记录新的逻辑尺寸，在下一次 Update 开始时转发给当前场景
// 尺寸未变化或非正时忽略
func (sm *SceneManager) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == sm.width && height == sm.height {
		return
	}
	sm.width, sm.height = width, height
	sm.pendingResize = true
}

// Size 返回最近一次记录的逻辑尺寸
func (sm *SceneManager) Size() (float64, float64) {
	return sm.width, sm.height
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene == nil {
		return
	}
	if sm.pendingResize {
		sm.pendingResize = false
		if r, ok := sm.currentScene.(Resizable); ok {
			r.Resize(sm.width, sm.height)
		}
	}
	sm.currentScene.Update(deltaTime)
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
