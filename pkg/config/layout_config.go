package config

// 布局配置常量
// 本文件定义窗口尺寸和 HUD 元素位置，所有坐标使用逻辑坐标（Layout 返回的尺寸）

const (
	// GameWindowWidth 默认窗口宽度（像素）
	GameWindowWidth = 800

	// GameWindowHeight 默认窗口高度（像素）
	GameWindowHeight = 600

	// HUDMargin HUD 元素距离屏幕边缘的间距
	HUDMargin = 16.0

	// HUDHeartSize 生命值图标的直径
	HUDHeartSize = 22.0

	// HUDHeartSpacing 生命值图标之间的间距
	HUDHeartSpacing = 6.0

	// PromptPanelTop 提示面板顶部Y坐标
	PromptPanelTop = 64.0

	// PromptPanelWidth 提示面板宽度（屏幕较窄时按屏幕宽度收缩）
	PromptPanelWidth = 420.0

	// PromptPanelHeight 提示面板高度
	PromptPanelHeight = 84.0

	// LabelFontSize 气泡文字字号
	LabelFontSize = 16.0

	// HUDFontSize HUD 普通文字字号
	HUDFontSize = 14.0

	// ScoreFontSize 分数文字字号
	ScoreFontSize = 28.0

	// PromptFontSize 提示文字字号
	PromptFontSize = 30.0
)

// PromptPanelBounds 返回提示面板在给定屏幕宽度下的位置
// 返回值：x, y, width, height
func PromptPanelBounds(screenWidth float64) (float64, float64, float64, float64) {
	w := PromptPanelWidth
	if w > screenWidth-2*HUDMargin {
		w = screenWidth - 2*HUDMargin
	}
	x := (screenWidth - w) / 2
	return x, PromptPanelTop, w, PromptPanelHeight
}
