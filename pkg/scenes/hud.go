package scenes

import (
	"fmt"
	"image/color"

	"github.com/Fannzxyl/kotoba-test/pkg/config"
	"github.com/Fannzxyl/kotoba-test/pkg/game"
	"github.com/Fannzxyl/kotoba-test/pkg/round"
	"github.com/Fannzxyl/kotoba-test/pkg/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// HUD 颜色
var (
	heartColor      = color.NRGBA{R: 239, G: 68, B: 68, A: 255}
	heartLostColor  = color.NRGBA{R: 75, G: 85, B: 99, A: 255}
	panelColor      = color.NRGBA{R: 31, G: 41, B: 55, A: 220}
	panelBorder     = color.NRGBA{R: 168, G: 85, B: 247, A: 255}
	overlayColor    = color.NRGBA{R: 0, G: 0, B: 0, A: 170}
	textColor       = color.NRGBA{R: 243, G: 244, B: 246, A: 255}
	mutedTextColor  = color.NRGBA{R: 156, G: 163, B: 175, A: 255}
	streakTextColor = color.NRGBA{R: 250, G: 204, B: 21, A: 255}
)

// formatScore 分数固定显示 5 位
func formatScore(score int) string {
	return fmt.Sprintf("%05d", score)
}

// levelLabel 提示面板下方的等级和轮次
func levelLabel(level, roundNo int) string {
	return fmt.Sprintf("Level %d • Round %d", level, roundNo)
}

// streakLabel 连击数小于 2 时不显示
func streakLabel(streak int) string {
	if streak < 2 {
		return ""
	}
	return fmt.Sprintf("x%d Streak", streak)
}

// bestScoreLabel 最高分一行，没有记录时为空
func bestScoreLabel(best int, isNew bool) string {
	switch {
	case best <= 0:
		return ""
	case isNew:
		return fmt.Sprintf("New best %s!", formatScore(best))
	}
	return fmt.Sprintf("Best %s", formatScore(best))
}

// 提示面板最多两行
const (
	promptMaxLines   = 2
	promptLineHeight = 34.0
	promptPadding    = 16.0
)

// promptLines 把提示文字折成不超过面板宽度的行，超出两行时截断第二行
func promptLines(prompt string, face text.Face, panelWidth float64) []string {
	maxWidth := panelWidth - 2*promptPadding
	lines := ui.WrapText(prompt, face, maxWidth)
	if len(lines) <= promptMaxLines {
		return lines
	}
	last := lines[promptMaxLines-1] + " " + lines[promptMaxLines]
	lines = lines[:promptMaxLines]
	lines[promptMaxLines-1] = ui.Truncate(last, face, maxWidth)
	return lines
}

// drawText 按对齐方式绘制一行文字
func drawText(screen *ebiten.Image, s string, face text.Face, x, y float64, align text.Align, clr color.Color) {
	if face == nil || s == "" {
		return
	}
	op := &text.DrawOptions{}
	op.PrimaryAlign = align
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}

// hudFonts HUD 使用的字体
type hudFonts struct {
	small  text.Face
	score  text.Face
	prompt text.Face
}

func newHUDFonts(rm *game.ResourceManager) hudFonts {
	return hudFonts{
		small:  rm.Font(config.HUDFontSize),
		score:  rm.Font(config.ScoreFontSize),
		prompt: rm.Font(config.PromptFontSize),
	}
}

// drawHUD 绘制生命、分数、连击和提示面板
func drawHUD(screen *ebiten.Image, fonts hudFonts, stats round.SessionStats, maxLives int, prompt string, width float64) {
	// 生命
	r := config.HUDHeartSize / 2
	for i := 0; i < maxLives; i++ {
		clr := heartColor
		if i >= stats.Lives {
			clr = heartLostColor
		}
		cx := config.HUDMargin + r + float64(i)*(config.HUDHeartSize+config.HUDHeartSpacing)
		vector.DrawFilledCircle(screen, float32(cx), float32(config.HUDMargin+r), float32(r), clr, true)
	}

	// 分数和连击
	drawText(screen, formatScore(stats.Score), fonts.score, width-config.HUDMargin, config.HUDMargin+r, text.AlignEnd, textColor)
	drawText(screen, streakLabel(stats.Streak), fonts.small, width-config.HUDMargin, config.HUDMargin+r+28, text.AlignEnd, streakTextColor)

	// 提示面板
	px, py, pw, ph := config.PromptPanelBounds(width)
	vector.DrawFilledRect(screen, float32(px), float32(py), float32(pw), float32(ph), panelColor, true)
	vector.StrokeRect(screen, float32(px), float32(py), float32(pw), float32(ph), 2, panelBorder, true)
	lines := promptLines(prompt, fonts.prompt, pw)
	y := py + ph*0.42 - float64(len(lines)-1)*promptLineHeight/2
	for _, line := range lines {
		drawText(screen, line, fonts.prompt, px+pw/2, y, text.AlignCenter, textColor)
		y += promptLineHeight
	}
	drawText(screen, levelLabel(stats.Level, stats.Round), fonts.small, px+pw/2, py+ph-14, text.AlignCenter, mutedTextColor)
}

// drawOverlay 绘制半透明遮罩和居中的多行文字
func drawOverlay(screen *ebiten.Image, fonts hudFonts, width, height float64, title string, lines ...string) {
	vector.DrawFilledRect(screen, 0, 0, float32(width), float32(height), overlayColor, false)

	y := height/2 - float64(len(lines))*14
	drawText(screen, title, fonts.prompt, width/2, y-40, text.AlignCenter, textColor)
	for _, line := range lines {
		drawText(screen, line, fonts.small, width/2, y, text.AlignCenter, mutedTextColor)
		y += 28
	}
}
