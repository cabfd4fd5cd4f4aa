package scenes

import (
	"github.com/Fannzxyl/kotoba-test/pkg/config"
	"github.com/Fannzxyl/kotoba-test/pkg/game"
	"github.com/Fannzxyl/kotoba-test/pkg/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// NoticeScene displays a message (e.g. "not enough cards") and returns to deck selection.
type NoticeScene struct {
	sceneManager *game.SceneManager
	message      string
	face         *text.GoTextFace
	titleFace    *text.GoTextFace

	width, height float64
}

// NewNoticeScene creates a notice scene showing the given message.
func NewNoticeScene(rm *game.ResourceManager, sm *game.SceneManager, message string) *NoticeScene {
	return &NoticeScene{
		sceneManager: sm,
		message:      message,
		face:         rm.Font(config.HUDFontSize + 4),
		titleFace:    rm.Font(config.PromptFontSize),
		width:        config.GameWindowWidth,
		height:       config.GameWindowHeight,
	}
}

// Resize implements game.Resizable.
func (s *NoticeScene) Resize(width, height float64) {
	s.width, s.height = width, height
}

// Update returns to deck selection on click, Enter or Escape.
func (s *NoticeScene) Update(deltaTime float64) {
	clicked, _, _ := ui.JustPressed()
	if clicked || inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.back()
	}
}

func (s *NoticeScene) back() {
	s.sceneManager.Navigate(game.Route{Name: game.RouteDecks})
}

// lines returns the message wrapped to the current width.
func (s *NoticeScene) lines() []string {
	return ui.WrapText(s.message, s.face, s.width-4*config.HUDMargin)
}

// Draw renders the wrapped message centered on screen.
func (s *NoticeScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	lines := s.lines()
	y := s.height/2 - float64(len(lines))*14
	drawText(screen, "Kotoba Arcade", s.titleFace, s.width/2, y-56, text.AlignCenter, textColor)
	for _, line := range lines {
		drawText(screen, line, s.face, s.width/2, y, text.AlignCenter, textColor)
		y += 28
	}
	drawText(screen, "Click or press Enter to go back", s.face, s.width/2, y+28, text.AlignCenter, mutedTextColor)
}
