package scenes

import (
	"fmt"
	"log"

	"github.com/Fannzxyl/kotoba-test/pkg/config"
	"github.com/Fannzxyl/kotoba-test/pkg/deck"
	"github.com/Fannzxyl/kotoba-test/pkg/game"
	"github.com/Fannzxyl/kotoba-test/pkg/render"
	"github.com/Fannzxyl/kotoba-test/pkg/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var backgroundColor = render.BackgroundColor

// 卡组列表布局
const (
	deckListTop     = 150.0
	deckRowHeight   = 48.0
	deckRowWidth    = 420.0
	deckRowSpacing  = 8.0
	deckTitleOffset = 70.0
)

// deckEntry 列表中的一行
type deckEntry struct {
	deck  deck.Deck
	count int
}

// DeckSelectScene lists the stored decks and opens the arcade for the chosen one.
//
// Up/Down (or moving the pointer over a row) changes the selection, Enter/Space (or click) starts the arcade.
// A pointer resting over a row does not override the keyboard.
// The last played deck is preselected and remembered in settings.
type DeckSelectScene struct {
	sceneManager    *game.SceneManager
	settingsManager *game.SettingsManager

	entries  []deckEntry
	selected int
	minCards int
	pointer  ui.PointerTracker

	titleFace *text.GoTextFace
	rowFace   *text.GoTextFace
	hintFace  *text.GoTextFace

	width, height float64
}

// NewDeckSelectScene creates the deck list from the store.
//
// Parameters:
//   - settingsManager: may be nil; the last deck is then neither restored nor saved.
//   - minCards: minimum deck size for the arcade; smaller decks are shown dimmed.
func NewDeckSelectScene(rm *game.ResourceManager, sm *game.SceneManager, settingsManager *game.SettingsManager, store *deck.Store, minCards int) *DeckSelectScene {
	s := &DeckSelectScene{
		sceneManager:    sm,
		settingsManager: settingsManager,
		minCards:        minCards,
		titleFace:       rm.Font(config.PromptFontSize),
		rowFace:         rm.Font(config.HUDFontSize + 4),
		hintFace:        rm.Font(config.HUDFontSize),
		width:           config.GameWindowWidth,
		height:          config.GameWindowHeight,
	}

	lastDeck := ""
	if settingsManager != nil {
		lastDeck = settingsManager.GetSettings().LastDeckID
	}
	for i, d := range store.Decks() {
		s.entries = append(s.entries, deckEntry{deck: d, count: len(store.Cards(d.ID))})
		if d.ID == lastDeck {
			s.selected = i
		}
	}

	log.Printf("[DeckSelectScene] %d decks loaded", len(s.entries))
	return s
}

// Resize implements game.Resizable.
func (s *DeckSelectScene) Resize(width, height float64) {
	s.width, s.height = width, height
}

// Update handles keyboard and pointer selection.
func (s *DeckSelectScene) Update(deltaTime float64) {
	if len(s.entries) == 0 {
		return
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		s.move(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		s.move(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		s.choose(s.selected)
		return
	}

	p := ui.ReadPointer()
	s.applyPointer(p, s.pointer.Moved(p))
}

// applyPointer selects the row under the pointer when it moved there or clicked it.
func (s *DeckSelectScene) applyPointer(p ui.Pointer, moved bool) {
	row := s.rowAt(float64(p.X), float64(p.Y))
	if row < 0 || !(moved || p.Pressed) {
		return
	}
	s.selected = row
	if p.Pressed {
		s.choose(row)
	}
}

// move changes the selection with wrap-around.
func (s *DeckSelectScene) move(delta int) {
	n := len(s.entries)
	s.selected = ((s.selected+delta)%n + n) % n
}

// rowBounds returns the rectangle of row i.
func (s *DeckSelectScene) rowBounds(i int) (x, y, w, h float64) {
	w = deckRowWidth
	if w > s.width-2*config.HUDMargin {
		w = s.width - 2*config.HUDMargin
	}
	x = (s.width - w) / 2
	y = deckListTop + float64(i)*(deckRowHeight+deckRowSpacing)
	return x, y, w, deckRowHeight
}

// rowAt returns the row under the point, or -1.
func (s *DeckSelectScene) rowAt(px, py float64) int {
	for i := range s.entries {
		x, y, w, h := s.rowBounds(i)
		if px >= x && px <= x+w && py >= y && py <= y+h {
			return i
		}
	}
	return -1
}

// choose remembers the deck and opens the arcade.
func (s *DeckSelectScene) choose(i int) {
	entry := s.entries[i]
	if s.settingsManager != nil {
		s.settingsManager.SetLastDeckID(entry.deck.ID)
		if err := s.settingsManager.Save(); err != nil {
			log.Printf("[DeckSelectScene] Warning: failed to save settings: %v", err)
		}
	}
	log.Printf("[DeckSelectScene] Selected deck %s (%d cards)", entry.deck.ID, entry.count)
	s.sceneManager.Navigate(game.Route{Name: game.RouteArcade, DeckID: entry.deck.ID})
}

// deckRowLabel formats a deck row.
func deckRowLabel(name string, count int) string {
	if count == 1 {
		return fmt.Sprintf("%s  (1 card)", name)
	}
	return fmt.Sprintf("%s  (%d cards)", name, count)
}

// Draw renders the deck list.
func (s *DeckSelectScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	drawText(screen, "Kotoba Arcade", s.titleFace, s.width/2, deckListTop-deckTitleOffset, text.AlignCenter, textColor)

	if len(s.entries) == 0 {
		drawText(screen, "No decks available", s.rowFace, s.width/2, deckListTop, text.AlignCenter, mutedTextColor)
		return
	}

	for i, entry := range s.entries {
		x, y, w, h := s.rowBounds(i)
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), panelColor, true)
		if i == s.selected {
			vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, panelBorder, true)
		}
		clr := textColor
		if entry.count < s.minCards {
			clr = mutedTextColor
		}
		drawText(screen, deckRowLabel(entry.deck.Name, entry.count), s.rowFace, x+w/2, y+h/2, text.AlignCenter, clr)
	}

	_, lastY, _, lastH := s.rowBounds(len(s.entries) - 1)
	drawText(screen, "↑/↓ select • Enter to play", s.hintFace, s.width/2, lastY+lastH+32, text.AlignCenter, mutedTextColor)
}
