package game

import (
	"bytes"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// ResourceManager is responsible for centralized management of game resources.
// It caches font faces per size and owns the shared audio context.
//
// The default font source is Go Regular, which covers romaji labels and the HUD.
// Decks with Japanese-only labels should load a CJK font with LoadFontSource.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. All access happens on the game goroutine.
type ResourceManager struct {
	audioContext  *audio.Context
	fontSource    *text.GoTextFaceSource
	fontFaceCache map[float64]*text.GoTextFace
}

// NewResourceManager creates a ResourceManager using the built-in Go Regular font.
//
// Parameters:
//   - audioContext: The global audio context (may be nil when audio is disabled).
//
// Returns:
//   - A ResourceManager, or an error if the built-in font cannot be parsed.
func NewResourceManager(audioContext *audio.Context) (*ResourceManager, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to create default font source: %w", err)
	}
	return &ResourceManager{
		audioContext:  audioContext,
		fontSource:    source,
		fontFaceCache: make(map[float64]*text.GoTextFace),
	}, nil
}

// LoadFontSource replaces the font source with a TTF/OTF file.
// Cached faces are dropped so subsequent Font calls use the new source.
//
// Example:
//
//	if err := rm.LoadFontSource("fonts/NotoSansJP-Regular.ttf"); err != nil {
//	    log.Printf("Failed to load font: %v", err)
//	}
func (rm *ResourceManager) LoadFontSource(path string) error {
	fontData, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read font file %s: %w", path, err)
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return fmt.Errorf("failed to create font source for %s: %w", path, err)
	}

	rm.fontSource = source
	rm.fontFaceCache = make(map[float64]*text.GoTextFace)
	return nil
}

// Font returns a cached face of the given size, creating it on first use.
func (rm *ResourceManager) Font(size float64) *text.GoTextFace {
	if face, exists := rm.fontFaceCache[size]; exists {
		return face
	}

	face := &text.GoTextFace{
		Source:    rm.fontSource,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[size] = face
	return face
}

// AudioContext returns the shared audio context, or nil when audio is disabled.
func (rm *ResourceManager) AudioContext() *audio.Context {
	return rm.audioContext
}
