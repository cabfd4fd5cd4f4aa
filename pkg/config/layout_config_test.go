package config

import (
	"testing"

	"pgregory.net/rapid"
)

// TestPromptPanelBounds 测试提示面板在不同屏幕宽度下的位置
func TestPromptPanelBounds(t *testing.T) {
	tests := []struct {
		name        string
		screenWidth float64
		wantX       float64
		wantWidth   float64
	}{
		{
			name:        "默认窗口宽度",
			screenWidth: 800,
			wantX:       190,
			wantWidth:   PromptPanelWidth,
		},
		{
			name:        "宽屏",
			screenWidth: 1600,
			wantX:       590,
			wantWidth:   PromptPanelWidth,
		},
		{
			name:        "窄屏收缩到屏幕宽度",
			screenWidth: 360,
			wantX:       HUDMargin,
			wantWidth:   360 - 2*HUDMargin,
		},
		{
			name:        "更窄的屏幕",
			screenWidth: 300,
			wantX:       HUDMargin,
			wantWidth:   300 - 2*HUDMargin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, w, h := PromptPanelBounds(tt.screenWidth)
			if x != tt.wantX || w != tt.wantWidth {
				t.Errorf("PromptPanelBounds(%v) = x=%v w=%v, want x=%v w=%v", tt.screenWidth, x, w, tt.wantX, tt.wantWidth)
			}
			if y != PromptPanelTop || h != PromptPanelHeight {
				t.Errorf("PromptPanelBounds(%v) y=%v h=%v, want y=%v h=%v", tt.screenWidth, y, h, PromptPanelTop, PromptPanelHeight)
			}
		})
	}
}

// TestPromptPanelCenteredProperty 面板始终水平居中且留出边距
func TestPromptPanelCenteredProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		width := rapid.Float64Range(2*HUDMargin+1, 4000).Draw(t, "width")
		x, _, w, _ := PromptPanelBounds(width)

		if w > PromptPanelWidth || w > width-2*HUDMargin+1e-9 {
			t.Fatalf("width %v: panel width %v too large", width, w)
		}
		if x < HUDMargin-1e-9 {
			t.Fatalf("width %v: panel x %v inside margin", width, x)
		}
		if diff := (x + w/2) - width/2; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("width %v: panel not centered (x=%v w=%v)", width, x, w)
		}
	})
}
