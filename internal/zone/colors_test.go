package zone

import (
	"testing"

	"github.com/Faultbox/accufoot/pkg/mesh"
)

func TestDefaultPaletteComplete(t *testing.T) {
	p := DefaultPalette()
	if len(p) != 30 {
		t.Errorf("palette has %d entries, want 30", len(p))
	}
	if got := p.Get("heart"); got != (mesh.Color{R: 255, G: 0, B: 0, A: 255}) {
		t.Errorf("heart = %v, want opaque red", got)
	}
	if got := p.Get("adrenal_gland"); got != (mesh.Color{R: 255, G: 165, B: 0, A: 255}) {
		t.Errorf("adrenal_gland = %v, want orange", got)
	}
}

func TestPaletteFallback(t *testing.T) {
	p := DefaultPalette()
	if got := p.Get("no_such_zone"); got != mesh.DefaultColor {
		t.Errorf("unmapped zone = %v, want default %v", got, mesh.DefaultColor)
	}
}

func TestPaletteGetFoldsCase(t *testing.T) {
	p := DefaultPalette()
	if p.Get("HEART") != p.Get("heart") {
		t.Error("Get must be case-insensitive")
	}
}

func TestPaletteApply(t *testing.T) {
	p := DefaultPalette()
	err := p.Apply(map[string]string{
		"Heart":    "#00FF00",
		"new_zone": "#112233",
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := p.Get("heart"); got != (mesh.Color{R: 0, G: 255, B: 0, A: 255}) {
		t.Errorf("override lost: heart = %v", got)
	}
	if got := p.Get("new_zone"); got != (mesh.Color{R: 0x11, G: 0x22, B: 0x33, A: 255}) {
		t.Errorf("new entry = %v", got)
	}
}

func TestPaletteApplyBadHex(t *testing.T) {
	p := DefaultPalette()
	if err := p.Apply(map[string]string{"heart": "not-a-color"}); err == nil {
		t.Error("bad hex must fail")
	}
}
