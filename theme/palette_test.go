package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseGPL(t *testing.T) {
	src := `GIMP Palette
Name: test
Columns: 2
# comment
  0   0   0	black
255 255 255	white
bad line here
300 0 0	out of range
`
	p, err := ParseGPL(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "test" {
		t.Errorf("name = %q", p.Name)
	}
	if len(p.Colors) != 2 {
		t.Fatalf("colors = %v", p.Colors)
	}
	if got := p.Lookup(0.5); got != (RGB{127, 127, 127}) {
		t.Errorf("Lookup(0.5) = %v", got)
	}
	if got := p.Lookup(-1); got != (RGB{0, 0, 0}) {
		t.Errorf("Lookup(-1) = %v", got)
	}
	if got := p.Index(9); got != (RGB{255, 255, 255}) {
		t.Errorf("Index(9) = %v", got)
	}
	if got := p.Colors[1].Hex(); got != "#ffffff" {
		t.Errorf("Hex = %q", got)
	}
}

func TestParseGPLEmpty(t *testing.T) {
	if _, err := ParseGPL(strings.NewReader("GIMP Palette\nName: x\n")); err == nil {
		t.Error("expected error for palette without colours")
	}
}

func TestLoadOrDefault(t *testing.T) {
	p, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.gpl"))
	if err == nil {
		t.Error("expected error for missing file")
	}
	if p == nil || p.Name != "dusk" {
		t.Errorf("fallback palette = %+v", p)
	}

	path := filepath.Join(t.TempDir(), "one.gpl")
	if err := os.WriteFile(path, []byte("GIMP Palette\n10 20 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err = LoadOrDefault(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Lookup(0.7); got != (RGB{10, 20, 30}) {
		t.Errorf("single colour lookup = %v", got)
	}
}
