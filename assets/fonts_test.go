package assets

import (
	"testing"

	"golang.org/x/image/font/basicfont"
)

func TestNewFontPool_BadPathFallsBack(t *testing.T) {
	pool := NewFontPoolFromBytes([]byte("definitely not a ttf"))
	if pool.HasTrueType() {
		t.Error("garbage data should not parse as a TTF")
	}
	if pool.Face(32) != basicfont.Face7x13 {
		t.Error("missing TTF should serve the bitmap fallback face")
	}
}

func TestFontPool_MeasureStringPositive(t *testing.T) {
	pool := NewFontPool("/no/such/font.ttf")

	if w := pool.MeasureString("hello", 24); w <= 0 {
		t.Errorf("MeasureString = %v, want > 0", w)
	}
	if pool.MeasureString("", 24) != 0 {
		t.Error("empty string should measure zero")
	}
}

func TestFontPool_MeasureStringMonotonic(t *testing.T) {
	pool := NewFontPool("")

	short := pool.MeasureString("ab", 24)
	long := pool.MeasureString("abcdef", 24)
	if long <= short {
		t.Errorf("longer string should measure wider: %v vs %v", short, long)
	}
}

func TestFontPool_FaceCaching(t *testing.T) {
	pool := NewFontPool("")
	if !pool.HasTrueType() {
		t.Skip("no system TTF available; fallback face has no per-size cache")
	}

	a := pool.Face(18)
	b := pool.Face(18)
	if a != b {
		t.Error("same size should return the cached face")
	}
	if pool.Face(36) == a {
		t.Error("different sizes should return different faces")
	}
}
