package theme

import (
	"image/color"
	"testing"
)

func TestParseHint(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Hint
	}{
		{"light", "light", HintLight},
		{"dark", "dark", HintDark},
		{"mixed case", "DARK", HintDark},
		{"whitespace", "  light  ", HintLight},
		{"empty", "", HintAuto},
		{"unknown", "sepia", HintAuto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseHint(tt.raw); got != tt.want {
				t.Errorf("ParseHint(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestIsDarkColor(t *testing.T) {
	tests := []struct {
		name string
		c    color.Color
		want bool
	}{
		{"black", color.RGBA{0, 0, 0, 255}, true},
		{"white", color.RGBA{255, 255, 255, 255}, false},
		{"pure red is dark", color.RGBA{255, 0, 0, 255}, true},
		{"pure green is light", color.RGBA{0, 255, 0, 255}, false},
		{"pure blue is dark", color.RGBA{0, 0, 255, 255}, true},
		{"mid gray", color.RGBA{128, 128, 128, 255}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDarkColor(tt.c); got != tt.want {
				t.Errorf("IsDarkColor(%v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestResolve_ExplicitHintWins(t *testing.T) {
	// A dark sample must not override an explicit light hint.
	pal := Resolve(HintLight, color.RGBA{0, 0, 0, 255})
	if pal.IsDark {
		t.Error("explicit light hint should produce the light palette")
	}

	pal = Resolve(HintDark, color.RGBA{255, 255, 255, 255})
	if !pal.IsDark {
		t.Error("explicit dark hint should produce the dark palette")
	}
}

func TestResolve_AutoUsesSample(t *testing.T) {
	if pal := Resolve(HintAuto, color.RGBA{10, 10, 10, 255}); !pal.IsDark {
		t.Error("dark sample should resolve to the dark palette")
	}
	if pal := Resolve(HintAuto, color.RGBA{240, 240, 240, 255}); pal.IsDark {
		t.Error("light sample should resolve to the light palette")
	}
}

func TestResolve_NilSampleDefaultsLight(t *testing.T) {
	if pal := Resolve(HintAuto, nil); pal.IsDark {
		t.Error("nil sample with no hint should resolve to the light palette")
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   color.RGBA
		wantOK bool
	}{
		{"long form", "#1a2b3c", color.RGBA{0x1a, 0x2b, 0x3c, 255}, true},
		{"shorthand", "#abc", color.RGBA{0xaa, 0xbb, 0xcc, 255}, true},
		{"no hash", "ff0000", color.RGBA{255, 0, 0, 255}, true},
		{"uppercase", "#FFAA00", color.RGBA{255, 170, 0, 255}, true},
		{"bad length", "#ffff", color.RGBA{}, false},
		{"bad digit", "#zzzzzz", color.RGBA{}, false},
		{"empty", "", color.RGBA{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseHex(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ParseHex(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPalettes_ContrastDirection(t *testing.T) {
	light := Light()
	if IsDarkColor(light.Background) {
		t.Error("light palette background should not read as dark")
	}
	if !IsDarkColor(light.Foreground) {
		t.Error("light palette foreground should read as dark")
	}

	dark := Dark()
	if !IsDarkColor(dark.Background) {
		t.Error("dark palette background should read as dark")
	}
	if IsDarkColor(dark.Foreground) {
		t.Error("dark palette foreground should not read as dark")
	}
}
