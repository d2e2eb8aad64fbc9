package render

import (
	"image"
	"image/color"
	"testing"

	"vibe_backend/layout"
	"vibe_backend/theme"
)

func solidImage(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRenderer_Render_SurfaceSize(t *testing.T) {
	r := NewRenderer(nil)
	ins := []layout.Instruction{{
		Kind: layout.KindFillRect,
		Box:  layout.Rect{X: 0, Y: 0, W: 100, H: 80},
		Fill: layout.RoleBackground,
	}}

	img, err := r.Render(ins, theme.Light(), Bitmaps{}, 100, 80)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 80 {
		t.Errorf("bounds = %v, want 100x80", b)
	}
}

func TestRenderer_Render_InvalidSurface(t *testing.T) {
	r := NewRenderer(nil)
	for _, dims := range [][2]int{{0, 100}, {100, 0}, {-1, 100}} {
		if _, err := r.Render(nil, theme.Light(), Bitmaps{}, dims[0], dims[1]); err != ErrSurfaceUnavailable {
			t.Errorf("Render(%dx%d) err = %v, want ErrSurfaceUnavailable", dims[0], dims[1], err)
		}
	}
}

func TestRenderer_Render_BackgroundFillUsesPalette(t *testing.T) {
	r := NewRenderer(nil)
	ins := []layout.Instruction{{
		Kind: layout.KindFillRect,
		Box:  layout.Rect{X: 0, Y: 0, W: 10, H: 10},
		Fill: layout.RoleBackground,
	}}

	dark := theme.Dark()
	img, err := r.Render(ins, dark, Bitmaps{}, 10, 10)
	if err != nil {
		t.Fatal(err)
	}

	got := color.RGBAModel.Convert(img.At(5, 5)).(color.RGBA)
	want := color.RGBAModel.Convert(dark.Background).(color.RGBA)
	if got != want {
		t.Errorf("pixel = %v, want dark background %v", got, want)
	}
}

func TestRenderer_Render_NilBitmapSkipsImage(t *testing.T) {
	r := NewRenderer(nil)
	bg := layout.Instruction{
		Kind: layout.KindFillRect,
		Box:  layout.Rect{X: 0, Y: 0, W: 50, H: 50},
		Fill: layout.RoleBackground,
	}
	img := layout.Instruction{
		Kind: layout.KindImage,
		Box:  layout.Rect{X: 10, Y: 10, W: 20, H: 20},
		Slot: layout.SlotContentImage,
	}

	withNil, err := r.Render([]layout.Instruction{bg, img}, theme.Light(), Bitmaps{}, 50, 50)
	if err != nil {
		t.Fatal(err)
	}
	bgOnly, err := r.Render([]layout.Instruction{bg}, theme.Light(), Bitmaps{}, 50, 50)
	if err != nil {
		t.Fatal(err)
	}

	// A skipped image instruction must leave the surface untouched.
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			if withNil.At(x, y) != bgOnly.At(x, y) {
				t.Fatalf("pixel (%d,%d) changed despite nil bitmap", x, y)
			}
		}
	}
}

func TestRenderer_Render_DrawsBitmapIntoBox(t *testing.T) {
	r := NewRenderer(nil)
	red := color.RGBA{255, 0, 0, 255}
	ins := []layout.Instruction{
		{
			Kind: layout.KindFillRect,
			Box:  layout.Rect{X: 0, Y: 0, W: 60, H: 60},
			Fill: layout.RoleBackground,
		},
		{
			Kind: layout.KindImage,
			Box:  layout.Rect{X: 10, Y: 10, W: 40, H: 40},
			Slot: layout.SlotContentImage,
		},
	}

	img, err := r.Render(ins, theme.Light(), Bitmaps{ContentImage: solidImage(80, 80, red)}, 60, 60)
	if err != nil {
		t.Fatal(err)
	}

	got := color.RGBAModel.Convert(img.At(30, 30)).(color.RGBA)
	if got.R < 200 || got.G > 50 || got.B > 50 {
		t.Errorf("box center = %v, want red bitmap pixels", got)
	}
}

func TestRenderer_Render_PlaceholderDeterministic(t *testing.T) {
	r := NewRenderer(nil)
	ins := []layout.Instruction{
		{
			Kind: layout.KindFillRect,
			Box:  layout.Rect{X: 0, Y: 0, W: 80, H: 60},
			Fill: layout.RoleBackground,
		},
		{
			Kind:          layout.KindPlaceholder,
			Box:           layout.Rect{X: 5, Y: 5, W: 70, H: 50},
			Radius:        8,
			GradientIndex: 2,
			Lines:         []string{"hello"},
			FontSize:      12,
			LineHeight:    14,
		},
	}

	first, err := r.Render(ins, theme.Light(), Bitmaps{}, 80, 60)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Render(ins, theme.Light(), Bitmaps{}, 80, 60)
	if err != nil {
		t.Fatal(err)
	}

	for y := 0; y < 60; y++ {
		for x := 0; x < 80; x++ {
			if first.At(x, y) != second.At(x, y) {
				t.Fatalf("pixel (%d,%d) differs between identical renders", x, y)
			}
		}
	}
}

func TestRenderer_Render_EmojiScaleAndText(t *testing.T) {
	// Full instruction vocabulary in one pass: must not panic and must
	// produce a frame.
	r := NewRenderer(nil)
	ins := []layout.Instruction{
		{Kind: layout.KindFillRect, Box: layout.Rect{W: 200, H: 200}, Fill: layout.RoleBackground},
		{Kind: layout.KindGradient, Box: layout.Rect{W: 200, H: 40}, Fill: layout.RolePrimary, Stroke: layout.RoleAccent},
		{Kind: layout.KindRoundedRect, Box: layout.Rect{X: 10, Y: 20, W: 180, H: 160}, Fill: layout.RoleCard, Stroke: layout.RoleBorder, StrokeWidth: 2, Radius: 12},
		{Kind: layout.KindInitials, Box: layout.Rect{X: 20, Y: 30, W: 30, H: 30}, Text: "NF", Fill: layout.RolePrimary, FontSize: 12},
		{Kind: layout.KindText, Box: layout.Rect{X: 20, Y: 70, W: 160, H: 40}, Lines: []string{"two lines", "of text"}, Fill: layout.RoleForeground, FontSize: 12, LineHeight: 16},
		{Kind: layout.KindText, Box: layout.Rect{X: 0, Y: 120, W: 200, H: 20}, Lines: []string{"centered"}, Fill: layout.RoleMuted, FontSize: 10, LineHeight: 12, Center: true},
		{Kind: layout.KindEmojiScale, Box: layout.Rect{X: 20, Y: 150, W: 150, H: 24}, Text: "*", Fill: layout.RoleForeground, FontSize: 16, FillRatio: 0.7},
	}

	img, err := r.Render(ins, theme.Dark(), Bitmaps{}, 200, 200)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if img == nil {
		t.Fatal("Render returned nil image")
	}
}
