// Package render interprets layout instructions into pixels.
//
// renderer.go implements the Renderer organism: a pure interpreter over
// the layout engine's instruction list. No decision logic lives here -
// which blocks exist, where they sit, and what they say was all settled by
// the layout engine. The same interpreter therefore drives every variant
// and aspect ratio.
//
// This organism composes:
//   - fogleman/gg for primitive draw calls
//   - assets.FontPool for font faces
//   - assets.CoverCrop for image fitting
//   - theme.Palette for role -> color resolution
package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"vibe_backend/assets"
	"vibe_backend/layout"
	"vibe_backend/theme"
)

// Bitmaps carries the successfully loaded bitmaps for one render. A nil
// entry means the layout engine already substituted a placeholder
// instruction; the renderer skips image instructions whose slot is nil.
type Bitmaps struct {
	ContentImage image.Image
	Avatar       image.Image
}

// Renderer executes instruction lists against a raster surface.
//
// Thread Safety: a Renderer is safe for concurrent use; each Render call
// owns its surface exclusively for the duration of the call.
type Renderer struct {
	fonts *assets.FontPool
}

// NewRenderer creates a Renderer drawing with the given font pool.
// A nil pool gets a fresh one (bitmap fallback if no system font exists).
func NewRenderer(fonts *assets.FontPool) *Renderer {
	if fonts == nil {
		fonts = assets.NewFontPool("")
	}
	return &Renderer{fonts: fonts}
}

// Fonts returns the font pool, which doubles as the layout engine's text
// measurer.
func (r *Renderer) Fonts() *assets.FontPool {
	return r.fonts
}

// Render executes the instruction list and returns the composited frame.
//
// Deterministic: identical instructions, palette, and bitmaps produce
// pixel-identical output. Returns ErrSurfaceUnavailable for a non-positive
// surface size; individual instructions never fail, they draw or are
// skipped.
func (r *Renderer) Render(ins []layout.Instruction, pal theme.Palette, bitmaps Bitmaps, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrSurfaceUnavailable
	}

	dc := gg.NewContext(width, height)
	if dc == nil {
		return nil, ErrSurfaceUnavailable
	}

	for _, in := range ins {
		switch in.Kind {
		case layout.KindFillRect:
			dc.SetColor(roleColor(pal, in.Fill))
			dc.DrawRectangle(in.Box.X, in.Box.Y, in.Box.W, in.Box.H)
			dc.Fill()

		case layout.KindRoundedRect:
			r.drawRoundedRect(dc, pal, in)

		case layout.KindGradient:
			grad := gg.NewLinearGradient(in.Box.X, in.Box.Y, in.Box.X, in.Box.Y+in.Box.H)
			grad.AddColorStop(0, roleColor(pal, in.Fill))
			grad.AddColorStop(1, roleColor(pal, in.Stroke))
			dc.SetFillStyle(grad)
			dc.DrawRectangle(in.Box.X, in.Box.Y, in.Box.W, in.Box.H)
			dc.Fill()

		case layout.KindImage:
			r.drawImage(dc, in, bitmaps)

		case layout.KindPlaceholder:
			r.drawPlaceholder(dc, in)

		case layout.KindInitials:
			r.drawInitials(dc, pal, in)

		case layout.KindText:
			r.drawText(dc, pal, in)

		case layout.KindEmojiScale:
			r.drawEmojiScale(dc, pal, in)
		}
	}

	return dc.Image(), nil
}

func (r *Renderer) drawRoundedRect(dc *gg.Context, pal theme.Palette, in layout.Instruction) {
	dc.SetColor(roleColor(pal, in.Fill))
	dc.DrawRoundedRectangle(in.Box.X, in.Box.Y, in.Box.W, in.Box.H, in.Radius)
	dc.Fill()

	if in.StrokeWidth > 0 {
		dc.SetColor(roleColor(pal, in.Stroke))
		dc.SetLineWidth(in.StrokeWidth)
		dc.DrawRoundedRectangle(in.Box.X, in.Box.Y, in.Box.W, in.Box.H, in.Radius)
		dc.Stroke()
	}
}

// drawImage cover-crops the slotted bitmap into the box, clipped to a
// circle or rounded rect. A nil bitmap is skipped silently; the layout
// engine already emitted the placeholder path when it knew the bitmap was
// missing.
func (r *Renderer) drawImage(dc *gg.Context, in layout.Instruction, bitmaps Bitmaps) {
	var src image.Image
	switch in.Slot {
	case layout.SlotContentImage:
		src = bitmaps.ContentImage
	case layout.SlotAvatar:
		src = bitmaps.Avatar
	}
	if src == nil {
		return
	}

	fitted := assets.CoverCrop(src, int(in.Box.W), int(in.Box.H))
	if fitted == nil {
		return
	}

	dc.Push()
	if in.Circle {
		cx := in.Box.X + in.Box.W/2
		cy := in.Box.Y + in.Box.H/2
		dc.DrawCircle(cx, cy, in.Box.W/2)
	} else {
		dc.DrawRoundedRectangle(in.Box.X, in.Box.Y, in.Box.W, in.Box.H, in.Radius)
	}
	dc.Clip()
	dc.DrawImage(fitted, int(in.Box.X), int(in.Box.Y))
	dc.ResetClip()
	dc.Pop()
}

func (r *Renderer) drawPlaceholder(dc *gg.Context, in layout.Instruction) {
	top, bottom := GradientPair(in.GradientIndex)

	grad := gg.NewLinearGradient(in.Box.X, in.Box.Y, in.Box.X+in.Box.W, in.Box.Y+in.Box.H)
	grad.AddColorStop(0, top)
	grad.AddColorStop(1, bottom)

	dc.Push()
	dc.DrawRoundedRectangle(in.Box.X, in.Box.Y, in.Box.W, in.Box.H, in.Radius)
	dc.Clip()
	dc.SetFillStyle(grad)
	dc.DrawRectangle(in.Box.X, in.Box.Y, in.Box.W, in.Box.H)
	dc.Fill()

	// Overlay the wrapped title, centered in the box.
	if len(in.Lines) > 0 {
		dc.SetFontFace(r.fonts.Face(in.FontSize))
		total := float64(len(in.Lines)) * in.LineHeight
		startY := in.Box.Y + (in.Box.H-total)/2 + in.FontSize

		for i, line := range in.Lines {
			lw, _ := dc.MeasureString(line)
			lx := in.Box.X + (in.Box.W-lw)/2
			ly := startY + float64(i)*in.LineHeight

			dc.SetRGBA255(0, 0, 0, 90)
			dc.DrawString(line, lx+2, ly+2)
			dc.SetColor(placeholderTextColor)
			dc.DrawString(line, lx, ly)
		}
	}
	dc.ResetClip()
	dc.Pop()
}

func (r *Renderer) drawInitials(dc *gg.Context, pal theme.Palette, in layout.Instruction) {
	cx := in.Box.X + in.Box.W/2
	cy := in.Box.Y + in.Box.H/2

	dc.SetColor(roleColor(pal, in.Fill))
	dc.DrawCircle(cx, cy, in.Box.W/2)
	dc.Fill()

	dc.SetFontFace(r.fonts.Face(in.FontSize))
	dc.SetColor(placeholderTextColor)
	dc.DrawStringAnchored(in.Text, cx, cy, 0.5, 0.35)
}

func (r *Renderer) drawText(dc *gg.Context, pal theme.Palette, in layout.Instruction) {
	dc.SetFontFace(r.fonts.Face(in.FontSize))

	for i, line := range in.Lines {
		lx := in.Box.X
		if in.Center {
			lw, _ := dc.MeasureString(line)
			lx = in.Box.X + (in.Box.W-lw)/2
		}
		ly := in.Box.Y + in.FontSize + float64(i)*in.LineHeight

		if in.Shadow {
			dc.SetRGBA255(0, 0, 0, 90)
			dc.DrawString(line, lx+2, ly+2)
		}
		dc.SetColor(roleColor(pal, in.Fill))
		dc.DrawString(line, lx, ly)
	}
}

// drawEmojiScale draws the 5-slot rating scale: a dimmed full pass
// underneath, then a full-strength pass clipped to fillRatio of the total
// width.
func (r *Renderer) drawEmojiScale(dc *gg.Context, pal theme.Palette, in layout.Instruction) {
	dc.SetFontFace(r.fonts.Face(in.FontSize))
	slotW := in.Box.W / 5
	baseline := in.Box.Y + in.Box.H*0.5

	glyphs := func() {
		for i := 0; i < 5; i++ {
			cx := in.Box.X + slotW*float64(i) + slotW/2
			dc.DrawStringAnchored(in.Text, cx, baseline, 0.5, 0.35)
		}
	}

	// Dimmed full pass.
	c := roleColor(pal, in.Fill)
	dc.SetRGBA255(int(c.R), int(c.G), int(c.B), 64)
	glyphs()

	// Filled pass clipped to the fill ratio.
	fillW := in.FillRatio * in.Box.W
	if fillW <= 0 {
		return
	}
	dc.Push()
	dc.DrawRectangle(in.Box.X, in.Box.Y-in.Box.H, fillW, in.Box.H*3)
	dc.Clip()
	dc.SetColor(c)
	glyphs()
	dc.ResetClip()
	dc.Pop()
}

// roleColor maps a palette role to its concrete color.
func roleColor(pal theme.Palette, role layout.Role) color.RGBA {
	switch role {
	case layout.RoleForeground:
		return pal.Foreground
	case layout.RolePrimary:
		return pal.Primary
	case layout.RoleSecondary:
		return pal.Secondary
	case layout.RoleMuted:
		return pal.Muted
	case layout.RoleCard:
		return pal.Card
	case layout.RoleBorder:
		return pal.Border
	case layout.RoleAccent:
		return pal.Accent
	case layout.RoleShadow:
		return pal.Shadow
	default:
		return pal.Background
	}
}
