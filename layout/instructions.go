// Package layout computes share-image layouts: it turns a content item and
// a layout option into an ordered list of draw instructions with bounding
// boxes. Nothing in this package draws, fetches, or reads globals; the
// renderer interprets the output.
//
// instructions.go defines the instruction vocabulary shared with the
// renderer. Colors are referenced by palette role, not concrete value, so
// one instruction list serves any resolved palette.
package layout

// Rect is an axis-aligned bounding box in canvas pixels.
type Rect struct {
	X, Y, W, H float64
}

// Role names a palette color. The renderer maps roles to concrete colors
// from the resolved theme palette.
type Role int

const (
	RoleBackground Role = iota
	RoleForeground
	RolePrimary
	RoleSecondary
	RoleMuted
	RoleCard
	RoleBorder
	RoleAccent
	RoleShadow
)

// Kind discriminates instruction types.
type Kind int

const (
	// KindFillRect fills Box with Fill.
	KindFillRect Kind = iota

	// KindRoundedRect fills Box with Fill at Radius; Stroke draws a border
	// when StrokeWidth > 0.
	KindRoundedRect

	// KindGradient fills Box with a vertical linear gradient Fill -> Stroke.
	KindGradient

	// KindImage draws the bitmap in Slot cover-cropped into Box, clipped to
	// Radius (Circle clips to the inscribed circle instead).
	KindImage

	// KindPlaceholder draws the deterministic gradient placeholder selected
	// by GradientIndex with Lines overlaid in contrasting color.
	KindPlaceholder

	// KindInitials draws Text as avatar initials centered on a solid circle
	// inscribed in Box.
	KindInitials

	// KindText draws pre-wrapped Lines starting at Box origin, one per
	// LineHeight, in Fill at FontSize. Shadow adds a drop shadow pass.
	KindText

	// KindEmojiScale draws the 5-slot emoji rating scale in Box: a dimmed
	// full pass under a filled pass clipped to FillRatio of the total width.
	KindEmojiScale
)

// Slot names a loaded bitmap for KindImage.
type Slot int

const (
	SlotContentImage Slot = iota
	SlotAvatar
)

// Instruction is one draw operation. Which fields are meaningful depends on
// Kind; unused fields are zero.
type Instruction struct {
	Kind Kind
	Box  Rect

	// Fill is the primary color role; Stroke the secondary (border or
	// gradient end).
	Fill        Role
	Stroke      Role
	StrokeWidth float64

	// Radius is the corner radius for rounded rects and image clips.
	Radius float64

	// Circle clips KindImage to the inscribed circle.
	Circle bool

	// Slot selects the bitmap for KindImage.
	Slot Slot

	// Text is the single-run text for KindInitials and the emoji glyph for
	// KindEmojiScale.
	Text string

	// Lines are pre-wrapped text lines for KindText and KindPlaceholder.
	Lines []string

	FontSize   float64
	LineHeight float64
	Shadow     bool

	// Center horizontally centers KindText lines within Box.
	Center bool

	// GradientIndex selects one of the fixed placeholder gradients.
	GradientIndex int

	// FillRatio is the filled proportion of the emoji scale, in [0,1].
	FillRatio float64
}
