// Package layout computes share-image layouts.
//
// engine.go implements the Engine organism: the single parameterized
// vertical flow that drives every variant. Variants differ only in the
// numbers carried by Option; the block flow, wrap, and aggregation
// primitives are shared.
//
// This organism composes:
//   - Wrap (atom, wrap.go) for every text block
//   - vibe.TopEmojis (molecule) for rating aggregation
//   - Option (options.go) for variant budgets
package layout

import (
	"fmt"
	"hash/fnv"

	"vibe_backend/vibe"
)

// PlaceholderGradients is the number of fixed gradient pairs available for
// image placeholders.
const PlaceholderGradients = 6

// Content is the immutable input to one layout computation. The bitmap
// presence flags are resolved by the composer before layout runs, so the
// engine stays pure: it decides placeholder vs. image without touching the
// network.
type Content struct {
	Vibe      vibe.Vibe
	HasImage  bool
	HasAvatar bool
	ShareURL  string
}

// Measurer measures rendered text width. assets.FontPool implements it;
// tests substitute a deterministic fake.
type Measurer interface {
	MeasureString(s string, size float64) float64
}

// Compute turns a layout option and content into an ordered instruction
// list. It is a pure function: identical inputs produce identical
// instructions.
//
// Flow (top to bottom): background, gradient header, card, author row,
// title, image (or placeholder), responses or description, review excerpt,
// tags, footer. A block whose text is empty is skipped entirely; no empty
// bounding box is reserved. Blocks that no longer fit the card's vertical
// budget are dropped from the bottom up.
func Compute(opt Option, content Content, measure Measurer) []Instruction {
	w := float64(opt.Width)
	h := float64(opt.Height)
	v := content.Vibe

	var ins []Instruction

	// Background.
	ins = append(ins, Instruction{
		Kind: KindFillRect,
		Box:  Rect{0, 0, w, h},
		Fill: RoleBackground,
	})

	// Gradient header band.
	headerH := h * 0.16
	ins = append(ins, Instruction{
		Kind:   KindGradient,
		Box:    Rect{0, 0, w, headerH},
		Fill:   RolePrimary,
		Stroke: RoleAccent,
	})

	// Card with shadow, overlapping the header.
	footerReserve := 110.0
	cardTop := headerH - 48
	card := Rect{opt.Margin, cardTop, w - 2*opt.Margin, h - footerReserve - cardTop - opt.Margin}
	ins = append(ins,
		Instruction{
			Kind:   KindRoundedRect,
			Box:    Rect{card.X + 6, card.Y + 8, card.W, card.H},
			Fill:   RoleShadow,
			Radius: opt.CardRadius,
		},
		Instruction{
			Kind:        KindRoundedRect,
			Box:         card,
			Fill:        RoleCard,
			Stroke:      RoleBorder,
			StrokeWidth: 2,
			Radius:      opt.CardRadius,
		},
	)

	pad := opt.Margin * 0.66
	x := card.X + pad
	contentW := card.W - 2*pad
	y := card.Y + pad
	bottom := card.Y + card.H - pad

	fits := func(need float64) bool { return y+need <= bottom }

	// Author row: avatar circle + display name + post date.
	avatarSize := opt.MetaSize * 3
	if fits(avatarSize) {
		avatar := Instruction{
			Kind:   KindImage,
			Box:    Rect{x, y, avatarSize, avatarSize},
			Slot:   SlotAvatar,
			Circle: true,
		}
		if !content.HasAvatar {
			avatar = Instruction{
				Kind: KindInitials,
				Box:  Rect{x, y, avatarSize, avatarSize},
				Text: v.Author.Initials(),
				Fill: RolePrimary,
				// Font scales with the circle.
				FontSize: avatarSize * 0.42,
			}
		}
		ins = append(ins, avatar)

		nameX := x + avatarSize + opt.MetaSize
		ins = append(ins, Instruction{
			Kind:       KindText,
			Box:        Rect{nameX, y + avatarSize*0.14, contentW - avatarSize - opt.MetaSize, opt.MetaSize * 1.3},
			Lines:      []string{v.Author.DisplayName()},
			Fill:       RoleForeground,
			FontSize:   opt.MetaSize,
			LineHeight: opt.MetaSize * 1.3,
		})
		if !v.CreatedAt.IsZero() {
			ins = append(ins, Instruction{
				Kind:       KindText,
				Box:        Rect{nameX, y + avatarSize*0.56, contentW - avatarSize - opt.MetaSize, opt.MetaSize * 1.2},
				Lines:      []string{v.CreatedAt.Format(dateFormat)},
				Fill:       RoleMuted,
				FontSize:   opt.MetaSize * 0.85,
				LineHeight: opt.MetaSize * 1.2,
			})
		}
		y += avatarSize + opt.MetaSize
	}

	// Title.
	titleLines := Wrap(v.Title, contentW, opt.MaxTitleLines, measureAt(measure, opt.TitleSize))
	if len(titleLines) > 0 {
		lh := opt.TitleSize * 1.18
		need := float64(len(titleLines)) * lh
		if fits(need) {
			ins = append(ins, Instruction{
				Kind:       KindText,
				Box:        Rect{x, y, contentW, need},
				Lines:      titleLines,
				Fill:       RoleForeground,
				FontSize:   opt.TitleSize,
				LineHeight: lh,
			})
			y += need + opt.BodySize*0.8
		}
	}

	// Content image, or its deterministic placeholder.
	if opt.IncludeImage && fits(opt.ImageHeight) {
		box := Rect{x, y, contentW, opt.ImageHeight}
		if content.HasImage {
			ins = append(ins, Instruction{
				Kind:   KindImage,
				Box:    box,
				Slot:   SlotContentImage,
				Radius: opt.CardRadius * 0.6,
			})
		} else {
			overlay := Wrap(v.Title, contentW*0.8, 2, measureAt(measure, opt.BodySize))
			ins = append(ins, Instruction{
				Kind:          KindPlaceholder,
				Box:           box,
				Radius:        opt.CardRadius * 0.6,
				GradientIndex: GradientIndex(v.Title),
				Lines:         overlay,
				FontSize:      opt.BodySize,
				LineHeight:    opt.BodySize * 1.3,
			})
		}
		y += opt.ImageHeight + opt.BodySize
	}

	// Responses (rating aggregation) when present and enabled; the
	// description otherwise.
	showResponses := opt.IncludeRatings && len(v.Ratings) > 0
	if showResponses {
		y = layoutResponses(&ins, v.Ratings, opt, x, y, contentW, fits)
	} else {
		bodyLines := Wrap(v.Description, contentW, opt.MaxBodyLines, measureAt(measure, opt.BodySize))
		if len(bodyLines) > 0 {
			lh := opt.BodySize * 1.4
			need := float64(len(bodyLines)) * lh
			if fits(need) {
				ins = append(ins, Instruction{
					Kind:       KindText,
					Box:        Rect{x, y, contentW, need},
					Lines:      bodyLines,
					Fill:       RoleSecondary,
					FontSize:   opt.BodySize,
					LineHeight: lh,
				})
				y += need + opt.BodySize*0.8
			}
		}
	}

	// Review excerpt.
	if opt.IncludeReview && v.HasReviews() {
		if review := v.FirstReview(); review != "" {
			quoted := "“" + review + "”"
			reviewLines := Wrap(quoted, contentW, 3, measureAt(measure, opt.BodySize))
			lh := opt.BodySize * 1.4
			need := float64(len(reviewLines)) * lh
			if len(reviewLines) > 0 && fits(need) {
				ins = append(ins, Instruction{
					Kind:       KindText,
					Box:        Rect{x, y, contentW, need},
					Lines:      reviewLines,
					Fill:       RoleMuted,
					FontSize:   opt.BodySize,
					LineHeight: lh,
				})
				y += need + opt.BodySize*0.8
			}
		}
	}

	// Tags, a single truncated line.
	if opt.IncludeTags && len(v.Tags) > 0 {
		var joined string
		for i, tag := range v.Tags {
			if i > 0 {
				joined += " "
			}
			joined += "#" + tag
		}
		tagLines := Wrap(joined, contentW, 1, measureAt(measure, opt.MetaSize))
		if len(tagLines) > 0 && fits(opt.MetaSize*1.3) {
			ins = append(ins, Instruction{
				Kind:       KindText,
				Box:        Rect{x, y, contentW, opt.MetaSize * 1.3},
				Lines:      tagLines,
				Fill:       RolePrimary,
				FontSize:   opt.MetaSize,
				LineHeight: opt.MetaSize * 1.3,
			})
		}
	}

	// Footer: share URL and watermark, centered under the card.
	footerLines := []string{"vibechecc"}
	if content.ShareURL != "" {
		footerLines = []string{content.ShareURL, "vibechecc"}
	}
	ins = append(ins, Instruction{
		Kind:       KindText,
		Box:        Rect{0, h - footerReserve + 10, w, footerReserve - 20},
		Lines:      footerLines,
		Fill:       RoleMuted,
		FontSize:   opt.MetaSize * 0.9,
		LineHeight: opt.MetaSize * 1.3,
		Center:     true,
	})

	return ins
}

// dateFormat matches the original card's short post date.
const dateFormat = "Jan 2, 2006"

// layoutResponses emits the most-rated emoji scale followed by the top
// group summary rows. The group budget comes from the variant option, so
// expanded draws the full list and the compact variants stop at the card
// summary. Returns the advanced cursor.
func layoutResponses(ins *[]Instruction, ratings []vibe.Rating, opt Option, x, y, contentW float64, fits func(float64) bool) float64 {
	k := opt.MaxEmojiGroups
	if k <= 0 {
		k = vibe.TopEmojiCardSummary
	}
	top := vibe.TopEmojis(ratings, k)
	if len(top) == 0 {
		return y
	}

	// Most-rated badge: the 5-slot scale carries the leading emoji filled
	// to the overall mean across every rating.
	most := top[0]
	overall := vibe.MeanRating(ratings)
	slot := opt.EmojiSize * 1.2
	scaleW := slot * 5
	if scaleW > contentW {
		slot = contentW / 5
		scaleW = contentW
	}
	if fits(slot + opt.BodySize) {
		*ins = append(*ins, Instruction{
			Kind:      KindEmojiScale,
			Box:       Rect{x, y, scaleW, slot},
			Text:      most.Emoji,
			FontSize:  opt.EmojiSize,
			FillRatio: clamp01(overall / 5),
			Fill:      RoleForeground,
		})
		summary := fmt.Sprintf("%.1f · %d %s", overall, len(ratings), pluralRatings(len(ratings)))
		*ins = append(*ins, Instruction{
			Kind:       KindText,
			Box:        Rect{x, y + slot + opt.MetaSize*0.3, contentW, opt.MetaSize * 1.3},
			Lines:      []string{summary},
			Fill:       RoleMuted,
			FontSize:   opt.MetaSize,
			LineHeight: opt.MetaSize * 1.3,
		})
		y += slot + opt.MetaSize*1.8
	}

	// Remaining summary rows.
	lh := opt.BodySize * 1.4
	for _, group := range top[1:] {
		if !fits(lh) {
			break
		}
		row := fmt.Sprintf("%s  %.1f · %d %s", group.Emoji, group.Mean, group.Count, pluralRatings(group.Count))
		*ins = append(*ins, Instruction{
			Kind:       KindText,
			Box:        Rect{x, y, contentW, lh},
			Lines:      []string{row},
			Fill:       RoleSecondary,
			FontSize:   opt.BodySize,
			LineHeight: lh,
		})
		y += lh
	}
	return y + opt.BodySize*0.6
}

// GradientIndex selects the placeholder gradient for a title: an FNV-1a
// hash of the title modulo the gradient count. Deterministic so the same
// vibe always gets the same placeholder.
func GradientIndex(title string) int {
	h := fnv.New32a()
	h.Write([]byte(title))
	return int(h.Sum32() % PlaceholderGradients)
}

// measureAt binds a Measurer to a font size, producing the MeasureFunc
// Wrap expects.
func measureAt(m Measurer, size float64) MeasureFunc {
	return func(s string) float64 { return m.MeasureString(s, size) }
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func pluralRatings(n int) string {
	if n == 1 {
		return "rating"
	}
	return "ratings"
}
