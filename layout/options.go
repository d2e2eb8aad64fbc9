// Package layout computes share-image layouts.
//
// options.go defines the named layout variants and their feature toggles,
// plus the optional YAML preset overrides. Selecting a variant is a pure
// configuration choice with no side effects.
package layout

import (
	"fmt"
	"os"

	"vibe_backend/vibe"

	"gopkg.in/yaml.v3"
)

// Variant names a layout configuration.
type Variant string

const (
	VariantExpanded Variant = "expanded"
	VariantMinimal  Variant = "minimal"
	VariantSquare   Variant = "square"
	VariantWide     Variant = "wide"
)

// Fixed output pixel sizes per aspect ratio.
const (
	StoryWidth  = 1080
	StoryHeight = 1920
	SquareSize  = 1080
	WideWidth   = 1920
	WideHeight  = 1080
)

// Option carries everything variant-specific: which blocks appear, the
// target size, and the vertical/typographic budgets. All variants share the
// same wrap and aggregation primitives; only these numbers differ.
type Option struct {
	Variant Variant `yaml:"-"`

	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	IncludeImage   bool `yaml:"includeImage"`
	IncludeRatings bool `yaml:"includeRatings"`
	IncludeReview  bool `yaml:"includeReview"`
	IncludeTags    bool `yaml:"includeTags"`

	Margin         float64 `yaml:"margin"`
	CardRadius     float64 `yaml:"cardRadius"`
	TitleSize      float64 `yaml:"titleSize"`
	BodySize       float64 `yaml:"bodySize"`
	MetaSize       float64 `yaml:"metaSize"`
	EmojiSize      float64 `yaml:"emojiSize"`
	MaxTitleLines  int     `yaml:"maxTitleLines"`
	MaxBodyLines   int     `yaml:"maxBodyLines"`
	MaxEmojiGroups int     `yaml:"maxEmojiGroups"`
	ImageHeight    float64 `yaml:"imageHeight"`
}

// OptionFor returns the built-in configuration for a variant. Unknown
// variants fall back to expanded, matching the original default tab.
func OptionFor(v Variant) Option {
	switch v {
	case VariantMinimal:
		return Option{
			Variant: VariantMinimal,
			Width:   StoryWidth, Height: StoryHeight,
			IncludeImage: true,
			Margin:       80, CardRadius: 48,
			TitleSize: 64, BodySize: 40, MetaSize: 32, EmojiSize: 56,
			MaxTitleLines: 3, MaxBodyLines: 6,
			ImageHeight: 620,
		}
	case VariantSquare:
		return Option{
			Variant: VariantSquare,
			Width:   SquareSize, Height: SquareSize,
			IncludeImage: true, IncludeRatings: true, IncludeTags: true,
			Margin: 56, CardRadius: 40,
			TitleSize: 52, BodySize: 34, MetaSize: 28, EmojiSize: 44,
			MaxTitleLines: 2, MaxBodyLines: 3, MaxEmojiGroups: vibe.TopEmojiCardSummary,
			ImageHeight: 380,
		}
	case VariantWide:
		return Option{
			Variant: VariantWide,
			Width:   WideWidth, Height: WideHeight,
			IncludeImage: true, IncludeRatings: true, IncludeTags: true,
			Margin: 72, CardRadius: 40,
			TitleSize: 56, BodySize: 36, MetaSize: 30, EmojiSize: 48,
			MaxTitleLines: 2, MaxBodyLines: 3, MaxEmojiGroups: vibe.TopEmojiCardSummary,
			ImageHeight: 420,
		}
	default:
		return Option{
			Variant: VariantExpanded,
			Width:   StoryWidth, Height: StoryHeight,
			IncludeImage: true, IncludeRatings: true, IncludeReview: true, IncludeTags: true,
			Margin: 72, CardRadius: 48,
			TitleSize: 64, BodySize: 40, MetaSize: 32, EmojiSize: 56,
			MaxTitleLines: 3, MaxBodyLines: 5, MaxEmojiGroups: vibe.TopEmojiFullList,
			ImageHeight: 540,
		}
	}
}

// ParseVariant normalizes a raw variant string, defaulting to expanded.
func ParseVariant(raw string) Variant {
	switch Variant(raw) {
	case VariantMinimal, VariantSquare, VariantWide, VariantExpanded:
		return Variant(raw)
	default:
		return VariantExpanded
	}
}

// Presets holds per-variant overrides loaded from YAML. Only fields present
// in the file override the built-in values; zero values are ignored.
type Presets struct {
	overrides map[Variant]Option
}

// LoadPresets reads a YAML preset file of the form:
//
//	square:
//	  titleSize: 48
//	  maxBodyLines: 2
//
// A missing path yields empty presets; a malformed file is an error.
func LoadPresets(path string) (*Presets, error) {
	p := &Presets{overrides: make(map[Variant]Option)}
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return nil, fmt.Errorf("layout: failed to read presets: %w", err)
	}

	var raw map[string]Option
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("layout: failed to parse presets: %w", err)
	}

	for name, opt := range raw {
		p.overrides[ParseVariant(name)] = opt
	}
	return p, nil
}

// Apply returns the configuration for a variant with any loaded overrides
// merged over the built-in values.
func (p *Presets) Apply(v Variant) Option {
	opt := OptionFor(v)
	if p == nil {
		return opt
	}
	ov, ok := p.overrides[v]
	if !ok {
		return opt
	}

	if ov.Width > 0 {
		opt.Width = ov.Width
	}
	if ov.Height > 0 {
		opt.Height = ov.Height
	}
	if ov.Margin > 0 {
		opt.Margin = ov.Margin
	}
	if ov.CardRadius > 0 {
		opt.CardRadius = ov.CardRadius
	}
	if ov.TitleSize > 0 {
		opt.TitleSize = ov.TitleSize
	}
	if ov.BodySize > 0 {
		opt.BodySize = ov.BodySize
	}
	if ov.MetaSize > 0 {
		opt.MetaSize = ov.MetaSize
	}
	if ov.EmojiSize > 0 {
		opt.EmojiSize = ov.EmojiSize
	}
	if ov.MaxTitleLines > 0 {
		opt.MaxTitleLines = ov.MaxTitleLines
	}
	if ov.MaxBodyLines > 0 {
		opt.MaxBodyLines = ov.MaxBodyLines
	}
	if ov.MaxEmojiGroups > 0 {
		opt.MaxEmojiGroups = ov.MaxEmojiGroups
	}
	if ov.ImageHeight > 0 {
		opt.ImageHeight = ov.ImageHeight
	}
	return opt
}
