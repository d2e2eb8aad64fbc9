package layout

import (
	"os"
	"path/filepath"
	"testing"

	"vibe_backend/vibe"
)

func TestOptionFor_VariantSizes(t *testing.T) {
	tests := []struct {
		variant Variant
		width   int
		height  int
	}{
		{VariantExpanded, StoryWidth, StoryHeight},
		{VariantMinimal, StoryWidth, StoryHeight},
		{VariantSquare, SquareSize, SquareSize},
		{VariantWide, WideWidth, WideHeight},
	}

	for _, tt := range tests {
		t.Run(string(tt.variant), func(t *testing.T) {
			opt := OptionFor(tt.variant)
			if opt.Width != tt.width || opt.Height != tt.height {
				t.Errorf("size = %dx%d, want %dx%d", opt.Width, opt.Height, tt.width, tt.height)
			}
		})
	}
}

func TestOptionFor_FeatureToggles(t *testing.T) {
	minimal := OptionFor(VariantMinimal)
	if !minimal.IncludeImage {
		t.Error("minimal should include the image")
	}
	if minimal.IncludeRatings || minimal.IncludeReview || minimal.IncludeTags {
		t.Error("minimal should not include ratings, review, or tags")
	}

	expanded := OptionFor(VariantExpanded)
	if !expanded.IncludeImage || !expanded.IncludeRatings || !expanded.IncludeReview || !expanded.IncludeTags {
		t.Error("expanded should include every block")
	}

	square := OptionFor(VariantSquare)
	if !square.IncludeRatings || square.IncludeReview {
		t.Error("square should include ratings but not the review excerpt")
	}
}

func TestOptionFor_EmojiGroupBudgets(t *testing.T) {
	if got := OptionFor(VariantExpanded).MaxEmojiGroups; got != vibe.TopEmojiFullList {
		t.Errorf("expanded MaxEmojiGroups = %d, want the full list", got)
	}
	if got := OptionFor(VariantSquare).MaxEmojiGroups; got != vibe.TopEmojiCardSummary {
		t.Errorf("square MaxEmojiGroups = %d, want the card summary", got)
	}
	if got := OptionFor(VariantWide).MaxEmojiGroups; got != vibe.TopEmojiCardSummary {
		t.Errorf("wide MaxEmojiGroups = %d, want the card summary", got)
	}
}

func TestParseVariant(t *testing.T) {
	if got := ParseVariant("square"); got != VariantSquare {
		t.Errorf("ParseVariant(square) = %q", got)
	}
	if got := ParseVariant(""); got != VariantExpanded {
		t.Errorf("empty variant should default to expanded, got %q", got)
	}
	if got := ParseVariant("bogus"); got != VariantExpanded {
		t.Errorf("unknown variant should default to expanded, got %q", got)
	}
}

func TestLoadPresets_MissingFile(t *testing.T) {
	p, err := LoadPresets("")
	if err != nil {
		t.Fatalf("empty path should not error: %v", err)
	}
	if got := p.Apply(VariantSquare); got.TitleSize != OptionFor(VariantSquare).TitleSize {
		t.Error("empty presets should return built-in values")
	}

	p, err = LoadPresets(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if p == nil {
		t.Fatal("missing file should yield empty presets")
	}
}

func TestLoadPresets_OverridesMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	content := "square:\n  titleSize: 48\n  maxBodyLines: 2\n  maxEmojiGroups: 2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets: %v", err)
	}

	opt := p.Apply(VariantSquare)
	if opt.TitleSize != 48 {
		t.Errorf("TitleSize = %v, want 48", opt.TitleSize)
	}
	if opt.MaxBodyLines != 2 {
		t.Errorf("MaxBodyLines = %d, want 2", opt.MaxBodyLines)
	}
	if opt.MaxEmojiGroups != 2 {
		t.Errorf("MaxEmojiGroups = %d, want 2", opt.MaxEmojiGroups)
	}
	// Untouched fields keep built-ins.
	builtin := OptionFor(VariantSquare)
	if opt.Width != builtin.Width || opt.BodySize != builtin.BodySize {
		t.Error("fields absent from the preset file should keep built-in values")
	}

	// Other variants are unaffected.
	if got := p.Apply(VariantExpanded); got.TitleSize != OptionFor(VariantExpanded).TitleSize {
		t.Error("expanded should be untouched by square overrides")
	}
}

func TestLoadPresets_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte(":::not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPresets(path); err == nil {
		t.Error("malformed YAML should be an error")
	}
}

func TestPresets_NilReceiverIsBuiltins(t *testing.T) {
	var p *Presets
	opt := p.Apply(VariantMinimal)
	if opt.Width != StoryWidth {
		t.Error("nil presets should return built-in option")
	}
}
