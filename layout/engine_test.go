package layout

import (
	"reflect"
	"testing"
	"time"

	"vibe_backend/vibe"
)

// fixedMeasurer measures every rune at a fixed fraction of the font size,
// deterministic and font-free.
type fixedMeasurer struct{}

func (fixedMeasurer) MeasureString(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * 0.55
}

func sampleVibe() vibe.Vibe {
	return vibe.Vibe{
		Title:       "late night ramen run",
		Description: "found the best tonkotsu spot in the city, open until 3am",
		ImageURL:    "https://cdn.example.com/ramen.jpg",
		Tags:        []string{"food", "latenight"},
		CreatedAt:   time.Date(2026, 3, 14, 22, 0, 0, 0, time.UTC),
		Author:      vibe.User{Username: "noodle_fan"},
		Ratings: []vibe.Rating{
			{Emoji: "🔥", Value: 5, Review: "instantly jealous"},
			{Emoji: "🔥", Value: 4},
			{Emoji: "😋", Value: 5},
		},
	}
}

func kinds(ins []Instruction) map[Kind]int {
	counts := make(map[Kind]int)
	for _, i := range ins {
		counts[i.Kind]++
	}
	return counts
}

func TestCompute_ExpandedIncludesAllBlocks(t *testing.T) {
	content := Content{Vibe: sampleVibe(), HasImage: true, HasAvatar: false, ShareURL: "vibechecc.io/v/abc"}
	ins := Compute(OptionFor(VariantExpanded), content, fixedMeasurer{})

	counts := kinds(ins)
	if counts[KindFillRect] == 0 {
		t.Error("missing background fill")
	}
	if counts[KindGradient] == 0 {
		t.Error("missing header gradient")
	}
	if counts[KindRoundedRect] < 2 {
		t.Error("missing card or its shadow")
	}
	if counts[KindInitials] == 0 {
		t.Error("author without avatar bitmap should get initials")
	}
	if counts[KindImage] == 0 {
		t.Error("content image should be drawn when the bitmap is present")
	}
	if counts[KindEmojiScale] == 0 {
		t.Error("expanded with ratings should include the emoji scale")
	}
}

func TestCompute_MinimalOmitsRatingsAndTags(t *testing.T) {
	content := Content{Vibe: sampleVibe(), HasImage: true}
	ins := Compute(OptionFor(VariantMinimal), content, fixedMeasurer{})

	counts := kinds(ins)
	if counts[KindEmojiScale] != 0 {
		t.Error("minimal must not include the emoji scale")
	}
	// Minimal still shows the description in place of responses.
	foundBody := false
	for _, i := range ins {
		if i.Kind == KindText && i.Fill == RoleSecondary {
			foundBody = true
		}
	}
	if !foundBody {
		t.Error("minimal should fall back to the description block")
	}
}

func TestCompute_PlaceholderWhenImageMissing(t *testing.T) {
	content := Content{Vibe: sampleVibe(), HasImage: false}
	ins := Compute(OptionFor(VariantExpanded), content, fixedMeasurer{})

	var placeholder *Instruction
	for i := range ins {
		if ins[i].Kind == KindPlaceholder {
			placeholder = &ins[i]
		}
		if ins[i].Kind == KindImage && ins[i].Slot == SlotContentImage {
			t.Error("no content-image instruction should be emitted without a bitmap")
		}
	}
	if placeholder == nil {
		t.Fatal("missing placeholder instruction")
	}
	if placeholder.GradientIndex != GradientIndex(sampleVibe().Title) {
		t.Error("placeholder gradient must derive from the title hash")
	}
	if len(placeholder.Lines) == 0 {
		t.Error("placeholder should carry the title overlay lines")
	}
}

func TestCompute_RatingsFallBackToDescription(t *testing.T) {
	v := sampleVibe()
	v.Ratings = nil
	ins := Compute(OptionFor(VariantExpanded), Content{Vibe: v, HasImage: true}, fixedMeasurer{})

	if kinds(ins)[KindEmojiScale] != 0 {
		t.Error("no ratings means no emoji scale")
	}
}

func TestCompute_EmojiScaleFillRatio(t *testing.T) {
	v := sampleVibe()
	// Single emoji with mean 4.5: fill ratio 0.9.
	v.Ratings = []vibe.Rating{
		{Emoji: "🔥", Value: 4},
		{Emoji: "🔥", Value: 5},
	}
	ins := Compute(OptionFor(VariantExpanded), Content{Vibe: v, HasImage: true}, fixedMeasurer{})

	for _, i := range ins {
		if i.Kind == KindEmojiScale {
			if i.FillRatio < 0.89 || i.FillRatio > 0.91 {
				t.Errorf("FillRatio = %v, want 0.9", i.FillRatio)
			}
			if i.Text != "🔥" {
				t.Errorf("scale emoji = %q, want 🔥", i.Text)
			}
			return
		}
	}
	t.Fatal("missing emoji scale instruction")
}

func TestCompute_ExpandedDrawsFullEmojiList(t *testing.T) {
	v := sampleVibe()
	v.Ratings = []vibe.Rating{
		{Emoji: "🔥", Value: 5}, {Emoji: "🔥", Value: 4}, {Emoji: "🔥", Value: 5},
		{Emoji: "😋", Value: 5}, {Emoji: "😋", Value: 4},
		{Emoji: "🤤", Value: 3},
		{Emoji: "😍", Value: 5},
		{Emoji: "🫶", Value: 4},
	}
	ins := Compute(OptionFor(VariantExpanded), Content{Vibe: v, HasImage: true}, fixedMeasurer{})

	// The badge covers the leading group; every remaining group in the
	// full list gets its own summary row.
	rows := 0
	for _, i := range ins {
		if i.Kind == KindText && i.Fill == RoleSecondary {
			rows++
		}
	}
	if want := vibe.TopEmojiFullList - 1; rows != want {
		t.Errorf("summary rows = %d, want %d", rows, want)
	}
}

func TestCompute_EmojiScaleUsesOverallMean(t *testing.T) {
	v := sampleVibe()
	// Leading group mean is 5.0; the overall mean across all three
	// ratings is 11/15 of the scale.
	v.Ratings = []vibe.Rating{
		{Emoji: "🔥", Value: 5},
		{Emoji: "🔥", Value: 5},
		{Emoji: "😐", Value: 1},
	}
	ins := Compute(OptionFor(VariantExpanded), Content{Vibe: v, HasImage: true}, fixedMeasurer{})

	foundScale := false
	foundSummary := false
	for _, i := range ins {
		if i.Kind == KindEmojiScale {
			foundScale = true
			if i.FillRatio < 0.72 || i.FillRatio > 0.75 {
				t.Errorf("FillRatio = %v, want overall mean fill near 0.733", i.FillRatio)
			}
		}
		if i.Kind == KindText && len(i.Lines) == 1 && i.Lines[0] == "3.7 · 3 ratings" {
			foundSummary = true
		}
	}
	if !foundScale {
		t.Fatal("missing emoji scale instruction")
	}
	if !foundSummary {
		t.Error("summary line should carry the overall mean and total count")
	}
}

func TestCompute_EmptyBlocksAreSkipped(t *testing.T) {
	v := vibe.Vibe{Title: "only a title", Author: vibe.User{Username: "x"}}
	ins := Compute(OptionFor(VariantExpanded), Content{Vibe: v}, fixedMeasurer{})

	for _, i := range ins {
		if i.Kind == KindText {
			for _, line := range i.Lines {
				if line == "" {
					t.Error("no empty text line should be emitted")
				}
			}
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	content := Content{Vibe: sampleVibe(), HasImage: true, ShareURL: "vibechecc.io/v/abc"}
	first := Compute(OptionFor(VariantSquare), content, fixedMeasurer{})
	for i := 0; i < 10; i++ {
		again := Compute(OptionFor(VariantSquare), content, fixedMeasurer{})
		if !reflect.DeepEqual(first, again) {
			t.Fatal("Compute is not deterministic for identical inputs")
		}
	}
}

func TestCompute_AvatarBitmapUsedWhenPresent(t *testing.T) {
	content := Content{Vibe: sampleVibe(), HasAvatar: true}
	ins := Compute(OptionFor(VariantExpanded), content, fixedMeasurer{})

	foundAvatar := false
	for _, i := range ins {
		if i.Kind == KindImage && i.Slot == SlotAvatar {
			foundAvatar = true
			if !i.Circle {
				t.Error("avatar image should be circle-clipped")
			}
		}
		if i.Kind == KindInitials {
			t.Error("initials must not appear when the avatar bitmap loaded")
		}
	}
	if !foundAvatar {
		t.Error("missing avatar image instruction")
	}
}

func TestCompute_FooterAlwaysLast(t *testing.T) {
	content := Content{Vibe: sampleVibe(), ShareURL: "vibechecc.io/v/abc"}
	ins := Compute(OptionFor(VariantExpanded), content, fixedMeasurer{})

	last := ins[len(ins)-1]
	if last.Kind != KindText || !last.Center {
		t.Fatalf("last instruction should be the centered footer, got kind %d", last.Kind)
	}
	if len(last.Lines) != 2 || last.Lines[0] != "vibechecc.io/v/abc" {
		t.Errorf("footer lines = %v, want share URL then watermark", last.Lines)
	}
}

func TestGradientIndex_StableAndBounded(t *testing.T) {
	titles := []string{"", "a", "late night ramen run", "ANOTHER ONE"}
	for _, title := range titles {
		idx := GradientIndex(title)
		if idx < 0 || idx >= PlaceholderGradients {
			t.Errorf("GradientIndex(%q) = %d, out of range", title, idx)
		}
		if again := GradientIndex(title); again != idx {
			t.Errorf("GradientIndex(%q) unstable: %d then %d", title, idx, again)
		}
	}
}
