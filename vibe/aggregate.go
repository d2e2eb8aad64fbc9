// Package vibe defines the content data model consumed by the share-image
// pipeline.
//
// aggregate.go implements emoji rating aggregation. This is a pure molecule
// with no dependencies beyond the types in this package.
package vibe

import "sort"

// EmojiGroup is the aggregate of all ratings sharing one emoji.
type EmojiGroup struct {
	Emoji string
	Count int
	Mean  float64
}

// Top-K sizes used by the layout variants: the compact card summary and
// the expanded full list.
const (
	TopEmojiCardSummary = 3
	TopEmojiFullList    = 5
)

// TopEmojis groups ratings by emoji, computes count and mean value per
// group, and returns the top k groups by descending count.
//
// Tie-break is deterministic: groups with equal counts keep first-seen
// order from the input rating list. An empty rating list yields an empty
// result. The sum of Count across all groups (before the top-k cut) always
// equals len(ratings).
//
// Example:
//
//	groups := TopEmojis(ratings, TopEmojiCardSummary)
func TopEmojis(ratings []Rating, k int) []EmojiGroup {
	if len(ratings) == 0 || k <= 0 {
		return nil
	}

	index := make(map[string]int, len(ratings))
	groups := make([]EmojiGroup, 0, len(ratings))
	sums := make([]float64, 0, len(ratings))

	for _, r := range ratings {
		i, seen := index[r.Emoji]
		if !seen {
			index[r.Emoji] = len(groups)
			groups = append(groups, EmojiGroup{Emoji: r.Emoji})
			sums = append(sums, 0)
			i = len(groups) - 1
		}
		groups[i].Count++
		sums[i] += clampRating(r.Value)
	}

	for i := range groups {
		groups[i].Mean = sums[i] / float64(groups[i].Count)
	}

	// Stable sort preserves first-seen order between equal counts.
	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Count > groups[b].Count
	})

	if k < len(groups) {
		groups = groups[:k]
	}
	return groups
}

// MeanRating returns the mean of all rating values, clamped to [1, 5],
// or 0 when the list is empty.
func MeanRating(ratings []Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range ratings {
		sum += clampRating(r.Value)
	}
	return sum / float64(len(ratings))
}

// clampRating bounds a rating value to the valid 1-5 range. Out-of-range
// input is malformed upstream data, not an error here.
func clampRating(v float64) float64 {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}
