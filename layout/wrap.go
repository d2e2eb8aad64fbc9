// Package layout computes share-image layouts.
//
// wrap.go implements the greedy word-wrap atom shared by every text block
// (title, description, review excerpt, tags line). It is a pure function
// parameterized by a text-measurement callback.
package layout

import "strings"

// Ellipsis is appended to the last line when wrapping truncates.
const Ellipsis = "…"

// MeasureFunc returns the rendered pixel width of a string at the font size
// the caller has already fixed.
type MeasureFunc func(s string) float64

// Wrap breaks text into at most maxLines lines no wider than maxWidth.
//
// Words accumulate greedily into a line until adding the next word would
// exceed maxWidth; the line is committed and a new one started. A single
// word wider than maxWidth is placed alone on its own line; that is the one
// case an emitted line may exceed the limit. When the line budget runs out
// before the words do, the ellipsis is appended to the last line, shedding
// trailing words as needed to keep it within maxWidth.
//
// Empty or whitespace-only text yields nil: callers skip the block entirely
// rather than reserving an empty bounding box.
func Wrap(text string, maxWidth float64, maxLines int, measure MeasureFunc) []string {
	words := strings.Fields(text)
	if len(words) == 0 || maxLines <= 0 || maxWidth <= 0 {
		return nil
	}

	var lines []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
			current = nil
		}
	}

	truncated := false
	for _, word := range words {
		candidate := word
		if len(current) > 0 {
			candidate = strings.Join(current, " ") + " " + word
		}

		if measure(candidate) <= maxWidth {
			current = append(current, word)
			continue
		}

		if len(current) == 0 {
			// Unbreakable word wider than the whole line: it stands alone.
			current = []string{word}
			continue
		}

		if len(lines) == maxLines-1 {
			// No room for another line; the remaining words are cut.
			truncated = true
			break
		}

		flush()
		current = []string{word}
	}
	flush()

	if len(lines) > maxLines {
		lines = lines[:maxLines]
		truncated = true
	}

	if truncated && len(lines) > 0 {
		lines[len(lines)-1] = appendEllipsis(lines[len(lines)-1], maxWidth, measure)
	}
	return lines
}

// appendEllipsis attaches the ellipsis to line, dropping trailing words
// while the result overflows maxWidth. A single word that cannot fit keeps
// its ellipsis anyway, matching the unbreakable-word exemption.
func appendEllipsis(line string, maxWidth float64, measure MeasureFunc) string {
	words := strings.Fields(line)
	for len(words) > 1 {
		candidate := strings.Join(words, " ") + Ellipsis
		if measure(candidate) <= maxWidth {
			return candidate
		}
		words = words[:len(words)-1]
	}
	return words[0] + Ellipsis
}
