// Package textutil provides unicode-aware truncation for TUI rendering.
package textutil

import "github.com/mattn/go-runewidth"

// Ellipsis marks removed text.
const Ellipsis = "…"

// VisualWidth returns the number of terminal columns s occupies.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate cuts s to at most maxWidth columns, ending in an ellipsis when
// anything was removed.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisualWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}

// TruncateMiddle cuts s to at most maxWidth columns by removing text from
// the middle, so both the start and the end stay readable. Used for URLs,
// where the host and the file name matter most.
func TruncateMiddle(s string, maxWidth int) string {
	if VisualWidth(s) <= maxWidth {
		return s
	}
	avail := maxWidth - VisualWidth(Ellipsis)
	if avail < 2 {
		return Truncate(s, maxWidth)
	}
	head := (avail + 1) / 2
	tail := avail - head

	runes := []rune(s)
	var end []rune
	w := 0
	for i := len(runes) - 1; i >= 0; i-- {
		rw := runewidth.RuneWidth(runes[i])
		if w+rw > tail {
			break
		}
		end = append([]rune{runes[i]}, end...)
		w += rw
	}
	return runewidth.Truncate(s, head, "") + Ellipsis + string(end)
}
