package state

import "github.com/atomicstack/sway-titlebar/internal/sway"

// Layout holds the sizing knobs of the titlebar strip.
type Layout struct {
	MaxShown        int
	CharBudget      int
	PenaltyPerEntry int
}

// DefaultLayout mirrors the documented defaults.
func DefaultLayout() Layout {
	return Layout{MaxShown: 5, CharBudget: 100, PenaltyPerEntry: 6}
}

// ComputeRange returns the half-open range [begin, end) of windows eligible
// for display. The focused window is centred where possible; near either
// edge the range is pinned to that edge.
func ComputeRange(count, focus, maxShown int) (begin, end int) {
	half := maxShown / 2
	switch {
	case focus <= half:
		begin = 0
		end = min(count, maxShown)
	case count-focus <= half:
		end = count
		begin = max(0, end-maxShown)
	default:
		begin = focus - half
		end = begin + maxShown
	}
	return begin, end
}

// EntryChars returns the label width each of entries buttons may use. The
// result is never negative; pathological budgets yield zero.
func EntryChars(charBudget, penaltyPerEntry, entries int) int {
	return max(0, (charBudget-penaltyPerEntry*entries)/(entries+1))
}

// TruncateLabel cleans name and hard-cuts it to width characters. No
// ellipsis is added.
func TruncateLabel(name string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(sway.CleanName(name))
	if len(runes) > width {
		runes = runes[:width]
	}
	return string(runes)
}
