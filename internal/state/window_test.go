package state

import (
	"fmt"
	"sync"
	"testing"

	"github.com/atomicstack/sway-titlebar/internal/sway"
)

func descriptors(n, focus int) []sway.Descriptor {
	out := make([]sway.Descriptor, n)
	for i := range out {
		out[i] = sway.Descriptor{ID: int64(100 + i), Name: fmt.Sprintf("window-%d", i), Focused: i == focus}
	}
	return out
}

func entryIDs(view View) []int64 {
	ids := make([]int64, len(view.Entries))
	for i, e := range view.Entries {
		ids[i] = e.ID
	}
	return ids
}

func TestWindowStoreLayoutCentresFocus(t *testing.T) {
	s := NewWindowStore()
	s.Replace(descriptors(10, 5), 5)
	view := s.Layout(DefaultLayout())
	if view.Begin != 3 || view.End != 8 {
		t.Fatalf("expected [3,8), got [%d,%d)", view.Begin, view.End)
	}
	if len(view.Entries) != 5 || view.Entries[0].ID != 103 {
		t.Fatalf("unexpected entries %v", entryIDs(view))
	}
	if view.EntryChars != 11 {
		t.Fatalf("expected 11 chars per entry, got %d", view.EntryChars)
	}
	if view.Entries[0].Label != "window-3" {
		t.Fatalf("expected untruncated short label, got %q", view.Entries[0].Label)
	}
	focused := 0
	for _, e := range view.Entries {
		if e.Focused {
			focused++
			if e.ID != 105 {
				t.Fatalf("expected window 105 focused, got %d", e.ID)
			}
		}
	}
	if focused != 1 {
		t.Fatalf("expected one focused entry, got %d", focused)
	}
}

func TestWindowStoreLayoutTruncatesLabels(t *testing.T) {
	s := NewWindowStore()
	s.Replace([]sway.Descriptor{{ID: 1, Name: "a very long terminal title", Focused: true}}, 0)
	view := s.Layout(Layout{MaxShown: 5, CharBudget: 20, PenaltyPerEntry: 6})
	// (20 - 6*1) / 2 = 7
	if view.Entries[0].Label != "a very " {
		t.Fatalf("expected 7 char label, got %q", view.Entries[0].Label)
	}
	if view.Entries[0].Name != "a very long terminal title" {
		t.Fatalf("expected full name preserved, got %q", view.Entries[0].Name)
	}

	view = s.Layout(Layout{MaxShown: 5, CharBudget: 1, PenaltyPerEntry: 50})
	if view.EntryChars != 0 || view.Entries[0].Label != "" {
		t.Fatalf("expected empty label for degenerate budget, got %q (%d)", view.Entries[0].Label, view.EntryChars)
	}
}

func TestWindowStoreLayoutCleansNames(t *testing.T) {
	s := NewWindowStore()
	s.Replace([]sway.Descriptor{{ID: 1, Name: "x\x1b]52;c;aGVsbG8=\ay", Focused: true}}, 0)
	view := s.Layout(DefaultLayout())
	entry := view.Entries[0]
	if entry.Name != "xy" || entry.Label != "xy" {
		t.Fatalf("expected escape sequence removed from name and label, got %q and %q", entry.Name, entry.Label)
	}
}

func TestWindowStoreWithoutFocusRendersNothing(t *testing.T) {
	s := NewWindowStore()
	s.Replace(nil, NoFocus)
	view := s.Layout(DefaultLayout())
	if len(view.Entries) != 0 || view.Total != 0 {
		t.Fatalf("expected empty view, got %#v", view)
	}
	if s.Scroll(ScrollForward) || s.Scroll(ScrollBackward) {
		t.Fatalf("expected scrolling an empty list to be a no-op")
	}

	s.Replace(descriptors(3, -1), 7)
	if s.Focus() != NoFocus {
		t.Fatalf("expected out-of-range focus to be stored as NoFocus, got %d", s.Focus())
	}
}

func TestWindowStoreScrollBounds(t *testing.T) {
	s := NewWindowStore()
	s.Replace(descriptors(10, 1), 1)
	s.Layout(DefaultLayout())

	moves := 0
	for i := 0; i < 20; i++ {
		if s.Scroll(ScrollForward) {
			moves++
			s.Layout(DefaultLayout())
		}
	}
	if moves != 5 {
		t.Fatalf("expected 5 forward moves, got %d", moves)
	}
	view := s.Layout(DefaultLayout())
	if view.Offset+view.End != 10 {
		t.Fatalf("expected range to end at the last window, got offset %d end %d", view.Offset, view.End)
	}
	if ids := entryIDs(view); ids[0] != 105 || ids[4] != 109 {
		t.Fatalf("unexpected entries after scrolling %v", ids)
	}

	moves = 0
	for i := 0; i < 20; i++ {
		if s.Scroll(ScrollBackward) {
			moves++
		}
	}
	if moves != 5 || s.Offset() != 0 {
		t.Fatalf("expected 5 backward moves back to offset 0, got %d moves offset %d", moves, s.Offset())
	}
	if s.Scroll(ScrollNone) {
		t.Fatalf("expected none direction to be a no-op")
	}
}

func TestWindowStoreScrollBackwardFromCentre(t *testing.T) {
	s := NewWindowStore()
	s.Replace(descriptors(10, 5), 5)
	s.Layout(DefaultLayout())
	for i := 0; i < 10; i++ {
		s.Scroll(ScrollBackward)
	}
	if s.Offset() != -3 {
		t.Fatalf("expected offset -3, got %d", s.Offset())
	}
	view := s.Layout(DefaultLayout())
	if view.Entries[0].ID != 100 {
		t.Fatalf("expected first window visible, got %v", entryIDs(view))
	}
}

func TestWindowStoreReplaceResetsOffset(t *testing.T) {
	s := NewWindowStore()
	windows := descriptors(10, 1)
	s.Replace(windows, 1)
	s.Layout(DefaultLayout())
	s.Scroll(ScrollForward)
	s.Scroll(ScrollForward)
	if s.Offset() != 2 {
		t.Fatalf("expected offset 2, got %d", s.Offset())
	}
	s.Replace(windows, 1)
	if s.Offset() != 0 {
		t.Fatalf("expected offset reset, got %d", s.Offset())
	}
	windows[0].Name = "mutated"
	if s.Windows()[0].Name == "mutated" {
		t.Fatalf("store must not alias the caller's slice")
	}
}

func TestWindowStoreConcurrentAccess(t *testing.T) {
	s := NewWindowStore()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			n := 1 + i%12
			s.Replace(descriptors(n, i%n), i%n)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			view := s.Layout(DefaultLayout())
			if view.Begin+view.Offset < 0 || view.End+view.Offset > view.Total {
				t.Errorf("range [%d,%d)+%d escapes %d windows", view.Begin, view.End, view.Offset, view.Total)
				return
			}
			if i%2 == 0 {
				s.Scroll(ScrollForward)
			} else {
				s.Scroll(ScrollBackward)
			}
		}
	}()
	wg.Wait()
}
