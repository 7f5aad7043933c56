package state

import (
	"sync"

	"github.com/atomicstack/sway-titlebar/internal/sway"
)

// NoFocus marks a window list without a focused entry.
const NoFocus = -1

// ScrollDirection is the normalised direction of a scroll gesture.
type ScrollDirection int

const (
	ScrollNone ScrollDirection = iota
	ScrollForward
	ScrollBackward
)

// Entry is one window eligible for a button in the current view.
type Entry struct {
	ID      int64
	Name    string
	Label   string
	Focused bool
}

// View is the result of a layout pass: the windows to draw plus the range
// bookkeeping that produced them.
type View struct {
	Entries    []Entry
	Begin      int
	End        int
	Offset     int
	EntryChars int
	Total      int
}

// WindowStore holds the windows of the focused workspace together with the
// focus index, scroll offset and the last computed range. A single mutex
// guards all of it; the tree synchronizer writes from the ipc worker while
// layout and scrolling run on the UI loop.
type WindowStore struct {
	mu      sync.Mutex
	windows []sway.Descriptor
	focus   int
	offset  int
	begin   int
	end     int
}

func NewWindowStore() *WindowStore {
	return &WindowStore{focus: NoFocus}
}

// Replace installs a freshly fetched window list and resets the scroll
// offset. A focus outside the list is stored as NoFocus.
func (s *WindowStore) Replace(windows []sway.Descriptor, focus int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows = cloneDescriptors(windows)
	if focus < 0 || focus >= len(s.windows) {
		focus = NoFocus
	}
	s.focus = focus
	s.offset = 0
	s.begin, s.end = 0, 0
}

// Windows returns a copy of the current list.
func (s *WindowStore) Windows() []sway.Descriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneDescriptors(s.windows)
}

// Focus returns the focused index or NoFocus.
func (s *WindowStore) Focus() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focus
}

// Offset returns the current scroll offset.
func (s *WindowStore) Offset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offset
}

// Layout recomputes the visible range for l and returns the entries inside
// [begin+offset, end+offset). A list without focus renders nothing.
func (s *WindowStore) Layout(l Layout) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.windows)
	if s.focus == NoFocus || count == 0 {
		s.begin, s.end = 0, 0
		return View{Total: count}
	}
	s.begin, s.end = ComputeRange(count, s.focus, l.MaxShown)
	s.clampOffset(count)

	entries := s.end - s.begin
	width := EntryChars(l.CharBudget, l.PenaltyPerEntry, entries)
	view := View{
		Begin:      s.begin,
		End:        s.end,
		Offset:     s.offset,
		EntryChars: width,
		Total:      count,
		Entries:    make([]Entry, 0, entries),
	}
	for _, w := range s.windows[s.begin+s.offset : s.end+s.offset] {
		name := sway.CleanName(w.Name)
		view.Entries = append(view.Entries, Entry{
			ID:      w.ID,
			Name:    name,
			Label:   TruncateLabel(name, width),
			Focused: w.Focused,
		})
	}
	return view
}

// Scroll applies a gesture to the offset and reports whether it moved.
// Forward stops once the range reaches the last window, backward once it
// reaches the first.
func (s *WindowStore) Scroll(dir ScrollDirection) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.end == s.begin {
		return false
	}
	switch dir {
	case ScrollForward:
		if s.offset+s.end < len(s.windows) {
			s.offset++
			return true
		}
	case ScrollBackward:
		if s.offset+s.begin > 0 {
			s.offset--
			return true
		}
	}
	return false
}

// clampOffset keeps [begin+offset, end+offset) inside the list. Scroll
// enforces the same bounds against the previous range.
func (s *WindowStore) clampOffset(count int) {
	if s.offset > count-s.end {
		s.offset = count - s.end
	}
	if s.offset < -s.begin {
		s.offset = -s.begin
	}
}

func cloneDescriptors(windows []sway.Descriptor) []sway.Descriptor {
	if len(windows) == 0 {
		return nil
	}
	dup := make([]sway.Descriptor, len(windows))
	copy(dup, windows)
	return dup
}
