package ui

// RenderSignal wakes the UI loop when the window store changed. Notify
// never blocks and repeated notifications before the UI catches up collapse
// into one.
type RenderSignal struct {
	ch chan struct{}
}

func NewRenderSignal() *RenderSignal {
	return &RenderSignal{ch: make(chan struct{}, 1)}
}

// Notify requests a render pass.
func (s *RenderSignal) Notify() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// C is readable while a render pass is pending.
func (s *RenderSignal) C() <-chan struct{} {
	return s.ch
}
