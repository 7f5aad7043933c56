// Package ui contains the Bubble Tea program that draws the sway titlebar.
//
// Message flow:
//   - The tree synchronizer (internal/data/dispatcher) runs on the ipc
//     worker and raises a RenderSignal after each tree update. Signals
//     coalesce: the channel holds at most one pending wake-up.
//   - waitForRender turns that signal into a renderMsg. Handling it
//     rebuilds the button set from the window store's current layout, so
//     the model always draws the latest state rather than a snapshot that
//     travelled with the signal.
//   - Mouse and key messages are routed through a typed handler registry.
//     Wheel and arrow input scroll the strip, a left click focuses the
//     window under the pointer, motion tracks the hovered button for the
//     tooltip line.
//
// State ownership:
//   - state.WindowStore owns the window list, focus index, scroll offset and
//     visible range behind one mutex.
//   - The model owns the button set. It is cleared and rebuilt on every
//     render pass.
package ui
