package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/sway-titlebar/internal/backend"
	"github.com/atomicstack/sway-titlebar/internal/data/dispatcher"
	"github.com/atomicstack/sway-titlebar/internal/logging/events"
	"github.com/atomicstack/sway-titlebar/internal/state"
	"github.com/atomicstack/sway-titlebar/internal/sway"
	"github.com/atomicstack/sway-titlebar/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	SocketPath      string
	Layout          state.Layout
	Tooltips        bool
	RefreshInterval time.Duration
}

var dialSway = func(path string) (backend.Conn, error) {
	return sway.Dial(path)
}

// runtime bundles the wired components of one titlebar instance.
type runtime struct {
	store   *state.WindowStore
	signal  *ui.RenderSignal
	watcher *backend.Watcher
	model   *ui.Model
}

// start connects the tree synchronizer to the ipc worker and builds the UI
// model over the shared store.
func start(cfg Config, conn backend.Conn) (*runtime, error) {
	rt := &runtime{
		store:   state.NewWindowStore(),
		signal:  ui.NewRenderSignal(),
		watcher: backend.NewWatcher(conn, cfg.RefreshInterval),
	}
	synchronizer := dispatcher.New(rt.store, rt.watcher, rt.signal.Notify)
	if err := rt.watcher.Start(synchronizer); err != nil {
		rt.watcher.Stop()
		return nil, err
	}
	rt.model = ui.NewModel(ui.Options{Layout: cfg.Layout, Tooltips: cfg.Tooltips}, rt.store, rt.signal, rt.watcher, rt.watcher.Done())
	return rt, nil
}

func (rt *runtime) stop() {
	rt.watcher.Stop()
	rt.watcher.Wait()
}

func programOptions(cfg Config) []tea.ProgramOption {
	// Hover tracking for tooltips needs motion events without a pressed button.
	if cfg.Tooltips {
		return []tea.ProgramOption{tea.WithMouseAllMotion()}
	}
	return []tea.ProgramOption{tea.WithMouseCellMotion()}
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	socketPath, err := sway.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}
	conn, err := dialSway(socketPath)
	if err != nil {
		return fmt.Errorf("connect to sway: %w", err)
	}
	rt, err := start(cfg, conn)
	if err != nil {
		return fmt.Errorf("start ipc worker: %w", err)
	}
	defer rt.stop()

	program := tea.NewProgram(rt.model, programOptions(cfg)...)
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		events.App.Stop("killed")
		return nil
	}
	if err != nil {
		events.App.Stop(err.Error())
		return err
	}
	events.App.Stop("quit")
	return nil
}
