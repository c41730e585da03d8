// Package host owns the state of a hot-reloadable unit and swaps the unit's
// code underneath it.
//
// The host loads the unit once, asks it for its persistent state, and from
// then on hands that state to the unit every frame. When the unit's
// artifact changes on disk the host loads the new build, lets the old one
// drain its pending work, drops the fleeting state and continues with the
// new code against the same persistent state.
package host

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/vovakirdan/comfy-wars/internal/abi"
	"github.com/vovakirdan/comfy-wars/internal/core"
)

// FPSZ is the draw layer of the FPS line.
const FPSZ = 1000

// Journal records reloads and frame faults. *storage.Store implements it.
type Journal interface {
	RecordReload(unit, path string, loadErr error) (int64, error)
	RecordFault(unit, message string) (int64, error)
}

// Host drives one unit.
// It is not safe for concurrent use; only the frame loop may call it.
type Host struct {
	loader     Loader
	path       string
	unit       *Unit
	persistent abi.OpaqueBlock
	fleeting   abi.OpaqueBlock

	watch   bool
	events  EventSource
	journal Journal
	logger  *log.Logger
	showFPS bool

	reloads   int
	faults    int
	lastFault string
	closed    bool
}

// Option configures a Host.
type Option func(*Host)

// WithWatch enables or disables the filesystem watch. It is on by default.
func WithWatch(on bool) Option {
	return func(h *Host) { h.watch = on }
}

// WithEventSource replaces the filesystem watch with src.
func WithEventSource(src EventSource) Option {
	return func(h *Host) { h.events = src }
}

// WithJournal records reloads and faults in j.
func WithJournal(j Journal) Option {
	return func(h *Host) { h.journal = j }
}

// WithLogger sets the logger. The default is log.Default().
func WithLogger(l *log.Logger) Option {
	return func(h *Host) { h.logger = l }
}

// WithFPS draws an FPS line on top of every frame.
func WithFPS(on bool) Option {
	return func(h *Host) { h.showFPS = on }
}

// New loads the unit at path and creates its persistent state. Failing
// here is fatal for the caller: there is no previous unit to fall back to.
func New(loader Loader, path string, opts ...Option) (*Host, error) {
	h := &Host{loader: loader, path: path, watch: true}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = log.Default()
	}

	unit, err := loader.Load(path)
	h.record(err)
	if err != nil {
		return nil, err
	}
	h.unit = unit

	if h.persistent, err = makePersistent(unit); err != nil {
		return nil, err
	}

	if h.events == nil && h.watch {
		dir := filepath.Dir(path)
		if h.events, err = Watch(dir); err != nil {
			return nil, err
		}
		h.logger.Debug("watching for changes", "dir", dir)
	}

	h.logger.Info("unit loaded", "path", path)
	return h, nil
}

func makePersistent(u *Unit) (block abi.OpaqueBlock, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("host: %s failed: %v", abi.SymMakePersistent, r)
		}
	}()
	block = u.MakePersistent()
	if block.IsZero() {
		return block, fmt.Errorf("host: %s returned an empty block", abi.SymMakePersistent)
	}
	return block, nil
}

// PollAndMaybeReload drains pending filesystem events without blocking.
// If any created or wrote the unit's artifact, and the artifact exists, it
// reloads the unit. It reports whether a new unit was swapped in. A failed
// load keeps the current unit and is returned as the error.
func (h *Host) PollAndMaybeReload() (bool, error) {
	if h.events == nil || h.closed {
		return false, nil
	}

	modified := false
	name := h.unit.Name()
drain:
	for {
		select {
		case ev, ok := <-h.events.Events():
			if !ok {
				h.events = nil
				break drain
			}
			if (ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write)) && filepath.Base(ev.Name) == name {
				modified = true
			}
		case err, ok := <-h.events.Errors():
			if !ok {
				h.events = nil
				break drain
			}
			h.logger.Warn("watcher error", "err", err)
		default:
			break drain
		}
	}

	if !modified {
		return false, nil
	}
	if _, err := os.Stat(h.path); err != nil {
		// Removed or renamed mid-build; a later event brings it back.
		return false, nil
	}
	if err := h.Reload(); err != nil {
		return false, err
	}
	return true, nil
}

// Reload loads the unit again and swaps it in. The new build is loaded
// before the old one is touched, so a failed load changes nothing.
func (h *Host) Reload() error {
	next, err := h.loader.Load(h.path)
	h.record(err)
	if err != nil {
		h.logger.Error("reload failed, keeping previous unit", "path", h.path, "err", err)
		return err
	}

	h.drain()
	h.fleeting.Reset()
	h.unit = next
	h.reloads++
	h.logger.Info("unit reloaded", "path", h.path, "reloads", h.reloads)
	return nil
}

// drain lets the current unit finish its pending work.
func (h *Host) drain() {
	if h.unit.Drain == nil || h.fleeting.IsZero() {
		return
	}
	defer h.recoverFault(abi.SymDrain)
	h.unit.Drain(&h.persistent, &h.fleeting)
}

// InvokeFrame runs one frame of the unit. A panic in the unit is logged,
// counted and journaled, then dropped; the persistent state keeps whatever
// the frame changed before it failed.
func (h *Host) InvokeFrame(ctx core.Context) {
	if h.closed {
		return
	}
	defer h.recoverFault(abi.SymUpdate)
	h.unit.Update(ctx, &h.persistent, &h.fleeting)
	if h.showFPS {
		ctx.DrawText(fmt.Sprintf("fps %d", ctx.FPS()), 16, 0, 0, FPSZ)
	}
}

func (h *Host) recoverFault(entry string) {
	r := recover()
	if r == nil {
		return
	}
	h.faults++
	h.lastFault = fmt.Sprint(r)
	h.logger.Error("unit fault", "entry", entry, "fault", h.lastFault)
	if h.journal != nil {
		if _, err := h.journal.RecordFault(h.unit.Name(), h.lastFault); err != nil {
			h.logger.Warn("cannot journal fault", "err", err)
		}
	}
}

func (h *Host) record(loadErr error) {
	if h.journal == nil {
		return
	}
	if _, err := h.journal.RecordReload(filepath.Base(h.path), h.path, loadErr); err != nil {
		h.logger.Warn("cannot journal reload", "err", err)
	}
}

// Close drains the current unit and stops watching. The persistent state
// is kept reachable until the host itself is released.
func (h *Host) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	h.drain()
	h.fleeting.Reset()

	if h.events == nil {
		return nil
	}
	err := h.events.Close()
	h.events = nil
	return err
}

// Unit returns the current unit.
func (h *Host) Unit() *Unit { return h.unit }

// Path returns the path the unit is loaded from.
func (h *Host) Path() string { return h.path }

// Persistent returns the persistent block.
func (h *Host) Persistent() *abi.OpaqueBlock { return &h.persistent }

// Fleeting returns the fleeting block. It is empty after a reload until
// the next frame.
func (h *Host) Fleeting() *abi.OpaqueBlock { return &h.fleeting }

// Reloads returns the number of successful reloads.
func (h *Host) Reloads() int { return h.reloads }

// Faults returns the number of recovered unit panics.
func (h *Host) Faults() int { return h.faults }

// LastFault returns the message of the most recent fault.
func (h *Host) LastFault() string { return h.lastFault }
