package host

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// EventSource delivers filesystem notifications. The producer runs on its
// own goroutine; the host is the only consumer and never blocks on it.
type EventSource interface {
	Events() <-chan fsnotify.Event
	Errors() <-chan error
	Close() error
}

type fsWatcher struct {
	w *fsnotify.Watcher
}

// Watch subscribes to changes in dir. It is not recursive.
func Watch(dir string) (EventSource, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("host: cannot create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("host: cannot watch %s: %w", dir, err)
	}
	return &fsWatcher{w: w}, nil
}

func (f *fsWatcher) Events() <-chan fsnotify.Event { return f.w.Events }
func (f *fsWatcher) Errors() <-chan error          { return f.w.Errors }
func (f *fsWatcher) Close() error                  { return f.w.Close() }

// ChanSource is an EventSource fed by hand, for tests and for embedding
// the host under another notifier.
type ChanSource struct {
	C chan fsnotify.Event
	E chan error
}

// NewChanSource creates a ChanSource with buffered channels.
func NewChanSource(buffer int) *ChanSource {
	return &ChanSource{
		C: make(chan fsnotify.Event, buffer),
		E: make(chan error, buffer),
	}
}

// Notify queues an event for name.
func (c *ChanSource) Notify(name string, op fsnotify.Op) {
	c.C <- fsnotify.Event{Name: name, Op: op}
}

func (c *ChanSource) Events() <-chan fsnotify.Event { return c.C }
func (c *ChanSource) Errors() <-chan error          { return c.E }
func (c *ChanSource) Close() error                  { return nil }
