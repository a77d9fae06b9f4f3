package watcher

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of writes an editor makes when saving
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors the source image and reports changes to it
type Watcher struct {
	source   string
	watcher  *fsnotify.Watcher
	events   chan Event
	onChange func(path string)
	debounce time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	started bool
	stopped bool
	done    chan struct{}
}

// Event represents a change to the watched source
type Event struct {
	Type     EventType
	FilePath string
}

// EventType represents the type of file event
type EventType int

const (
	EventCreated EventType = iota
	EventModified
	EventDeleted
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventModified:
		return "modified"
	case EventDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// NewWatcher creates a watcher for source. onChange runs after the source is
// created or written and has been quiet for the debounce interval.
func NewWatcher(source string, onChange func(path string)) (*Watcher, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source path: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		source:   abs,
		watcher:  fsWatcher,
		events:   make(chan Event, 100),
		onChange: onChange,
		debounce: DefaultDebounce,
		done:     make(chan struct{}),
	}, nil
}

// SetDebounce changes the quiet interval; call before Start
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Start begins monitoring the source's directory.
// The directory is watched rather than the file so editors that replace
// the file on save keep triggering.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.source)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch folder %s: %w", dir, err)
	}
	log.Printf("Watching %s for changes", w.source)

	w.mu.Lock()
	w.started = true
	w.mu.Unlock()
	go w.processEvents()
	return nil
}

// processEvents filters fsnotify events down to the source file
func (w *Watcher) processEvents() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.source {
				continue
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// handleEvent processes a single file event
func (w *Watcher) handleEvent(event fsnotify.Event) {
	var eventType EventType

	switch {
	case event.Op&fsnotify.Create == fsnotify.Create:
		eventType = EventCreated
	case event.Op&fsnotify.Write == fsnotify.Write:
		eventType = EventModified
	case event.Op&fsnotify.Remove == fsnotify.Remove, event.Op&fsnotify.Rename == fsnotify.Rename:
		eventType = EventDeleted
	default:
		return // Ignore chmod
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}

	// Send event to channel; drop it if nobody is reading
	select {
	case w.events <- Event{Type: eventType, FilePath: event.Name}:
	default:
	}

	if eventType == EventDeleted || w.onChange == nil {
		return
	}

	// Debounce: restart the timer on every write
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		stopped := w.stopped
		w.mu.Unlock()
		if !stopped {
			w.onChange(w.source)
		}
	})
}

// Events returns the event channel
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	started := w.started
	w.mu.Unlock()

	err := w.watcher.Close()
	if started {
		<-w.done
	}
	close(w.events)
	return err
}
