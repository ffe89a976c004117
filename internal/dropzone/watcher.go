package dropzone

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

type Kind int

const (
	Enter Kind = iota // a file started arriving
	Over              // the file is still being written
	Leave             // the file went away before it settled
	Drop              // the file settled and should be selected
)

func (k Kind) String() string {
	switch k {
	case Enter:
		return "enter"
	case Over:
		return "over"
	case Leave:
		return "leave"
	default:
		return "drop"
	}
}

type Event struct {
	Kind Kind
	Path string
}

// DefaultSettle is how long a file must go without writes before it counts
// as dropped.
const DefaultSettle = 750 * time.Millisecond

// Watcher reports drag-and-drop activity in a folder.
type Watcher struct {
	watcher *fsnotify.Watcher
	dir     string
	settle  time.Duration
}

func NewWatcher(dir string, settle time.Duration) (*Watcher, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Watcher{watcher: w, dir: dir, settle: settle}, nil
}

func (w *Watcher) Dir() string {
	return w.dir
}

// Watch starts monitoring the folder. The returned channel is closed when ctx
// is done or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) (<-chan Event, error) {
	if err := w.watcher.Add(w.dir); err != nil {
		return nil, err
	}

	events := make(chan Event, 32)

	go func() {
		defer close(events)

		ticker := time.NewTicker(w.settle / 2)
		defer ticker.Stop()

		// last write per file that has not settled yet
		pending := make(map[string]time.Time)

		emit := func(kind Kind, path string) bool {
			select {
			case events <- Event{Kind: kind, Path: path}:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if ignored(event.Name) {
					continue
				}

				var kind Kind
				switch {
				case event.Op&fsnotify.Create == fsnotify.Create:
					if info, err := os.Stat(event.Name); err != nil || info.IsDir() {
						continue
					}
					kind = Enter
					if _, seen := pending[event.Name]; seen {
						kind = Over
					}
					pending[event.Name] = time.Now()
				case event.Op&fsnotify.Write == fsnotify.Write:
					kind = Over
					if _, seen := pending[event.Name]; !seen {
						kind = Enter
					}
					pending[event.Name] = time.Now()
				case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
					if _, seen := pending[event.Name]; !seen {
						continue
					}
					delete(pending, event.Name)
					kind = Leave
				default:
					continue
				}

				if !emit(kind, event.Name) {
					return
				}
			case now := <-ticker.C:
				for path, last := range pending {
					if now.Sub(last) < w.settle {
						continue
					}
					delete(pending, path)
					if !emit(Drop, path) {
						return
					}
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				log.Printf("drop folder watcher: %v", err)
			}
		}
	}()

	return events, nil
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// ignored skips dotfiles and the partial downloads browsers leave behind.
func ignored(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return true
	}
	switch filepath.Ext(base) {
	case ".part", ".crdownload", ".tmp":
		return true
	}
	return false
}
