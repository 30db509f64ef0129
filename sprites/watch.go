package sprites

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports image files that were written, created, renamed or
// removed under the watched directories.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
	tree    bool
}

// NewWatcher watches dirs (not their subdirectories).
func NewWatcher(dirs ...string) (*Watcher, error) {
	return newWatcher(false, dirs)
}

// NewTreeWatcher watches every directory below the roots, including
// directories created later.
func NewTreeWatcher(roots ...string) (*Watcher, error) {
	return newWatcher(true, roots)
}

func newWatcher(tree bool, dirs []string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 64),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		tree:    tree,
	}
	for _, dir := range dirs {
		if err := watcher.add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) add(dir string) error {
	if !w.tree {
		return w.watcher.Add(dir)
	}
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(p)
		}
		return nil
	})
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// Drain hands every pending file name to fn without blocking.
func (w *Watcher) Drain(fn func(path string)) {
	for {
		select {
		case name, ok := <-w.Events:
			if !ok {
				return
			}
			fn(name)
		default:
			return
		}
	}
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if w.tree && event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.add(event.Name); err != nil {
						w.report(err)
					}
					continue
				}
			}
			if !IsImage(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- filepath.Clean(event.Name):
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)
		case <-w.closeCh:
			return
		}
	}
}

// report keeps the first undelivered error and drops the rest.
func (w *Watcher) report(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
