package levels

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce drops repeated events for the same file within this window;
// editors often write a file several times per save.
const debounce = 100 * time.Millisecond

// Watcher reports level files that change under a set of directories.
type Watcher struct {
	watcher *fsnotify.Watcher
	// Events receives the path of every changed level file.
	Events chan string
	// Errors receives watcher errors.
	Errors chan error

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches dirs and all their subdirectories.
func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if _, err := addTree(fw, dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		watcher: fw,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher and closes the Events and Errors channels.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

// addTree watches dir and every directory below it, returning the level
// files already present.
func addTree(fw *fsnotify.Watcher, dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(p)
		}
		if IsLevelFile(p) {
			files = append(files, p)
		}
		return nil
	})
	return files, err
}

func (w *Watcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					// Files written before the watch was added are reported here.
					files, err := addTree(w.watcher, event.Name)
					if err != nil {
						w.sendErr(err)
					}
					for _, f := range files {
						if !w.send(f, last) {
							return
						}
					}
					continue
				}
			}
			if !IsLevelFile(event.Name) {
				continue
			}
			if !w.send(event.Name, last) {
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendErr(err)
		case <-w.closeCh:
			return
		}
	}
}

// send reports path unless it was reported within the debounce window. It
// returns false once the watcher is closing.
func (w *Watcher) send(path string, last map[string]time.Time) bool {
	now := time.Now()
	if t, ok := last[path]; ok && now.Sub(t) < debounce {
		return true
	}
	last[path] = now
	select {
	case w.Events <- path:
		return true
	case <-w.closeCh:
		return false
	}
}

func (w *Watcher) sendErr(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
