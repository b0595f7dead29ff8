// Package watch notifies coltc when the source files it checks change.
package watch

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op indicates a change operation on a watched file.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

func (op Op) String() string {
	names := []string{"CREATE", "WRITE", "REMOVE", "RENAME", "CHMOD"}
	s := ""
	for i, n := range names {
		if op&(1<<i) != 0 {
			if s != "" {
				s += "|"
			}
			s += n
		}
	}
	if s == "" {
		return "NONE"
	}
	return s
}

// Event reports the operations applied to a file since the previous event
// for that file.
type Event struct {
	Path string
	Op   Op
	Time time.Time
}

// DefaultDelay is how long a watcher waits for a burst of changes to settle.
const DefaultDelay = 100 * time.Millisecond

// Watcher watches a set of files. The directories containing them are
// watched instead of the files, so that editors replacing a file by renaming
// are still noticed. Events of a file arriving within the delay are merged.
type Watcher struct {
	w     *fsnotify.Watcher
	delay time.Duration
	evC   chan Event
	erC   chan error
	done  chan struct{}

	mu    sync.Mutex
	files map[string]struct{}
	dirs  map[string]int
}

// New creates a watcher merging the events of a file arriving within delay.
func New(delay time.Duration) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	fw := &Watcher{
		w:     w,
		delay: delay,
		evC:   make(chan Event, 128),
		erC:   make(chan error, 1),
		done:  make(chan struct{}),
		files: make(map[string]struct{}),
		dirs:  make(map[string]int),
	}
	go fw.loop()
	return fw, nil
}

func (fw *Watcher) Events() <-chan Event { return fw.evC }
func (fw *Watcher) Errors() <-chan error { return fw.erC }

// Add starts watching file.
func (fw *Watcher) Add(file string) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if _, ok := fw.files[abs]; ok {
		return nil
	}
	dir := filepath.Dir(abs)
	if fw.dirs[dir] == 0 {
		if err := fw.w.Add(dir); err != nil {
			return fmt.Errorf("watch: %s: %w", file, err)
		}
	}
	fw.dirs[dir]++
	fw.files[abs] = struct{}{}
	return nil
}

// Remove stops watching file.
func (fw *Watcher) Remove(file string) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if _, ok := fw.files[abs]; !ok {
		return nil
	}
	delete(fw.files, abs)
	dir := filepath.Dir(abs)
	if fw.dirs[dir]--; fw.dirs[dir] == 0 {
		delete(fw.dirs, dir)
		return fw.w.Remove(dir)
	}
	return nil
}

// Close stops the watcher and closes the event channel.
func (fw *Watcher) Close() error {
	err := fw.w.Close()
	<-fw.done
	return err
}

func (fw *Watcher) isWatched(path string) bool {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	_, ok := fw.files[path]
	return ok
}

func convertOp(op fsnotify.Op) Op {
	var ret Op
	if op&fsnotify.Create != 0 {
		ret |= OpCreate
	}
	if op&fsnotify.Write != 0 {
		ret |= OpWrite
	}
	if op&fsnotify.Remove != 0 {
		ret |= OpRemove
	}
	if op&fsnotify.Rename != 0 {
		ret |= OpRename
	}
	if op&fsnotify.Chmod != 0 {
		ret |= OpChmod
	}
	return ret
}

func (fw *Watcher) loop() {
	defer close(fw.done)
	defer close(fw.evC)

	pending := make(map[string]Op)
	timer := time.NewTimer(fw.delay)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	flush := func() {
		paths := make([]string, 0, len(pending))
		for p := range pending {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		now := time.Now()
		for _, p := range paths {
			fw.evC <- Event{Path: p, Op: pending[p], Time: now}
			delete(pending, p)
		}
	}

	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			path, err := filepath.Abs(ev.Name)
			if err != nil || !fw.isWatched(path) {
				continue
			}
			if len(pending) == 0 {
				timer.Reset(fw.delay)
			}
			pending[path] |= convertOp(ev.Op)
		case <-timer.C:
			flush()
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			select {
			case fw.erC <- err:
			default:
			}
		}
	}
}
