package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long a file must stay quiet before its change is reported,
// so an editor's write-rename-chmod burst reads as one edit.
const settle = 100 * time.Millisecond

type ChangeKind int

const (
	ScenarioChanged ChangeKind = iota + 1
	ScriptChanged
)

func (k ChangeKind) String() string {
	switch k {
	case ScenarioChanged:
		return "scenario"
	case ScriptChanged:
		return "script"
	default:
		return "unknown"
	}
}

// Change is one settled edit under the scenario directory.
type Change struct {
	Kind ChangeKind
	Path string
}

// Watcher follows one scenario file and the track scripts next to it.
type Watcher struct {
	fs       *fsnotify.Watcher
	scenario string

	Changes chan Change
	Errors  chan error

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewWatcher watches dir and, when present, dir/scripts. Only edits to the
// scenario file named scenario are reported; an empty name reports every
// scenario file.
func NewWatcher(dir, scenario string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}
	scripts := filepath.Join(dir, "scripts")
	if info, err := os.Stat(scripts); err == nil && info.IsDir() {
		if err := fw.Add(scripts); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fw,
		Changes: make(chan Change, 16),
		Errors:  make(chan error, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	if scenario != "" {
		w.scenario = filepath.Base(cleanScenarioPath(scenario))
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		err = w.fs.Close()
		<-w.done
		close(w.Changes)
		close(w.Errors)
	})
	return err
}

// classify maps a path to the change it represents.
func (w *Watcher) classify(path string) (Change, bool) {
	name := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if w.scenario != "" && name != w.scenario {
			return Change{}, false
		}
		return Change{Kind: ScenarioChanged, Path: path}, true
	case ".tengo":
		return Change{Kind: ScriptChanged, Path: path}, true
	}
	return Change{}, false
}

func (w *Watcher) run() {
	defer close(w.done)

	pending := make(map[string]Change)
	timer := time.NewTimer(settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			c, ok := w.classify(event.Name)
			if !ok {
				continue
			}
			pending[event.Name] = c
			timer.Reset(settle)
		case <-timer.C:
			for path, c := range pending {
				delete(pending, path)
				select {
				case w.Changes <- c:
				case <-w.stop:
					return
				}
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.stop:
			return
		}
	}
}
