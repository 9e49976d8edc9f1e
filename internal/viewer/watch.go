package viewer

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// sceneWatcher signals when the watched scene file is written. The parent
// directory is watched so editors that replace the file on save still
// trigger a reload.
type sceneWatcher struct {
	watcher *fsnotify.Watcher
	changed chan struct{}
	done    chan struct{}
}

func watchScene(path string, log *slog.Logger) (*sceneWatcher, error) {
	if log == nil {
		log = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	sw := &sceneWatcher{
		watcher: w,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go sw.loop(abs, log)
	return sw, nil
}

func (sw *sceneWatcher) loop(path string, log *slog.Logger) {
	defer close(sw.done)
	for {
		select {
		case ev, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			// Coalesce bursts; one pending reload is enough.
			select {
			case sw.changed <- struct{}{}:
			default:
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("scene watcher", "err", err)
		}
	}
}

// Changed is signalled at most once per batch of writes.
func (sw *sceneWatcher) Changed() <-chan struct{} { return sw.changed }

func (sw *sceneWatcher) Close() error {
	err := sw.watcher.Close()
	<-sw.done
	return err
}
