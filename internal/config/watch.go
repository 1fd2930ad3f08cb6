package config

import (
	"path/filepath"
	"sync"
	"time"

	"FlyCam/internal/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounce = 100 * time.Millisecond

// Watcher reloads a config file when it changes on disk. Reloads are only
// delivered on the channel; the consumer applies them on its own goroutine.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	Reloads chan *Config
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// Watch watches the directory holding path so editors that replace the file
// are still seen.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		path:    abs,
		watcher: w,
		Reloads: make(chan *Config, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Reloads)
		close(w.Errors)
	})
	return err
}

// run reloads once the file has been quiet for the debounce interval, so a
// truncate followed by a write is read as one change.
func (w *Watcher) run() {
	defer close(w.done)

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			timer.Reset(debounce)
		case <-timer.C:
			w.reload()
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

func (w *Watcher) reload() {
	c, err := Load(w.path)
	if err != nil {
		logger.Log.Warn("Config reload failed", zap.String("path", w.path), zap.Error(err))
		w.sendErr(err)
		return
	}
	logger.Log.Info("Config reloaded", zap.String("path", w.path))

	// Keep only the newest config if the consumer has not caught up.
	select {
	case <-w.Reloads:
	default:
	}
	select {
	case w.Reloads <- c:
	case <-w.closeCh:
	}
}

func (w *Watcher) sendErr(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
