package file

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/fragments-cli/internal/logger"
)

const defaultDebounce = 100 * time.Millisecond

// Watcher reloads a ConfigStore when its file is written, created or
// renamed into place, and then calls the registered handlers.
type Watcher struct {
	store    *ConfigStore
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu       sync.RWMutex
	onChange []func()
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewWatcher watches the directory holding the store's file so that
// editors which save by rename are also seen.
func NewWatcher(store *ConfigStore) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	if err := fw.Add(filepath.Dir(store.Path())); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch config directory: %w", err)
	}

	return &Watcher{
		store:    store,
		watcher:  fw,
		debounce: defaultDebounce,
		stopCh:   make(chan struct{}),
	}, nil
}

// SetDebounce sets how long to wait for writes to settle before reloading.
// Must be called before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// OnChange registers a handler called after every successful reload.
func (w *Watcher) OnChange(handler func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, handler)
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	go w.loop()
	logger.Debug("Watching config file %s", w.store.Path())
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) loop() {
	var timer *time.Timer
	name := filepath.Base(w.store.Path())

	for {
		select {
		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, w.reload)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Error("config watcher: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	select {
	case <-w.stopCh:
		return
	default:
	}

	if err := w.store.Load(); err != nil {
		logger.Warn("Config reload failed, keeping current values: %v", err)
		return
	}
	logger.Info("Reloaded config from %s", w.store.Path())

	w.mu.RLock()
	handlers := append([]func(){}, w.onChange...)
	w.mu.RUnlock()

	for _, h := range handlers {
		h()
	}
}
