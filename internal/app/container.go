// Package app builds the object graph for one session: settings, the
// fragment store, ID generation, the change bus, services and seed data.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/fragments-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driven/idgen"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driven/notify"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driven/seed"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/fragments-cli/internal/core/domain"
	"github.com/custodia-labs/fragments-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fragments-cli/internal/core/ports/driving"
	"github.com/custodia-labs/fragments-cli/internal/core/services"
	"github.com/custodia-labs/fragments-cli/internal/logger"
)

// Options controls how a container is built.
type Options struct {
	// ConfigDir overrides the default ~/.fragments directory.
	ConfigDir string

	// ConfigStore replaces the TOML store, e.g. with memory.NewConfigStore
	// in tests. When set, ConfigDir is ignored and no watcher is available.
	ConfigStore driven.ConfigStore

	// Seed replaces the source chosen by the seed.path setting.
	Seed driven.SeedSource
}

// Container holds the services for one session. Nothing in it outlives
// the process.
type Container struct {
	Fragments driving.FragmentService
	Search    driving.SearchService
	Filter    driving.SessionService
	Settings  driving.SettingsService
	Changes   *notify.Bus

	// AppSettings are the settings the container was built with.
	AppSettings *domain.AppSettings

	config     driven.ConfigStore
	fileConfig *file.ConfigStore
	closers    []func() error
}

// Build wires a container and seeds the collection.
func Build(ctx context.Context, opts Options) (*Container, error) {
	logger.Section("Bootstrap")

	c, err := BuildSettings(opts)
	if err != nil {
		return nil, err
	}
	settings := c.AppSettings

	store, err := c.newStore(settings.Storage.Backend)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	ids, err := idgen.New(settings.Storage.IDStrategy)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	c.Changes = notify.NewBus()
	c.Changes.Subscribe(notify.LogHandler)

	fragments := services.NewFragmentService(store, ids, c.Changes)
	c.Fragments = fragments
	c.Search = services.NewSearchService(fragments)
	c.Filter = services.NewSessionService(c.Search)

	source := opts.Seed
	if source == nil {
		source = seed.NewSource(settings.Seed.Path)
	}
	initial, err := source.Load(ctx)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("load seed: %w", err)
	}
	if err := fragments.Init(ctx, initial); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("seed collection: %w", err)
	}

	logger.Debug("Session ready: backend=%s ids=%s fragments=%d",
		settings.Storage.Backend, settings.Storage.IDStrategy, len(initial))
	return c, nil
}

// BuildSettings wires only the config store and settings service. The
// container has no fragment store and no seed, so it stays usable when the
// settings point at a backend or seed file that cannot be opened.
func BuildSettings(opts Options) (*Container, error) {
	c := &Container{}

	configStore := opts.ConfigStore
	if configStore == nil {
		fc, err := file.NewConfigStore(opts.ConfigDir)
		if err != nil {
			logger.Warn("Config unavailable, using defaults: %v", err)
			configStore = memory.NewConfigStore()
		} else {
			c.fileConfig = fc
			configStore = fc
		}
	}
	c.config = configStore
	logger.Debug("Config: %s", configStore.Path())

	settingsSvc := services.NewSettingsService(configStore)
	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	c.Settings = settingsSvc
	c.AppSettings = settings
	return c, nil
}

func (c *Container) newStore(backend domain.StorageBackend) (driven.FragmentStore, error) {
	switch backend {
	case domain.StorageBackendSQLite:
		s, err := sqlite.NewStore("")
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		c.closers = append(c.closers, s.Close)
		return s, nil
	case domain.StorageBackendMemory:
		return memory.NewFragmentStore(), nil
	default:
		return nil, fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, backend)
	}
}

// ConfigPath returns where settings are read from and saved to.
func (c *Container) ConfigPath() string {
	return c.config.Path()
}

// WatchSettings reloads settings whenever the config file changes and
// passes them to onChange. It returns ErrNotImplemented when the
// container was built without a config file.
func (c *Container) WatchSettings(onChange func(*domain.AppSettings)) (stop func() error, err error) {
	if c.fileConfig == nil {
		return nil, domain.ErrNotImplemented
	}

	w, err := file.NewWatcher(c.fileConfig)
	if err != nil {
		return nil, err
	}
	w.OnChange(func() {
		s, err := c.Settings.Get()
		if err != nil {
			logger.Warn("Reading reloaded settings: %v", err)
			return
		}
		onChange(s)
	})
	w.Start()

	c.closers = append(c.closers, w.Close)
	return w.Close, nil
}

// Close releases the store and any watchers.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
