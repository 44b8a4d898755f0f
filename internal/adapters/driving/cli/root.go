// Package cli provides the cobra command tree for the fragments binary.
//
// Every invocation builds its own session: the collection is seeded,
// commands run against it, and nothing is written back. Long-running
// commands (tui, mcp serve) keep the session alive for their lifetime.
// The config commands only load settings, so they work even when the
// configured seed or backend cannot be opened.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fragments-cli/internal/app"
	"github.com/custodia-labs/fragments-cli/internal/core/domain"
	"github.com/custodia-labs/fragments-cli/internal/core/ports/driving"
	"github.com/custodia-labs/fragments-cli/internal/logger"
)

// Command annotations that narrow the bootstrap. settingsOnly applies to a
// command and everything under it.
const (
	skipBootstrap = "skip-bootstrap"
	settingsOnly  = "settings-only"
)

var (
	version   = "dev"
	verbose   bool
	configDir string
)

// Services are what commands operate on. Tests inject them with
// SetServices; otherwise they are built from config on first use.
type Services struct {
	Fragments driving.FragmentService
	Search    driving.SearchService
	Filter    driving.SessionService
	Settings  driving.SettingsService
	Changes   driving.ChangeFeed

	// AppSettings are the settings the session was built with.
	AppSettings *domain.AppSettings

	// ConfigPath is where settings are saved. Optional.
	ConfigPath string

	// WatchSettings starts reloading settings on config change. Optional.
	WatchSettings func(onChange func(*domain.AppSettings)) (stop func() error, err error)
}

var (
	fragmentService driving.FragmentService
	searchService   driving.SearchService
	filterService   driving.SessionService
	settingsService driving.SettingsService
	changeFeed      driving.ChangeFeed
	appSettings     *domain.AppSettings
	configPath      string
	watchSettings   func(onChange func(*domain.AppSettings)) (stop func() error, err error)

	container *app.Container
)

var rootCmd = &cobra.Command{
	Use:   "fragments",
	Short: "Store, tag and search knowledge fragments",
	Long: `fragments manages short pieces of knowledge: text notes, video and
website links, code snippets and songs. Fragments carry tags and can be
filtered by free text and by tag.

The collection lives for one session. Start "fragments tui" to browse and
edit interactively, or "fragments mcp serve" to expose it to AI assistants.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if cmd.Annotations[skipBootstrap] == "true" {
			return nil
		}
		for c := cmd; c != nil; c = c.Parent() {
			if c.Annotations[settingsOnly] == "true" {
				return ensureSettings()
			}
		}
		return ensureServices(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.fragments)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices injects the services commands operate on.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	fragmentService = s.Fragments
	searchService = s.Search
	filterService = s.Filter
	settingsService = s.Settings
	changeFeed = s.Changes
	appSettings = s.AppSettings
	configPath = s.ConfigPath
	watchSettings = s.WatchSettings
}

// Execute runs the root command and releases the session afterwards.
func Execute(ctx context.Context) error {
	defer closeContainer()
	return rootCmd.ExecuteContext(ctx)
}

func ensureServices(ctx context.Context) error {
	if fragmentService != nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	closeContainer()

	c, err := app.Build(ctx, app.Options{ConfigDir: configDir})
	if err != nil {
		return err
	}
	container = c

	SetServices(&Services{
		Fragments:     c.Fragments,
		Search:        c.Search,
		Filter:        c.Filter,
		Settings:      c.Settings,
		Changes:       c.Changes,
		AppSettings:   c.AppSettings,
		ConfigPath:    c.ConfigPath(),
		WatchSettings: c.WatchSettings,
	})
	return nil
}

// ensureSettings builds just enough to read and save settings, so config
// commands keep working when the seed file or backend is broken.
func ensureSettings() error {
	if settingsService != nil {
		return nil
	}

	c, err := app.BuildSettings(app.Options{ConfigDir: configDir})
	if err != nil {
		return err
	}
	container = c

	SetServices(&Services{
		Settings:      c.Settings,
		AppSettings:   c.AppSettings,
		ConfigPath:    c.ConfigPath(),
		WatchSettings: c.WatchSettings,
	})
	return nil
}

func closeContainer() {
	if container == nil {
		return
	}
	if err := container.Close(); err != nil {
		logger.Warn("closing session: %v", err)
	}
	container = nil
	SetServices(nil)
}

// errNotConfigured is returned when a command runs without its service.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}

// settingsOrDefault returns the session settings or the defaults.
func settingsOrDefault() domain.AppSettings {
	if appSettings != nil {
		return *appSettings
	}
	return domain.DefaultAppSettings()
}
