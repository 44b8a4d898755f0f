package services

import (
	"fmt"

	"github.com/custodia-labs/fragments-cli/internal/core/domain"
	"github.com/custodia-labs/fragments-cli/internal/core/ports/driven"
	"github.com/custodia-labs/fragments-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStorageBackend  = "storage.backend"
	keyIDStrategy      = "ids.strategy"
	keySeedPath        = "seed.path"
	keyDisplayTruncate = "display.truncate"
	keyMCPRateLimit    = "mcp.rate_limit"
	keyMCPBurst        = "mcp.burst"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or unrecognised
// values fall back to the defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			Backend:    s.getBackend(defaults.Storage.Backend),
			IDStrategy: s.getIDStrategy(defaults.Storage.IDStrategy),
		},
		Seed: domain.SeedSettings{
			Path: s.configStore.GetString(keySeedPath), // Empty selects the built-in samples
		},
		Display: domain.DisplaySettings{
			Truncate: s.getInt(keyDisplayTruncate, defaults.Display.Truncate),
		},
		MCP: domain.MCPSettings{
			RateLimit: s.getFloat(keyMCPRateLimit, defaults.MCP.RateLimit),
			Burst:     s.getInt(keyMCPBurst, defaults.MCP.Burst),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if !settings.Storage.Backend.IsValid() {
		return fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, settings.Storage.Backend)
	}
	if !settings.Storage.IDStrategy.IsValid() {
		return fmt.Errorf("%w: id strategy %q", domain.ErrInvalidInput, settings.Storage.IDStrategy)
	}

	if err := s.configStore.Set(keyStorageBackend, settings.Storage.Backend.String()); err != nil {
		return fmt.Errorf("save storage backend: %w", err)
	}
	if err := s.configStore.Set(keyIDStrategy, settings.Storage.IDStrategy.String()); err != nil {
		return fmt.Errorf("save id strategy: %w", err)
	}
	if err := s.configStore.Set(keySeedPath, settings.Seed.Path); err != nil {
		return fmt.Errorf("save seed path: %w", err)
	}
	if err := s.configStore.Set(keyDisplayTruncate, settings.Display.Truncate); err != nil {
		return fmt.Errorf("save display truncate: %w", err)
	}
	if err := s.configStore.Set(keyMCPRateLimit, settings.MCP.RateLimit); err != nil {
		return fmt.Errorf("save mcp rate_limit: %w", err)
	}
	if err := s.configStore.Set(keyMCPBurst, settings.MCP.Burst); err != nil {
		return fmt.Errorf("save mcp burst: %w", err)
	}

	return nil
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	b := domain.StorageBackend(s.configStore.GetString(keyStorageBackend))
	if b.IsValid() {
		return b
	}
	return defaultVal
}

func (s *SettingsService) getIDStrategy(defaultVal domain.IDStrategy) domain.IDStrategy {
	st := domain.IDStrategy(s.configStore.GetString(keyIDStrategy))
	if st.IsValid() {
		return st
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	if v := s.configStore.GetInt(key); v > 0 {
		return v
	}
	return defaultVal
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	if v := s.configStore.GetFloat(key); v > 0 {
		return v
	}
	return defaultVal
}
