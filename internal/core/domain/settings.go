package domain

const unknownDescription = "Unknown"

// StorageBackend selects where the session's fragment collection lives.
// Every backend is process-local; nothing survives a restart.
type StorageBackend string

// Available storage backends.
const (
	// StorageBackendMemory keeps fragments in an ordered Go map.
	StorageBackendMemory StorageBackend = "memory"

	// StorageBackendSQLite keeps fragments in an in-process SQLite :memory: database.
	StorageBackendSQLite StorageBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageBackendMemory, StorageBackendSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageBackendMemory:
		return "Memory (ordered map)"
	case StorageBackendSQLite:
		return "SQLite (in-memory database)"
	default:
		return unknownDescription
	}
}

// IDStrategy selects how new fragment identifiers are generated.
type IDStrategy string

// Available ID strategies.
const (
	// IDStrategyUUID generates random UUIDs.
	IDStrategyUUID IDStrategy = "uuid"

	// IDStrategySequence generates f1, f2, ... from a counter that is
	// independent of the collection size and never reused.
	IDStrategySequence IDStrategy = "sequence"
)

// IsValid returns true if the strategy is recognised.
func (s IDStrategy) IsValid() bool {
	switch s {
	case IDStrategyUUID, IDStrategySequence:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s IDStrategy) String() string {
	return string(s)
}

// SeedNone disables seeding: the session starts with an empty collection.
const SeedNone = "none"

// StorageSettings holds collection backend configuration.
type StorageSettings struct {
	// Backend is where fragments are held for the session.
	Backend StorageBackend

	// IDStrategy is how new fragment IDs are generated.
	IDStrategy IDStrategy
}

// SeedSettings controls the initial collection.
type SeedSettings struct {
	// Path is a TOML, YAML or JSON file with initial fragments.
	// Empty uses the built-in samples; SeedNone starts empty.
	Path string
}

// DisplaySettings holds presentation preferences.
type DisplaySettings struct {
	// Truncate is the preview length for fragment cards.
	Truncate int
}

// MCPSettings holds MCP HTTP server limits.
type MCPSettings struct {
	// RateLimit is the sustained requests per second.
	RateLimit float64

	// Burst is the token bucket size.
	Burst int
}

// AppSettings holds all application settings.
type AppSettings struct {
	Storage StorageSettings
	Seed    SeedSettings
	Display DisplaySettings
	MCP     MCPSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Backend:    StorageBackendMemory,
			IDStrategy: IDStrategySequence,
		},
		Seed: SeedSettings{},
		Display: DisplaySettings{
			Truncate: 100,
		},
		MCP: MCPSettings{
			RateLimit: 20,
			Burst:     40,
		},
	}
}

// AllStorageBackends returns all available storage backends.
func AllStorageBackends() []StorageBackend {
	return []StorageBackend{StorageBackendMemory, StorageBackendSQLite}
}
