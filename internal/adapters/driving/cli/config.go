package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fragments-cli/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "View and change settings",
	Annotations: map[string]string{settingsOnly: "true"},
	Long: `Settings live in config.toml inside the config directory.

Keys:
  storage.backend    memory or sqlite
  ids.strategy       sequence or uuid
  seed.path          TOML, YAML or JSON file to seed from; "none" starts empty
  display.truncate   preview length of fragment cards
  mcp.rate_limit     MCP HTTP requests per second
  mcp.burst          MCP HTTP burst size`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Example: `  fragments config set storage.backend sqlite
  fragments config set seed.path ~/notes/fragments.yaml
  fragments config set display.truncate 60`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println(configPath)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	s, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	seedPath := s.Seed.Path
	if seedPath == "" {
		seedPath = "(built-in samples)"
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "storage.backend\t%s\t%s\n", s.Storage.Backend, s.Storage.Backend.Description())
	fmt.Fprintf(w, "ids.strategy\t%s\n", s.Storage.IDStrategy)
	fmt.Fprintf(w, "seed.path\t%s\n", seedPath)
	fmt.Fprintf(w, "display.truncate\t%d\n", s.Display.Truncate)
	fmt.Fprintf(w, "mcp.rate_limit\t%g\n", s.MCP.RateLimit)
	fmt.Fprintf(w, "mcp.burst\t%d\n", s.MCP.Burst)
	return w.Flush()
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	s, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	key, value := args[0], strings.TrimSpace(args[1])
	if err := applySetting(s, key, value); err != nil {
		return err
	}
	if err := settingsService.Save(s); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func applySetting(s *domain.AppSettings, key, value string) error {
	switch key {
	case "storage.backend":
		s.Storage.Backend = domain.StorageBackend(value)
	case "ids.strategy":
		s.Storage.IDStrategy = domain.IDStrategy(value)
	case "seed.path":
		if err := checkSeedPath(value); err != nil {
			return err
		}
		s.Seed.Path = value
	case "display.truncate":
		n, err := positiveInt(key, value)
		if err != nil {
			return err
		}
		s.Display.Truncate = n
	case "mcp.burst":
		n, err := positiveInt(key, value)
		if err != nil {
			return err
		}
		s.MCP.Burst = n
	case "mcp.rate_limit":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%w: %s must be a positive number", domain.ErrInvalidInput, key)
		}
		s.MCP.RateLimit = f
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return nil
}

// checkSeedPath accepts "", "none" or an existing regular file.
func checkSeedPath(path string) error {
	if path == "" || path == domain.SeedNone {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: seed.path %q: %v", domain.ErrInvalidInput, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: seed.path %q is a directory", domain.ErrInvalidInput, path)
	}
	return nil
}

func positiveInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
	}
	return n, nil
}
