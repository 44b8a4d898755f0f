package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fragments-cli/internal/core/domain"
	"github.com/custodia-labs/fragments-cli/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Type to search, pick tags to narrow the list, and open a fragment to read,
edit or delete it. Edits to the config file (display.truncate) apply live.

Controls:
  Tab/Shift+Tab - Move between search, tags and list
  ↑/k, ↓/j      - Navigate fragments
  ←/h, →/l      - Move along the tags
  Space/Enter   - Toggle a tag / open a fragment
  1-9           - Filter by a tag of the open fragment
  Ctrl+N        - New fragment
  e / d         - Edit / delete the open fragment
  Ctrl+S        - Save in the editor
  Esc           - Back / Cancel
  q             - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Fragments: fragmentService,
		Filter:    filterService,
		Changes:   changeFeed,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	defer app.Close()

	app.WithContext(cmd.Context())
	app.SetTruncate(settingsOrDefault().Display.Truncate)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	if watchSettings != nil {
		stop, err := watchSettings(func(s *domain.AppSettings) {
			p.Send(messages.SettingsChanged{Settings: s})
		})
		switch {
		case errors.Is(err, domain.ErrNotImplemented):
		case err != nil:
			logger.Warn("Settings will not reload: %v", err)
		default:
			defer func() { _ = stop() }()
		}
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
