// Package toast shows short-lived notifications about fragment changes.
package toast

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/fragments-cli/internal/core/domain"
)

// DefaultDuration is how long a toast stays visible.
const DefaultDuration = 3 * time.Second

// Toast displays the most recent change event until it expires. Each
// Show bumps a sequence number so an older expiry cannot hide a newer toast.
type Toast struct {
	styles   *styles.Styles
	duration time.Duration
	event    *domain.ChangeEvent
	seq      int
}

// New creates a hidden toast.
func New(s *styles.Styles) *Toast {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Toast{styles: s, duration: DefaultDuration}
}

// SetDuration changes how long toasts stay visible.
func (t *Toast) SetDuration(d time.Duration) {
	t.duration = d
}

// Show displays e and returns the command that expires it.
func (t *Toast) Show(e domain.ChangeEvent) tea.Cmd {
	t.seq++
	t.event = &e

	seq := t.seq
	return tea.Tick(t.duration, func(time.Time) tea.Msg {
		return messages.ToastExpired{Seq: seq}
	})
}

// Expire hides the toast if seq is the latest one shown.
func (t *Toast) Expire(seq int) {
	if seq == t.seq {
		t.event = nil
	}
}

// Visible reports whether a toast is showing.
func (t *Toast) Visible() bool {
	return t.event != nil
}

// Seq returns the sequence number of the latest toast.
func (t *Toast) Seq() int {
	return t.seq
}

// View renders the toast, or nothing when hidden.
func (t *Toast) View() string {
	if t.event == nil {
		return ""
	}

	style, mark := t.styles.Toast, "✓"
	if t.event.Destructive() {
		style, mark = t.styles.ToastDestructive, "✗"
	}
	return style.Render(mark + " " + t.event.Title() + ": " + t.event.Description())
}
