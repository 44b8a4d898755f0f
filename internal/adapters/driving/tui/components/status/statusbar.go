// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/styles"
)

// Bar shows the result count or an error on the left and key hints on
// the right.
type Bar struct {
	styles *styles.Styles
	hints  []key.Binding
	count   int
	total   int
	counted bool
	err    error
	width  int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Bar{styles: s, width: 80}
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := max(b.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return b.styles.StatusBar.Render(left + strings.Repeat(" ", padding) + right)
}

func (b *Bar) renderLeft() string {
	if b.err != nil {
		return b.styles.Error.Render("Error: " + b.err.Error())
	}
	if !b.counted {
		return ""
	}
	if b.count == b.total {
		return b.styles.Normal.Render(fmt.Sprintf("%d fragments", b.total))
	}
	return b.styles.Normal.Render(fmt.Sprintf("%d of %d fragments", b.count, b.total))
}

func (b *Bar) renderRight() string {
	hints := make([]string, 0, len(b.hints))
	for _, h := range b.hints {
		help := h.Help()
		hints = append(hints, help.Key+": "+help.Desc)
	}
	return b.styles.Help.Render(strings.Join(hints, " | "))
}

// SetHints sets the key hints for the active view or focus.
func (b *Bar) SetHints(hints []key.Binding) {
	b.hints = hints
}

// SetCounts sets the number of shown fragments out of the collection size.
func (b *Bar) SetCounts(shown, total int) {
	b.count = shown
	b.total = total
	b.counted = true
}

// SetError shows err until cleared with nil.
func (b *Bar) SetError(err error) {
	b.err = err
}

// Err returns the error being shown.
func (b *Bar) Err() error {
	return b.err
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}
