package list

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/fragments-cli/internal/core/services"
)

// Highlight renders text with query matches in the match style and the
// rest in base.
func Highlight(text, query string, base, match lipgloss.Style) string {
	var b strings.Builder
	for _, seg := range services.Highlight(text, query) {
		if seg.Match {
			b.WriteString(match.Render(seg.Text))
		} else {
			b.WriteString(base.Render(seg.Text))
		}
	}
	return b.String()
}
