package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/custodia-labs/fragments-cli/internal/core/domain"
	"github.com/custodia-labs/fragments-cli/internal/core/services"
)

const (
	defaultWidth = 80
	indent       = "    "
	timeLayout   = "2006-01-02 15:04"
)

var (
	createdColor = color.New(color.FgGreen, color.Bold)
	deletedColor = color.New(color.FgRed, color.Bold)
	idColor      = color.New(color.FgCyan)
	tagColor     = color.New(color.FgYellow)
	matchColor   = color.New(color.Bold, color.Underline)
)

// fragmentView is the JSON shape of a fragment.
type fragmentView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toView(f domain.Fragment) fragmentView {
	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}
	return fragmentView{
		ID:        f.ID,
		Title:     f.Title,
		Content:   f.Content,
		Type:      f.Type.String(),
		Tags:      tags,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	return nil
}

func writeFragmentsJSON(w io.Writer, fragments []domain.Fragment) error {
	views := make([]fragmentView, 0, len(fragments))
	for i := range fragments {
		views = append(views, toView(fragments[i]))
	}
	return writeJSON(w, views)
}

// terminalWidth returns the width of w if it is a terminal.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}

// previewLength is the card preview length: the configured truncation,
// capped so a preview fits on one terminal line.
func previewLength(w io.Writer) int {
	limit := settingsOrDefault().Display.Truncate
	if room := terminalWidth(w) - len(indent) - len("..."); room > 0 && (limit <= 0 || room < limit) {
		limit = room
	}
	return limit
}

// writeCard prints one fragment as a compact card. Query matches in the
// title and preview are emphasised.
func writeCard(w io.Writer, f domain.Fragment, query string) {
	idColor.Fprint(w, f.ID)
	fmt.Fprintf(w, "  [%s]  ", f.Type.Label())
	writeHighlighted(w, f.Title, query)
	fmt.Fprintln(w)

	if len(f.Tags) > 0 {
		fmt.Fprint(w, indent)
		for i, tag := range f.Tags {
			if i > 0 {
				fmt.Fprint(w, " ")
			}
			tagColor.Fprint(w, "#"+tag)
		}
		fmt.Fprintln(w)
	}

	preview := strings.Join(strings.Fields(f.Content), " ")
	fmt.Fprint(w, indent)
	writeHighlighted(w, services.Truncate(preview, previewLength(w)), query)
	fmt.Fprintln(w)
}

func writeHighlighted(w io.Writer, text, query string) {
	for _, seg := range services.Highlight(text, query) {
		if seg.Match {
			matchColor.Fprint(w, seg.Text)
		} else {
			fmt.Fprint(w, seg.Text)
		}
	}
}

func writeDetail(w io.Writer, f domain.Fragment) {
	fmt.Fprintln(w, color.New(color.Bold).Sprint(f.Title))
	fmt.Fprintf(w, "Type:    %s\n", f.Type.Label())
	fmt.Fprintf(w, "ID:      %s\n", f.ID)
	fmt.Fprintf(w, "Created: %s\n", f.CreatedAt.Local().Format(timeLayout))
	fmt.Fprintf(w, "Updated: %s\n", f.UpdatedAt.Local().Format(timeLayout))
	if len(f.Tags) > 0 {
		fmt.Fprintf(w, "Tags:    %s\n", strings.Join(f.Tags, ", "))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.TrimSpace(f.Content))
}

// notificationPrinter prints change events the way the TUI shows toasts.
func notificationPrinter(w io.Writer) func(domain.ChangeEvent) {
	return func(e domain.ChangeEvent) {
		c, mark := createdColor, "✓"
		if e.Destructive() {
			c, mark = deletedColor, "✗"
		}
		c.Fprintf(w, "%s %s", mark, e.Title())
		fmt.Fprintf(w, ": %s\n", e.Description())
	}
}
