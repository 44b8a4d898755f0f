// Package detail shows a single fragment with edit, delete and tag
// selection actions.
package detail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/fragments-cli/internal/core/domain"
	"github.com/custodia-labs/fragments-cli/internal/core/ports/driving"
)

// ErrNoFragmentService is returned when deleting without a fragment service.
var ErrNoFragmentService = errors.New("detail: fragment service not available")

const timeLayout = "Jan 2, 2006 15:04"

// View is the fragment detail view.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar

	fragments driving.FragmentService
	ctx       context.Context

	fragment   *domain.Fragment
	confirming bool
	width      int
	height     int
}

// NewView creates a new detail view.
func NewView(s *styles.Styles, km *keymap.KeyMap, fragments driving.FragmentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:    s,
		keymap:    km,
		statusbar: status.NewBar(s),
		fragments: fragments,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
	v.statusbar.SetHints(km.DetailHelp())
	return v
}

// WithContext sets the context for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetFragment shows f and cancels any pending delete prompt.
func (v *View) SetFragment(f domain.Fragment) {
	v.fragment = &f
	v.confirming = false
	v.statusbar.SetError(nil)
	v.statusbar.SetHints(v.keymap.DetailHelp())
}

// Fragment returns the fragment shown, or nil.
func (v *View) Fragment() *domain.Fragment {
	return v.fragment
}

// Confirming reports whether the delete prompt is open.
func (v *View) Confirming() bool {
	return v.confirming
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || v.fragment == nil {
		return v, nil
	}

	if v.confirming {
		return v.updateConfirm(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewBrowse} }
	case key.Matches(keyMsg, v.keymap.Edit):
		f := *v.fragment
		return v, func() tea.Msg { return messages.EditRequested{Fragment: &f} }
	case key.Matches(keyMsg, v.keymap.Delete):
		v.confirming = true
		v.statusbar.SetHints(v.keymap.ConfirmHelp())
		return v, nil
	case key.Matches(keyMsg, v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	}

	if tag, ok := v.tagForKey(keyMsg); ok {
		return v, func() tea.Msg { return messages.TagSelected{Tag: tag} }
	}
	return v, nil
}

func (v *View) updateConfirm(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Confirm):
		v.confirming = false
		v.statusbar.SetHints(v.keymap.DetailHelp())
		return v, v.delete()
	case key.Matches(msg, v.keymap.Deny):
		v.confirming = false
		v.statusbar.SetHints(v.keymap.DetailHelp())
	}
	return v, nil
}

func (v *View) delete() tea.Cmd {
	if v.fragments == nil {
		v.statusbar.SetError(ErrNoFragmentService)
		return nil
	}

	id := v.fragment.ID
	if err := v.fragments.Delete(v.ctx, id); err != nil {
		v.statusbar.SetError(err)
		return nil
	}
	return func() tea.Msg { return messages.FragmentDeleted{ID: id} }
}

// tagForKey maps 1-9 to the fragment's tags in display order.
func (v *View) tagForKey(msg tea.KeyMsg) (string, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return "", false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return "", false
	}
	i := int(r - '1')
	if i >= len(v.fragment.Tags) {
		return "", false
	}
	return v.fragment.Tags[i], true
}

// View renders the detail view.
func (v *View) View() string {
	if v.fragment == nil {
		return v.styles.Muted.Render("No fragment selected.")
	}
	f := v.fragment

	header := v.styles.Title.Render(f.Title) + " " + v.styles.TypeBadge(f.Type)
	meta := v.styles.Muted.Render(fmt.Sprintf("%s  Created %s  Updated %s",
		f.ID, f.CreatedAt.Local().Format(timeLayout), f.UpdatedAt.Local().Format(timeLayout)))

	tags := make([]string, len(f.Tags))
	for i, tag := range f.Tags {
		label := "#" + tag
		if i < 9 {
			label = fmt.Sprintf("%d %s", i+1, label)
		}
		tags[i] = v.styles.Tag.Render(label)
	}
	tagLine := v.styles.Muted.Render("No tags")
	if len(tags) > 0 {
		tagLine = strings.Join(tags, "  ")
	}

	body := v.styles.Content.Width(max(v.width-4, 20)).Render(renderContent(*f))

	sections := []string{header, meta, "", tagLine, "", body, ""}
	if v.confirming {
		sections = append(sections,
			v.styles.Error.Render(fmt.Sprintf("Delete %q? This cannot be undone. [y/n]", f.Title)), "")
	}
	sections = append(sections, v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderContent presents the body according to the fragment type.
func renderContent(f domain.Fragment) string {
	content := strings.TrimSpace(f.Content)
	switch f.Type {
	case domain.FragmentTypeVideo, domain.FragmentTypeWebsite, domain.FragmentTypeSong:
		return "Link: " + content
	case domain.FragmentTypeCode:
		return stripFence(content)
	default:
		return content
	}
}

// stripFence removes a surrounding ``` fence and its language tag.
func stripFence(code string) string {
	const fence = "```"
	if !strings.HasPrefix(code, fence) || !strings.HasSuffix(code, fence) || len(code) < 2*len(fence) {
		return code
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(code, fence), fence)
	if nl := strings.IndexByte(inner, '\n'); nl >= 0 {
		inner = inner[nl+1:]
	}
	return strings.TrimRight(inner, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.statusbar.SetWidth(width)
}
