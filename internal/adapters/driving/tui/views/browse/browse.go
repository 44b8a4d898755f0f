// Package browse provides the main view: the search field, the tag
// selector and the filtered fragment list.
package browse

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/components/tagbar"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/fragments-cli/internal/core/domain"
	"github.com/custodia-labs/fragments-cli/internal/core/ports/driving"
)

// ErrNoServices is returned when the view has no session to read from.
var ErrNoServices = errors.New("browse: services not available")

// Focus identifies which part of the view receives keys.
type Focus int

const (
	// FocusSearch sends keys to the search field.
	FocusSearch Focus = iota
	// FocusTags sends keys to the tag bar.
	FocusTags
	// FocusList sends keys to the result list.
	FocusList
)

const focusCount = 3

// View is the browse view.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	tags      *tagbar.TagBar
	list      *list.FragmentList
	statusbar *status.Bar

	fragments driving.FragmentService
	filter    driving.SessionService
	ctx       context.Context

	focus  Focus
	width  int
	height int
}

// NewView creates a new browse view over the session's services.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	fragments driving.FragmentService,
	filter driving.SessionService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:    s,
		keymap:    km,
		input:     input.NewSearchInput(s),
		tags:      tagbar.New(s),
		list:      list.NewFragmentList(s),
		statusbar: status.NewBar(s),
		fragments: fragments,
		filter:    filter,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
	v.setFocus(FocusSearch)
	return v
}

// WithContext sets the context for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the first result set.
func (v *View) Init() tea.Cmd {
	v.Refresh()
	return v.input.Init()
}

// Update handles messages for the browse view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		_, cmd := v.input.Update(msg)
		return v, cmd
	}

	switch {
	case key.Matches(keyMsg, v.keymap.New):
		return v, func() tea.Msg { return messages.EditRequested{} }
	case key.Matches(keyMsg, v.keymap.Focus):
		v.setFocus((v.focus + 1) % focusCount)
		return v, nil
	case key.Matches(keyMsg, v.keymap.FocusBack):
		v.setFocus((v.focus + focusCount - 1) % focusCount)
		return v, nil
	}

	switch v.focus {
	case FocusTags:
		return v.updateTags(keyMsg)
	case FocusList:
		return v.updateList(keyMsg)
	default:
		return v.updateSearch(keyMsg)
	}
}

func (v *View) updateSearch(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type { //nolint:exhaustive // handling only relevant key types
	case tea.KeyEsc:
		if v.input.Value() != "" {
			v.input.SetValue("")
			v.filter.ClearQuery()
			v.Refresh()
		}
		return v, nil
	case tea.KeyEnter, tea.KeyDown:
		v.setFocus(FocusList)
		return v, nil
	}

	changed, cmd := v.input.Update(msg)
	if changed {
		v.filter.SetQuery(v.input.Value())
		v.Refresh()
	}
	return v, cmd
}

func (v *View) updateTags(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Back):
		v.setFocus(FocusSearch)
	case key.Matches(msg, v.keymap.Left):
		v.tags.Left()
	case key.Matches(msg, v.keymap.Right):
		v.tags.Right()
	case key.Matches(msg, v.keymap.Toggle):
		if tag := v.tags.Current(); tag != "" {
			v.filter.ToggleTag(tag)
			v.Refresh()
		}
	case key.Matches(msg, v.keymap.ClearTags):
		v.filter.ClearTags()
		v.Refresh()
	case key.Matches(msg, v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	}
	return v, nil
}

func (v *View) updateList(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Back), key.Matches(msg, v.keymap.SearchFocus):
		v.setFocus(FocusSearch)
	case key.Matches(msg, v.keymap.Up):
		v.list.MoveUp()
	case key.Matches(msg, v.keymap.Down):
		v.list.MoveDown()
	case key.Matches(msg, v.keymap.Open):
		if f := v.list.SelectedFragment(); f != nil {
			selected := *f
			return v, func() tea.Msg { return messages.FragmentSelected{Fragment: selected} }
		}
	case key.Matches(msg, v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	}
	return v, nil
}

// Refresh re-reads the filter state, tags and results from the session.
func (v *View) Refresh() {
	if v.fragments == nil || v.filter == nil {
		v.statusbar.SetError(ErrNoServices)
		return
	}

	state := v.filter.State()
	if v.input.Value() != state.Query {
		v.input.SetValue(state.Query)
	}

	results, err := v.filter.Results(v.ctx)
	if err != nil {
		v.statusbar.SetError(err)
		return
	}
	tags, err := v.fragments.Tags(v.ctx)
	if err != nil {
		v.statusbar.SetError(err)
		return
	}
	all, err := v.fragments.List(v.ctx)
	if err != nil {
		v.statusbar.SetError(err)
		return
	}

	v.statusbar.SetError(nil)
	v.list.SetResults(results, state.NormalisedQuery())
	v.tags.SetTags(tags, state.Tags)
	v.statusbar.SetCounts(len(results), len(all))
}

func (v *View) setFocus(f Focus) {
	v.focus = f
	if f == FocusSearch {
		v.input.Focus()
	} else {
		v.input.Blur()
	}
	v.tags.SetFocused(f == FocusTags)
	v.list.SetFocused(f == FocusList)

	switch f {
	case FocusTags:
		v.statusbar.SetHints(v.keymap.TagsHelp())
	default:
		v.statusbar.SetHints(v.keymap.BrowseHelp())
	}
}

// View renders the browse view.
func (v *View) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		v.styles.Title.Render("Knowledge Fragments"),
		"",
		v.input.View(),
		"",
		v.tags.View(),
		"",
		v.list.View(),
		"",
		v.statusbar.View(),
	)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height

	v.input.SetWidth(width)
	v.tags.SetWidth(width)
	v.list.SetDimensions(width, height-12) // header, input, tags and status
	v.statusbar.SetWidth(width)
}

// SetTruncate sets the card preview length.
func (v *View) SetTruncate(n int) {
	v.list.SetTruncate(n)
}

// Truncate returns the card preview length.
func (v *View) Truncate() int {
	return v.list.Truncate()
}

// Focus returns which part of the view has focus.
func (v *View) Focus() Focus {
	return v.focus
}

// Query returns the text in the search field.
func (v *View) Query() string {
	return v.input.Value()
}

// Results returns the listed fragments.
func (v *View) Results() []domain.Fragment {
	return v.list.Fragments()
}

// Err returns the error shown in the status bar, if any.
func (v *View) Err() error {
	return v.statusbar.Err()
}
