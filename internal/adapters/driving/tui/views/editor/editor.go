// Package editor provides the create and edit form for fragments.
package editor

import (
	"context"
	"errors"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/form"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/fragments-cli/internal/core/domain"
	"github.com/custodia-labs/fragments-cli/internal/core/ports/driving"
)

// ErrNoFragmentService is returned when saving without a fragment service.
var ErrNoFragmentService = errors.New("editor: fragment service not available")

// Field identifies a form field.
type Field int

const (
	FieldTitle Field = iota
	FieldType
	FieldContent
	FieldTags
)

const fieldCount = 4

// View is the fragment editor.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar

	fragments driving.FragmentService
	ctx       context.Context

	title   textinput.Model
	content textarea.Model
	tags    textinput.Model
	typ     domain.FragmentType

	// existing is the fragment being edited, nil for a new one.
	existing *domain.Fragment
	field    Field
	width    int
	height   int
}

// NewView creates a new editor view.
func NewView(s *styles.Styles, km *keymap.KeyMap, fragments driving.FragmentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	title := textinput.New()
	title.Placeholder = "Fragment title"
	title.CharLimit = 200

	tags := textinput.New()
	tags.Placeholder = "comma, separated, tags"

	content := textarea.New()
	content.Placeholder = "Content, URL or code"
	content.ShowLineNumbers = false
	content.CharLimit = 0

	v := &View{
		styles:    s,
		keymap:    km,
		statusbar: status.NewBar(s),
		fragments: fragments,
		ctx:       context.Background(),
		title:     title,
		content:   content,
		tags:      tags,
		width:     80,
		height:    24,
	}
	v.statusbar.SetHints(km.EditorHelp())
	v.Load(nil)
	return v
}

// WithContext sets the context for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Load fills the form from f, or clears it for a new fragment when f is nil.
func (v *View) Load(f *domain.Fragment) {
	v.existing = nil
	in := form.Input{Type: domain.FragmentTypeText.String()}
	if f != nil {
		existing := *f
		v.existing = &existing
		in = form.FromFragment(existing)
	}

	v.title.SetValue(in.Title)
	v.content.SetValue(in.Content)
	v.tags.SetValue(in.Tags)
	v.typ = domain.FragmentType(in.Type)
	v.statusbar.SetError(nil)
	v.setField(FieldTitle)
}

// Editing reports whether an existing fragment is loaded.
func (v *View) Editing() bool {
	return v.existing != nil
}

// Field returns the focused field.
func (v *View) Field() Field {
	return v.field
}

// Type returns the selected fragment type.
func (v *View) Type() domain.FragmentType {
	return v.typ
}

// Err returns the last validation or save error.
func (v *View) Err() error {
	return v.statusbar.Err()
}

// Update handles messages for the editor.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v.forward(msg)
	}

	switch {
	case key.Matches(keyMsg, v.keymap.Save):
		return v, v.save()
	case key.Matches(keyMsg, v.keymap.Back):
		return v, v.cancel()
	case key.Matches(keyMsg, v.keymap.Focus):
		v.setField((v.field + 1) % fieldCount)
		return v, nil
	case key.Matches(keyMsg, v.keymap.FocusBack):
		v.setField((v.field + fieldCount - 1) % fieldCount)
		return v, nil
	}

	if v.field == FieldType {
		v.cycleType(keyMsg)
		return v, nil
	}
	return v.forward(msg)
}

func (v *View) forward(msg tea.Msg) (*View, tea.Cmd) {
	var cmd tea.Cmd
	switch v.field {
	case FieldTitle:
		v.title, cmd = v.title.Update(msg)
	case FieldContent:
		v.content, cmd = v.content.Update(msg)
	case FieldTags:
		v.tags, cmd = v.tags.Update(msg)
	case FieldType:
	}
	return v, cmd
}

func (v *View) cycleType(msg tea.KeyMsg) {
	types := domain.FragmentTypes()
	i := max(slices.Index(types, v.typ), 0)

	switch {
	case key.Matches(msg, v.keymap.Left), key.Matches(msg, v.keymap.Up):
		v.typ = types[(i+len(types)-1)%len(types)]
	case key.Matches(msg, v.keymap.Right), key.Matches(msg, v.keymap.Down):
		v.typ = types[(i+1)%len(types)]
	}
}

func (v *View) input() form.Input {
	return form.Input{
		Title:   v.title.Value(),
		Content: v.content.Value(),
		Type:    v.typ.String(),
		Tags:    v.tags.Value(),
	}
}

func (v *View) save() tea.Cmd {
	if v.fragments == nil {
		v.statusbar.SetError(ErrNoFragmentService)
		return nil
	}

	if v.existing == nil {
		draft, err := form.Draft(v.input())
		if err != nil {
			v.statusbar.SetError(err)
			return nil
		}
		created, err := v.fragments.Create(v.ctx, draft)
		if err != nil {
			v.statusbar.SetError(err)
			return nil
		}
		saved := *created
		return func() tea.Msg { return messages.FragmentSaved{Fragment: saved, Created: true} }
	}

	updated, err := form.Apply(*v.existing, v.input())
	if err != nil {
		v.statusbar.SetError(err)
		return nil
	}
	f, err := v.fragments.Update(v.ctx, updated)
	if err != nil {
		v.statusbar.SetError(err)
		return nil
	}
	saved := *f
	return func() tea.Msg { return messages.FragmentSaved{Fragment: saved} }
}

func (v *View) cancel() tea.Cmd {
	if v.existing != nil {
		f := *v.existing
		return func() tea.Msg { return messages.FragmentSelected{Fragment: f} }
	}
	return func() tea.Msg { return messages.ViewChanged{View: messages.ViewBrowse} }
}

func (v *View) setField(f Field) {
	v.field = f
	v.title.Blur()
	v.content.Blur()
	v.tags.Blur()

	switch f {
	case FieldTitle:
		v.title.Focus()
	case FieldContent:
		v.content.Focus()
	case FieldTags:
		v.tags.Focus()
	case FieldType:
	}
}

// View renders the editor.
func (v *View) View() string {
	heading := "New Fragment"
	if v.existing != nil {
		heading = "Edit Fragment"
	}

	types := domain.FragmentTypes()
	options := make([]string, len(types))
	for i, t := range types {
		style := v.styles.Muted
		if t == v.typ {
			style = v.styles.Selected
		}
		options[i] = style.Render(" " + t.Label() + " ")
	}

	sections := []string{
		v.styles.Title.Render(heading),
		"",
		v.label("Title", FieldTitle),
		v.title.View(),
		"",
		v.label("Type", FieldType),
		lipgloss.JoinHorizontal(lipgloss.Top, options...),
		"",
		v.label("Content", FieldContent),
		v.content.View(),
		"",
		v.label("Tags", FieldTags),
		v.tags.View(),
		"",
		v.statusbar.View(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) label(text string, f Field) string {
	if f == v.field {
		return v.styles.Subtitle.Render("> " + text)
	}
	return v.styles.Muted.Render("  " + text)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height

	v.title.Width = max(width-4, 20)
	v.tags.Width = max(width-4, 20)
	v.content.SetWidth(max(width-2, 20))
	v.content.SetHeight(max(height-16, 3))
	v.statusbar.SetWidth(width)
}
