package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/components/toast"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/views/browse"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/views/detail"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/views/editor"
	"github.com/custodia-labs/fragments-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	browseView *browse.View
	detailView *detail.View
	editorView *editor.View
	toast      *toast.Toast

	currentView messages.ViewType

	// pending collects change events from the feed; they are turned into
	// toasts after each Update.
	mu          sync.Mutex
	pending     []domain.ChangeEvent
	unsubscribe func()

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		browseView:  browse.NewView(s, km, ports.Fragments, ports.Filter),
		detailView:  detail.NewView(s, km, ports.Fragments),
		editorView:  editor.NewView(s, km, ports.Fragments),
		toast:       toast.New(s),
		currentView: messages.ViewBrowse,
		unsubscribe: func() {},
	}

	if ports.Changes != nil {
		a.unsubscribe = ports.Changes.Subscribe(a.enqueue)
	}
	return a, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.browseView.WithContext(ctx)
	a.detailView.WithContext(ctx)
	a.editorView.WithContext(ctx)
	return a
}

// SetTruncate sets the card preview length.
func (a *App) SetTruncate(n int) {
	a.browseView.SetTruncate(n)
}

// Close detaches the app from the change feed.
func (a *App) Close() {
	a.unsubscribe()
}

func (a *App) enqueue(e domain.ChangeEvent) {
	a.mu.Lock()
	a.pending = append(a.pending, e)
	a.mu.Unlock()
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("fragments"),
		a.browseView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	if toastCmd := a.flushChanges(); toastCmd != nil {
		cmd = tea.Batch(cmd, toastCmd)
	}
	return a, cmd
}

//nolint:gocyclo // central message handler
func (a *App) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return tea.Quit
		}
		switch a.currentView {
		case messages.ViewDetail:
			a.detailView, cmd = a.detailView.Update(msg)
		case messages.ViewEditor:
			a.editorView, cmd = a.editorView.Update(msg)
		case messages.ViewBrowse:
			a.browseView, cmd = a.browseView.Update(msg)
		}
		return cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewBrowse {
			a.browseView.Refresh()
		}
		return nil

	case messages.FragmentSelected:
		a.detailView.SetFragment(msg.Fragment)
		a.currentView = messages.ViewDetail
		return nil

	case messages.EditRequested:
		a.editorView.Load(msg.Fragment)
		a.currentView = messages.ViewEditor
		return nil

	case messages.FragmentSaved:
		a.browseView.Refresh()
		if msg.Created {
			a.currentView = messages.ViewBrowse
			return nil
		}
		a.detailView.SetFragment(msg.Fragment)
		a.currentView = messages.ViewDetail
		return nil

	case messages.FragmentDeleted:
		a.currentView = messages.ViewBrowse
		a.browseView.Refresh()
		return nil

	case messages.TagSelected:
		a.ports.Filter.SelectTag(msg.Tag)
		a.currentView = messages.ViewBrowse
		a.browseView.Refresh()
		return nil

	case messages.ToastExpired:
		a.toast.Expire(msg.Seq)
		return nil

	case messages.SettingsChanged:
		if msg.Settings != nil {
			a.browseView.SetTruncate(msg.Settings.Display.Truncate)
		}
		return nil

	case messages.Quit:
		return tea.Quit
	}

	// Forward other messages (cursor blink and the like) to the active view.
	switch a.currentView {
	case messages.ViewBrowse:
		a.browseView, cmd = a.browseView.Update(msg)
	case messages.ViewEditor:
		a.editorView, cmd = a.editorView.Update(msg)
	case messages.ViewDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	}
	return cmd
}

// flushChanges shows a toast for the latest queued change event.
func (a *App) flushChanges() tea.Cmd {
	a.mu.Lock()
	pending := a.pending
	a.pending = nil
	a.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}
	return a.toast.Show(pending[len(pending)-1])
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewDetail:
		body = a.detailView.View()
	case messages.ViewEditor:
		body = a.editorView.View()
	default:
		body = a.browseView.View()
	}

	if t := a.toast.View(); t != "" {
		return lipgloss.JoinVertical(lipgloss.Left, body, t)
	}
	return body
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.browseView.SetDimensions(width, height)
	a.detailView.SetDimensions(width, height)
	a.editorView.SetDimensions(width, height)
}
