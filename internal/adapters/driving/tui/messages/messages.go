// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/fragments-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewBrowse is the search field, tag bar and result list.
	ViewBrowse ViewType = iota
	// ViewDetail shows a single fragment.
	ViewDetail
	// ViewEditor creates or edits a fragment.
	ViewEditor
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewBrowse:
		return "browse"
	case ViewDetail:
		return "detail"
	case ViewEditor:
		return "editor"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// FragmentSelected opens a fragment in the detail view.
type FragmentSelected struct {
	Fragment domain.Fragment
}

// EditRequested opens the editor. A nil Fragment starts a new one.
type EditRequested struct {
	Fragment *domain.Fragment
}

// FragmentSaved is sent after the editor stored a fragment.
type FragmentSaved struct {
	Fragment domain.Fragment
	Created  bool
}

// FragmentDeleted is sent after the detail view removed a fragment.
type FragmentDeleted struct {
	ID string
}

// TagSelected is sent when a tag is picked from the detail view. The
// query is cleared and the tag becomes a filter.
type TagSelected struct {
	Tag string
}

// ToastExpired hides the toast with the given sequence number.
type ToastExpired struct {
	Seq int
}

// SettingsChanged carries settings reloaded from the config file.
type SettingsChanged struct {
	Settings *domain.AppSettings
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
