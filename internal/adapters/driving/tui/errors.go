package tui

import "errors"

// ErrMissingFragmentService is returned when the fragment service is not provided.
var ErrMissingFragmentService = errors.New("tui: fragment service is required")

// ErrMissingFilterService is returned when the filter session is not provided.
var ErrMissingFilterService = errors.New("tui: filter service is required")
