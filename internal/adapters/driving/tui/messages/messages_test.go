package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view     ViewType
		expected string
	}{
		{ViewBrowse, "browse"},
		{ViewDetail, "detail"},
		{ViewEditor, "editor"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.view.String())
		})
	}
}

func TestViewType_ZeroIsBrowse(t *testing.T) {
	var v ViewType
	assert.Equal(t, ViewBrowse, v)
}
