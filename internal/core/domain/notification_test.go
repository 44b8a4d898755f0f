package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangeEvent_Messages(t *testing.T) {
	tests := []struct {
		kind        ChangeKind
		title       string
		description string
		destructive bool
	}{
		{ChangeCreated, "Fragment created", "Your knowledge fragment has been added", false},
		{ChangeUpdated, "Fragment updated", "Your knowledge fragment has been updated", false},
		{ChangeDeleted, "Fragment deleted", "Your knowledge fragment has been removed", true},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			e := ChangeEvent{Kind: tt.kind}
			assert.Equal(t, tt.title, e.Title())
			assert.Equal(t, tt.description, e.Description())
			assert.Equal(t, tt.destructive, e.Destructive())
		})
	}
}
