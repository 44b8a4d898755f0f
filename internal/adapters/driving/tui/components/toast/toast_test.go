package toast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fragments-cli/internal/core/domain"
)

func TestToast_ShowAndExpire(t *testing.T) {
	toast := New(nil)
	toast.SetDuration(time.Millisecond)
	assert.False(t, toast.Visible())
	assert.Empty(t, toast.View())

	cmd := toast.Show(domain.ChangeEvent{Kind: domain.ChangeCreated})
	require.NotNil(t, cmd)
	assert.True(t, toast.Visible())
	assert.Contains(t, toast.View(), "Fragment created: Your knowledge fragment has been added")

	msg := cmd()
	expired, ok := msg.(messages.ToastExpired)
	require.True(t, ok)
	assert.Equal(t, toast.Seq(), expired.Seq)

	toast.Expire(expired.Seq)
	assert.False(t, toast.Visible())
}

func TestToast_StaleExpiryKeepsNewerToast(t *testing.T) {
	toast := New(nil)

	toast.Show(domain.ChangeEvent{Kind: domain.ChangeCreated})
	first := toast.Seq()
	toast.Show(domain.ChangeEvent{Kind: domain.ChangeDeleted})

	toast.Expire(first)
	assert.True(t, toast.Visible())
	assert.Contains(t, toast.View(), "✗ Fragment deleted")
}
