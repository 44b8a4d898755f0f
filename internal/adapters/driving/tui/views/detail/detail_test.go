package detail

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fragments-cli/internal/adapters/driven/idgen"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driven/seed"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/fragments-cli/internal/core/domain"
	"github.com/custodia-labs/fragments-cli/internal/core/services"
)

func newSeeded(t *testing.T) *services.FragmentService {
	t.Helper()
	fragments := services.NewFragmentService(memory.NewFragmentStore(), idgen.NewSequence(), nil)
	require.NoError(t, fragments.Init(context.Background(), seed.Samples()))
	return fragments
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_Empty(t *testing.T) {
	v := NewView(nil, nil, nil)

	assert.Nil(t, v.Fragment())
	assert.Contains(t, v.View(), "No fragment selected.")

	_, cmd := v.Update(runes("e"))
	assert.Nil(t, cmd)
}

func TestView_Render(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.SetFragment(seed.Samples()[1])

	out := v.View()
	assert.Contains(t, out, "How to Build a Neural Network from Scratch")
	assert.Contains(t, out, "[Video]")
	assert.Contains(t, out, "1 #machine learning")
	assert.Contains(t, out, "Link: https://www.youtube.com/watch?v=Wo5dMEP_BbI")
}

func TestView_RenderNoTags(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.SetFragment(domain.Fragment{ID: "x", Title: "Bare", Content: "body", Type: domain.FragmentTypeText,
		CreatedAt: time.Now(), UpdatedAt: time.Now()})

	assert.Contains(t, v.View(), "No tags")
}

func TestView_Keys(t *testing.T) {
	v := NewView(nil, nil, nil)
	f := seed.Samples()[0]
	v.SetFragment(f)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewBrowse}, cmd())

	_, cmd = v.Update(runes("e"))
	require.NotNil(t, cmd)
	edit, ok := cmd().(messages.EditRequested)
	require.True(t, ok)
	require.NotNil(t, edit.Fragment)
	assert.Equal(t, f.ID, edit.Fragment.ID)

	_, cmd = v.Update(runes("3"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.TagSelected{Tag: "web development"}, cmd())

	_, cmd = v.Update(runes("4"))
	assert.Nil(t, cmd, "no fourth tag")

	_, cmd = v.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.Quit{}, cmd())
}

func TestView_Delete(t *testing.T) {
	fragments := newSeeded(t)
	v := NewView(nil, nil, fragments)
	v.SetFragment(seed.Samples()[2])

	_, cmd := v.Update(runes("d"))
	assert.Nil(t, cmd)
	require.True(t, v.Confirming())

	_, cmd = v.Update(runes("y"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.FragmentDeleted{ID: "f3"}, cmd())
	assert.False(t, v.Confirming())

	_, err := fragments.Get(context.Background(), "f3")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestView_DeleteMissing(t *testing.T) {
	fragments := newSeeded(t)
	require.NoError(t, fragments.Delete(context.Background(), "f3"))

	v := NewView(nil, nil, fragments)
	v.SetFragment(seed.Samples()[2])
	v.Update(runes("d"))

	_, cmd := v.Update(runes("y"))
	assert.Nil(t, cmd)
	assert.Contains(t, v.View(), "not found")
}

func TestView_DeleteWithoutService(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.SetFragment(seed.Samples()[0])
	v.Update(runes("d"))

	_, cmd := v.Update(runes("y"))
	assert.Nil(t, cmd)
	assert.Contains(t, v.View(), ErrNoFragmentService.Error())
}

func TestView_SetFragmentCancelsPrompt(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.SetFragment(seed.Samples()[0])
	v.Update(runes("d"))
	require.True(t, v.Confirming())

	v.SetFragment(seed.Samples()[1])
	assert.False(t, v.Confirming())
}

func TestRenderContent(t *testing.T) {
	samples := seed.Samples()

	assert.Equal(t, samples[0].Content, renderContent(samples[0]))
	assert.Equal(t, "Link: "+samples[4].Content, renderContent(samples[4]))

	code := renderContent(samples[3])
	assert.NotContains(t, code, "```")
	assert.Contains(t, code, "function ExpensiveComponent({ data }) {")
}

func TestStripFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```go\nfmt.Println()\n```", "fmt.Println()"},
		{"```\nplain\n```", "plain"},
		{"no fence", "no fence"},
		{"```", "```"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, stripFence(tt.in), tt.in)
	}
}
