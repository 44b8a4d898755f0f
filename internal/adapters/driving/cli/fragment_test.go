package cli

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fragments-cli/internal/core/domain"
)

func TestFragmentCommands_Registered(t *testing.T) {
	for _, name := range []string{"list", "show", "add", "edit", "rm", "tags", "search", "config", "tui", "mcp", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestListCmd(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "list")
	require.NoError(t, err)

	assert.Contains(t, out, "f1  [Text]  Understanding React Hooks")
	assert.Contains(t, out, "#programming #react #web development")
	assert.Contains(t, out, "f8  [Text]  Meditation Basics for Beginners")
	assert.Less(t, strings.Index(out, "f1  "), strings.Index(out, "f2  "))
	assert.Contains(t, out, "...")
}

func TestListCmd_Alias(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "f5  [Song]")
}

func TestListCmd_JSON(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "list", "--json")
	require.NoError(t, err)

	var got []fragmentView
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 8)
	assert.Equal(t, "f2", got[1].ID)
	assert.Equal(t, "video", got[1].Type)
	assert.Equal(t, []string{"machine learning", "programming", "python", "neural networks"}, got[1].Tags)
}

func TestListCmd_Empty(t *testing.T) {
	c := setupTestServices(t)
	ctx := context.Background()
	all, err := c.Fragments.List(ctx)
	require.NoError(t, err)
	for _, f := range all {
		require.NoError(t, c.Fragments.Delete(ctx, f.ID))
	}

	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Equal(t, "No fragments.\n", out)
}

func TestListCmd_NotConfigured(t *testing.T) {
	SetServices(nil)
	fragmentService = nil
	defer SetServices(nil)

	// Without injected services the command bootstraps its own session.
	out, err := execute(t, "list", "--config-dir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "Understanding React Hooks")
	closeContainer()
}

func TestShowCmd(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "show", "f4")
	require.NoError(t, err)

	assert.Contains(t, out, "Optimizing React Performance with useMemo")
	assert.Contains(t, out, "Type:    Code")
	assert.Contains(t, out, "ID:      f4")
	assert.Contains(t, out, "Tags:    programming, react, web development, optimization")
	assert.Contains(t, out, "React.useMemo")
}

func TestShowCmd_JSON(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "show", "f3", "--json")
	require.NoError(t, err)

	var got fragmentView
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "f3", got.ID)
	assert.Equal(t, "website", got.Type)
}

func TestShowCmd_NotFound(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "show", "f99")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShowCmd_RequiresID(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestAddCmd(t *testing.T) {
	c := setupTestServices(t)

	out, err := execute(t, "add",
		"--title", "Go Proverbs",
		"--content", "Clear is better than clever.",
		"--tags", "Go, wisdom, go")
	require.NoError(t, err)

	assert.Contains(t, out, "✓ Fragment created: Your knowledge fragment has been added")
	assert.Contains(t, out, "Added f9")
	assert.Equal(t, 1, c.Changes.Len(), "printer unsubscribed after the command")

	f, err := c.Fragments.Get(context.Background(), "f9")
	require.NoError(t, err)
	assert.Equal(t, "Go Proverbs", f.Title)
	assert.Equal(t, domain.FragmentTypeText, f.Type)
	assert.Equal(t, []string{"go", "wisdom"}, f.Tags)
}

func TestAddCmd_Stdin(t *testing.T) {
	c := setupTestServices(t)

	out, err := executeWithInput(t, strings.NewReader("package main\n\nfunc main() {}\n"),
		"add", "--type", "code", "--title", "Hello", "--content", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Added f9")

	f, err := c.Fragments.Get(context.Background(), "f9")
	require.NoError(t, err)
	assert.Equal(t, domain.FragmentTypeCode, f.Type)
	assert.Equal(t, "package main\n\nfunc main() {}", f.Content)
	assert.Empty(t, f.Tags)
}

func TestAddCmd_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing title", []string{"add", "--content", "body"}},
		{"missing content", []string{"add", "--title", "Title"}},
		{"blank title", []string{"add", "--title", "   ", "--content", "body"}},
		{"unknown type", []string{"add", "--title", "T", "--content", "c", "--type", "podcast"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := setupTestServices(t)

			out, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.NotContains(t, out, "Added")

			all, err := c.Fragments.List(context.Background())
			require.NoError(t, err)
			assert.Len(t, all, 8)
		})
	}
}

func TestEditCmd(t *testing.T) {
	c := setupTestServices(t)
	before, err := c.Fragments.Get(context.Background(), "f1")
	require.NoError(t, err)

	out, err := execute(t, "edit", "f1", "--title", "React Hooks in Depth")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated f1")
	assert.Contains(t, out, "✓ Fragment updated")

	after, err := c.Fragments.Get(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, "React Hooks in Depth", after.Title)
	assert.Equal(t, before.Content, after.Content)
	assert.Equal(t, before.Type, after.Type)
	assert.Equal(t, before.Tags, after.Tags)
	assert.True(t, before.CreatedAt.Equal(after.CreatedAt))
}

func TestEditCmd_ClearTagsAndChangeType(t *testing.T) {
	c := setupTestServices(t)

	_, err := execute(t, "edit", "f3", "--tags", "", "--type", "text")
	require.NoError(t, err)

	f, err := c.Fragments.Get(context.Background(), "f3")
	require.NoError(t, err)
	assert.Empty(t, f.Tags)
	assert.Equal(t, domain.FragmentTypeText, f.Type)

	tags, err := c.Fragments.Tags(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, tags, "javascript")
}

func TestEditCmd_NotFound(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "edit", "nope", "--title", "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEditCmd_RejectsEmptyTitle(t *testing.T) {
	c := setupTestServices(t)

	_, err := execute(t, "edit", "f1", "--title", " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	f, err := c.Fragments.Get(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, "Understanding React Hooks", f.Title)
}

func TestRmCmd(t *testing.T) {
	c := setupTestServices(t)

	out, err := execute(t, "rm", "f2")
	require.NoError(t, err)
	assert.Contains(t, out, "✗ Fragment deleted: Your knowledge fragment has been removed")
	assert.Contains(t, out, "Deleted f2")

	_, err = c.Fragments.Get(context.Background(), "f2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	tags, err := c.Fragments.Tags(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, tags, "neural networks")
}

func TestRmCmd_NotFound(t *testing.T) {
	c := setupTestServices(t)

	out, err := execute(t, "delete", "f99")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotContains(t, out, "Fragment deleted")

	all, err := c.Fragments.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 8)
}

func TestTagsCmd(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "tags")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "classical", lines[0])
	assert.Equal(t, "wellness", lines[len(lines)-1])
	assert.Contains(t, lines, "environment setup")
	assert.Len(t, lines, 22)
}

func TestTagsCmd_JSON(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "tags", "--json")
	require.NoError(t, err)

	var tags []string
	require.NoError(t, json.Unmarshal([]byte(out), &tags))
	assert.Len(t, tags, 22)
	assert.Contains(t, tags, "python")
}

func TestReadContent(t *testing.T) {
	got, err := readContent(strings.NewReader("ignored"), "inline")
	require.NoError(t, err)
	assert.Equal(t, "inline", got)

	got, err = readContent(strings.NewReader("from stdin\n\n"), "-")
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)
}
