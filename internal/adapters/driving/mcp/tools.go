package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/form"
	"github.com/custodia-labs/fragments-cli/internal/core/domain"
)

// Tool names.
const (
	toolSearch = "search_fragments"
	toolTags   = "list_tags"
	toolGet    = "get_fragment"
	toolCreate = "create_fragment"
	toolUpdate = "update_fragment"
	toolDelete = "delete_fragment"
)

// FragmentOutput is a fragment as returned by tools and resources.
type FragmentOutput struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Type      string   `json:"type"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

func toOutput(f domain.Fragment) FragmentOutput {
	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}
	return FragmentOutput{
		ID:        f.ID,
		Title:     f.Title,
		Content:   f.Content,
		Type:      f.Type.String(),
		Tags:      tags,
		CreatedAt: f.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: f.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string   `json:"query,omitempty" jsonschema:"free text matched against tags, titles and content, ignoring case"`
	Tags  []string `json:"tags,omitempty" jsonschema:"tags every result must carry"`
	Limit int      `json:"limit,omitempty" jsonschema:"maximum number of results to return (default all)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Fragments []FragmentOutput `json:"fragments"`
	Count     int              `json:"count"`
}

// TagsInput is the input schema for the list_tags tool.
type TagsInput struct{}

// TagsOutput is the output schema for the list_tags tool.
type TagsOutput struct {
	Tags []string `json:"tags"`
}

// IDInput identifies a single fragment.
type IDInput struct {
	ID string `json:"id" jsonschema:"the fragment id"`
}

// CreateInput is the input schema for the create tool.
type CreateInput struct {
	Title   string   `json:"title" jsonschema:"the fragment title"`
	Content string   `json:"content" jsonschema:"the fragment body, URL or code"`
	Type    string   `json:"type,omitempty" jsonschema:"one of text, video, website, code, song (default text)"`
	Tags    []string `json:"tags,omitempty" jsonschema:"tags to attach"`
}

// UpdateInput is the input schema for the update tool. Omitted fields
// keep their current value; an empty tags list removes every tag.
type UpdateInput struct {
	ID      string   `json:"id" jsonschema:"the fragment id"`
	Title   string   `json:"title,omitempty" jsonschema:"new title"`
	Content string   `json:"content,omitempty" jsonschema:"new content"`
	Type    string   `json:"type,omitempty" jsonschema:"new type"`
	Tags    []string `json:"tags,omitempty" jsonschema:"replacement tag list"`
}

// DeleteOutput is the output schema for the delete tool.
type DeleteOutput struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolSearch,
		Description: "Search fragments by free text and tags. Every given tag must be present on a result.",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolTags,
		Description: "List every tag in use, sorted",
	}, s.handleTags)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolGet,
		Description: "Get a fragment by id",
	}, s.handleGet)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolCreate,
		Description: "Create a fragment. Title and content are required.",
	}, s.handleCreate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolUpdate,
		Description: "Update a fragment. Omitted fields are kept.",
	}, s.handleUpdate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        toolDelete,
		Description: "Delete a fragment by id",
	}, s.handleDelete)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	s.metrics.toolCalls.WithLabelValues(toolSearch).Inc()

	state := domain.FilterState{
		Query: input.Query,
		Tags:  domain.NormaliseTags(input.Tags),
	}
	results, err := s.ports.Search.Search(ctx, state)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	if input.Limit > 0 && len(results) > input.Limit {
		results = results[:input.Limit]
	}

	output := SearchOutput{
		Fragments: make([]FragmentOutput, len(results)),
		Count:     len(results),
	}
	for i := range results {
		output.Fragments[i] = toOutput(results[i])
	}

	return nil, output, nil
}

func (s *Server) handleTags(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ TagsInput,
) (*mcp.CallToolResult, TagsOutput, error) {
	s.metrics.toolCalls.WithLabelValues(toolTags).Inc()

	tags, err := s.ports.Fragments.Tags(ctx)
	if err != nil {
		return nil, TagsOutput{}, err
	}
	return nil, TagsOutput{Tags: tags}, nil
}

func (s *Server) handleGet(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IDInput,
) (*mcp.CallToolResult, FragmentOutput, error) {
	s.metrics.toolCalls.WithLabelValues(toolGet).Inc()

	f, err := s.ports.Fragments.Get(ctx, input.ID)
	if err != nil {
		return nil, FragmentOutput{}, fmt.Errorf("fragment %s: %w", input.ID, err)
	}
	return nil, toOutput(*f), nil
}

func (s *Server) handleCreate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateInput,
) (*mcp.CallToolResult, FragmentOutput, error) {
	s.metrics.toolCalls.WithLabelValues(toolCreate).Inc()

	typ := input.Type
	if typ == "" {
		typ = domain.FragmentTypeText.String()
	}

	draft, err := form.Draft(form.Input{
		Title:   input.Title,
		Content: input.Content,
		Type:    typ,
		Tags:    form.FormatTags(input.Tags),
	})
	if err != nil {
		return nil, FragmentOutput{}, err
	}

	f, err := s.ports.Fragments.Create(ctx, draft)
	if err != nil {
		return nil, FragmentOutput{}, err
	}
	return nil, toOutput(*f), nil
}

func (s *Server) handleUpdate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateInput,
) (*mcp.CallToolResult, FragmentOutput, error) {
	s.metrics.toolCalls.WithLabelValues(toolUpdate).Inc()

	existing, err := s.ports.Fragments.Get(ctx, input.ID)
	if err != nil {
		return nil, FragmentOutput{}, fmt.Errorf("fragment %s: %w", input.ID, err)
	}

	in := form.FromFragment(*existing)
	if input.Title != "" {
		in.Title = input.Title
	}
	if input.Content != "" {
		in.Content = input.Content
	}
	if input.Type != "" {
		in.Type = input.Type
	}
	if input.Tags != nil {
		in.Tags = form.FormatTags(input.Tags)
	}

	updated, err := form.Apply(*existing, in)
	if err != nil {
		return nil, FragmentOutput{}, err
	}

	f, err := s.ports.Fragments.Update(ctx, updated)
	if err != nil {
		return nil, FragmentOutput{}, err
	}
	return nil, toOutput(*f), nil
}

func (s *Server) handleDelete(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IDInput,
) (*mcp.CallToolResult, DeleteOutput, error) {
	s.metrics.toolCalls.WithLabelValues(toolDelete).Inc()

	if err := s.ports.Fragments.Delete(ctx, input.ID); err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("fragment %s: %w", input.ID, err)
	}
	return nil, DeleteOutput{ID: input.ID, Deleted: true}, nil
}
