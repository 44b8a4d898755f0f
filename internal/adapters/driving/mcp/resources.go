package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/fragments-cli/internal/core/domain"
)

const (
	uriScheme    = "fragments://"
	mimeJSON     = "application/json"
	fragmentsURI = uriScheme + "fragments"
	tagsURI      = uriScheme + "tags"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         fragmentsURI,
		Name:        "fragments",
		Description: "Every fragment in the collection, in insertion order",
		MIMEType:    mimeJSON,
	}, s.handleFragmentsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         tagsURI,
		Name:        "tags",
		Description: "Sorted list of tags in use",
		MIMEType:    mimeJSON,
	}, s.handleTagsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: fragmentsURI + "/{id}",
		Name:        "fragment",
		Description: "A single fragment",
		MIMEType:    mimeJSON,
	}, s.handleFragmentResource)
}

func (s *Server) handleFragmentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	fragments, err := s.ports.Fragments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing fragments: %w", err)
	}

	out := make([]FragmentOutput, len(fragments))
	for i := range fragments {
		out[i] = toOutput(fragments[i])
	}
	return jsonResource(req.Params.URI, out)
}

func (s *Server) handleTagsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	tags, err := s.ports.Fragments.Tags(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return jsonResource(req.Params.URI, tags)
}

func (s *Server) handleFragmentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractFragmentID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	f, err := s.ports.Fragments.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting fragment: %w", err)
	}
	return jsonResource(req.Params.URI, toOutput(*f))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// extractFragmentID extracts the id from a URI like fragments://fragments/{id}.
func extractFragmentID(uri string) string {
	const prefix = fragmentsURI + "/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
