package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for Tagger resources.
	uriScheme = "tagger://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "session",
		Name:        "session",
		Description: "Snapshot of the tagged document: pages, regions and metadata",
		MIMEType:    "application/json",
	}, s.handleSessionResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "tags",
		Name:        "tags",
		Description: "Region tags accepted by set_region_tag and the PDF role each maps to",
		MIMEType:    "application/json",
	}, s.handleTagsResource)
}

// handleSessionResource returns the current snapshot.
func (s *Server) handleSessionResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	snapshot, ok := s.ports.Session.Snapshot()
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, snapshot)
}

// handleTagsResource returns the tag vocabulary.
func (s *Server) handleTagsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type tagInfo struct {
		Tag  string `json:"tag"`
		Role string `json:"role"`
	}

	infos := make([]tagInfo, len(domain.AllTags))
	for i, tag := range domain.AllTags {
		infos[i] = tagInfo{Tag: tag, Role: domain.RoleFor(tag)}
	}
	return jsonResource(req.Params.URI, infos)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
