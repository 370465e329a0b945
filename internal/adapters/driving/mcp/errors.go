// Package mcp provides an MCP (Model Context Protocol) server adapter for Tagger.
// It lets AI assistants tag a PDF, correct its regions and metadata, and
// render the tagged document.
package mcp

import "errors"

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("mcp: session service is required")
