// Package mcp provides an MCP (Model Context Protocol) server adapter for karigar.
// It lets AI assistants browse service categories and look up professionals.
package mcp

import "errors"

// ErrMissingDirectoryService is returned when the directory service is not provided.
var ErrMissingDirectoryService = errors.New("mcp: directory service is required")
