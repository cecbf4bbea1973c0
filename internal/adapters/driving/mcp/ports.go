package mcp

import (
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server uses.
type Ports struct {
	// Directory provides categories, counts and professional listings.
	Directory driving.DirectoryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Directory == nil {
		return ErrMissingDirectoryService
	}
	return nil
}
