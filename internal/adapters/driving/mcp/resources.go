package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for karigar resources.
	uriScheme = "karigar://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "categories",
		Name:        "categories",
		Description: "Every service category with its services",
		MIMEType:    "application/json",
	}, s.handleCategoriesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "categories/{category}/services",
		Name:        "category-services",
		Description: "Services offered under a category, ending with the custom service entry",
		MIMEType:    "application/json",
	}, s.handleCategoryServicesResource)
}

type categoryInfo struct {
	Label    string          `json:"label"`
	Value    string          `json:"value"`
	Services []domain.Option `json:"services"`
}

// handleCategoriesResource returns the static service taxonomy.
func (s *Server) handleCategoriesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	dir := s.ports.Directory

	categories := dir.Categories()
	infos := make([]categoryInfo, len(categories))
	for i, c := range categories {
		infos[i] = categoryInfo{Label: c.Label, Value: c.Value, Services: dir.Services(c.Value)}
		if infos[i].Services == nil {
			infos[i].Services = []domain.Option{}
		}
	}

	return jsonResult(req.Params.URI, infos, "categories")
}

// handleCategoryServicesResource returns the resolved service list of one category.
func (s *Server) handleCategoryServicesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	key := extractCategory(req.Params.URI)
	if key == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	var category *domain.ServiceCategory
	for _, c := range s.ports.Directory.Categories() {
		if c.Value == key || c.Label == key {
			category = &c
			break
		}
	}
	if category == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	services := append(s.ports.Directory.Services(category.Value), domain.SentinelOption())
	return jsonResult(req.Params.URI, services, "services")
}

func jsonResult(uri string, v any, what string) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", what, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractCategory extracts the category from a URI like karigar://categories/{category}/services.
// The category may be percent-encoded.
func extractCategory(uri string) string {
	const prefix = uriScheme + "categories/"
	const suffix = "/services"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	category, err := url.PathUnescape(strings.TrimSuffix(uri, suffix))
	if err != nil {
		return ""
	}
	return category
}
