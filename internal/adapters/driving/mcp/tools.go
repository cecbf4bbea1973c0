package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
)

// ListServicesInput is the input schema for the list_services tool.
type ListServicesInput struct {
	Query string `json:"query,omitempty" jsonschema:"filter categories by category or service name"`
}

// ListServicesOutput is the output schema for the list_services tool.
type ListServicesOutput struct {
	Categories []CategoryOutput `json:"categories"`
	// Unavailable lists services whose count could not be fetched; they report 0.
	Unavailable []string `json:"unavailable,omitempty"`
}

// CategoryOutput is one service category with its professional count.
type CategoryOutput struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Services []ServiceOutput `json:"services,omitempty"`
}

// ServiceOutput is one service with its professional count.
type ServiceOutput struct {
	Service string `json:"service"`
	Label   string `json:"label"`
	Count   int    `json:"count"`
}

// ListProfessionalsInput is the input schema for the list_professionals tool.
type ListProfessionalsInput struct {
	Service  string `json:"service" jsonschema:"service value, e.g. Plumber"`
	Category string `json:"category,omitempty" jsonschema:"service category, narrows custom services"`
}

// ListProfessionalsOutput is the output schema for the list_professionals tool.
type ListProfessionalsOutput struct {
	Professionals []ProfessionalOutput `json:"professionals"`
	Count         int                  `json:"count"`
}

// ProfessionalOutput is a professional's public listing.
type ProfessionalOutput struct {
	Name       string `json:"name"`
	Service    string `json:"service"`
	Category   string `json:"category"`
	City       string `json:"city"`
	District   string `json:"district"`
	State      string `json:"state"`
	Experience string `json:"experience,omitempty"`
	MobileNo   string `json:"mobile_no"`
	About      string `json:"about,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_services",
		Description: "List service categories and services with the number of registered professionals",
	}, s.handleListServices)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_professionals",
		Description: "List the professionals offering a service",
	}, s.handleListProfessionals)
}

// handleListServices refreshes counts and returns the categories matching the query.
func (s *Server) handleListServices(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListServicesInput,
) (*mcp.CallToolResult, ListServicesOutput, error) {
	dir := s.ports.Directory

	counts, err := dir.RefreshCounts(ctx)
	if err != nil {
		return nil, ListServicesOutput{}, err
	}

	byLabel := make(map[string]domain.ServiceCategory)
	for _, c := range dir.Categories() {
		byLabel[c.Label] = c
	}

	output := ListServicesOutput{
		Categories:  []CategoryOutput{},
		Unavailable: counts.Failed,
	}
	for _, label := range dir.Search(input.Query) {
		row := CategoryOutput{Category: label, Count: counts.Categories[label]}
		if c, ok := byLabel[label]; ok {
			for _, svc := range dir.Services(c.Value) {
				row.Services = append(row.Services, ServiceOutput{
					Service: svc.Value,
					Label:   svc.Label,
					Count:   counts.Services[svc.Value],
				})
			}
		}
		output.Categories = append(output.Categories, row)
	}

	return nil, output, nil
}

// handleListProfessionals returns the professionals of a service.
func (s *Server) handleListProfessionals(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListProfessionalsInput,
) (*mcp.CallToolResult, ListProfessionalsOutput, error) {
	if input.Service == "" {
		return nil, ListProfessionalsOutput{}, domain.ErrInvalidInput
	}

	records, err := s.ports.Directory.Professionals(ctx, input.Service, input.Category)
	if err != nil {
		return nil, ListProfessionalsOutput{}, err
	}

	output := ListProfessionalsOutput{
		Professionals: make([]ProfessionalOutput, len(records)),
		Count:         len(records),
	}
	for i, r := range records {
		output.Professionals[i] = ProfessionalOutput{
			Name:       r.Name,
			Service:    r.DisplayService(),
			Category:   r.ServiceCategory,
			City:       r.City,
			District:   r.District,
			State:      r.State,
			Experience: r.Experience,
			MobileNo:   r.MobileNo,
			About:      r.About,
		}
	}

	return nil, output, nil
}
