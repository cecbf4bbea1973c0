package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
)

var directoryFlags struct {
	json     bool
	category string
}

var servicesCmd = &cobra.Command{
	Use:   "services [query]",
	Short: "Browse service categories with professional counts",
	Long: `Lists every service category with the number of registered
professionals, and the services under each.

A query filters categories by name, or by the name of any of their services.
Counts that could not be fetched are shown as 0 and reported below the list.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServices,
}

var professionalsCmd = &cobra.Command{
	Use:   "professionals <service>",
	Short: "List professionals offering a service",
	Long: `Lists professionals registered for a service.

Examples:
  karigar professionals Plumber
  karigar professionals "Explore others" --category "Household Services"`,
	Args: cobra.ExactArgs(1),
	RunE: runProfessionals,
}

func init() {
	servicesCmd.Flags().BoolVar(&directoryFlags.json, "json", false, "output as JSON")
	professionalsCmd.Flags().BoolVar(&directoryFlags.json, "json", false, "output as JSON")
	professionalsCmd.Flags().StringVar(&directoryFlags.category, "category", "", "service category")
	rootCmd.AddCommand(servicesCmd, professionalsCmd)
}

type categoryRow struct {
	Category string       `json:"category"`
	Count    int          `json:"count"`
	Services []serviceRow `json:"services,omitempty"`
}

type serviceRow struct {
	Service string `json:"service"`
	Label   string `json:"label"`
	Count   int    `json:"count"`
}

func runServices(cmd *cobra.Command, args []string) error {
	if directoryService == nil {
		return errors.New("directory service not configured")
	}

	query := ""
	if len(args) == 1 {
		query = args[0]
	}

	counts, err := directoryService.RefreshCounts(commandContext(cmd))
	if err != nil {
		return explain("failed to load counts", err)
	}

	rows := buildCategoryRows(directoryService.Search(query), counts)

	if directoryFlags.json {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(rows) == 0 {
		cmd.Println("No matching services.")
		return nil
	}

	for _, row := range rows {
		cmd.Printf("%s (%d)\n", row.Category, row.Count)
		for _, s := range row.Services {
			cmd.Printf("    %-28s %d\n", s.Label, s.Count)
		}
	}

	if counts.Degraded() {
		cmd.Println()
		cmd.Printf("Warning: counts unavailable for %d service(s); shown as 0.\n", len(counts.Failed))
	}
	return nil
}

func buildCategoryRows(labels []string, counts domain.Counts) []categoryRow {
	byLabel := make(map[string]domain.ServiceCategory)
	for _, c := range directoryService.Categories() {
		byLabel[c.Label] = c
	}

	rows := make([]categoryRow, 0, len(labels))
	for _, label := range labels {
		row := categoryRow{Category: label, Count: counts.Categories[label]}
		if c, ok := byLabel[label]; ok {
			for _, s := range directoryService.Services(c.Value) {
				row.Services = append(row.Services, serviceRow{
					Service: s.Value,
					Label:   s.Label,
					Count:   counts.Services[s.Value],
				})
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func runProfessionals(cmd *cobra.Command, args []string) error {
	if directoryService == nil {
		return errors.New("directory service not configured")
	}

	records, err := directoryService.Professionals(commandContext(cmd), args[0], directoryFlags.category)
	if err != nil {
		return explain("failed to list professionals", err)
	}

	if directoryFlags.json {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(records) == 0 {
		cmd.Printf("No professionals found for %s.\n", args[0])
		return nil
	}

	cmd.Printf("%d professional(s) for %s:\n\n", len(records), args[0])
	for _, r := range records {
		printProfessional(cmd, r)
		cmd.Println()
	}
	return nil
}
