package driving

import (
	"context"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
)

// DirectoryService drives the browse screen: counts, search and expansion.
type DirectoryService interface {
	// Categories returns every service category in declaration order.
	Categories() []domain.ServiceCategory

	// Services returns the countable services of a category (no sentinel).
	Services(category string) []domain.Option

	// RefreshCounts recomputes every count. Individual fetch failures
	// degrade to 0 and never fail the refresh.
	RefreshCounts(ctx context.Context) (domain.Counts, error)

	// OnActivate is invoked whenever the browse screen becomes visible.
	OnActivate(ctx context.Context) (domain.Counts, error)

	// Counts returns the last committed counts.
	Counts() domain.Counts

	// Search returns the category labels matching query.
	Search(query string) []string

	// ToggleExpanded flips a category row and returns its new state.
	// The sentinel category never expands.
	ToggleExpanded(category string) bool

	// IsExpanded reports a category row's state.
	IsExpanded(category string) bool

	// Configure applies changed throttling and cache settings.
	Configure(settings domain.DirectorySettings)

	// Professionals lists the professionals offering a service.
	Professionals(ctx context.Context, serviceName, category string) ([]domain.ProfessionalRecord, error)
}
