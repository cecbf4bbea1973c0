package driven

import "github.com/custodia-labs/karigar-cli/internal/core/domain"

// TaxonomySource loads the static taxonomy once at startup.
type TaxonomySource interface {
	// Load builds and self-checks the taxonomy.
	Load() (*domain.Taxonomy, error)
}
