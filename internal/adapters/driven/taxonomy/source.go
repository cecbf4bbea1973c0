package taxonomy

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/karigar-cli/internal/logger"
)

//go:embed data/*.toml
var embedded embed.FS

const (
	locationsFile = "data/locations.toml"
	servicesFile  = "data/services.toml"
)

// Verify interface compliance.
var _ driven.TaxonomySource = (*Source)(nil)

type locationsDoc struct {
	States    []domain.Option            `toml:"states"`
	Districts []domain.District          `toml:"districts"`
	Cities    map[string][]domain.Option `toml:"cities"`
}

type servicesDoc struct {
	Categories []domain.ServiceCategory `toml:"categories"`
}

// Source reads taxonomy tables from a filesystem laid out like the embedded data.
type Source struct {
	fsys fs.FS
}

// NewSource returns a source over the embedded data files.
func NewSource() *Source {
	return &Source{fsys: embedded}
}

// NewSourceFS returns a source over fsys. Tests use it with fstest.MapFS.
func NewSourceFS(fsys fs.FS) *Source {
	return &Source{fsys: fsys}
}

// Load decodes both data files and builds the validated taxonomy.
func (s *Source) Load() (*domain.Taxonomy, error) {
	var locs locationsDoc
	if err := s.decode(locationsFile, &locs); err != nil {
		return nil, err
	}

	var svcs servicesDoc
	if err := s.decode(servicesFile, &svcs); err != nil {
		return nil, err
	}

	tax, err := domain.NewTaxonomy(locs.States, locs.Districts, locs.Cities, svcs.Categories)
	if err != nil {
		return nil, err
	}

	logger.Debug("taxonomy loaded: %d states, %d districts, %d categories",
		len(locs.States), len(locs.Districts), len(svcs.Categories))
	return tax, nil
}

func (s *Source) decode(name string, v any) error {
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := toml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: parsing %s: %w", domain.ErrInvalidTaxonomy, name, err)
	}
	return nil
}
