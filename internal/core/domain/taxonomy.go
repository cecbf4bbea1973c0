package domain

import (
	"fmt"
	"strings"
)

// Sentinel service identifiers. The sentinel marks a user-entered custom
// service in place of a taxonomy entry.
const (
	// SentinelService is the canonical value of the custom-service entry.
	SentinelService = "Explore others"

	// SentinelLabel is the display label of the custom-service entry.
	SentinelLabel = "Others"
)

// Option is a taxonomy entry: display text and canonical identifier.
type Option struct {
	Label string `toml:"label" json:"label"`
	Value string `toml:"value" json:"value"`
}

// District is a location entry owned by a state.
type District struct {
	Label string `toml:"label" json:"label"`
	Value string `toml:"value" json:"value"`
	State string `toml:"state" json:"state"`
}

// Option returns the district as a plain taxonomy entry.
func (d District) Option() Option {
	return Option{Label: d.Label, Value: d.Value}
}

// ServiceCategory groups service names.
type ServiceCategory struct {
	Label    string   `toml:"label" json:"label"`
	Value    string   `toml:"value" json:"value"`
	Services []Option `toml:"services" json:"services"`
}

// IsSentinelCategory reports whether a category label or value names the
// direct-navigation "explore others" category.
func IsSentinelCategory(category string) bool {
	return strings.EqualFold(strings.TrimSpace(category), SentinelService)
}

// SentinelOption returns the synthetic terminal service entry.
func SentinelOption() Option {
	return Option{Label: SentinelLabel, Value: SentinelService}
}

// Taxonomy is the immutable static hierarchy shipped with the application.
// Construct it with NewTaxonomy; the zero value is empty.
type Taxonomy struct {
	states     []Option
	districts  []District
	cities     map[string][]Option
	categories []ServiceCategory

	// resolved holds each category's service list with the sentinel appended.
	resolved map[string][]Option
}

// NewTaxonomy validates the raw tables and builds an immutable taxonomy.
// Every category's resolved service list is computed once here.
func NewTaxonomy(
	states []Option,
	districts []District,
	cities map[string][]Option,
	categories []ServiceCategory,
) (*Taxonomy, error) {
	t := &Taxonomy{
		states:     cloneOptions(states),
		districts:  append([]District(nil), districts...),
		cities:     make(map[string][]Option, len(cities)),
		categories: make([]ServiceCategory, 0, len(categories)),
		resolved:   make(map[string][]Option, len(categories)),
	}
	for k, v := range cities {
		t.cities[k] = cloneOptions(v)
	}
	for _, c := range categories {
		c.Services = cloneOptions(c.Services)
		t.categories = append(t.categories, c)
	}

	if err := t.validate(); err != nil {
		return nil, err
	}

	for _, c := range t.categories {
		t.resolved[c.Value] = withSentinel(c.Services)
	}
	return t, nil
}

func (t *Taxonomy) validate() error {
	if err := uniqueValues("states", t.states); err != nil {
		return err
	}

	knownStates := make(map[string]bool, len(t.states))
	for _, s := range t.states {
		knownStates[s.Value] = true
	}

	knownDistricts := make(map[string]bool, len(t.districts))
	for _, d := range t.districts {
		if d.Value == "" {
			return fmt.Errorf("%w: district with empty value", ErrInvalidTaxonomy)
		}
		if !knownStates[d.State] {
			return fmt.Errorf("%w: district %q references unknown state %q", ErrInvalidTaxonomy, d.Value, d.State)
		}
		if knownDistricts[d.Value] {
			return fmt.Errorf("%w: duplicate district %q", ErrInvalidTaxonomy, d.Value)
		}
		knownDistricts[d.Value] = true
	}

	for district, list := range t.cities {
		if !knownDistricts[district] {
			return fmt.Errorf("%w: cities listed for unknown district %q", ErrInvalidTaxonomy, district)
		}
		if err := uniqueValues("cities of "+district, list); err != nil {
			return err
		}
	}

	seen := make(map[string]bool, len(t.categories))
	for _, c := range t.categories {
		if c.Value == "" || c.Label == "" {
			return fmt.Errorf("%w: category with empty label or value", ErrInvalidTaxonomy)
		}
		if seen[c.Value] {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidTaxonomy, c.Value)
		}
		seen[c.Value] = true

		if err := uniqueValues("services of "+c.Value, c.Services); err != nil {
			return err
		}
		if IsSentinelCategory(c.Label) || IsSentinelCategory(c.Value) {
			continue
		}
		standard := 0
		for _, s := range c.Services {
			if s.Value != SentinelService {
				standard++
			}
		}
		if standard == 0 {
			return fmt.Errorf("%w: category %q has no services", ErrInvalidTaxonomy, c.Value)
		}
	}
	return nil
}

func uniqueValues(what string, list []Option) error {
	seen := make(map[string]bool, len(list))
	for _, o := range list {
		if o.Value == "" {
			return fmt.Errorf("%w: empty value in %s", ErrInvalidTaxonomy, what)
		}
		if seen[o.Value] {
			return fmt.Errorf("%w: duplicate value %q in %s", ErrInvalidTaxonomy, o.Value, what)
		}
		seen[o.Value] = true
	}
	return nil
}

// withSentinel appends the sentinel entry if absent, preserving order.
func withSentinel(list []Option) []Option {
	out := cloneOptions(list)
	for _, o := range out {
		if o.Value == SentinelService {
			return out
		}
	}
	return append(out, SentinelOption())
}

func cloneOptions(list []Option) []Option {
	if list == nil {
		return nil
	}
	return append(make([]Option, 0, len(list)), list...)
}

// States returns all states in declaration order.
func (t *Taxonomy) States() []Option {
	return cloneOptions(t.states)
}

// Districts returns every district of state. An unset state yields an empty list.
func (t *Taxonomy) Districts(state string) []Option {
	out := []Option{}
	if state == "" {
		return out
	}
	for _, d := range t.districts {
		if d.State == state {
			out = append(out, d.Option())
		}
	}
	return out
}

// District looks up a district by value.
func (t *Taxonomy) District(value string) (District, bool) {
	for _, d := range t.districts {
		if d.Value == value {
			return d, true
		}
	}
	return District{}, false
}

// Cities returns the cities of district. Districts without an enumerated
// city list yield an empty list.
func (t *Taxonomy) Cities(district string) []Option {
	list, ok := t.cities[district]
	if !ok {
		return []Option{}
	}
	return cloneOptions(list)
}

// Categories returns all service categories in declaration order.
func (t *Taxonomy) Categories() []ServiceCategory {
	out := make([]ServiceCategory, len(t.categories))
	for i, c := range t.categories {
		c.Services = cloneOptions(c.Services)
		out[i] = c
	}
	return out
}

// Category looks up a category by value or label.
func (t *Taxonomy) Category(key string) (ServiceCategory, bool) {
	for _, c := range t.categories {
		if c.Value == key || c.Label == key {
			c.Services = cloneOptions(c.Services)
			return c, true
		}
	}
	return ServiceCategory{}, false
}

// Services returns the resolved service list of category: the declared
// services followed by exactly one sentinel entry. Unknown categories
// resolve to the sentinel alone.
func (t *Taxonomy) Services(category string) []Option {
	if list, ok := t.resolved[category]; ok {
		return cloneOptions(list)
	}
	if c, ok := t.Category(category); ok {
		return cloneOptions(t.resolved[c.Value])
	}
	return []Option{SentinelOption()}
}

// IsStandardService reports whether service is a non-sentinel member of
// category's resolved list.
func (t *Taxonomy) IsStandardService(category, service string) bool {
	if service == "" || service == SentinelService {
		return false
	}
	for _, o := range t.Services(category) {
		if o.Value == service {
			return true
		}
	}
	return false
}

// ContainsOption reports whether value is present in list.
func ContainsOption(list []Option, value string) bool {
	for _, o := range list {
		if o.Value == value {
			return true
		}
	}
	return false
}
