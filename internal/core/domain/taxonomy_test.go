package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTaxonomy(t *testing.T) *Taxonomy {
	t.Helper()

	tax, err := NewTaxonomy(
		[]Option{{Label: "Maharashtra", Value: "Maharashtra"}, {Label: "Goa", Value: "Goa"}},
		[]District{
			{Label: "Pune", Value: "Pune", State: "Maharashtra"},
			{Label: "Nagpur", Value: "Nagpur", State: "Maharashtra"},
			{Label: "North Goa", Value: "North Goa", State: "Goa"},
		},
		map[string][]Option{
			"Pune": {{Label: "Pune City", Value: "Pune City"}, {Label: "Baramati", Value: "Baramati"}},
		},
		[]ServiceCategory{
			{Label: "Household Services", Value: "Household Services", Services: []Option{
				{Label: "Plumber", Value: "Plumber"},
				{Label: "Electrician", Value: "Electrician"},
				{Label: SentinelLabel, Value: SentinelService},
			}},
			{Label: "Beauty", Value: "Beauty", Services: []Option{
				{Label: "Barber", Value: "Barber"},
			}},
			{Label: "Explore Others", Value: "Explore others"},
		},
	)
	require.NoError(t, err)
	return tax
}

func TestTaxonomy_Districts(t *testing.T) {
	tax := testTaxonomy(t)

	assert.Equal(t, []Option{{Label: "Pune", Value: "Pune"}, {Label: "Nagpur", Value: "Nagpur"}},
		tax.Districts("Maharashtra"))
	assert.Equal(t, []Option{{Label: "North Goa", Value: "North Goa"}}, tax.Districts("Goa"))
	assert.Empty(t, tax.Districts(""))
	assert.NotNil(t, tax.Districts(""))
	assert.Empty(t, tax.Districts("Kerala"))
}

func TestTaxonomy_Cities(t *testing.T) {
	tax := testTaxonomy(t)

	assert.Len(t, tax.Cities("Pune"), 2)
	assert.Empty(t, tax.Cities("Nagpur"), "district without enumerated cities")
	assert.NotNil(t, tax.Cities("nowhere"))
}

func TestTaxonomy_Services_SentinelExactlyOnce(t *testing.T) {
	tax := testTaxonomy(t)

	for _, c := range tax.Categories() {
		services := tax.Services(c.Value)
		n := 0
		for _, s := range services {
			if s.Value == SentinelService {
				n++
			}
		}
		assert.Equal(t, 1, n, "category %s", c.Value)
		assert.Equal(t, SentinelService, services[len(services)-1].Value)
	}

	assert.Equal(t, []Option{
		{Label: "Barber", Value: "Barber"},
		{Label: SentinelLabel, Value: SentinelService},
	}, tax.Services("Beauty"))
}

func TestTaxonomy_Services_ByLabelAndUnknown(t *testing.T) {
	tax := testTaxonomy(t)

	assert.Len(t, tax.Services("Household Services"), 3)
	assert.Equal(t, []Option{SentinelOption()}, tax.Services("Unknown"))
}

func TestTaxonomy_ReturnsCopies(t *testing.T) {
	tax := testTaxonomy(t)

	services := tax.Services("Beauty")
	services[0].Value = "mutated"

	assert.Equal(t, "Barber", tax.Services("Beauty")[0].Value)
}

func TestTaxonomy_IsStandardService(t *testing.T) {
	tax := testTaxonomy(t)

	assert.True(t, tax.IsStandardService("Household Services", "Plumber"))
	assert.False(t, tax.IsStandardService("Household Services", SentinelService))
	assert.False(t, tax.IsStandardService("Household Services", "Window Cleaner"))
	assert.False(t, tax.IsStandardService("Beauty", "Plumber"))
	assert.False(t, tax.IsStandardService("Beauty", ""))
}

func TestIsSentinelCategory(t *testing.T) {
	assert.True(t, IsSentinelCategory("Explore Others"))
	assert.True(t, IsSentinelCategory("explore others"))
	assert.True(t, IsSentinelCategory(" EXPLORE OTHERS "))
	assert.False(t, IsSentinelCategory("Household Services"))
}

func TestNewTaxonomy_SelfCheck(t *testing.T) {
	states := []Option{{Label: "Goa", Value: "Goa"}}
	okCategory := []ServiceCategory{{Label: "A", Value: "A", Services: []Option{{Label: "x", Value: "x"}}}}

	tests := []struct {
		name       string
		states     []Option
		districts  []District
		cities     map[string][]Option
		categories []ServiceCategory
	}{
		{
			name:       "district of unknown state",
			states:     states,
			districts:  []District{{Label: "Pune", Value: "Pune", State: "Maharashtra"}},
			categories: okCategory,
		},
		{
			name:       "cities of unknown district",
			states:     states,
			cities:     map[string][]Option{"Pune": {{Label: "Pune", Value: "Pune"}}},
			categories: okCategory,
		},
		{
			name:       "category without services",
			states:     states,
			categories: []ServiceCategory{{Label: "Empty", Value: "Empty"}},
		},
		{
			name:   "category with only the sentinel",
			states: states,
			categories: []ServiceCategory{{Label: "Empty", Value: "Empty", Services: []Option{
				SentinelOption(),
			}}},
		},
		{
			name:   "duplicate service",
			states: states,
			categories: []ServiceCategory{{Label: "A", Value: "A", Services: []Option{
				{Label: "x", Value: "x"}, {Label: "x again", Value: "x"},
			}}},
		},
		{
			name:       "duplicate state",
			states:     []Option{{Label: "Goa", Value: "Goa"}, {Label: "Goa", Value: "Goa"}},
			categories: okCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTaxonomy(tt.states, tt.districts, tt.cities, tt.categories)
			assert.ErrorIs(t, err, ErrInvalidTaxonomy)
		})
	}
}

func TestNewTaxonomy_SentinelCategoryNeedsNoServices(t *testing.T) {
	_, err := NewTaxonomy(nil, nil, nil, []ServiceCategory{{Label: "Explore Others", Value: "explore others"}})

	assert.NoError(t, err)
}
