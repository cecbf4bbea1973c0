// Package taxonomy loads the static location and service hierarchy shipped
// with the binary.
//
// The data lives in two TOML files embedded at compile time:
//
//	data/locations.toml  states, districts and cities keyed by district
//	data/services.toml   service categories and their services
//
// Load decodes both and hands the raw tables to domain.NewTaxonomy, which
// self-checks them. A malformed file is a build defect, so the CLI refuses
// to start rather than rendering a partial hierarchy.
package taxonomy
