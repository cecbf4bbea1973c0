// Package domain defines the core business entities for Karigar.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Taxonomy: The static State → District → City and
//     ServiceCategory → ServiceName hierarchies
//   - ProfessionForm: The selection state of a profession registration
//   - ServiceSelection: A standard or custom service choice
//   - Counts: Per-service and per-category professional counts
//   - Session: The cached authentication state
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
