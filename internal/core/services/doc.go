// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO. The directory fans count fetches out
// with errgroup behind a rate limiter and caches listings with go-cache;
// the session manager reads token expiry with golang-jwt.
package services
