// Package rest implements the marketplace backend adapter over its JSON REST API.
//
// Every response is wrapped in an envelope:
//
//	{"success": true, "message": "...", "data": ...}
//
// Failures are returned as *domain.RequestError so the core can tell
// transport problems, server rejections and expired sessions apart.
package rest
