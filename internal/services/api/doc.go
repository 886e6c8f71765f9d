// Package api serves the campaign service as a JSON HTTP API.
//
// Routes live under /api. Errors are written as
// {"error": {"code", "message", "metadata"}} with the status mapped from the
// domain error code. When a token key is configured every /api route
// requires an HS256 bearer token; /healthz is always open.
package api
