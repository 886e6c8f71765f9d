// Package domain defines the MCP tools exposed by the solo play server and
// the handlers that back them.
//
// Tools are stateless: every roll takes an explicit seed and sequence and
// returns the cursor to pass back for the next call. An omitted seed is drawn
// from the configured SeedSource and echoed in the result.
package domain
