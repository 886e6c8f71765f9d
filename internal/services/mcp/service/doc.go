// Package service wires the solo play MCP tools into a go-sdk server and runs
// it over stdio.
package service
