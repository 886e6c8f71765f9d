// Package tables resolves content-pack tables into roll results, spawn
// descriptors and log lines.
//
// An Engine is an immutable table set built once from a pack. Every Execute
// call owns its own dice roller built from an explicit (seed, sequence) pair,
// so the same inputs always produce the same Result and concurrent calls do
// not share state.
package tables
