// Package storage defines the persistence contracts for solo campaigns.
//
// A campaign record carries the deterministic roll state (seed and sequence
// cursor) alongside the oracle state (tension and scene bookkeeping). Weighted
// character and thread lists are stored as ordered entity rows, and every roll
// a campaign makes is appended to an audit log.
//
// # Error Types
//
//   - ErrNotFound: a requested campaign is missing.
package storage
