// Package campaign runs solo campaigns on top of the resolution core.
//
// A campaign owns one deterministic roll stream (seed plus sequence cursor),
// the oracle tension, a scene counter, and weighted character and thread
// lists. Every operation that rolls loads the campaign, rolls from a fresh
// dice.Roller positioned at the stored cursor, and commits the advanced cursor
// together with an audit record, so replaying the log from the seed always
// reproduces the same outcomes.
package campaign
