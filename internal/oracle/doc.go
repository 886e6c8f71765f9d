// Package oracle classifies scenes against the campaign's tension and
// produces the supporting randomness (meaning pairs, event foci) used when
// a scene does not go as expected.
//
// Everything here is a pure function of its inputs; randomness is drawn from
// a caller-owned dice.Roller so results stay reproducible by seed/sequence.
package oracle
