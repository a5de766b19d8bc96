package model

import "github.com/rotisserie/eris"

// Sentinel errors for the analysis and bidding engines. Callers classify
// failures with errors.Is.
var (
	// ErrInvalidInput marks malformed or out-of-range request data.
	ErrInvalidInput = eris.New("invalid input")

	// ErrNoMatchFound marks a lookup that found no applicable rule. The
	// engines usually degrade instead of returning this; it surfaces only
	// from direct catalog queries.
	ErrNoMatchFound = eris.New("no match found")

	// ErrInsufficientHistory marks a computation that needs more historical
	// data than was supplied. The bid engine degrades to defaults instead of
	// returning it; it surfaces only where history is mandatory.
	ErrInsufficientHistory = eris.New("insufficient history")
)
