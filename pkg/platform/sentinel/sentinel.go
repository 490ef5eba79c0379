package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and adapters return these
// (optionally wrapped) so services can translate them into caller-facing
// outcomes without string matching.
//
// ErrRateLimited is deliberately not carried inside a Decision: a rejected
// evaluation consumes no provider calls and writes no history, so the caller
// gets an explicit "try again later" signal instead of a record.
var (
	ErrNotFound    = errors.New("not found")
	ErrRateLimited = errors.New("rate limited")
	ErrUnavailable = errors.New("unavailable")
)
