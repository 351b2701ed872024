package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrNotSuspended is returned when a resume targets a session that is not
// waiting for input.
var ErrNotSuspended = errors.New("session is not suspended")

// ErrTickBudget marks a session failed because the tick cap was hit before
// the workflow converged.
var ErrTickBudget = errors.New("tick budget exhausted")

// ErrStepContract marks a session failed because a step returned a malformed
// outcome. It indicates a defect in workflow construction.
var ErrStepContract = errors.New("step contract violation")
