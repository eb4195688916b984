package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyPrompt rejects resolutions with no prompt text before any table
// lookup or upstream call happens.
var ErrEmptyPrompt = errors.New("prompt text must not be empty")

// ErrEmptyOptimizedPrompt marks an upstream response that completed without
// producing an optimized prompt.
var ErrEmptyOptimizedPrompt = errors.New("no optimized prompt returned from upstream")

// UnknownTargetError is the configuration error for an identifier that is in
// neither the supported set nor the redirect table. It is fatal for the
// request but never aborts a batch.
type UnknownTargetError struct {
	Target string
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("target %q is not configured for optimization", e.Target)
}

// UpstreamError wraps a failed call to the external optimization capability.
// The resolver never retries these; the cache stays untouched so a later
// attempt hits upstream again.
type UpstreamError struct {
	Target string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("optimization failed for target %q: %v", e.Target, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
