package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrRequestFailed indicates a transport failure or non-2xx response
	// from either remote service
	ErrRequestFailed = errors.New("request failed")

	// ErrAuthFailed indicates the service rejected the configured token
	ErrAuthFailed = fmt.Errorf("authentication token is invalid: %w", ErrRequestFailed)

	// ErrNotFound indicates the requested record does not exist
	ErrNotFound = fmt.Errorf("not found: %w", ErrRequestFailed)

	// ErrCancelled indicates the request was superseded or its owner went away.
	// It is control flow, not a failure.
	ErrCancelled = errors.New("request cancelled")

	// ErrMalformedModelOutput indicates completion text was not the expected JSON shape
	ErrMalformedModelOutput = errors.New("malformed model output")
)
