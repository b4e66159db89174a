package domain

import "errors"

// Error kinds. Failures are wrapped with one of these so callers can use errors.Is.
var (
	// ErrConfiguration is a missing or invalid configuration value
	ErrConfiguration = errors.New("configuration error")
	// ErrQuery is unparseable output from a display or settings query
	ErrQuery = errors.New("query error")
	// ErrFetch is a failed HTTP request or non-success status from a provider
	ErrFetch = errors.New("fetch error")
	// ErrFormat is an unexpected or missing field in a provider response
	ErrFormat = errors.New("format error")
	// ErrIO is a local filesystem failure
	ErrIO = errors.New("io error")
	// ErrNoMonitors is returned when no connected monitor has a usable resolution
	ErrNoMonitors = errors.New("no monitors detected")
	// ErrNoImage is returned when a provider kept skipping every day it was asked for
	ErrNoImage = errors.New("no image available")
)
