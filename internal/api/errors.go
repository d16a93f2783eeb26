package api

import "errors"

// Failure kinds surfaced by the upstream client. Wrapped errors carry detail;
// test for the kind with errors.Is.
var (
	ErrCityNotFound = errors.New("city not found")
	ErrUpstream     = errors.New("upstream request failed")
	ErrNetwork      = errors.New("network error")
)
