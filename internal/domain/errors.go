package domain

import "errors"

// Sentinel errors for the search pipeline
var (
	// ErrNoCredentials indicates a required API credential is not configured
	ErrNoCredentials = errors.New("required API credentials are not configured")

	// ErrProviderUnreachable indicates the catalog provider did not respond
	ErrProviderUnreachable = errors.New("movie catalog is unreachable")

	// ErrAuthFailed indicates the catalog rejected the configured credentials
	ErrAuthFailed = errors.New("catalog credentials were rejected")

	// ErrMalformedIntent indicates the generative provider returned no text or
	// text that does not conform to the intent schema
	ErrMalformedIntent = errors.New("could not interpret the mood description")

	// ErrNoResults indicates the discover call settled with an empty result
	// set after post-filtering
	ErrNoResults = errors.New("no titles matched")
)
