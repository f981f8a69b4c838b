package models

import "fmt"

// ConfigurationError means a required credential is unset or still holds a
// known placeholder value. Fail fast, do not retry.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Key)
}

// AuthError means the provider rejected a configured credential.
type AuthError struct {
	Provider string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s rejected the API key", e.Provider)
}

// TransportError is a network-level failure, potentially transient.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// FormatError means a payload (upstream or generated) is missing required
// structure.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string { return e.Reason }

// ProviderError is an upstream service-side failure: auth, rate limit,
// server error.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Message)
}

// ConstraintError is a (source, source_id) uniqueness violation on insert.
// Callers treat it as a benign duplicate, not a failure.
type ConstraintError struct {
	Source   Source
	SourceID string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("article %s/%s already exists", e.Source, e.SourceID)
}
