// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"errors"
	"fmt"
)

// Error variables for common client errors.
var (
	// ErrServiceUnavailable is wrapped by every APIError: the service answered
	// but produced no usable completion.
	ErrServiceUnavailable = errors.New("service cannot respond")

	// ErrNotConfigured indicates the API key is not set.
	ErrNotConfigured = errors.New("Gemini API key not configured")

	// ErrEmptyPrompt indicates Generate was called with blank text.
	ErrEmptyPrompt = errors.New("empty prompt")
)

// APIError represents a non-200 response, or a 200 response without a
// candidate text.
type APIError struct {
	Status  int
	Code    string
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("Gemini error [%s] (HTTP %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("Gemini error (HTTP %d): %s", e.Status, e.Message)
}

// Unwrap makes errors.Is(err, ErrServiceUnavailable) true for every APIError.
func (e *APIError) Unwrap() error {
	return ErrServiceUnavailable
}

// TransportError represents a failure while calling out or decoding the
// response. Context cancellation and deadlines surface here too.
type TransportError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("gemini %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// =============================================================================
// OUTCOME CLASSIFICATION
// =============================================================================

// Outcome classifies the result of a Generate call.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeServiceUnavailable
	OutcomeTransportFailure
)

// String returns a short name for logs.
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeServiceUnavailable:
		return "service_unavailable"
	case OutcomeTransportFailure:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// Classify maps an error returned by Generate to an Outcome.
// Any error that is not a service answer counts as a transport failure.
func Classify(err error) Outcome {
	if err == nil {
		return OutcomeOK
	}
	if errors.Is(err, ErrServiceUnavailable) {
		return OutcomeServiceUnavailable
	}
	return OutcomeTransportFailure
}
