package analytics

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a fetch produced no snapshot.
type FailureKind int

const (
	// NetworkFailure: the request could not be sent, no response arrived in
	// time, or the backend answered with a non-2xx status.
	NetworkFailure FailureKind = iota + 1
	// MalformedResponse: a 2xx response whose body does not have the
	// expected shape.
	MalformedResponse
)

func (k FailureKind) String() string {
	switch k {
	case NetworkFailure:
		return "network_failure"
	case MalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// FetchError is returned by Client.Fetch for every unsuccessful fetch.
type FetchError struct {
	Kind FailureKind
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("analytics unavailable (%s): %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// KindOf extracts the failure kind from err. Errors that are not a
// FetchError count as network failures.
func KindOf(err error) FailureKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return NetworkFailure
}

func networkErr(err error) error   { return &FetchError{Kind: NetworkFailure, Err: err} }
func malformedErr(err error) error { return &FetchError{Kind: MalformedResponse, Err: err} }
