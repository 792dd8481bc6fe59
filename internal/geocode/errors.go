package geocode

import "fmt"

// ErrorKind classifies a failed provider call.
type ErrorKind string

const (
	ErrorKindNetwork ErrorKind = "network" // connection or timeout failure
	ErrorKindHTTP    ErrorKind = "http"    // non-success status code
	ErrorKindParse   ErrorKind = "parse"   // response shape mismatch
)

// CallError describes one failed provider call. The resolver folds over
// these outcomes instead of letting them escape to the caller.
type CallError struct {
	Provider string
	Kind     ErrorKind
	Err      error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s: %s error: %v", e.Provider, e.Kind, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }
