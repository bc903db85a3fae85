package provider

import (
    "context"
    "errors"
)

// Provider submits a composed prompt to a language model backend and returns
// the raw response text. Implementations report transport, auth and quota
// failures as *Error so the request boundary can classify them.
type Provider interface {
    Name() string
    Generate(ctx context.Context, system, user string) (string, error)
}

// Pinger is an optional capability for a cheap connectivity check. Providers
// that cannot probe without a full generation omit it; callers use a type
// assertion to detect availability.
type Pinger interface {
    Ping(ctx context.Context) error
}

// ErrEmptyCompletion is returned when a backend answers successfully but
// produces no usable text.
var ErrEmptyCompletion = errors.New("provider returned an empty completion")

// ErrUnknownProvider is returned by the registry for an unconfigured
// provider id.
var ErrUnknownProvider = errors.New("unknown provider")

// Error wraps a failure calling a model backend.
type Error struct {
    Provider string
    Err      error
}

func (e *Error) Error() string {
    return "provider " + e.Provider + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }
