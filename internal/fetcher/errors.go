package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind classifies why a source could not be fetched.
type Kind string

// Fetch failure kinds.
const (
	KindInvalidURL        Kind = "invalid_url"
	KindUnsupportedScheme Kind = "unsupported_scheme"
	KindNetwork           Kind = "network"
	KindTimeout           Kind = "timeout"
	KindHTTPStatus        Kind = "http_status"
	KindTooLarge          Kind = "too_large"
	KindRead              Kind = "read"
)

// Fetch errors.
var (
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	ErrBodyTooLarge         = errors.New("response body exceeds limit")
)

// FetchError describes a failed fetch of a single source.
type FetchError struct {
	Cause      error
	URL        string
	Kind       Kind
	StatusCode int
}

func (e *FetchError) Error() string {
	if e == nil {
		return "<nil>"
	}

	msg := fmt.Sprintf("fetch %s: %s", e.URL, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}

	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	return msg
}

func (e *FetchError) Unwrap() error { return e.Cause }

// KindOf returns the failure kind of err, or "" when err is not a *FetchError.
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}

	return ""
}

// classify maps a transport or body read error onto a failure kind.
// Go wraps timeouts in *url.Error, so both forms are checked.
func classify(err error, fallback Kind) Kind {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return KindTimeout
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	return fallback
}

func readErrorKind(err error) Kind {
	if errors.Is(err, ErrBodyTooLarge) {
		return KindTooLarge
	}

	return classify(err, KindRead)
}
