package reporting

import (
	"fmt"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidMetadata is returned when report metadata is incomplete
	ErrInvalidMetadata = errors.New("invalid report metadata")
	// ErrReportNotReady is returned by Wait when no report became available in time
	ErrReportNotReady = errors.New("report not ready")
)

const maxErrorBody = 512

// TransportError reports a failure to build, send or read an HTTP exchange.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteError reports a non-200 status returned by the metrics API.
type RemoteError struct {
	StatusCode int
	Body       []byte
}

func (e *RemoteError) Error() string {
	body := string(e.Body)
	if len(body) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut] + "..."
	}
	if body == "" {
		return fmt.Sprintf("metrics API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("metrics API returned status %d: %s", e.StatusCode, body)
}

// DecodeError reports a body that is not valid JSON where JSON was expected.
// Text holds the raw body so it can be shown to the caller.
type DecodeError struct {
	Text string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return "response body is not valid JSON"
	}
	return fmt.Sprintf("response body is not valid JSON: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
