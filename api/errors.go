package api

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// StatusError is returned for any non-2xx backend response. The body is
// kept verbatim so callers can surface backend messages; the client
// layer itself only ever interprets the 401 class.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// IsStatus reports whether err carries the given HTTP status.
func IsStatus(err error, statusCode int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == statusCode
}

// IsUnauthorized reports whether err is a 401 that survived recovery.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}
