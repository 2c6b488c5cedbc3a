package toggl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sporadisk/punchclock/client"
)

// ErrMalformedEntry is returned when a response body does not describe a
// time entry.
var ErrMalformedEntry = errors.New("toggl: malformed time entry")

// APIError describes a response with a non-200 status.
type APIError struct {
	Op   string
	Code int
	Body string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: resp %d - %s", e.Op, e.Code, e.Body)
}

func newAPIError(op string, resp *client.Resp) *APIError {
	return &APIError{
		Op:   op,
		Code: resp.Code,
		Body: strings.TrimSpace(string(resp.Body)),
	}
}
