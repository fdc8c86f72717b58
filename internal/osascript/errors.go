package osascript

import (
	"fmt"
	"time"
)

// TimeoutError reports that the osascript process exceeded its deadline and
// was killed. The operation's outcome inside Mail.app is indeterminate:
// side effects may or may not have been applied. Callers must surface this
// rather than retry.
type TimeoutError struct {
	Op      string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("osascript %s timed out after %s", e.Op, e.Timeout)
}

// ProtocolError reports that the host's output could not be decoded as the
// expected JSON payload. This usually means the host crashed before it could
// report its own error sentinel, or the output exceeded the transport cap.
type ProtocolError struct {
	Op     string
	Detail string
	Err    error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("osascript %s produced undecodable output: %s: %v", e.Op, e.Detail, e.Err)
	}
	return fmt.Sprintf("osascript %s produced undecodable output: %s", e.Op, e.Detail)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// HostExecutionError reports that the generated program ran but the operation
// failed inside Mail.app (account not found, message not found, ...). Message
// is host-supplied and passed through verbatim.
type HostExecutionError struct {
	Op      string
	Message string
	Stack   string
}

func (e *HostExecutionError) Error() string {
	return e.Message
}
