package bridge

import "errors"

// ErrorKind classifies bridge failures. Callers rarely branch on the kind —
// every failure collapses to the same {success:false, error} envelope — but
// tests and logs need to tell a timeout from a garbled payload.
type ErrorKind int

const (
	// Timeout: the child process exceeded its wall-clock budget and was killed.
	Timeout ErrorKind = iota
	// ScriptNotFound: no embedded payload exists for the requested operation.
	ScriptNotFound
	// EmptyResponse: the process succeeded but wrote nothing to stdout.
	EmptyResponse
	// OutputTooLarge: captured stdout exceeded the configured cap.
	OutputTooLarge
	// ProcessError: spawn failure or non-zero exit without a usable payload.
	ProcessError
)

func (k ErrorKind) String() string {
	switch k {
	case Timeout:
		return "timeout"
	case ScriptNotFound:
		return "script not found"
	case EmptyResponse:
		return "empty response"
	case OutputTooLarge:
		return "output too large"
	case ProcessError:
		return "process error"
	}
	return "unknown"
}

// Error is the single failure type crossing the bridge boundary. Nothing
// panics out of an Invoke call; every OS-level failure mode resolves to one
// of these.
type Error struct {
	Kind    ErrorKind
	Message string
	Stderr  string
}

func (e *Error) Error() string {
	return e.Message
}

// AsBridgeError unwraps err to a *Error if it is one.
func AsBridgeError(err error) (*Error, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// ErrNotRunning signals the liveness precondition failed. It is fatal to the
// current invocation and is never retried automatically.
var ErrNotRunning = errors.New("OmniFocus is not running. Please launch OmniFocus and try again.")
