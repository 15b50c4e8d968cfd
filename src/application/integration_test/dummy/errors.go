package dummy

import "errors"

// Failures the dummy collaborators return when a test flips their switches.
var (
	ErrUnexpectedInput = errors.New("dummy: request or job input not recognised")
	ErrNotFound        = errors.New("dummy: request, source or stem not found")
	ErrNetworkFailure  = errors.New("dummy: broker, store or downloader unreachable")
)
