package llm

import "errors"

var (
	// ErrUnavailable indicates the completion endpoint is unreachable.
	ErrUnavailable = errors.New("llm endpoint unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the response could not be parsed into the
	// expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates all attempts failed for another reason.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)
