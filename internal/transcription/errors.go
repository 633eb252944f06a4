package transcription

import (
	"errors"
	"fmt"
)

// ErrPollTimeout is returned when a job does not reach a terminal state
// within the configured maximum wait.
var ErrPollTimeout = errors.New("transcription: poll deadline exceeded")

// TransportError covers network failures and non-2xx responses from the
// transcription service. Fatal to the current request.
type TransportError struct {
	Op     string // upload, submit or poll
	Status int    // HTTP status, 0 on network failure
	Detail string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("transcription %s: status %d: %s", e.Op, e.Status, e.Detail)
	}
	return fmt.Sprintf("transcription %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// JobFailedError means the service itself reported status "error" for
// the job, with its own detail message.
type JobFailedError struct {
	JobID  string
	Detail string
}

func (e *JobFailedError) Error() string {
	return fmt.Sprintf("transcription job %s failed: %s", e.JobID, e.Detail)
}
