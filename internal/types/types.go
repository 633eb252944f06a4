package types

import "encoding/json"

// JobStatus is the transcription service's status tag. The set is
// externally defined and may grow; anything we do not recognize counts
// as still pending.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusError      JobStatus = "error"
)

// Terminal reports whether no further status transition can occur.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

// TranscriptionJob is one job as returned by the transcript endpoint.
// Text and Utterances are only populated on a completed job; Error only
// on a failed one.
type TranscriptionJob struct {
	ID         string         `json:"id"`
	Status     JobStatus      `json:"status"`
	Text       string         `json:"text,omitempty"`
	Utterances []RawUtterance `json:"utterances,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// RawUtterance mirrors the service payload. Start/End stay raw because
// the service does not guarantee numeric values there; coercion is the
// formatter's job.
type RawUtterance struct {
	Speaker string          `json:"speaker"`
	Text    string          `json:"text"`
	Start   json.RawMessage `json:"start,omitempty"`
	End     json.RawMessage `json:"end,omitempty"`
}

// Utterance is one canonical diarized segment. Start/End are seconds.
// StartSeconds <= EndSeconds is not guaranteed by the source and the
// slice keeps the service's emission order, not time order.
type Utterance struct {
	Speaker      string  `json:"speaker"`
	Text         string  `json:"text"`
	StartSeconds float64 `json:"start"`
	EndSeconds   float64 `json:"end"`
}
