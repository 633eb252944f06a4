// Package transcript normalizes raw diarization records into the
// canonical utterance sequence. Everything here is pure and total: any
// well-formed or partially malformed job payload maps to a
// deterministic (possibly empty) slice, never an error.
package transcript

import (
	"encoding/json"
	"strings"

	"ai-scribe-go/internal/types"
)

const (
	// UnknownSpeaker labels diarized records the service returned
	// without a speaker field.
	UnknownSpeaker = "Unknown"

	// soloSpeaker labels the single utterance synthesized from flat
	// transcript text when diarization produced nothing.
	soloSpeaker = "Speaker"
)

// Format maps a job payload to canonical utterances. The result length
// equals the number of diarized records, or is exactly 1 when only flat
// text exists, or 0 when the job carries neither.
func Format(job *types.TranscriptionJob) []types.Utterance {
	if job == nil {
		return []types.Utterance{}
	}
	if len(job.Utterances) > 0 {
		out := make([]types.Utterance, 0, len(job.Utterances))
		for _, raw := range job.Utterances {
			speaker := strings.TrimSpace(raw.Speaker)
			if speaker == "" {
				speaker = UnknownSpeaker
			}
			out = append(out, types.Utterance{
				Speaker:      speaker,
				Text:         raw.Text,
				StartSeconds: msToSeconds(raw.Start),
				EndSeconds:   msToSeconds(raw.End),
			})
		}
		return out
	}
	if job.Text != "" {
		return []types.Utterance{{Speaker: soloSpeaker, Text: job.Text}}
	}
	return []types.Utterance{}
}

// msToSeconds converts a raw millisecond timestamp to seconds. A
// missing or non-numeric field yields 0.
func msToSeconds(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0
	}
	ms, err := n.Float64()
	if err != nil {
		return 0
	}
	return ms / 1000.0
}
