// Package pipeline sequences one scribe request end to end: upload (if
// local bytes) -> submit -> poll -> format utterances -> generate note
// -> beautify. It owns no business logic beyond sequencing and error
// propagation; all state crosses stages explicitly and nothing survives
// the request.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"ai-scribe-go/internal/logger"
	"ai-scribe-go/internal/note"
	"ai-scribe-go/internal/transcript"
	"ai-scribe-go/internal/types"
)

// Transcriber is the transcription job lifecycle boundary.
type Transcriber interface {
	Upload(ctx context.Context, audio io.Reader) (string, error)
	Submit(ctx context.Context, audioURL string, diarize bool) (string, error)
	Poll(ctx context.Context, id string) (*types.TranscriptionJob, error)
}

// NoteWriter always produces a note for a non-empty transcript.
type NoteWriter interface {
	Generate(ctx context.Context, req note.Request) note.Result
}

// Input is one scribe request. Exactly one of AudioBytes/AudioURL must
// be set; a URL is passed through to the service without re-hosting.
type Input struct {
	AudioBytes []byte
	AudioURL   string
	Diarize    bool
	Format     note.Format
}

// Output is everything the caller gets back. No server-side session or
// cache holds any of this; presentation-layer caching is the caller's
// own concern.
type Output struct {
	JobID      string            `json:"job_id"`
	Transcript string            `json:"transcript"`
	Utterances []types.Utterance `json:"utterances"`
	Note       string            `json:"note"`
	Markdown   string            `json:"markdown"`
	NoteModel  string            `json:"note_model"`
	DurationMs int64             `json:"duration_ms"`
}

var ErrNoAudio = errors.New("pipeline: no audio bytes or audio URL provided")

type Orchestrator struct {
	transcriber Transcriber
	notes       NoteWriter
	log         *logrus.Entry
}

func New(transcriber Transcriber, notes NoteWriter) *Orchestrator {
	return &Orchestrator{
		transcriber: transcriber,
		notes:       notes,
		log:         logger.New().WithField("module", "pipeline"),
	}
}

// Run executes the full pipeline. Upload/submit/poll failures abort the
// request with no partial result; note generation can never abort it --
// once a transcript exists, some note is always produced.
func (o *Orchestrator) Run(ctx context.Context, in Input) (Output, error) {
	start := time.Now()
	log := o.log.WithField("run_id", uuid.New().String())

	audioURL := in.AudioURL
	if len(in.AudioBytes) > 0 {
		u, err := o.transcriber.Upload(ctx, bytes.NewReader(in.AudioBytes))
		if err != nil {
			return Output{}, fmt.Errorf("upload: %w", err)
		}
		audioURL = u
	}
	if audioURL == "" {
		return Output{}, ErrNoAudio
	}

	id, err := o.transcriber.Submit(ctx, audioURL, in.Diarize)
	if err != nil {
		return Output{}, fmt.Errorf("submit: %w", err)
	}
	log = log.WithField("job_id", id)

	job, err := o.transcriber.Poll(ctx, id)
	if err != nil {
		return Output{}, fmt.Errorf("poll: %w", err)
	}

	out := Output{
		JobID:      id,
		Transcript: job.Text,
		Utterances: transcript.Format(job),
	}

	var res note.Result
	if strings.TrimSpace(job.Text) == "" {
		// Nothing to summarize; skip generation entirely.
		res = note.Fallback(job.Text, in.Format)
	} else {
		res = o.notes.Generate(ctx, note.Request{TranscriptText: job.Text, Format: in.Format})
	}
	out.Note = res.RawText
	out.NoteModel = res.ProducingModel
	out.Markdown = note.Beautify(res.RawText)
	out.DurationMs = time.Since(start).Milliseconds()

	log.WithFields(logrus.Fields{
		"note_model":  out.NoteModel,
		"utterances":  len(out.Utterances),
		"duration_ms": out.DurationMs,
	}).Info("pipeline finished")
	return out, nil
}
