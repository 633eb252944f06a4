// Package transcription owns the job lifecycle against the
// AssemblyAI-style transcription API: audio upload, job submission and
// the polling state machine that waits for a terminal status.
package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"ai-scribe-go/internal/config"
	"ai-scribe-go/internal/logger"
	"ai-scribe-go/internal/types"
)

// errStillPending drives the retry loop; never escapes Poll.
var errStillPending = errors.New("job still pending")

type Client struct {
	baseURL  string
	apiKey   string
	http     *http.Client
	interval time.Duration
	maxWait  time.Duration
	log      *logrus.Entry
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		baseURL:  strings.TrimRight(cfg.AssemblyAIBase, "/"),
		apiKey:   cfg.AssemblyAIKey,
		http:     &http.Client{Timeout: 30 * time.Second},
		interval: cfg.PollInterval,
		maxWait:  cfg.PollTimeout,
		log:      logger.New().WithField("module", "transcription"),
	}
}

// Upload sends raw audio bytes to the ingestion endpoint and returns
// the temporary URL the service assigned. Single attempt, no retry.
func (c *Client) Upload(ctx context.Context, audio io.Reader) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", audio)
	if err != nil {
		return "", &TransportError{Op: "upload", Err: err}
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	var out struct {
		UploadURL string `json:"upload_url"`
	}
	if err := c.do(req, "upload", &out); err != nil {
		return "", err
	}
	c.log.Info("audio uploaded")
	return out.UploadURL, nil
}

// Submit posts a new transcription job for the given audio URL and
// returns its id. Punctuation, text formatting and language detection
// are always on; diarization follows the caller's flag.
func (c *Client) Submit(ctx context.Context, audioURL string, diarize bool) (string, error) {
	payload := map[string]any{
		"audio_url":          audioURL,
		"speaker_labels":     diarize,
		"format_text":        true,
		"punctuate":          true,
		"speech_model":       "universal",
		"language_detection": true,
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transcript", bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Op: "submit", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	var out struct {
		ID string `json:"id"`
	}
	if err := c.do(req, "submit", &out); err != nil {
		return "", err
	}
	c.log.WithField("job_id", out.ID).WithField("diarize", diarize).Info("job submitted")
	return out.ID, nil
}

// Poll queries job status at a fixed interval until the job reaches a
// terminal state. Statuses other than completed/error, including ones
// this client does not know, keep the loop waiting. Returns
// ErrPollTimeout when maxWait elapses and ctx.Err() when the caller
// cancels; a terminal job is never re-polled.
func (c *Client) Poll(ctx context.Context, id string) (*types.TranscriptionJob, error) {
	log := c.log.WithField("job_id", id)

	pollCtx, cancel := context.WithTimeout(ctx, c.maxWait)
	defer cancel()

	checks := 0
	op := func() (*types.TranscriptionJob, error) {
		checks++
		job, err := c.fetchJob(pollCtx, id)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		switch job.Status {
		case types.StatusCompleted:
			return job, nil
		case types.StatusError:
			return nil, backoff.Permanent(&JobFailedError{JobID: id, Detail: job.Error})
		}
		log.WithFields(logrus.Fields{"status": string(job.Status), "checks": checks}).Debug("job pending")
		return nil, errStillPending
	}

	job, err := backoff.RetryWithData(op, backoff.WithContext(backoff.NewConstantBackOff(c.interval), pollCtx))
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrPollTimeout
		}
		return nil, err
	}
	log.WithField("checks", checks).Info("job completed")
	return job, nil
}

func (c *Client) fetchJob(ctx context.Context, id string) (*types.TranscriptionJob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/transcript/"+id, nil)
	if err != nil {
		return nil, &TransportError{Op: "poll", Err: err}
	}
	var job types.TranscriptionJob
	if err := c.do(req, "poll", &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// do executes one request with the auth header and decodes the JSON
// response. Any non-2xx status or network failure becomes a
// TransportError; there is no retry at this layer.
func (c *Client) do(req *http.Request, op string, target any) error {
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransportError{Op: op, Status: resp.StatusCode, Detail: snippet(body)}
	}
	if err := json.Unmarshal(body, target); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func snippet(b []byte) string {
	const max = 256
	s := strings.TrimSpace(string(b))
	if len(s) > max {
		return s[:max]
	}
	return s
}
