// Package genai talks to the Gemini REST API through a prioritized list
// of model candidates. Individual model unavailability is expected and
// common, so the cascade swallows per-candidate failures and only total
// exhaustion is meaningful to the caller -- and even that is reported as
// an empty result, not an error.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"ai-scribe-go/internal/config"
	"ai-scribe-go/internal/logger"
)

// DefaultCandidates is the fixed priority list, newest/cheapest first.
// Each identifier appears bare and with the models/ prefix because the
// REST surface has accepted both spellings at different times.
func DefaultCandidates() []string {
	base := []string{
		"gemini-2.5-flash",
		"gemini-2.0-flash",
		"gemini-2.0-flash-lite",
		"gemini-1.5-flash-8b",
		"gemini-1.5-pro",
		"gemini-1.0-pro",
	}
	out := make([]string, 0, len(base)*2)
	for _, n := range base {
		out = append(out, n, "models/"+n)
	}
	return out
}

// Result is the outcome of one cascade run. A zero Result is the
// exhaustion signal: no candidate succeeded, or no key is configured.
type Result struct {
	Text  string
	Model string
}

type Selector struct {
	baseURL    string
	apiKey     string
	http       *http.Client
	candidates []string
	log        *logrus.Entry
}

// NewSelector builds a cascade over the given candidates, or over
// DefaultCandidates when none are passed.
func NewSelector(cfg config.Config, candidates ...string) *Selector {
	if len(candidates) == 0 {
		candidates = DefaultCandidates()
	}
	return &Selector{
		baseURL:    strings.TrimRight(cfg.GeminiBase, "/"),
		apiKey:     cfg.GeminiKey,
		http:       &http.Client{Timeout: 60 * time.Second},
		candidates: candidates,
		log:        logger.New().WithField("module", "genai"),
	}
}

// Generate tries each candidate in order: a cheap zero-length
// countTokens probe first, then the full generation call. Any failure
// at either step advances to the next candidate; the attempt and its
// reason are logged but never surfaced.
func (s *Selector) Generate(ctx context.Context, prompt string) Result {
	if s.apiKey == "" {
		return Result{}
	}
	for _, model := range s.candidates {
		if err := s.probe(ctx, model); err != nil {
			s.log.WithField("model", model).WithField("reason", err.Error()).Debug("candidate probe failed")
			continue
		}
		text, err := s.generate(ctx, model, prompt)
		if err != nil {
			s.log.WithField("model", model).WithField("reason", err.Error()).Debug("candidate generation failed")
			continue
		}
		s.log.WithField("model", model).Info("note generated")
		return Result{Text: text, Model: model}
	}
	s.log.Warn("all model candidates exhausted")
	return Result{}
}

func (s *Selector) probe(ctx context.Context, model string) error {
	var out struct {
		TotalTokens int `json:"totalTokens"`
	}
	return s.post(ctx, model, "countTokens", "", &out)
}

func (s *Selector) generate(ctx context.Context, model, prompt string) (string, error) {
	var out struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := s.post(ctx, model, "generateContent", prompt, &out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 {
		return "", fmt.Errorf("model %s returned no candidates", model)
	}
	var b strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String(), nil
}

func (s *Selector) post(ctx context.Context, model, method, text string, target any) error {
	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": text}}},
		},
	}
	body, _ := json.Marshal(payload)

	// The identifier goes into the path verbatim. Bare and prefixed
	// spellings are separate cascade entries on purpose: whichever one
	// the current API surface accepts wins, the other just fails its
	// probe and is skipped.
	url := fmt.Sprintf("%s/%s:%s", s.baseURL, model, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: status %d", method, model, resp.StatusCode)
	}
	return json.Unmarshal(raw, target)
}
