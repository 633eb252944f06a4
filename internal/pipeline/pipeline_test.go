package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"ai-scribe-go/internal/config"
	"ai-scribe-go/internal/genai"
	"ai-scribe-go/internal/note"
	"ai-scribe-go/internal/transcription"
	"ai-scribe-go/internal/types"
)

// fakeService scripts a minimal transcription API for end-to-end runs.
type fakeService struct {
	mu       sync.Mutex
	uploads  int
	submits  int
	polls    int
	lastBody map[string]any
	jobText  string
}

func (f *fakeService) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/upload":
			f.uploads++
			io.Copy(io.Discard, r.Body)
			fmt.Fprint(w, `{"upload_url":"https://cdn.example/up-1"}`)
		case r.Method == http.MethodPost && r.URL.Path == "/transcript":
			f.submits++
			json.NewDecoder(r.Body).Decode(&f.lastBody)
			fmt.Fprint(w, `{"id":"job-1"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/transcript/job-1":
			f.polls++
			json.NewEncoder(w).Encode(map[string]any{
				"id": "job-1", "status": "completed", "text": f.jobText, "utterances": []any{},
			})
		default:
			http.NotFound(w, r)
		}
	}
}

func degradedOrchestrator(srvURL string) *Orchestrator {
	cfg := config.Config{
		AssemblyAIKey:  "test-key",
		AssemblyAIBase: srvURL,
		PollInterval:   2 * time.Millisecond,
		PollTimeout:    time.Second,
		// no GeminiKey: generation degrades to the template fallback
	}
	return New(transcription.NewClient(cfg), note.NewGenerator(genai.NewSelector(cfg)))
}

func TestRunDegradesToTemplateFallback(t *testing.T) {
	svc := &fakeService{jobText: "Patient denies fever."}
	srv := httptest.NewServer(svc.handler())
	defer srv.Close()

	out, err := degradedOrchestrator(srv.URL).Run(context.Background(), Input{
		AudioBytes: []byte("fake-audio"),
		Diarize:    true,
		Format:     note.FormatSOAP,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := note.Fallback("Patient denies fever.", note.FormatSOAP)
	if out.Note != want.RawText {
		t.Errorf("note != deterministic fallback:\n%s", out.Note)
	}
	if out.NoteModel != note.FallbackModel {
		t.Errorf("note model = %q, want %q", out.NoteModel, note.FallbackModel)
	}
	if out.Markdown != note.Beautify(want.RawText) {
		t.Errorf("markdown is not the beautified note")
	}
	if len(out.Utterances) != 1 || out.Utterances[0].Speaker != "Speaker" {
		t.Errorf("expected one synthesized utterance, got %+v", out.Utterances)
	}
	if out.JobID != "job-1" || out.Transcript != "Patient denies fever." {
		t.Errorf("job id/transcript = %q/%q", out.JobID, out.Transcript)
	}
	if svc.uploads != 1 {
		t.Errorf("uploads = %d, want 1", svc.uploads)
	}
	if svc.lastBody["audio_url"] != "https://cdn.example/up-1" {
		t.Errorf("submit did not use the upload URL: %v", svc.lastBody["audio_url"])
	}
}

func TestRunPassesURLThroughWithoutUpload(t *testing.T) {
	svc := &fakeService{jobText: "hello"}
	srv := httptest.NewServer(svc.handler())
	defer srv.Close()

	_, err := degradedOrchestrator(srv.URL).Run(context.Background(), Input{
		AudioURL: "https://example.com/visit.mp3",
		Format:   note.FormatHP,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if svc.uploads != 0 {
		t.Errorf("uploads = %d, want 0 for URL input", svc.uploads)
	}
	if svc.lastBody["audio_url"] != "https://example.com/visit.mp3" {
		t.Errorf("audio_url = %v", svc.lastBody["audio_url"])
	}
	if svc.lastBody["speaker_labels"] != false {
		t.Errorf("speaker_labels = %v, want false", svc.lastBody["speaker_labels"])
	}
}

func TestRunAbortsOnSubmitFailure(t *testing.T) {
	var polls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			polls++
		}
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := degradedOrchestrator(srv.URL).Run(context.Background(), Input{
		AudioURL: "https://example.com/a.mp3",
		Format:   note.FormatSOAP,
	})
	var trErr *transcription.TransportError
	if !errors.As(err, &trErr) {
		t.Fatalf("err = %v, want TransportError", err)
	}
	if polls != 0 {
		t.Errorf("pipeline kept going after submit failure (%d polls)", polls)
	}
}

func TestRunRejectsEmptyInput(t *testing.T) {
	if _, err := degradedOrchestrator("http://127.0.0.1:0").Run(context.Background(), Input{Format: note.FormatSOAP}); !errors.Is(err, ErrNoAudio) {
		t.Fatalf("err = %v, want ErrNoAudio", err)
	}
}

// stubNotes lets the orchestrator test the generation branch without HTTP.
type stubNotes struct {
	res  note.Result
	reqs []note.Request
}

func (s *stubNotes) Generate(_ context.Context, req note.Request) note.Result {
	s.reqs = append(s.reqs, req)
	return s.res
}

type stubTranscriber struct {
	job *types.TranscriptionJob
}

func (s *stubTranscriber) Upload(context.Context, io.Reader) (string, error) { return "u", nil }
func (s *stubTranscriber) Submit(context.Context, string, bool) (string, error) {
	return "job-1", nil
}
func (s *stubTranscriber) Poll(context.Context, string) (*types.TranscriptionJob, error) {
	return s.job, nil
}

func TestRunUsesGeneratedNote(t *testing.T) {
	notes := &stubNotes{res: note.Result{RawText: "SOAP NOTE\ngenerated", ProducingModel: "gemini-2.5-flash"}}
	orc := New(&stubTranscriber{job: &types.TranscriptionJob{ID: "job-1", Status: types.StatusCompleted, Text: "cough"}}, notes)

	out, err := orc.Run(context.Background(), Input{AudioURL: "https://x/a.mp3", Format: note.FormatSOAP})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.NoteModel != "gemini-2.5-flash" || out.Note != "SOAP NOTE\ngenerated" {
		t.Fatalf("output = %+v", out)
	}
	if len(notes.reqs) != 1 || notes.reqs[0].TranscriptText != "cough" {
		t.Fatalf("generator requests = %+v", notes.reqs)
	}
}

func TestRunSkipsGenerationForEmptyTranscript(t *testing.T) {
	notes := &stubNotes{res: note.Result{RawText: "should not be used", ProducingModel: "m"}}
	orc := New(&stubTranscriber{job: &types.TranscriptionJob{ID: "job-1", Status: types.StatusCompleted}}, notes)

	out, err := orc.Run(context.Background(), Input{AudioURL: "https://x/a.mp3", Format: note.FormatSOAP})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(notes.reqs) != 0 {
		t.Fatalf("generator invoked for empty transcript")
	}
	if out.NoteModel != note.FallbackModel {
		t.Fatalf("note model = %q, want fallback sentinel", out.NoteModel)
	}
}
