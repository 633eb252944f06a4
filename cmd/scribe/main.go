// One-shot CLI: run the whole pipeline for a single recording and write
// the export artifacts (note.md, note.txt, transcript.xlsx) to a
// directory. Ctrl-C cancels cleanly, including mid-poll.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"ai-scribe-go/internal/config"
	"ai-scribe-go/internal/export"
	"ai-scribe-go/internal/genai"
	"ai-scribe-go/internal/logger"
	"ai-scribe-go/internal/note"
	"ai-scribe-go/internal/pipeline"
	"ai-scribe-go/internal/transcription"
)

func main() {
	_ = godotenv.Load()

	var (
		in      = flag.String("in", "", "audio file path, or an http(s) URL passed straight to the service")
		format  = flag.String("format", "SOAP", "note format: SOAP or H&P")
		diarize = flag.Bool("diarize", true, "request speaker labels")
		outDir  = flag.String("out", "out", "directory for export artifacts")
	)
	flag.Parse()

	log := logger.New().WithField("service", "scribe-cli")
	if *in == "" {
		log.Fatal("-in is required")
	}

	noteFormat, err := note.ParseFormat(*format)
	if err != nil {
		log.WithError(err).Fatal("bad -format")
	}

	cfg := config.FromEnv()
	if cfg.AssemblyAIKey == "" {
		log.Fatal("ASSEMBLYAI_API_KEY not set")
	}

	input := pipeline.Input{Diarize: *diarize, Format: noteFormat}
	if strings.HasPrefix(*in, "http://") || strings.HasPrefix(*in, "https://") {
		input.AudioURL = *in
	} else {
		data, err := os.ReadFile(*in)
		if err != nil {
			log.WithError(err).Fatal("read audio file")
		}
		input.AudioBytes = data
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orc := pipeline.New(
		transcription.NewClient(cfg),
		note.NewGenerator(genai.NewSelector(cfg)),
	)
	out, err := orc.Run(ctx, input)
	if err != nil {
		log.WithError(err).Fatal("pipeline failed")
	}

	mdPath, txtPath, err := export.WriteNote(*outDir, out.Markdown, out.Note)
	if err != nil {
		log.WithError(err).Fatal("write note artifacts")
	}
	xlsxPath, err := export.WriteUtterances(*outDir, out.Utterances)
	if err != nil {
		log.WithError(err).Fatal("write transcript workbook")
	}

	log.WithField("note_model", out.NoteModel).
		WithField("note_md", mdPath).
		WithField("note_txt", txtPath).
		WithField("transcript_xlsx", xlsxPath).
		Info("done")
}
