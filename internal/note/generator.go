package note

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"ai-scribe-go/internal/genai"
	"ai-scribe-go/internal/logger"
)

// TextGenerator is the model cascade boundary. An empty Result means
// every candidate was exhausted (or no credential is configured).
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) genai.Result
}

// Generator renders the format's prompt and delegates to the cascade,
// degrading to the template fallback when no usable text comes back.
type Generator struct {
	models TextGenerator
	log    *logrus.Entry
}

func NewGenerator(models TextGenerator) *Generator {
	return &Generator{
		models: models,
		log:    logger.New().WithField("module", "note"),
	}
}

// Generate always produces a note. Generation-level failures never
// escape: an empty cascade result turns into the deterministic
// fallback, so the only visible difference is ProducingModel.
func (g *Generator) Generate(ctx context.Context, req Request) Result {
	res := g.models.Generate(ctx, Prompt(req.Format, req.TranscriptText))
	if strings.TrimSpace(res.Text) == "" {
		g.log.WithField("format", string(req.Format)).Info("generation unavailable, using template fallback")
		return Fallback(req.TranscriptText, req.Format)
	}
	return Result{RawText: res.Text, ProducingModel: res.Model}
}
