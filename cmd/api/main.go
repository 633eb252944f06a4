package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"ai-scribe-go/internal/config"
	"ai-scribe-go/internal/genai"
	"ai-scribe-go/internal/logger"
	"ai-scribe-go/internal/note"
	"ai-scribe-go/internal/pipeline"
	"ai-scribe-go/internal/transcription"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "ai-scribe-go").Info("starting service")

	cfg := config.FromEnv()
	if cfg.AssemblyAIKey == "" {
		log.Fatal("ASSEMBLYAI_API_KEY not set")
	}
	if cfg.GeminiKey == "" {
		log.Warn("GEMINI_API_KEY not set; every note will use the template fallback")
	}

	orc := pipeline.New(
		transcription.NewClient(cfg),
		note.NewGenerator(genai.NewSelector(cfg)),
	)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("100M"))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.POST("/scribe", scribeHandler(orc))

	addr := ":" + cfg.Port
	log.WithField("addr", addr).Info("listening")
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server terminated")
	}
}

// scribeHandler accepts multipart form data: an "audio" file or an
// "audio_url" field, plus optional "format" (SOAP | HP, default SOAP)
// and "diarize" (default true).
func scribeHandler(orc *pipeline.Orchestrator) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqLog := logger.New().WithRequest(c.Request()).WithField("handler", "scribe")

		format := note.FormatSOAP
		if f := c.FormValue("format"); f != "" {
			parsed, err := note.ParseFormat(f)
			if err != nil {
				reqLog.WithField("format", f).Warn("bad note format")
				return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
			}
			format = parsed
		}

		diarize := true
		if d := c.FormValue("diarize"); d != "" {
			if v, err := strconv.ParseBool(d); err == nil {
				diarize = v
			}
		}

		in := pipeline.Input{Diarize: diarize, Format: format}
		if fh, err := c.FormFile("audio"); err == nil {
			src, err := fh.Open()
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "unreadable audio upload"})
			}
			defer src.Close()
			data, err := io.ReadAll(src)
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "unreadable audio upload"})
			}
			in.AudioBytes = data
		} else {
			in.AudioURL = c.FormValue("audio_url")
		}

		out, err := orc.Run(c.Request().Context(), in)
		if err != nil {
			reqLog.WithError(err).Warn("pipeline failed")
			return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
		}
		reqLog.WithField("note_model", out.NoteModel).Info("scribe request done")
		return c.JSONPretty(http.StatusOK, out, "  ")
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrNoAudio):
		return http.StatusBadRequest
	case errors.Is(err, transcription.ErrPollTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	default:
		// transport and job failures are both upstream faults
		return http.StatusBadGateway
	}
}
