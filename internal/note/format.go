// Package note owns the two clinical note formats: their prompt
// templates, the deterministic template fallback and the markdown
// beautifier. Each format's title, section labels and templates live in
// one definition so the beautifier can never drift from the prompts.
package note

import (
	"fmt"
	"strings"
)

// Format selects one of the two fixed note templates.
type Format string

const (
	FormatSOAP Format = "SOAP"
	FormatHP   Format = "HP"
)

// NotMentioned is the literal marker the templates demand for any
// section lacking source data.
const NotMentioned = "Not mentioned."

// FallbackModel is the ProducingModel sentinel for notes built by the
// template fallback instead of a generation model.
const FallbackModel = "template-fallback"

// Request asks for one note from one transcript.
type Request struct {
	TranscriptText string
	Format         Format
}

// Result carries the produced note text and which producer made it:
// a model identifier, or FallbackModel.
type Result struct {
	RawText        string `json:"raw_text"`
	ProducingModel string `json:"producing_model"`
}

// ParseFormat accepts the wire spellings of the two formats.
func ParseFormat(s string) (Format, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SOAP":
		return FormatSOAP, nil
	case "HP", "H&P":
		return FormatHP, nil
	}
	return "", fmt.Errorf("unknown note format %q", s)
}

// definition binds everything format-specific together. Adding a third
// format means adding one entry here and nothing anywhere else.
type definition struct {
	title    string
	sections []string
	prompt   string
	fallback string
}

const (
	transcriptPlaceholder = "{{TRANSCRIPT_HERE}}"
	hpiPlaceholder        = "{{HPI}}"
)

var definitions = map[Format]definition{
	FormatSOAP: {
		title:    "SOAP NOTE",
		sections: []string{"S – Subjective", "O – Objective", "A – Assessment", "P – Plan"},
		prompt:   soapPrompt,
		fallback: soapFallback,
	},
	FormatHP: {
		title:    "HISTORY & PHYSICAL (H&P)",
		sections: []string{"HISTORY", "PHYSICAL EXAM", "ASSESSMENT", "PLAN"},
		prompt:   hpPrompt,
		fallback: hpFallback,
	},
}

func lookup(f Format) definition {
	if d, ok := definitions[f]; ok {
		return d
	}
	return definitions[FormatSOAP]
}

// Prompt renders the format's template with the transcript substituted
// into its single placeholder.
func Prompt(f Format, transcriptText string) string {
	return strings.ReplaceAll(lookup(f).prompt, transcriptPlaceholder, transcriptText)
}

func isTitle(line string) bool {
	for _, d := range definitions {
		if line == d.title {
			return true
		}
	}
	return false
}

func isSectionLabel(line string) bool {
	for _, d := range definitions {
		for _, s := range d.sections {
			if line == s {
				return true
			}
		}
	}
	return false
}
