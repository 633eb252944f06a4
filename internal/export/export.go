// Package export serializes a finished scribe run into downloadable
// artifacts: the beautified note as markdown, the raw note as plain
// text, and the diarized transcript as an Excel workbook.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"ai-scribe-go/internal/types"
)

const (
	noteMarkdownName = "note.md"
	noteTextName     = "note.txt"
	transcriptName   = "transcript.xlsx"
	transcriptSheet  = "Transcript"
)

// WriteNote writes the beautified markdown and the raw note text into
// dir, creating it if needed. Both are plain UTF-8 serializations of
// the note with no extra encoding rules.
func WriteNote(dir, markdown, raw string) (mdPath, txtPath string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create export dir: %w", err)
	}
	mdPath = filepath.Join(dir, noteMarkdownName)
	if err := os.WriteFile(mdPath, []byte(markdown), 0o644); err != nil {
		return "", "", fmt.Errorf("write %s: %w", noteMarkdownName, err)
	}
	txtPath = filepath.Join(dir, noteTextName)
	if err := os.WriteFile(txtPath, []byte(raw), 0o644); err != nil {
		return "", "", fmt.Errorf("write %s: %w", noteTextName, err)
	}
	return mdPath, txtPath, nil
}

// WriteUtterances writes one workbook row per utterance, in service
// emission order.
func WriteUtterances(dir string, utts []types.Utterance) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", transcriptSheet); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}

	header := []any{"Speaker", "Start (s)", "End (s)", "Text"}
	if err := f.SetSheetRow(transcriptSheet, "A1", &header); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for i, u := range utts {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", fmt.Errorf("row %d: %w", i+2, err)
		}
		row := []any{u.Speaker, u.StartSeconds, u.EndSeconds, u.Text}
		if err := f.SetSheetRow(transcriptSheet, cell, &row); err != nil {
			return "", fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	path := filepath.Join(dir, transcriptName)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save %s: %w", transcriptName, err)
	}
	return path, nil
}
