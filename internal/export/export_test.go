package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"ai-scribe-go/internal/types"
)

func TestWriteNote(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "artifacts")

	mdPath, txtPath, err := WriteNote(dir, "# SOAP NOTE\n\ncontent", "SOAP NOTE\ncontent")
	if err != nil {
		t.Fatalf("write note: %v", err)
	}

	md, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatalf("read md: %v", err)
	}
	if string(md) != "# SOAP NOTE\n\ncontent" {
		t.Errorf("md content = %q", md)
	}
	txt, err := os.ReadFile(txtPath)
	if err != nil {
		t.Fatalf("read txt: %v", err)
	}
	if string(txt) != "SOAP NOTE\ncontent" {
		t.Errorf("txt content = %q", txt)
	}
}

func TestWriteUtterances(t *testing.T) {
	dir := t.TempDir()
	utts := []types.Utterance{
		{Speaker: "A", Text: "Hello doctor.", StartSeconds: 1.5, EndSeconds: 2.75},
		{Speaker: "B", Text: "Hello.", StartSeconds: 3, EndSeconds: 3.5},
	}

	path, err := WriteUtterances(dir, utts)
	if err != nil {
		t.Fatalf("write utterances: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(transcriptSheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "Speaker" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "A" || rows[1][3] != "Hello doctor." {
		t.Errorf("first data row = %v", rows[1])
	}
	if rows[1][1] != "1.5" {
		t.Errorf("start cell = %q, want 1.5", rows[1][1])
	}
}

func TestWriteUtterancesEmpty(t *testing.T) {
	path, err := WriteUtterances(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("write empty: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	rows, _ := f.GetRows(transcriptSheet)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want header only", len(rows))
	}
}
