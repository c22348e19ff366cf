package converter

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPlaintextRoundTrip(t *testing.T) {
	c := NewPandocConverter("", "", "")
	dir := t.TempDir()

	tests := []struct {
		name string
		text string
	}{
		{"plain ascii", "A short summary.\nWith two lines."},
		{"markdown passthrough", "| col | val |\n|---|---|\n| a | 1 |"},
		{"unicode", "Résumé — naïve 📝"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := c.Export(tt.text, FormatPlaintext, dir, "artifact")
			if err != nil {
				t.Fatalf("Export: %v", err)
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if string(got) != tt.text {
				t.Errorf("round trip mismatch:\n got %q\nwant %q", got, tt.text)
			}
		})
	}
}

func TestExportPlaintextFileName(t *testing.T) {
	c := NewPandocConverter("", "", "")
	dir := t.TempDir()

	path, err := c.Export("text", FormatPlaintext, dir, "summary")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "summary.txt" {
		t.Errorf("file name = %q, want summary.txt", filepath.Base(path))
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	c := NewPandocConverter("", "", "")

	if _, err := c.Export("text", Format("odt"), t.TempDir(), "out"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestExportDocxFailsWithoutConverter(t *testing.T) {
	// A missing binary must surface as an error rather than a silent no-op,
	// and must not affect other formats.
	c := NewPandocConverter("pandoc-binary-that-does-not-exist", "", "")
	dir := t.TempDir()

	if _, err := c.Export("text", FormatDocx, dir, "out"); err == nil {
		t.Error("expected error when converter binary is missing")
	}

	if _, err := c.Export("text", FormatPlaintext, dir, "out"); err != nil {
		t.Errorf("plaintext must not depend on the converter: %v", err)
	}
}
