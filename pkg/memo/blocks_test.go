package memo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var testHeadings = []string{
	"Executive Summary",
	"II. Investment Rationale",
	"III. About the Target",
}

var testSubheadings = []string{
	"Market Overview",
}

func TestParseDraftClassifiesLines(t *testing.T) {
	draft := strings.Join([]string{
		"II. Investment Rationale",
		"Strong recurring revenue.",
		"Market Overview",
		"The market is growing.",
	}, "\n")

	doc := ParseDraft(draft, testHeadings, testSubheadings)

	wantTypes := []BlockType{BlockHeading, BlockBody, BlockSubheading, BlockBody}
	if len(doc.Blocks) != len(wantTypes) {
		t.Fatalf("len(blocks) = %d, want %d", len(doc.Blocks), len(wantTypes))
	}
	for i, want := range wantTypes {
		if doc.Blocks[i].Type != want {
			t.Errorf("block %d type = %q, want %q", i, doc.Blocks[i].Type, want)
		}
	}
}

func TestParseDraftExecutiveSummaryPageBreaks(t *testing.T) {
	draft := strings.Join([]string{
		"Executive Summary",
		"Key takeaways here.",
		"II. Investment Rationale",
		"Rationale body.",
	}, "\n")

	doc := ParseDraft(draft, testHeadings, testSubheadings)

	// A page break lands before the Executive Summary heading and before the
	// heading that follows it.
	var sequence []BlockType
	for _, b := range doc.Blocks {
		sequence = append(sequence, b.Type)
	}
	want := []BlockType{BlockPageBreak, BlockHeading, BlockBody, BlockPageBreak, BlockHeading, BlockBody}
	if len(sequence) != len(want) {
		t.Fatalf("block sequence %v, want %v", sequence, want)
	}
	for i := range want {
		if sequence[i] != want[i] {
			t.Fatalf("block sequence %v, want %v", sequence, want)
		}
	}
}

func TestParseDraftHeadingMatchIsExact(t *testing.T) {
	draft := "A line mentioning II. Investment Rationale mid-sentence."

	doc := ParseDraft(draft, testHeadings, nil)

	if doc.Blocks[0].Type != BlockBody {
		t.Errorf("partial matches must stay body text, got %q", doc.Blocks[0].Type)
	}
}

func TestPlainTextKeepsOneLinePerBlock(t *testing.T) {
	draft := strings.Join([]string{
		"Executive Summary",
		"Body line.",
	}, "\n")
	doc := ParseDraft(draft, testHeadings, nil)

	text := doc.PlainText()
	lines := strings.Split(text, "\n")
	if len(lines) != len(doc.Blocks) {
		t.Fatalf("PlainText lines = %d, blocks = %d; they must stay aligned", len(lines), len(doc.Blocks))
	}
	// The page break renders as an empty line.
	if lines[0] != "" {
		t.Errorf("page break line = %q, want empty", lines[0])
	}
}

func TestLayoutOffsets(t *testing.T) {
	doc := Document{Blocks: []Block{
		{Type: BlockHeading, Text: "Head"},
		{Type: BlockBody, Text: "Body text"},
		{Type: BlockPageBreak},
		{Type: BlockHeading, Text: "Next"},
	}}

	layout := doc.Layout()

	tests := []struct {
		index      int
		start, end int64
	}{
		{0, 0, 4},   // "Head"
		{1, 5, 14},  // "Body text"
		{2, 15, 15}, // page break, zero width
		{3, 16, 20}, // "Next"
	}
	for _, tt := range tests {
		got := layout[tt.index]
		if got.Start != tt.start || got.End != tt.end {
			t.Errorf("block %d span = [%d,%d), want [%d,%d)", tt.index, got.Start, got.End, tt.start, tt.end)
		}
	}
}

func TestLayoutCountsUTF16Units(t *testing.T) {
	// Characters outside the BMP take two UTF-16 code units each.
	doc := Document{Blocks: []Block{
		{Type: BlockBody, Text: "📝"},
		{Type: BlockBody, Text: "after"},
	}}

	layout := doc.Layout()
	if layout[0].End != 2 {
		t.Errorf("emoji span end = %d, want 2", layout[0].End)
	}
	if layout[1].Start != 3 {
		t.Errorf("second block start = %d, want 3", layout[1].Start)
	}
}

func TestLoadHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "headings.txt")
	content := "Executive Summary\n\n  II. Investment Rationale  \n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	headers, err := LoadHeaders(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Executive Summary", "II. Investment Rationale"}
	if len(headers) != len(want) {
		t.Fatalf("len(headers) = %d, want %d", len(headers), len(want))
	}
	for i := range want {
		if headers[i] != want[i] {
			t.Errorf("header %d = %q, want %q", i, headers[i], want[i])
		}
	}

	if _, err := LoadHeaders(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
