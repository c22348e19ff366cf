package memo

import (
	"strings"
	"unicode/utf16"
)

// BlockType tags one typed block of a memo draft.
type BlockType string

const (
	BlockHeading    BlockType = "heading"
	BlockSubheading BlockType = "subheading"
	BlockBody       BlockType = "body"
	BlockPageBreak  BlockType = "pagebreak"
)

// Block is one element of the structured memo document. The document is built
// directly from generation output, so styling never has to re-derive offsets
// by substring search.
type Block struct {
	Type BlockType
	Text string
}

// Document is the ordered block list for a memo draft.
type Document struct {
	Blocks []Block
}

// ParseDraft classifies each line of the generated draft against the known
// heading and subheading titles. The section titled "Executive Summary" gets a
// page break before it and another before the following heading.
func ParseDraft(text string, headings, subheadings []string) Document {
	headingSet := toSet(headings)
	subheadingSet := toSet(subheadings)

	var doc Document
	inExecutiveSummary := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed != "" && headingSet[trimmed]:
			isExec := strings.Contains(trimmed, "Executive Summary")
			if isExec || inExecutiveSummary {
				doc.Blocks = append(doc.Blocks, Block{Type: BlockPageBreak})
			}
			inExecutiveSummary = isExec
			doc.Blocks = append(doc.Blocks, Block{Type: BlockHeading, Text: trimmed})

		case trimmed != "" && subheadingSet[trimmed]:
			doc.Blocks = append(doc.Blocks, Block{Type: BlockSubheading, Text: trimmed})

		default:
			doc.Blocks = append(doc.Blocks, Block{Type: BlockBody, Text: line})
		}
	}

	return doc
}

func toSet(titles []string) map[string]bool {
	set := make(map[string]bool, len(titles))
	for _, t := range titles {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			set[trimmed] = true
		}
	}
	return set
}

// PlainText renders the document as the text that gets inserted into the
// target document. Every block, page breaks included, occupies exactly one
// line so layout offsets stay aligned with the rendered text.
func (d Document) PlainText() string {
	lines := make([]string, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		if b.Type == BlockPageBreak {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, b.Text)
	}
	return strings.Join(lines, "\n")
}

// PositionedBlock carries a block plus its span within PlainText, measured in
// UTF-16 code units (the unit the Docs API counts in).
type PositionedBlock struct {
	Block
	Start int64
	End   int64
}

// Layout computes each block's span in a single pass over the block list.
// Offsets are relative to the start of PlainText; callers add the target
// document's base index.
func (d Document) Layout() []PositionedBlock {
	positioned := make([]PositionedBlock, 0, len(d.Blocks))
	var offset int64

	for _, b := range d.Blocks {
		text := b.Text
		if b.Type == BlockPageBreak {
			text = ""
		}
		length := utf16Length(text)
		positioned = append(positioned, PositionedBlock{
			Block: b,
			Start: offset,
			End:   offset + length,
		})
		// +1 for the newline separating lines in PlainText.
		offset += length + 1
	}

	return positioned
}

func utf16Length(s string) int64 {
	return int64(len(utf16.Encode([]rune(s))))
}
