package gdocs

import (
	"context"
	"fmt"
	"io"
	"time"

	"cim-memo-be/pkg/memo"

	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/impersonate"
	"google.golang.org/api/option"
)

const docxMimeType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Documents start at body index 1; inserted text spans [1, 1+len).
const bodyBaseIndex = 1

// Exporter renders a structured memo document into a new Google Doc and
// exports it as docx bytes via Drive. The whole path is best-effort: callers
// fall back to the local converter on any failure.
type Exporter struct {
	docsService  *docs.Service
	driveService *drive.Service
}

// NewExporter impersonates the configured service account for Docs and Drive
// access.
func NewExporter(ctx context.Context, serviceAccount string) (*Exporter, error) {
	ts, err := impersonate.CredentialsTokenSource(ctx, impersonate.CredentialsConfig{
		TargetPrincipal: serviceAccount,
		Scopes:          []string{"https://www.googleapis.com/auth/drive.file"},
		Lifetime:        500 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to impersonate service account: %w", err)
	}

	docsService, err := docs.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to build docs service: %w", err)
	}
	driveService, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to build drive service: %w", err)
	}

	return &Exporter{docsService: docsService, driveService: driveService}, nil
}

// ExportDocx creates the remote document, applies styling computed from the
// block layout, and downloads the result as docx bytes.
func (e *Exporter) ExportDocx(ctx context.Context, title string, doc memo.Document) ([]byte, error) {
	created, err := e.docsService.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	documentID := created.DocumentId

	text := doc.PlainText()
	if err := e.batch(ctx, documentID, []*docs.Request{{
		InsertText: &docs.InsertTextRequest{
			Location: &docs.Location{Index: bodyBaseIndex},
			Text:     text,
		},
	}}); err != nil {
		return nil, fmt.Errorf("failed to insert memo text: %w", err)
	}

	layout := doc.Layout()

	// Styling requests never shift indices, so the layout offsets stay valid
	// for the entire batch.
	if reqs := styleRequests(layout, utf16Len(text)); len(reqs) > 0 {
		if err := e.batch(ctx, documentID, reqs); err != nil {
			return nil, fmt.Errorf("failed to style memo: %w", err)
		}
	}

	// Page breaks insert content. Applying them in descending index order
	// keeps every remaining offset valid without re-reading the document.
	if reqs := pageBreakRequests(layout); len(reqs) > 0 {
		if err := e.batch(ctx, documentID, reqs); err != nil {
			return nil, fmt.Errorf("failed to insert page breaks: %w", err)
		}
	}

	resp, err := e.driveService.Files.Export(documentID, docxMimeType).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to export document: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func (e *Exporter) batch(ctx context.Context, documentID string, reqs []*docs.Request) error {
	_, err := e.docsService.Documents.BatchUpdate(documentID, &docs.BatchUpdateDocumentRequest{
		Requests: reqs,
	}).Context(ctx).Do()
	return err
}

func styleRequests(layout []memo.PositionedBlock, textLen int64) []*docs.Request {
	var reqs []*docs.Request

	for _, pb := range layout {
		var namedStyle string
		switch pb.Type {
		case memo.BlockHeading:
			namedStyle = "HEADING_1"
		case memo.BlockSubheading:
			namedStyle = "HEADING_3"
		default:
			continue
		}
		if pb.Start == pb.End {
			continue
		}
		reqs = append(reqs, &docs.Request{
			UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
				Range: &docs.Range{
					StartIndex: bodyBaseIndex + pb.Start,
					EndIndex:   bodyBaseIndex + pb.End,
				},
				ParagraphStyle: &docs.ParagraphStyle{NamedStyleType: namedStyle},
				Fields:         "namedStyleType",
			},
		})
	}

	if textLen > 0 {
		reqs = append(reqs, &docs.Request{
			UpdateTextStyle: &docs.UpdateTextStyleRequest{
				Range: &docs.Range{
					StartIndex: bodyBaseIndex,
					EndIndex:   bodyBaseIndex + textLen,
				},
				TextStyle: &docs.TextStyle{
					WeightedFontFamily: &docs.WeightedFontFamily{FontFamily: "Times New Roman"},
				},
				Fields: "weightedFontFamily",
			},
		})
	}

	return reqs
}

func pageBreakRequests(layout []memo.PositionedBlock) []*docs.Request {
	var reqs []*docs.Request
	// Walk backwards so inserts at higher indices never invalidate lower ones.
	for i := len(layout) - 1; i >= 0; i-- {
		pb := layout[i]
		if pb.Type != memo.BlockPageBreak {
			continue
		}
		reqs = append(reqs, &docs.Request{
			InsertPageBreak: &docs.InsertPageBreakRequest{
				Location: &docs.Location{Index: bodyBaseIndex + pb.Start},
			},
		})
	}
	return reqs
}

func utf16Len(s string) int64 {
	var n int64
	for _, r := range s {
		n++
		if r > 0xFFFF {
			n++
		}
	}
	return n
}
