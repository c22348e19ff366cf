package store

import (
	"testing"

	"cim-memo-be/internal/constant"
)

func newRecord(name string, role FileRole) *FileRecord {
	return &FileRecord{Name: name, Role: role, StorageURI: "gs://bucket/" + name, MimeType: "application/pdf"}
}

func TestPutFile(t *testing.T) {
	w := NewWorkspace("ws-1", t.TempDir(), "")

	w.PutFile(newRecord("cim.pdf", FileRoleDocument))
	if _, ok := w.GetFile("cim.pdf"); !ok {
		t.Fatal("record not stored")
	}

	// Same name overwrites.
	w.PutFile(newRecord("cim.pdf", FileRoleTemplate))
	record, _ := w.GetFile("cim.pdf")
	if record.Role != FileRoleTemplate {
		t.Errorf("overwrite did not replace record, role = %q", record.Role)
	}
	if len(w.Files) != 1 {
		t.Errorf("expected 1 record, got %d", len(w.Files))
	}

	// Empty names are rejected silently.
	w.PutFile(newRecord("", FileRoleDocument))
	if len(w.Files) != 1 {
		t.Errorf("empty name must not be stored")
	}
	w.PutFile(nil)
}

func TestAllFilesFilterAndOrder(t *testing.T) {
	w := NewWorkspace("ws-1", t.TempDir(), "")
	w.PutFile(newRecord("b-doc.pdf", FileRoleDocument))
	w.PutFile(newRecord("template.pdf", FileRoleTemplate))
	w.PutFile(newRecord("a-doc.pdf", FileRoleDocument))

	all := w.AllFiles("")
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}
	// Stable name order so the model always sees the same file sequence.
	if all[0].Name != "a-doc.pdf" || all[1].Name != "b-doc.pdf" || all[2].Name != "template.pdf" {
		t.Errorf("files not sorted by name: %s, %s, %s", all[0].Name, all[1].Name, all[2].Name)
	}

	documents := w.AllFiles(FileRoleDocument)
	if len(documents) != 2 {
		t.Fatalf("len(documents) = %d, want 2", len(documents))
	}
	for _, record := range documents {
		if record.Role != FileRoleDocument {
			t.Errorf("role filter leaked %q", record.Role)
		}
	}
}

func TestConversationLazyCreation(t *testing.T) {
	w := NewWorkspace("ws-1", t.TempDir(), "")
	w.Summary = "the base summary"

	editor := w.Conversation(constant.ChatbotFunctionEditor)
	if editor.BaseSummary != "the base summary" {
		t.Errorf("editor conversation must capture the workspace summary")
	}

	// Second call returns the same log.
	editor.AppendUserTurn("edit")
	again := w.Conversation(constant.ChatbotFunctionEditor)
	if len(again.Turns) != 2 {
		t.Errorf("expected the existing conversation, got a fresh one")
	}

	// Variants are independent.
	qa := w.Conversation(constant.ChatbotFunctionQA)
	if len(qa.Turns) != 1 {
		t.Errorf("qa conversation should start fresh")
	}
}

func TestConversationPicksUpLaterSummary(t *testing.T) {
	w := NewWorkspace("ws-1", t.TempDir(), "")

	// Created before any summary exists, e.g. via a history read.
	editor := w.Conversation(constant.ChatbotFunctionEditor)
	if editor.BaseSummary != "" {
		t.Fatalf("BaseSummary = %q, want empty", editor.BaseSummary)
	}

	w.Summary = "the real base summary"
	again := w.Conversation(constant.ChatbotFunctionEditor)
	if again != editor {
		t.Fatal("expected the existing conversation")
	}
	if again.BaseSummary != "the real base summary" {
		t.Errorf("BaseSummary = %q, want the generated summary", again.BaseSummary)
	}
}
