package store

import (
	"sort"
	"time"

	"cim-memo-be/pkg/chat"
)

// FileRole marks what an uploaded file contributes to the pipeline.
type FileRole string

const (
	FileRoleDocument FileRole = "document"
	FileRoleTemplate FileRole = "template"
	FileRoleMemo     FileRole = "memo"
)

// FileRecord is the metadata entry for one uploaded source file. Records are
// immutable after creation and live for the lifetime of the workspace.
type FileRecord struct {
	Name       string    `json:"name"`
	Role       FileRole  `json:"role"`
	StorageURI string    `json:"storage_uri"`
	MimeType   string    `json:"mime_type"`
	LocalPath  string    `json:"local_path,omitempty"`
	PageCount  int       `json:"page_count"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Workspace is the per-session state: the file context store, the generated
// artifacts, and the conversation logs. It is exclusively owned by one
// session's control flow; there is no concurrent mutator and no locking.
type Workspace struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// TempDir holds local copies of uploads for the viewer and export staging.
	TempDir string `json:"temp_dir"`

	ModelOption string `json:"model_option"`

	// File context store, keyed by file name.
	Files map[string]*FileRecord `json:"files"`

	// Latest generated artifacts.
	Summary        string `json:"summary,omitempty"`
	DisplaySummary string `json:"display_summary,omitempty"`
	MemoText       string `json:"memo_text,omitempty"`

	// Conversation logs keyed by chatbot function (editor / qa).
	Conversations map[string]*chat.Conversation `json:"conversations"`
}

func NewWorkspace(id, tempDir, modelOption string) *Workspace {
	return &Workspace{
		ID:            id,
		CreatedAt:     time.Now(),
		TempDir:       tempDir,
		ModelOption:   modelOption,
		Files:         make(map[string]*FileRecord),
		Conversations: make(map[string]*chat.Conversation),
	}
}

// PutFile inserts or overwrites the record for its name. The only validation
// is a non-empty name.
func (w *Workspace) PutFile(record *FileRecord) {
	if record == nil || record.Name == "" {
		return
	}
	w.Files[record.Name] = record
}

// GetFile returns the record for a name, if present.
func (w *Workspace) GetFile(name string) (*FileRecord, bool) {
	record, ok := w.Files[name]
	return record, ok
}

// AllFiles returns the records, optionally restricted to one role. Order is
// stable (by name) so the same file set always reaches the model the same way.
func (w *Workspace) AllFiles(roleFilter FileRole) []*FileRecord {
	records := make([]*FileRecord, 0, len(w.Files))
	for _, record := range w.Files {
		if roleFilter != "" && record.Role != roleFilter {
			continue
		}
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})
	return records
}

// Conversation returns the log for a chatbot function, creating it on first
// use. The editor variant carries the workspace summary as read-only context;
// a conversation created before any summary existed picks it up here once one
// is generated.
func (w *Workspace) Conversation(function string) *chat.Conversation {
	if conv, ok := w.Conversations[function]; ok {
		if conv.BaseSummary == "" && w.Summary != "" {
			conv.BaseSummary = w.Summary
		}
		return conv
	}
	conv := chat.New(function, w.Summary)
	w.Conversations[function] = conv
	return conv
}
