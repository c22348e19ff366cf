package chat

import (
	"fmt"
	"strings"
	"time"

	"cim-memo-be/internal/constant"
)

// Turn is one message in a conversation log. DisplayContent is populated only
// for assistant turns: it is the markdown-formatted rendering of RawContent,
// shown in the UI but never fed back to the model as context.
type Turn struct {
	Role           string    `json:"role"`
	RawContent     string    `json:"raw_content"`
	DisplayContent string    `json:"display_content,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Conversation is an append-only turn log with latest-response slots. Turns
// are never mutated after creation; ordering is chronological. The structure
// is owned by a single workspace and has no internal locking.
type Conversation struct {
	Function              string  `json:"function"` // none | editor | qa
	Turns                 []*Turn `json:"turns"`
	LatestRawResponse     *string `json:"latest_raw_response,omitempty"`
	LatestDisplayResponse *string `json:"latest_display_response,omitempty"`

	// BaseSummary is read-only context for the editor variant. It is not part
	// of the turn log.
	BaseSummary string `json:"-"`
}

// New creates a conversation seeded with the variant's introductory turn.
func New(function, baseSummary string) *Conversation {
	intro := &Turn{
		Role:       constant.ChatMessageRoleAssistant,
		RawContent: introMessageFor(function),
		CreatedAt:  time.Now(),
	}
	intro.DisplayContent = intro.RawContent

	return &Conversation{
		Function:    function,
		Turns:       []*Turn{intro},
		BaseSummary: baseSummary,
	}
}

func introMessageFor(function string) string {
	if function == constant.ChatbotFunctionQA {
		return constant.QAIntroMessage
	}
	return constant.EditorIntroMessage
}

// AppendUserTurn records the user's input. It is appended before generation
// starts so the input stays visible while the model call is in flight, and it
// stays in the log even when generation fails.
func (c *Conversation) AppendUserTurn(text string) *Turn {
	turn := &Turn{
		Role:       constant.ChatMessageRoleUser,
		RawContent: text,
		CreatedAt:  time.Now(),
	}
	c.Turns = append(c.Turns, turn)
	return turn
}

// AppendAssistantTurn records a completed generation. The turn append and the
// latest-response slot updates are a single unit: callers must only invoke
// this after both the content and formatting calls succeeded.
func (c *Conversation) AppendAssistantTurn(raw, display string) *Turn {
	turn := &Turn{
		Role:           constant.ChatMessageRoleAssistant,
		RawContent:     raw,
		DisplayContent: display,
		CreatedAt:      time.Now(),
	}
	c.Turns = append(c.Turns, turn)
	c.LatestRawResponse = &raw
	c.LatestDisplayResponse = &display
	return turn
}

// Clear truncates the log back to the introductory turn and unsets both
// latest-response slots. Valid in any state.
func (c *Conversation) Clear() {
	c.Turns = c.Turns[:1]
	c.LatestRawResponse = nil
	c.LatestDisplayResponse = nil
}

// FormatHistory flattens the turn log into "role: content" lines in strict
// append order. The model's continuation quality depends on this ordering, so
// the introductory turn is included and nothing is reordered or dropped.
func (c *Conversation) FormatHistory() []string {
	lines := make([]string, 0, len(c.Turns))
	for _, turn := range c.Turns {
		lines = append(lines, fmt.Sprintf("%s: %s", turn.Role, turn.RawContent))
	}
	return lines
}

// IsBlank reports whether the input should be treated as a no-op submit.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
