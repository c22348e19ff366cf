package chat

import (
	"fmt"
	"strings"
	"testing"

	"cim-memo-be/internal/constant"
)

func TestNewSeedsIntroTurn(t *testing.T) {
	tests := []struct {
		name      string
		function  string
		wantIntro string
	}{
		{
			name:      "editor variant",
			function:  constant.ChatbotFunctionEditor,
			wantIntro: constant.EditorIntroMessage,
		},
		{
			name:      "qa variant",
			function:  constant.ChatbotFunctionQA,
			wantIntro: constant.QAIntroMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.function, "")

			if len(c.Turns) != 1 {
				t.Fatalf("expected 1 turn after creation, got %d", len(c.Turns))
			}
			intro := c.Turns[0]
			if intro.Role != constant.ChatMessageRoleAssistant {
				t.Errorf("intro role = %q, want assistant", intro.Role)
			}
			if intro.RawContent != tt.wantIntro {
				t.Errorf("intro content = %q, want %q", intro.RawContent, tt.wantIntro)
			}
			if intro.DisplayContent != intro.RawContent {
				t.Errorf("intro display should equal raw content")
			}
			if c.LatestRawResponse != nil || c.LatestDisplayResponse != nil {
				t.Errorf("latest-response slots should be unset on a new conversation")
			}
		})
	}
}

func TestTurnCountInvariant(t *testing.T) {
	// After n successful submits the log holds 1 + 2n turns.
	c := New(constant.ChatbotFunctionEditor, "base summary")

	for n := 1; n <= 5; n++ {
		c.AppendUserTurn(fmt.Sprintf("edit request %d", n))
		c.AppendAssistantTurn(fmt.Sprintf("raw %d", n), fmt.Sprintf("display %d", n))

		if got, want := len(c.Turns), 1+2*n; got != want {
			t.Fatalf("after %d submits len(turns) = %d, want %d", n, got, want)
		}
	}
}

func TestFailedGenerationLeavesOnlyUserTurn(t *testing.T) {
	c := New(constant.ChatbotFunctionQA, "")
	c.AppendUserTurn("first question")
	c.AppendAssistantTurn("answer", "formatted answer")

	before := len(c.Turns)
	latestBefore := *c.LatestRawResponse

	// A failed generation appends the user turn and nothing else.
	c.AppendUserTurn("second question")

	if got, want := len(c.Turns), before+1; got != want {
		t.Fatalf("len(turns) = %d, want %d", got, want)
	}
	if c.Turns[len(c.Turns)-1].Role != constant.ChatMessageRoleUser {
		t.Errorf("last turn should be the user turn")
	}
	if *c.LatestRawResponse != latestBefore {
		t.Errorf("latest raw response must be unchanged after a failed generation")
	}
}

func TestAppendAssistantTurnUpdatesSlots(t *testing.T) {
	c := New(constant.ChatbotFunctionEditor, "")
	c.AppendUserTurn("shorten it")
	c.AppendAssistantTurn("raw edit", "display edit")

	if c.LatestRawResponse == nil || *c.LatestRawResponse != "raw edit" {
		t.Errorf("latest raw response not updated")
	}
	if c.LatestDisplayResponse == nil || *c.LatestDisplayResponse != "display edit" {
		t.Errorf("latest display response not updated")
	}
}

func TestClearRestoresCreationState(t *testing.T) {
	c := New(constant.ChatbotFunctionEditor, "")

	// Two successful submits, then clear.
	c.AppendUserTurn("one")
	c.AppendAssistantTurn("raw one", "display one")
	c.AppendUserTurn("two")
	c.AppendAssistantTurn("raw two", "display two")

	c.Clear()

	if len(c.Turns) != 1 {
		t.Fatalf("after clear len(turns) = %d, want 1", len(c.Turns))
	}
	if c.Turns[0].RawContent != constant.EditorIntroMessage {
		t.Errorf("clear must keep the introductory turn")
	}
	if c.LatestRawResponse != nil || c.LatestDisplayResponse != nil {
		t.Errorf("clear must unset both latest-response slots")
	}

	// Clear is valid in any state, including right after a clear.
	c.Clear()
	if len(c.Turns) != 1 {
		t.Errorf("double clear changed the log, len = %d", len(c.Turns))
	}
}

func TestFormatHistoryPreservesOrder(t *testing.T) {
	c := New(constant.ChatbotFunctionQA, "")
	c.AppendUserTurn("what is revenue?")
	c.AppendAssistantTurn("revenue is X", "formatted")
	c.AppendUserTurn("and EBITDA?")

	lines := c.FormatHistory()

	want := []string{
		"assistant: " + constant.QAIntroMessage,
		"user: what is revenue?",
		"assistant: revenue is X",
		"user: and EBITDA?",
	}
	if len(lines) != len(want) {
		t.Fatalf("len(lines) = %d, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestFormatHistoryUsesRawContent(t *testing.T) {
	c := New(constant.ChatbotFunctionEditor, "")
	c.AppendUserTurn("edit")
	c.AppendAssistantTurn("raw text", "| markdown | table |")

	joined := strings.Join(c.FormatHistory(), "\n")
	if strings.Contains(joined, "markdown") {
		t.Errorf("display content must never reach the model context")
	}
	if !strings.Contains(joined, "raw text") {
		t.Errorf("raw content missing from history")
	}
}

func TestIsBlank(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n ", true},
		{"x", false},
		{"  hello  ", false},
	}

	for _, tt := range tests {
		if got := IsBlank(tt.input); got != tt.want {
			t.Errorf("IsBlank(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
