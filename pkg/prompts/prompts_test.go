package prompts

import (
	"strings"
	"testing"
)

func TestPickupLineAddressee(t *testing.T) {
	if got := PickupLine("Alex"); !strings.Contains(got, "Alex") {
		t.Fatalf("expected addressee in prompt, got %q", got)
	}
	if got := PickupLine(""); strings.Contains(got, "addressed to") {
		t.Fatalf("expected no addressee clause, got %q", got)
	}
}

func TestFlirtyReplyQuotesMessage(t *testing.T) {
	got := FlirtyReply("see you at 8?")
	if !strings.Contains(got, `"see you at 8?"`) {
		t.Fatalf("expected quoted message, got %q", got)
	}
}

func TestSuggestionFoldsSnippets(t *testing.T) {
	got := Suggestion("picnic spots", []string{"note one", "note two"})
	if !strings.Contains(got, "picnic spots") {
		t.Fatalf("expected query in prompt, got %q", got)
	}
	if !strings.Contains(got, "- note one") || !strings.Contains(got, "- note two") {
		t.Fatalf("expected snippets folded in, got %q", got)
	}

	bare := Suggestion("picnic spots", nil)
	if strings.Contains(bare, "Research notes") {
		t.Fatalf("expected no notes section, got %q", bare)
	}
}
