package insight

import (
	"context"
	"strings"
	"testing"
	"time"

	"delivery_insights/pkg/core/dataset"
	"delivery_insights/pkg/core/prompt"

	"github.com/google/uuid"
)

func TestBuildDataContext(t *testing.T) {
	snap := &dataset.Snapshot{
		Generation: uuid.New(),
		LoadedAt:   time.Now(),
		Records: []dataset.Record{
			{ProjectName: "Alpha", Stage: "Build", DevLead: "Priya"},
			{ProjectName: "Beta"},
		},
	}

	ctx := BuildDataContext(snap)

	if !strings.Contains(ctx, "Alpha") || !strings.Contains(ctx, "Beta") {
		t.Errorf("context missing projects:\n%s", ctx)
	}
	if !strings.Contains(ctx, "FSD Received") {
		t.Errorf("context missing milestone table:\n%s", ctx)
	}
	if !strings.Contains(ctx, "Priya") {
		t.Errorf("context missing lead:\n%s", ctx)
	}
}

func TestParseAnswerStructured(t *testing.T) {
	raw := `{"answer": "Alpha is 50% complete", "highlights": ["2 of 4 delivered"]}`

	got := parseAnswer(raw)

	if !strings.Contains(got, "Alpha is 50% complete") {
		t.Errorf("answer lost: %q", got)
	}
	if !strings.Contains(got, "- 2 of 4 delivered") {
		t.Errorf("highlights lost: %q", got)
	}
}

func TestParseAnswerRepairsFencedJSON(t *testing.T) {
	raw := "```json\n{\"answer\": \"Beta has no records\"}\n```"

	got := parseAnswer(raw)

	if got != "Beta has no records" {
		t.Errorf("expected repaired answer, got %q", got)
	}
}

func TestParseAnswerFallsBackToRawText(t *testing.T) {
	raw := "Plain prose answer with no JSON at all."

	if got := parseAnswer(raw); got != raw {
		t.Errorf("expected raw passthrough, got %q", got)
	}
}

func TestParseAnswerStripsFencesFromRawText(t *testing.T) {
	raw := "```markdown\nAlpha delivered 2 of 4 developments.\n```"

	if got := parseAnswer(raw); got != "Alpha delivered 2 of 4 developments." {
		t.Errorf("expected fences stripped, got %q", got)
	}
}

func TestRenderPromptPrefersLoadedTemplate(t *testing.T) {
	// Nothing registered yet: the builtin prompt applies.
	p := renderPrompt("How is Alpha doing?", "CONTEXT")
	if !strings.Contains(p, "Question: How is Alpha doing?") {
		t.Errorf("expected builtin prompt, got %q", p)
	}

	prompt.Get().Register(&prompt.Template{
		ID:       "insight.ask",
		UserTmpl: "Q={{.Question}} C={{.DataContext}}",
	})
	if got := renderPrompt("How is Alpha doing?", "CONTEXT"); got != "Q=How is Alpha doing? C=CONTEXT" {
		t.Errorf("expected template render, got %q", got)
	}

	// A broken template falls back instead of failing the question.
	prompt.Get().Register(&prompt.Template{
		ID:       "insight.ask",
		UserTmpl: "{{.Question",
	})
	if got := renderPrompt("still works?", "CONTEXT"); !strings.Contains(got, "Question: still works?") {
		t.Errorf("expected builtin fallback, got %q", got)
	}
}

func TestHistoryDisabledWithoutStore(t *testing.T) {
	a := NewAssistant(nil, nil)

	if _, err := a.History(context.Background(), 5); err == nil {
		t.Fatal("expected error when history store is not configured")
	}
}

func TestBuildPrompt(t *testing.T) {
	p := buildPrompt("How is Alpha doing?", "CONTEXT")

	if !strings.Contains(p, "Question: How is Alpha doing?") {
		t.Errorf("question missing from prompt: %q", p)
	}
	if !strings.Contains(p, "Data Context:\nCONTEXT") {
		t.Errorf("context missing from prompt: %q", p)
	}
}
