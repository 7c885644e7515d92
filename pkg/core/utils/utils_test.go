package utils

import (
	"strings"
	"testing"
)

func TestDecodeLenient(t *testing.T) {
	type payload struct {
		Answer string `json:"answer"`
	}

	// Strict JSON
	var p payload
	if err := DecodeLenient(`{"answer": "ok"}`, &p); err != nil || p.Answer != "ok" {
		t.Errorf("strict decode failed: %v %+v", err, p)
	}

	// Trailing comma and single quotes: repaired
	p = payload{}
	if err := DecodeLenient(`{'answer': 'fixed',}`, &p); err != nil || p.Answer != "fixed" {
		t.Errorf("repair decode failed: %v %+v", err, p)
	}

	// Markdown fence: repaired
	p = payload{}
	if err := DecodeLenient("```json\n{\"answer\": \"fenced\"}\n```", &p); err != nil || p.Answer != "fenced" {
		t.Errorf("fenced decode failed: %v %+v", err, p)
	}
}

func TestCleanMarkdown(t *testing.T) {
	in := "```markdown\n# Report\n```"
	if got := CleanMarkdown(in); got != "# Report" {
		t.Errorf("expected stripped fences, got %q", got)
	}

	plain := "# Report"
	if got := CleanMarkdown(plain); got != plain {
		t.Errorf("plain markdown should pass through, got %q", got)
	}
}

func TestRenderHTMLTables(t *testing.T) {
	md := "| A | B |\n|---|---|\n| 1 | 2 |\n"

	html, err := RenderHTML(md)
	if err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}
	if !strings.Contains(html, "<table>") {
		t.Errorf("expected a rendered table, got %q", html)
	}
}
