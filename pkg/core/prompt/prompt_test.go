package prompt

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := &Registry{templates: make(map[string]*Template)}

	if err := r.Register(&Template{ID: "insight.ask", SystemPrompt: "sys"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := r.Register(&Template{}); err == nil {
		t.Error("expected error for template without id")
	}

	got, ok := r.Lookup("insight.ask")
	if !ok || got.SystemPrompt != "sys" {
		t.Errorf("lookup failed: %v %v", got, ok)
	}
	if _, ok := r.Lookup("missing"); ok {
		t.Error("lookup should miss for unknown id")
	}
}

func TestRenderUser(t *testing.T) {
	tmpl := &Template{
		ID:       "insight.ask",
		UserTmpl: "Question: {{.Question}}",
	}

	out, err := tmpl.RenderUser(map[string]interface{}{"Question": "How is Alpha doing?"})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if out != "Question: How is Alpha doing?" {
		t.Errorf("unexpected render output: %q", out)
	}
}

func TestLoadFromDirectory(t *testing.T) {
	dir := t.TempDir()
	data := `{"id": "insight.ask", "system_prompt": "from file"}`
	if err := os.WriteFile(filepath.Join(dir, "insight.ask.json"), []byte(data), 0o644); err != nil {
		t.Fatalf("fixture write failed: %v", err)
	}

	if err := LoadFromDirectory(dir); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	got, ok := Get().Lookup("insight.ask")
	if !ok || got.SystemPrompt != "from file" {
		t.Errorf("loaded template wrong: %+v", got)
	}

	if err := LoadFromDirectory(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}
