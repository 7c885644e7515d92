// Package prompt is a small prompt library: templates live in JSON
// files and are loaded at runtime, so assistant wording can change
// without a rebuild. Callers fall back to hardcoded prompts when a
// template is absent.
package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"
)

// Template is one reusable prompt definition.
type Template struct {
	ID           string `json:"id"`                   // e.g. "insight.ask"
	Name         string `json:"name"`                 // Human-readable name
	Description  string `json:"description"`          // Purpose of the prompt
	SystemPrompt string `json:"system_prompt"`        // System prompt content
	UserTmpl     string `json:"user_prompt_template"` // Go template for the user prompt
	Version      string `json:"version"`              // Version for tracking changes
}

// Registry holds loaded templates, keyed by ID.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

var defaultRegistry = &Registry{templates: make(map[string]*Template)}

// Get returns the process-wide registry.
func Get() *Registry {
	return defaultRegistry
}

// Register adds or replaces a template.
func (r *Registry) Register(t *Template) error {
	if t.ID == "" {
		return fmt.Errorf("prompt template has no id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[t.ID] = t
	return nil
}

// Lookup fetches a template by ID; ok is false when none is loaded.
func (r *Registry) Lookup(id string) (*Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[id]
	return t, ok
}

// Count reports how many templates are loaded.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.templates)
}

// RenderUser executes the template's user prompt with the given
// variables.
func (t *Template) RenderUser(vars map[string]interface{}) (string, error) {
	tmpl, err := template.New(t.ID).Parse(t.UserTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", t.ID, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", t.ID, err)
	}
	return buf.String(), nil
}

// LoadFromDirectory loads every *.json template under dir. Missing
// directory is an error so callers can decide to fall back.
func LoadFromDirectory(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("prompts directory not found: %s", dir)
	}

	registry := Get()
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		var t Template
		if err := json.Unmarshal(data, &t); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if t.ID == "" {
			t.ID = strings.TrimSuffix(filepath.Base(path), ".json")
		}
		return registry.Register(&t)
	})
}
