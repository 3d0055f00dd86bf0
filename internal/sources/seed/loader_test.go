package seed

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	path := writeSeed(t, `---
bookmarks:
  - title: Google
    url: https://www.google.com/
    rating: 5
    description: cool search engine
  - title: Pinterest
    url: https://www.pinterest.com/
    rating: 4.5
`)

	file, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(file.Bookmarks) != 2 {
		t.Fatalf("Load() returned %d bookmarks, want 2", len(file.Bookmarks))
	}
	if file.Bookmarks[1].Rating != 4.5 {
		t.Errorf("Rating = %v, want 4.5", file.Bookmarks[1].Rating)
	}
	if file.Bookmarks[1].Description != "" {
		t.Errorf("missing description should be empty, got %q", file.Bookmarks[1].Description)
	}
}

func TestLoaderLoadWithTemplateVariables(t *testing.T) {
	t.Setenv("SEED_DOCS_URL", "https://docs.example.com")
	path := writeSeed(t, `bookmarks:
  - title: Docs
    url: {{SEED_DOCS_URL}}
    rating: 3
    description: {{SEED_UNSET_VARIABLE}}
`)

	file, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := file.Bookmarks[0].URL; got != "https://docs.example.com" {
		t.Errorf("URL = %q, want expanded variable", got)
	}
	if got := file.Bookmarks[0].Description; got != "" {
		t.Errorf("unset variable should expand to empty, got %q", got)
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	_, err := NewLoader("/nonexistent/path/seed.yaml").Load()
	if err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

func TestLoaderLoadInvalidYAML(t *testing.T) {
	path := writeSeed(t, "bookmarks: [unterminated")
	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("Load() with invalid YAML should return error")
	}
}

func TestExpandTemplateVariables(t *testing.T) {
	env := map[string]string{"NAME": `say "hi"`, "URL": "http://x"}
	lookup := func(k string) string { return env[k] }

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single template variable",
			input:    "url: {{URL}}",
			expected: `url: "http://x"`,
		},
		{
			name:     "spaces inside braces",
			input:    "url: {{ URL }}",
			expected: `url: "http://x"`,
		},
		{
			name:     "quotes escaped",
			input:    "title: {{NAME}}",
			expected: `title: "say \"hi\""`,
		},
		{
			name:     "no template variables",
			input:    "plain text",
			expected: "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandTemplateVariables([]byte(tt.input), lookup)
			if string(result) != tt.expected {
				t.Errorf("expandTemplateVariables() = %q, want %q", string(result), tt.expected)
			}
		})
	}
}
