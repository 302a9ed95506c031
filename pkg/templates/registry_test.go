package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRegistryLoadAndRender(t *testing.T) {
	base := t.TempDir()
	queryDir := filepath.Join(base, "workflow")
	if err := os.MkdirAll(queryDir, 0o755); err != nil {
		t.Fatalf("create dir: %v", err)
	}

	tplPath := filepath.Join(queryDir, "greeting.tmpl")
	initial := "Hello {{.Name}}"
	if err := os.WriteFile(tplPath, []byte(initial), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	reg, err := NewRegistry(base)
	if err != nil {
		t.Fatalf("init registry: %v", err)
	}

	tmpl, err := reg.GetTemplate("workflow/greeting")
	if err != nil {
		t.Fatalf("get template: %v", err)
	}

	rendered, err := tmpl.Render(map[string]string{"Name": "Alice"})
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	if rendered != "Hello Alice" {
		t.Fatalf("unexpected render result: %s", rendered)
	}

	updated := "Hi {{.Name}}"
	if err := os.WriteFile(tplPath, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite template: %v", err)
	}

	rendered, err = tmpl.Render(map[string]string{"Name": "Bob"})
	if err != nil {
		t.Fatalf("render template after update: %v", err)
	}
	if rendered != "Hello Bob" {
		t.Fatalf("expected registry to keep initial content, got: %s", rendered)
	}
}

func TestRegistryLazyLoad(t *testing.T) {
	base := t.TempDir()
	reg, err := NewRegistry(base)
	if err != nil {
		t.Fatalf("init registry: %v", err)
	}

	path := filepath.Join(base, "workflow", "summary.tmpl")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create dirs: %v", err)
	}

	content := "Summary for {{.File}}"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	rendered, err := reg.Render("workflow/summary", map[string]string{"File": "main.go"})
	if err != nil {
		t.Fatalf("render lazily loaded template: %v", err)
	}

	if rendered != "Summary for main.go" {
		t.Fatalf("unexpected render output: %s", rendered)
	}
}

func TestEmbeddedQueryTemplate(t *testing.T) {
	rendered, err := Get().Render("workflow/query", map[string]any{
		"Language":          "Python",
		"FileName":          "app.py",
		"Framework":         "Flask",
		"LanguageCodeBlock": "python",
		"CodeContent":       "def main():\n    pass",
		"AnalysisFocus":     []string{"error handling", "readability"},
	})
	if err != nil {
		t.Fatalf("render embedded query template: %v", err)
	}

	for _, want := range []string{"app.py", "Flask", "```python", "def main():", "- error handling"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("expected rendered query to contain %q, got:\n%s", want, rendered)
		}
	}
}

func TestRenderString(t *testing.T) {
	rendered, err := RenderString("Review {{.FileName}} ({{.Language}})", map[string]string{
		"FileName": "lib.rs",
		"Language": "Rust",
	})
	if err != nil {
		t.Fatalf("render inline template: %v", err)
	}
	if rendered != "Review lib.rs (Rust)" {
		t.Fatalf("unexpected inline render output: %s", rendered)
	}

	if _, err := RenderString("{{.Broken", nil); err == nil {
		t.Error("expected parse error for malformed template")
	}
}
