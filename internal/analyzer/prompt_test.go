package analyzer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuiltinCatalog(t *testing.T) {
	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	def, err := catalog.Get("")
	if err != nil {
		t.Fatalf("Get default: %v", err)
	}
	if def.Name != "legal_officer" {
		t.Errorf("default template: got %q", def.Name)
	}

	kira, err := catalog.Get("kira")
	if err != nil {
		t.Fatalf("Get kira: %v", err)
	}
	if !strings.Contains(kira.Build("x"), "Cross-Contract Comparison") {
		t.Error("kira template lost its comparison section")
	}

	if _, err := catalog.Get("missing"); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestPromptBuildIsVerbatim(t *testing.T) {
	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	p, _ := catalog.Get("legal_officer")

	text := "Clause {text} & <b>{{.Evil}}</b> 100%"
	prompt := p.Build(text)

	if !strings.HasSuffix(strings.TrimRight(prompt, "\n"), "Contract Text:\n"+text) {
		t.Errorf("text not substituted verbatim at the end of the prompt")
	}
	if strings.Count(prompt, text) != 1 {
		t.Errorf("text substituted %d times", strings.Count(prompt, text))
	}
}

func TestParseCatalogRejectsBadPlaceholders(t *testing.T) {
	bad := []string{
		"templates:\n  none: \"no placeholder\"\n",
		"templates:\n  twice: \"{text} and {text}\"\n",
		"default: nope\ntemplates:\n  ok: \"{text}\"\n",
	}
	for _, src := range bad {
		if _, err := ParseCatalog([]byte(src)); err == nil {
			t.Errorf("expected error for %q", src)
		}
	}
}

func TestLoadCatalogOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	src := "default: short\ntemplates:\n  short: \"Summarize: {text}\"\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	p, err := catalog.Get("")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Build("abc") != "Summarize: abc" {
		t.Errorf("override template: got %q", p.Build("abc"))
	}
	if _, err := catalog.Get("legal_officer"); err != nil {
		t.Errorf("built-in templates should remain available: %v", err)
	}
}
