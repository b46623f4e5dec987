package analyzer

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Placeholder marks where the document text is substituted.
const Placeholder = "{text}"

//go:embed prompts.yaml
var builtinPrompts []byte

type promptFile struct {
	Default   string            `yaml:"default"`
	Templates map[string]string `yaml:"templates"`
}

// Prompt is a named template with a single placeholder.
type Prompt struct {
	Name     string
	template string
}

// Build substitutes text into the template without any escaping.
func (p *Prompt) Build(text string) string {
	return strings.Replace(p.template, Placeholder, text, 1)
}

// Catalog holds the selectable prompt templates.
type Catalog struct {
	defaultName string
	prompts     map[string]*Prompt
}

// LoadCatalog parses the built-in templates, then the optional override file on top.
func LoadCatalog(overridePath string) (*Catalog, error) {
	catalog, err := ParseCatalog(builtinPrompts)
	if err != nil {
		return nil, fmt.Errorf("built-in prompts: %w", err)
	}

	if overridePath == "" {
		return catalog, nil
	}

	data, err := os.ReadFile(overridePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file: %w", err)
	}
	override, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", overridePath, err)
	}

	for name, p := range override.prompts {
		catalog.prompts[name] = p
	}
	if override.defaultName != "" {
		catalog.defaultName = override.defaultName
	}

	return catalog, nil
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var f promptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse prompts: %w", err)
	}

	catalog := &Catalog{defaultName: f.Default, prompts: make(map[string]*Prompt, len(f.Templates))}
	for name, tmpl := range f.Templates {
		if n := strings.Count(tmpl, Placeholder); n != 1 {
			return nil, fmt.Errorf("template %q must contain %s exactly once, found %d", name, Placeholder, n)
		}
		catalog.prompts[name] = &Prompt{Name: name, template: tmpl}
	}

	if catalog.defaultName != "" {
		if _, ok := catalog.prompts[catalog.defaultName]; !ok {
			return nil, fmt.Errorf("default template %q is not defined", catalog.defaultName)
		}
	}

	return catalog, nil
}

// Get returns the named template, or the catalog default when name is empty.
func (c *Catalog) Get(name string) (*Prompt, error) {
	if name == "" {
		name = c.defaultName
	}
	p, ok := c.prompts[name]
	if !ok {
		return nil, fmt.Errorf("unknown prompt template %q (available: %s)", name, strings.Join(c.Names(), ", "))
	}
	return p, nil
}

func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.prompts))
	for name := range c.prompts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
