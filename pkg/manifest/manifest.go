// Package manifest drives a full template compilation from a YAML file: one
// template, its variable bindings, and the instances to register for each
// pattern.
package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/docweave/docweave/pkg/template"
	v "github.com/docweave/docweave/pkg/validator"

	"gopkg.in/yaml.v3"
)

// IncludeConfig selects the include-resolution policy for the compilation.
type IncludeConfig struct {
	// Mode is one of cwd, template, or path. Empty means template.
	Mode string `yaml:"mode,omitempty"`
	// Path is the base directory for mode path, relative to the manifest.
	Path string `yaml:"path,omitempty"`
}

func (c IncludeConfig) Validate() error {
	if err := v.MatchesAllowed(c.Mode, []string{"", "cwd", "template", "path"}, "include mode"); err != nil {
		return err
	}
	if c.Mode == "path" && c.Path == "" {
		return fmt.Errorf("include mode %q requires a path", c.Mode)
	}
	if c.Path != "" && c.Mode != "path" {
		return fmt.Errorf("include path is only valid with mode \"path\"")
	}
	return nil
}

// PatternFill lists the instances to render and register for one pattern.
// Each instance is its own set of variable bindings.
type PatternFill struct {
	Name      string              `yaml:"name"`
	Instances []map[string]string `yaml:"instances"`
}

func (p PatternFill) Validate() error {
	err := v.All(
		v.NotEmpty(p.Name, "pattern name"),
		v.HasNoPlaceholder(p.Name, "pattern name"),
	)
	if err != nil {
		return err
	}
	for i, inst := range p.Instances {
		if err := v.MapDict(inst, func(key string, _ string) error {
			return v.All(
				v.NotEmpty(key, "binding key"),
				v.HasNoPlaceholder(key, "binding key"),
			)
		}, fmt.Sprintf("pattern %q instance %d", p.Name, i)); err != nil {
			return err
		}
	}
	return nil
}

// Manifest is a render job description.
type Manifest struct {
	Template  string            `yaml:"template"`
	Include   IncludeConfig     `yaml:"include,omitempty"`
	Variables map[string]string `yaml:"variables,omitempty"`
	Patterns  []PatternFill     `yaml:"patterns,omitempty"`
	// Output is an optional destination path, relative to the manifest.
	// Callers that want the text directly can ignore it.
	Output string `yaml:"output,omitempty"`

	// dir anchors relative paths in the manifest.
	dir string
}

func (m *Manifest) Validate() error {
	names := make([]string, 0, len(m.Patterns))
	for _, p := range m.Patterns {
		names = append(names, p.Name)
	}
	return v.All(
		v.NotEmpty(m.Template, "template"),
		m.Include.Validate(),
		v.MapDict(m.Variables, func(key string, _ string) error {
			return v.All(
				v.NotEmpty(key, "variable name"),
				v.HasNoPlaceholder(key, "variable name"),
			)
		}, "variables"),
		v.NoDuplicates(names, "pattern names"),
		v.Each(m.Patterns),
	)
}

// Load reads and validates a manifest file. Relative paths inside it are
// resolved against the file's directory.
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	m.dir = filepath.Dir(path)
	return m, nil
}

func decode(raw []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &m, nil
}

func (m *Manifest) options() template.Options {
	opts := template.DefaultOptions()
	switch m.Include.Mode {
	case "cwd":
		opts.IncludeMode = template.IncludeCurrentDir
	case "path":
		opts.IncludeMode = template.IncludeFixedDir
		opts.IncludePath = m.resolve(m.Include.Path)
	}
	return opts
}

func (m *Manifest) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || m.dir == "" {
		return path
	}
	return filepath.Join(m.dir, path)
}

// Run compiles the manifest's template: parse, bind variables, render and
// register every pattern instance, then render the document.
func (m *Manifest) Run() (string, error) {
	doc, err := template.ParseFile(m.resolve(m.Template), m.options())
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}
	for name, value := range m.Variables {
		doc.Set(name, value)
	}
	for _, fill := range m.Patterns {
		for i, bindings := range fill.Instances {
			p, err := doc.ExtractPattern(fill.Name)
			if err != nil {
				return "", fmt.Errorf("pattern %q: %w", fill.Name, err)
			}
			for name, value := range bindings {
				p.Doc.Set(name, value)
			}
			out, err := p.Doc.Render()
			if err != nil {
				return "", fmt.Errorf("rendering pattern %q instance %d: %w", fill.Name, i, err)
			}
			doc.AddPatternInstance(p.Name(), out)
		}
	}
	out, err := doc.Render()
	if err != nil {
		return "", fmt.Errorf("rendering: %w", err)
	}
	return out, nil
}

// OutputPath is the manifest-relative destination, empty when the manifest
// does not name one.
func (m *Manifest) OutputPath() string {
	if m.Output == "" {
		return ""
	}
	return m.resolve(m.Output)
}
