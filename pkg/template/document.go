package template

import (
	"os"
)

// Document is a parsed template together with its variable table and the
// rendered pattern instances registered so far. A document is mutated only
// through Set, ClearVariables, and AddPatternInstance, and is consumed by
// Render.
type Document struct {
	opts         Options
	templatePath string
	nodes        []Node
	vars         map[string]string
	patterns     map[string][]string
	consumed     bool
}

// ParseFile reads path to completion and parses it. The file's location
// becomes the base for template-relative include resolution.
func ParseFile(path string, opts Options) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadError{Path: path, Err: err}
	}
	return parse(string(raw), path, opts)
}

// Parse parses an in-memory buffer. Template-relative includes cannot be
// resolved for buffers and fail the parse under the default options.
func Parse(src string, opts Options) (*Document, error) {
	return parse(src, "", opts)
}

func parse(src, templatePath string, opts Options) (*Document, error) {
	d := &Document{
		opts:         opts,
		templatePath: templatePath,
		vars:         map[string]string{},
		patterns:     map[string][]string{},
	}
	flat, err := newLexer(src, templatePath, opts, d.vars).run()
	if err != nil {
		return nil, err
	}
	d.nodes, err = structure(flat)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Set binds a variable. It overwrites any value bound earlier, including
// ones bound by a set command at parse time.
func (d *Document) Set(name, value string) {
	d.vars[name] = value
}

// Variable reports the current binding for name.
func (d *Document) Variable(name string) (string, bool) {
	v, ok := d.vars[name]
	return v, ok
}

// ClearVariables resets the variable table as if the document were freshly
// parsed from source with no set commands.
func (d *Document) ClearVariables() {
	clear(d.vars)
}

// ExtractedPattern is a named handle on a pattern body cloned out of a
// document. The name decides which slot of the original document an
// instance rendered from it is registered into, however the handle is used
// locally.
type ExtractedPattern struct {
	name string
	// Doc is an independent document: a deep copy of the pattern body plus
	// a snapshot of the parent's variables at extraction time.
	Doc *Document
}

// Name is the registration slot in the originating document.
func (p *ExtractedPattern) Name() string { return p.name }

// ExtractPattern clones the body of the first pattern with the given name,
// searching depth-first, into an independent document.
func (d *Document) ExtractPattern(name string) (*ExtractedPattern, error) {
	body := findPattern(d.nodes, name)
	if body == nil {
		return nil, UnknownPatternError{Name: name}
	}
	vars := make(map[string]string, len(d.vars))
	for k, v := range d.vars {
		vars[k] = v
	}
	return &ExtractedPattern{
		name: name,
		Doc: &Document{
			opts:         d.opts,
			templatePath: d.templatePath,
			nodes:        cloneNodes(body),
			vars:         vars,
			patterns:     map[string][]string{},
		},
	}, nil
}

func findPattern(nodes []Node, name string) []Node {
	for _, n := range nodes {
		switch t := n.(type) {
		case *PatternNode:
			if t.Name == name {
				return t.Body
			}
			if body := findPattern(t.Body, name); body != nil {
				return body
			}
		case *ConditionalNode:
			if body := findPattern(t.Body, name); body != nil {
				return body
			}
			if body := findPattern(t.Else, name); body != nil {
				return body
			}
		}
	}
	return nil
}

// AddPatternInstance registers rendered text as the next instance of the
// named pattern. Instances expand in registration order at render time.
func (d *Document) AddPatternInstance(name, rendered string) {
	d.patterns[name] = append(d.patterns[name], rendered)
}

// Render flattens the document into its output text. Rendering is
// one-shot: it drains the tree, and a second call fails with ErrConsumed.
// Under the default options rendering cannot fail any other way; unset
// variables pass through and patterns with no instances expand to nothing.
func (d *Document) Render() (string, error) {
	if d.consumed {
		return "", ErrConsumed
	}
	nodes := d.nodes
	d.nodes = nil
	d.consumed = true
	return render(nodes, d.vars, d.patterns, d.opts)
}
