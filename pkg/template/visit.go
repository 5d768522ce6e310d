package template

import (
	"bytes"
	"fmt"
	"sort"
)

// Visitor is called for every node of a structured tree, parents before
// children.
type Visitor interface {
	Visit(n Node) error
}

// Walk applies v to each node in the sequence, depth-first.
func Walk(v Visitor, nodes []Node) error {
	for _, n := range nodes {
		if err := v.Visit(n); err != nil {
			return err
		}
		switch t := n.(type) {
		case *ConditionalNode:
			if err := Walk(v, t.Body); err != nil {
				return err
			}
			if err := Walk(v, t.Else); err != nil {
				return err
			}
		case *PatternNode:
			if err := Walk(v, t.Body); err != nil {
				return err
			}
		}
	}
	return nil
}

// Refs lists the variable and pattern names a document mentions, sorted.
// Conditional condition names count as variable references.
func Refs(d *Document) (vars, patterns []string) {
	c := &refCollector{vars: map[string]struct{}{}, patterns: map[string]struct{}{}}
	Walk(c, d.nodes)
	return sortedKeys(c.vars), sortedKeys(c.patterns)
}

type refCollector struct {
	vars     map[string]struct{}
	patterns map[string]struct{}
}

func (c *refCollector) Visit(n Node) error {
	switch t := n.(type) {
	case *VariableNode:
		c.vars[t.Name] = struct{}{}
	case *ConditionalNode:
		c.vars[t.Name] = struct{}{}
	case *PatternNode:
		c.patterns[t.Name] = struct{}{}
	}
	return nil
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Pretty returns a line-oriented representation of the document's tree.
func Pretty(d *Document) string {
	var buf bytes.Buffer
	ppNodes(&buf, 0, d.nodes)
	return buf.String()
}

func ppNodes(buf *bytes.Buffer, indent int, nodes []Node) {
	for _, n := range nodes {
		ppNode(buf, indent, n)
	}
}

func ppNode(buf *bytes.Buffer, indent int, n Node) {
	ind := func() {
		for i := 0; i < indent; i++ {
			buf.WriteByte(' ')
		}
	}
	switch t := n.(type) {
	case *TextNode:
		ind()
		fmt.Fprintf(buf, "Text(%q)\n", t.Text)
	case *VariableNode:
		ind()
		fmt.Fprintf(buf, "Variable(%q)\n", t.Name)
	case *ConditionalNode:
		ind()
		fmt.Fprintf(buf, "IfSet(%q)\n", t.Name)
		ppNodes(buf, indent+2, t.Body)
		if t.Else != nil {
			ind()
			buf.WriteString("Else\n")
			ppNodes(buf, indent+2, t.Else)
		}
	case *PatternNode:
		ind()
		fmt.Fprintf(buf, "Pattern(%q)\n", t.Name)
		ppNodes(buf, indent+2, t.Body)
	}
}
