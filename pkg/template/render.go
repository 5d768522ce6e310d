package template

import (
	"bytes"
	"fmt"
	"log/slog"
)

// render flattens a structured tree into output text. It is a pure function
// of the tree and the two tables; neither table is mutated.
func render(nodes []Node, vars map[string]string, patterns map[string][]string, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := renderNodes(&buf, nodes, vars, patterns, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderNodes(buf *bytes.Buffer, nodes []Node, vars map[string]string, patterns map[string][]string, opts Options) error {
	for _, n := range nodes {
		switch t := n.(type) {
		case *TextNode:
			buf.WriteString(t.Text)
		case *VariableNode:
			if v, ok := vars[t.Name]; ok {
				buf.WriteString(v)
				break
			}
			switch opts.UnsetVariable {
			case LevelError:
				return UnsetVariableError{Name: t.Name}
			case LevelWarn:
				slog.Warn("unset variable", "name", t.Name)
			}
			// Pass the placeholder through so partially bound templates
			// stay inspectable.
			buf.WriteByte('{')
			buf.WriteString(t.Name)
			buf.WriteByte('}')
		case *ConditionalNode:
			if v, ok := vars[t.Name]; ok && v != "" {
				if err := renderNodes(buf, t.Body, vars, patterns, opts); err != nil {
					return err
				}
			} else if t.Else != nil {
				if err := renderNodes(buf, t.Else, vars, patterns, opts); err != nil {
					return err
				}
			}
		case *PatternNode:
			for _, instance := range patterns[t.Name] {
				buf.WriteString(instance)
			}
		default:
			return fmt.Errorf("unhandled node type: %T", n)
		}
	}
	return nil
}
