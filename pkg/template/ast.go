package template

// Node is any node in a compiled template tree.
type Node interface {
	node()
}

// TextNode represents a literal run of text.
type TextNode struct {
	Text string
}

func (*TextNode) node() {}

// VariableNode represents a placeholder resolved at render time: {name}
type VariableNode struct {
	Name string
}

func (*VariableNode) node() {}

// ConditionalNode represents an if-set block. Body renders when the named
// variable is set to a non-empty value, Else (possibly nil) otherwise.
type ConditionalNode struct {
	Name string
	Body []Node
	Else []Node
}

func (*ConditionalNode) node() {}

// PatternNode represents a named, extractable fragment. At render time it
// expands to the concatenation of the instance strings registered under
// its name, in registration order.
type PatternNode struct {
	Name string
	Body []Node
}

func (*PatternNode) node() {}

// Markers below are emitted by the lexer and consumed by the structurer.
// None of them may survive into a structured tree.

type ifSetOpen struct {
	Name string
}

func (*ifSetOpen) node() {}

type patternOpen struct {
	Name string
}

func (*patternOpen) node() {}

// wrapOpen carries the wrap-include target, already lexed and structured
// as a standalone sequence. The structurer collects the splice body up to
// the matching end and merges it into Wrapped at the splice point.
type wrapOpen struct {
	Path    string
	Wrapped []Node
}

func (*wrapOpen) node() {}

type elseMarker struct{}

func (*elseMarker) node() {}

type endMarker struct{}

func (*endMarker) node() {}

// spliceMarker is the wrapped-content splice point inside a wrap-include
// target.
type spliceMarker struct{}

func (*spliceMarker) node() {}

// cloneNodes deep-copies a node slice. Pattern extraction hands the copy to
// an independent document, so no tree may be shared.
func cloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = cloneNode(n)
	}
	return out
}

func cloneNode(n Node) Node {
	switch t := n.(type) {
	case *TextNode:
		return &TextNode{Text: t.Text}
	case *VariableNode:
		return &VariableNode{Name: t.Name}
	case *ConditionalNode:
		return &ConditionalNode{Name: t.Name, Body: cloneNodes(t.Body), Else: cloneNodes(t.Else)}
	case *PatternNode:
		return &PatternNode{Name: t.Name, Body: cloneNodes(t.Body)}
	default:
		// Markers are stateless apart from wrapOpen, which never survives
		// structuring and is not cloned.
		return n
	}
}
