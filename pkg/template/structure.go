package template

// The structurer converts the flat, lexed node sequence into the nested
// tree the renderer walks. Matching open/end markers become composite
// nodes, else markers divide conditional bodies, and wrap-include splice
// bodies are merged into their wrapped sub-documents. No marker survives a
// successful pass.

// structure builds the final tree for an ordinary document.
func structure(nodes []Node) ([]Node, error) {
	return structureSeq(nodes, false)
}

// structureWrapped builds the tree for a wrap-include target, where a
// top-level wrapped-content splice point is legal.
func structureWrapped(nodes []Node) ([]Node, error) {
	return structureSeq(nodes, true)
}

func structureSeq(nodes []Node, allowSplice bool) ([]Node, error) {
	c := &cursor{nodes: nodes}
	var out []Node
	for c.i < len(c.nodes) {
		n := c.next()
		switch t := n.(type) {
		case *elseMarker:
			return nil, StrayMarkerError{Command: "else"}
		case *endMarker:
			return nil, StrayMarkerError{Command: "end"}
		case *spliceMarker:
			if !allowSplice {
				return nil, StrayMarkerError{Command: "wrapped-content"}
			}
			out = append(out, n)
		case *ifSetOpen:
			cond, err := c.conditional(t)
			if err != nil {
				return nil, err
			}
			out = append(out, cond)
		case *patternOpen:
			pat, err := c.pattern(t)
			if err != nil {
				return nil, err
			}
			out = append(out, pat)
		case *wrapOpen:
			merged, err := c.wrap(t)
			if err != nil {
				return nil, err
			}
			out = append(out, merged...)
		default:
			out = append(out, n)
		}
	}
	return out, nil
}

type cursor struct {
	nodes []Node
	i     int
}

func (c *cursor) next() Node {
	n := c.nodes[c.i]
	c.i++
	return n
}

// conditional accumulates an if-set body until its else or end, recursing
// into nested composites depth-first.
func (c *cursor) conditional(open *ifSetOpen) (*ConditionalNode, error) {
	cond := &ConditionalNode{Name: open.Name}
	target := &cond.Body
	for c.i < len(c.nodes) {
		n := c.next()
		switch t := n.(type) {
		case *endMarker:
			return cond, nil
		case *elseMarker:
			if target == &cond.Else {
				return nil, StrayMarkerError{Command: "else"}
			}
			// A present-but-empty else branch still renders as empty
			// rather than falling back to nothing.
			cond.Else = []Node{}
			target = &cond.Else
		case *spliceMarker:
			return nil, StrayMarkerError{Command: "wrapped-content"}
		case *ifSetOpen:
			sub, err := c.conditional(t)
			if err != nil {
				return nil, err
			}
			*target = append(*target, sub)
		case *patternOpen:
			sub, err := c.pattern(t)
			if err != nil {
				return nil, err
			}
			*target = append(*target, sub)
		case *wrapOpen:
			merged, err := c.wrap(t)
			if err != nil {
				return nil, err
			}
			*target = append(*target, merged...)
		default:
			*target = append(*target, n)
		}
	}
	return nil, UnclosedError{Command: "if-set " + open.Name}
}

func (c *cursor) pattern(open *patternOpen) (*PatternNode, error) {
	body, err := c.body("pattern " + open.Name)
	if err != nil {
		return nil, err
	}
	return &PatternNode{Name: open.Name, Body: body}, nil
}

// wrap collects the splice body up to the matching end, then replaces the
// single wrapped-content point in the pre-structured wrapped sub-document
// with it. The merged sequence is spliced inline into the enclosing body.
func (c *cursor) wrap(open *wrapOpen) ([]Node, error) {
	splice, err := c.body("wrap-include " + open.Path)
	if err != nil {
		return nil, err
	}

	points := 0
	for _, n := range open.Wrapped {
		if _, ok := n.(*spliceMarker); ok {
			points++
		}
	}
	if points != 1 {
		return nil, SplicePointError{Path: open.Path, Count: points}
	}

	merged := make([]Node, 0, len(open.Wrapped)-1+len(splice))
	for _, n := range open.Wrapped {
		if _, ok := n.(*spliceMarker); ok {
			merged = append(merged, splice...)
			continue
		}
		merged = append(merged, n)
	}
	return merged, nil
}

// body accumulates a pattern or wrap-include splice body until the matching
// end. An else at this level belongs to no conditional and is rejected.
func (c *cursor) body(owner string) ([]Node, error) {
	var out []Node
	for c.i < len(c.nodes) {
		n := c.next()
		switch t := n.(type) {
		case *endMarker:
			return out, nil
		case *elseMarker:
			return nil, StrayMarkerError{Command: "else"}
		case *spliceMarker:
			return nil, StrayMarkerError{Command: "wrapped-content"}
		case *ifSetOpen:
			sub, err := c.conditional(t)
			if err != nil {
				return nil, err
			}
			out = append(out, sub)
		case *patternOpen:
			sub, err := c.pattern(t)
			if err != nil {
				return nil, err
			}
			out = append(out, sub)
		case *wrapOpen:
			merged, err := c.wrap(t)
			if err != nil {
				return nil, err
			}
			out = append(out, merged...)
		default:
			out = append(out, n)
		}
	}
	return nil, UnclosedError{Command: owner}
}
