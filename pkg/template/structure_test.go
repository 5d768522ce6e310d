package template

import (
	"errors"
	"testing"
)

func structureSrc(t *testing.T, src string) []Node {
	t.Helper()
	flat, err := newLexer(src, "", DefaultOptions(), map[string]string{}).run()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	nodes, err := structure(flat)
	if err != nil {
		t.Fatalf("structure error: %v", err)
	}
	return nodes
}

func TestStructureConditional(t *testing.T) {
	nodes := structureSrc(t, "{%if-set v}A{%else}B{%end}")
	if len(nodes) != 1 {
		t.Fatalf("want 1 node, got %#v", nodes)
	}
	cond := nodes[0].(*ConditionalNode)
	if cond.Name != "v" {
		t.Fatalf("condition name = %q", cond.Name)
	}
	if len(cond.Body) != 1 || cond.Body[0].(*TextNode).Text != "A" {
		t.Fatalf("body = %#v", cond.Body)
	}
	if len(cond.Else) != 1 || cond.Else[0].(*TextNode).Text != "B" {
		t.Fatalf("else = %#v", cond.Else)
	}
}

func TestStructureConditionalNoElse(t *testing.T) {
	nodes := structureSrc(t, "{%if-set v}A{%end}")
	cond := nodes[0].(*ConditionalNode)
	if cond.Else != nil {
		t.Fatalf("want nil else, got %#v", cond.Else)
	}
}

func TestStructureEmptyElseBranch(t *testing.T) {
	nodes := structureSrc(t, "{%if-set v}A{%else}{%end}")
	cond := nodes[0].(*ConditionalNode)
	if cond.Else == nil || len(cond.Else) != 0 {
		t.Fatalf("want present-but-empty else, got %#v", cond.Else)
	}
}

func TestStructureNestedPatternConditional(t *testing.T) {
	nodes := structureSrc(t, "{%pattern p}{%if-set v}{%end}{%end}")
	if len(nodes) != 1 {
		t.Fatalf("want 1 node, got %#v", nodes)
	}
	pat := nodes[0].(*PatternNode)
	if pat.Name != "p" {
		t.Fatalf("pattern name = %q", pat.Name)
	}
	if len(pat.Body) != 1 {
		t.Fatalf("pattern body = %#v", pat.Body)
	}
	cond := pat.Body[0].(*ConditionalNode)
	if cond.Name != "v" || len(cond.Body) != 0 || cond.Else != nil {
		t.Fatalf("inner conditional = %#v", cond)
	}
}

func TestStructureElseBelongsToInnermost(t *testing.T) {
	nodes := structureSrc(t, "{%pattern p}{%if-set v}A{%else}B{%end}{%end}")
	pat := nodes[0].(*PatternNode)
	cond := pat.Body[0].(*ConditionalNode)
	if len(cond.Else) != 1 || cond.Else[0].(*TextNode).Text != "B" {
		t.Fatalf("else = %#v", cond.Else)
	}
}

func TestStructureUnclosed(t *testing.T) {
	for _, src := range []string{"{%if-set v}A", "{%pattern p}", "{%if-set a}{%if-set b}{%end}"} {
		flat, err := newLexer(src, "", DefaultOptions(), map[string]string{}).run()
		if err != nil {
			t.Fatalf("lex error: %v", err)
		}
		_, err = structure(flat)
		var uc UnclosedError
		if !errors.As(err, &uc) {
			t.Fatalf("%q: want UnclosedError, got %v", src, err)
		}
	}
}

func TestStructureStrayMarkers(t *testing.T) {
	for _, src := range []string{"{%end}", "A{%else}B", "{%pattern p}{%else}{%end}", "{%if-set v}{%else}{%else}{%end}"} {
		flat, err := newLexer(src, "", DefaultOptions(), map[string]string{}).run()
		if err != nil {
			t.Fatalf("lex error: %v", err)
		}
		_, err = structure(flat)
		var sm StrayMarkerError
		if !errors.As(err, &sm) {
			t.Fatalf("%q: want StrayMarkerError, got %v", src, err)
		}
	}
}
