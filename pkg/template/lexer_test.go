package template

import (
	"errors"
	"testing"
)

func lex(t *testing.T, src string) []Node {
	t.Helper()
	vars := map[string]string{}
	nodes, err := newLexer(src, "", DefaultOptions(), vars).run()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	return nodes
}

func TestLexPlainText(t *testing.T) {
	nodes := lex(t, "Nothing but text")
	if len(nodes) != 1 {
		t.Fatalf("want 1 node, got %d", len(nodes))
	}
	if tn, ok := nodes[0].(*TextNode); !ok || tn.Text != "Nothing but text" {
		t.Fatalf("node0 not Text('Nothing but text'): %#v", nodes[0])
	}
}

func TestLexEmpty(t *testing.T) {
	if nodes := lex(t, ""); len(nodes) != 0 {
		t.Fatalf("want no nodes, got %#v", nodes)
	}
}

func TestLexVariablePositions(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want []Node
	}{
		{"{variable}", []Node{&VariableNode{Name: "variable"}}},
		{"Hello {name}", []Node{&TextNode{Text: "Hello "}, &VariableNode{Name: "name"}}},
		{"{name}, hello!", []Node{&VariableNode{Name: "name"}, &TextNode{Text: ", hello!"}}},
		{"a {w} in {l} today", []Node{
			&TextNode{Text: "a "},
			&VariableNode{Name: "w"},
			&TextNode{Text: " in "},
			&VariableNode{Name: "l"},
			&TextNode{Text: " today"},
		}},
	} {
		nodes := lex(t, tc.src)
		if len(nodes) != len(tc.want) {
			t.Fatalf("%q: want %d nodes, got %#v", tc.src, len(tc.want), nodes)
		}
		for i := range nodes {
			switch w := tc.want[i].(type) {
			case *TextNode:
				if g, ok := nodes[i].(*TextNode); !ok || g.Text != w.Text {
					t.Fatalf("%q node %d: want %#v, got %#v", tc.src, i, w, nodes[i])
				}
			case *VariableNode:
				if g, ok := nodes[i].(*VariableNode); !ok || g.Name != w.Name {
					t.Fatalf("%q node %d: want %#v, got %#v", tc.src, i, w, nodes[i])
				}
			}
		}
	}
}

func TestLexEscapes(t *testing.T) {
	nodes := lex(t, `escape this: \{x}, but not this \n`)
	if len(nodes) != 1 {
		t.Fatalf("want 1 node, got %#v", nodes)
	}
	want := `escape this: {x}, but not this \n`
	if tn := nodes[0].(*TextNode); tn.Text != want {
		t.Fatalf("want %q, got %q", want, tn.Text)
	}
}

func TestLexInvalidPlaceholderRecovers(t *testing.T) {
	// Whitespace ends a variable name; without a closing brace right
	// after, the whole run is pushed back as text.
	nodes := lex(t, "{not a variable}")
	if len(nodes) != 1 {
		t.Fatalf("want 1 node, got %#v", nodes)
	}
	if tn := nodes[0].(*TextNode); tn.Text != "{not a variable}" {
		t.Fatalf("got %q", tn.Text)
	}
}

func TestLexUnclosedAtEOF(t *testing.T) {
	nodes := lex(t, "tail {name")
	if len(nodes) != 1 {
		t.Fatalf("want 1 node, got %#v", nodes)
	}
	if tn := nodes[0].(*TextNode); tn.Text != "tail {name" {
		t.Fatalf("got %q", tn.Text)
	}
}

func TestLexEmptyBraces(t *testing.T) {
	nodes := lex(t, "a{}b")
	if len(nodes) != 1 {
		t.Fatalf("want 1 node, got %#v", nodes)
	}
	if tn := nodes[0].(*TextNode); tn.Text != "a{}b" {
		t.Fatalf("got %q", tn.Text)
	}
}

func TestLexSetBindsAtLexTime(t *testing.T) {
	vars := map[string]string{}
	nodes, err := newLexer("{%set greeting hello there}!", "", DefaultOptions(), vars).run()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	if vars["greeting"] != "hello there" {
		t.Fatalf("greeting = %q", vars["greeting"])
	}
	// set emits no node; only the trailing text remains.
	if len(nodes) != 1 {
		t.Fatalf("want 1 node, got %#v", nodes)
	}
	if tn := nodes[0].(*TextNode); tn.Text != "!" {
		t.Fatalf("got %q", tn.Text)
	}
}

func TestLexCommandMarkers(t *testing.T) {
	nodes := lex(t, "{%if-set v}{%else}{%end}{%pattern p}{%end%}")
	kinds := []string{"ifSetOpen", "elseMarker", "endMarker", "patternOpen", "endMarker"}
	if len(nodes) != len(kinds) {
		t.Fatalf("want %d nodes, got %#v", len(kinds), nodes)
	}
	if o := nodes[0].(*ifSetOpen); o.Name != "v" {
		t.Fatalf("if-set name = %q", o.Name)
	}
	if _, ok := nodes[1].(*elseMarker); !ok {
		t.Fatalf("node1 not else: %#v", nodes[1])
	}
	if _, ok := nodes[2].(*endMarker); !ok {
		t.Fatalf("node2 not end: %#v", nodes[2])
	}
	if o := nodes[3].(*patternOpen); o.Name != "p" {
		t.Fatalf("pattern name = %q", o.Name)
	}
	if _, ok := nodes[4].(*endMarker); !ok {
		t.Fatalf("node4 not end: %#v", nodes[4])
	}
}

func TestLexUnknownCommand(t *testing.T) {
	_, err := newLexer("{%frobnicate x}", "", DefaultOptions(), map[string]string{}).run()
	var uc UnknownCommandError
	if !errors.As(err, &uc) || uc.Command != "frobnicate" {
		t.Fatalf("want UnknownCommandError(frobnicate), got %v", err)
	}
}

func TestLexMissingArgument(t *testing.T) {
	for _, src := range []string{"{%if-set}", "{%pattern }", "{%include}", "{%wrap-include}", "{%set}"} {
		_, err := newLexer(src, "", DefaultOptions(), map[string]string{}).run()
		var ba BadArgumentError
		if !errors.As(err, &ba) {
			t.Fatalf("%q: want BadArgumentError, got %v", src, err)
		}
	}
}

func TestLexWrappedContentOutsideWrap(t *testing.T) {
	_, err := newLexer("{%wrapped-content}", "", DefaultOptions(), map[string]string{}).run()
	var sc SpliceContextError
	if !errors.As(err, &sc) {
		t.Fatalf("want SpliceContextError, got %v", err)
	}
}
