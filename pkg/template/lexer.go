package template

// The lexer scans raw template text and produces the flat node sequence the
// structurer consumes. Escapes are handled here, and include commands are
// resolved inline, so inclusion is finished before any nesting is built.

import (
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	src string
	i   int
	n   int

	opts Options
	// templatePath is the file being lexed, empty for buffers. It is the
	// base for template-relative include resolution.
	templatePath string
	// vars is the owning document's variable table. The set command binds
	// into it at lex time.
	vars map[string]string
	// inWrapped is true while lexing a wrap-include target, where the
	// wrapped-content command is legal.
	inWrapped bool

	nodes []Node
	text  strings.Builder
}

func newLexer(src, templatePath string, opts Options, vars map[string]string) *lexer {
	return &lexer{src: src, n: len(src), opts: opts, templatePath: templatePath, vars: vars}
}

// run scans the whole input and returns the flat node sequence.
func (l *lexer) run() ([]Node, error) {
	for l.i < l.n {
		switch l.src[l.i] {
		case '\\':
			l.i++
			if l.i >= l.n {
				// Trailing backslash with nothing to escape.
				break
			}
			if l.src[l.i] == '{' {
				l.text.WriteByte('{')
			} else {
				// Pass both characters through, backslash included.
				l.text.WriteByte('\\')
				l.text.WriteByte(l.src[l.i])
			}
			l.i++
		case '{':
			l.i++
			if err := l.lexPlaceholder(); err != nil {
				return nil, err
			}
		default:
			l.text.WriteByte(l.src[l.i])
			l.i++
		}
	}
	l.flushText()
	return l.nodes, nil
}

func (l *lexer) flushText() {
	if l.text.Len() > 0 {
		l.nodes = append(l.nodes, &TextNode{Text: l.text.String()})
		l.text.Reset()
	}
}

// lexPlaceholder is entered with the opening brace already consumed. An
// invalid placeholder is pushed back into the surrounding text verbatim and
// scanning resumes at the character that stopped it; the closing brace is
// only consumed when the placeholder is valid.
func (l *lexer) lexPlaceholder() error {
	if l.i >= l.n {
		l.text.WriteByte('{')
		return nil
	}

	var inside string
	if l.src[l.i] == '%' {
		// Command: everything up to the next closing brace.
		inside = l.takeWhile(func(r rune) bool { return r != '}' })
	} else {
		// Variable: no whitespace allowed in the name.
		inside = l.takeWhile(func(r rune) bool { return r != '}' && !unicode.IsSpace(r) })
	}

	if l.i >= l.n || l.src[l.i] != '}' {
		l.text.WriteByte('{')
		l.text.WriteString(inside)
		return nil
	}
	l.i++ // closing brace

	if inside == "" {
		l.text.WriteString("{}")
		return nil
	}
	l.flushText()
	return l.emit(inside)
}

// emit turns valid placeholder content into nodes. Content is given without
// the surrounding braces.
func (l *lexer) emit(inside string) error {
	if !strings.HasPrefix(inside, "%") {
		l.nodes = append(l.nodes, &VariableNode{Name: inside})
		return nil
	}
	name, arg, _ := strings.Cut(strings.TrimSpace(inside[1:]), " ")
	if arg == "" {
		// Tolerate a Jinja-style closing delimiter on argument-less
		// commands: {%end%} and {%end} are equivalent.
		name = strings.TrimSuffix(name, "%")
	}

	switch name {
	case "set":
		varName, value, _ := strings.Cut(arg, " ")
		if varName == "" {
			return BadArgumentError{Command: name, Argument: arg}
		}
		l.vars[varName] = value
	case "if-set":
		if arg == "" {
			return BadArgumentError{Command: name, Argument: arg}
		}
		l.nodes = append(l.nodes, &ifSetOpen{Name: arg})
	case "else":
		l.nodes = append(l.nodes, &elseMarker{})
	case "pattern":
		if arg == "" {
			return BadArgumentError{Command: name, Argument: arg}
		}
		l.nodes = append(l.nodes, &patternOpen{Name: arg})
	case "include":
		if arg == "" {
			return BadArgumentError{Command: name, Argument: arg}
		}
		return l.lexInclude(arg)
	case "wrap-include":
		if arg == "" {
			return BadArgumentError{Command: name, Argument: arg}
		}
		return l.lexWrapInclude(arg)
	case "wrapped-content":
		if !l.inWrapped {
			return SpliceContextError{}
		}
		l.nodes = append(l.nodes, &spliceMarker{})
	case "end":
		l.nodes = append(l.nodes, &endMarker{})
	default:
		return UnknownCommandError{Command: name}
	}
	return nil
}

// lexInclude splices the target file's lexed nodes into the current
// sequence. Nested includes resolve relative to the included file when the
// mode is template-relative.
func (l *lexer) lexInclude(ref string) error {
	path, content, err := loadInclude(l.opts, l.templatePath, ref)
	if err != nil {
		return l.skipUnknownInclude(ref, err)
	}
	sub := newLexer(content, path, l.opts, l.vars)
	sub.inWrapped = l.inWrapped
	nodes, err := sub.run()
	if err != nil {
		return err
	}
	l.nodes = append(l.nodes, nodes...)
	return nil
}

// lexWrapInclude lexes and fully structures the target as a standalone
// sub-document and attaches it to the open marker. The splice body between
// the command and its end is collected later, by the structurer.
func (l *lexer) lexWrapInclude(ref string) error {
	path, content, err := loadInclude(l.opts, l.templatePath, ref)
	if err != nil {
		if err := l.skipUnknownInclude(ref, err); err != nil {
			return err
		}
		// Degraded form: the enclosed body renders bare.
		l.nodes = append(l.nodes, &wrapOpen{Path: ref, Wrapped: []Node{&spliceMarker{}}})
		return nil
	}
	sub := newLexer(content, path, l.opts, l.vars)
	sub.inWrapped = true
	flat, err := sub.run()
	if err != nil {
		return err
	}
	wrapped, err := structureWrapped(flat)
	if err != nil {
		return err
	}
	l.nodes = append(l.nodes, &wrapOpen{Path: path, Wrapped: wrapped})
	return nil
}

// skipUnknownInclude applies the unknown-include strictness level to a
// resolution or read failure. A nil return means the include is skipped.
func (l *lexer) skipUnknownInclude(ref string, err error) error {
	switch l.opts.UnknownInclude {
	case LevelError:
		return err
	case LevelWarn:
		slog.Warn("skipping unresolvable include", "path", ref, "error", err)
	}
	return nil
}

func (l *lexer) takeWhile(keep func(rune) bool) string {
	start := l.i
	for l.i < l.n {
		r, size := utf8.DecodeRuneInString(l.src[l.i:])
		if !keep(r) {
			break
		}
		l.i += size
	}
	return l.src[start:l.i]
}
