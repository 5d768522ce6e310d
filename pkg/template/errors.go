package template

import (
	"errors"
	"fmt"
)

// ErrConsumed is returned by Render on a document that has already been
// rendered. Rendering drains the tree; re-rendering requires re-parsing.
var ErrConsumed = errors.New("document already rendered")

// ReadError reports a failure to read a template or include file.
type ReadError struct {
	Path string
	Err  error
}

func (e ReadError) Error() string {
	return fmt.Sprintf("reading %q: %v", e.Path, e.Err)
}

func (e ReadError) Unwrap() error { return e.Err }

// CanonicalizeError reports a failure to canonicalize an include path.
type CanonicalizeError struct {
	Path string
	Err  error
}

func (e CanonicalizeError) Error() string {
	return fmt.Sprintf("canonicalizing %q: %v", e.Path, e.Err)
}

func (e CanonicalizeError) Unwrap() error { return e.Err }

// UnknownCommandError reports a command name the lexer does not recognize.
type UnknownCommandError struct {
	Command string
}

func (e UnknownCommandError) Error() string {
	return fmt.Sprintf("%q is not a valid command", e.Command)
}

// BadArgumentError reports a missing or invalid command argument.
type BadArgumentError struct {
	Command  string
	Argument string
}

func (e BadArgumentError) Error() string {
	return fmt.Sprintf("%q is not a valid argument for %q", e.Argument, e.Command)
}

// UnresolvableIncludeError reports an include that cannot be resolved
// because the document was parsed from a buffer and the include mode is
// template-relative.
type UnresolvableIncludeError struct {
	Path string
}

func (e UnresolvableIncludeError) Error() string {
	return fmt.Sprintf("cannot resolve include %q: template-relative resolution with no template path", e.Path)
}

// UnclosedError reports a composite command left open at end of input.
type UnclosedError struct {
	Command string
}

func (e UnclosedError) Error() string {
	return fmt.Sprintf("unclosed command %q", e.Command)
}

// StrayMarkerError reports an else, end, or wrapped-content command with no
// open composite to own it.
type StrayMarkerError struct {
	Command string
}

func (e StrayMarkerError) Error() string {
	return fmt.Sprintf("unexpected %q with no open command", e.Command)
}

// SpliceContextError reports a wrapped-content command in a file that was
// not reached through wrap-include.
type SpliceContextError struct{}

func (SpliceContextError) Error() string {
	return `"wrapped-content" is only valid inside a wrap-include target`
}

// SplicePointError reports a wrap-include target without exactly one
// wrapped-content splice point at its top level.
type SplicePointError struct {
	Path  string
	Count int
}

func (e SplicePointError) Error() string {
	return fmt.Sprintf("wrap-include target %q has %d wrapped-content points, want exactly 1", e.Path, e.Count)
}

// UnsetVariableError reports an unset variable under LevelError strictness.
type UnsetVariableError struct {
	Name string
}

func (e UnsetVariableError) Error() string {
	return fmt.Sprintf("variable %q is not set", e.Name)
}

// UnknownPatternError reports an extraction request for a pattern the
// document does not contain.
type UnknownPatternError struct {
	Name string
}

func (e UnknownPatternError) Error() string {
	return fmt.Sprintf("pattern %q does not exist", e.Name)
}
