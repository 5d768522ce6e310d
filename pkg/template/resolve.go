package template

import (
	"os"
	"path/filepath"
)

// IncludeMode selects the base directory for resolving include paths. The
// mode is chosen once per top-level compilation and inherited by every
// recursively included file.
type IncludeMode int

const (
	// IncludeTemplateDir resolves relative to the directory of the file
	// currently being lexed. Fails for documents parsed from a buffer.
	IncludeTemplateDir IncludeMode = iota
	// IncludeCurrentDir resolves relative to the working directory.
	IncludeCurrentDir
	// IncludeFixedDir resolves relative to Options.IncludePath.
	IncludeFixedDir
)

// ErrorLevel grades how strictly the compiler treats a degradable
// condition: fail the operation, log a warning and continue, or continue
// silently.
type ErrorLevel int

const (
	LevelError ErrorLevel = iota
	LevelWarn
	LevelNoError
)

// Options configures include resolution and strictness for a compilation.
type Options struct {
	IncludeMode IncludeMode
	// IncludePath is the base directory for IncludeFixedDir. A path naming
	// a file resolves against its parent directory.
	IncludePath string

	// UnknownInclude grades an include that cannot be resolved or read.
	// Anything below LevelError skips the include.
	UnknownInclude ErrorLevel
	// UnsetVariable grades a render-time lookup of an unset variable.
	// Anything below LevelError passes the placeholder through as {name}.
	UnsetVariable ErrorLevel
}

// DefaultOptions mirrors the compiler's defaults: template-relative
// includes, unresolvable includes fail the parse, unset variables pass
// through.
func DefaultOptions() Options {
	return Options{
		IncludeMode:    IncludeTemplateDir,
		UnknownInclude: LevelError,
		UnsetVariable:  LevelNoError,
	}
}

// resolveInclude maps an include reference to a canonical absolute path.
// templatePath is the file currently being lexed, empty for buffers.
func resolveInclude(opts Options, templatePath, ref string) (string, error) {
	var candidate string
	switch opts.IncludeMode {
	case IncludeCurrentDir:
		candidate = ref
	case IncludeTemplateDir:
		if templatePath == "" {
			return "", UnresolvableIncludeError{Path: ref}
		}
		candidate = filepath.Join(filepath.Dir(templatePath), ref)
	case IncludeFixedDir:
		base := opts.IncludePath
		if st, err := os.Stat(base); err == nil && !st.IsDir() {
			base = filepath.Dir(base)
		}
		candidate = filepath.Join(base, ref)
	}

	abs, err := filepath.Abs(candidate)
	if err != nil {
		return "", CanonicalizeError{Path: candidate, Err: err}
	}
	// EvalSymlinks also verifies the file exists.
	canon, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", CanonicalizeError{Path: abs, Err: err}
	}
	return canon, nil
}

// loadInclude resolves ref and reads the target to completion.
func loadInclude(opts Options, templatePath, ref string) (path, content string, err error) {
	path, err = resolveInclude(opts, templatePath, ref)
	if err != nil {
		return "", "", err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", "", ReadError{Path: path, Err: err}
	}
	return path, string(raw), nil
}
