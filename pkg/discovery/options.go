// Package discovery finds original/executed document pairs for batch
// reconciliation: a source document (`foo.qmd`) and the corresponding
// post-execution document the engine produced (`foo.executed.qmd`).
package discovery

// Options controls a batch discovery run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to
	// scan. If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of source-document extensions (lowercase,
	// with leading dot) paired against `<name>.executed<ext>`.
	// Defaults to [".qmd", ".md"] via DefaultExtensions().
	Extensions []string

	// ExecutedSuffix names the marker inserted before the extension to
	// find a source document's executed counterpart. Defaults to
	// ".executed".
	ExecutedSuffix string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool
}

// DefaultExtensions returns the default set of source-document
// extensions eligible for pairing.
func DefaultExtensions() []string {
	return []string{".qmd", ".md"}
}

// DefaultExecutedSuffix is the marker inserted before the extension to
// name a source document's executed counterpart.
const DefaultExecutedSuffix = ".executed"

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectiveExecutedSuffix() string {
	if o.ExecutedSuffix == "" {
		return DefaultExecutedSuffix
	}
	return o.ExecutedSuffix
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
