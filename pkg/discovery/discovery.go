package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Pair names an original document and its executed counterpart, both
// as absolute paths. Executed is always the derived
// `<name>.executed<ext>` path, whether or not that file exists; the
// batch command reports a missing executed file as that pair's load
// error rather than dropping the source silently.
type Pair struct {
	Original string
	Executed string
}

// Discover finds original/executed document pairs under the given
// paths, deterministically sorted by Original.
func Discover(ctx context.Context, opts Options) ([]Pair, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	extensions := opts.effectiveExtensions()
	suffix := opts.effectiveExecutedSuffix()
	paths := opts.effectivePaths()

	seen := make(map[string]struct{})
	var sources []string

	for _, inputPath := range paths {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			found, err := walkDirectory(ctx, absPath, workDir, extensions, suffix, opts)
			if err != nil {
				return nil, err
			}
			for _, f := range found {
				if _, ok := seen[f]; !ok {
					seen[f] = struct{}{}
					sources = append(sources, f)
				}
			}
		} else if matchesSource(absPath, workDir, extensions, suffix, opts) {
			if _, ok := seen[absPath]; !ok {
				seen[absPath] = struct{}{}
				sources = append(sources, absPath)
			}
		}
	}

	sort.Strings(sources)

	pairs := make([]Pair, len(sources))
	for i, src := range sources {
		pairs[i] = Pair{Original: src, Executed: executedPathFor(src, suffix)}
	}
	return pairs, nil
}

// executedPathFor derives the executed-document path for a source
// path: "report.qmd" -> "report.executed.qmd".
func executedPathFor(source, suffix string) string {
	ext := filepath.Ext(source)
	base := strings.TrimSuffix(source, ext)
	return base + suffix + ext
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func walkDirectory(ctx context.Context, root, workDir string, extensions []string, suffix string, opts Options) ([]string, error) {
	var sources []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		relPath, relErr := filepath.Rel(workDir, path)
		if relErr != nil {
			relPath = path
		}

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if matchesGlobAny(relPath, opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // broken symlink, skip silently
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // inaccessible symlink target, skip silently
			}
			if info.IsDir() {
				if !opts.FollowSymlinks {
					return nil
				}
				subSources, err := walkDirectory(ctx, realPath, workDir, extensions, suffix, opts)
				if err != nil {
					return err
				}
				sources = append(sources, subSources...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if matchesSource(path, workDir, extensions, suffix, opts) {
			sources = append(sources, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return sources, nil
}

// matchesSource reports whether path is a candidate source document:
// it carries one of the configured extensions, is not itself an
// executed counterpart (its stem doesn't already end in suffix), and
// isn't excluded.
func matchesSource(path, workDir string, extensions []string, suffix string, opts Options) bool {
	relPath, err := filepath.Rel(workDir, path)
	if err != nil {
		relPath = path
	}

	ext := strings.ToLower(filepath.Ext(path))
	matched := false
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if strings.HasSuffix(stem, suffix) {
		return false
	}

	return !matchesGlobAny(relPath, opts.ExcludeGlobs)
}

func matchesGlobAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// matchGlob matches a path against a glob pattern, supporting "**" for
// recursive matching in addition to filepath.Match's syntax.
func matchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if strings.Contains(pattern, "**") {
		return matchDoubleStarPattern(path, pattern)
	}

	matched, err := filepath.Match(pattern, path)
	if err != nil {
		return false
	}
	if matched {
		return true
	}

	matched, err = filepath.Match(pattern, filepath.Base(path))
	if err != nil {
		return false
	}
	return matched
}

func matchDoubleStarPattern(path, pattern string) bool {
	parts := strings.Split(pattern, "**")

	if len(parts) == 1 {
		matched, err := filepath.Match(pattern, path)
		if err != nil {
			return false
		}
		return matched
	}

	if parts[0] == "" && len(parts) == 2 {
		suffix := strings.TrimPrefix(parts[1], "/")
		if suffix == "" {
			return true
		}
		if strings.HasSuffix(path, suffix) {
			return true
		}
		for _, part := range strings.Split(path, "/") {
			if matched, err := filepath.Match(suffix, part); err == nil && matched {
				return true
			}
		}
		return strings.Contains(path, suffix)
	}

	if parts[1] == "" || parts[1] == "/" {
		prefix := strings.TrimSuffix(parts[0], "/")
		if prefix == "" {
			return true
		}
		return strings.HasPrefix(path, prefix+"/") || path == prefix
	}

	prefix := strings.TrimSuffix(parts[0], "/")
	suffix := strings.TrimPrefix(parts[1], "/")

	if prefix != "" && !strings.HasPrefix(path, prefix) {
		return false
	}
	if suffix != "" && !strings.HasSuffix(path, suffix) {
		if matched, err := filepath.Match(suffix, filepath.Base(path)); err != nil || !matched {
			return false
		}
	}
	return true
}
