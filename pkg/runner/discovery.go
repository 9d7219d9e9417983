package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/lo"
)

// Directory names never descended into.
const nodeModules = "node_modules"

// Discover finds Markdown files matching opts.
// It returns a deterministically sorted list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	exclude, err := newMatcher(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	w := &walker{
		workDir:        workDir,
		extensions:     lo.Map(opts.effectiveExtensions(), func(ext string, _ int) string { return strings.ToLower(ext) }),
		exclude:        exclude,
		followSymlinks: opts.FollowSymlinks,
	}

	var files []string
	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
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
			discovered, err := w.walk(ctx, absPath)
			if err != nil {
				return nil, err
			}
			files = append(files, discovered...)
		} else if w.matchesFile(absPath) {
			files = append(files, absPath)
		}
	}

	files = lo.Uniq(files)
	slices.Sort(files)

	return files, nil
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

type walker struct {
	workDir        string
	extensions     []string
	exclude        *matcher
	followSymlinks bool
}

func (w *walker) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path == root {
				return nil
			}
			name := entry.Name()
			if strings.HasPrefix(name, ".") || name == nodeModules {
				return filepath.SkipDir
			}
			if w.exclude.MatchDir(w.rel(path)) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Inaccessible targets are skipped.
			}
			if info.IsDir() {
				if !w.followSymlinks {
					return nil
				}
				// Walk the target: WalkDir uses Lstat on its root.
				subFiles, err := w.walk(ctx, realPath)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if w.matchesFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

func (w *walker) matchesFile(path string) bool {
	if !slices.Contains(w.extensions, strings.ToLower(filepath.Ext(path))) {
		return false
	}
	return !w.exclude.Match(w.rel(path))
}

// rel returns path relative to the working directory, slash-separated.
func (w *walker) rel(path string) string {
	relPath, err := filepath.Rel(w.workDir, path)
	if err != nil {
		relPath = path
	}
	return filepath.ToSlash(relPath)
}

// matcher holds compiled ignore globs. "**" crosses directories, "*" does
// not, and patterns without a slash also match the base name.
type matcher struct {
	paths []glob.Glob
	names []glob.Glob
}

func newMatcher(patterns []string) (*matcher, error) {
	m := &matcher{}
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}

		variants := []string{strings.TrimPrefix(pattern, "./")}
		if rest, ok := strings.CutPrefix(variants[0], "**/"); ok {
			variants = append(variants, rest)
		}

		for _, variant := range variants {
			g, err := glob.Compile(variant, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
			}
			m.paths = append(m.paths, g)
			if !strings.Contains(variant, "/") {
				m.names = append(m.names, g)
			}
		}
	}
	return m, nil
}

// Match reports whether the relative file path rel is ignored.
func (m *matcher) Match(rel string) bool {
	for _, g := range m.paths {
		if g.Match(rel) {
			return true
		}
	}
	base := rel
	if idx := strings.LastIndex(rel, "/"); idx >= 0 {
		base = rel[idx+1:]
	}
	for _, g := range m.names {
		if g.Match(base) {
			return true
		}
	}
	return false
}

// MatchDir reports whether the relative directory rel is ignored.
func (m *matcher) MatchDir(rel string) bool {
	return m.Match(rel) || m.Match(rel+"/")
}
