package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/agoda-com/muter/internal/adapter"
	m "github.com/agoda-com/muter/internal/model"
)

// recursiveSuffix marks a path for recursive traversal, Go-tool style
// ("./..." scans the whole tree below the current directory).
const recursiveSuffix = "..."

// DiscoverSources walks the requested paths and collects non-test Go files
// eligible for mutation, minus any file matching an exclude pattern. Paths
// are absolutized so they can serve as swap record keys for the session.
func DiscoverSources(fs adapter.SourceFSAdapter, paths []m.Path, exclude []string) ([]m.Source, error) {
	if len(paths) == 0 {
		paths = []m.Path{m.Path("." + string(filepath.Separator) + recursiveSuffix)}
	}

	excludes, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	var sources []m.Source

	seen := make(map[m.Path]struct{})

	for _, path := range paths {
		root, recursive := splitRecursive(path)

		info, err := fs.FileInfo(root)
		if err != nil {
			return nil, fmt.Errorf("path %s: %w", root, err)
		}

		if !info.IsDir() {
			source, ok, err := sourceFor(fs, m.Path(root), excludes)
			if err != nil {
				return nil, err
			}

			if ok {
				appendSource(&sources, seen, source)
			}

			continue
		}

		err = fs.Walk(m.Path(root), recursive, func(walked string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				// Skip hidden and underscore-prefixed trees (testdata-style
				// conventions, the swap directory, .git).
				if walked != string(root) && ignoredName(filepath.Base(walked)) {
					return filepath.SkipDir
				}

				return nil
			}

			source, ok, err := sourceFor(fs, m.Path(walked), excludes)
			if err != nil {
				return err
			}

			if ok {
				appendSource(&sources, seen, source)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	return sources, nil
}

func splitRecursive(path m.Path) (m.Path, bool) {
	str := string(path)

	if filepath.Base(str) == recursiveSuffix {
		root := filepath.Dir(str)
		if root == "" {
			root = "."
		}

		return m.Path(root), true
	}

	return path, false
}

func ignoredName(base string) bool {
	return strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_")
}

func sourceFor(fs adapter.SourceFSAdapter, path m.Path, excludes []*regexp.Regexp) (m.Source, bool, error) {
	str := string(path)

	if filepath.Ext(str) != ".go" || strings.HasSuffix(str, "_test.go") || ignoredName(filepath.Base(str)) {
		return m.Source{}, false, nil
	}

	for _, pattern := range excludes {
		if pattern.MatchString(str) {
			return m.Source{}, false, nil
		}
	}

	abs, err := fs.AbsPath(path)
	if err != nil {
		return m.Source{}, false, fmt.Errorf("resolve %s: %w", path, err)
	}

	hash, err := fs.HashFile(abs)
	if err != nil {
		return m.Source{}, false, fmt.Errorf("hash %s: %w", abs, err)
	}

	return m.Source{Origin: &m.File{Path: abs, Hash: hash}}, true, nil
}

func appendSource(sources *[]m.Source, seen map[m.Path]struct{}, source m.Source) {
	if _, ok := seen[source.Origin.Path]; ok {
		return
	}

	seen[source.Origin.Path] = struct{}{}
	*sources = append(*sources, source)
}

func compileExcludes(exclude []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(exclude))

	for _, raw := range exclude {
		pattern, err := regexp.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", raw, err)
		}

		patterns = append(patterns, pattern)
	}

	return patterns, nil
}
