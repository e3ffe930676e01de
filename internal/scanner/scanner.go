// Package scanner walks a directory tree and collects the source files a
// registered frontend can analyze. It respects .gvsignore files with
// gitignore-style patterns.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/l3aro/go-valueset/pkg/frontend"
)

// FileInfo represents information about a discovered file.
type FileInfo struct {
	Path     string            // Relative path from root, slash separated
	FullPath string            // Absolute path
	Language frontend.Language // Language of the frontend that handles the file
	Size     int64             // File size in bytes
}

// Options configures the scanner behavior.
type Options struct {
	SkipHidden      bool     // Skip hidden files and directories (starting with .)
	DefaultExcludes []string // Directory names to exclude at any depth
	IgnoreFileName  string   // Name of the ignore file (default: .gvsignore)
}

// DefaultOptions returns scanner options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		SkipHidden:     true,
		IgnoreFileName: ".gvsignore",
		DefaultExcludes: []string{
			".git",
			"vendor",
			"node_modules",
			"target", // Maven, Gradle
			"build",
			"bin",
			"obj",
		},
	}
}

// Scanner provides file tree scanning capabilities.
type Scanner struct {
	opts Options
}

// New creates a new Scanner with the given options.
func New(opts Options) *Scanner {
	return &Scanner{opts: opts}
}

// Scan recursively scans root and returns the supported files in walk order.
// Unreadable entries are skipped.
func (s *Scanner) Scan(root string) ([]FileInfo, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("getting absolute path: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", root)
	}

	var ignores ignoreList
	var files []FileInfo

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() && path != absRoot {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if relPath == "." {
			return s.loadIgnores(path, &ignores)
		}

		if s.opts.SkipHidden && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if s.isDefaultExcluded(d.Name()) || ignores.ignored(relPath, true) {
				return filepath.SkipDir
			}
			return s.loadIgnores(path, &ignores)
		}

		if !d.Type().IsRegular() || ignores.ignored(relPath, false) {
			return nil
		}

		lang, ok := frontend.LanguageFor(path)
		if !ok {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return nil
		}

		files = append(files, FileInfo{
			Path:     relPath,
			FullPath: path,
			Language: lang,
			Size:     fi.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	return files, nil
}

// loadIgnores appends the patterns of dir's ignore file. Nested files add to
// the patterns of their parents; paths are always matched relative to the root.
func (s *Scanner) loadIgnores(dir string, ignores *ignoreList) error {
	if s.opts.IgnoreFileName == "" {
		return nil
	}
	patterns, err := loadIgnoreFile(filepath.Join(dir, s.opts.IgnoreFileName))
	if err != nil {
		return fmt.Errorf("loading ignore patterns: %w", err)
	}
	*ignores = append(*ignores, patterns...)
	return nil
}

func (s *Scanner) isDefaultExcluded(name string) bool {
	for _, exclude := range s.opts.DefaultExcludes {
		if strings.EqualFold(name, exclude) {
			return true
		}
	}
	return false
}

// Scan is a convenience function that scans a directory with default options.
func Scan(root string) ([]FileInfo, error) {
	return New(DefaultOptions()).Scan(root)
}
