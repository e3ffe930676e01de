package scanner

import (
	"bufio"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// IgnorePattern is one line of an ignore file, in gitignore style.
//
// Supported forms: "name" matches a file or directory at any depth,
// "/name" only at the root, "dir/" only directories, "!pattern" re-includes,
// and segments may use path.Match wildcards plus "**" for any number of
// directories.
type IgnorePattern struct {
	segments []string
	negate   bool
	dirOnly  bool
	anchored bool
}

// ParseIgnorePattern parses a single pattern line.
func ParseIgnorePattern(line string) IgnorePattern {
	var p IgnorePattern

	if rest, ok := strings.CutPrefix(line, "!"); ok {
		p.negate = true
		line = rest
	}
	if rest, ok := strings.CutSuffix(line, "/"); ok {
		p.dirOnly = true
		line = rest
	}
	if rest, ok := strings.CutPrefix(line, "/"); ok {
		p.anchored = true
		line = rest
	}
	// A slash inside the pattern anchors it as well.
	if strings.Contains(line, "/") && !strings.HasPrefix(line, "**/") {
		p.anchored = true
	}

	p.segments = strings.Split(line, "/")
	return p
}

// IsNegation reports whether the pattern re-includes matching paths.
func (p IgnorePattern) IsNegation() bool { return p.negate }

// Match reports whether the slash-separated relative path matches.
func (p IgnorePattern) Match(rel string, isDir bool) bool {
	if p.dirOnly && !isDir {
		return false
	}

	segs := strings.Split(filepath.ToSlash(rel), "/")
	if p.anchored {
		return matchSegments(p.segments, segs)
	}
	for i := range segs {
		if matchSegments(p.segments, segs[i:]) {
			return true
		}
	}
	return false
}

func matchSegments(pattern, segs []string) bool {
	if len(pattern) == 0 {
		return len(segs) == 0
	}

	if pattern[0] == "**" {
		for i := 0; i <= len(segs); i++ {
			if matchSegments(pattern[1:], segs[i:]) {
				return true
			}
		}
		return false
	}

	if len(segs) == 0 {
		return false
	}
	ok, err := path.Match(pattern[0], segs[0])
	if err != nil || !ok {
		return false
	}
	return matchSegments(pattern[1:], segs[1:])
}

// ignoreList is an ordered set of patterns; later patterns win.
type ignoreList []IgnorePattern

func (l ignoreList) ignored(rel string, isDir bool) bool {
	ignored := false
	for _, p := range l {
		if p.Match(rel, isDir) {
			ignored = !p.IsNegation()
		}
	}
	return ignored
}

// loadIgnoreFile reads patterns from path. A missing file yields no patterns.
func loadIgnoreFile(path string) (ignoreList, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var patterns ignoreList
	sc := bufio.NewScanner(file)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, ParseIgnorePattern(line))
	}

	return patterns, sc.Err()
}
