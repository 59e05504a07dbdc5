package walker

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ignoreRule is one parsed line of a .gitignore file.
type ignoreRule struct {
	pattern  string
	negate   bool
	dirOnly  bool
	anchored bool
}

// ruleSet holds the rules of a single ignore file, scoped to the directory
// that contains it. Paths are matched relative to base.
type ruleSet struct {
	base  string // relative to the walk root, "" for the root itself
	rules []ignoreRule
}

// loadIgnoreFile parses a .gitignore file into a ruleSet. A missing file
// yields a nil set; unreadable files are reported to the caller.
func loadIgnoreFile(path, base string) (*ruleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	set := &ruleSet{base: base}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set.rules = append(set.rules, parseIgnoreLine(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(set.rules) == 0 {
		return nil, nil
	}
	return set, nil
}

// parseIgnoreLine splits the gitignore modifiers off a pattern line.
func parseIgnoreLine(line string) ignoreRule {
	rule := ignoreRule{}
	if strings.HasPrefix(line, "!") {
		rule.negate = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		rule.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}
	// A separator anywhere but the end anchors the pattern to the ignore
	// file's directory.
	if strings.HasPrefix(line, "/") {
		rule.anchored = true
		line = strings.TrimPrefix(line, "/")
	} else if strings.Contains(line, "/") {
		rule.anchored = true
	}
	rule.pattern = line
	return rule
}

// match reports whether the rule applies to rel (a slash path relative to the
// rule set's base).
func (r ignoreRule) match(rel string, isDir bool) bool {
	if r.dirOnly && !isDir {
		return false
	}
	pattern := r.pattern
	if !r.anchored {
		pattern = "**/" + pattern
	}
	ok, err := doublestar.Match(pattern, rel)
	if err != nil {
		// Malformed pattern, treat as non-matching.
		return false
	}
	return ok
}

// Ignored evaluates all rules in file order; the last matching rule wins,
// which is how negation works in gitignore.
func (s *ruleSet) Ignored(rel string, isDir bool) (ignored, matched bool) {
	if s == nil {
		return false, false
	}
	// Scope the path to this rule set's directory.
	if s.base != "" {
		var ok bool
		rel, ok = trimBase(rel, s.base)
		if !ok {
			return false, false
		}
	}
	for _, rule := range s.rules {
		if rule.match(rel, isDir) {
			ignored = !rule.negate
			matched = true
		}
	}
	return ignored, matched
}

// trimBase strips base/ from rel, reporting whether rel lies under base.
func trimBase(rel, base string) (string, bool) {
	if rel == base {
		return ".", true
	}
	prefix := base + "/"
	if !strings.HasPrefix(rel, prefix) {
		return "", false
	}
	return rel[len(prefix):], true
}

// ignoreStack is the chain of ignore files from the root down to the current
// directory. Deeper files take precedence over shallower ones.
type ignoreStack []*ruleSet

// Ignored applies the stack deepest-first so nested ignore files override
// their parents.
func (st ignoreStack) Ignored(rel string, isDir bool) bool {
	for i := len(st) - 1; i >= 0; i-- {
		if ignored, matched := st[i].Ignored(rel, isDir); matched {
			return ignored
		}
	}
	return false
}

// push returns a new stack extended with the ignore file of dir, if any.
// relDir is dir's path relative to the walk root ("" for the root).
func (st ignoreStack) push(dir, relDir string) (ignoreStack, error) {
	set, err := loadIgnoreFile(filepath.Join(dir, ".gitignore"), relDir)
	if err != nil {
		return st, err
	}
	if set == nil {
		return st, nil
	}
	return append(st, set), nil
}
