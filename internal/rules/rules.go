// Package rules loads the ignore and language mapping rules and classifies
// filesystem entries against them.
package rules

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/naka-gawa/github-loc/internal/domain"
)

// DefaultFile is the rule file name, resolved against the working directory.
const DefaultFile = "ignore_rules.toml"

// Language is a named set of file extensions, each with a leading dot.
type Language struct {
	Name       string
	Extensions []string
}

// RuleSet is the immutable set of ignore patterns and language mappings.
type RuleSet struct {
	IgnoreDirs  []string
	IgnoreFiles []string
	// Languages keeps the order in which languages appear in the rule file.
	Languages []Language

	byExt map[string]string
}

type fileSchema struct {
	Patterns struct {
		IgnoreDirs  []string `toml:"ignore_dirs"`
		IgnoreFiles []string `toml:"ignore_files"`
	} `toml:"patterns"`
	Languages map[string][]string `toml:"languages"`
}

var requiredKeys = [][]string{
	{"patterns"},
	{"patterns", "ignore_dirs"},
	{"patterns", "ignore_files"},
	{"languages"},
}

// Load reads and validates the rule file at path.
// Every failure is reported as a *domain.ConfigError.
func Load(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ConfigError{Path: path, Err: fmt.Errorf("failed to read rules: %w", err)}
	}
	rs, err := Parse(string(data))
	if err != nil {
		return nil, &domain.ConfigError{Path: path, Err: err}
	}
	return rs, nil
}

// Parse decodes rule file content. No defaults are substituted for missing keys.
func Parse(content string) (*RuleSet, error) {
	var raw fileSchema
	md, err := toml.Decode(content, &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}
	for _, key := range requiredKeys {
		if !md.IsDefined(key...) {
			return nil, fmt.Errorf("missing required key %q", strings.Join(key, "."))
		}
	}

	rs := &RuleSet{
		IgnoreDirs:  raw.Patterns.IgnoreDirs,
		IgnoreFiles: raw.Patterns.IgnoreFiles,
		byExt:       make(map[string]string),
	}

	for _, name := range languageOrder(md.Keys(), raw.Languages) {
		rs.addLanguage(name, raw.Languages[name])
	}
	return rs, nil
}

// languageOrder lists the names in langs in document order, as reported by
// keys. Names missing from keys follow, sorted.
func languageOrder(keys []toml.Key, langs map[string][]string) []string {
	order := make([]string, 0, len(langs))
	seen := make(map[string]bool, len(langs))
	for _, key := range keys {
		if len(key) != 2 || key[0] != "languages" || seen[key[1]] {
			continue
		}
		if _, ok := langs[key[1]]; !ok {
			continue
		}
		seen[key[1]] = true
		order = append(order, key[1])
	}
	rest := make([]string, 0, len(langs)-len(order))
	for name := range langs {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func (rs *RuleSet) addLanguage(name string, exts []string) {
	rs.Languages = append(rs.Languages, Language{Name: name, Extensions: exts})
	for _, ext := range exts {
		if _, claimed := rs.byExt[ext]; !claimed {
			rs.byExt[ext] = name
		}
	}
}

// IsIgnoredDir reports whether a directory with this name is pruned.
func (rs *RuleSet) IsIgnoredDir(name string) bool {
	return MatchDir(name, rs.IgnoreDirs)
}

// IsIgnoredFile reports whether a file with this name is excluded.
func (rs *RuleSet) IsIgnoredFile(name string) bool {
	return MatchFile(name, rs.IgnoreFiles)
}

// ResolveLanguage returns the first language, in rule file order, that claims ext.
// Extensions are compared exactly, without case folding.
func (rs *RuleSet) ResolveLanguage(ext string) (string, bool) {
	lang, ok := rs.byExt[ext]
	return lang, ok
}

// MatchDir reports whether name equals any entry in dirs.
func MatchDir(name string, dirs []string) bool {
	for _, d := range dirs {
		if name == d {
			return true
		}
	}
	return false
}

// MatchFile reports whether name matches any pattern. A pattern containing
// '*' matches names ending with the text after the '*'; any other pattern
// must equal name.
func MatchFile(name string, patterns []string) bool {
	for _, p := range patterns {
		if i := strings.LastIndex(p, "*"); i >= 0 {
			if strings.HasSuffix(name, p[i+1:]) {
				return true
			}
			continue
		}
		if name == p {
			return true
		}
	}
	return false
}
