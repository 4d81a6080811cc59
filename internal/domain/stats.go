// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"sort"
	"time"
)

// LanguageCounts maps a language name to its cumulative line count.
// It is the core domain entity of this application.
type LanguageCounts map[string]uint64

// Add accumulates n lines for lang.
func (c LanguageCounts) Add(lang string, n uint64) {
	c[lang] += n
}

// Merge folds other into c additively.
func (c LanguageCounts) Merge(other LanguageCounts) {
	for lang, n := range other {
		c[lang] += n
	}
}

// Total returns the sum of all line counts.
func (c LanguageCounts) Total() uint64 {
	var total uint64
	for _, n := range c {
		total += n
	}
	return total
}

// LanguageLines is a single language/line-count pair.
type LanguageLines struct {
	Language string
	Lines    uint64
}

// Ranked returns the top n languages ordered by line count, descending.
// Ties are ordered by name. A non-positive n returns every language.
func (c LanguageCounts) Ranked(n int) []LanguageLines {
	ranked := make([]LanguageLines, 0, len(c))
	for lang, lines := range c {
		ranked = append(ranked, LanguageLines{Language: lang, Lines: lines})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Lines != ranked[j].Lines {
			return ranked[i].Lines > ranked[j].Lines
		}
		return ranked[i].Language < ranked[j].Language
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Repository is a GitHub repository selected for counting.
type Repository struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	CloneURL string `json:"clone_url"`
	Fork     bool   `json:"fork"`
	Archived bool   `json:"archived"`
}

// RepoLineStats summarizes total line counts per processed repository.
type RepoLineStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// Results is the document written by the aggregate pipeline.
type Results struct {
	Username       string         `json:"username"`
	TotalRepos     int            `json:"total_repos"`
	ProcessedRepos int            `json:"processed_repos"`
	Languages      LanguageCounts `json:"languages"`
	TotalLines     uint64         `json:"total_lines"`
	RepoStats      RepoLineStats  `json:"repo_stats"`
	GeneratedAt    time.Time      `json:"generated_at"`
}
