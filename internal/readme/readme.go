// Package readme keeps a generated stats section inside a README up to date.
package readme

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/naka-gawa/github-loc/internal/domain"
)

const (
	StartMarker = "<!-- LOC-STATS:START -->"
	EndMarker   = "<!-- LOC-STATS:END -->"
)

// ErrMarkersNotFound is returned when the README lacks the section markers.
var ErrMarkersNotFound = errors.New("markers not found in README")

// Replace substitutes everything from the first StartMarker through the
// following EndMarker with section, keeping the markers.
func Replace(content, section string) (string, error) {
	start := strings.Index(content, StartMarker)
	if start < 0 {
		return "", ErrMarkersNotFound
	}
	rel := strings.Index(content[start:], EndMarker)
	if rel < 0 {
		return "", ErrMarkersNotFound
	}
	end := start + rel + len(EndMarker)
	return content[:start] + StartMarker + "\n" + section + "\n" + EndMarker + content[end:], nil
}

// Update rewrites the stats section of the README at path.
func Update(path, section string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read README: %w", err)
	}
	updated, err := Replace(string(data), section)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat README: %w", err)
	}
	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write README: %w", err)
	}
	return nil
}

// Cache records the last rendered results.
type Cache struct {
	LastUpdate     time.Time             `json:"last_update"`
	Languages      domain.LanguageCounts `json:"languages"`
	TotalLines     uint64                `json:"total_lines"`
	ReposProcessed int                   `json:"repos_processed"`
}

// NewCache builds the cache entry for results.
func NewCache(results *domain.Results, now time.Time) Cache {
	return Cache{
		LastUpdate:     now,
		Languages:      results.Languages,
		TotalLines:     results.Languages.Total(),
		ReposProcessed: results.ProcessedRepos,
	}
}

// LoadResults reads a results document written by the aggregate command.
func LoadResults(path string) (*domain.Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}
	var results domain.Results
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to parse results %s: %w", path, err)
	}
	if results.Languages == nil {
		results.Languages = domain.LanguageCounts{}
	}
	return &results, nil
}
