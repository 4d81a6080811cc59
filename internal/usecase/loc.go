package usecase

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/naka-gawa/github-loc/internal/counter"
	"github.com/naka-gawa/github-loc/internal/domain"
	"github.com/naka-gawa/github-loc/internal/rules"
	"github.com/naka-gawa/github-loc/internal/walker"
)

// LineCounter counts lines of code per language for repositories on disk.
// It is single-threaded; the RuleSet it holds is never modified.
type LineCounter struct {
	rules  *rules.RuleSet
	logger *log.Logger
}

// NewLineCounter creates a new LineCounter instance.
func NewLineCounter(rs *rules.RuleSet, logger *log.Logger) *LineCounter {
	return &LineCounter{
		rules:  rs,
		logger: logger,
	}
}

type skipReason int

const (
	notSkipped skipReason = iota
	skipIgnored
	skipNoExtension
	skipNoLanguage
	skipUnreadable
)

func (r skipReason) String() string {
	switch r {
	case skipIgnored:
		return "ignored by name"
	case skipNoExtension:
		return "no extension"
	case skipNoLanguage:
		return "no matching language"
	case skipUnreadable:
		return "unreadable"
	default:
		return "counted"
	}
}

// fileResult is the outcome of classifying and counting one file.
type fileResult struct {
	language string
	lines    uint64
	skip     skipReason
	err      error
}

func (c *LineCounter) countFile(entry walker.FileEntry) fileResult {
	if c.rules.IsIgnoredFile(entry.Name) {
		return fileResult{skip: skipIgnored}
	}
	if entry.Ext == "" {
		return fileResult{skip: skipNoExtension}
	}
	lang, ok := c.rules.ResolveLanguage(entry.Ext)
	if !ok {
		return fileResult{skip: skipNoLanguage}
	}
	lines, err := counter.CountLines(entry.Path)
	if err != nil {
		return fileResult{skip: skipUnreadable, err: err}
	}
	return fileResult{language: lang, lines: lines}
}

// CountRepository walks dir and returns its line counts per language.
// Files that cannot be classified or read are skipped; only a failure to
// start the traversal is returned.
func (c *LineCounter) CountRepository(dir string) (domain.LanguageCounts, error) {
	files, err := walker.Walk(dir, c.rules)
	if err != nil {
		return nil, err
	}

	counts := make(domain.LanguageCounts)
	for entry := range files {
		res := c.countFile(entry)
		if res.skip != notSkipped {
			if res.err != nil {
				c.logger.Printf("  Skipping %s (%s): %v", entry.Path, res.skip, res.err)
			}
			continue
		}
		counts.Add(res.language, res.lines)
	}
	return counts, nil
}

// CountTarget counts every immediate subdirectory of targetDir as a
// repository and returns the merged totals.
func (c *LineCounter) CountTarget(targetDir string) (domain.LanguageCounts, error) {
	total, _, err := c.CountTargetByRepo(targetDir)
	return total, err
}

// CountTargetByRepo is CountTarget that also returns each repository's counts,
// keyed by directory name. Non-directory children of targetDir and
// directories named in the ignore rules are not repositories.
func (c *LineCounter) CountTargetByRepo(targetDir string) (domain.LanguageCounts, map[string]domain.LanguageCounts, error) {
	children, err := os.ReadDir(targetDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", domain.ErrTargetNotFound, targetDir)
		}
		return nil, nil, fmt.Errorf("failed to list %s: %w", targetDir, err)
	}

	c.logger.Printf("Usecase: Counting repositories under %s...", targetDir)
	total := make(domain.LanguageCounts)
	byRepo := make(map[string]domain.LanguageCounts)
	for _, child := range children {
		if !child.IsDir() || c.rules.IsIgnoredDir(child.Name()) {
			continue
		}
		repoCounts, err := c.CountRepository(filepath.Join(targetDir, child.Name()))
		if err != nil {
			c.logger.Printf("  Skipping repository %s: %v", child.Name(), err)
			continue
		}
		c.logger.Printf("  %s: %d lines", child.Name(), repoCounts.Total())
		byRepo[child.Name()] = repoCounts
		total.Merge(repoCounts)
	}
	c.logger.Println("Usecase: Counting complete.")
	return total, byRepo, nil
}
