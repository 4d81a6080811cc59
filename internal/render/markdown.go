package render

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/naka-gawa/github-loc/internal/domain"
)

// SectionType selects the README section layout.
type SectionType string

const (
	SectionCompact SectionType = "compact"
	SectionFull    SectionType = "full"
)

// ParseSectionType validates a section type name.
func ParseSectionType(s string) (SectionType, error) {
	switch SectionType(s) {
	case SectionCompact, SectionFull:
		return SectionType(s), nil
	default:
		return "", fmt.Errorf("unknown section type %q (want %q or %q)", s, SectionCompact, SectionFull)
	}
}

func comma(n uint64) string {
	return humanize.Comma(int64(n))
}

func percent(n, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// MarkdownTable renders a table of the top n languages with their share of the total.
func MarkdownTable(counts domain.LanguageCounts, n int) string {
	total := counts.Total()
	lines := []string{
		"| Language | Lines of Code | Percentage |",
		"|----------|---------------|------------|",
	}
	for _, l := range counts.Ranked(n) {
		lines = append(lines, fmt.Sprintf("| %s | %s | %.1f%% |", l.Language, comma(l.Lines), percent(l.Lines, total)))
	}
	return strings.Join(lines, "\n")
}

// BadgeSection renders badge images for the top n languages on one line.
func BadgeSection(counts domain.LanguageCounts, n int) string {
	badges := Badges(counts, n, DefaultBadgeStyle)
	images := make([]string, 0, len(badges))
	for _, b := range badges {
		images = append(images, fmt.Sprintf("![%s](%s)", b.Language, b.URL))
	}
	return strings.Join(images, " ")
}

// FullSection renders the README section with badges and, optionally, the table.
func FullSection(counts domain.LanguageCounts, n int, includeTable bool) string {
	sections := []string{
		"## 📊 Coding Statistics",
		"",
		fmt.Sprintf("**Total Lines of Code:** %s", comma(counts.Total())),
		"",
		"### Top Languages",
		"",
		BadgeSection(counts, n),
	}
	if includeTable {
		sections = append(sections,
			"",
			"### Detailed Breakdown",
			"",
			MarkdownTable(counts, n),
		)
	}
	return strings.Join(sections, "\n")
}

// CompactSection renders badges and the total only.
func CompactSection(counts domain.LanguageCounts, n int) string {
	return strings.Join([]string{
		"### 💻 Lines of Code",
		"",
		BadgeSection(counts, n),
		"",
		fmt.Sprintf("*Total: %s lines across %d languages*", comma(counts.Total()), len(counts)),
	}, "\n")
}

// Section renders the section of the given type.
func Section(kind SectionType, counts domain.LanguageCounts, n int) string {
	if kind == SectionFull {
		return FullSection(counts, n, true)
	}
	return CompactSection(counts, n)
}
