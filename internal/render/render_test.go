package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-loc/internal/domain"
)

var sampleCounts = domain.LanguageCounts{
	"Python":     25678,
	"JavaScript": 18234,
	"Rust":       8921,
	"Go":         6543,
	"Shell":      567,
}

func TestFormatNumber(t *testing.T) {
	testCases := []struct {
		n        uint64
		expected string
	}{
		{n: 0, expected: "0"},
		{n: 999, expected: "999"},
		{n: 1000, expected: "1.0K"},
		{n: 15234, expected: "15.2K"},
		{n: 1_000_000, expected: "1.0M"},
		{n: 2_450_000, expected: "2.5M"},
	}
	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatNumber(tc.n))
		})
	}
}

func TestBadgeURL(t *testing.T) {
	assert.Equal(t,
		"https://img.shields.io/badge/Go-6.5K%20lines-00ADD8?style=flat-square",
		BadgeURL("Go", 6543, DefaultBadgeStyle))
	assert.Equal(t,
		"https://img.shields.io/badge/Objective--C-12%20lines-555555?style=flat",
		BadgeURL("Objective-C", 12, "flat"))
	assert.Equal(t,
		"https://img.shields.io/badge/C%23-1.0K%20lines-239120?style=flat",
		BadgeURL("C#", 1000, "flat"))
}

func TestBadges(t *testing.T) {
	badges := Badges(sampleCounts, 2, DefaultBadgeStyle)

	require.Len(t, badges, 2)
	assert.Equal(t, "Python", badges[0].Language)
	assert.Equal(t, "JavaScript", badges[1].Language)
	assert.Contains(t, badges[0].URL, "/badge/Python-25.7K%20lines-3776AB")
}

func TestMarkdownTable(t *testing.T) {
	table := MarkdownTable(domain.LanguageCounts{"Go": 3000, "Rust": 1000}, DefaultTopN)

	expected := strings.Join([]string{
		"| Language | Lines of Code | Percentage |",
		"|----------|---------------|------------|",
		"| Go | 3,000 | 75.0% |",
		"| Rust | 1,000 | 25.0% |",
	}, "\n")
	assert.Equal(t, expected, table)
}

func TestSections(t *testing.T) {
	compact := Section(SectionCompact, sampleCounts, DefaultTopN)
	assert.True(t, strings.HasPrefix(compact, "### 💻 Lines of Code"))
	assert.Contains(t, compact, "*Total: 59,943 lines across 5 languages*")
	assert.NotContains(t, compact, "| Language |")

	full := Section(SectionFull, sampleCounts, DefaultTopN)
	assert.Contains(t, full, "**Total Lines of Code:** 59,943")
	assert.Contains(t, full, "### Detailed Breakdown")
	assert.Contains(t, full, "![Python](https://img.shields.io/badge/Python-")

	noTable := FullSection(sampleCounts, DefaultTopN, false)
	assert.NotContains(t, noTable, "### Detailed Breakdown")
}

func TestParseSectionType(t *testing.T) {
	kind, err := ParseSectionType("full")
	require.NoError(t, err)
	assert.Equal(t, SectionFull, kind)

	_, err = ParseSectionType("wide")
	assert.ErrorContains(t, err, "unknown section type")
}

func TestSVGCard(t *testing.T) {
	svg, err := SVGCard(sampleCounts, "Test<User>", 3)
	require.NoError(t, err)

	assert.Contains(t, svg, `width="495"`)
	assert.Contains(t, svg, `height="225"`)
	assert.Contains(t, svg, `viewBox="0 0 495 225"`)
	assert.Contains(t, svg, "Lines of code statistics for Test&lt;User&gt;")
	assert.Contains(t, svg, ">59,943</text>")
	assert.Contains(t, svg, ">Python</text>")
	assert.Contains(t, svg, ">25.7K lines</text>")
	assert.Contains(t, svg, ">42.8%</text>")
	assert.NotContains(t, svg, ">Shell<")
	assert.Equal(t, 3, strings.Count(svg, "<circle "))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(svg), "</svg>"))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestWriteSVGCard_WriteError(t *testing.T) {
	err := WriteSVGCard(failingWriter{}, sampleCounts, "octocat", DefaultTopN)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestLanguageBars(t *testing.T) {
	ranked := domain.LanguageCounts{"Go": 999, "Rust": 1}.Ranked(0)

	bars := languageBars(ranked, 1000, 455)

	require.Len(t, bars, 1)
	assert.Equal(t, "00ADD8", bars[0].Color)
	assert.InDelta(t, 454.545, bars[0].Width, 0.001)
	assert.Nil(t, languageBars(nil, 0, 455))
}

func TestSaveSVGCard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loc_stats.svg")

	require.NoError(t, SaveSVGCard(path, sampleCounts, "octocat", DefaultTopN))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "</svg>")
}
