// Package render turns language line counts into shields.io badges, README
// markdown and an SVG stats card.
package render

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/naka-gawa/github-loc/internal/domain"
)

// DefaultTopN is the number of languages shown by default.
const DefaultTopN = 8

// DefaultBadgeStyle is the shields.io style used for badges.
const DefaultBadgeStyle = "flat-square"

const fallbackColor = "555555"

var languageColors = map[string]string{
	"Python":     "3776AB",
	"JavaScript": "F7DF1E",
	"TypeScript": "3178C6",
	"Rust":       "DEA584",
	"Go":         "00ADD8",
	"Java":       "B07219",
	"C":          "A8B9CC",
	"C++":        "F34B7D",
	"C#":         "239120",
	"Ruby":       "CC342D",
	"PHP":        "777BB4",
	"Swift":      "F05138",
	"Kotlin":     "A97BFF",
	"Shell":      "89E051",
	"HTML":       "E34C26",
	"CSS":        "563D7C",
	"Vue":        "4FC08D",
	"Dart":       "00B4AB",
}

// FormatNumber abbreviates n with a K or M suffix.
func FormatNumber(n uint64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// LanguageColor returns the hex color (without '#') for a language.
func LanguageColor(lang string) string {
	if c, ok := languageColors[lang]; ok {
		return c
	}
	return fallbackColor
}

// shields.io uses '-' and '_' as separators inside the badge path.
var badgeEscaper = strings.NewReplacer("-", "--", "_", "__")

func badgeSegment(s string) string {
	return url.PathEscape(badgeEscaper.Replace(s))
}

// BadgeURL returns the shields.io badge URL for a language.
func BadgeURL(lang string, lines uint64, style string) string {
	label := badgeSegment(lang)
	message := badgeSegment(FormatNumber(lines) + " lines")
	return fmt.Sprintf("https://img.shields.io/badge/%s-%s-%s?style=%s", label, message, LanguageColor(lang), url.QueryEscape(style))
}

// Badge is a language badge URL.
type Badge struct {
	Language string
	URL      string
}

// Badges returns badge URLs for the top n languages, largest first.
func Badges(counts domain.LanguageCounts, n int, style string) []Badge {
	ranked := counts.Ranked(n)
	badges := make([]Badge, 0, len(ranked))
	for _, l := range ranked {
		badges = append(badges, Badge{Language: l.Language, URL: BadgeURL(l.Language, l.Lines, style)})
	}
	return badges
}
