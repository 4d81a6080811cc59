package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/naka-gawa/github-loc/internal/domain"
)

const (
	cardWidth    = 495
	cardPadding  = 20
	headerHeight = 80
	barHeight    = 30
	rowHeight    = 25
	cardTitle    = "Code Statistics"
)

const cardStyle = `
.header { font: 600 18px 'Segoe UI', Ubuntu, Sans-Serif; fill: #2f80ed }
.stat-value { font: 600 20px 'Segoe UI', Ubuntu, Sans-Serif; fill: #333 }
.stat-label { font: 400 12px 'Segoe UI', Ubuntu, Sans-Serif; fill: #666 }
.lang-name { font: 400 12px 'Segoe UI', Ubuntu, Sans-Serif; fill: #333 }
.lang-percent { font: 400 11px 'Segoe UI', Ubuntu, Sans-Serif; fill: #666 }
.lang-lines { font: 400 11px 'Segoe UI', Ubuntu, monospace; fill: #666 }
`

type svgBar struct {
	X, Width float64
	Color    string
}

// SVGCard renders a stats card for the top n languages.
func SVGCard(counts domain.LanguageCounts, username string, n int) (string, error) {
	var sb strings.Builder
	if err := WriteSVGCard(&sb, counts, username, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteSVGCard renders the stats card to w.
func WriteSVGCard(w io.Writer, counts domain.LanguageCounts, username string, n int) error {
	ranked := counts.Ranked(n)
	total := counts.Total()
	height := headerHeight + barHeight + len(ranked)*rowHeight + 2*cardPadding
	ew := &errWriter{w: w}

	canvas := svg.New(ew)
	canvas.Start(cardWidth, height,
		fmt.Sprintf(`viewBox="0 0 %d %d"`, cardWidth, height),
		`role="img"`,
		`aria-labelledby="descId"`)
	canvas.Title(cardTitle)
	canvas.Desc("Lines of code statistics for " + username)
	canvas.Style("text/css", cardStyle)
	canvas.Roundrect(0, 0, cardWidth, height, 4, 4, `fill="#fffefe"`, `stroke="#e4e2e2"`, `stroke-width="1"`)

	canvas.Gtransform("translate(20, 25)")
	canvas.Text(0, 0, cardTitle, `class="header"`)

	canvas.Gtransform("translate(0, 30)")
	canvas.Text(0, 0, "Total Lines of Code", `class="stat-label"`)
	canvas.Text(0, 20, comma(total), `class="stat-value"`)
	canvas.Gend()

	canvas.Gtransform("translate(0, 70)")
	canvas.Text(0, 0, "Language Distribution", `class="stat-label"`)
	canvas.Gtransform("translate(0, 15)")
	for _, b := range languageBars(ranked, total, cardWidth-2*cardPadding) {
		x := int(math.Round(b.X))
		width := int(math.Round(b.X+b.Width)) - x
		canvas.Roundrect(x, 0, width, 8, 2, 2, fmt.Sprintf(`fill="#%s"`, b.Color))
	}
	canvas.Gend()
	canvas.Gend()

	canvas.Gtransform("translate(0, 110)")
	for i, l := range ranked {
		color := fmt.Sprintf(`fill="#%s"`, LanguageColor(l.Language))
		canvas.Gtransform(fmt.Sprintf("translate(0, %d)", i*rowHeight))
		canvas.Circle(5, 6, 5, color)
		canvas.Text(15, 10, l.Language, `class="lang-name"`)
		canvas.Text(280, 10, fmt.Sprintf("%.1f%%", percent(l.Lines, total)), `class="lang-percent"`, `text-anchor="end"`)
		canvas.Text(440, 10, FormatNumber(l.Lines)+" lines", `class="lang-lines"`, `text-anchor="end"`)
		canvas.Gend()
	}
	canvas.Gend()

	canvas.Gend()
	canvas.End()

	if ew.err != nil {
		return fmt.Errorf("failed to render svg card: %w", ew.err)
	}
	return nil
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

// languageBars lays out one bar segment per language. Segments narrower than
// one pixel are dropped.
func languageBars(ranked []domain.LanguageLines, total uint64, width int) []svgBar {
	if total == 0 {
		return nil
	}
	var bars []svgBar
	x := 0.0
	for _, l := range ranked {
		w := float64(l.Lines) / float64(total) * float64(width)
		if w < 1 {
			continue
		}
		bars = append(bars, svgBar{X: x, Width: w, Color: LanguageColor(l.Language)})
		x += w
	}
	return bars
}

// SaveSVGCard renders the stats card into the file at path.
func SaveSVGCard(path string, counts domain.LanguageCounts, username string, n int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteSVGCard(f, counts, username, n); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
