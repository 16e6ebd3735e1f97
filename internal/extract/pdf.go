package extract

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Table detection strategies. Lattice wants clearly gridded content and
// refuses pages without it, matrix takes any positionally grouped rows, and
// auto tries lattice before matrix. Every strategy falls back to the page's
// plain text when no tabular rows are found.
const (
	StrategyAuto    = "auto"
	StrategyLattice = "lattice"
	StrategyMatrix  = "matrix"
)

const (
	rowTolerance  = 2.0  // max Y distance for glyphs on the same row
	cellGap       = 12.0 // X gap that separates two cells
	wordGap       = 1.0  // X gap that separates two words
	cellSeparator = ", "
)

// NormalizeStrategy maps unknown strategy names to auto.
func NormalizeStrategy(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case StrategyLattice:
		return StrategyLattice
	case StrategyMatrix:
		return StrategyMatrix
	default:
		return StrategyAuto
	}
}

// Pages extracts one text blob per PDF page. Pages that cannot be read are
// skipped; an error is returned only when the document itself is unreadable
// or yields nothing at all.
func Pages(data []byte, strategy string) ([]string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}
	strategy = NormalizeStrategy(strategy)

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		pages = append(pages, pageText(p, strategy))
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("pdf has no extractable pages")
	}
	return pages, nil
}

func pageText(p pdf.Page, strategy string) string {
	var t string
	switch strategy {
	case StrategyLattice:
		t = rowText(p, true)
	case StrategyMatrix:
		t = rowText(p, false)
	default:
		t = rowText(p, true)
		if t == "" {
			t = rowText(p, false)
		}
	}
	if t == "" {
		t = plainText(p)
	}
	return t
}

func plainText(p pdf.Page) string {
	t, err := p.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(t)
}

type textRow struct {
	y     float64
	items []pdf.Text
}

// rowText groups the page's positioned text into rows by Y coordinate and
// splits each row into cells at large X gaps. In strict mode the page must
// show at least two multi-cell rows to count as tabular.
func rowText(p pdf.Page, strict bool) string {
	content := p.Content()
	if len(content.Text) == 0 {
		return ""
	}

	var rows []*textRow
	for _, t := range content.Text {
		if t.S == "" {
			continue
		}
		var row *textRow
		for _, r := range rows {
			if t.Y >= r.y-rowTolerance && t.Y <= r.y+rowTolerance {
				row = r
				break
			}
		}
		if row == nil {
			row = &textRow{y: t.Y}
			rows = append(rows, row)
		}
		row.items = append(row.items, t)
	}

	// top of page first
	sort.Slice(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	lines := make([]string, 0, len(rows))
	multiCell := 0
	for _, r := range rows {
		line, cells := joinRow(r.items)
		if line == "" {
			continue
		}
		if cells > 1 {
			multiCell++
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return ""
	}
	if strict && multiCell < 2 {
		return ""
	}
	if !strict && multiCell < 1 {
		return ""
	}
	return strings.Join(lines, "\n")
}

func joinRow(items []pdf.Text) (string, int) {
	sort.Slice(items, func(i, j int) bool { return items[i].X < items[j].X })

	var sb strings.Builder
	cells := 1
	prevEnd := -1.0
	for _, t := range items {
		if prevEnd >= 0 {
			gap := t.X - prevEnd
			switch {
			case gap > cellGap:
				sb.WriteString(cellSeparator)
				cells++
			case gap > wordGap:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	return strings.TrimSpace(sb.String()), cells
}
