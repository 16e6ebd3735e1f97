package transform

import (
	"encoding/csv"
	"strings"

	"go.uber.org/zap"

	"github.com/glp500/Semi-Structured-Dataset-Converter/pkg/types"
)

// ReadCSV parses possibly-malformed CSV text into a Table, never failing.
//
// The first line decides the delimiter (comma unless a semicolon, tab or
// pipe occurs more often) and the column count. Ragged data rows are
// repaired rather than dropped: surplus fields are merged into the last
// column, short rows are padded with empty strings. Input that yields no
// usable rows parses to an empty table.
func ReadCSV(text string) types.Table {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return types.Table{}
	}

	rows := readRows(trimmed)
	if len(rows) == 0 {
		return types.Table{}
	}
	header := rows[0]
	width := len(header)
	if width == 0 {
		return types.Table{}
	}

	var fixed [][]string
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		switch {
		case len(row) == width:
			fixed = append(fixed, row)
		case len(row) > width:
			merged := strings.Join(row[width-1:], ",")
			fixed = append(fixed, append(append([]string(nil), row[:width-1]...), merged))
		default:
			padded := append([]string(nil), row...)
			for len(padded) < width {
				padded = append(padded, "")
			}
			fixed = append(fixed, padded)
		}
	}
	return types.Table{Columns: header, Rows: fixed}
}

func readRows(text string) [][]string {
	delim := sniffDelimiter(text)

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err == nil {
		return rows
	}
	zap.L().Warn("csv parse failed, falling back to per-line recovery",
		zap.Error(err), zap.String("snippet", snippet(text, 200)))

	// Per-line recovery: parse each line on its own so one broken line
	// cannot poison the rest.
	var out [][]string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lr := csv.NewReader(strings.NewReader(line))
		lr.Comma = delim
		lr.FieldsPerRecord = -1
		lr.LazyQuotes = true
		rec, err := lr.Read()
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func sniffDelimiter(text string) rune {
	line := text
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	best := ','
	bestCount := strings.Count(line, ",")
	for _, c := range []rune{';', '\t', '|'} {
		if n := strings.Count(line, string(c)); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}

func snippet(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
