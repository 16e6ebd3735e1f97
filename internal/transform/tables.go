package transform

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/glp500/Semi-Structured-Dataset-Converter/pkg/types"
)

// Marker convention the CSV prompt instructs the model to follow. A segment
// only counts when the end marker repeats the start marker's name exactly.
const (
	tableStartPrefix = "=== START OF TABLE: "
	tableEndPrefix   = "=== END OF TABLE: "
	markerSuffix     = " ==="
)

var startMarker = regexp.MustCompile(`(?s)=== START OF TABLE: (.*?) ===\n`)

// ParseTables splits the combined CSV response text into named segments and
// parses each body with the repair reader.
//
// The scan is left to right and non-overlapping. Each start marker is closed
// by the nearest end marker carrying the identical name; an end marker with a
// different name is just part of the body. A start marker that is never
// closed produces no segment and no error. Empty bodies still yield entries
// (with empty tables), and a repeated table name keeps only the last
// segment's content. Names are whitespace-trimmed when used as keys.
func ParseTables(text string) map[string]types.Table {
	tables := map[string]types.Table{}
	rest := text
	for {
		loc := startMarker.FindStringSubmatchIndex(rest)
		if loc == nil {
			break
		}
		name := rest[loc[2]:loc[3]]
		after := rest[loc[1]:]
		closing := "\n" + tableEndPrefix + name + markerSuffix
		end := strings.Index(after, closing)
		if end < 0 {
			zap.L().Warn("table start marker without matching end marker",
				zap.String("table", name))
			rest = after
			continue
		}
		tables[strings.TrimSpace(name)] = ReadCSV(after[:end])
		rest = after[end+len(closing):]
	}
	return tables
}
