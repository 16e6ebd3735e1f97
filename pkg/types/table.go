package types

import (
	"encoding/csv"
	"strings"
)

// Table is tabular data parsed from an LLM response: a header of column
// names plus data rows. Rows are always as wide as Columns.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

func (t Table) Empty() bool { return len(t.Columns) == 0 && len(t.Rows) == 0 }

// CSV renders the table as comma-separated text with a header row.
func (t Table) CSV() string {
	if t.Empty() {
		return ""
	}
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write(t.Columns)
	for _, row := range t.Rows {
		_ = w.Write(row)
	}
	w.Flush()
	return sb.String()
}

// Example is one few-shot pair: sample input text and the JSON it should map to.
type Example struct {
	Input  string
	Output string
}

// ConvertRequest carries the caller-supplied settings for one conversion.
type ConvertRequest struct {
	TableNames        []string
	Context           string
	Relationships     string
	AdditionalContext string
	ManualContext     string
	CSVExamples       []string
	Examples          []Example
}

// ConvertResult is the output of a full conversion run.
type ConvertResult struct {
	Document string           // merged (and possibly repaired) JSON document
	Tables   map[string]Table // table name -> parsed table
}
