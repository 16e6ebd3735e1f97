package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Mock is an offline Generator so the service (and its tests) can run
// without a model. JSON calls return a minimal schema-valid document built
// from the prompt's text chunk; text calls answer the CSV-tables prompt with
// header-only marker-delimited tables for each requested name.
type Mock struct{}

var (
	mockChunkRe  = regexp.MustCompile("(?s)PDF TEXT CHUNK (\\d+)/\\d+:\n```text\n(.*?)\n```")
	mockTablesRe = regexp.MustCompile(`The required table names are: (.*?)\.\n`)
)

func (Mock) GenerateJSON(_ context.Context, prompt string) (string, error) {
	id := "chunk-1"
	name := "Chunk 1"
	if m := mockChunkRe.FindStringSubmatch(prompt); m != nil {
		id = "chunk-" + m[1]
		name = "Chunk " + m[1]
	}
	doc := map[string]any{
		"entities": []any{
			map[string]any{
				"id":   id,
				"type": "document-section",
				"name": name,
			},
		},
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (Mock) Generate(_ context.Context, prompt string) (string, error) {
	m := mockTablesRe.FindStringSubmatch(prompt)
	if m == nil {
		return "mock response", nil
	}
	var sb strings.Builder
	for _, name := range strings.Split(m[1], ", ") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		fmt.Fprintf(&sb, "=== START OF TABLE: %s ===\n", name)
		sb.WriteString("id,name\n")
		fmt.Fprintf(&sb, "=== END OF TABLE: %s ===\n", name)
	}
	return sb.String(), nil
}
