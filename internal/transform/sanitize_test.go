package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeNilDocument(t *testing.T) {
	doc := Sanitize(nil)
	assert.Equal(t, []any{}, doc["entities"])
	assert.Equal(t, []any{}, doc["relationships"])
}

func TestSanitizeDefaultsCollections(t *testing.T) {
	doc := Sanitize(map[string]any{"entities": []any{}})
	assert.Contains(t, doc, "relationships")
}

func TestSanitizeEntityDefaults(t *testing.T) {
	doc := Sanitize(map[string]any{
		"entities": []any{
			map[string]any{"name": "Order Items"},
			map[string]any{"id": "x", "type": "null", "name": "X"},
		},
	})

	ents := doc["entities"].([]any)
	first := ents[0].(map[string]any)
	assert.Equal(t, "entity", first["type"])
	assert.Equal(t, "order-items", first["id"])

	second := ents[1].(map[string]any)
	assert.Equal(t, "entity", second["type"])
	assert.Equal(t, "x", second["id"])
}

func TestSanitizeRelationshipTypes(t *testing.T) {
	doc := Sanitize(map[string]any{
		"relationships": []any{
			map[string]any{"source": "a", "target": "b"},
			map[string]any{"source": "a", "target": "b", "type": "FK"},
			map[string]any{"source": "a", "target": "b", "type": "contains"},
		},
	})

	rels := doc["relationships"].([]any)
	require.Len(t, rels, 3)
	assert.Equal(t, "references", rels[0].(map[string]any)["type"])
	assert.Equal(t, "references", rels[1].(map[string]any)["type"])
	assert.Equal(t, "contains", rels[2].(map[string]any)["type"])
}

func TestSlugID(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Order Items", "order-items"},
		{"  Trimmed  ", "trimmed"},
		{"weird!@#chars", "weirdchars"},
		{"", "entity"},
		{"!!!", "entity"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slugID(tt.in), "slugID(%q)", tt.in)
	}
}
