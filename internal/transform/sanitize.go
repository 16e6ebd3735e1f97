package transform

import "strings"

// Sanitize fills structural defaults in a merged entity document so that
// near-miss model output gets a chance to pass schema validation. Facts are
// never changed, only missing structure.
func Sanitize(doc map[string]any) map[string]any {
	if doc == nil {
		doc = map[string]any{}
	}
	ensureArr(doc, "entities")
	ensureArr(doc, "relationships")

	// fix entities[].id/type
	if ents, ok := doc["entities"].([]any); ok {
		for i, v := range ents {
			m, ok := v.(map[string]any)
			if !ok {
				continue
			}
			if t := strOrEmpty(m["type"]); t == "" || t == "null" {
				m["type"] = "entity"
			}
			if strOrEmpty(m["id"]) == "" {
				if n := strOrEmpty(m["name"]); n != "" {
					m["id"] = slugID(n)
				}
			}
			ents[i] = m
		}
		doc["entities"] = ents
	}

	// normalize relationships[].type
	if rels, ok := doc["relationships"].([]any); ok {
		for i, v := range rels {
			m, ok := v.(map[string]any)
			if !ok {
				continue
			}
			switch strings.ToLower(strOrEmpty(m["type"])) {
			case "", "null":
				m["type"] = "references"
			case "fk", "foreign_key", "foreign key":
				m["type"] = "references"
			}
			rels[i] = m
		}
		doc["relationships"] = rels
	}
	return doc
}

func ensureArr(m map[string]any, k string) {
	if _, ok := m[k]; !ok {
		m[k] = []any{}
	}
}

func strOrEmpty(v any) string { s, _ := v.(string); return s }

// slugID reduces a label to the id charset the schema allows.
func slugID(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "entity"
	}
	return b.String()
}
