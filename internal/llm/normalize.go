package llm

import "strings"

// Normalize coerces common model output quirks into raw JSON text:
// markdown code fences are stripped and any prose before the first {/[ or
// after the last }/] is dropped. Input that never looked like JSON comes
// back trimmed but otherwise untouched.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = ""
		}
		if end := strings.LastIndex(s, "```"); end >= 0 {
			s = s[:end]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return s
	}
	s = s[start:]

	last := strings.LastIndex(s, "}")
	if i := strings.LastIndex(s, "]"); i > last {
		last = i
	}
	if last >= 0 && last+1 < len(s) {
		s = s[:last+1]
	}
	return strings.TrimSpace(s)
}
