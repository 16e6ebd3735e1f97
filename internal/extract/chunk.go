package extract

import "strings"

// DefaultChunkChars keeps each chunk comfortably inside the model's context.
const DefaultChunkChars = 12000

// Chunk splits text into pieces of at most maxChars bytes, preferring to
// break at the last newline in the window, then the last space, then a hard
// split. Chunks are trimmed and empty pieces dropped.
func Chunk(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultChunkChars
	}
	var chunks []string
	pos := 0
	for pos < len(text) {
		end := pos + maxChars
		if end >= len(text) {
			if c := strings.TrimSpace(text[pos:]); c != "" {
				chunks = append(chunks, c)
			}
			break
		}
		window := text[pos:end]
		split := strings.LastIndexByte(window, '\n')
		if split < 0 {
			split = strings.LastIndexByte(window, ' ')
		}
		if split < 0 {
			split = maxChars - 1
		}
		if c := strings.TrimSpace(text[pos : pos+split+1]); c != "" {
			chunks = append(chunks, c)
		}
		pos += split + 1
	}
	return chunks
}
