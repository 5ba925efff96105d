// Package chunker splits raw document text into overlapping fixed-size
// segments suitable for embedding.
package chunker

import "strings"

const (
	// DefaultChunkSize is the maximum chunk length in characters.
	DefaultChunkSize = 800
	// DefaultOverlap is how many trailing characters of one chunk reappear
	// at the start of the next.
	DefaultOverlap = 150
)

// Chunk splits text into windows of at most size characters, consecutive
// windows overlapping by up to overlap characters. Whitespace runs are
// collapsed to single spaces before splitting. For a window that does not
// reach the end of the text, the cut backs off to the last space in the
// window, but only when that space falls past the window's midpoint, so
// chunks avoid ending mid-word without degenerating into tiny fragments.
// Empty or whitespace-only input yields no chunks.
func Chunk(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size - 1
	}

	normalized := strings.Join(strings.Fields(text), " ")
	if normalized == "" {
		return nil
	}

	runes := []rune(normalized)
	var chunks []string

	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			end = len(runes)
		} else {
			// Back off to a word boundary, but never before the midpoint.
			for i := end - 1; i > start+size/2; i-- {
				if runes[i] == ' ' {
					end = i
					break
				}
			}
		}

		if piece := strings.TrimSpace(string(runes[start:end])); piece != "" {
			chunks = append(chunks, piece)
		}

		if end >= len(runes) {
			break
		}

		next := end - overlap
		// The loop must always advance; end > start+size/2 guarantees this
		// for the default parameters, the guard covers degenerate ones.
		if next <= start {
			next = start + 1
		}
		start = next
	}

	return chunks
}
