package chunker

import "strings"

// Split cuts text into fixed-size character windows for embedding.
//
// Windows advance by max(end-overlap, end): with a non-negative overlap
// each window starts where the previous one ended, so consecutive
// windows do not overlap. Each window is trimmed and whitespace-only
// windows are dropped; a trailing window shorter than chunkSize is kept
// when non-empty. Empty input yields nil.
func Split(text string, chunkSize int, overlap int) []string {
	if chunkSize <= 0 {
		return nil
	}

	var chunks []string
	runes := []rune(text)
	totalLen := len(runes)

	start := 0
	for start < totalLen {
		end := start + chunkSize
		if end > totalLen {
			end = totalLen
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := end - overlap
		if next < end {
			next = end
		}
		start = next
	}

	return chunks
}
