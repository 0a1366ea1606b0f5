package textutil

import "unicode/utf8"

// Chunk splits text into consecutive pieces of at most width runes.
// It never breaks inside a multi-byte character.
func Chunk(text string, width int) []string {
	if text == "" {
		return nil
	}
	if width <= 0 || utf8.RuneCountInString(text) <= width {
		return []string{text}
	}
	chunks := make([]string, 0, utf8.RuneCountInString(text)/width+1)
	start, count := 0, 0
	for idx := range text {
		if count == width {
			chunks = append(chunks, text[start:idx])
			start, count = idx, 0
		}
		count++
	}
	chunks = append(chunks, text[start:])
	return chunks
}
