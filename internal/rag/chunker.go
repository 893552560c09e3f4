package rag

// ChunkText splits text into overlapping character windows of at most
// chunkSize runes. Consecutive windows overlap by overlap runes; the final
// window may be shorter and carries no trailing overlap. Together the windows
// cover the whole text with no gaps. Text no longer than chunkSize yields a
// single chunk equal to the whole text.
func ChunkText(text, source string, chunkSize, overlap int) []Chunk {
	if chunkSize <= 0 {
		return nil
	}
	if overlap < 0 {
		overlap = 0
	}
	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	var chunks []Chunk
	index := 0
	for off := 0; off < len(runes); off += step {
		end := off + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, Chunk{
			Text:   string(runes[off:end]),
			Source: source,
			Index:  index,
			Offset: off,
		})
		index++
		if end == len(runes) {
			break
		}
	}
	return chunks
}
