// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chunk

import "github.com/pdiddy/gazette/pkg/types"

// Chunk is one planned run: a page range and the mode to write it with.
type Chunk struct {
	types.PageRange
	Mode types.WriteMode
}

// Plan splits a document of pageCount pages into consecutive chunks of at
// most size pages. The first chunk starts the table fresh; the rest append.
// A size below 1 uses types.DefaultChunkSize.
func Plan(pageCount, size int) []Chunk {
	if size < 1 {
		size = types.DefaultChunkSize
	}
	var chunks []Chunk
	for start := 1; start <= pageCount; start += size {
		mode := types.ModeAppend
		if start == 1 {
			mode = types.ModeFresh
		}
		chunks = append(chunks, Chunk{
			PageRange: types.PageRange{Start: start, End: min(start+size-1, pageCount)},
			Mode:      mode,
		})
	}
	return chunks
}
