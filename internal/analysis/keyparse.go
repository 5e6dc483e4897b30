package analysis

import (
	"strconv"
	"strings"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldScore
)

// chunkKey is the parsed form of a feature key that addresses one field
// of one retrieved chunk.
type chunkKey struct {
	ordinal int
	field   fieldKind
}

// parseChunkKey recognizes the two key shapes produced by the feature
// pipeline: namespaced ("retrieved_context.chunk_1_text") and bare
// ("chunk_1_text"). Parsing is best-effort: any key that does not match
// the shape is rejected, never an error.
func parseChunkKey(key string) (chunkKey, bool) {
	if !strings.Contains(key, "chunk") {
		return chunkKey{}, false
	}
	if !strings.Contains(key, "text") && !strings.Contains(key, "score") {
		return chunkKey{}, false
	}

	// Namespaced keys carry the chunk segment after the first dot.
	segment := key
	if i := strings.Index(key, "."); i >= 0 {
		rest := key[i+1:]
		if rest != "" {
			segment = rest
		}
	}

	parts := strings.Split(segment, "_")
	if len(parts) < 2 || parts[0] != "chunk" {
		return chunkKey{}, false
	}
	ordinal, err := strconv.Atoi(parts[1])
	if err != nil {
		return chunkKey{}, false
	}

	switch {
	case strings.HasSuffix(key, "_text"):
		return chunkKey{ordinal: ordinal, field: fieldText}, true
	case strings.HasSuffix(key, "_score"):
		return chunkKey{ordinal: ordinal, field: fieldScore}, true
	}
	return chunkKey{}, false
}
