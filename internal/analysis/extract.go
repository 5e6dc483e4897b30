package analysis

import (
	"fmt"
	"sort"
	"strconv"

	"ragdebug/internal/domain"
)

// partialChunk collects the fields of one chunk ordinal while scanning.
type partialChunk struct {
	text     string
	score    float64
	hasText  bool
	hasScore bool
}

// ExtractChunks parses retrieved context chunks out of a flat feature
// map. The scan is best-effort: malformed keys and uncastable values
// are skipped, and an ordinal missing either its text or its score is
// dropped entirely. The result is ordered by ascending ordinal,
// regardless of map iteration order.
func ExtractChunks(features map[string]any) []domain.RetrievedChunk {
	partials := make(map[int]*partialChunk)
	for key, value := range features {
		ck, ok := parseChunkKey(key)
		if !ok {
			continue
		}
		if value == nil {
			continue
		}
		p := partials[ck.ordinal]
		if p == nil {
			p = &partialChunk{}
			partials[ck.ordinal] = p
		}
		switch ck.field {
		case fieldText:
			p.text = asText(value)
			p.hasText = true
		case fieldScore:
			score, ok := asFloat(value)
			if !ok {
				continue
			}
			p.score = score
			p.hasScore = true
		}
	}

	ordinals := make([]int, 0, len(partials))
	for ordinal, p := range partials {
		if p.hasText && p.hasScore {
			ordinals = append(ordinals, ordinal)
		}
	}
	sort.Ints(ordinals)

	chunks := make([]domain.RetrievedChunk, 0, len(ordinals))
	for _, ordinal := range ordinals {
		p := partials[ordinal]
		chunks = append(chunks, domain.RetrievedChunk{Text: p.text, Score: p.score})
	}
	return chunks
}

// asText stringifies any non-nil feature value.
func asText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// asFloat coerces the numeric shapes a feature value can arrive in,
// including numeric strings from loosely typed stores.
func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
