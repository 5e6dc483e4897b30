package analysis

import "strings"

// SemanticDiversity scores how much the retrieved texts differ from
// each other, in [0,1]. It is a lexical proxy for embedding similarity:
// a 0.3-weighted vocabulary-richness term plus a 0.7-weighted pairwise
// term built from Jaccard word overlap and a containment penalty. The
// pairwise loop visits every ordered pair (i, j), i != j, so each
// unordered pair contributes twice; the normalization by n*(n-1)
// matches that deliberately, and changing it shifts the classification
// thresholds downstream.
func SemanticDiversity(texts []string) float64 {
	if len(texts) < 2 {
		return 1.0
	}

	lowered := make([]string, len(texts))
	wordSets := make([]map[string]struct{}, len(texts))
	allWords := make(map[string]struct{})
	totalWords := 0
	for i, text := range texts {
		lowered[i] = strings.ToLower(text)
		words := strings.Fields(lowered[i])
		totalWords += len(words)
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			set[w] = struct{}{}
			allWords[w] = struct{}{}
		}
		wordSets[i] = set
	}

	repeatedPhrases := 0
	similaritySum := 0.0
	for i := range texts {
		for j := range texts {
			if i == j {
				continue
			}
			// One text contained in another is strong repetition.
			if strings.Contains(lowered[j], lowered[i]) || strings.Contains(lowered[i], lowered[j]) {
				repeatedPhrases++
			}
			similaritySum += jaccard(wordSets[i], wordSets[j])
		}
	}

	denom := totalWords
	if denom < 1 {
		denom = 1
	}
	wordDiversity := float64(len(allWords)) / float64(denom)

	pairCount := float64(len(texts) * (len(texts) - 1))
	meanSimilarity := similaritySum / pairCount
	phraseDiversity := 1 - meanSimilarity
	if phraseDiversity < 0 {
		phraseDiversity = 0
	}

	penalty := float64(repeatedPhrases) / pairCount
	if penalty < 0 {
		penalty = 0
	}
	phraseDiversity *= 1 - penalty

	return 0.3*wordDiversity + 0.7*phraseDiversity
}

// jaccard is |a∩b| / |a∪b| over word sets, 0 when both are empty.
func jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for w := range a {
		if _, ok := b[w]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
