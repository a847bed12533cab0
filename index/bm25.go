// Package index builds and queries the lexical relevance index over a
// corpus snapshot's chunks. The index is a pure function of the chunk
// token sequences at build time: identical inputs always yield
// identical scores for identical queries, which is what lets external
// caches key a built index on a content fingerprint. Once built, the
// index is immutable and safe for concurrent read-only queries; any
// corpus change requires a full rebuild.
package index

// BM25Index scores chunks against queries with the Okapi BM25 ranking
// function: per-term inverse document frequency, term-frequency
// saturation controlled by k1, and document-length normalization
// relative to the mean chunk length controlled by b.
type BM25Index struct {
	k1 float64
	b  float64

	termFreqs []map[string]int // per-chunk term frequency
	docLens   []int            // per-chunk token count
	avgDocLen float64
	docFreq   map[string]int // number of chunks containing each term
}

// Build constructs an index from the ordered token sequences of the
// corpus chunks, one sequence per chunk. Build cost is linear in the
// total token count. Building from zero sequences is valid and yields
// an index whose queries score nothing.
func Build(tokenSeqs [][]string, k1, b float64) *BM25Index {
	idx := &BM25Index{
		k1:        k1,
		b:         b,
		termFreqs: make([]map[string]int, len(tokenSeqs)),
		docLens:   make([]int, len(tokenSeqs)),
		docFreq:   make(map[string]int),
	}

	totalLen := 0
	for i, tokens := range tokenSeqs {
		freqs := make(map[string]int, len(tokens))
		for _, t := range tokens {
			freqs[t]++
		}
		idx.termFreqs[i] = freqs
		idx.docLens[i] = len(tokens)
		totalLen += len(tokens)

		for term := range freqs {
			idx.docFreq[term]++
		}
	}
	if len(tokenSeqs) > 0 {
		idx.avgDocLen = float64(totalLen) / float64(len(tokenSeqs))
	}
	return idx
}

// Len returns the number of chunks in the index.
func (idx *BM25Index) Len() int {
	return len(idx.termFreqs)
}

// Scores returns a non-negative relevance score for every chunk in the
// corpus, zero-scoring chunks included, in corpus order. Cost is
// O(chunks × query terms) per call and the method performs no I/O, so
// independent queries may run concurrently.
func (idx *BM25Index) Scores(queryTokens []string) []float64 {
	scores := make([]float64, len(idx.termFreqs))
	if len(queryTokens) == 0 || len(idx.termFreqs) == 0 {
		return scores
	}

	for _, term := range queryTokens {
		df := idx.docFreq[term]
		if df == 0 {
			continue
		}
		termIDF := idf(len(idx.termFreqs), df)

		for i, freqs := range idx.termFreqs {
			tf := float64(freqs[term])
			if tf == 0 {
				continue
			}
			norm := 1 - idx.b + idx.b*(float64(idx.docLens[i])/idx.avgDocLen)
			scores[i] += termIDF * (tf * (idx.k1 + 1)) / (tf + idx.k1*norm)
		}
	}
	return scores
}
