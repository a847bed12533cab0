package index

import "math"

// idf calculates the inverse document frequency for a term.
// IDF = ln(1 + (N - df + 0.5) / (df + 0.5)) where N = total chunks,
// df = chunks containing the term. The +1 inside the logarithm keeps
// every IDF strictly positive, so scores stay non-negative even for
// terms present in most chunks.
func idf(totalDocs, docFreq int) float64 {
	n := float64(totalDocs)
	df := float64(docFreq)
	return math.Log(1 + (n-df+0.5)/(df+0.5))
}
