package analysis

import (
	"math"
	"sort"
	"strings"
)

// TFIDFSimilarity computes term-weighted cosine similarity between two
// cleaned documents over a unigram+bigram vocabulary bounded to maxFeatures
// terms. The bound is the memory guard: resumes and JDs are user-supplied
// and the vocabulary would otherwise grow with input size.
//
// Weighting follows the common smooth-idf convention,
// idf(t) = ln((1+n)/(1+df(t))) + 1 with n = 2 documents, and vectors are
// L2-normalized before the dot product, so results match the reference
// scorer's vectorizer on the same inputs.
func TFIDFSimilarity(a, b string, maxFeatures int) float64 {
	if a == "" || b == "" {
		return 0
	}

	countsA := ngramCounts(a)
	countsB := ngramCounts(b)
	if len(countsA) == 0 || len(countsB) == 0 {
		return 0
	}

	vocab := boundedVocabulary(countsA, countsB, maxFeatures)

	vecA := tfidfVector(countsA, countsB, vocab)
	vecB := tfidfVector(countsB, countsA, vocab)

	dot := 0.0
	for i := range vecA {
		dot += vecA[i] * vecB[i]
	}
	return dot
}

// ngramCounts tokenizes on whitespace and counts unigrams and bigrams.
func ngramCounts(text string) map[string]int {
	words := strings.Fields(text)
	counts := make(map[string]int, len(words)*2)
	for i, w := range words {
		counts[w]++
		if i+1 < len(words) {
			counts[w+" "+words[i+1]]++
		}
	}
	return counts
}

// boundedVocabulary selects at most maxFeatures terms, preferring the highest
// total count across both documents and breaking ties alphabetically.
func boundedVocabulary(a, b map[string]int, maxFeatures int) []string {
	total := make(map[string]int, len(a)+len(b))
	for t, c := range a {
		total[t] += c
	}
	for t, c := range b {
		total[t] += c
	}

	terms := make([]string, 0, len(total))
	for t := range total {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if total[terms[i]] != total[terms[j]] {
			return total[terms[i]] > total[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if maxFeatures > 0 && len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)
	return terms
}

// tfidfVector builds the L2-normalized tf-idf vector for doc over vocab,
// with other supplying the second document's term presence for idf.
func tfidfVector(doc, other map[string]int, vocab []string) []float64 {
	vec := make([]float64, len(vocab))
	norm := 0.0
	for i, term := range vocab {
		tf := float64(doc[term])
		if tf == 0 {
			continue
		}

		df := 1
		if other[term] > 0 {
			df = 2
		}
		idf := math.Log(3.0/float64(1+df)) + 1

		vec[i] = tf * idf
		norm += vec[i] * vec[i]
	}

	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
