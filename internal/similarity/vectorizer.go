package similarity

import (
	"math"
	"sort"
)

// DefaultMaxFeatures caps the fitted vocabulary.
const DefaultMaxFeatures = 1000

// vector is a sparse term-index -> weight map.
type vector map[int]float64

// vectorizer is a fitted TF-IDF model.
type vectorizer struct {
	vocab map[string]int
	idf   []float64
}

// fitTransform learns the vocabulary and idf weights from docs and returns
// the L2-normalized document vectors.
func fitTransform(docs []string, maxFeatures int) (*vectorizer, []vector) {
	analyzed := make([][]string, len(docs))
	termFreq := make(map[string]int)
	docFreq := make(map[string]int)
	for i, d := range docs {
		terms := analyze(d)
		analyzed[i] = terms
		seen := make(map[string]bool, len(terms))
		for _, t := range terms {
			termFreq[t]++
			if !seen[t] {
				seen[t] = true
				docFreq[t]++
			}
		}
	}

	terms := make([]string, 0, len(termFreq))
	for t := range termFreq {
		terms = append(terms, t)
	}
	// Keep the most frequent terms, ties by term.
	sort.Slice(terms, func(i, j int) bool {
		if termFreq[terms[i]] != termFreq[terms[j]] {
			return termFreq[terms[i]] > termFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if maxFeatures > 0 && len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	v := &vectorizer{
		vocab: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}
	n := float64(len(docs))
	for i, t := range terms {
		v.vocab[t] = i
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}

	vectors := make([]vector, len(docs))
	for i, a := range analyzed {
		vectors[i] = v.weigh(a)
	}
	return v, vectors
}

// transform maps text into the fitted space. Unknown terms are dropped.
func (v *vectorizer) transform(text string) vector {
	return v.weigh(analyze(text))
}

func (v *vectorizer) weigh(terms []string) vector {
	vec := make(vector)
	for _, t := range terms {
		if idx, ok := v.vocab[t]; ok {
			vec[idx]++
		}
	}
	var norm float64
	for idx, tf := range vec {
		w := tf * v.idf[idx]
		vec[idx] = w
		norm += w * w
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for idx := range vec {
		vec[idx] /= norm
	}
	return vec
}

// cosine assumes both vectors are L2-normalized.
func cosine(a, b vector) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	var dot float64
	for idx, w := range a {
		dot += w * b[idx]
	}
	switch {
	case dot < 0:
		return 0
	case dot > 1:
		return 1
	}
	return dot
}
