package services

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Two or more word characters, matching the usual bag-of-words token rule.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize lowercases text and splits it into word tokens of at least two characters.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// TermSpace is the vocabulary and TF-IDF vectors for one set of documents.
// Vectors[i] belongs to the i-th input document and has one weight per
// vocabulary term.
type TermSpace struct {
	Vocabulary []string
	Vectors    [][]float64
}

// Dim returns the number of terms in the space.
func (s *TermSpace) Dim() int {
	return len(s.Vocabulary)
}

// Vectorize builds a fresh TF-IDF space over documents. Term weights are raw
// counts times the smoothed idf ln((1+n)/(1+df))+1, and every vector is scaled
// to unit length. Documents without tokens get a zero vector.
func Vectorize(documents []string) *TermSpace {
	tokenized := make([][]string, len(documents))
	df := make(map[string]int)

	for i, doc := range documents {
		tokens := Tokenize(doc)
		tokenized[i] = tokens

		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	vocabulary := make([]string, 0, len(df))
	for term := range df {
		vocabulary = append(vocabulary, term)
	}
	sort.Strings(vocabulary)

	index := make(map[string]int, len(vocabulary))
	idf := make([]float64, len(vocabulary))
	n := float64(len(documents))
	for i, term := range vocabulary {
		index[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	vectors := make([][]float64, len(documents))
	for i, tokens := range tokenized {
		vec := make([]float64, len(vocabulary))
		for _, tok := range tokens {
			vec[index[tok]]++
		}
		if len(tokens) > 0 {
			floats.Mul(vec, idf)
			if norm := floats.Norm(vec, 2); norm > 0 {
				floats.Scale(1/norm, vec)
			}
		}
		vectors[i] = vec
	}

	return &TermSpace{Vocabulary: vocabulary, Vectors: vectors}
}

// CosineSimilarity returns (a·b)/(‖a‖‖b‖) clamped to [0, 1]. It is 0 when
// either vector has zero norm or the lengths differ.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := floats.Dot(a, b) / (normA * normB)
	switch {
	case sim < 0:
		return 0
	case sim > 1:
		return 1
	}
	return sim
}
