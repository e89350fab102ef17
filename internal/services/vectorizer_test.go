package services

import (
	"math"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "lowercases", text: "Python Developer", want: []string{"python", "developer"}},
		{name: "drops single characters", text: "C++ a Go x", want: []string{"go"}},
		{name: "keeps digits and underscores", text: "k8s snake_case 2024", want: []string{"k8s", "snake_case", "2024"}},
		{name: "punctuation splits", text: "go,rust;zig", want: []string{"go", "rust", "zig"}},
		{name: "unicode letters", text: "Café Ünïcode", want: []string{"café", "ünïcode"}},
		{name: "combining marks split words", text: "nai\u0308ve cafe\u0301", want: []string{"nai", "ve", "cafe"}},
		{name: "empty", text: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestVectorizeVocabulary(t *testing.T) {
	space := Vectorize([]string{"zeta alpha alpha", "beta alpha", ""})

	want := []string{"alpha", "beta", "zeta"}
	if !reflect.DeepEqual(space.Vocabulary, want) {
		t.Fatalf("expected vocabulary %v, got %v", want, space.Vocabulary)
	}
	if space.Dim() != 3 {
		t.Fatalf("expected dim 3, got %d", space.Dim())
	}
	if len(space.Vectors) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(space.Vectors))
	}
	for i, vec := range space.Vectors {
		if len(vec) != space.Dim() {
			t.Fatalf("vector %d: expected length %d, got %d", i, space.Dim(), len(vec))
		}
	}
}

func TestVectorizeWeights(t *testing.T) {
	space := Vectorize([]string{"go rust", "go"})

	// n=2: idf(go)=ln(3/3)+1, idf(rust)=ln(3/2)+1
	idfGo := 1.0
	idfRust := math.Log(1.5) + 1
	norm := math.Sqrt(idfGo*idfGo + idfRust*idfRust)

	want := [][]float64{
		{idfGo / norm, idfRust / norm},
		{1, 0},
	}
	for i := range want {
		for j := range want[i] {
			if math.Abs(space.Vectors[i][j]-want[i][j]) > 1e-12 {
				t.Fatalf("vector %d term %d: expected %f, got %f", i, j, want[i][j], space.Vectors[i][j])
			}
		}
	}
}

func TestVectorizeUnitAndZeroVectors(t *testing.T) {
	space := Vectorize([]string{"backend engineer golang golang", "", "!!"})

	var sum float64
	for _, w := range space.Vectors[0] {
		sum += w * w
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Fatalf("expected unit vector, got squared norm %f", sum)
	}

	for _, i := range []int{1, 2} {
		for _, w := range space.Vectors[i] {
			if w != 0 {
				t.Fatalf("expected zero vector for document %d, got %v", i, space.Vectors[i])
			}
		}
	}
}

func TestVectorizeFreshVocabularyPerCall(t *testing.T) {
	Vectorize([]string{"alpha gamma"})
	space := Vectorize([]string{"beta"})

	if !reflect.DeepEqual(space.Vocabulary, []string{"beta"}) {
		t.Fatalf("expected vocabulary from this call only, got %v", space.Vocabulary)
	}
}

func TestVectorizeEmptyVocabulary(t *testing.T) {
	space := Vectorize([]string{"", "a b c"})

	if space.Dim() != 0 {
		t.Fatalf("expected empty vocabulary, got %v", space.Vocabulary)
	}
	if CosineSimilarity(space.Vectors[0], space.Vectors[1]) != 0 {
		t.Fatal("expected zero similarity in an empty space")
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{name: "identical", a: []float64{1, 2, 3}, b: []float64{1, 2, 3}, want: 1},
		{name: "scaled", a: []float64{1, 1}, b: []float64{3, 3}, want: 1},
		{name: "orthogonal", a: []float64{1, 0}, b: []float64{0, 1}, want: 0},
		{name: "partial", a: []float64{1, 0}, b: []float64{1, 1}, want: 1 / math.Sqrt2},
		{name: "zero vector", a: []float64{0, 0}, b: []float64{1, 1}, want: 0},
		{name: "opposite clamps to zero", a: []float64{1, 0}, b: []float64{-1, 0}, want: 0},
		{name: "length mismatch", a: []float64{1}, b: []float64{1, 0}, want: 0},
		{name: "empty", a: nil, b: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("expected %f, got %f", tt.want, got)
			}
		})
	}
}
