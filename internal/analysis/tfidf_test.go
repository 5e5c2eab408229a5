package analysis

import (
	"math"
	"testing"
)

func TestTFIDFSimilarityIdenticalDocuments(t *testing.T) {
	doc := "built rest apis node express deployed aws"
	got := TFIDFSimilarity(doc, doc, 500)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("similarity of identical documents = %v, want 1.0", got)
	}
}

func TestTFIDFSimilarityDisjointDocuments(t *testing.T) {
	got := TFIDFSimilarity("alpha beta gamma", "delta epsilon zeta", 500)
	if got != 0 {
		t.Errorf("similarity of disjoint documents = %v, want 0", got)
	}
}

func TestTFIDFSimilarityEmptyInputs(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{name: "both empty", a: "", b: ""},
		{name: "first empty", a: "", b: "react node"},
		{name: "second empty", a: "react node", b: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TFIDFSimilarity(tt.a, tt.b, 500); got != 0 {
				t.Errorf("TFIDFSimilarity(%q, %q) = %v, want 0", tt.a, tt.b, got)
			}
		})
	}
}

func TestTFIDFSimilaritySymmetry(t *testing.T) {
	a := "developed node services with mongodb storage"
	b := "node developer mongodb experience required"

	ab := TFIDFSimilarity(a, b, 500)
	ba := TFIDFSimilarity(b, a, 500)
	if math.Abs(ab-ba) > 1e-12 {
		t.Errorf("similarity is asymmetric: %v vs %v", ab, ba)
	}
	if ab <= 0 || ab >= 1 {
		t.Errorf("similarity of overlapping documents = %v, want within (0,1)", ab)
	}
}

func TestTFIDFSimilarityPartialOverlapOrdering(t *testing.T) {
	jd := "node mongodb express backend"
	closer := "node mongodb express backend developer"
	farther := "python data science pipelines node"

	c := TFIDFSimilarity(closer, jd, 500)
	f := TFIDFSimilarity(farther, jd, 500)
	if c <= f {
		t.Errorf("closer document scored %v, farther scored %v, want closer > farther", c, f)
	}
}

func TestTFIDFSimilarityBoundedVocabulary(t *testing.T) {
	a := "one two three four five six seven eight nine ten"
	b := "one two three apples pears plums"

	got := TFIDFSimilarity(a, b, 4)
	if got < 0 || got > 1 {
		t.Errorf("similarity with tiny vocabulary = %v, want within [0,1]", got)
	}
}
