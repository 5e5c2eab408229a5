package analysis

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases and collapses whitespace",
			input:    "  Senior\tGo   Developer\n\nBackend ",
			expected: "senior go developer backend",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "already normalized",
			input:    "react node express",
			expected: "react node express",
		},
		{
			name:     "punctuation passes through",
			input:    "Node.js, Express!",
			expected: "node.js, express!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{
			name:     "over the cap",
			input:    "abcdefgh",
			max:      4,
			expected: "abcd",
		},
		{
			name:     "under the cap",
			input:    "abc",
			max:      10,
			expected: "abc",
		},
		{
			name:     "zero cap leaves text alone",
			input:    "abc",
			max:      0,
			expected: "abc",
		},
		{
			name:     "negative cap leaves text alone",
			input:    "abc",
			max:      -1,
			expected: "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.max); got != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.expected)
			}
		})
	}
}

func TestClean(t *testing.T) {
	stopwords := []string{"the", "is", "a", "and", "with"}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips punctuation and stopwords",
			input:    "The candidate is a Developer, with React and Node!",
			expected: "candidate developer react node",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "only stopwords",
			input:    "the and a",
			expected: "",
		},
		{
			name:     "digits survive",
			input:    "3 years of Go",
			expected: "3 years of go",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input, stopwords); got != tt.expected {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
