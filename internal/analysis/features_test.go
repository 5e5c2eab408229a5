package analysis

import (
	"reflect"
	"strings"
	"testing"

	"resumetric/internal/config"
)

func TestExtractBullets(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "mixed markers",
			input:    "• Built REST APIs\n- Optimized queries\n* Deployed services",
			expected: []string{"Built REST APIs", "Optimized queries", "Deployed services"},
		},
		{
			name:     "numbered list",
			input:    "1. Designed schema\n2. Implemented cache",
			expected: []string{"Designed schema", "Implemented cache"},
		},
		{
			name:     "no bullets",
			input:    "plain paragraph of text",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractBullets(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ExtractBullets() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestExperienceYears(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{
			name:     "single mention",
			input:    "3 years of backend work",
			expected: 3,
		},
		{
			name:     "max over multiple mentions",
			input:    "2 years at one job and 5 years at another",
			expected: 5,
		},
		{
			name:     "mixed units take the raw max",
			input:    "1 year plus an internship of 6 months",
			expected: 6,
		},
		{
			name:     "no duration",
			input:    "experienced developer",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExperienceYears(tt.input); got != tt.expected {
				t.Errorf("ExperienceYears(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExtractSkills(t *testing.T) {
	vocab := config.DefaultVocabulary()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "direct mentions",
			input:    "react developer who knows mongodb",
			expected: []string{"mongodb", "react"},
		},
		{
			name:     "stack alias expands to constituents",
			input:    "mern stack developer",
			expected: []string{"express", "mongodb", "node", "react"},
		},
		{
			name:     "substring matching is naive",
			input:    "nodejs enthusiast",
			expected: []string{"node", "nodejs"},
		},
		{
			name:     "no matches",
			input:    "chef and food critic",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortedSkills(ExtractSkills(tt.input, vocab.MatchSkills, vocab.MatchStacks))
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ExtractSkills(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExtractSkillsIdempotent(t *testing.T) {
	vocab := config.DefaultVocabulary()

	inputs := []string{
		"react developer who knows mongodb",
		"mern stack developer",
		"nodejs enthusiast",
		"python and machine learning work",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first := SortedSkills(ExtractSkills(input, vocab.MatchSkills, vocab.MatchStacks))
			second := SortedSkills(ExtractSkills(input, vocab.MatchSkills, vocab.MatchStacks))
			if !reflect.DeepEqual(first, second) {
				t.Errorf("repeated extraction differs: %v vs %v", first, second)
			}

			// Extracting from the skill set itself is a fixed point
			again := SortedSkills(ExtractSkills(strings.Join(first, " "), vocab.MatchSkills, vocab.MatchStacks))
			if !reflect.DeepEqual(again, first) {
				t.Errorf("re-extraction over %v = %v, want the same set", first, again)
			}
		})
	}
}

func TestExtractorFeatures(t *testing.T) {
	extractor := NewExtractor(config.DefaultVocabulary())

	text := "skills react python\n- built api project\n- optimized database\n2 years experience worked on things"
	got := extractor.Features(text)

	if got.WordCount != 16 {
		t.Errorf("WordCount = %d, want 16", got.WordCount)
	}
	if got.SkillCount != 3 {
		t.Errorf("SkillCount = %d, want 3 (react, python, api)", got.SkillCount)
	}
	if got.ProjectMentions != 1 {
		t.Errorf("ProjectMentions = %d, want 1", got.ProjectMentions)
	}
	if got.BulletCount != 2 {
		t.Errorf("BulletCount = %d, want 2", got.BulletCount)
	}
	if got.ExperienceYears != 2 {
		t.Errorf("ExperienceYears = %d, want 2", got.ExperienceYears)
	}
	if got.WeakPhraseCount != 1 {
		t.Errorf("WeakPhraseCount = %d, want 1", got.WeakPhraseCount)
	}

	values := got.Values()
	expected := []float64{16, 3, 1, 2, 2, 1}
	if !reflect.DeepEqual(values, expected) {
		t.Errorf("Values() = %v, want %v", values, expected)
	}
}

func TestExtractorFeaturesEmptyInput(t *testing.T) {
	extractor := NewExtractor(config.DefaultVocabulary())

	got := extractor.Features("")
	if !reflect.DeepEqual(got.Values(), []float64{0, 0, 0, 0, 0, 0}) {
		t.Errorf("Features(\"\").Values() = %v, want all zeros", got.Values())
	}
}
