package analysis

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"resumetric/internal/config"
	"resumetric/internal/types"
)

var (
	bulletRe       = regexp.MustCompile(`(?:•|-|–|\*|\d+\.)\s*(.+)`)
	bulletMarkerRe = regexp.MustCompile(`(?:•|-|–|\*)`)
	experienceRe   = regexp.MustCompile(`(\d+)\s*(?:years?|months?)`)
)

// ExtractBullets returns the ordered line fragments that follow a bullet
// marker, each fragment running to the end of its line.
func ExtractBullets(text string) []string {
	matches := bulletRe.FindAllStringSubmatch(text, -1)
	bullets := make([]string, 0, len(matches))
	for _, m := range matches {
		bullets = append(bullets, m[1])
	}
	return bullets
}

// ExperienceYears returns the largest integer found in "<N> year(s)" or
// "<N> month(s)" patterns, or 0 when none match. Mixed units are not
// normalized: the max is taken over raw integers regardless of unit. This is
// a known simplification carried over from the model's feature definition.
func ExperienceYears(text string) int {
	maxYears := 0
	for _, m := range experienceRe.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > maxYears {
			maxYears = n
		}
	}
	return maxYears
}

// CountOccurrences sums substring occurrence counts of each phrase in text.
func CountOccurrences(text string, phrases []string) int {
	total := 0
	for _, p := range phrases {
		total += strings.Count(text, p)
	}
	return total
}

// ExtractSkills returns the set of vocabulary skills substring-present in
// text, unioned with skills implied by stack aliases whose alias string is
// substring-present. Expansion is one-directional: a stack mention implies
// its constituent skills, never the reverse.
//
// Matching is intentionally naive substring containment with no tokenization
// or stemming. That trades precision for simplicity and is a known
// false-positive source ("node" matches inside unrelated words). It must not
// be "fixed": the learned predictor was trained on features produced by this
// exact definition.
func ExtractSkills(text string, vocab []string, stacks map[string][]string) map[string]struct{} {
	skills := make(map[string]struct{})
	for _, s := range vocab {
		if strings.Contains(text, s) {
			skills[s] = struct{}{}
		}
	}
	for stack, expanded := range stacks {
		if strings.Contains(text, stack) {
			for _, s := range expanded {
				skills[s] = struct{}{}
			}
		}
	}
	return skills
}

// SortedSkills renders a skill set as a sorted slice for stable output.
func SortedSkills(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Extractor derives the learned model's feature vector from raw text.
type Extractor struct {
	skills      []string
	weakPhrases []string
}

// NewExtractor creates a feature extractor bound to the model's feature
// vocabulary.
func NewExtractor(vocab config.VocabularyConfig) *Extractor {
	return &Extractor{
		skills:      vocab.FeatureSkills,
		weakPhrases: vocab.FeatureWeakPhrases,
	}
}

// Features assembles the ordered feature vector for a text. The field order
// and each field's definition are the contract the model artifact was trained
// against; neither may change without versioning the artifact.
func (e *Extractor) Features(text string) types.FeatureVector {
	text = strings.ToLower(text)

	skillCount := 0
	for _, s := range e.skills {
		if strings.Contains(text, s) {
			skillCount++
		}
	}

	return types.FeatureVector{
		WordCount:       len(strings.Fields(text)),
		SkillCount:      skillCount,
		ProjectMentions: strings.Count(text, "project"),
		BulletCount:     len(bulletMarkerRe.FindAllString(text, -1)),
		ExperienceYears: ExperienceYears(text),
		WeakPhraseCount: CountOccurrences(text, e.weakPhrases),
	}
}
