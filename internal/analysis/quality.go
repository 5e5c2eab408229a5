package analysis

import (
	"math"
	"regexp"
	"strings"

	"resumetric/internal/config"
	"resumetric/internal/types"
)

var sentenceSplitRe = regexp.MustCompile(`[.!?]`)
var skillTokenSplitRe = regexp.MustCompile(`,|\n`)

// QualityScorer computes the rule-based resume quality composite from five
// independently bounded sub-scores.
type QualityScorer struct {
	weakPhrases   []string
	actionVerbs   []string
	sections      []config.SectionNames
	skillKeywords []string
}

// NewQualityScorer creates a quality scorer from the injected vocabulary.
func NewQualityScorer(vocab config.VocabularyConfig) *QualityScorer {
	return &QualityScorer{
		weakPhrases:   vocab.QualityWeakPhrases,
		actionVerbs:   vocab.ActionVerbs,
		sections:      vocab.RequiredSections,
		skillKeywords: vocab.SectionKeywords("skills"),
	}
}

// Score produces the full quality report for a resume. Bullet quality runs
// on the original text because bullet markers do not survive whitespace
// collapsing; every other sub-score works on the normalized form. Empty
// input degrades to minimum scores rather than failing.
func (q *QualityScorer) Score(resumeText string) types.QualityReport {
	clean := Normalize(resumeText)

	sectionScore := q.sectionCompletenessScore(clean)
	grammarScore := q.grammarQualityScore(clean)
	bulletScore := q.bulletQualityScore(resumeText)
	skillScore := q.skillStructureScore(clean)
	formatScore := formattingScore(clean)

	finalScore := 0.25*sectionScore +
		0.25*grammarScore +
		0.20*bulletScore +
		0.15*skillScore +
		0.15*formatScore

	return types.QualityReport{
		ResumeScore:         Round2(finalScore),
		SectionCompleteness: Round2(sectionScore),
		GrammarQuality:      Round2(grammarScore),
		BulletQuality:       Round2(bulletScore),
		SkillStructure:      Round2(skillScore),
		FormattingQuality:   Round2(formatScore),
		Interpretation:      interpretScore(finalScore),
	}
}

// interpretScore maps a composite to its human-readable bucket. Thresholds
// are inclusive at the stated lower bound.
func interpretScore(score float64) string {
	switch {
	case score >= 85:
		return "Excellent resume quality"
	case score >= 70:
		return "Good resume with minor improvements needed"
	case score >= 55:
		return "Average resume, needs improvement"
	default:
		return "Poor resume quality"
	}
}

func (q *QualityScorer) sectionCompletenessScore(text string) float64 {
	found := 0
	for _, s := range q.sections {
		for _, k := range s.Keywords {
			if strings.Contains(text, k) {
				found++
				break
			}
		}
	}
	return float64(found) / float64(len(q.sections)) * 100
}

// grammarQualityScore starts at 100 and subtracts capped penalties for
// overlong sentences and weak phrasing. The 50 floor is deliberate: grammar
// heuristics are too coarse to fully fail a resume.
func (q *QualityScorer) grammarQualityScore(text string) float64 {
	var sentences []string
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}

	totalWords := 0
	for _, s := range sentences {
		totalWords += len(strings.Fields(s))
	}
	avgSentenceLen := float64(totalWords) / math.Max(float64(len(sentences)), 1)

	weakPhraseCount := CountOccurrences(text, q.weakPhrases)

	score := 100.0
	if avgSentenceLen > 28 {
		score -= 10
	}
	if weakPhraseCount > 3 {
		score -= 15
	}

	return math.Max(score, 50)
}

func (q *QualityScorer) bulletQualityScore(originalText string) float64 {
	bullets := ExtractBullets(originalText)
	if len(bullets) == 0 {
		return 60
	}

	good := 0
	for _, bullet := range bullets {
		bullet = strings.ToLower(bullet)
		for _, verb := range q.actionVerbs {
			if strings.Contains(bullet, verb) {
				good++
				break
			}
		}
	}

	return float64(good) / float64(len(bullets)) * 100
}

// skillStructureScore inspects a bounded window after the first skills
// keyword and counts comma-separated tokens. The step function is
// deliberately non-monotonic: both sparse and bloated skill lists are
// penalized, and moderate lists all score the same.
func (q *QualityScorer) skillStructureScore(text string) float64 {
	skillSection := ""
	for _, key := range q.skillKeywords {
		if idx := strings.Index(text, key); idx >= 0 {
			skillSection = text[idx+len(key):]
			if len(skillSection) > 400 {
				skillSection = skillSection[:400]
			}
			break
		}
	}

	count := 0
	for _, tok := range skillTokenSplitRe.Split(skillSection, -1) {
		if len(strings.TrimSpace(tok)) > 1 {
			count++
		}
	}

	switch {
	case count < 5:
		return 50
	case count > 25:
		return 65
	default:
		return 90
	}
}

func formattingScore(text string) float64 {
	wordCount := len(strings.Fields(text))

	switch {
	case wordCount < 300:
		return 60
	case wordCount > 1200:
		return 65
	default:
		return 90
	}
}

// Round2 rounds to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
