package analysis

import (
	"strings"

	"resumetric/internal/config"
	"resumetric/internal/types"
)

// Verdict thresholds for the lexical matcher. The semantic analyzer uses its
// own, lower cutoffs (70/50); the two sets drifted apart in the reference
// system and are intentionally not unified.
const (
	strongMatchThreshold   = 75
	moderateMatchThreshold = 55
)

const extraSkillsNote = "Extra skills are treated as strengths, not penalties"

// Matcher computes the rule-based ATS match between a resume and a job
// description.
type Matcher struct {
	vocab       config.VocabularyConfig
	maxFeatures int
}

// NewMatcher creates a matcher from the injected vocabulary. maxFeatures
// bounds the lexical-similarity vocabulary.
func NewMatcher(vocab config.VocabularyConfig, maxFeatures int) *Matcher {
	return &Matcher{vocab: vocab, maxFeatures: maxFeatures}
}

// Match scores resume text against JD text. Missing reference data (no JD
// skills, empty sections) degrades to zero sub-scores and a WEAK MATCH
// verdict; it is never an error.
func (m *Matcher) Match(resumeText, jdText string) types.MatchReport {
	resume := Clean(resumeText, m.vocab.Stopwords)
	jd := Clean(jdText, m.vocab.Stopwords)

	sections := ExtractSections(resume)

	resumeSkills := ExtractSkills(resume, m.vocab.MatchSkills, m.vocab.MatchStacks)
	jdSkills := ExtractSkills(jd, m.vocab.MatchSkills, m.vocab.MatchStacks)

	skillScore := skillMatchScore(resumeSkills, jdSkills)
	projectScore := m.projectRelevanceScore(sections.Projects, jdSkills)
	experienceScore := TFIDFSimilarity(sections.Experience, jd, m.maxFeatures)

	finalScore := Round2((0.5*skillScore + 0.3*projectScore + 0.2*experienceScore) * 100)

	gap := SkillGapDetection(resumeSkills, jdSkills)

	return types.MatchReport{
		CoreSkillsMatched:   gap.Matched,
		MissingSkills:       gap.Missing,
		ExtraSkillsDetected: gap.Extra,
		SkillMatchPercent:   Round2(skillScore * 100),
		ProjectRelevance:    Round2(projectScore * 100),
		ExperienceRelevance: Round2(experienceScore * 100),
		ATSMatchScore:       finalScore,
		Verdict:             matchVerdict(finalScore),
		Note:                extraSkillsNote,
	}
}

// SkillGapDetection computes the set algebra between resume and JD skills.
// The invariants hold by construction: matched∪missing covers the JD skills
// exactly, matched∪extra covers the resume skills exactly, and matched and
// missing are disjoint.
func SkillGapDetection(resumeSkills, jdSkills map[string]struct{}) types.SkillGap {
	matched := make(map[string]struct{})
	missing := make(map[string]struct{})
	extra := make(map[string]struct{})

	for s := range jdSkills {
		if _, ok := resumeSkills[s]; ok {
			matched[s] = struct{}{}
		} else {
			missing[s] = struct{}{}
		}
	}
	for s := range resumeSkills {
		if _, ok := jdSkills[s]; !ok {
			extra[s] = struct{}{}
		}
	}

	return types.SkillGap{
		Matched: SortedSkills(matched),
		Missing: SortedSkills(missing),
		Extra:   SortedSkills(extra),
	}
}

func skillMatchScore(resumeSkills, jdSkills map[string]struct{}) float64 {
	if len(jdSkills) == 0 {
		return 0
	}
	matched := 0
	for s := range jdSkills {
		if _, ok := resumeSkills[s]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(jdSkills))
}

// projectRelevanceScore measures how much of the JD skill set shows up in
// the resume's projects section, with small bonuses for repeated project
// mentions and complexity signals, capped at 1.0.
func (m *Matcher) projectRelevanceScore(projectText string, jdSkills map[string]struct{}) float64 {
	if projectText == "" || len(jdSkills) == 0 {
		return 0
	}

	used := 0
	for s := range jdSkills {
		if strings.Contains(projectText, s) {
			used++
		}
	}
	coverage := float64(used) / float64(len(jdSkills))

	bonus := 0.0
	if strings.Count(projectText, "project") >= 2 {
		bonus += 0.1
	}
	for _, k := range m.vocab.ComplexityKeywords {
		if strings.Contains(projectText, k) {
			bonus += 0.1
			break
		}
	}

	return min(1.0, coverage+bonus)
}

func matchVerdict(score float64) string {
	switch {
	case score >= strongMatchThreshold:
		return "STRONG MATCH"
	case score >= moderateMatchThreshold:
		return "MODERATE MATCH"
	default:
		return "WEAK MATCH"
	}
}
