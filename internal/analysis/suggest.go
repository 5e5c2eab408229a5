package analysis

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"resumetric/internal/config"
	"resumetric/internal/types"
)

var jdYearsRe = regexp.MustCompile(`(\d+)\+?\s*years?`)

const bulletRewriteTemplate = "Rewrite with action verb + technology + outcome. " +
	"Example: 'Developed REST APIs using Node.js and Express.js.'"

// Advisor generates categorized, rule-driven improvement suggestions for a
// resume against a job description. Each category carries a deterministic
// fallback message when nothing is wrong, so callers always have something
// to show.
type Advisor struct {
	vocab config.VocabularyConfig
}

// NewAdvisor creates an advisor from the injected vocabulary.
func NewAdvisor(vocab config.VocabularyConfig) *Advisor {
	return &Advisor{vocab: vocab}
}

// Suggest builds the full improvement report. Pure function of its inputs
// plus the advisor's fixed tables.
func (a *Advisor) Suggest(resumeText, jdText string) types.ImprovementReport {
	cleanResume := Normalize(resumeText)
	cleanJD := Normalize(jdText)

	missingSkills := a.missingSkills(cleanResume, cleanJD)

	critical := a.missingSectionSuggestions(cleanResume)
	critical = append(critical, a.softSectionSuggestions(cleanResume)...)
	critical = append(critical, a.experienceRequirementSuggestions(cleanResume, cleanJD)...)

	return types.ImprovementReport{
		CriticalImprovements:    critical,
		SkillGapSuggestions:     skillGapSuggestions(missingSkills),
		BulletPointImprovements: a.weakBulletSuggestions(resumeText),
		GrammarTips:             a.grammarSuggestions(cleanResume),
		SkillSectionTips:        a.skillSectionSuggestions(cleanResume),
		ProjectSectionTips:      a.projectSectionSuggestions(cleanResume),
		DetectedMissingSkills:   missingSkills,
	}
}

// missingSkills computes JD skills absent from the resume using the
// suggestion engine's own (wider) skill vocabulary.
func (a *Advisor) missingSkills(cleanResume, cleanJD string) []string {
	resumeSkills := ExtractSkills(cleanResume, a.vocab.SuggestionSkills, a.vocab.SuggestionStacks)
	jdSkills := ExtractSkills(cleanJD, a.vocab.SuggestionSkills, a.vocab.SuggestionStacks)

	missing := make(map[string]struct{})
	for s := range jdSkills {
		if _, ok := resumeSkills[s]; !ok {
			missing[s] = struct{}{}
		}
	}
	return SortedSkills(missing)
}

func (a *Advisor) missingSectionSuggestions(text string) []string {
	var suggestions []string
	for _, section := range a.vocab.RequiredSections {
		present := false
		for _, k := range section.Keywords {
			if strings.Contains(text, k) {
				present = true
				break
			}
		}
		if !present {
			suggestions = append(suggestions,
				fmt.Sprintf("Add a '%s' section to improve resume completeness.", capitalize(section.Name)))
		}
	}
	return suggestions
}

// softSectionSuggestions flags a summary that exists but is too thin to
// carry its weight.
func (a *Advisor) softSectionSuggestions(text string) []string {
	var tips []string
	if idx := strings.Index(text, "summary"); idx >= 0 {
		block := text[idx+len("summary"):]
		if len(block) > 300 {
			block = block[:300]
		}
		if len(strings.Fields(block)) < 40 {
			tips = append(tips,
				"Expand your summary to 2-3 lines highlighting skills and experience.")
		}
	}
	return tips
}

func (a *Advisor) experienceRequirementSuggestions(cleanResume, cleanJD string) []string {
	var suggestions []string

	jdYears := 0
	if m := jdYearsRe.FindStringSubmatch(cleanJD); m != nil {
		jdYears, _ = strconv.Atoi(m[1])
	}
	resumeYears := ExperienceYears(cleanResume)

	if jdYears > 0 && resumeYears < jdYears {
		suggestions = append(suggestions, fmt.Sprintf(
			"The job description requires %d+ years of experience, "+
				"but your resume does not clearly demonstrate this. "+
				"Add internship, freelance, or professional experience with duration.", jdYears))
	}

	return suggestions
}

func skillGapSuggestions(missingSkills []string) []string {
	if len(missingSkills) == 0 {
		return []string{
			"Strengthen your profile by adding measurable impact to your projects.",
		}
	}
	suggestions := make([]string, 0, len(missingSkills))
	for _, skill := range missingSkills {
		suggestions = append(suggestions,
			fmt.Sprintf("Add %s by mentioning it in a project or hands-on experience.", skill))
	}
	return suggestions
}

// weakBulletSuggestions runs on the original text so bullet markers are
// still visible. Weak-phrased bullets each get the literal rewrite template;
// clean bullets get the impact nudge instead.
func (a *Advisor) weakBulletSuggestions(originalText string) []types.BulletRewrite {
	bullets := ExtractBullets(originalText)
	var suggestions []types.BulletRewrite

	for _, bullet := range bullets {
		lower := strings.ToLower(bullet)
		for _, p := range a.vocab.FeatureWeakPhrases {
			if strings.Contains(lower, p) {
				suggestions = append(suggestions, types.BulletRewrite{
					Original:  bullet,
					Suggested: bulletRewriteTemplate,
				})
				break
			}
		}
	}

	if len(bullets) > 0 && len(suggestions) == 0 {
		suggestions = append(suggestions, types.BulletRewrite{
			Original:  "Your bullets are clear",
			Suggested: "Add numbers (users, speed, scale) to increase impact.",
		})
	}

	return suggestions
}

func (a *Advisor) grammarSuggestions(text string) []string {
	var tips []string
	for _, p := range a.vocab.FeatureWeakPhrases {
		if strings.Contains(text, p) {
			tips = append(tips,
				fmt.Sprintf("Replace weak phrase '%s' with strong action verbs.", p))
		}
	}
	if len(tips) == 0 {
		tips = append(tips, "Grammar is good. Minor refinements can improve clarity.")
	}
	return tips
}

func (a *Advisor) skillSectionSuggestions(text string) []string {
	idx := strings.Index(text, "skills")
	if idx < 0 {
		return nil
	}

	block := text[idx+len("skills"):]
	if len(block) > 400 {
		block = block[:400]
	}

	count := 0
	for _, tok := range skillTokenSplitRe.Split(block, -1) {
		if strings.TrimSpace(tok) != "" {
			count++
		}
	}

	switch {
	case count < 5:
		return []string{"Add more relevant technical skills."}
	case count > 25:
		return []string{"Group skills into categories for better readability."}
	default:
		return nil
	}
}

func (a *Advisor) projectSectionSuggestions(text string) []string {
	idx := strings.Index(text, "projects")
	if idx < 0 {
		return []string{"Add at least 2 real-world projects."}
	}

	block := text[idx+len("projects"):]
	if len(block) > 500 {
		block = block[:500]
	}

	for _, v := range a.vocab.ActionVerbs {
		if strings.Contains(block, v) {
			return nil
		}
	}
	return []string{"Start project bullets with action verbs and tools used."}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
