package analysis

import (
	"reflect"
	"strings"
	"testing"

	"resumetric/internal/config"
)

func newTestAdvisor() *Advisor {
	return NewAdvisor(config.DefaultVocabulary())
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func TestSuggestMissingSections(t *testing.T) {
	advisor := newTestAdvisor()

	report := advisor.Suggest("", "")

	for _, section := range []string{"Summary", "Skills", "Projects", "Experience", "Education"} {
		want := "Add a '" + section + "' section to improve resume completeness."
		if !containsString(report.CriticalImprovements, want) {
			t.Errorf("criticalImprovements = %v, want it to contain %q", report.CriticalImprovements, want)
		}
	}

	complete := advisor.Suggest("summary skills projects experience education "+strings.Repeat("word ", 50), "")
	for _, s := range complete.CriticalImprovements {
		if strings.Contains(s, "section to improve resume completeness") {
			t.Errorf("unexpected missing-section suggestion %q for a complete resume", s)
		}
	}
}

func TestSuggestThinSummary(t *testing.T) {
	advisor := newTestAdvisor()

	want := "Expand your summary to 2-3 lines highlighting skills and experience."

	thin := advisor.Suggest("summary react developer", "")
	if !containsString(thin.CriticalImprovements, want) {
		t.Errorf("criticalImprovements = %v, want it to contain %q", thin.CriticalImprovements, want)
	}

	full := advisor.Suggest("summary "+strings.Repeat("word ", 50), "")
	if containsString(full.CriticalImprovements, want) {
		t.Errorf("thin-summary tip present for a 50-word summary")
	}
}

func TestSuggestExperienceRequirement(t *testing.T) {
	advisor := newTestAdvisor()

	tests := []struct {
		name       string
		resume     string
		jd         string
		wantJDYear string
	}{
		{
			name:       "resume falls short of the requirement",
			resume:     "experience 2 years as developer",
			jd:         "requires 5+ years of experience",
			wantJDYear: "5",
		},
		{
			name:   "resume meets the requirement",
			resume: "experience 6 years as developer",
			jd:     "requires 5+ years of experience",
		},
		{
			name:   "jd states no requirement",
			resume: "experience 1 year",
			jd:     "developer role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := advisor.Suggest(tt.resume, tt.jd)

			found := ""
			for _, s := range report.CriticalImprovements {
				if strings.Contains(s, "years of experience, but your resume") {
					found = s
					break
				}
			}

			if tt.wantJDYear == "" {
				if found != "" {
					t.Errorf("unexpected experience suggestion %q", found)
				}
				return
			}
			if found == "" {
				t.Fatalf("criticalImprovements = %v, want an experience-shortfall suggestion", report.CriticalImprovements)
			}
			if !strings.Contains(found, tt.wantJDYear+"+ years") {
				t.Errorf("suggestion %q does not name the required %s+ years", found, tt.wantJDYear)
			}
		})
	}
}

func TestSuggestSkillGaps(t *testing.T) {
	advisor := newTestAdvisor()

	report := advisor.Suggest("react developer", "node mongodb developer")

	if !reflect.DeepEqual(report.DetectedMissingSkills, []string{"mongodb", "node"}) {
		t.Errorf("detectedMissingSkills = %v, want [mongodb node]", report.DetectedMissingSkills)
	}
	wantSuggestions := []string{
		"Add mongodb by mentioning it in a project or hands-on experience.",
		"Add node by mentioning it in a project or hands-on experience.",
	}
	if !reflect.DeepEqual(report.SkillGapSuggestions, wantSuggestions) {
		t.Errorf("skillGapSuggestions = %v, want %v", report.SkillGapSuggestions, wantSuggestions)
	}
}

func TestSuggestSkillGapsFallback(t *testing.T) {
	advisor := newTestAdvisor()

	report := advisor.Suggest("react node mongodb developer", "react node developer")

	want := []string{"Strengthen your profile by adding measurable impact to your projects."}
	if !reflect.DeepEqual(report.SkillGapSuggestions, want) {
		t.Errorf("skillGapSuggestions = %v, want fallback %v", report.SkillGapSuggestions, want)
	}
	if len(report.DetectedMissingSkills) != 0 {
		t.Errorf("detectedMissingSkills = %v, want empty", report.DetectedMissingSkills)
	}
}

func TestSuggestWeakBullets(t *testing.T) {
	advisor := newTestAdvisor()

	report := advisor.Suggest("• worked on some scripts\n• built rest apis", "")

	if len(report.BulletPointImprovements) != 1 {
		t.Fatalf("bulletPointImprovements = %v, want exactly 1 rewrite", report.BulletPointImprovements)
	}
	rewrite := report.BulletPointImprovements[0]
	if rewrite.Original != "worked on some scripts" {
		t.Errorf("original = %q, want the weak bullet text", rewrite.Original)
	}
	if !strings.Contains(rewrite.Suggested, "action verb + technology + outcome") {
		t.Errorf("suggested = %q, want the rewrite template", rewrite.Suggested)
	}
}

func TestSuggestCleanBullets(t *testing.T) {
	advisor := newTestAdvisor()

	report := advisor.Suggest("• built rest apis\n• deployed to production", "")

	if len(report.BulletPointImprovements) != 1 {
		t.Fatalf("bulletPointImprovements = %v, want the single impact nudge", report.BulletPointImprovements)
	}
	nudge := report.BulletPointImprovements[0]
	if nudge.Original != "Your bullets are clear" {
		t.Errorf("original = %q, want %q", nudge.Original, "Your bullets are clear")
	}
	if nudge.Suggested != "Add numbers (users, speed, scale) to increase impact." {
		t.Errorf("suggested = %q, want the impact nudge", nudge.Suggested)
	}
}

func TestSuggestNoBullets(t *testing.T) {
	advisor := newTestAdvisor()

	report := advisor.Suggest("plain resume text without markers", "")
	if len(report.BulletPointImprovements) != 0 {
		t.Errorf("bulletPointImprovements = %v, want empty when there are no bullets", report.BulletPointImprovements)
	}
}

func TestSuggestGrammarTips(t *testing.T) {
	advisor := newTestAdvisor()

	weak := advisor.Suggest("worked on things and was responsible for stuff", "")
	for _, phrase := range []string{"worked on", "responsible for"} {
		want := "Replace weak phrase '" + phrase + "' with strong action verbs."
		if !containsString(weak.GrammarTips, want) {
			t.Errorf("grammarTips = %v, want it to contain %q", weak.GrammarTips, want)
		}
	}

	clean := advisor.Suggest("built and deployed services", "")
	want := []string{"Grammar is good. Minor refinements can improve clarity."}
	if !reflect.DeepEqual(clean.GrammarTips, want) {
		t.Errorf("grammarTips = %v, want fallback %v", clean.GrammarTips, want)
	}
}

func TestSuggestSkillSectionTips(t *testing.T) {
	advisor := newTestAdvisor()

	tests := []struct {
		name     string
		resume   string
		expected []string
	}{
		{
			name:     "no skills section",
			resume:   "projects and experience",
			expected: nil,
		},
		{
			name:     "sparse skill list",
			resume:   "skills react, node",
			expected: []string{"Add more relevant technical skills."},
		},
		{
			name:     "bloated skill list",
			resume:   resumeWithSkillTokens(30),
			expected: []string{"Group skills into categories for better readability."},
		},
		{
			name:     "healthy skill list",
			resume:   resumeWithSkillTokens(10),
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := advisor.Suggest(tt.resume, "")
			if !reflect.DeepEqual(report.SkillSectionTips, tt.expected) {
				t.Errorf("skillSectionTips = %v, want %v", report.SkillSectionTips, tt.expected)
			}
		})
	}
}

func TestSuggestProjectSectionTips(t *testing.T) {
	advisor := newTestAdvisor()

	tests := []struct {
		name     string
		resume   string
		expected []string
	}{
		{
			name:     "no projects section",
			resume:   "skills and experience",
			expected: []string{"Add at least 2 real-world projects."},
		},
		{
			name:     "projects without action verbs",
			resume:   "projects a chat app and a todo app",
			expected: []string{"Start project bullets with action verbs and tools used."},
		},
		{
			name:     "projects with action verbs",
			resume:   "projects built a chat app",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := advisor.Suggest(tt.resume, "")
			if !reflect.DeepEqual(report.ProjectSectionTips, tt.expected) {
				t.Errorf("projectSectionTips = %v, want %v", report.ProjectSectionTips, tt.expected)
			}
		})
	}
}
