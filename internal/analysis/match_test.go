package analysis

import (
	"reflect"
	"testing"

	"resumetric/internal/config"
)

func newTestMatcher() *Matcher {
	return NewMatcher(config.DefaultVocabulary(), 500)
}

func TestMatchMissingSkills(t *testing.T) {
	matcher := newTestMatcher()

	report := matcher.Match(
		"react developer with html and css experience",
		"looking for a node and mongodb developer",
	)

	for _, want := range []string{"mongodb", "node"} {
		found := false
		for _, s := range report.MissingSkills {
			if s == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missingSkills = %v, want it to contain %q", report.MissingSkills, want)
		}
	}

	if len(report.CoreSkillsMatched) != 0 {
		t.Errorf("coreSkillsMatched = %v, want empty", report.CoreSkillsMatched)
	}
	if report.SkillMatchPercent != 0 {
		t.Errorf("skillMatchPercent = %v, want 0", report.SkillMatchPercent)
	}
}

func TestMatchEmptyInputs(t *testing.T) {
	matcher := newTestMatcher()

	tests := []struct {
		name   string
		resume string
		jd     string
	}{
		{name: "both empty", resume: "", jd: ""},
		{name: "empty resume", resume: "", jd: "node developer"},
		{name: "empty jd", resume: "react developer", jd: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := matcher.Match(tt.resume, tt.jd)
			if report.ATSMatchScore != 0 {
				t.Errorf("atsMatchScore = %v, want 0", report.ATSMatchScore)
			}
			if report.Verdict != "WEAK MATCH" {
				t.Errorf("verdict = %q, want WEAK MATCH", report.Verdict)
			}
		})
	}
}

func TestMatchStrongVerdict(t *testing.T) {
	matcher := newTestMatcher()

	report := matcher.Match(
		"projects react api project project experience react developer build systems",
		"react developer build systems",
	)

	if report.SkillMatchPercent != 100 {
		t.Errorf("skillMatchPercent = %v, want 100", report.SkillMatchPercent)
	}
	if report.ProjectRelevance != 100 {
		t.Errorf("projectRelevance = %v, want 100 (full coverage plus capped bonuses)", report.ProjectRelevance)
	}
	if report.ATSMatchScore < 75 {
		t.Errorf("atsMatchScore = %v, want >= 75", report.ATSMatchScore)
	}
	if report.Verdict != "STRONG MATCH" {
		t.Errorf("verdict = %q, want STRONG MATCH", report.Verdict)
	}
}

func TestMatchModerateVerdict(t *testing.T) {
	matcher := newTestMatcher()

	// Full skill coverage but no projects section: 50 points from skills plus
	// a partial experience similarity lands between the two thresholds.
	report := matcher.Match(
		"react experience react developer",
		"react developer",
	)

	if report.ATSMatchScore < 55 || report.ATSMatchScore >= 75 {
		t.Errorf("atsMatchScore = %v, want within [55,75)", report.ATSMatchScore)
	}
	if report.Verdict != "MODERATE MATCH" {
		t.Errorf("verdict = %q, want MODERATE MATCH", report.Verdict)
	}
}

func TestMatchStackExpansion(t *testing.T) {
	matcher := newTestMatcher()

	report := matcher.Match(
		"mern stack developer",
		"need mongodb express react node engineer",
	)

	expected := []string{"express", "mongodb", "node", "react"}
	if !reflect.DeepEqual(report.CoreSkillsMatched, expected) {
		t.Errorf("coreSkillsMatched = %v, want %v", report.CoreSkillsMatched, expected)
	}
	if report.SkillMatchPercent != 100 {
		t.Errorf("skillMatchPercent = %v, want 100", report.SkillMatchPercent)
	}
}

func TestMatchExtraSkillsAreNotPenalized(t *testing.T) {
	matcher := newTestMatcher()

	base := matcher.Match("react developer", "react developer")
	extra := matcher.Match("react python sql docker developer", "react developer")

	if extra.ATSMatchScore < base.ATSMatchScore {
		t.Errorf("extra skills lowered the score: %v < %v", extra.ATSMatchScore, base.ATSMatchScore)
	}
	for _, want := range []string{"python", "sql"} {
		found := false
		for _, s := range extra.ExtraSkillsDetected {
			if s == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("extraSkillsDetected = %v, want it to contain %q", extra.ExtraSkillsDetected, want)
		}
	}
}

func TestSkillGapDetectionAlgebra(t *testing.T) {
	resume := map[string]struct{}{
		"react": {}, "node": {}, "python": {},
	}
	jd := map[string]struct{}{
		"react": {}, "node": {}, "mongodb": {}, "express": {},
	}

	gap := SkillGapDetection(resume, jd)

	if !reflect.DeepEqual(gap.Matched, []string{"node", "react"}) {
		t.Errorf("matched = %v, want [node react]", gap.Matched)
	}
	if !reflect.DeepEqual(gap.Missing, []string{"express", "mongodb"}) {
		t.Errorf("missing = %v, want [express mongodb]", gap.Missing)
	}
	if !reflect.DeepEqual(gap.Extra, []string{"python"}) {
		t.Errorf("extra = %v, want [python]", gap.Extra)
	}

	// Matched and missing partition the JD skill set.
	if len(gap.Matched)+len(gap.Missing) != len(jd) {
		t.Errorf("matched (%d) + missing (%d) != jd skills (%d)",
			len(gap.Matched), len(gap.Missing), len(jd))
	}
}
