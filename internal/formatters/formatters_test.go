package formatters

import (
	"encoding/json"
	"strings"
	"testing"

	"resumetric/internal/types"
)

func sampleQualityReport() types.QualityReport {
	return types.QualityReport{
		ResumeScore:         78.25,
		SectionCompleteness: 80,
		GrammarQuality:      85,
		BulletQuality:       70,
		SkillStructure:      90,
		FormattingQuality:   60,
		Interpretation:      "Good resume with minor improvements needed",
	}
}

func sampleMatchReport() types.MatchReport {
	return types.MatchReport{
		CoreSkillsMatched:   []string{"node", "react"},
		MissingSkills:       []string{"mongodb"},
		ExtraSkillsDetected: []string{"python"},
		SkillMatchPercent:   66.67,
		ProjectRelevance:    50,
		ExperienceRelevance: 42.1,
		ATSMatchScore:       56.76,
		Verdict:             "MODERATE MATCH",
		Note:                "Extra skills are treated as strengths, not penalties",
	}
}

func TestRegistryJSONFallback(t *testing.T) {
	registry := NewFormatterRegistry()

	out, err := registry.Format(sampleQualityReport(), "json")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded types.QualityReport
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.ResumeScore != 78.25 {
		t.Errorf("round-tripped resumeScore = %v, want 78.25", decoded.ResumeScore)
	}
}

func TestRegistryUnknownFormat(t *testing.T) {
	registry := NewFormatterRegistry()

	if _, err := registry.Format(sampleQualityReport(), "xml"); err == nil {
		t.Error("Format() with unknown format succeeded, want error")
	}
}

func TestTextFormatters(t *testing.T) {
	registry := NewFormatterRegistry()

	tests := []struct {
		name     string
		data     any
		contains []string
	}{
		{
			name: "quality report",
			data: sampleQualityReport(),
			contains: []string{
				"RESUME QUALITY",
				"78.25/100",
				"Good resume with minor improvements needed",
				"Section Completeness",
			},
		},
		{
			name: "match report",
			data: sampleMatchReport(),
			contains: []string{
				"ATS MATCH",
				"MODERATE MATCH",
				"- mongodb",
				"Extra skills are treated as strengths",
			},
		},
		{
			name: "gap report",
			data: types.GapReport{
				SemanticMatchScore: 44.5,
				Verdict:            "WEAK MATCH",
				MissingSkills:      []string{"docker"},
				MissingExperience:  "JD requires 5+ years, resume shows 2",
			},
			contains: []string{
				"SEMANTIC GAP ANALYSIS",
				"WEAK MATCH",
				"- docker",
				"JD requires 5+ years, resume shows 2",
			},
		},
		{
			name: "improvement report",
			data: types.ImprovementReport{
				CriticalImprovements: []string{"Add a 'Summary' section to improve resume completeness."},
				GrammarTips:          []string{"Grammar is good. Minor refinements can improve clarity."},
				BulletPointImprovements: []types.BulletRewrite{
					{Original: "worked on scripts", Suggested: "Rewrite with action verb + technology + outcome."},
				},
			},
			contains: []string{
				"IMPROVEMENT SUGGESTIONS",
				"Add a 'Summary' section",
				"worked on scripts",
				"Grammar is good.",
			},
		},
		{
			name: "predicted score",
			data: types.PredictedScore{MLResumeScore: 68.21, ModelVersion: "1.0.0"},
			contains: []string{
				"ML RESUME SCORE",
				"68.21",
				"1.0.0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := registry.Format(tt.data, "text")
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("text output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestMarkdownFormatters(t *testing.T) {
	registry := NewFormatterRegistry()

	tests := []struct {
		name     string
		data     any
		contains []string
	}{
		{
			name:     "quality report",
			data:     sampleQualityReport(),
			contains: []string{"# Resume Quality", "| Skill Structure | 90.00 |"},
		},
		{
			name:     "match report",
			data:     sampleMatchReport(),
			contains: []string{"# ATS Match", "## Missing Skills", "- mongodb"},
		},
		{
			name:     "gap report with no findings",
			data:     types.GapReport{SemanticMatchScore: 81, Verdict: "STRONG MATCH"},
			contains: []string{"# Semantic Gap Analysis", "_None detected._"},
		},
		{
			name:     "predicted score",
			data:     types.PredictedScore{MLResumeScore: 68.21, ModelVersion: "1.0.0"},
			contains: []string{"# ML Resume Score", "**Score:** 68.21"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := registry.Format(tt.data, "markdown")
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("markdown output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestFormatterTypeMismatch(t *testing.T) {
	formatter := &QualityTextFormatter{}
	if _, err := formatter.Format("not a report"); err == nil {
		t.Error("Format() with wrong type succeeded, want error")
	}
}
