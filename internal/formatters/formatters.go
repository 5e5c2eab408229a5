package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumetric/internal/types"
)

// GlobalRegistry is the default registry used by output handlers
var GlobalRegistry = NewFormatterRegistry()

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "QualityReport", &QualityTextFormatter{})
	registry.RegisterFormatter("markdown", "QualityReport", &QualityMarkdownFormatter{})
	registry.RegisterFormatter("text", "MatchReport", &MatchTextFormatter{})
	registry.RegisterFormatter("markdown", "MatchReport", &MatchMarkdownFormatter{})
	registry.RegisterFormatter("text", "GapReport", &GapTextFormatter{})
	registry.RegisterFormatter("markdown", "GapReport", &GapMarkdownFormatter{})
	registry.RegisterFormatter("text", "ImprovementReport", &ImprovementTextFormatter{})
	registry.RegisterFormatter("markdown", "ImprovementReport", &ImprovementMarkdownFormatter{})
	registry.RegisterFormatter("text", "PredictedScore", &PredictedScoreTextFormatter{})
	registry.RegisterFormatter("markdown", "PredictedScore", &PredictedScoreMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.QualityReport:
		return "QualityReport"
	case types.MatchReport:
		return "MatchReport"
	case types.GapReport:
		return "GapReport"
	case types.ImprovementReport:
		return "ImprovementReport"
	case types.PredictedScore:
		return "PredictedScore"
	default:
		return "any"
	}
}

// writeList writes one line per item with the given prefix
func writeList(output *strings.Builder, prefix string, items []string) {
	for _, item := range items {
		output.WriteString(prefix)
		output.WriteString(item)
		output.WriteString("\n")
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// QualityTextFormatter handles text formatting for quality reports
type QualityTextFormatter struct{}

func (qtf *QualityTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.QualityReport)
	if !ok {
		return "", fmt.Errorf("expected QualityReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME QUALITY ===\n\n")
	output.WriteString(fmt.Sprintf("Score: %.2f/100\n", result.ResumeScore))
	output.WriteString(fmt.Sprintf("Interpretation: %s\n\n", result.Interpretation))

	output.WriteString("Breakdown:\n")
	output.WriteString(fmt.Sprintf("  Section Completeness: %.2f\n", result.SectionCompleteness))
	output.WriteString(fmt.Sprintf("  Grammar Quality:      %.2f\n", result.GrammarQuality))
	output.WriteString(fmt.Sprintf("  Bullet Quality:       %.2f\n", result.BulletQuality))
	output.WriteString(fmt.Sprintf("  Skill Structure:      %.2f\n", result.SkillStructure))
	output.WriteString(fmt.Sprintf("  Formatting Quality:   %.2f\n", result.FormattingQuality))

	return output.String(), nil
}

func (qtf *QualityTextFormatter) SupportedType() string {
	return "QualityReport"
}

// QualityMarkdownFormatter handles markdown formatting for quality reports
type QualityMarkdownFormatter struct{}

func (qmf *QualityMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.QualityReport)
	if !ok {
		return "", fmt.Errorf("expected QualityReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Quality\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %.2f/100\n\n", result.ResumeScore))
	output.WriteString(fmt.Sprintf("**Interpretation:** %s\n\n", result.Interpretation))

	output.WriteString("## Breakdown\n\n")
	output.WriteString("| Sub-score | Value |\n")
	output.WriteString("|-----------|-------|\n")
	output.WriteString(fmt.Sprintf("| Section Completeness | %.2f |\n", result.SectionCompleteness))
	output.WriteString(fmt.Sprintf("| Grammar Quality | %.2f |\n", result.GrammarQuality))
	output.WriteString(fmt.Sprintf("| Bullet Quality | %.2f |\n", result.BulletQuality))
	output.WriteString(fmt.Sprintf("| Skill Structure | %.2f |\n", result.SkillStructure))
	output.WriteString(fmt.Sprintf("| Formatting Quality | %.2f |\n", result.FormattingQuality))

	return output.String(), nil
}

func (qmf *QualityMarkdownFormatter) SupportedType() string {
	return "QualityReport"
}

// MatchTextFormatter handles text formatting for lexical match reports
type MatchTextFormatter struct{}

func (mtf *MatchTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchReport)
	if !ok {
		return "", fmt.Errorf("expected MatchReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS MATCH ===\n\n")
	output.WriteString(fmt.Sprintf("Score: %.2f/100\n", result.ATSMatchScore))
	output.WriteString(fmt.Sprintf("Verdict: %s\n\n", result.Verdict))

	output.WriteString("Sub-scores:\n")
	output.WriteString(fmt.Sprintf("  Skill Match:          %.2f\n", result.SkillMatchPercent))
	output.WriteString(fmt.Sprintf("  Project Relevance:    %.2f\n", result.ProjectRelevance))
	output.WriteString(fmt.Sprintf("  Experience Relevance: %.2f\n\n", result.ExperienceRelevance))

	output.WriteString("Matched Skills:\n")
	writeList(&output, "  - ", result.CoreSkillsMatched)
	output.WriteString("\nMissing Skills:\n")
	writeList(&output, "  - ", result.MissingSkills)
	output.WriteString("\nExtra Skills:\n")
	writeList(&output, "  - ", result.ExtraSkillsDetected)
	output.WriteString("\nNote: ")
	output.WriteString(result.Note)
	output.WriteString("\n")

	return output.String(), nil
}

func (mtf *MatchTextFormatter) SupportedType() string {
	return "MatchReport"
}

// MatchMarkdownFormatter handles markdown formatting for lexical match reports
type MatchMarkdownFormatter struct{}

func (mmf *MatchMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchReport)
	if !ok {
		return "", fmt.Errorf("expected MatchReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Match\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %.2f/100\n\n", result.ATSMatchScore))
	output.WriteString(fmt.Sprintf("**Verdict:** %s\n\n", result.Verdict))

	output.WriteString("## Sub-scores\n\n")
	output.WriteString("| Sub-score | Value |\n")
	output.WriteString("|-----------|-------|\n")
	output.WriteString(fmt.Sprintf("| Skill Match | %.2f |\n", result.SkillMatchPercent))
	output.WriteString(fmt.Sprintf("| Project Relevance | %.2f |\n", result.ProjectRelevance))
	output.WriteString(fmt.Sprintf("| Experience Relevance | %.2f |\n\n", result.ExperienceRelevance))

	output.WriteString("## Matched Skills\n\n")
	writeList(&output, "- ", result.CoreSkillsMatched)
	output.WriteString("\n## Missing Skills\n\n")
	writeList(&output, "- ", result.MissingSkills)
	output.WriteString("\n## Extra Skills\n\n")
	writeList(&output, "- ", result.ExtraSkillsDetected)
	output.WriteString("\n> ")
	output.WriteString(result.Note)
	output.WriteString("\n")

	return output.String(), nil
}

func (mmf *MatchMarkdownFormatter) SupportedType() string {
	return "MatchReport"
}

// GapTextFormatter handles text formatting for semantic gap reports
type GapTextFormatter struct{}

func (gtf *GapTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.GapReport)
	if !ok {
		return "", fmt.Errorf("expected GapReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== SEMANTIC GAP ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("Score: %.2f/100\n", result.SemanticMatchScore))
	output.WriteString(fmt.Sprintf("Verdict: %s\n\n", result.Verdict))

	output.WriteString("Missing Skills:\n")
	if len(result.MissingSkills) == 0 {
		output.WriteString("  (none)\n")
	} else {
		writeList(&output, "  - ", result.MissingSkills)
	}

	output.WriteString("\nFindings:\n")
	findings := 0
	if result.MissingExperience != "" {
		output.WriteString("  - " + result.MissingExperience + "\n")
		findings++
	}
	if result.MissingProjects != "" {
		output.WriteString("  - " + result.MissingProjects + "\n")
		findings++
	}
	for _, r := range result.MissingResponsibilities {
		output.WriteString("  - " + r + "\n")
		findings++
	}
	if result.MissingDomain != "" {
		output.WriteString("  - " + result.MissingDomain + "\n")
		findings++
	}
	if findings == 0 {
		output.WriteString("  (none)\n")
	}

	return output.String(), nil
}

func (gtf *GapTextFormatter) SupportedType() string {
	return "GapReport"
}

// GapMarkdownFormatter handles markdown formatting for semantic gap reports
type GapMarkdownFormatter struct{}

func (gmf *GapMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.GapReport)
	if !ok {
		return "", fmt.Errorf("expected GapReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Semantic Gap Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %.2f/100\n\n", result.SemanticMatchScore))
	output.WriteString(fmt.Sprintf("**Verdict:** %s\n\n", result.Verdict))

	output.WriteString("## Missing Skills\n\n")
	if len(result.MissingSkills) == 0 {
		output.WriteString("_None detected._\n")
	} else {
		writeList(&output, "- ", result.MissingSkills)
	}

	output.WriteString("\n## Findings\n\n")
	findings := 0
	if result.MissingExperience != "" {
		output.WriteString("- " + result.MissingExperience + "\n")
		findings++
	}
	if result.MissingProjects != "" {
		output.WriteString("- " + result.MissingProjects + "\n")
		findings++
	}
	for _, r := range result.MissingResponsibilities {
		output.WriteString("- " + r + "\n")
		findings++
	}
	if result.MissingDomain != "" {
		output.WriteString("- " + result.MissingDomain + "\n")
		findings++
	}
	if findings == 0 {
		output.WriteString("_None detected._\n")
	}

	return output.String(), nil
}

func (gmf *GapMarkdownFormatter) SupportedType() string {
	return "GapReport"
}

// ImprovementTextFormatter handles text formatting for improvement reports
type ImprovementTextFormatter struct{}

func (itf *ImprovementTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ImprovementReport)
	if !ok {
		return "", fmt.Errorf("expected ImprovementReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== IMPROVEMENT SUGGESTIONS ===\n\n")

	output.WriteString("Critical Improvements:\n")
	writeList(&output, "  - ", result.CriticalImprovements)

	output.WriteString("\nSkill Gap Suggestions:\n")
	writeList(&output, "  - ", result.SkillGapSuggestions)

	output.WriteString("\nBullet Point Improvements:\n")
	for _, b := range result.BulletPointImprovements {
		output.WriteString("  - " + b.Original + "\n")
		output.WriteString("    -> " + b.Suggested + "\n")
	}

	output.WriteString("\nGrammar Tips:\n")
	writeList(&output, "  - ", result.GrammarTips)

	output.WriteString("\nSkill Section Tips:\n")
	writeList(&output, "  - ", result.SkillSectionTips)

	output.WriteString("\nProject Section Tips:\n")
	writeList(&output, "  - ", result.ProjectSectionTips)

	output.WriteString("\nDetected Missing Skills:\n")
	writeList(&output, "  - ", result.DetectedMissingSkills)

	return output.String(), nil
}

func (itf *ImprovementTextFormatter) SupportedType() string {
	return "ImprovementReport"
}

// ImprovementMarkdownFormatter handles markdown formatting for improvement reports
type ImprovementMarkdownFormatter struct{}

func (imf *ImprovementMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ImprovementReport)
	if !ok {
		return "", fmt.Errorf("expected ImprovementReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Improvement Suggestions\n\n")

	output.WriteString("## Critical Improvements\n\n")
	writeList(&output, "- ", result.CriticalImprovements)

	output.WriteString("\n## Skill Gap Suggestions\n\n")
	writeList(&output, "- ", result.SkillGapSuggestions)

	output.WriteString("\n## Bullet Point Improvements\n\n")
	for _, b := range result.BulletPointImprovements {
		output.WriteString(fmt.Sprintf("- **%s**\n  - %s\n", b.Original, b.Suggested))
	}

	output.WriteString("\n## Grammar Tips\n\n")
	writeList(&output, "- ", result.GrammarTips)

	output.WriteString("\n## Skill Section Tips\n\n")
	writeList(&output, "- ", result.SkillSectionTips)

	output.WriteString("\n## Project Section Tips\n\n")
	writeList(&output, "- ", result.ProjectSectionTips)

	output.WriteString("\n## Detected Missing Skills\n\n")
	writeList(&output, "- ", result.DetectedMissingSkills)

	return output.String(), nil
}

func (imf *ImprovementMarkdownFormatter) SupportedType() string {
	return "ImprovementReport"
}

// PredictedScoreTextFormatter handles text formatting for model predictions
type PredictedScoreTextFormatter struct{}

func (ptf *PredictedScoreTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.PredictedScore)
	if !ok {
		return "", fmt.Errorf("expected PredictedScore, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ML RESUME SCORE ===\n\n")
	output.WriteString(fmt.Sprintf("Score: %.2f\n", result.MLResumeScore))
	output.WriteString(fmt.Sprintf("Model Version: %s\n", result.ModelVersion))

	return output.String(), nil
}

func (ptf *PredictedScoreTextFormatter) SupportedType() string {
	return "PredictedScore"
}

// PredictedScoreMarkdownFormatter handles markdown formatting for model predictions
type PredictedScoreMarkdownFormatter struct{}

func (pmf *PredictedScoreMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.PredictedScore)
	if !ok {
		return "", fmt.Errorf("expected PredictedScore, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ML Resume Score\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %.2f\n\n", result.MLResumeScore))
	output.WriteString(fmt.Sprintf("**Model Version:** %s\n", result.ModelVersion))

	return output.String(), nil
}

func (pmf *PredictedScoreMarkdownFormatter) SupportedType() string {
	return "PredictedScore"
}
