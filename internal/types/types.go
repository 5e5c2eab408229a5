package types

// ScoreQualityInput represents the input for scoring resume quality
type ScoreQualityInput struct {
	ResumeText string `json:"resumeText"`
}

// QualityReport represents the rule-based resume quality score breakdown.
// Each sub-score is bounded to [0,100]; the composite is the weighted sum
// rounded to two decimals.
type QualityReport struct {
	ResumeScore         float64 `json:"resumeScore"`
	SectionCompleteness float64 `json:"sectionCompleteness"`
	GrammarQuality      float64 `json:"grammarQuality"`
	BulletQuality       float64 `json:"bulletQuality"`
	SkillStructure      float64 `json:"skillStructure"`
	FormattingQuality   float64 `json:"formattingQuality"`
	Interpretation      string  `json:"interpretation"`
}

// MatchResumeInput represents the input for lexically matching a resume
// against a job description
type MatchResumeInput struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// SkillGap holds the set algebra of resume skills versus JD skills.
// Extra skills are strengths, never penalties.
type SkillGap struct {
	Matched []string `json:"matchedSkills"`
	Missing []string `json:"missingSkills"`
	Extra   []string `json:"extraSkills"`
}

// MatchReport represents the ATS match score with its sub-scores and verdict
type MatchReport struct {
	CoreSkillsMatched   []string `json:"coreSkillsMatched"`
	MissingSkills       []string `json:"missingSkills"`
	ExtraSkillsDetected []string `json:"extraSkillsDetected"`
	SkillMatchPercent   float64  `json:"skillMatchPercent"`
	ProjectRelevance    float64  `json:"projectRelevance"`
	ExperienceRelevance float64  `json:"experienceRelevance"`
	ATSMatchScore       float64  `json:"atsMatchScore"`
	Verdict             string   `json:"verdict"`
	Note                string   `json:"note"`
}

// PredictScoreInput represents the input for the learned score predictor
type PredictScoreInput struct {
	ResumeText string `json:"resumeText"`
}

// PredictedScore represents the learned model's scalar prediction
type PredictedScore struct {
	MLResumeScore float64 `json:"mlResumeScore"`
	ModelVersion  string  `json:"modelVersion"`
}

// FeatureVector is the ordered numeric tuple consumed by the learned score
// predictor. Field order and semantics are the model contract: changing
// either requires versioning the model artifact.
type FeatureVector struct {
	WordCount       int `json:"wordCount"`
	SkillCount      int `json:"skillCount"`
	ProjectMentions int `json:"projectMentions"`
	BulletCount     int `json:"bulletCount"`
	ExperienceYears int `json:"experienceYears"`
	WeakPhraseCount int `json:"weakPhraseCount"`
}

// Values returns the vector in model feature order.
func (f FeatureVector) Values() []float64 {
	return []float64{
		float64(f.WordCount),
		float64(f.SkillCount),
		float64(f.ProjectMentions),
		float64(f.BulletCount),
		float64(f.ExperienceYears),
		float64(f.WeakPhraseCount),
	}
}

// AnalyzeGapsInput represents the input for semantic gap analysis
type AnalyzeGapsInput struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// GapReport represents the semantic gap analysis between a resume and a JD.
// Each finding is present or absent; an absent precondition (for example no
// stated experience requirement) yields an empty finding, not an error.
type GapReport struct {
	SemanticMatchScore      float64  `json:"semanticMatchScore"`
	Verdict                 string   `json:"verdict"`
	MissingSkills           []string `json:"missingSkills"`
	MissingExperience       string   `json:"missingExperience,omitempty"`
	MissingProjects         string   `json:"missingProjects,omitempty"`
	MissingResponsibilities []string `json:"missingResponsibilities,omitempty"`
	MissingDomain           string   `json:"missingDomain,omitempty"`
}

// SuggestInput represents the input for generating improvement suggestions
type SuggestInput struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

// BulletRewrite pairs a weak-phrased bullet with a rewrite template
type BulletRewrite struct {
	Original  string `json:"original"`
	Suggested string `json:"suggested"`
}

// ImprovementReport represents categorized improvement suggestions.
// Every category carries a deterministic fallback message when no issue is
// found; no category is ever silently empty.
type ImprovementReport struct {
	CriticalImprovements    []string        `json:"criticalImprovements"`
	SkillGapSuggestions     []string        `json:"skillGapSuggestions"`
	BulletPointImprovements []BulletRewrite `json:"bulletPointImprovements"`
	GrammarTips             []string        `json:"grammarTips"`
	SkillSectionTips        []string        `json:"skillSectionTips"`
	ProjectSectionTips      []string        `json:"projectSectionTips"`
	DetectedMissingSkills   []string        `json:"detectedMissingSkills"`
}
