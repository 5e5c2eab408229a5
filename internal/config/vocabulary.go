package config

import "fmt"

// VocabularyConfig holds the fixed reference tables the scoring engine works
// from. They are versioned configuration injected into each component rather
// than package-level globals, so tests can run with alternate vocabularies.
//
// The per-component skill lists deliberately differ from one another: the
// learned predictor was trained against the feature extractor's list, so the
// lists cannot be unified without retraining the model artifact.
type VocabularyConfig struct {
	// Lexical matcher tables
	MatchSkills        []string            `mapstructure:"matchSkills"`
	MatchStacks        map[string][]string `mapstructure:"matchStacks"`
	Stopwords          []string            `mapstructure:"stopwords"`
	ComplexityKeywords []string            `mapstructure:"complexityKeywords"`

	// Feature extractor tables (the learned model's feature contract)
	FeatureSkills      []string `mapstructure:"featureSkills"`
	FeatureWeakPhrases []string `mapstructure:"featureWeakPhrases"`

	// Quality scorer tables
	QualityWeakPhrases []string       `mapstructure:"qualityWeakPhrases"`
	ActionVerbs        []string       `mapstructure:"actionVerbs"`
	RequiredSections   []SectionNames `mapstructure:"requiredSections"`

	// Suggestion engine tables
	SuggestionSkills []string            `mapstructure:"suggestionSkills"`
	SuggestionStacks map[string][]string `mapstructure:"suggestionStacks"`

	// Semantic analyzer tables. SkillAliases is ordered so gap output is
	// deterministic; DomainKeywords is ordered because only the first domain
	// found in the JD is probed.
	SkillAliases           []SkillAlias `mapstructure:"skillAliases"`
	ResponsibilityKeywords []string     `mapstructure:"responsibilityKeywords"`
	DomainKeywords         []string     `mapstructure:"domainKeywords"`
}

// SectionNames names a required resume section and the keyword variants that
// mark it as present.
type SectionNames struct {
	Name     string   `mapstructure:"name"`
	Keywords []string `mapstructure:"keywords"`
}

// SkillAlias maps a canonical skill to the alias strings that count as a
// mention of it.
type SkillAlias struct {
	Skill   string   `mapstructure:"skill"`
	Aliases []string `mapstructure:"aliases"`
}

// SectionKeywords returns the keyword variants for a named section, or nil if
// the section is not configured.
func (v *VocabularyConfig) SectionKeywords(name string) []string {
	for _, s := range v.RequiredSections {
		if s.Name == name {
			return s.Keywords
		}
	}
	return nil
}

// fillDefaults populates any table left empty by the config file. Tables are
// replaced wholesale, never merged, so an override fully owns its list.
func (v *VocabularyConfig) fillDefaults() {
	if len(v.MatchSkills) == 0 {
		v.MatchSkills = []string{
			"react", "javascript", "node", "nodejs", "express",
			"mongodb", "python", "machine learning", "sql",
			"html", "css", "angular",
		}
	}
	if len(v.MatchStacks) == 0 {
		v.MatchStacks = map[string][]string{
			"mern":         {"mongodb", "express", "react", "node"},
			"mean":         {"mongodb", "express", "angular", "node"},
			"frontend":     {"react", "javascript", "html", "css"},
			"backend":      {"node", "express"},
			"data science": {"python", "machine learning"},
		}
	}
	if len(v.Stopwords) == 0 {
		v.Stopwords = []string{
			"the", "is", "are", "a", "an", "and", "or", "to", "of", "in", "for",
			"on", "with", "as", "by", "at", "from", "this", "that", "it",
		}
	}
	if len(v.ComplexityKeywords) == 0 {
		v.ComplexityKeywords = []string{"api", "socket", "database", "auth"}
	}
	if len(v.FeatureSkills) == 0 {
		v.FeatureSkills = []string{
			"react", "javascript", "node", "express", "mongodb",
			"python", "sql", "html", "css", "machine learning",
			"docker", "aws", "api", "rest",
		}
	}
	if len(v.FeatureWeakPhrases) == 0 {
		v.FeatureWeakPhrases = []string{
			"worked on",
			"responsible for",
			"helped with",
			"basic knowledge",
			"good knowledge",
		}
	}
	if len(v.QualityWeakPhrases) == 0 {
		v.QualityWeakPhrases = []string{
			"worked on",
			"responsible for",
			"helped with",
			"good knowledge",
			"basic knowledge",
			"i was",
			"i have",
		}
	}
	if len(v.ActionVerbs) == 0 {
		v.ActionVerbs = []string{
			"built", "developed", "designed", "implemented",
			"optimized", "created", "engineered",
			"integrated", "deployed",
		}
	}
	if len(v.RequiredSections) == 0 {
		v.RequiredSections = []SectionNames{
			{Name: "summary", Keywords: []string{"summary", "profile", "objective"}},
			{Name: "skills", Keywords: []string{"skills", "technical skills"}},
			{Name: "projects", Keywords: []string{"projects", "project"}},
			{Name: "experience", Keywords: []string{"experience", "work experience", "internship"}},
			{Name: "education", Keywords: []string{"education", "academic"}},
		}
	}
	if len(v.SuggestionSkills) == 0 {
		v.SuggestionSkills = []string{
			"react", "javascript", "node", "nodejs", "express",
			"mongodb", "python", "machine learning", "sql",
			"html", "css", "angular", "docker", "aws",
			"rest", "api", "socket", "firebase",
		}
	}
	if len(v.SuggestionStacks) == 0 {
		v.SuggestionStacks = map[string][]string{
			"mern": {"mongodb", "express", "react", "node"},
			"mean": {"mongodb", "express", "angular", "node"},
		}
	}
	if len(v.SkillAliases) == 0 {
		v.SkillAliases = []SkillAlias{
			{Skill: "rest api", Aliases: []string{"rest api", "restful api", "apis"}},
			{Skill: "react", Aliases: []string{"react", "reactjs"}},
			{Skill: "node", Aliases: []string{"node", "nodejs"}},
			{Skill: "mongodb", Aliases: []string{"mongodb", "mongo"}},
			{Skill: "express", Aliases: []string{"express"}},
			{Skill: "docker", Aliases: []string{"docker", "container"}},
			{Skill: "aws", Aliases: []string{"aws", "ec2", "s3"}},
		}
	}
	if len(v.ResponsibilityKeywords) == 0 {
		v.ResponsibilityKeywords = []string{
			"design", "develop", "deploy",
			"optimize", "maintain", "collaborate",
			"lead", "scale",
		}
	}
	if len(v.DomainKeywords) == 0 {
		v.DomainKeywords = []string{
			"finance", "healthcare", "ecommerce", "banking", "education", "ai", "ml",
		}
	}
}

// Validate checks the vocabulary tables for unusable values
func (v *VocabularyConfig) Validate() error {
	if len(v.RequiredSections) == 0 {
		return fmt.Errorf("vocabulary.requiredSections must not be empty")
	}
	if v.SectionKeywords("skills") == nil {
		return fmt.Errorf("vocabulary.requiredSections must include a 'skills' section")
	}
	for _, a := range v.SkillAliases {
		if a.Skill == "" || len(a.Aliases) == 0 {
			return fmt.Errorf("vocabulary.skillAliases entries need a skill name and at least one alias")
		}
	}
	return nil
}

// DefaultVocabulary returns the built-in reference tables. Used by tests and
// by callers constructing engine components without a full config.
func DefaultVocabulary() VocabularyConfig {
	var v VocabularyConfig
	v.fillDefaults()
	return v
}
