package config

import "testing"

func TestDefaultVocabularyComplete(t *testing.T) {
	v := DefaultVocabulary()

	if len(v.MatchSkills) == 0 {
		t.Error("MatchSkills should be populated")
	}
	if len(v.FeatureSkills) == 0 {
		t.Error("FeatureSkills should be populated")
	}
	if len(v.RequiredSections) == 0 {
		t.Error("RequiredSections should be populated")
	}
	if len(v.SkillAliases) == 0 {
		t.Error("SkillAliases should be populated")
	}
	if len(v.DomainKeywords) == 0 {
		t.Error("DomainKeywords should be populated")
	}

	if err := v.Validate(); err != nil {
		t.Errorf("default vocabulary should validate: %v", err)
	}
}

func TestVocabularyFillDefaultsPreservesOverrides(t *testing.T) {
	v := VocabularyConfig{
		MatchSkills: []string{"go", "kubernetes"},
	}
	v.fillDefaults()

	// An overridden table is kept wholesale, not merged with defaults
	if len(v.MatchSkills) != 2 {
		t.Errorf("MatchSkills = %v, want the 2 overridden entries", v.MatchSkills)
	}
	if len(v.Stopwords) == 0 {
		t.Error("untouched tables should still receive defaults")
	}
}

func TestVocabularySectionKeywords(t *testing.T) {
	v := DefaultVocabulary()

	tests := []struct {
		name    string
		section string
		found   bool
	}{
		{"skills section", "skills", true},
		{"experience section", "experience", true},
		{"unknown section", "references", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keywords := v.SectionKeywords(tt.section)
			if tt.found && len(keywords) == 0 {
				t.Errorf("SectionKeywords(%q) should return keywords", tt.section)
			}
			if !tt.found && keywords != nil {
				t.Errorf("SectionKeywords(%q) = %v, want nil", tt.section, keywords)
			}
		})
	}
}

func TestVocabularyValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*VocabularyConfig)
		wantErr bool
	}{
		{
			name:    "valid defaults",
			mutate:  func(v *VocabularyConfig) {},
			wantErr: false,
		},
		{
			name: "missing required sections",
			mutate: func(v *VocabularyConfig) {
				v.RequiredSections = nil
			},
			wantErr: true,
		},
		{
			name: "missing skills section",
			mutate: func(v *VocabularyConfig) {
				v.RequiredSections = []SectionNames{
					{Name: "education", Keywords: []string{"education"}},
				}
			},
			wantErr: true,
		},
		{
			name: "alias without skill name",
			mutate: func(v *VocabularyConfig) {
				v.SkillAliases = append(v.SkillAliases, SkillAlias{Aliases: []string{"x"}})
			},
			wantErr: true,
		},
		{
			name: "alias without variants",
			mutate: func(v *VocabularyConfig) {
				v.SkillAliases = append(v.SkillAliases, SkillAlias{Skill: "rust"})
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := DefaultVocabulary()
			tt.mutate(&v)

			err := v.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
