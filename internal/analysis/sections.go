package analysis

import (
	"strings"

	"resumetric/internal/config"
)

// Sections holds the skills/projects/experience segments of a resume as
// recovered by the word-scan splitter.
type Sections struct {
	Skills     string
	Projects   string
	Experience string
}

// ExtractSections splits cleaned resume text into sections by scanning words
// for section trigger keywords. A trigger switches the current section and
// every word from then on (including the trigger itself) accumulates into it.
// Crude, but it needs no layout information and behaves identically on text
// that has been stripped of punctuation and newlines.
func ExtractSections(text string) Sections {
	var skills, projects, experience strings.Builder
	var current *strings.Builder

	for _, word := range strings.Fields(text) {
		switch word {
		case "skills", "technical":
			current = &skills
		case "projects", "project":
			current = &projects
		case "experience", "internship":
			current = &experience
		}

		if current != nil {
			current.WriteString(word)
			current.WriteString(" ")
		}
	}

	return Sections{
		Skills:     skills.String(),
		Projects:   projects.String(),
		Experience: experience.String(),
	}
}

// SectionPresence reports, for each named section, whether any of its keyword
// variants is substring-present in the normalized text.
func SectionPresence(text string, sections []config.SectionNames) map[string]bool {
	found := make(map[string]bool, len(sections))
	for _, s := range sections {
		for _, k := range s.Keywords {
			if strings.Contains(text, k) {
				found[s.Name] = true
				break
			}
		}
	}
	return found
}
