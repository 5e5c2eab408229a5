package semantic

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"resumetric/internal/analysis"
	"resumetric/internal/config"
	"resumetric/internal/types"
)

// Verdict thresholds for the semantic score. Deliberately lower than the
// lexical matcher's 75/55: embedding similarity compresses toward the middle
// of the range, so the same labels sit at different cutoffs.
const (
	strongSemanticThreshold   = 70
	moderateSemanticThreshold = 50
)

// Probe similarity thresholds. A probe sentence is embedded and compared to
// the resume vector; below the threshold the capability is reported missing.
const (
	skillProbeThreshold          = 0.55
	projectProbeThreshold        = 0.55
	responsibilityProbeThreshold = 0.50
	domainProbeThreshold         = 0.55
)

var (
	jdExperienceRe     = regexp.MustCompile(`(\d+)\+?\s+years`)
	resumeExperienceRe = regexp.MustCompile(`(\d+)\s+years`)
)

// Analyzer runs embedding-based gap analysis of a resume against a JD.
// Probe sentences are fixed strings, so their embeddings are memoized for
// the analyzer's lifetime.
type Analyzer struct {
	embedder   Embedder
	vocab      config.VocabularyConfig
	maxChars   int
	probeCache sync.Map // probe text -> []float64
}

// NewAnalyzer creates a semantic gap analyzer. maxChars bounds the text sent
// to the embedder; probes are short and never truncated.
func NewAnalyzer(embedder Embedder, vocab config.VocabularyConfig, maxChars int) *Analyzer {
	return &Analyzer{
		embedder: embedder,
		vocab:    vocab,
		maxChars: maxChars,
	}
}

// Analyze embeds both texts and derives the match score plus the gap
// findings. Inputs are lowercased and byte-truncated before embedding. The
// only error source is the embedder; every gap detector degrades to an empty
// finding when its precondition is absent.
func (a *Analyzer) Analyze(ctx context.Context, resumeText, jdText string) (types.GapReport, error) {
	tracer := otel.Tracer("resumetric.semantic")
	ctx, span := tracer.Start(ctx, "semantic.full_gap_analysis")
	defer span.End()

	resume := analysis.Truncate(strings.ToLower(resumeText), a.maxChars)
	jd := analysis.Truncate(strings.ToLower(jdText), a.maxChars)

	span.SetAttributes(
		attribute.Int("input.resume_length", len(resume)),
		attribute.Int("input.job_length", len(jd)),
	)

	resumeVec, err := a.embedder.Embed(ctx, resume)
	if err != nil {
		span.RecordError(err)
		return types.GapReport{}, err
	}
	jdVec, err := a.embedder.Embed(ctx, jd)
	if err != nil {
		span.RecordError(err)
		return types.GapReport{}, err
	}

	score := Cosine(resumeVec, jdVec) * 100

	missingSkills, err := a.skillGaps(ctx, resume, resumeVec, jd)
	if err != nil {
		return types.GapReport{}, err
	}
	missingProjects, err := a.projectGap(ctx, resumeVec)
	if err != nil {
		return types.GapReport{}, err
	}
	missingResponsibilities, err := a.responsibilityGaps(ctx, resumeVec, jd)
	if err != nil {
		return types.GapReport{}, err
	}
	missingDomain, err := a.domainGap(ctx, resumeVec, jd)
	if err != nil {
		return types.GapReport{}, err
	}

	report := types.GapReport{
		SemanticMatchScore:      analysis.Round2(score),
		Verdict:                 semanticVerdict(score),
		MissingSkills:           missingSkills,
		MissingExperience:       experienceGap(resume, jd),
		MissingProjects:         missingProjects,
		MissingResponsibilities: missingResponsibilities,
		MissingDomain:           missingDomain,
	}

	span.SetAttributes(
		attribute.Float64("semantic.score", report.SemanticMatchScore),
		attribute.String("semantic.verdict", report.Verdict),
		attribute.Int("semantic.missing_skills", len(report.MissingSkills)),
	)
	return report, nil
}

func semanticVerdict(score float64) string {
	switch {
	case score >= strongSemanticThreshold:
		return "STRONG MATCH"
	case score >= moderateSemanticThreshold:
		return "MODERATE MATCH"
	default:
		return "WEAK MATCH"
	}
}

// skillGaps checks each configured skill the JD names. An alias hit in the
// resume settles it cheaply; otherwise a probe embedding decides.
func (a *Analyzer) skillGaps(ctx context.Context, resumeText string, resumeVec []float64, jd string) ([]string, error) {
	missing := []string{}
	for _, alias := range a.vocab.SkillAliases {
		if !strings.Contains(jd, alias.Skill) {
			continue
		}

		mentioned := false
		for _, name := range alias.Aliases {
			if strings.Contains(resumeText, name) {
				mentioned = true
				break
			}
		}
		if mentioned {
			continue
		}

		sim, err := a.probeSimilarity(ctx, "experience with "+alias.Skill, resumeVec)
		if err != nil {
			return nil, err
		}
		if sim < skillProbeThreshold {
			missing = append(missing, alias.Skill)
		}
	}
	return missing, nil
}

// experienceGap compares the JD's stated year requirement to the largest
// year figure on the resume. The JD pattern tolerates a trailing plus; the
// resume pattern does not, matching how people actually write each.
func experienceGap(resume, jd string) string {
	m := jdExperienceRe.FindStringSubmatch(jd)
	if m == nil {
		return ""
	}
	required, _ := strconv.Atoi(m[1])

	resumeYears := 0
	for _, rm := range resumeExperienceRe.FindAllStringSubmatch(resume, -1) {
		if n, err := strconv.Atoi(rm[1]); err == nil && n > resumeYears {
			resumeYears = n
		}
	}

	if resumeYears < required {
		return fmt.Sprintf("JD requires %d+ years, resume shows %d", required, resumeYears)
	}
	return ""
}

func (a *Analyzer) projectGap(ctx context.Context, resumeVec []float64) (string, error) {
	sim, err := a.probeSimilarity(ctx, "hands-on real world projects", resumeVec)
	if err != nil {
		return "", err
	}
	if sim < projectProbeThreshold {
		return "JD expects strong project experience", nil
	}
	return "", nil
}

func (a *Analyzer) responsibilityGaps(ctx context.Context, resumeVec []float64, jd string) ([]string, error) {
	var gaps []string
	for _, keyword := range a.vocab.ResponsibilityKeywords {
		if !strings.Contains(jd, keyword) {
			continue
		}
		sim, err := a.probeSimilarity(ctx, fmt.Sprintf("experience to %s systems", keyword), resumeVec)
		if err != nil {
			return nil, err
		}
		if sim < responsibilityProbeThreshold {
			gaps = append(gaps, "Missing responsibility: "+keyword)
		}
	}
	return gaps, nil
}

// domainGap probes only the first configured domain the JD mentions.
func (a *Analyzer) domainGap(ctx context.Context, resumeVec []float64, jd string) (string, error) {
	domain := ""
	for _, d := range a.vocab.DomainKeywords {
		if strings.Contains(jd, d) {
			domain = d
			break
		}
	}
	if domain == "" {
		return "", nil
	}

	sim, err := a.probeSimilarity(ctx, domain+" domain experience", resumeVec)
	if err != nil {
		return "", err
	}
	if sim < domainProbeThreshold {
		return fmt.Sprintf("No clear %s domain experience", domain), nil
	}
	return "", nil
}

// probeSimilarity embeds a probe sentence (memoized) and compares it to the
// resume vector.
func (a *Analyzer) probeSimilarity(ctx context.Context, probe string, resumeVec []float64) (float64, error) {
	if cached, ok := a.probeCache.Load(probe); ok {
		return Cosine(cached.([]float64), resumeVec), nil
	}

	vec, err := a.embedder.Embed(ctx, probe)
	if err != nil {
		return 0, err
	}
	a.probeCache.Store(probe, vec)
	return Cosine(vec, resumeVec), nil
}
