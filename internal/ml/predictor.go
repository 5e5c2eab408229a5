package ml

import (
	"encoding/json"
	"os"
	"sync"

	"resumetric/internal/analysis"
	"resumetric/internal/errors"
	"resumetric/internal/types"
)

// expectedFeatures is the feature order the predictor computes. An artifact
// whose feature_names differ in name or order was trained against a different
// extractor and must be rejected.
var expectedFeatures = []string{
	"word_count",
	"skill_count",
	"project_mentions",
	"bullet_count",
	"experience_years",
	"weak_phrase_count",
}

// modelArtifact is the on-disk representation of the learned linear model.
type modelArtifact struct {
	Version      string    `json:"version"`
	FeatureNames []string  `json:"feature_names"`
	Weights      []float64 `json:"weights"`
	Intercept    float64   `json:"intercept"`
}

// Predictor scores resumes with a learned linear model distilled from the
// rule-based quality scorer. The artifact can be swapped at runtime via
// Reload; reads and swaps are safe to interleave.
type Predictor struct {
	mu        sync.RWMutex
	artifact  *modelArtifact
	path      string
	extractor *analysis.Extractor
	logger    *errors.Logger
}

// NewPredictor loads the model artifact at path. Load failure is returned to
// the caller; the predict capability cannot start without a model.
func NewPredictor(path string, extractor *analysis.Extractor, logger *errors.Logger) (*Predictor, error) {
	p := &Predictor{
		path:      path,
		extractor: extractor,
		logger:    logger,
	}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload re-reads the artifact from disk and swaps it in atomically. On
// failure the previous artifact stays active.
func (p *Predictor) Reload() error {
	artifact, err := loadArtifact(p.path)
	if err != nil {
		return err
	}

	p.mu.Lock()
	previous := p.artifact
	p.artifact = artifact
	p.mu.Unlock()

	if p.logger != nil {
		if previous == nil {
			p.logger.Info("Model artifact loaded",
				"path", p.path,
				"model_version", artifact.Version)
		} else {
			p.logger.Info("Model artifact reloaded",
				"path", p.path,
				"previous_version", previous.Version,
				"model_version", artifact.Version)
		}
	}
	return nil
}

// Predict computes the model score for a resume text.
func (p *Predictor) Predict(resumeText string) types.PredictedScore {
	p.mu.RLock()
	artifact := p.artifact
	p.mu.RUnlock()

	features := p.extractor.Features(resumeText).Values()

	score := artifact.Intercept
	for i, w := range artifact.Weights {
		score += w * features[i]
	}

	return types.PredictedScore{
		MLResumeScore: analysis.Round2(score),
		ModelVersion:  artifact.Version,
	}
}

// Version returns the active artifact version.
func (p *Predictor) Version() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.artifact.Version
}

func loadArtifact(path string) (*modelArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewModelError(errors.ErrCodeModelNotFound,
				"model artifact not found", err).WithContext("path", path)
		}
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
			"failed to read model artifact", err).WithContext("path", path)
	}

	var artifact modelArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, errors.NewModelError(errors.ErrCodeModelMalformed,
			"model artifact is not valid JSON", err).WithContext("path", path)
	}

	if err := validateArtifact(&artifact); err != nil {
		return nil, err
	}
	return &artifact, nil
}

// validateArtifact enforces the feature contract between the artifact and the
// extractor.
func validateArtifact(artifact *modelArtifact) error {
	if artifact.Version == "" {
		return errors.NewModelError(errors.ErrCodeModelMalformed,
			"model artifact has no version", nil)
	}
	if len(artifact.FeatureNames) != len(expectedFeatures) {
		return errors.NewModelError(errors.ErrCodeModelVersion,
			"model artifact feature count does not match the extractor", nil).
			WithContext("expected", len(expectedFeatures)).
			WithContext("actual", len(artifact.FeatureNames))
	}
	for i, name := range expectedFeatures {
		if artifact.FeatureNames[i] != name {
			return errors.NewModelError(errors.ErrCodeModelVersion,
				"model artifact feature order does not match the extractor", nil).
				WithContext("position", i).
				WithContext("expected", name).
				WithContext("actual", artifact.FeatureNames[i])
		}
	}
	if len(artifact.Weights) != len(expectedFeatures) {
		return errors.NewModelError(errors.ErrCodeModelMalformed,
			"model artifact weight count does not match its features", nil).
			WithContext("expected", len(expectedFeatures)).
			WithContext("actual", len(artifact.Weights))
	}
	return nil
}
