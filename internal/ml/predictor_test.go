package ml

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"resumetric/internal/analysis"
	"resumetric/internal/config"
	apperrors "resumetric/internal/errors"
)

const validArtifact = `{
	"version": "1.0.0",
	"feature_names": ["word_count", "skill_count", "project_mentions", "bullet_count", "experience_years", "weak_phrase_count"],
	"weights": [0.05, 2.0, 1.5, 1.0, 2.5, -3.0],
	"intercept": 40.0
}`

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write artifact: %v", err)
	}
	return path
}

func newTestExtractor() *analysis.Extractor {
	return analysis.NewExtractor(config.DefaultVocabulary())
}

func TestPredictorPredict(t *testing.T) {
	path := writeArtifact(t, validArtifact)

	predictor, err := NewPredictor(path, newTestExtractor(), nil)
	if err != nil {
		t.Fatalf("NewPredictor() error = %v", err)
	}

	// Features: 16 words, 3 skills, 1 project mention, 2 bullets, 2 years,
	// 1 weak phrase. Score = 0.05*16 + 2*3 + 1.5*1 + 1*2 + 2.5*2 - 3*1 + 40.
	text := "skills react python\n- built api project\n- optimized database\n2 years experience worked on things"
	got := predictor.Predict(text)

	if got.MLResumeScore != 52.3 {
		t.Errorf("mlResumeScore = %v, want 52.3", got.MLResumeScore)
	}
	if got.ModelVersion != "1.0.0" {
		t.Errorf("modelVersion = %q, want 1.0.0", got.ModelVersion)
	}
}

func TestPredictorEmptyInput(t *testing.T) {
	path := writeArtifact(t, validArtifact)

	predictor, err := NewPredictor(path, newTestExtractor(), nil)
	if err != nil {
		t.Fatalf("NewPredictor() error = %v", err)
	}

	got := predictor.Predict("")
	if got.MLResumeScore != 40.0 {
		t.Errorf("mlResumeScore = %v, want the intercept 40.0 for empty input", got.MLResumeScore)
	}
}

func TestPredictorLoadFailures(t *testing.T) {
	tests := []struct {
		name         string
		artifact     string
		expectedCode string
	}{
		{
			name:         "malformed json",
			artifact:     `{"version": "1.0.0", "weights": [`,
			expectedCode: apperrors.ErrCodeModelMalformed,
		},
		{
			name:         "missing version",
			artifact:     `{"feature_names": ["word_count", "skill_count", "project_mentions", "bullet_count", "experience_years", "weak_phrase_count"], "weights": [1, 1, 1, 1, 1, 1], "intercept": 0}`,
			expectedCode: apperrors.ErrCodeModelMalformed,
		},
		{
			name:         "feature order mismatch",
			artifact:     `{"version": "1.0.0", "feature_names": ["skill_count", "word_count", "project_mentions", "bullet_count", "experience_years", "weak_phrase_count"], "weights": [1, 1, 1, 1, 1, 1], "intercept": 0}`,
			expectedCode: apperrors.ErrCodeModelVersion,
		},
		{
			name:         "wrong feature count",
			artifact:     `{"version": "1.0.0", "feature_names": ["word_count"], "weights": [1], "intercept": 0}`,
			expectedCode: apperrors.ErrCodeModelVersion,
		},
		{
			name:         "weight count mismatch",
			artifact:     `{"version": "1.0.0", "feature_names": ["word_count", "skill_count", "project_mentions", "bullet_count", "experience_years", "weak_phrase_count"], "weights": [1, 1], "intercept": 0}`,
			expectedCode: apperrors.ErrCodeModelMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeArtifact(t, tt.artifact)

			_, err := NewPredictor(path, newTestExtractor(), nil)
			if err == nil {
				t.Fatal("NewPredictor() succeeded, want error")
			}

			appErr, ok := err.(*apperrors.AppError)
			if !ok {
				t.Fatalf("error type = %T, want *AppError", err)
			}
			if appErr.Code != tt.expectedCode {
				t.Errorf("error code = %q, want %q", appErr.Code, tt.expectedCode)
			}
		})
	}
}

func TestPredictorMissingArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.json")

	_, err := NewPredictor(path, newTestExtractor(), nil)
	if err == nil {
		t.Fatal("NewPredictor() succeeded, want error")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("error type = %T, want *AppError", err)
	}
	if appErr.Code != apperrors.ErrCodeModelNotFound {
		t.Errorf("error code = %q, want %q", appErr.Code, apperrors.ErrCodeModelNotFound)
	}
}

func TestPredictorReloadSwapsVersion(t *testing.T) {
	path := writeArtifact(t, validArtifact)

	predictor, err := NewPredictor(path, newTestExtractor(), nil)
	if err != nil {
		t.Fatalf("NewPredictor() error = %v", err)
	}

	updated := `{
		"version": "1.1.0",
		"feature_names": ["word_count", "skill_count", "project_mentions", "bullet_count", "experience_years", "weak_phrase_count"],
		"weights": [0.05, 2.0, 1.5, 1.0, 2.5, -3.0],
		"intercept": 42.0
	}`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("failed to rewrite artifact: %v", err)
	}

	if err := predictor.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if predictor.Version() != "1.1.0" {
		t.Errorf("version after reload = %q, want 1.1.0", predictor.Version())
	}
}

func TestPredictorReloadKeepsPreviousOnFailure(t *testing.T) {
	path := writeArtifact(t, validArtifact)

	predictor, err := NewPredictor(path, newTestExtractor(), nil)
	if err != nil {
		t.Fatalf("NewPredictor() error = %v", err)
	}

	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("failed to rewrite artifact: %v", err)
	}

	if err := predictor.Reload(); err == nil {
		t.Fatal("Reload() succeeded with a corrupt artifact, want error")
	}
	if predictor.Version() != "1.0.0" {
		t.Errorf("version after failed reload = %q, want the previous 1.0.0", predictor.Version())
	}
}

func TestModelWatcherStartStop(t *testing.T) {
	path := writeArtifact(t, validArtifact)

	predictor, err := NewPredictor(path, newTestExtractor(), nil)
	if err != nil {
		t.Fatalf("NewPredictor() error = %v", err)
	}

	watcher := NewModelWatcher(path, 10*time.Millisecond, predictor, nil)
	if err := watcher.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := watcher.Start(); err == nil {
		t.Error("second Start() succeeded, want already-running error")
	}
	if err := watcher.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if err := watcher.Stop(); err != nil {
		t.Errorf("second Stop() error = %v, want nil", err)
	}
}
