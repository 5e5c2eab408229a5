package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resumetric/internal/analysis"
	"resumetric/internal/config"
	"resumetric/internal/errors"
	"resumetric/internal/ml"
	"resumetric/internal/observability"
	"resumetric/internal/semantic"
	"resumetric/internal/types"
)

const testModelArtifact = `{
	"version": "1.0.0",
	"feature_names": ["word_count", "skill_count", "project_mentions", "bullet_count", "experience_years", "weak_phrase_count"],
	"weights": [0.05, 2.0, 1.5, 1.0, 2.5, -3.0],
	"intercept": 40.0
}`

func newTestServer(t *testing.T) (*Server, *observability.ObservabilityManager) {
	t.Helper()

	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	vocab := config.DefaultVocabulary()
	cfg := &config.Config{
		Engine: config.EngineConfig{
			MaxInputChars:     20000,
			MaxEmbeddingChars: 4000,
			TFIDFMaxFeatures:  500,
		},
		Embedding:  config.EmbeddingConfig{Provider: "static"},
		Vocabulary: vocab,
	}

	modelPath := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(modelPath, []byte(testModelArtifact), 0600); err != nil {
		t.Fatalf("failed to write model artifact: %v", err)
	}
	predictor, err := ml.NewPredictor(modelPath, analysis.NewExtractor(vocab), logger)
	if err != nil {
		t.Fatalf("failed to load model artifact: %v", err)
	}

	embedder := semantic.NewStaticEmbedder()
	engine := &Engine{
		Quality:   analysis.NewQualityScorer(vocab),
		Matcher:   analysis.NewMatcher(vocab, cfg.Engine.TFIDFMaxFeatures),
		Advisor:   analysis.NewAdvisor(vocab),
		Predictor: predictor,
		Gaps:      semantic.NewAnalyzer(embedder, vocab, cfg.Engine.MaxEmbeddingChars),
		Embedder:  embedder,
	}

	srv := NewServer(cfg, ServerConfig{
		Host:           "localhost",
		Port:           "0",
		Version:        "test",
		MaxRequestSize: 1024 * 1024,
	}, engine, logger)

	om, err := observability.NewObservabilityManager(
		observability.ObservabilityConfig{Enabled: false}, cfg)
	if err != nil {
		t.Fatalf("failed to create observability manager: %v", err)
	}

	return srv, om
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, r)
	return w
}

func TestQualityEndpoint(t *testing.T) {
	srv, om := newTestServer(t)
	handler := srv.createQualityHandler(om)

	body := `{"resumeText": "summary\nExperienced developer.\nskills python, go\n- Developed REST APIs\nprojects\n- Built data pipeline"}`
	w := postJSON(t, handler, "/quality", body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
	}

	var report types.QualityReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if report.ResumeScore <= 0 || report.ResumeScore > 100 {
		t.Errorf("ResumeScore = %f, want in (0, 100]", report.ResumeScore)
	}
	if report.Interpretation == "" {
		t.Error("Interpretation should not be empty")
	}
}

func TestQualityEndpointValidation(t *testing.T) {
	srv, om := newTestServer(t)
	handler := srv.createQualityHandler(om)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"blank resume", `{"resumeText": "   "}`, http.StatusBadRequest},
		{"malformed json", `{"resumeText": `, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, handler, "/quality", tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}

			var resp ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if resp.Error == "" {
				t.Error("error response should carry an error field")
			}
		})
	}
}

func TestQualityEndpointRequiresJSONContentType(t *testing.T) {
	srv, om := newTestServer(t)
	handler := srv.createQualityHandler(om)

	r := httptest.NewRequest(http.MethodPost, "/quality", strings.NewReader(`{"resumeText": "x"}`))
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status without content-type = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestMatchEndpoint(t *testing.T) {
	srv, om := newTestServer(t)
	handler := srv.createMatchHandler(om)

	body := `{"resumeText": "react developer with api projects", "jobDescription": "react developer"}`
	w := postJSON(t, handler, "/match", body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
	}

	var report types.MatchReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if report.Verdict == "" {
		t.Error("Verdict should not be empty")
	}
}

func TestGapsEndpoint(t *testing.T) {
	srv, om := newTestServer(t)
	handler := srv.createGapsHandler(om)

	body := `{"resumeText": "python developer", "jobDescription": "python developer"}`
	w := postJSON(t, handler, "/gaps", body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
	}

	var report types.GapReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if report.Verdict == "" {
		t.Error("Verdict should not be empty")
	}
	if report.MissingSkills == nil {
		t.Error("MissingSkills should be non-nil")
	}
}

func TestGapsEndpointUnavailable(t *testing.T) {
	srv, om := newTestServer(t)
	srv.Engine.Gaps = nil
	handler := srv.createGapsHandler(om)

	w := postJSON(t, handler, "/gaps", `{"resumeText": "x", "jobDescription": "y"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}

func TestPredictEndpoint(t *testing.T) {
	srv, om := newTestServer(t)
	handler := srv.createPredictHandler(om)

	w := postJSON(t, handler, "/predict", `{"resumeText": "experienced python developer with 3 years experience"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
	}

	var score types.PredictedScore
	if err := json.Unmarshal(w.Body.Bytes(), &score); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if score.ModelVersion != "1.0.0" {
		t.Errorf("ModelVersion = %q, want %q", score.ModelVersion, "1.0.0")
	}
}

func TestPredictEndpointUnavailable(t *testing.T) {
	srv, om := newTestServer(t)
	srv.Engine.Predictor = nil
	handler := srv.createPredictHandler(om)

	w := postJSON(t, handler, "/predict", `{"resumeText": "x"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.healthHandler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", resp["status"])
	}
}

func TestHealthEndpointDegraded(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.Engine.Predictor = nil

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.healthHandler(w, r)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["status"] != "degraded" {
		t.Errorf("status = %v, want degraded", resp["status"])
	}
}

func TestAuthMiddleware(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.APIKeys = map[string]bool{"valid-key-12345": true}

	next := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	handler := srv.authMiddleware(next)

	tests := []struct {
		name       string
		apiKey     string
		bearer     string
		wantStatus int
	}{
		{"missing key", "", "", http.StatusUnauthorized},
		{"invalid key", "wrong-key", "", http.StatusUnauthorized},
		{"valid header key", "valid-key-12345", "", http.StatusOK},
		{"valid bearer token", "", "Bearer valid-key-12345", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/quality", nil)
			if tt.apiKey != "" {
				r.Header.Set("X-API-Key", tt.apiKey)
			}
			if tt.bearer != "" {
				r.Header.Set("Authorization", tt.bearer)
			}
			w := httptest.NewRecorder()
			handler(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestAuthMiddlewareNoKeysConfigured(t *testing.T) {
	srv, _ := newTestServer(t)
	srv.APIKeys = map[string]bool{}

	handler := srv.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodPost, "/quality", nil)
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status without configured keys = %d, want %d", w.Code, http.StatusOK)
	}
}
