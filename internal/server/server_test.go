package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/orchestrator"
)

func newTestServer(t *testing.T, apiKey string) *Server {
	t.Helper()
	orch := orchestrator.New(model.DefaultConfig())
	if err := orch.Seed(); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	cfg := model.ServerConfig{
		Addr:              ":0",
		APIKey:            apiKey,
		RequestsPerSecond: 100,
		Burst:             100,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(orch, cfg, logger)
}

func doJSON(t *testing.T, s *Server, method, path, apiKey, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if apiKey != "" {
		req.Header.Set("x-api-key", apiKey)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestServer_HealthIsOpen(t *testing.T) {
	s := newTestServer(t, "secret")

	rec := doJSON(t, s, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}

func TestServer_MissingAPIKeyRejected(t *testing.T) {
	s := newTestServer(t, "secret")

	rec := doJSON(t, s, http.MethodPost, "/validate", "", `{"input_text":"hello there"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without an API key, got %d", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPost, "/validate", "wrong", `{"input_text":"hello there"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 with a wrong API key, got %d", rec.Code)
	}
}

func TestServer_NoAPIKeyConfiguredAllowsRequests(t *testing.T) {
	s := newTestServer(t, "")

	rec := doJSON(t, s, http.MethodGet, "/validations/summary", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("Expected open access without a configured key, got %d", rec.Code)
	}
}

func TestServer_ValidateText(t *testing.T) {
	s := newTestServer(t, "secret")

	rec := doJSON(t, s, http.MethodPost, "/validate", "secret",
		`{"input_text":"Deployed at https://example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var report model.TextReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(report.Outcomes) != 6 {
		t.Errorf("Expected 6 outcomes, got %d", len(report.Outcomes))
	}
	if !report.DeceptionDetected {
		t.Error("Expected deception flagged for an unverified deployment claim")
	}

	// The wire format surfaces deception_type verbatim
	if !strings.Contains(rec.Body.String(), `"deception_type":"unverified_claim"`) {
		t.Errorf("Expected deception_type in the payload: %s", rec.Body.String())
	}
}

func TestServer_ValidateRejectsNonStringText(t *testing.T) {
	s := newTestServer(t, "secret")

	for _, body := range []string{
		`{"input_text":12345}`,
		`{"input_text":["a","b"]}`,
		`{"input_text":{"nested":true}}`,
		`{}`,
	} {
		rec := doJSON(t, s, http.MethodPost, "/validate", "secret", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestServer_DetectEndpoint(t *testing.T) {
	s := newTestServer(t, "secret")

	rec := doJSON(t, s, http.MethodPost, "/detect", "secret",
		`{"text":"That's wrong, it's not deployed","context":{"context":"review"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Outcomes []model.DetectionOutcome `json:"outcomes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(payload.Outcomes) != 6 {
		t.Fatalf("Expected 6 outcomes, got %d", len(payload.Outcomes))
	}
	if payload.Outcomes[0].Category != model.CategoryUserCorrection || !payload.Outcomes[0].Detected {
		t.Errorf("Expected a detected user correction first, got %+v", payload.Outcomes[0])
	}
}

func TestServer_RegisterStatementAndRecords(t *testing.T) {
	s := newTestServer(t, "secret")

	rec := doJSON(t, s, http.MethodPost, "/statements", "secret",
		`{"id":"stmt_http","category":"architecture","statement":"Handlers never touch the registry directly","timestamp":"2026-03-01T12:00:00Z","tags":["architecture"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var verdict model.CoherenceVerdict
	if err := json.Unmarshal(rec.Body.Bytes(), &verdict); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if verdict.SubjectID != "stmt_http" {
		t.Errorf("Expected verdict for stmt_http, got %q", verdict.SubjectID)
	}

	rec = doJSON(t, s, http.MethodGet, "/statements/stmt_http/records", "secret", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var records map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if found, _ := records["found"].(bool); !found {
		t.Errorf("Expected the record to be found, got %v", records)
	}
}

func TestServer_RecordsForUnknownID(t *testing.T) {
	s := newTestServer(t, "secret")

	rec := doJSON(t, s, http.MethodGet, "/statements/missing/records", "secret", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 (not-found is data), got %d", rec.Code)
	}
	var records map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if found, _ := records["found"].(bool); found {
		t.Error("Expected found=false for an unknown id")
	}
}

func TestServer_StatusEndpoint(t *testing.T) {
	s := newTestServer(t, "secret")

	rec := doJSON(t, s, http.MethodGet, "/status", "secret", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var status map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if _, ok := status["statements"]; !ok {
		t.Error("Expected statements in the status payload")
	}
	if _, ok := status["validations"]; !ok {
		t.Error("Expected validations in the status payload")
	}
}

func TestServer_RateLimitExceeded(t *testing.T) {
	orch := orchestrator.New(model.DefaultConfig())
	cfg := model.ServerConfig{RequestsPerSecond: 1, Burst: 1}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(orch, cfg, logger)

	first := doJSON(t, s, http.MethodGet, "/healthz", "", "")
	if first.Code != http.StatusOK {
		t.Fatalf("Expected first request to pass, got %d", first.Code)
	}
	second := doJSON(t, s, http.MethodGet, "/healthz", "", "")
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429 after the burst is spent, got %d", second.Code)
	}
}
