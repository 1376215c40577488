package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/veridict/veridict/internal/detect"
	"github.com/veridict/veridict/internal/model"
)

type validateRequest struct {
	InputText json.RawMessage         `json:"input_text"`
	Text      json.RawMessage         `json:"text"`
	Context   *model.DetectionContext `json:"context"`
}

// textPayload returns the statement text or an error when the payload is
// missing or not a JSON string. Non-text input never reaches the core.
func (req validateRequest) textPayload() (string, error) {
	raw := req.InputText
	if len(raw) == 0 {
		raw = req.Text
	}
	if len(raw) == 0 {
		return "", errors.New("input_text is required")
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return "", errors.New("input_text must be a string")
	}
	return text, nil
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "veridict",
		"endpoints": []string{
			"POST /validate",
			"POST /detect",
			"POST /statements",
			"GET /statements/{id}/records",
			"GET /validations/summary",
			"GET /status",
			"GET /healthz",
			"GET /metrics",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleValidate scores ad-hoc text: all six detectors plus a coherence
// verdict over an ephemeral statement.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	text, err := req.textPayload()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.orch.ValidateText(text, req.Context)
	if err != nil {
		if errors.Is(err, detect.ErrInvalidText) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	verdictsTotal.WithLabelValues(string(report.Status)).Inc()
	for _, outcome := range report.Outcomes {
		if outcome.Detected {
			detectionsTotal.WithLabelValues(string(outcome.Category)).Inc()
		}
	}
	writeJSON(w, http.StatusOK, report)
}

// handleDetect runs the detectors only, without a coherence verdict
func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	text, err := req.textPayload()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	outcomes, err := detect.RunAll(text, req.Context)
	if err != nil {
		if errors.Is(err, detect.ErrInvalidText) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	for _, outcome := range outcomes {
		if outcome.Detected {
			detectionsTotal.WithLabelValues(string(outcome.Category)).Inc()
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"outcomes": outcomes})
}

// handleRegisterStatement stores a statement and returns its verdict
func (s *Server) handleRegisterStatement(w http.ResponseWriter, r *http.Request) {
	var st model.Statement
	if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	verdict, err := s.orch.RegisterAndValidate(st)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	verdictsTotal.WithLabelValues(string(verdict.Status)).Inc()
	writeJSON(w, http.StatusCreated, verdict)
}

func (s *Server) handleCheckRecords(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	writeJSON(w, http.StatusOK, s.orch.Validator.CheckRecords(id))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.orch.Validator.Summary())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.orch.SystemStatus())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
