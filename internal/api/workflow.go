package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"hermes/internal/workflow"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

// WorkflowRunner executes workflow requests.
type WorkflowRunner interface {
	Run(ctx context.Context, req *workflow.Request) *workflow.Response
}

// RunHistory exposes stored run records. Optional.
type RunHistory interface {
	Get(ctx context.Context, id string) (*workflow.RunRecord, error)
	RecentIDs(ctx context.Context, limit int) ([]string, error)
}

// WorkflowHandler serves the workflow endpoints.
type WorkflowHandler struct {
	runner  WorkflowRunner
	history RunHistory
	log     *logger.Logger
}

// NewWorkflowHandler creates the handler. history may be nil.
func NewWorkflowHandler(runner WorkflowRunner, history RunHistory, log *logger.Logger) *WorkflowHandler {
	return &WorkflowHandler{
		runner:  runner,
		history: history,
		log:     log,
	}
}

// HandleRun serves POST /workflow/run.
func (h *WorkflowHandler) HandleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req workflow.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warnf("Rejected malformed workflow request: %v", err)
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp := h.runner.Run(r.Context(), &req)

	writeJSON(w, http.StatusOK, resp)
}

// HandleRuns serves GET /workflow/runs and GET /workflow/runs/{id}.
func (h *WorkflowHandler) HandleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.history == nil {
		writeError(w, http.StatusNotImplemented, "run history is not configured")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/workflow/runs")
	id = strings.Trim(id, "/")

	if id == "" {
		ids, err := h.history.RecentIDs(r.Context(), 20)
		if err != nil {
			h.log.Errorf("Failed to list runs: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to list runs")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"runs": ids})
		return
	}

	record, err := h.history.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		h.log.Errorf("Failed to load run %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to load run")
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
