package views

import (
	"encoding/json"
	"net/http"

	"delivery_insights/pkg/api/session"
	"delivery_insights/pkg/core/dataset"
	"delivery_insights/pkg/core/gantt"
	"delivery_insights/pkg/core/rollup"
)

// Handler serves the aggregation and timeline views.
type Handler struct {
	Session *session.Holder
}

func NewHandler(s *session.Holder) *Handler {
	return &Handler{Session: s}
}

// snapshot fetches the session snapshot or writes the standard 503.
func (h *Handler) snapshot(w http.ResponseWriter) (*dataset.Snapshot, bool) {
	snap, err := h.Session.Current()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return nil, false
	}
	return snap, true
}

// guardGET writes the CORS headers, answers preflight, and rejects
// non-GET methods. Returns false when the request is already handled.
func guardGET(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return false
	}
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}

	w.Header().Set("Content-Type", "application/json")
	return true
}

// HandleStatus returns the per-phase bucket percentages for one project.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if !guardGET(w, r) {
		return
	}
	snap, ok := h.snapshot(w)
	if !ok {
		return
	}

	project := r.URL.Query().Get("project")
	if project == "" {
		http.Error(w, "project parameter is required", http.StatusBadRequest)
		return
	}

	filter := rollup.StatusFilter{
		Sprint:     r.URL.Query().Get("sprint"),
		Stage:      r.URL.Query().Get("stage"),
		Complexity: r.URL.Query().Get("complexity"),
		DevName:    r.URL.Query().Get("dev_name"),
	}

	json.NewEncoder(w).Encode(rollup.StatusTable(snap, project, filter))
}

// HandleOverview returns the landing-page rows for all projects.
func (h *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	if !guardGET(w, r) {
		return
	}
	snap, ok := h.snapshot(w)
	if !ok {
		return
	}
	json.NewEncoder(w).Encode(rollup.Overview(snap))
}

// HandleMilestones returns the seven-checkpoint completion table.
func (h *Handler) HandleMilestones(w http.ResponseWriter, r *http.Request) {
	if !guardGET(w, r) {
		return
	}
	snap, ok := h.snapshot(w)
	if !ok {
		return
	}
	json.NewEncoder(w).Encode(rollup.Milestones(snap))
}

// HandleGantt returns timeline intervals for one project.
func (h *Handler) HandleGantt(w http.ResponseWriter, r *http.Request) {
	if !guardGET(w, r) {
		return
	}
	snap, ok := h.snapshot(w)
	if !ok {
		return
	}

	project := r.URL.Query().Get("project")
	if project == "" {
		http.Error(w, "project parameter is required", http.StatusBadRequest)
		return
	}

	filter := gantt.Filter{
		Sprint:  r.URL.Query().Get("sprint"),
		Stage:   r.URL.Query().Get("stage"),
		DevLead: r.URL.Query().Get("dev_lead"),
	}

	intervals := gantt.DeriveIntervals(snap, project, filter)
	if intervals == nil {
		intervals = []gantt.Interval{}
	}
	json.NewEncoder(w).Encode(intervals)
}

// HandleCharts returns label/count pairs for one chartable column.
func (h *Handler) HandleCharts(w http.ResponseWriter, r *http.Request) {
	if !guardGET(w, r) {
		return
	}
	snap, ok := h.snapshot(w)
	if !ok {
		return
	}

	project := r.URL.Query().Get("project")
	if project == "" {
		http.Error(w, "project parameter is required", http.StatusBadRequest)
		return
	}
	column := r.URL.Query().Get("column")
	if column == "" {
		column = rollup.ChartDevType
	}

	entries, err := rollup.Distribution(snap, project, column)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if entries == nil {
		entries = []rollup.DistributionEntry{}
	}
	json.NewEncoder(w).Encode(entries)
}
