package data

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"delivery_insights/pkg/api/session"
	"delivery_insights/pkg/core/dataset"
	"delivery_insights/pkg/core/rollup"
)

// Handler serves dataset upload and project listing.
type Handler struct {
	Session *session.Holder
}

func NewHandler(s *session.Holder) *Handler {
	return &Handler{Session: s}
}

type UploadResponse struct {
	Generation string   `json:"generation"`
	Records    int      `json:"records"`
	Projects   []string `json:"projects"`
}

// HandleUpload replaces the session snapshot with the uploaded workbook.
// Accepts a multipart "file" field or the raw request body.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var src io.Reader = r.Body
	if file, _, err := r.FormFile("file"); err == nil {
		defer file.Close()
		src = file
	}

	snap, err := dataset.LoadReader(src)
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading data: %v", err), http.StatusBadRequest)
		return
	}

	h.Session.Replace(snap)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(UploadResponse{
		Generation: snap.Generation.String(),
		Records:    len(snap.Records),
		Projects:   rollup.ProjectNames(snap),
	})
}

// HandleProjects lists the sorted project names of the current snapshot.
func (h *Handler) HandleProjects(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	snap, err := h.Session.Current()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	json.NewEncoder(w).Encode(rollup.ProjectNames(snap))
}
