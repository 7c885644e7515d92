package views

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"delivery_insights/pkg/api/session"
)

func TestViewHandlersRejectNonGET(t *testing.T) {
	h := NewHandler(session.NewHolder())

	rec := httptest.NewRecorder()
	h.HandleOverview(rec, httptest.NewRequest("POST", "/api/overview", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST: expected 405, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.HandleStatus(rec, httptest.NewRequest("DELETE", "/api/status?project=Alpha", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE: expected 405, got %d", rec.Code)
	}
}

func TestViewHandlersAnswerPreflight(t *testing.T) {
	h := NewHandler(session.NewHolder())

	rec := httptest.NewRecorder()
	h.HandleGantt(rec, httptest.NewRequest("OPTIONS", "/api/gantt", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("OPTIONS: expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, OPTIONS" {
		t.Errorf("unexpected allow-methods header %q", got)
	}
}

func TestViewHandlersServe503UntilUpload(t *testing.T) {
	h := NewHandler(session.NewHolder())

	rec := httptest.NewRecorder()
	h.HandleMilestones(rec, httptest.NewRequest("GET", "/api/milestones", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
}
