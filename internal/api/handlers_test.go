package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diz-unimr/adt2fhir/internal/stats"
)

func TestHealthAlwaysOK(t *testing.T) {
	s := NewServer(stats.NewRegistry())
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /healthz = %d, want 200", rec.Code)
	}
}

func TestReadyGatedOnSetReady(t *testing.T) {
	s := NewServer(stats.NewRegistry())

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("GET /readyz before SetReady = %d, want 503", rec.Code)
	}

	s.SetReady()
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /readyz after SetReady = %d, want 200", rec.Code)
	}
}

func TestStatsServesCounters(t *testing.T) {
	registry := stats.NewRegistry()
	registry.IncReceived(0)
	registry.IncPublished(0)

	s := NewServer(registry)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /stats = %d, want 200", rec.Code)
	}

	var body struct {
		Workers map[string]stats.Counters `json:"workers"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal /stats body: %v", err)
	}
	if body.Workers["0"].Received != 1 || body.Workers["0"].Published != 1 {
		t.Errorf("workers[0] = %+v", body.Workers["0"])
	}
}
