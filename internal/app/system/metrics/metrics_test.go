package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/teamhub/internal/app/system/metrics"
	"github.com/go-chi/chi/v5"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := metrics.New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/users/{userId}/confirmation", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Handle("/metrics", m.Handler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/users/abc/confirmation", nil))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()

	want := `http_requests_total{method="GET",path="/api/users/{userId}/confirmation",status="418"} 1`
	if !strings.Contains(body, want) {
		t.Errorf("missing %q in exposition:\n%s", want, body)
	}
	if strings.Contains(body, `path="/api/users/abc/confirmation"`) {
		t.Error("raw path leaked into labels")
	}
}

func TestDomainCounters(t *testing.T) {
	m := metrics.New()
	m.Invitation("sent")
	m.Login("failed")
	m.Login("failed")
	m.Confirmation("ok")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()

	for _, want := range []string{
		`teamhub_invitations_total{result="sent"} 1`,
		`teamhub_logins_total{result="failed"} 2`,
		`teamhub_confirmations_total{result="ok"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestNilMetrics(t *testing.T) {
	var m *metrics.Metrics
	m.Invitation("sent")
	m.Login("ok")
	m.Confirmation("ok")
}
