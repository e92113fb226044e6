package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/compile", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/compile/{format}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	for _, path := range []string{"/compile", "/compile/yaml"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, path, http.NoBody))
	}

	if v := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/compile", "200")); v < 1 {
		t.Errorf("expected http_requests_total{path=/compile} >= 1, got %f", v)
	}
	// path label uses the route pattern, not the raw URL
	if v := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/compile/{format}", "400")); v < 1 {
		t.Errorf("expected http_requests_total{path=/compile/{format}} >= 1, got %f", v)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected http_request_duration_seconds to have observations")
	}
}

func TestMiddleware_StatusWithoutWriteHeader(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	if v := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/health", "200")); v < 1 {
		t.Errorf("implicit 200 not recorded, got %f", v)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "unknown"},
		{"/compile", "/compile"},
		{"/health", "/health"},
	}

	for _, tc := range tests {
		if got := normalizePath(tc.input); got != tc.expected {
			t.Errorf("normalizePath(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestCompileMetrics_Lint(t *testing.T) {
	collectors := map[string]prometheus.Collector{
		"compilations_total":       CompilationsTotal,
		"compile_errors_total":     CompileErrorsTotal,
		"compiled_fields":          CompiledFields,
		"compile_duration_seconds": CompileDuration,
	}
	for name, c := range collectors {
		problems, err := testutil.CollectAndLint(c)
		if err != nil {
			t.Errorf("%s: lint failed: %v", name, err)
			continue
		}
		for _, p := range problems {
			if strings.Contains(p.Text, "counter metrics should have \"_total\" suffix") {
				t.Errorf("%s: %s", name, p.Text)
			}
		}
	}
}
