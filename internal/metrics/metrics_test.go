package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/haskel/cpuwatch/internal/counters"
	"github.com/haskel/cpuwatch/internal/monitor"
)

func testStore() *monitor.Store {
	store := monitor.NewStore(2)
	store.Bootstrap(make([]counters.Snapshot, 2))
	store.SetUsage(monitor.Usage{37.5, 25, 50})
	return store
}

func TestCollector_Count(t *testing.T) {
	c := NewCollector(testStore())

	// 3 usage series + samples + cores
	if n := testutil.CollectAndCount(c); n != 5 {
		t.Errorf("expected 5 metrics, got %d", n)
	}
}

func TestCollector_Values(t *testing.T) {
	c := NewCollector(testStore())

	expected := `
# HELP cpuwatch_cores Number of monitored logical cores.
# TYPE cpuwatch_cores gauge
cpuwatch_cores 2
# HELP cpuwatch_samples_total Counter samples taken since start, including the bootstrap sample.
# TYPE cpuwatch_samples_total counter
cpuwatch_samples_total 1
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected), "cpuwatch_cores", "cpuwatch_samples_total"); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
}

func TestCollector_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(NewCollector(testStore())); err != nil {
		t.Fatalf("failed to register collector: %v", err)
	}
}

func TestHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	rec := httptest.NewRecorder()

	Handler(testStore()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()

	t.Run("Contains aggregate usage", func(t *testing.T) {
		if !strings.Contains(body, `cpuwatch_usage_percent{core="all"} 37.5`) {
			t.Error("metrics output should contain the aggregate usage")
		}
	})

	t.Run("Contains per-core usage", func(t *testing.T) {
		if !strings.Contains(body, `cpuwatch_usage_percent{core="1"} 50`) {
			t.Error("metrics output should contain core 1 usage")
		}
	})

	t.Run("Contains Go runtime metrics", func(t *testing.T) {
		if !strings.Contains(body, "go_goroutines") {
			t.Error("metrics output should contain Go runtime metrics")
		}
	})
}
