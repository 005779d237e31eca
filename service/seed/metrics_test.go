package seed

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_ObserveRun(t *testing.T) {
	m := NewMetrics()
	m.ObserveRun(&Result{
		Categories: 10, Items: 100, Attributes: 1000, Denormalized: 99, Skipped: 1, Batches: 12,
		Steps:     []StepTiming{{Name: "items", Elapsed: 2 * time.Second}},
		TotalTime: 3 * time.Second,
	}, nil)

	if got := testutil.ToFloat64(m.rows.WithLabelValues("items")); got != 100 {
		t.Errorf("rows{items} = %v, want 100", got)
	}
	if got := testutil.ToFloat64(m.batches); got != 12 {
		t.Errorf("batches = %v, want 12", got)
	}
	if got := testutil.ToFloat64(m.stepSeconds.WithLabelValues("items")); got != 2 {
		t.Errorf("step_seconds{items} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.lastSuccess.WithLabelValues("seed")); got == 0 {
		t.Error("last_success not set")
	}
}

func TestMetrics_FailureByPhase(t *testing.T) {
	m := NewMetrics()
	err := &PhaseError{Phase: PhaseAttributes, Table: "item_attributes", Batch: 3, Err: errors.New("boom")}
	m.ObserveRun(&Result{Items: 5}, err)
	m.ObserveDenormalize(nil, errors.New("plain"))

	if got := testutil.ToFloat64(m.failures.WithLabelValues("attributes")); got != 1 {
		t.Errorf("failures{attributes} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.failures.WithLabelValues("unknown")); got != 1 {
		t.Errorf("failures{unknown} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.lastSuccess); got != 0 {
		t.Errorf("last_success series = %d, want 0", got)
	}
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.ObserveDenormalize(&DenormalizeResult{Written: 7, Batches: 1, Elapsed: time.Second}, nil)
	path := filepath.Join(t.TempDir(), "seed.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), `inventory_seed_rows_total{table="items_denormalized"} 7`) {
		t.Errorf("textfile missing rows metric:\n%s", b)
	}
}
