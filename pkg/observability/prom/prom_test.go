package prom

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/matzehuels/brainboard/pkg/observability"
)

func TestMetrics(t *testing.T) {
	ctx := context.Background()
	m := New(prometheus.NewRegistry())

	m.OnApply(ctx, "b1", 3, time.Millisecond)
	m.OnApply(ctx, "b1", 2, time.Millisecond)
	m.OnUndo(ctx, "b1", true)
	m.OnUndo(ctx, "b1", false)
	m.OnGenerate(ctx, "moscow", 2, time.Millisecond, nil)
	m.OnReflow(ctx, "moscow", 0, time.Millisecond, errors.New("boom"))
	m.OnSave(ctx, "sqlite", 10, time.Millisecond, nil)
	m.OnLoad(ctx, "sqlite", time.Millisecond, nil)
	m.OnRequest(ctx, "GET", "/boards/{id}", 200, time.Millisecond)

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"batches", m.batches, 2},
		{"ops", m.ops, 5},
		{"undo ok", m.history.WithLabelValues("undo", "ok"), 1},
		{"undo empty", m.history.WithLabelValues("undo", "empty"), 1},
		{"generate", m.templates.WithLabelValues("moscow", "generate", "ok"), 1},
		{"reflow error", m.templates.WithLabelValues("moscow", "reflow", "error"), 1},
		{"save", m.storeOps.WithLabelValues("sqlite", "save", "ok"), 1},
		{"load", m.storeOps.WithLabelValues("sqlite", "load", "ok"), 1},
		{"requests", m.requests.WithLabelValues("GET", "/boards/{id}", "200"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tt.c); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegister(t *testing.T) {
	defer observability.Reset()
	m := New(prometheus.NewRegistry())
	m.Register()

	if observability.Board() != m || observability.Store() != m ||
		observability.Template() != m || observability.HTTP() != m {
		t.Error("Register should install the metrics for every category")
	}
}
