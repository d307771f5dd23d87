// SPDX-License-Identifier: EPL-2.0

package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew_RegistersCollectors(t *testing.T) {
	t.Parallel()

	m := New()
	m.ClipsProcessed.Inc()
	m.StageFailed("decode")
	m.ObserveStage("render", time.Now())
	m.Conversion("mp3", nil)
	m.CaptureDrift.Observe(0.002)

	count, err := testutil.GatherAndCount(m.Registry())
	if err != nil {
		t.Fatalf("GatherAndCount() error = %v", err)
	}
	if count != 5 {
		t.Errorf("gathered %d series, want 5", count)
	}
}

func TestCounters(t *testing.T) {
	t.Parallel()

	m := New()

	m.ClipProcessed()
	m.ClipProcessed()
	m.ObserveDrift(3 * time.Millisecond)
	m.StageFailed("convert")
	m.Conversion("ogg", nil)
	m.Conversion("ogg", errors.New("boom"))
	m.Conversion("ogg", errors.New("boom"))

	if got := testutil.ToFloat64(m.ClipsProcessed); got != 2 {
		t.Errorf("clips processed = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(m.CaptureDrift); got != 1 {
		t.Errorf("drift series = %d, want 1", got)
	}
	if got := testutil.ToFloat64(m.PipelineErrors.WithLabelValues("convert")); got != 1 {
		t.Errorf("convert errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Conversions.WithLabelValues("ogg", "success")); got != 1 {
		t.Errorf("ogg successes = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Conversions.WithLabelValues("ogg", "failure")); got != 2 {
		t.Errorf("ogg failures = %v, want 2", got)
	}
}

func TestNewWithRegistry_Twice(t *testing.T) {
	t.Parallel()

	defer func() {
		if r := recover(); r == nil {
			t.Error("registering twice on one registry did not panic")
		}
	}()

	reg := prometheus.NewRegistry()
	NewWithRegistry(reg)
	NewWithRegistry(reg)
}

func TestWriteTextfile(t *testing.T) {
	t.Parallel()

	m := New()
	m.ClipsProcessed.Inc()

	path := filepath.Join(t.TempDir(), "voxclean.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading textfile: %v", err)
	}
	if !strings.Contains(string(data), "voxclean_clips_processed_total 1") {
		t.Errorf("textfile = %q", data)
	}
}
