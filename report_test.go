package memobench_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/PascalMinder/memobench"
)

func sampleResult() memobench.Result {
	return memobench.Result{
		RunID:  uuid.MustParse("6f1c2a9e-3b8d-4c57-9e21-0a4b5c6d7e8f"),
		Trials: 200,
		Measurements: []memobench.Measurement{
			{N: 0, LRU: 180 * time.Nanosecond, Splay: 95 * time.Nanosecond},
			{N: 50, LRU: 210 * time.Nanosecond, Splay: 140 * time.Nanosecond},
			{N: 100, LRU: 230 * time.Nanosecond, Splay: 155 * time.Nanosecond},
		},
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	if err := memobench.WriteTable(&buf, sampleResult()); err != nil {
		t.Fatalf("WriteTable() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("WriteTable() wrote %d lines, want %d:\n%s", len(lines), 6, buf.String())
	}

	if !strings.Contains(lines[0], "6f1c2a9e-3b8d-4c57-9e21-0a4b5c6d7e8f") || !strings.Contains(lines[0], "200 trials") {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "n ") || !strings.Contains(lines[1], "LRU Cache Time (s)") || !strings.Contains(lines[1], "Splay Tree Time (s)") {
		t.Errorf("column line = %q", lines[1])
	}

	fields := strings.Fields(lines[4])
	if diff := cmp.Diff([]string{"50", "2.1e-07", "1.4e-07"}, fields); diff != "" {
		t.Errorf("row for n=50 mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderChart(t *testing.T) {
	var buf bytes.Buffer
	if err := memobench.RenderChart(&buf, sampleResult()); err != nil {
		t.Fatalf("RenderChart() error = %v", err)
	}

	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")) {
		t.Errorf("RenderChart() output is not a PNG image")
	}
}

func TestRenderChartNeedsTwoPoints(t *testing.T) {
	r := sampleResult()
	r.Measurements = r.Measurements[:1]

	if err := memobench.RenderChart(&bytes.Buffer{}, r); err == nil {
		t.Errorf("RenderChart() with one measurement error = nil")
	}
}

func TestResultsArrowRoundTrip(t *testing.T) {
	want := sampleResult()

	var buf bytes.Buffer
	if err := memobench.WriteResultsArrow(&buf, want); err != nil {
		t.Fatalf("WriteResultsArrow() error = %v", err)
	}

	got, err := memobench.ReadResultsArrow(&buf)
	if err != nil {
		t.Fatalf("ReadResultsArrow() error = %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("results mismatch after Arrow round trip (-want +got):\n%s", diff)
	}
}

func TestReadResultsArrowInvalidData(t *testing.T) {
	if _, err := memobench.ReadResultsArrow(strings.NewReader("this-is-not-arrow-data")); err == nil {
		t.Fatalf("expected error on invalid Arrow data, got nil")
	}
}
