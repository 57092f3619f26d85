package storage

import (
	"testing"

	"github.com/san-kum/planar/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		Times:      []float64{0.1, 0.2, 0.3},
		Energy:     []float64{4.5, 2.25, 0},
		Awake:      []int{2, 1, 0},
		Metrics:    map[string]float64{"energy": 2.25},
		StepsTaken: 3,
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := s.Save("drop", 0.1, 0.3, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := s.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Scene != "drop" || meta.Dt != 0.1 || meta.Steps != 3 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Metrics["energy"] != 2.25 {
		t.Errorf("metrics not persisted: %+v", meta.Metrics)
	}
}

func TestLoadSeries(t *testing.T) {
	s := New(t.TempDir())
	runID, err := s.Save("drop", 0.1, 0.3, sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	times, energy, awake, err := s.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(times) != 3 || len(energy) != 3 || len(awake) != 3 {
		t.Fatalf("series lengths = %d/%d/%d, want 3", len(times), len(energy), len(awake))
	}
	if energy[0] != 4.5 || awake[2] != 0 {
		t.Errorf("series values not round-tripped: %v %v", energy, awake)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := New(t.TempDir())

	if _, err := s.Save("stack", 0.1, 0.3, sampleResult()); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save("drop", 0.1, 0.3, sampleResult()); err != nil {
		t.Fatal(err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if runs[0].Timestamp.Before(runs[1].Timestamp) {
		t.Error("expected newest run first")
	}
}

func TestListMissingDir(t *testing.T) {
	s := New(t.TempDir() + "/does-not-exist")
	runs, err := s.List()
	if err != nil {
		t.Fatalf("list on missing dir: %v", err)
	}
	if runs != nil {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
