package pipeline

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func treePipeline(t *testing.T) *Pipeline {
	t.Helper()
	p, err := New(Config{Regressor: TypeTree, Tree: TreeParams{MaxDepth: 8, MinLeafSamples: 1}})
	if err != nil {
		t.Fatalf("failed to create pipeline: %v", err)
	}
	return p
}

func fptr(v float64) *float64 {
	return &v
}

func TestNewUnknownRegressor(t *testing.T) {
	if _, err := New(Config{Regressor: "forest"}); err == nil {
		t.Error("expected error for unknown regressor type")
	}
}

func TestFitAndPredict(t *testing.T) {
	p := treePipeline(t)

	features := []Features{
		{JobType: "plumbing", HoursWorked: 8},
		{JobType: "plumbing", HoursWorked: 8},
		{JobType: "wiring", HoursWorked: 2},
		{JobType: "wiring", HoursWorked: 2},
	}
	labels := []*float64{fptr(400), fptr(400), fptr(100), fptr(100)}

	used, err := p.Fit(features, labels)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if used != 4 {
		t.Errorf("expected 4 rows used, got %d", used)
	}

	preds, err := p.Predict(features[:1])
	if err != nil {
		t.Fatalf("predict failed: %v", err)
	}
	if math.Abs(preds[0]-400) > 1 {
		t.Errorf("expected prediction near 400, got %f", preds[0])
	}
}

func TestFitSkipsMissingAndZeroLabels(t *testing.T) {
	p := treePipeline(t)

	features := []Features{
		{JobType: "a", HoursWorked: 1},
		{JobType: "a", HoursWorked: 2},
		{JobType: "a", HoursWorked: 3},
		{JobType: "a", HoursWorked: 4},
	}
	labels := []*float64{fptr(100), nil, fptr(0), fptr(110)}

	used, err := p.Fit(features, labels)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if used != 2 {
		t.Errorf("expected 2 rows used, got %d", used)
	}
}

func TestFitExcludesOutliers(t *testing.T) {
	p := treePipeline(t)

	features := make([]Features, 5)
	for i := range features {
		features[i] = Features{JobType: "a", HoursWorked: float64(i)}
	}
	labels := []*float64{fptr(10), fptr(10), fptr(10), fptr(10), fptr(10000)}

	used, err := p.Fit(features, labels)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if used != 4 {
		t.Errorf("expected the extreme label excluded (4 rows), got %d", used)
	}
}

func TestFitEmptyIsNoOp(t *testing.T) {
	p := treePipeline(t)

	// Fit something real first.
	features := []Features{{JobType: "a", HoursWorked: 1}, {JobType: "a", HoursWorked: 2}}
	if _, err := p.Fit(features, []*float64{fptr(50), fptr(60)}); err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	before, _ := p.Predict(features[:1])

	// All labels missing: the working model must survive.
	used, err := p.Fit(features, []*float64{nil, nil})
	if err != nil {
		t.Fatalf("degenerate fit should not error: %v", err)
	}
	if used != 0 {
		t.Errorf("expected 0 rows used, got %d", used)
	}
	if !p.Fitted() {
		t.Fatal("prior model was discarded by a degenerate fit")
	}

	after, _ := p.Predict(features[:1])
	if before[0] != after[0] {
		t.Errorf("prediction changed after no-op fit: %f vs %f", before[0], after[0])
	}
}

func TestPredictBeforeFit(t *testing.T) {
	p := treePipeline(t)
	if _, err := p.Predict([]Features{{JobType: "a", HoursWorked: 1}}); !errors.Is(err, ErrNotFitted) {
		t.Errorf("expected ErrNotFitted, got %v", err)
	}
}

func TestPredictUnknownJobType(t *testing.T) {
	p := treePipeline(t)

	features := []Features{
		{JobType: "plumbing", HoursWorked: 4},
		{JobType: "plumbing", HoursWorked: 5},
	}
	if _, err := p.Fit(features, []*float64{fptr(200), fptr(220)}); err != nil {
		t.Fatalf("fit failed: %v", err)
	}

	preds, err := p.Predict([]Features{{JobType: "never seen", HoursWorked: 4}})
	if err != nil {
		t.Fatalf("unknown category must not fail prediction: %v", err)
	}
	if math.IsNaN(preds[0]) || preds[0] <= 0 {
		t.Errorf("expected a usable prediction for unknown category, got %f", preds[0])
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	p := treePipeline(t)

	features := []Features{
		{JobType: "a", HoursWorked: 1},
		{JobType: "b", HoursWorked: 2},
		{JobType: "a", HoursWorked: 3},
		{JobType: "b", HoursWorked: 4},
	}
	labels := []*float64{fptr(100), fptr(200), fptr(120), fptr(210)}
	if _, err := p.Fit(features, labels); err != nil {
		t.Fatalf("fit failed: %v", err)
	}

	var buf bytes.Buffer
	if err := p.Save(&buf); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	restored := treePipeline(t)
	if err := restored.Load(&buf); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !restored.Fitted() {
		t.Fatal("restored pipeline should be fitted")
	}

	a, _ := p.Predict(features)
	b, _ := restored.Predict(features)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("restored pipeline diverges at %d: %f vs %f", i, a[i], b[i])
		}
	}
}

func TestSaveUnfitted(t *testing.T) {
	p := treePipeline(t)
	var buf bytes.Buffer
	if err := p.Save(&buf); !errors.Is(err, ErrNotFitted) {
		t.Errorf("expected ErrNotFitted, got %v", err)
	}
}

func TestLoadIncompatible(t *testing.T) {
	p := treePipeline(t)

	tests := []struct {
		name string
		blob string
	}{
		{"garbage", "not json at all"},
		{"wrong version", `{"version": 99, "regressor": "tree"}`},
		{"wrong regressor", `{"version": 1, "regressor": "linear"}`},
		{"missing state", `{"version": 1, "regressor": "tree"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Load(bytes.NewReader([]byte(tt.blob)))
			if !errors.Is(err, ErrIncompatible) {
				t.Errorf("expected ErrIncompatible, got %v", err)
			}
			if p.Fitted() {
				t.Error("failed load must leave pipeline unfitted")
			}
		})
	}
}

func TestLinearPipeline(t *testing.T) {
	p, err := New(Config{Regressor: TypeLinear})
	if err != nil {
		t.Fatalf("failed to create pipeline: %v", err)
	}

	// Pay grows with hours; two job types exercise the reference-level
	// encoding.
	features := []Features{
		{JobType: "a", HoursWorked: 1},
		{JobType: "a", HoursWorked: 2},
		{JobType: "a", HoursWorked: 3},
		{JobType: "b", HoursWorked: 1},
		{JobType: "b", HoursWorked: 2},
		{JobType: "b", HoursWorked: 3},
	}
	labels := []*float64{fptr(100), fptr(120), fptr(150), fptr(200), fptr(240), fptr(300)}

	used, err := p.Fit(features, labels)
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if used != 6 {
		t.Errorf("expected 6 rows used, got %d", used)
	}

	preds, err := p.Predict([]Features{{JobType: "b", HoursWorked: 2}})
	if err != nil {
		t.Fatalf("predict failed: %v", err)
	}
	if preds[0] < 150 || preds[0] > 350 {
		t.Errorf("prediction out of plausible range: %f", preds[0])
	}
}

func TestReset(t *testing.T) {
	p := treePipeline(t)

	features := []Features{{JobType: "a", HoursWorked: 1}, {JobType: "a", HoursWorked: 2}}
	if _, err := p.Fit(features, []*float64{fptr(10), fptr(20)}); err != nil {
		t.Fatalf("fit failed: %v", err)
	}

	p.Reset()

	if p.Fitted() {
		t.Error("expected unfitted after reset")
	}
	if _, err := p.Predict(features); !errors.Is(err, ErrNotFitted) {
		t.Errorf("expected ErrNotFitted after reset, got %v", err)
	}
}
