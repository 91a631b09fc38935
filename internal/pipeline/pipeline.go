// Package pipeline trains and applies the pay regression model: categorical
// and numeric feature preprocessing composed with a pluggable regressor,
// trained against the log of the pay label with Tukey outlier exclusion.
package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrNotFitted is returned by Predict and Save before any successful Fit.
	ErrNotFitted = errors.New("pipeline: model not fitted")

	// ErrIncompatible marks a persisted artifact this build cannot use.
	// Callers treat it as "no model available", not as a failure.
	ErrIncompatible = errors.New("pipeline: incompatible model artifact")
)

const artifactVersion = 1

// Features is one job record's predictor columns.
type Features struct {
	JobType     string
	HoursWorked float64
}

// Pipeline owns the trained model artifact: encoder, scaler and regressor.
// It is not safe for concurrent use; the prediction service serializes
// access to it.
type Pipeline struct {
	cfg Config

	encoder *oneHotEncoder
	scaler  *standardScaler
	reg     Regressor
	fitted  bool
}

// New creates an unfitted pipeline. The regressor type must be valid.
func New(cfg Config) (*Pipeline, error) {
	if !cfg.Regressor.IsValid() {
		return nil, fmt.Errorf("unknown regressor type: %s", cfg.Regressor)
	}
	return &Pipeline{cfg: cfg}, nil
}

// Fit trains a fresh model from the given rows and returns the number of
// rows actually used after label filtering. Rows whose label is absent or
// not positive are dropped, then rows whose log-label falls outside
// [Q1 - 1.5*IQR, Q3 + 1.5*IQR] are dropped. If nothing remains, Fit is a
// no-op returning 0 and any previously fitted model stays in place.
func (p *Pipeline) Fit(features []Features, labels []*float64) (int, error) {
	if len(features) != len(labels) {
		return 0, fmt.Errorf("feature/label length mismatch: %d vs %d", len(features), len(labels))
	}

	var rows []Features
	var logPay []float64
	for i, label := range labels {
		if label == nil || *label <= 0 {
			continue
		}
		rows = append(rows, features[i])
		logPay = append(logPay, math.Log(*label))
	}

	rows, logPay = dropOutliers(rows, logPay)
	if len(rows) == 0 {
		return 0, nil
	}

	jobTypes := make([]string, len(rows))
	hours := make([]float64, len(rows))
	for i, r := range rows {
		jobTypes[i] = r.JobType
		hours[i] = r.HoursWorked
	}

	// The linear regressor carries its own intercept, so the categorical
	// encoding drops the reference level to stay full-rank.
	encoder := fitOneHot(jobTypes, p.cfg.Regressor == TypeLinear)
	scaler := fitScaler(hours)

	X := make([][]float64, len(rows))
	for i, r := range rows {
		X[i] = append(encoder.Transform(r.JobType), scaler.Transform(r.HoursWorked))
	}

	reg, err := newRegressor(p.cfg)
	if err != nil {
		return 0, err
	}
	if err := reg.Fit(X, logPay); err != nil {
		return 0, fmt.Errorf("failed to fit regressor: %w", err)
	}

	p.encoder = encoder
	p.scaler = scaler
	p.reg = reg
	p.fitted = true
	return len(rows), nil
}

// dropOutliers applies Tukey's rule to the log-labels.
func dropOutliers(rows []Features, logPay []float64) ([]Features, []float64) {
	if len(logPay) == 0 {
		return nil, nil
	}

	sorted := append([]float64(nil), logPay...)
	sort.Float64s(sorted)

	q1 := stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	q3 := stat.Quantile(0.75, stat.LinInterp, sorted, nil)
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	keptRows := rows[:0]
	keptPay := logPay[:0]
	for i, v := range logPay {
		if v >= lower && v <= upper {
			keptRows = append(keptRows, rows[i])
			keptPay = append(keptPay, v)
		}
	}
	return keptRows, keptPay
}

// Predict returns the predicted pay for each feature row, in order.
// The model predicts in log space; results are exponentiated back.
func (p *Pipeline) Predict(features []Features) ([]float64, error) {
	if !p.fitted {
		return nil, ErrNotFitted
	}

	out := make([]float64, len(features))
	for i, f := range features {
		x := append(p.encoder.Transform(f.JobType), p.scaler.Transform(f.HoursWorked))
		out[i] = math.Exp(p.reg.Predict(x))
	}
	return out, nil
}

// Fitted reports whether a trained model is currently held.
func (p *Pipeline) Fitted() bool {
	return p.fitted
}

// Reset discards the fitted model, returning the pipeline to its unfitted
// state. Configuration is kept.
func (p *Pipeline) Reset() {
	p.encoder = nil
	p.scaler = nil
	p.reg = nil
	p.fitted = false
}

type artifact struct {
	Version   int             `json:"version"`
	Regressor Type            `json:"regressor"`
	Encoder   *oneHotEncoder  `json:"encoder"`
	Scaler    *standardScaler `json:"scaler"`
	RegState  json.RawMessage `json:"regressor_state"`
}

// Save writes the fitted artifact as a self-describing JSON envelope.
func (p *Pipeline) Save(w io.Writer) error {
	if !p.fitted {
		return ErrNotFitted
	}

	regState, err := p.reg.State()
	if err != nil {
		return fmt.Errorf("failed to serialize regressor: %w", err)
	}

	return json.NewEncoder(w).Encode(artifact{
		Version:   artifactVersion,
		Regressor: p.cfg.Regressor,
		Encoder:   p.encoder,
		Scaler:    p.scaler,
		RegState:  regState,
	})
}

// Load restores a previously saved artifact. A malformed envelope, a version
// mismatch, or a regressor type other than the configured one yields
// ErrIncompatible so callers can fall back to retraining.
func (p *Pipeline) Load(r io.Reader) error {
	var a artifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return fmt.Errorf("%w: %v", ErrIncompatible, err)
	}

	if a.Version != artifactVersion {
		return fmt.Errorf("%w: version %d, want %d", ErrIncompatible, a.Version, artifactVersion)
	}
	if a.Regressor != p.cfg.Regressor {
		return fmt.Errorf("%w: artifact regressor %s, configured %s", ErrIncompatible, a.Regressor, p.cfg.Regressor)
	}
	if a.Encoder == nil || a.Scaler == nil {
		return fmt.Errorf("%w: missing preprocessing state", ErrIncompatible)
	}

	reg, err := newRegressor(p.cfg)
	if err != nil {
		return err
	}
	if err := reg.Restore(a.RegState); err != nil {
		return fmt.Errorf("%w: %v", ErrIncompatible, err)
	}

	a.Encoder.rebuildIndex()
	p.encoder = a.Encoder
	p.scaler = a.Scaler
	p.reg = reg
	p.fitted = true
	return nil
}
