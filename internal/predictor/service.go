// Package predictor keeps predicted pay values in sync with the job table
// without refitting the model on every edit. It serves predictions from an
// in-memory cache, recomputes only invalidated ids, and retrains the model
// once enough of the table has changed since the last training.
package predictor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/paycast/paycast/internal/metrics"
	"github.com/paycast/paycast/internal/pipeline"
	"github.com/paycast/paycast/internal/store"
)

// Service is the only entry point callers use. All methods are safe for
// concurrent use; a single mutex serializes the whole orchestration so a
// retrain can never interleave with a cache replacement from another call.
type Service struct {
	mu sync.Mutex

	store    store.Store
	pipeline *pipeline.Pipeline
	states   StateStore
	models   ModelStore
	cache    *Cache
	policy   RetrainPolicy
	logger   *slog.Logger
}

func New(st store.Store, pipe *pipeline.Pipeline, states StateStore, models ModelStore, policy RetrainPolicy, logger *slog.Logger) *Service {
	return &Service{
		store:    st,
		pipeline: pipe,
		states:   states,
		models:   models,
		cache:    NewCache(),
		policy:   policy,
		logger:   logger,
	}
}

// Predict returns the predicted pay for each requested id.
//
// Three cases, in priority order: if accumulated changes exceed the stale
// threshold the model is retrained and every row re-predicted; if no model
// is held yet it is loaded from disk or trained from scratch, then every
// row re-predicted; otherwise only ids missing from the cache are
// recomputed. Every requested id must be covered by the cache before
// returning, anything else is a bug and is reported as an error.
func (s *Service) Predict(ctx context.Context, ids []int64) (map[int64]float64, error) {
	if len(ids) == 0 {
		return map[int64]float64{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.states.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read training state: %w", err)
	}

	switch {
	case s.policy.ShouldRetrain(state):
		s.logger.Info("stale threshold exceeded, retraining",
			"load_factor", s.policy.LoadFactor(state),
			"threshold", s.policy.StaleThreshold,
		)
		metrics.Retrains.Inc()
		if err := s.retrain(ctx); err != nil {
			return nil, err
		}
		if err := s.recacheAll(ctx); err != nil {
			return nil, err
		}

	case !s.pipeline.Fitted():
		metrics.ColdStarts.Inc()
		if err := s.coldStart(ctx); err != nil {
			return nil, err
		}
		if err := s.recacheAll(ctx); err != nil {
			return nil, err
		}

	default:
		if err := s.refreshDirty(ctx, ids); err != nil {
			return nil, err
		}
	}

	result, missing := s.cache.GetAll(ids)
	if len(missing) > 0 {
		return nil, fmt.Errorf("no prediction for ids %v after refresh; requested ids must exist in the job table", missing)
	}

	metrics.PredictionsServed.Add(float64(len(ids)))
	metrics.CachedEntries.Set(float64(s.cache.Len()))
	return result, nil
}

// coldStart brings a model into memory: from disk when a compatible
// artifact exists, otherwise by training. Loading does not touch the
// training state; only an actual training resets it.
func (s *Service) coldStart(ctx context.Context) error {
	if s.models.Exists() {
		err := s.models.Load(s.pipeline)
		if err == nil && s.pipeline.Fitted() {
			s.logger.Info("model loaded from disk")
			return nil
		}
		s.logger.Warn("saved model unusable, retraining", "error", err)
	}
	return s.retrain(ctx)
}

// retrain fits a fresh model from the full table, persists it and resets
// the training state. A training set that filters down to zero rows leaves
// the previous model and the counters untouched, so retrain pressure keeps
// building until there is data to act on.
func (s *Service) retrain(ctx context.Context) error {
	rows, err := s.store.FetchTrainingRows(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch training rows: %w", err)
	}

	features := make([]pipeline.Features, len(rows))
	labels := make([]*float64, len(rows))
	for i, r := range rows {
		features[i] = pipeline.Features{JobType: r.JobType, HoursWorked: r.HoursWorked}
		labels[i] = r.Pay
	}

	used, err := s.pipeline.Fit(features, labels)
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}
	if used == 0 {
		s.logger.Warn("no usable training rows, keeping previous model", "fetched", len(rows))
		return nil
	}

	if err := s.models.Save(s.pipeline); err != nil {
		return fmt.Errorf("failed to persist model: %w", err)
	}

	if err := s.states.Write(TrainingState{ChangeCounter: 0, LastTrainedRowCount: int64(used)}); err != nil {
		return fmt.Errorf("failed to persist training state: %w", err)
	}

	metrics.TrainingRows.Set(float64(used))
	s.logger.Info("model trained", "rows_used", used, "rows_fetched", len(rows))
	return nil
}

// recacheAll replaces the whole cache with fresh predictions for every row.
func (s *Service) recacheAll(ctx context.Context) error {
	rows, err := s.store.FetchAllFeatures(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch features: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}
	if !s.pipeline.Fitted() {
		// Rows exist but none were trainable (all unpaid). Nothing to
		// predict with; the coverage check in Predict reports the gap.
		return nil
	}

	preds, err := s.predictRows(rows)
	if err != nil {
		return err
	}

	s.cache.Clear()
	s.cache.PutAll(preds)
	return nil
}

// refreshDirty recomputes predictions for the requested ids that are not in
// the cache, leaving all other entries alone.
func (s *Service) refreshDirty(ctx context.Context, ids []int64) error {
	dirty := s.cache.Missing(ids)
	metrics.CacheHits.Add(float64(len(ids) - len(dirty)))
	metrics.CacheMisses.Add(float64(len(dirty)))
	if len(dirty) == 0 {
		return nil
	}

	rows, err := s.store.FetchFeaturesByIDs(ctx, dirty)
	if err != nil {
		return fmt.Errorf("failed to fetch features for dirty ids: %w", err)
	}

	preds, err := s.predictRows(rows)
	if err != nil {
		return err
	}

	s.cache.PutAll(preds)
	return nil
}

func (s *Service) predictRows(rows []store.FeatureRow) (map[int64]float64, error) {
	features := make([]pipeline.Features, len(rows))
	for i, r := range rows {
		features[i] = pipeline.Features{JobType: r.JobType, HoursWorked: r.HoursWorked}
	}

	values, err := s.pipeline.Predict(features)
	if err != nil {
		return nil, fmt.Errorf("prediction failed: %w", err)
	}

	preds := make(map[int64]float64, len(rows))
	for i, r := range rows {
		preds[r.ID] = values[i]
	}
	return preds, nil
}

// NotifyChanged drops cached predictions for ids whose features were edited
// or whose record was deleted. Their next request recomputes them.
func (s *Service) NotifyChanged(ids []int64) {
	if len(ids) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Invalidate(ids)
	metrics.CachedEntries.Set(float64(s.cache.Len()))
	s.logger.Debug("invalidated cached predictions", "ids", ids)
}

// NotifyChangeCount adds n to the persisted change counter. Call it for any
// feature or label edit, insert or delete. Label-only edits do not
// invalidate the cache (the prediction does not depend on the label) but
// they still count toward retrain pressure. n below 1 counts as 1.
func (s *Service) NotifyChangeCount(n int64) error {
	if n < 1 {
		n = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.states.Read()
	if err != nil {
		return fmt.Errorf("failed to read training state: %w", err)
	}

	state.ChangeCounter += n
	if err := s.states.Write(state); err != nil {
		return fmt.Errorf("failed to persist training state: %w", err)
	}
	return nil
}

// Reset discards all model history, in memory and on disk. Used when the
// job table has been wiped wholesale; the next Predict behaves like a cold
// start.
func (s *Service) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pipeline.Reset()
	s.cache.Clear()
	metrics.CachedEntries.Set(0)

	return errors.Join(s.states.Clear(), s.models.Delete())
}

// Status is a point-in-time snapshot for introspection endpoints.
type Status struct {
	ModelFitted         bool    `json:"model_fitted"`
	ModelSaved          bool    `json:"model_saved"`
	CachedEntries       int     `json:"cached_entries"`
	ChangeCounter       int64   `json:"change_counter"`
	LastTrainedRowCount int64   `json:"last_trained_row_count"`
	LoadFactor          float64 `json:"load_factor"`
	StaleThreshold      float64 `json:"stale_threshold"`
}

func (s *Service) Status() (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.states.Read()
	if err != nil {
		return Status{}, fmt.Errorf("failed to read training state: %w", err)
	}

	return Status{
		ModelFitted:         s.pipeline.Fitted(),
		ModelSaved:          s.models.Exists(),
		CachedEntries:       s.cache.Len(),
		ChangeCounter:       state.ChangeCounter,
		LastTrainedRowCount: state.LastTrainedRowCount,
		LoadFactor:          s.policy.LoadFactor(state),
		StaleThreshold:      s.policy.StaleThreshold,
	}, nil
}
