// Package store defines the job record store the prediction service reads
// from. The service only needs three queries; anything that can answer them
// (a local SQLite file, a remote SQL server) satisfies the contract.
package store

import "context"

// FeatureRow is one job record's feature columns.
type FeatureRow struct {
	ID          int64
	JobType     string
	HoursWorked float64
}

// TrainingRow is one job record's feature columns plus its label.
// Pay is nil for jobs that have not been paid yet; such rows are skipped
// during training but their features are still predictable.
type TrainingRow struct {
	JobType     string
	HoursWorked float64
	Pay         *float64
}

// Store is the read contract the prediction service depends on.
// Implementations must return empty slices, not errors, for an empty table.
type Store interface {
	// FetchTrainingRows returns features and labels for every job.
	FetchTrainingRows(ctx context.Context) ([]TrainingRow, error)

	// FetchAllFeatures returns id and features for every job.
	FetchAllFeatures(ctx context.Context) ([]FeatureRow, error)

	// FetchFeaturesByIDs returns id and features for the given jobs only.
	FetchFeaturesByIDs(ctx context.Context, ids []int64) ([]FeatureRow, error)
}
