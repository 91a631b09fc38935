package predictor

// RetrainPolicy decides when accumulated changes warrant a full retrain.
// Pure decision logic, no state of its own.
type RetrainPolicy struct {
	// StaleThreshold is the load factor above which a retrain is due.
	StaleThreshold float64
}

// LoadFactor is the ratio of accumulated changes to the size of the last
// training set. Zero before the first training.
func (p RetrainPolicy) LoadFactor(s TrainingState) float64 {
	if s.LastTrainedRowCount <= 0 {
		return 0
	}
	return float64(s.ChangeCounter) / float64(s.LastTrainedRowCount)
}

// ShouldRetrain reports whether the table has drifted past the threshold.
func (p RetrainPolicy) ShouldRetrain(s TrainingState) bool {
	return p.LoadFactor(s) > p.StaleThreshold
}
