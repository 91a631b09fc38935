package predictor

import "io"

// TrainingState tracks how much the job table has drifted since the model
// was last trained. Both counters are written together; a state file never
// holds one updated field without the other.
type TrainingState struct {
	// ChangeCounter counts feature and label mutations since the last
	// retrain. Reset to zero exactly when a retrain completes.
	ChangeCounter int64 `json:"change_counter"`

	// LastTrainedRowCount is the number of rows used by the last training,
	// after label and outlier filtering.
	LastTrainedRowCount int64 `json:"last_trained_row_count"`
}

// StateStore persists the training state across process restarts.
// A missing state is a normal cold start and reads as the zero state;
// an unreadable or corrupt state is an error the caller must surface.
type StateStore interface {
	Read() (TrainingState, error)
	Write(TrainingState) error
	Clear() error
}

// Persistable is what the model store saves and restores.
type Persistable interface {
	Save(w io.Writer) error
	Load(r io.Reader) error
}

// ModelStore persists the trained model artifact.
type ModelStore interface {
	Save(model Persistable) error
	Load(model Persistable) error
	Exists() bool
	Delete() error
}
