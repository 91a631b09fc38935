package predictor

import "testing"

func TestLoadFactor(t *testing.T) {
	p := RetrainPolicy{StaleThreshold: 0.2}

	tests := []struct {
		name  string
		state TrainingState
		want  float64
	}{
		{"untrained", TrainingState{ChangeCounter: 5, LastTrainedRowCount: 0}, 0},
		{"no changes", TrainingState{ChangeCounter: 0, LastTrainedRowCount: 10}, 0},
		{"partial drift", TrainingState{ChangeCounter: 3, LastTrainedRowCount: 10}, 0.3},
		{"full drift", TrainingState{ChangeCounter: 10, LastTrainedRowCount: 10}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.LoadFactor(tt.state); got != tt.want {
				t.Errorf("LoadFactor = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestShouldRetrain(t *testing.T) {
	p := RetrainPolicy{StaleThreshold: 0.20}

	tests := []struct {
		name  string
		state TrainingState
		want  bool
	}{
		{"just under", TrainingState{ChangeCounter: 19, LastTrainedRowCount: 100}, false},
		{"exactly at threshold", TrainingState{ChangeCounter: 20, LastTrainedRowCount: 100}, false},
		{"just over", TrainingState{ChangeCounter: 21, LastTrainedRowCount: 100}, true},
		{"small table over", TrainingState{ChangeCounter: 3, LastTrainedRowCount: 10}, true},
		{"never before training", TrainingState{ChangeCounter: 50, LastTrainedRowCount: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ShouldRetrain(tt.state); got != tt.want {
				t.Errorf("ShouldRetrain = %v, want %v", got, tt.want)
			}
		})
	}
}
