package pipeline

import "fmt"

// Type identifies a regressor implementation.
type Type string

const (
	TypeTree   Type = "tree"
	TypeLinear Type = "linear"
)

// IsValid checks if the regressor type is known.
func (t Type) IsValid() bool {
	switch t {
	case TypeTree, TypeLinear:
		return true
	}
	return false
}

func (t Type) String() string {
	return string(t)
}

// TreeParams holds decision-tree regressor parameters.
type TreeParams struct {
	MaxDepth       int
	MinLeafSamples int
}

// Config selects and parameterizes the regressor a pipeline trains.
type Config struct {
	Regressor Type
	Tree      TreeParams
}

// Regressor is a trainable model over pre-encoded feature vectors.
// Fit replaces any prior training; State/Restore round-trip the fitted
// parameters for persistence.
type Regressor interface {
	Fit(X [][]float64, y []float64) error
	Predict(x []float64) float64
	State() ([]byte, error)
	Restore(state []byte) error
}

// newRegressor creates an untrained regressor of the configured type.
func newRegressor(cfg Config) (Regressor, error) {
	switch cfg.Regressor {
	case TypeTree:
		return newTreeRegressor(cfg.Tree), nil
	case TypeLinear:
		return &linearRegressor{}, nil
	default:
		return nil, fmt.Errorf("unknown regressor type: %s", cfg.Regressor)
	}
}
