package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/sajari/regression"
)

// linearRegressor fits ordinary least squares over the encoded features.
// Training goes through sajari/regression; the fitted coefficients are kept
// here so prediction and persistence need no live regression object.
type linearRegressor struct {
	// Intercept first, then one coefficient per feature column.
	Coeffs []float64 `json:"coeffs"`
}

func (l *linearRegressor) Fit(X [][]float64, y []float64) error {
	if len(X) == 0 {
		return fmt.Errorf("no training rows")
	}

	nFeatures := len(X[0])

	r := new(regression.Regression)
	r.SetObserved("log pay")
	for j := 0; j < nFeatures; j++ {
		r.SetVar(j, fmt.Sprintf("x%d", j))
	}

	for i := range X {
		r.Train(regression.DataPoint(y[i], X[i]))
	}

	if err := r.Run(); err != nil {
		return fmt.Errorf("least squares failed: %w", err)
	}

	coeffs := make([]float64, nFeatures+1)
	for j := range coeffs {
		coeffs[j] = r.Coeff(j)
	}
	l.Coeffs = coeffs
	return nil
}

func (l *linearRegressor) Predict(x []float64) float64 {
	y := l.Coeffs[0]
	for j, v := range x {
		y += l.Coeffs[j+1] * v
	}
	return y
}

func (l *linearRegressor) State() ([]byte, error) {
	return json.Marshal(l)
}

func (l *linearRegressor) Restore(state []byte) error {
	var restored linearRegressor
	if err := json.Unmarshal(state, &restored); err != nil {
		return err
	}
	if len(restored.Coeffs) == 0 {
		return fmt.Errorf("linear state has no coefficients")
	}
	*l = restored
	return nil
}
