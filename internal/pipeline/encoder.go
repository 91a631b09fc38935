package pipeline

import (
	"math"
	"sort"
)

// oneHotEncoder maps a categorical value to a 0/1 vector over the levels
// seen at fit time. Unknown levels transform to the all-zero vector instead
// of failing, so prediction never breaks on a category added after training.
//
// With DropFirst set, the first level becomes the reference level encoded as
// all zeros. The linear regressor needs this to keep the design matrix
// full-rank alongside its intercept term.
type oneHotEncoder struct {
	Levels    []string `json:"levels"`
	DropFirst bool     `json:"drop_first,omitempty"`

	index map[string]int
}

func fitOneHot(values []string, dropFirst bool) *oneHotEncoder {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}

	levels := make([]string, 0, len(seen))
	for v := range seen {
		levels = append(levels, v)
	}
	sort.Strings(levels)

	e := &oneHotEncoder{Levels: levels, DropFirst: dropFirst}
	e.rebuildIndex()
	return e
}

func (e *oneHotEncoder) rebuildIndex() {
	e.index = make(map[string]int, len(e.Levels))
	for i, v := range e.Levels {
		e.index[v] = i
	}
}

// Width returns the number of columns the encoder produces.
func (e *oneHotEncoder) Width() int {
	if e.DropFirst && len(e.Levels) > 0 {
		return len(e.Levels) - 1
	}
	return len(e.Levels)
}

// Transform encodes a single value. Unknown values (and the reference level
// when DropFirst is set) yield the zero vector.
func (e *oneHotEncoder) Transform(v string) []float64 {
	out := make([]float64, e.Width())
	i, ok := e.index[v]
	if !ok {
		return out
	}
	if e.DropFirst {
		if i == 0 {
			return out
		}
		i--
	}
	out[i] = 1
	return out
}

// standardScaler centers and scales a numeric feature to zero mean and unit
// variance, matching what it saw at fit time.
type standardScaler struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

func fitScaler(values []float64) *standardScaler {
	n := float64(len(values))
	if n == 0 {
		return &standardScaler{Mean: 0, Std: 1}
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	std := math.Sqrt(sq / n)
	if std == 0 {
		// Constant column, center only.
		std = 1
	}

	return &standardScaler{Mean: mean, Std: std}
}

func (s *standardScaler) Transform(v float64) float64 {
	return (v - s.Mean) / s.Std
}
