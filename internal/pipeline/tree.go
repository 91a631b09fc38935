package pipeline

import (
	"encoding/json"
	"fmt"
	"sort"
)

// treeRegressor is a CART-style regression tree: greedy binary splits
// chosen to minimize the summed squared error of the two sides, leaves
// predicting the mean of their training targets.
type treeRegressor struct {
	params TreeParams
	root   *treeNode
}

type treeNode struct {
	// Internal node fields; Left == nil marks a leaf.
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *treeNode `json:"left,omitempty"`
	Right     *treeNode `json:"right,omitempty"`

	Value float64 `json:"value"`
}

type treeState struct {
	MaxDepth       int       `json:"max_depth"`
	MinLeafSamples int       `json:"min_leaf_samples"`
	Root           *treeNode `json:"root"`
}

func newTreeRegressor(params TreeParams) *treeRegressor {
	if params.MaxDepth < 1 {
		params.MaxDepth = 12
	}
	if params.MinLeafSamples < 1 {
		params.MinLeafSamples = 1
	}
	return &treeRegressor{params: params}
}

func (t *treeRegressor) Fit(X [][]float64, y []float64) error {
	if len(X) == 0 {
		return fmt.Errorf("no training rows")
	}
	if len(X) != len(y) {
		return fmt.Errorf("feature/label length mismatch: %d vs %d", len(X), len(y))
	}

	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}

	t.root = t.build(X, y, idx, 0)
	return nil
}

func (t *treeRegressor) build(X [][]float64, y []float64, idx []int, depth int) *treeNode {
	node := &treeNode{Value: meanAt(y, idx)}

	if depth >= t.params.MaxDepth || len(idx) < 2*t.params.MinLeafSamples {
		return node
	}

	feature, threshold, ok := t.bestSplit(X, y, idx)
	if !ok {
		return node
	}

	var left, right []int
	for _, i := range idx {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	node.Feature = feature
	node.Threshold = threshold
	node.Left = t.build(X, y, left, depth+1)
	node.Right = t.build(X, y, right, depth+1)
	return node
}

// bestSplit scans every feature and every midpoint between adjacent distinct
// values, keeping the split with the lowest summed squared error. Reports
// false when no split separates the rows or improves on the parent.
func (t *treeRegressor) bestSplit(X []([]float64), y []float64, idx []int) (int, float64, bool) {
	parentSSE := sseAt(y, idx)
	if parentSSE == 0 {
		return 0, 0, false
	}

	bestSSE := parentSSE
	bestFeature := -1
	var bestThreshold float64

	nFeatures := len(X[idx[0]])
	order := make([]int, len(idx))

	for f := 0; f < nFeatures; f++ {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool {
			return X[order[a]][f] < X[order[b]][f]
		})

		// Running sums let each candidate threshold be scored in O(1).
		var leftSum, leftSq float64
		totalSum, totalSq := sumsAt(y, idx)
		n := float64(len(idx))
		var nl float64

		for k := 0; k < len(order)-1; k++ {
			i := order[k]
			leftSum += y[i]
			leftSq += y[i] * y[i]
			nl++

			cur, next := X[i][f], X[order[k+1]][f]
			if cur == next {
				continue
			}
			nr := n - nl
			if int(nl) < t.params.MinLeafSamples || int(nr) < t.params.MinLeafSamples {
				continue
			}

			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			sse := (leftSq - leftSum*leftSum/nl) + (rightSq - rightSum*rightSum/nr)

			if sse < bestSSE {
				bestSSE = sse
				bestFeature = f
				bestThreshold = (cur + next) / 2
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

func (t *treeRegressor) Predict(x []float64) float64 {
	node := t.root
	for node.Left != nil {
		if x[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Value
}

func (t *treeRegressor) State() ([]byte, error) {
	return json.Marshal(treeState{
		MaxDepth:       t.params.MaxDepth,
		MinLeafSamples: t.params.MinLeafSamples,
		Root:           t.root,
	})
}

func (t *treeRegressor) Restore(state []byte) error {
	var s treeState
	if err := json.Unmarshal(state, &s); err != nil {
		return err
	}
	if s.Root == nil {
		return fmt.Errorf("tree state has no root")
	}
	t.params = TreeParams{MaxDepth: s.MaxDepth, MinLeafSamples: s.MinLeafSamples}
	t.root = s.Root
	return nil
}

func meanAt(y []float64, idx []int) float64 {
	var sum float64
	for _, i := range idx {
		sum += y[i]
	}
	return sum / float64(len(idx))
}

func sumsAt(y []float64, idx []int) (sum, sq float64) {
	for _, i := range idx {
		sum += y[i]
		sq += y[i] * y[i]
	}
	return sum, sq
}

func sseAt(y []float64, idx []int) float64 {
	sum, sq := sumsAt(y, idx)
	n := float64(len(idx))
	return sq - sum*sum/n
}
