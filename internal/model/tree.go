// Package model loads a fitted decision-tree classifier exported as JSON and
// runs single-row inference against it.
//
// The artifact uses the parallel-array layout of a fitted CART tree: node i
// splits on feature[i] at threshold[i], goes to children_left[i] when the
// value is <= threshold and to children_right[i] otherwise. A node whose
// children_left is -1 is a leaf, and its label is the class with the largest
// count in value[i].
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const leaf = -1

var (
	ErrModelNotFound = errors.New("model file not found")
	ErrModelCorrupt  = errors.New("model file is corrupt")
	ErrFeatureWidth  = errors.New("row width does not match model")
)

type artifact struct {
	NFeatures     int         `json:"n_features"`
	Classes       []int       `json:"classes"`
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

// DecisionTree is immutable after Load and safe for concurrent use.
type DecisionTree struct {
	nFeatures int
	left      []int
	right     []int
	feature   []int
	threshold []float64
	labels    []int // per node, precomputed argmax of value
}

// Load reads and validates the artifact at path.
func Load(path string) (*DecisionTree, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrModelNotFound, path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrModelNotFound, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrModelNotFound, path, err)
	}

	var a artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrModelCorrupt, path, err)
	}

	tree, err := build(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrModelCorrupt, path, err)
	}
	return tree, nil
}

func build(a artifact) (*DecisionTree, error) {
	n := len(a.ChildrenLeft)
	if n == 0 {
		return nil, errors.New("tree has no nodes")
	}
	if len(a.ChildrenRight) != n || len(a.Feature) != n || len(a.Threshold) != n || len(a.Value) != n {
		return nil, errors.New("node arrays have different lengths")
	}
	if a.NFeatures <= 0 {
		return nil, errors.New("n_features must be positive")
	}
	if len(a.Classes) == 0 {
		return nil, errors.New("no classes")
	}

	labels := make([]int, n)
	for i := 0; i < n; i++ {
		l, r := a.ChildrenLeft[i], a.ChildrenRight[i]
		if l == leaf {
			if r != leaf {
				return nil, fmt.Errorf("node %d: half leaf", i)
			}
		} else {
			for _, c := range []int{l, r} {
				if c <= 0 || c >= n || c == i {
					return nil, fmt.Errorf("node %d: child %d out of range", i, c)
				}
			}
			if f := a.Feature[i]; f < 0 || f >= a.NFeatures {
				return nil, fmt.Errorf("node %d: feature %d out of range", i, f)
			}
		}

		if len(a.Value[i]) != len(a.Classes) {
			return nil, fmt.Errorf("node %d: %d counts for %d classes", i, len(a.Value[i]), len(a.Classes))
		}
		best := 0
		for k, count := range a.Value[i] {
			if count > a.Value[i][best] {
				best = k
			}
		}
		labels[i] = a.Classes[best]
	}

	if err := checkAcyclic(a.ChildrenLeft, a.ChildrenRight); err != nil {
		return nil, err
	}

	return &DecisionTree{
		nFeatures: a.NFeatures,
		left:      a.ChildrenLeft,
		right:     a.ChildrenRight,
		feature:   a.Feature,
		threshold: a.Threshold,
		labels:    labels,
	}, nil
}

// checkAcyclic walks from the root and fails if any node is reached twice,
// which covers both cycles and children shared between parents.
func checkAcyclic(left, right []int) error {
	seen := make([]bool, len(left))
	stack := []int{0}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[node] {
			return fmt.Errorf("node %d reached twice", node)
		}
		seen[node] = true
		if left[node] != leaf {
			stack = append(stack, left[node], right[node])
		}
	}
	return nil
}

func (t *DecisionTree) NumFeatures() int { return t.nFeatures }

// Predict returns the class label for a single row.
func (t *DecisionTree) Predict(row []float64) (int, error) {
	if len(row) != t.nFeatures {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrFeatureWidth, len(row), t.nFeatures)
	}

	node := 0
	// children always point forward in a fitted tree, but a hand-edited file
	// may not; bound the walk by the node count.
	for steps := 0; t.left[node] != leaf; steps++ {
		if steps > len(t.left) {
			return 0, fmt.Errorf("%w: cycle at node %d", ErrModelCorrupt, node)
		}
		if row[t.feature[node]] <= t.threshold[node] {
			node = t.left[node]
		} else {
			node = t.right[node]
		}
	}
	return t.labels[node], nil
}
