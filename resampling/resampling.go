// Package resampling produces reproducible train/test and k-fold partitions
// of row indices.
//
// Every partition is driven by a fresh PCG source seeded from the caller's
// seed, so the same (row count, k or fraction, seed) always yields the same
// partition regardless of what was split before. No global random state is
// read or written.
package resampling

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/snowdj/evalharness/pkg/errors"
)

// Split is one train/test partition of row indices. Train and Test are
// disjoint.
type Split struct {
	Train []int
	Test  []int
}

// TrainTestSplit partitions n rows into a train set of floor(fraction*n)
// rows and a test set of the remainder. fraction must lie strictly between 0
// and 1, otherwise a ConfigError is returned.
//
// Rounding rule: the train size is always rounded down, so fraction=0.7 on
// 150 rows yields 105 train and 45 test rows.
func TrainTestSplit(n int, fraction float64, seed uint64) (Split, error) {
	if n <= 0 {
		return Split{}, errors.NewConfigError("resampling.TrainTestSplit", "n", "row count must be positive", n)
	}
	if fraction <= 0 || fraction >= 1 {
		return Split{}, errors.NewConfigError("resampling.TrainTestSplit", "fraction", "must be in (0, 1) exclusive", fraction)
	}

	indices := shuffled(n, seed)
	trainSize := int(math.Floor(fraction * float64(n)))
	if trainSize == 0 {
		trainSize = 1
	}
	if trainSize == n {
		trainSize = n - 1
	}

	train := make([]int, trainSize)
	copy(train, indices[:trainSize])
	test := make([]int, n-trainSize)
	copy(test, indices[trainSize:])
	sort.Ints(train)
	sort.Ints(test)

	return Split{Train: train, Test: test}, nil
}

// KFold partitions n rows into k folds. Each row appears in exactly one test
// fold; each fold's train set is the complement of its test set. k must be at
// least 2 and no larger than n, otherwise a ConfigError is returned.
//
// Fold sizing follows the usual remainder rule: the first n mod k folds hold
// one extra test row.
func KFold(n, k int, seed uint64) ([]Split, error) {
	if n <= 0 {
		return nil, errors.NewConfigError("resampling.KFold", "n", "row count must be positive", n)
	}
	if k < 2 {
		return nil, errors.NewConfigError("resampling.KFold", "k", "must be at least 2", k)
	}
	if k > n {
		return nil, errors.NewConfigError("resampling.KFold", "k", "cannot exceed row count", k)
	}

	indices := shuffled(n, seed)

	folds := make([]Split, k)
	foldSize := n / k
	remainder := n % k

	current := 0
	for i := 0; i < k; i++ {
		testSize := foldSize
		if i < remainder {
			testSize++
		}

		test := make([]int, testSize)
		copy(test, indices[current:current+testSize])
		sort.Ints(test)

		inTest := make(map[int]bool, testSize)
		for _, idx := range test {
			inTest[idx] = true
		}
		train := make([]int, 0, n-testSize)
		for j := 0; j < n; j++ {
			if !inTest[j] {
				train = append(train, j)
			}
		}

		folds[i] = Split{Train: train, Test: test}
		current += testSize
	}

	return folds, nil
}

// shuffled returns the identity permutation of [0, n) shuffled by a fresh
// PCG seeded from seed.
func shuffled(n int, seed uint64) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	r := rand.New(rand.NewPCG(seed, seed))
	r.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})
	return indices
}
