package ml

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// TrainTestSplit permutes items with a seeded PCG source and cuts off the
// first ceil(n*testSize) positions as the test partition. The same seed and
// input always give the same assignment.
func TrainTestSplit[T any](items []T, testSize float64, seed uint64) (train, test []T, err error) {
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, fmt.Errorf("split: test size must be in (0, 1), got %v", testSize)
	}
	n := len(items)
	nTest := int(math.Ceil(testSize * float64(n)))
	nTrain := n - nTest
	if nTest == 0 || nTrain == 0 {
		return nil, nil, fmt.Errorf("split: %d items too few for test size %v", n, testSize)
	}

	perm := rand.New(rand.NewPCG(seed, seed)).Perm(n)
	test = make([]T, 0, nTest)
	train = make([]T, 0, nTrain)
	for i, idx := range perm {
		if i < nTest {
			test = append(test, items[idx])
		} else {
			train = append(train, items[idx])
		}
	}
	return train, test, nil
}

// Shuffle reorders items in place with a seeded PCG source.
func Shuffle[T any](items []T, seed uint64) {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	r.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
