package costmodel

import (
	"math/rand"
	"sync"

	"github.com/squareup/hkcost/stats"
)

// StorageTreeScanner prices a tree scan from the random and sequential access constants.
type StorageTreeScanner struct{}

func (StorageTreeScanner) TreeScan(rowWidth int, nRows int64) float64 {
	width := float64(rowWidth)
	return RandomAccessPerRow + RandomAccessPerByte*width +
		float64(nRows)*(SequentialAccessPerRow+SequentialAccessPerByte*width)
}

func NewStorageModel(snapshot *stats.Snapshot) *Model {
	return NewModel(snapshot, StorageTreeScanner{})
}

const (
	randomScanSetup  = 10
	randomScanPerRow = 0.5
)

// RandomTreeScanner is a deliberately crude model used to check that plan search copes with noisy costs. Its tree
// scan ignores row width, and every adjusted estimate has its cost scaled by a uniform draw from [0, 1).
type RandomTreeScanner struct {
	lock sync.Mutex
	rnd  *rand.Rand
}

func NewRandomTreeScanner(seed int64) *RandomTreeScanner {
	return &RandomTreeScanner{rnd: rand.New(rand.NewSource(seed))} //nolint:gosec
}

func (s *RandomTreeScanner) TreeScan(_ int, nRows int64) float64 {
	return randomScanSetup + float64(nRows)*randomScanPerRow
}

func (s *RandomTreeScanner) AdjustCostEstimate(estimate CostEstimate) CostEstimate {
	s.lock.Lock()
	f := s.rnd.Float64()
	s.lock.Unlock()
	return CostEstimate{RowCount: estimate.RowCount, Cost: estimate.Cost * f}
}

func NewRandomModel(snapshot *stats.Snapshot, seed int64) *Model {
	return NewModel(snapshot, NewRandomTreeScanner(seed))
}
