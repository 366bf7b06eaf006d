package costmodel

import (
	"github.com/squareup/hkcost/schema"
	"github.com/squareup/hkcost/stats"
)

// TreeScanner is the cost of physical access: positioning once in a tree and then reading nRows rows of
// rowWidth bytes sequentially. It is the only part of a cost model that depends on the storage layer.
//
// For a fixed width, TreeScan must not decrease as nRows grows.
type TreeScanner interface {
	TreeScan(rowWidth int, nRows int64) float64
}

// EstimateAdjuster may be implemented by a TreeScanner to rewrite complete estimates before they are compared.
type EstimateAdjuster interface {
	AdjustCostEstimate(estimate CostEstimate) CostEstimate
}

// Model computes the cost of physical operators for one planning pass. All methods are pure functions of their
// arguments, the statistics snapshot and the calibration constants, and are safe for concurrent use.
//
// Row types passed to a Model must come from the catalog its snapshot was built from.
type Model struct {
	stats   *stats.Snapshot
	scanner TreeScanner
}

func NewModel(snapshot *stats.Snapshot, scanner TreeScanner) *Model {
	return &Model{
		stats:   snapshot,
		scanner: scanner,
	}
}

func (m *Model) Stats() *stats.Snapshot {
	return m.stats
}

func (m *Model) TreeScan(rowWidth int, nRows int64) float64 {
	return m.scanner.TreeScan(rowWidth, nRows)
}

func (m *Model) IndexScan(index *schema.Index, nRows int64) float64 {
	return m.TreeScan(m.stats.Index(index).RowWidth(), nRows)
}

func (m *Model) FullIndexScan(index *schema.Index) float64 {
	s := m.stats.Index(index)
	return m.TreeScan(s.RowWidth(), s.RowCount())
}

func (m *Model) TableScan(table *schema.Table, nRows int64) float64 {
	return m.TreeScan(m.stats.Table(table).RowWidth(), nRows)
}

func (m *Model) FullTableScan(table *schema.Table) float64 {
	s := m.stats.Table(table)
	return m.TreeScan(s.RowWidth(), s.RowCount())
}

// FullGroupScan is the cost of reading root and every table below it. A group scan positions once and then streams
// the whole group, so the positioning cost, TreeScan(width, 0), is removed from every table's scan.
func (m *Model) FullGroupScan(root *schema.Table) float64 {
	cost := 0.0
	for _, table := range root.Branch() {
		s := m.stats.Table(table)
		cost += m.TreeScan(s.RowWidth(), s.RowCount()) - m.TreeScan(s.RowWidth(), 0)
	}
	return cost
}

// PartialGroupScan is the sequential cost of reading rowCount rows of table as part of a group scan.
func (m *Model) PartialGroupScan(table *schema.Table, rowCount int64) float64 {
	width := m.stats.Table(table).RowWidth()
	return m.TreeScan(width, rowCount) - m.TreeScan(width, 0)
}

// AncestorLookup is one single row random access per ancestor table.
func (m *Model) AncestorLookup(ancestors []*schema.Table) float64 {
	cost := 0.0
	for _, table := range ancestors {
		cost += m.TreeScan(m.stats.Table(table).RowWidth(), 1)
	}
	return cost
}

// BranchLookup is the cost of retrieving one branch rooted at a row of branchRoot: a random access to the root row,
// then an even share of the sequential cost of scanning everything below it, assuming all branches are the same
// size.
//
// A branch root with no rows divides by zero and yields a non finite cost.
func (m *Model) BranchLookup(branchRoot *schema.Table) float64 {
	s := m.stats.Table(branchRoot)
	return m.TreeScan(s.RowWidth(), 1) + m.FullGroupScan(branchRoot)/float64(s.RowCount())
}

// Sort is the cost of a full sort. The mixed mode factor applies when mixedMode is false; do not invert this
// without recalibrating.
func (m *Model) Sort(nRows int64, mixedMode bool) float64 {
	factor := SortMixedModeFactor
	if mixedMode {
		factor = 1
	}
	return SortSetup + SortPerRow*float64(nRows)*factor
}

// SortWithLimit is the cost of a bounded sort keeping the first rows only, measured linear in its input.
func (m *Model) SortWithLimit(nRows int64, sortFields int) float64 {
	return SortSetup + float64(nRows)*float64(sortFields)*SortWithLimitPerFieldPerRow
}

func (m *Model) Select(nRows int64) float64 {
	return float64(nRows) * SelectPerRow
}

func (m *Model) Project(nFields int, nRows int64) float64 {
	return float64(nRows) * (ProjectPerRow + float64(nFields)*ProjectPerField)
}

func (m *Model) Distinct(nRows int64) float64 {
	return float64(nRows) * DistinctPerRow
}

func (m *Model) Product(nRows int64) float64 {
	return float64(nRows) * ProductPerRow
}

// Map is the cost of a nested loop: every outer row plus every inner row it produces.
func (m *Model) Map(nOuterRows int64, nInnerRowsPerOuter int64) float64 {
	return float64(nOuterRows) * float64(nInnerRowsPerOuter+1) * MapPerRow
}

func (m *Model) Flatten(nRows int64) float64 {
	return FlattenOverhead + float64(nRows)*FlattenPerRow
}

func (m *Model) Intersect(nLeftRows int64, nRightRows int64) float64 {
	return float64(nLeftRows+nRightRows) * IntersectPerRow
}

func (m *Model) Union(nLeftRows int64, nRightRows int64) float64 {
	return float64(nLeftRows+nRightRows) * UnionPerRow
}

func (m *Model) HKeyUnion(nLeftRows int64, nRightRows int64) float64 {
	return float64(nLeftRows+nRightRows) * HKeyUnionPerRow
}

// SelectWithFilter is the cost of a semijoin through a bloom filter: building the filter from filterRows rows, then
// probing it with every input row. selectivity is the fraction of input rows that pass.
func (m *Model) SelectWithFilter(inputRows int64, filterRows int64, selectivity float64) float64 {
	return float64(filterRows)*BloomFilterLoadPerRow +
		float64(inputRows)*(BloomFilterScanPerRow+selectivity*BloomFilterScanSelectivityCoefficient)
}

// LoadHashTable is the cost of building a hash join table of nRows rows of nCols columns, joined on nJoinCols.
func (m *Model) LoadHashTable(nRows int64, nJoinCols int, nCols int) float64 {
	return float64(nRows) * (HashTableLoadPerRow + hashTableSurcharge(nJoinCols, nCols))
}

// UnloadHashTable is the cost of probing a hash join table with nRows rows.
func (m *Model) UnloadHashTable(nRows int64, nJoinCols int, nCols int) float64 {
	return float64(nRows) * (HashTableScanPerRow + hashTableSurcharge(nJoinCols, nCols))
}

func hashTableSurcharge(nJoinCols int, nCols int) float64 {
	return float64(nJoinCols-1)*HashTableDiffPerJoin + float64(nCols)*HashTableColumnCountOffset
}

// AdjustCostEstimate gives the tree scanner a chance to rewrite a finished estimate. By default it is returned
// unchanged.
func (m *Model) AdjustCostEstimate(estimate CostEstimate) CostEstimate {
	if adjuster, ok := m.scanner.(EstimateAdjuster); ok {
		return adjuster.AdjustCostEstimate(estimate)
	}
	return estimate
}
