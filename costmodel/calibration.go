package costmodel

// Calibration constants, in abstract cost units. Only their ratios matter.
//
// SortSetup, SortPerRow, SortMixedModeFactor and MapPerRow are fixed values that the sort and map costs are
// checked against. Every other constant is a placeholder chosen for its relative magnitude (a random access is far
// dearer than a sequential one, building a hash table dearer than probing it) and has not been measured. Replace
// the placeholders together once an operator benchmark exists; tuning one in isolation skews plan ranking.

const (
	// Placeholder. Per row cost of evaluating a single predicate.
	SelectPerRow = 0.22

	// Placeholder. Per row overhead of a projection, plus a cost for each projected field.
	ProjectPerRow   = 0.26
	ProjectPerField = 0.03

	// Fixed. Mixed mode is sorting a stream that carries rows of more than one type.
	SortSetup           = 64.0
	SortPerRow          = 10.0
	SortMixedModeFactor = 1.5

	// Placeholder. A bounded sort, linear in its input, per ORDER BY field.
	SortWithLimitPerFieldPerRow = 0.98

	// Placeholder. Distinct on presorted input.
	DistinctPerRow = 3.2

	// Placeholder. Cost per row of the combined output of a product.
	ProductPerRow = 0.4

	// Fixed. Nested loop cost per outer row and per inner row produced.
	MapPerRow = 0.15

	// Placeholder. Fixed setup plus the cost of combining a parent row with each child row.
	FlattenOverhead = 49.0
	FlattenPerRow   = 0.52

	// Placeholder. Ordered intersect, union and hkey union, per input row with both inputs counted.
	IntersectPerRow = 0.25
	UnionPerRow     = 0.24
	HKeyUnionPerRow = 0.36

	// Placeholder. Bloom filter semijoin: loading the filter per filter row, probing it per input row, with a
	// probe surcharge proportional to the fraction of input rows that pass.
	BloomFilterLoadPerRow                 = 0.24
	BloomFilterScanPerRow                 = 0.39
	BloomFilterScanSelectivityCoefficient = 7.41

	// Placeholder. Hash join loading (build side) and unloading (probe side) per row, a surcharge per join column
	// beyond the first, and a surcharge per column carried in the table.
	HashTableLoadPerRow        = 0.87
	HashTableScanPerRow        = 0.53
	HashTableDiffPerJoin       = 0.11
	HashTableColumnCountOffset = 0.04

	// Placeholder. Positioning once in a tree costs RandomAccessPerRow plus RandomAccessPerByte for each byte of
	// the first row; every row read onward costs SequentialAccessPerRow plus SequentialAccessPerByte per byte.
	RandomAccessPerRow      = 11.5
	RandomAccessPerByte     = 0.008
	SequentialAccessPerRow  = 0.68
	SequentialAccessPerByte = 0.0008
)
