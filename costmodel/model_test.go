package costmodel

import (
	"math"
	"testing"

	"github.com/squareup/hkcost/rowcount"
	"github.com/squareup/hkcost/schema"
	"github.com/squareup/hkcost/schema/schematest"
	"github.com/squareup/hkcost/stats"
	"github.com/stretchr/testify/require"
)

// linearScanner is a width agnostic tree scan that makes expected values easy to work out by hand.
type linearScanner struct{}

func (linearScanner) TreeScan(_ int, nRows int64) float64 {
	return 10 + float64(nRows)*0.5
}

func coiModel(t *testing.T, scanner TreeScanner) (*Model, *schema.Catalog) {
	t.Helper()
	cat := schematest.COICatalog(t)
	snapshot := stats.NewSnapshot(cat, rowcount.Static(schematest.COIRowCounts))
	return NewModel(snapshot, scanner), cat
}

func TestTreeScanIsMonotonic(t *testing.T) {
	scanners := map[string]TreeScanner{
		"storage": StorageTreeScanner{},
		"random":  NewRandomTreeScanner(1),
	}
	for name, scanner := range scanners {
		t.Run(name, func(t *testing.T) {
			for _, width := range []int{0, 1, 25, 1000, 100000} {
				prev := scanner.TreeScan(width, 0)
				require.GreaterOrEqual(t, prev, 0.0)
				for _, n := range []int64{1, 2, 10, 1000, 1000000} {
					cost := scanner.TreeScan(width, n)
					require.GreaterOrEqual(t, cost, prev, "width %d rows %d", width, n)
					prev = cost
				}
			}
		})
	}
}

func TestStorageTreeScan(t *testing.T) {
	scanner := StorageTreeScanner{}
	requireCost(t, RandomAccessPerRow+RandomAccessPerByte*37, scanner.TreeScan(37, 0))
	require.InDelta(t, 7107.796, scanner.TreeScan(37, 10000), 1e-9)
	// wider rows cost more
	require.Greater(t, scanner.TreeScan(100, 10), scanner.TreeScan(10, 10))
}

func TestIndexScans(t *testing.T) {
	m, cat := coiModel(t, linearScanner{})
	odate := schematest.MustIndex(t, cat, "orders_odate")
	require.Equal(t, 15.0, m.IndexScan(odate, 10))
	require.Equal(t, 5010.0, m.FullIndexScan(odate))
	require.Equal(t, 5010.0, m.FullIndexScan(schematest.MustIndex(t, cat, "name_odate")))

	items := schematest.MustTable(t, cat, "items")
	require.Equal(t, 60.0, m.TableScan(items, 100))
	require.Equal(t, 25010.0, m.FullTableScan(items))
}

func TestIndexScanUsesIndexWidth(t *testing.T) {
	m, cat := coiModel(t, StorageTreeScanner{})
	odate := schematest.MustIndex(t, cat, "orders_odate")
	require.Equal(t, StorageTreeScanner{}.TreeScan(3, 100), m.IndexScan(odate, 100))
	require.Equal(t, StorageTreeScanner{}.TreeScan(3, 10000), m.FullIndexScan(odate))
}

func TestFullGroupScan(t *testing.T) {
	m, cat := coiModel(t, linearScanner{})
	require.Equal(t, 0.5*(1000+10000+50000+2000), m.FullGroupScan(schematest.MustTable(t, cat, "customers")))
	require.Equal(t, 0.5*(10000+50000), m.FullGroupScan(schematest.MustTable(t, cat, "orders")))
	require.Equal(t, 0.5*50000, m.FullGroupScan(schematest.MustTable(t, cat, "items")))
}

func TestFullGroupScanIdentity(t *testing.T) {
	m, cat := coiModel(t, StorageTreeScanner{})
	root := cat.Groups()[0].Root
	expected := 0.0
	for _, table := range cat.Groups()[0].Tables() {
		s := m.Stats().Table(table)
		expected += m.TreeScan(s.RowWidth(), s.RowCount()) - m.TreeScan(s.RowWidth(), 0)
	}
	require.Equal(t, expected, m.FullGroupScan(root))
	// a group scan never pays for positioning, so it is cheaper than scanning each table on its own
	separate := 0.0
	for _, table := range cat.Groups()[0].Tables() {
		separate += m.FullTableScan(table)
	}
	require.Less(t, m.FullGroupScan(root), separate)
}

func TestPartialGroupScan(t *testing.T) {
	m, cat := coiModel(t, linearScanner{})
	items := schematest.MustTable(t, cat, "items")
	require.Equal(t, 50.0, m.PartialGroupScan(items, 100))
	require.Equal(t, 0.0, m.PartialGroupScan(items, 0))

	sm, cat := coiModel(t, StorageTreeScanner{})
	orders := schematest.MustTable(t, cat, "orders")
	require.InDelta(t, 10000*(SequentialAccessPerRow+SequentialAccessPerByte*37), sm.PartialGroupScan(orders, 10000), 1e-9)
}

func TestAncestorLookup(t *testing.T) {
	m, cat := coiModel(t, StorageTreeScanner{})
	customers := schematest.MustTable(t, cat, "customers")
	orders := schematest.MustTable(t, cat, "orders")
	require.Equal(t, 0.0, m.AncestorLookup(nil))
	require.Equal(t, 0.0, m.AncestorLookup([]*schema.Table{}))
	require.Equal(t, m.TreeScan(26, 1), m.AncestorLookup([]*schema.Table{customers}))
	require.Equal(t, m.TreeScan(26, 1)+m.TreeScan(37, 1), m.AncestorLookup(schematest.MustTable(t, cat, "items").Ancestors()))
	require.Equal(t, m.AncestorLookup([]*schema.Table{customers, orders}), m.AncestorLookup([]*schema.Table{orders, customers}))
}

func TestBranchLookup(t *testing.T) {
	m, cat := coiModel(t, linearScanner{})
	// one row of orders, then a ten-thousandth of the orders and items scan
	require.Equal(t, 10.5+30000.0/10000, m.BranchLookup(schematest.MustTable(t, cat, "orders")))
	require.Equal(t, 10.5+31500.0/1000, m.BranchLookup(schematest.MustTable(t, cat, "customers")))
}

func TestBranchLookupOfEmptyTableIsNotFinite(t *testing.T) {
	cat := schematest.COICatalog(t)
	m := NewModel(stats.NewSnapshot(cat, rowcount.Static{}), linearScanner{})
	cost := m.BranchLookup(schematest.MustTable(t, cat, "orders"))
	require.True(t, math.IsNaN(cost) || math.IsInf(cost, 0))
}

func TestSort(t *testing.T) {
	m, _ := coiModel(t, linearScanner{})
	require.Equal(t, 1064.0, m.Sort(100, true))
	require.Equal(t, 1564.0, m.Sort(100, false))
	require.Equal(t, SortSetup, m.Sort(0, false))
}

func TestSortWithLimit(t *testing.T) {
	m, _ := coiModel(t, linearScanner{})
	requireCost(t, SortSetup+100*2*SortWithLimitPerFieldPerRow, m.SortWithLimit(100, 2))
	require.Less(t, m.SortWithLimit(100, 1), m.SortWithLimit(100, 3))
	require.Less(t, m.SortWithLimit(100, 1), m.SortWithLimit(1000, 1))
}

func TestMap(t *testing.T) {
	m, _ := coiModel(t, linearScanner{})
	require.Equal(t, 9.0, m.Map(10, 5))
	require.Equal(t, 0.0, m.Map(0, 5))
	requireCost(t, 10*MapPerRow, m.Map(10, 0))
}

func TestLinearOperators(t *testing.T) {
	m, _ := coiModel(t, linearScanner{})
	requireCost(t, 100*SelectPerRow, m.Select(100))
	requireCost(t, 100*(ProjectPerRow+4*ProjectPerField), m.Project(4, 100))
	require.Less(t, m.Project(1, 100), m.Project(10, 100))
	requireCost(t, 100*DistinctPerRow, m.Distinct(100))
	requireCost(t, 100*ProductPerRow, m.Product(100))
	requireCost(t, FlattenOverhead+100*FlattenPerRow, m.Flatten(100))
	requireCost(t, FlattenOverhead, m.Flatten(0))
	requireCost(t, 30*IntersectPerRow, m.Intersect(10, 20))
	requireCost(t, 30*UnionPerRow, m.Union(10, 20))
	requireCost(t, 30*HKeyUnionPerRow, m.HKeyUnion(10, 20))
	requireCost(t, m.Union(10, 20), m.Union(20, 10))
}

func TestSelectWithFilter(t *testing.T) {
	m, _ := coiModel(t, linearScanner{})
	requireCost(t, 50*BloomFilterLoadPerRow+1000*(BloomFilterScanPerRow+0.1*BloomFilterScanSelectivityCoefficient),
		m.SelectWithFilter(1000, 50, 0.1))
	requireCost(t, 50*BloomFilterLoadPerRow+1000*BloomFilterScanPerRow, m.SelectWithFilter(1000, 50, 0))
	require.Less(t, m.SelectWithFilter(1000, 50, 0.1), m.SelectWithFilter(1000, 50, 0.9))
}

func TestHashTable(t *testing.T) {
	m, _ := coiModel(t, linearScanner{})
	requireCost(t, 100*(HashTableLoadPerRow+5*HashTableColumnCountOffset), m.LoadHashTable(100, 1, 5))
	requireCost(t, 100*(HashTableLoadPerRow+2*HashTableDiffPerJoin+5*HashTableColumnCountOffset), m.LoadHashTable(100, 3, 5))
	requireCost(t, 100*(HashTableScanPerRow+5*HashTableColumnCountOffset), m.UnloadHashTable(100, 1, 5))
	require.Less(t, m.UnloadHashTable(100, 2, 5), m.LoadHashTable(100, 2, 5))
}

func TestAdjustCostEstimateIsIdentityByDefault(t *testing.T) {
	m, _ := coiModel(t, StorageTreeScanner{})
	est := CostEstimate{RowCount: 42, Cost: 123.5}
	require.Equal(t, est, m.AdjustCostEstimate(est))
}

func TestOperationsAreIdempotent(t *testing.T) {
	m, cat := coiModel(t, StorageTreeScanner{})
	customers := schematest.MustTable(t, cat, "customers")
	orders := schematest.MustTable(t, cat, "orders")
	gi := schematest.MustIndex(t, cat, "name_odate")
	ops := map[string]func() float64{
		"indexScan":        func() float64 { return m.IndexScan(gi, 17) },
		"fullIndexScan":    func() float64 { return m.FullIndexScan(gi) },
		"fullGroupScan":    func() float64 { return m.FullGroupScan(customers) },
		"partialGroupScan": func() float64 { return m.PartialGroupScan(orders, 33) },
		"ancestorLookup":   func() float64 { return m.AncestorLookup([]*schema.Table{customers, orders}) },
		"branchLookup":     func() float64 { return m.BranchLookup(orders) },
		"sort":             func() float64 { return m.Sort(1234, false) },
		"sortWithLimit":    func() float64 { return m.SortWithLimit(1234, 3) },
		"selectWithFilter": func() float64 { return m.SelectWithFilter(1000, 10, 0.3) },
		"loadHashTable":    func() float64 { return m.LoadHashTable(1000, 2, 4) },
	}
	for name, op := range ops {
		first := op()
		for i := 0; i < 3; i++ {
			require.Equal(t, math.Float64bits(first), math.Float64bits(op()), name)
		}
	}
}

func TestUnknownRowTypePanics(t *testing.T) {
	m, _ := coiModel(t, StorageTreeScanner{})
	stranger := &schema.Table{ID: 1000, Name: "stranger"}
	require.Panics(t, func() {
		m.FullTableScan(stranger)
	})
}

func requireCost(t *testing.T, expected float64, actual float64) {
	t.Helper()
	require.InDelta(t, expected, actual, 1e-9)
}
