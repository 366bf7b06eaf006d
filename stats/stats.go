package stats

import (
	"fmt"

	"github.com/squareup/hkcost/schema"
)

// RowCountProvider supplies the estimated number of rows of a table. Every cardinality the cost model uses
// bottoms out here.
type RowCountProvider interface {
	RowCount(table *schema.Table) int64
}

type Kind int

const (
	TableStats Kind = iota
	TableIndexStats
	GroupIndexStats
)

func (k Kind) String() string {
	switch k {
	case TableStats:
		return "table"
	case TableIndexStats:
		return "table-index"
	case GroupIndexStats:
		return "group-index"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// RowTypeStats holds the row count and row width estimates of one row type. Both are computed when the stats are
// created and never change.
type RowTypeStats struct {
	Kind     Kind
	RowType  schema.RowType
	rowCount int64
	rowWidth int
}

// ForTable computes the statistics of a base table. The width covers every column, hidden ones included, plus
// the hierarchical key.
func ForTable(table *schema.Table, provider RowCountProvider) *RowTypeStats {
	return &RowTypeStats{
		Kind:     TableStats,
		RowType:  table,
		rowCount: provider.RowCount(table),
		rowWidth: columnsWidth(table.Columns) + HKeyWidth(table),
	}
}

// ForIndex computes the statistics of an index. A table index has as many rows as its table; a group index has as
// many rows as the leaf-most table it spans.
func ForIndex(index *schema.Index, provider RowCountProvider) *RowTypeStats {
	if index.IsGroupIndex() {
		return &RowTypeStats{
			Kind:     GroupIndexStats,
			RowType:  index,
			rowCount: provider.RowCount(index.LeafMostTable()),
			rowWidth: columnsWidth(index.Columns),
		}
	}
	return &RowTypeStats{
		Kind:     TableIndexStats,
		RowType:  index,
		rowCount: provider.RowCount(index.Table),
		rowWidth: columnsWidth(index.Columns),
	}
}

func (s *RowTypeStats) RowCount() int64 {
	return s.rowCount
}

// RowWidth is in bytes.
func (s *RowTypeStats) RowWidth() int {
	return s.rowWidth
}

func (s *RowTypeStats) String() string {
	return fmt.Sprintf("%s[name=%s,rows=%d,width=%d]", s.Kind, s.RowType.RowTypeName(), s.rowCount, s.rowWidth)
}
