package schema

import "fmt"

type IndexKind int

const (
	TableIndexKind IndexKind = iota
	GroupIndexKind
)

func (k IndexKind) String() string {
	switch k {
	case TableIndexKind:
		return "table-index"
	case GroupIndexKind:
		return "group-index"
	default:
		return fmt.Sprintf("IndexKind(%d)", int(k))
	}
}

// Index is a secondary index. A table index covers the columns of one table; a group index covers columns of
// several tables lying on a single root to leaf branch of a group.
type Index struct {
	ID      RowTypeID
	Name    string
	Kind    IndexKind
	Unique  bool
	Columns []*Column
	// Table is the owning table of a table index, and the leaf-most table of a group index.
	Table *Table
	Group *Group
}

func (ix *Index) RowTypeID() RowTypeID {
	return ix.ID
}

func (ix *Index) RowTypeName() string {
	return ix.Name
}

func (ix *Index) IsGroupIndex() bool {
	return ix.Kind == GroupIndexKind
}

// LeafMostTable is the deepest table that contributes a column to the index.
func (ix *Index) LeafMostTable() *Table {
	leaf := ix.Columns[0].table
	for _, c := range ix.Columns[1:] {
		if c.table.Depth > leaf.Depth {
			leaf = c.table
		}
	}
	return leaf
}

// RootMostTable is the shallowest table that contributes a column to the index.
func (ix *Index) RootMostTable() *Table {
	root := ix.Columns[0].table
	for _, c := range ix.Columns[1:] {
		if c.table.Depth < root.Depth {
			root = c.table
		}
	}
	return root
}

func (ix *Index) String() string {
	return fmt.Sprintf("%s[name=%s,id=%d]", ix.Kind, ix.Name, ix.ID)
}
