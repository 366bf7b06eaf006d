package schema

import "fmt"

// RowTypeID identifies a table or an index within one catalog. IDs are assigned in creation order and never reused.
type RowTypeID int

// RowType is anything that produces rows of a single shape: a table, a table index or a group index.
type RowType interface {
	RowTypeID() RowTypeID
	RowTypeName() string
}

// HiddenPrimaryKeyColumn is the name of the internal column added to tables declared without a primary key.
const HiddenPrimaryKeyColumn = "__row_id"

type Column struct {
	Name     string
	Position int
	Type     *Type
	// Length is the declared length of string and binary columns, or the precision of decimals.
	Length int
	Scale  int
	// Hidden columns are maintained by the store and are not visible to SQL.
	Hidden bool
	// averageStorageSize is the observed average, zero if it has never been measured.
	averageStorageSize int
	table              *Table
}

func (c *Column) Table() *Table {
	return c.table
}

// MaxStorageSize is the largest number of bytes a value of this column can occupy, including any length prefix.
func (c *Column) MaxStorageSize() int {
	t := c.Type
	if t.FixedSize {
		return t.Size
	}
	length := c.Length
	if length <= 0 {
		length = t.DefaultLength
	}
	switch {
	case t.IsLargeObject():
		if length <= 0 {
			length = 65535
		}
		return length + 4
	case t.Category == CategoryNumeric:
		// packed BCD, two digits a byte, plus the sign
		return (length+1)/2 + 1
	case t.VariableLength:
		return length + prefixWidth(length)
	default:
		return length
	}
}

// AverageStorageSize returns the observed average storage size, falling back to MaxStorageSize when no
// observation has been recorded.
func (c *Column) AverageStorageSize() int {
	if c.averageStorageSize > 0 {
		return c.averageStorageSize
	}
	return c.MaxStorageSize()
}

func (c *Column) SetAverageStorageSize(size int) {
	c.averageStorageSize = size
}

func (c *Column) String() string {
	return fmt.Sprintf("%s.%s", c.table.Name, c.Name)
}

func prefixWidth(length int) int {
	if length < 256 {
		return 1
	}
	return 2
}

// HKeySegment is the part of a hierarchical key contributed by one table of the ancestry path.
type HKeySegment struct {
	Table   *Table
	Columns []*Column
}

type Table struct {
	ID         RowTypeID
	Name       string
	Columns    []*Column
	PrimaryKey []*Column
	// Parent is nil for the root of a group. JoinColumns are the columns of this table that reference the
	// parent's primary key.
	Parent      *Table
	JoinColumns []*Column
	Children    []*Table
	Indexes     []*Index
	Group       *Group
	Depth       int
}

func (t *Table) RowTypeID() RowTypeID {
	return t.ID
}

func (t *Table) RowTypeName() string {
	return t.Name
}

func (t *Table) IsRoot() bool {
	return t.Parent == nil
}

func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Ancestors returns the tables above this one, root first.
func (t *Table) Ancestors() []*Table {
	ancestors := make([]*Table, t.Depth)
	for p := t.Parent; p != nil; p = p.Parent {
		ancestors[p.Depth] = p
	}
	return ancestors
}

// HKey returns the segments of the table's hierarchical key, one per table on the path from the group root down
// to and including this table. Primary key columns that are also join columns are carried by the parent's segment
// and are left out of the child's.
func (t *Table) HKey() []HKeySegment {
	path := append(t.Ancestors(), t)
	segments := make([]HKeySegment, len(path))
	for i, table := range path {
		segments[i] = HKeySegment{Table: table, Columns: table.ownKeyColumns()}
	}
	return segments
}

func (t *Table) ownKeyColumns() []*Column {
	if len(t.JoinColumns) == 0 {
		return t.PrimaryKey
	}
	var own []*Column
	for _, pk := range t.PrimaryKey {
		joined := false
		for _, jc := range t.JoinColumns {
			if pk == jc {
				joined = true
				break
			}
		}
		if !joined {
			own = append(own, pk)
		}
	}
	return own
}

// IsAncestorOf returns true if t is a strict ancestor of other.
func (t *Table) IsAncestorOf(other *Table) bool {
	for p := other.Parent; p != nil; p = p.Parent {
		if p == t {
			return true
		}
	}
	return false
}

// Branch returns this table and every table below it, depth first, children in declaration order.
func (t *Table) Branch() []*Table {
	tables := []*Table{t}
	for _, child := range t.Children {
		tables = append(tables, child.Branch()...)
	}
	return tables
}

func (t *Table) String() string {
	return fmt.Sprintf("table[name=%s,id=%d]", t.Name, t.ID)
}

// Group is a set of tables clustered together under the hierarchical key of its root.
type Group struct {
	Name    string
	Root    *Table
	Indexes []*Index
}

// Tables returns every table of the group in depth-first order starting at the root, children in declaration
// order.
func (g *Group) Tables() []*Table {
	return g.Root.Branch()
}
