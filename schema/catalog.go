package schema

import (
	"fmt"
	"strings"

	"github.com/google/btree"
	"github.com/squareup/hkcost/errors"
)

type ColumnDef struct {
	Name   string
	Type   string
	Length int
	Scale  int
	// AverageStorageSize is an observed average, zero when unknown.
	AverageStorageSize int
}

type TableDef struct {
	Name string
	// Parent and JoinColumns are empty for a group root.
	Parent      string
	JoinColumns []string
	Columns     []ColumnDef
	PrimaryKey  []string
}

type IndexDef struct {
	Name    string
	Table   string
	Columns []string
	Unique  bool
}

// GroupIndexDef describes a group index. Columns are qualified as table.column.
type GroupIndexDef struct {
	Name    string
	Columns []string
}

type rowTypeEntry struct {
	id      RowTypeID
	rowType RowType
}

func (e rowTypeEntry) Less(than btree.Item) bool {
	return e.id < than.(rowTypeEntry).id
}

// Catalog is a snapshot of the tables, groups and indexes of a schema. Row types are kept ordered by id so that
// every enumeration is deterministic.
type Catalog struct {
	rowTypes *btree.BTree
	byName   map[string]RowType
	groups   []*Group
	nextID   RowTypeID
}

func NewCatalog() *Catalog {
	return &Catalog{
		rowTypes: btree.New(8),
		byName:   make(map[string]RowType),
	}
}

// AddTable adds a table. A table with a parent becomes part of the parent's group; the parent must already exist.
func (c *Catalog) AddTable(def TableDef) (*Table, error) {
	if err := c.checkName("table", def.Name); err != nil {
		return nil, err
	}
	if len(def.Columns) == 0 {
		return nil, errors.NewInvalidCatalogError(fmt.Sprintf("table %s has no columns", def.Name))
	}
	table := &Table{Name: def.Name}
	for _, cd := range def.Columns {
		if _, exists := table.Column(cd.Name); exists {
			return nil, errors.NewDuplicateNameError("column", def.Name+"."+cd.Name)
		}
		typ, err := TypeByName(cd.Type)
		if err != nil {
			return nil, err
		}
		table.Columns = append(table.Columns, &Column{
			Name:               cd.Name,
			Position:           len(table.Columns),
			Type:               typ,
			Length:             cd.Length,
			Scale:              cd.Scale,
			averageStorageSize: cd.AverageStorageSize,
			table:              table,
		})
	}
	if len(def.PrimaryKey) == 0 {
		table.Columns = append(table.Columns, &Column{
			Name:     HiddenPrimaryKeyColumn,
			Position: len(table.Columns),
			Type:     BigIntType,
			Hidden:   true,
			table:    table,
		})
		table.PrimaryKey = table.Columns[len(table.Columns)-1:]
	} else {
		pk, err := resolveColumns(table, def.PrimaryKey)
		if err != nil {
			return nil, err
		}
		table.PrimaryKey = pk
	}
	if def.Parent == "" {
		if len(def.JoinColumns) != 0 {
			return nil, errors.NewInvalidCatalogError(fmt.Sprintf("table %s has join columns but no parent", def.Name))
		}
		table.Group = &Group{Name: def.Name, Root: table}
		c.groups = append(c.groups, table.Group)
	} else {
		parent, err := c.Table(def.Parent)
		if err != nil {
			return nil, err
		}
		joinCols, err := resolveColumns(table, def.JoinColumns)
		if err != nil {
			return nil, err
		}
		if len(joinCols) != len(parent.PrimaryKey) {
			return nil, errors.NewInvalidCatalogError(fmt.Sprintf("table %s joins to %s on %d columns but the parent primary key has %d",
				def.Name, parent.Name, len(joinCols), len(parent.PrimaryKey)))
		}
		table.Parent = parent
		table.JoinColumns = joinCols
		table.Depth = parent.Depth + 1
		table.Group = parent.Group
		parent.Children = append(parent.Children, table)
	}
	table.ID = c.register(table)
	return table, nil
}

// AddIndex adds an index on the columns of a single table.
func (c *Catalog) AddIndex(def IndexDef) (*Index, error) {
	if err := c.checkName("index", def.Name); err != nil {
		return nil, err
	}
	table, err := c.Table(def.Table)
	if err != nil {
		return nil, err
	}
	if len(def.Columns) == 0 {
		return nil, errors.NewInvalidCatalogError(fmt.Sprintf("index %s has no columns", def.Name))
	}
	cols, err := resolveColumns(table, def.Columns)
	if err != nil {
		return nil, err
	}
	index := &Index{
		Name:    def.Name,
		Kind:    TableIndexKind,
		Unique:  def.Unique,
		Columns: cols,
		Table:   table,
		Group:   table.Group,
	}
	index.ID = c.register(index)
	table.Indexes = append(table.Indexes, index)
	return index, nil
}

// AddGroupIndex adds an index whose columns come from tables along one branch of a single group.
func (c *Catalog) AddGroupIndex(def GroupIndexDef) (*Index, error) {
	if err := c.checkName("index", def.Name); err != nil {
		return nil, err
	}
	if len(def.Columns) == 0 {
		return nil, errors.NewInvalidCatalogError(fmt.Sprintf("group index %s has no columns", def.Name))
	}
	var cols []*Column
	for _, qualified := range def.Columns {
		parts := strings.SplitN(qualified, ".", 2)
		if len(parts) != 2 {
			return nil, errors.NewInvalidCatalogError(fmt.Sprintf("group index %s column %s must be qualified as table.column", def.Name, qualified))
		}
		table, err := c.Table(parts[0])
		if err != nil {
			return nil, err
		}
		col, ok := table.Column(parts[1])
		if !ok {
			return nil, errors.NewUnknownColumnError(parts[0], parts[1])
		}
		cols = append(cols, col)
	}
	index := &Index{
		Name:    def.Name,
		Kind:    GroupIndexKind,
		Columns: cols,
	}
	leaf := index.LeafMostTable()
	for _, col := range cols {
		t := col.table
		if t.Group != leaf.Group {
			return nil, errors.NewInvalidCatalogError(fmt.Sprintf("group index %s spans more than one group", def.Name))
		}
		if t != leaf && !t.IsAncestorOf(leaf) {
			return nil, errors.NewInvalidCatalogError(fmt.Sprintf("group index %s columns do not lie on a single branch", def.Name))
		}
	}
	index.Table = leaf
	index.Group = leaf.Group
	index.ID = c.register(index)
	leaf.Group.Indexes = append(leaf.Group.Indexes, index)
	return index, nil
}

func (c *Catalog) checkName(kind string, name string) error {
	if name == "" {
		return errors.NewInvalidCatalogError(kind + " name must be specified")
	}
	if _, exists := c.byName[name]; exists {
		return errors.NewDuplicateNameError(kind, name)
	}
	return nil
}

func (c *Catalog) register(rt RowType) RowTypeID {
	id := c.nextID
	c.nextID++
	c.rowTypes.ReplaceOrInsert(rowTypeEntry{id: id, rowType: rt})
	c.byName[rt.RowTypeName()] = rt
	return id
}

func resolveColumns(table *Table, names []string) ([]*Column, error) {
	cols := make([]*Column, len(names))
	for i, name := range names {
		col, ok := table.Column(name)
		if !ok {
			return nil, errors.NewUnknownColumnError(table.Name, name)
		}
		cols[i] = col
	}
	return cols, nil
}

// RowType returns the row type with the given id.
func (c *Catalog) RowType(id RowTypeID) (RowType, bool) {
	item := c.rowTypes.Get(rowTypeEntry{id: id})
	if item == nil {
		return nil, false
	}
	return item.(rowTypeEntry).rowType, true
}

func (c *Catalog) RowTypeByName(name string) (RowType, error) {
	rt, ok := c.byName[name]
	if !ok {
		known := make([]string, 0, len(c.byName))
		for n := range c.byName {
			known = append(known, n)
		}
		return nil, errors.NewUnknownRowTypeError(name, known)
	}
	return rt, nil
}

func (c *Catalog) Table(name string) (*Table, error) {
	rt, ok := c.byName[name]
	if !ok {
		return nil, errors.NewUnknownTableError(name)
	}
	table, ok := rt.(*Table)
	if !ok {
		return nil, errors.NewUnknownTableError(name)
	}
	return table, nil
}

func (c *Catalog) Index(name string) (*Index, error) {
	rt, ok := c.byName[name]
	if !ok {
		return nil, errors.NewUnknownIndexError(name)
	}
	index, ok := rt.(*Index)
	if !ok {
		return nil, errors.NewUnknownIndexError(name)
	}
	return index, nil
}

// RowTypes returns every table and index, ordered by id.
func (c *Catalog) RowTypes() []RowType {
	rowTypes := make([]RowType, 0, c.rowTypes.Len())
	c.rowTypes.Ascend(func(i btree.Item) bool {
		rowTypes = append(rowTypes, i.(rowTypeEntry).rowType)
		return true
	})
	return rowTypes
}

// Tables returns every table, ordered by id.
func (c *Catalog) Tables() []*Table {
	var tables []*Table
	c.rowTypes.Ascend(func(i btree.Item) bool {
		if t, ok := i.(rowTypeEntry).rowType.(*Table); ok {
			tables = append(tables, t)
		}
		return true
	})
	return tables
}

// Indexes returns every table index and group index, ordered by id.
func (c *Catalog) Indexes() []*Index {
	var indexes []*Index
	c.rowTypes.Ascend(func(i btree.Item) bool {
		if ix, ok := i.(rowTypeEntry).rowType.(*Index); ok {
			indexes = append(indexes, ix)
		}
		return true
	})
	return indexes
}

func (c *Catalog) Groups() []*Group {
	return c.groups
}
