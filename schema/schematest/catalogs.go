package schematest

import (
	"testing"

	"github.com/squareup/hkcost/schema"
	"github.com/stretchr/testify/require"
)

// Test utils shared by the packages that need a catalog to cost against.

// COICatalog builds the customers / orders / items group, with addresses as a second child of customers, two table
// indexes and one group index over customers.name and orders.odate.
func COICatalog(t *testing.T) *schema.Catalog {
	t.Helper()
	cat := schema.NewCatalog()
	addTable(t, cat, schema.TableDef{
		Name: "customers",
		Columns: []schema.ColumnDef{
			{Name: "cid", Type: "INT"},
			{Name: "name", Type: "VARCHAR", Length: 32},
		},
		PrimaryKey: []string{"cid"},
	})
	addTable(t, cat, schema.TableDef{
		Name:        "orders",
		Parent:      "customers",
		JoinColumns: []string{"cid"},
		Columns: []schema.ColumnDef{
			{Name: "oid", Type: "INT"},
			{Name: "cid", Type: "INT"},
			{Name: "odate", Type: "DATE"},
		},
		PrimaryKey: []string{"oid"},
	})
	addTable(t, cat, schema.TableDef{
		Name:        "items",
		Parent:      "orders",
		JoinColumns: []string{"oid"},
		Columns: []schema.ColumnDef{
			{Name: "iid", Type: "INT"},
			{Name: "oid", Type: "INT"},
			{Name: "sku", Type: "VARCHAR", Length: 10},
			{Name: "quantity", Type: "INT"},
		},
		PrimaryKey: []string{"iid"},
	})
	addTable(t, cat, schema.TableDef{
		Name:        "addresses",
		Parent:      "customers",
		JoinColumns: []string{"cid"},
		Columns: []schema.ColumnDef{
			{Name: "aid", Type: "INT"},
			{Name: "cid", Type: "INT"},
			{Name: "state", Type: "CHAR", Length: 2},
		},
		PrimaryKey: []string{"aid"},
	})
	_, err := cat.AddIndex(schema.IndexDef{Name: "customers_name", Table: "customers", Columns: []string{"name"}})
	require.NoError(t, err)
	_, err = cat.AddIndex(schema.IndexDef{Name: "orders_odate", Table: "orders", Columns: []string{"odate"}})
	require.NoError(t, err)
	_, err = cat.AddGroupIndex(schema.GroupIndexDef{Name: "name_odate", Columns: []string{"customers.name", "orders.odate"}})
	require.NoError(t, err)
	return cat
}

// COIRowCounts are the row counts used with COICatalog, keyed by table name.
var COIRowCounts = map[string]int64{
	"customers": 1000,
	"orders":    10000,
	"items":     50000,
	"addresses": 2000,
}

// SingleTableCatalog builds a group with one table t(id INT primary key, v BIGINT).
func SingleTableCatalog(t *testing.T) *schema.Catalog {
	t.Helper()
	cat := schema.NewCatalog()
	addTable(t, cat, schema.TableDef{
		Name: "t",
		Columns: []schema.ColumnDef{
			{Name: "id", Type: "INT"},
			{Name: "v", Type: "BIGINT"},
		},
		PrimaryKey: []string{"id"},
	})
	return cat
}

func MustTable(t *testing.T, cat *schema.Catalog, name string) *schema.Table {
	t.Helper()
	table, err := cat.Table(name)
	require.NoError(t, err)
	return table
}

func MustIndex(t *testing.T, cat *schema.Catalog, name string) *schema.Index {
	t.Helper()
	index, err := cat.Index(name)
	require.NoError(t, err)
	return index
}

func addTable(t *testing.T, cat *schema.Catalog, def schema.TableDef) {
	t.Helper()
	_, err := cat.AddTable(def)
	require.NoError(t, err)
}
