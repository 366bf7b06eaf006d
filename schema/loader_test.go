package schema_test

import (
	"testing"

	"github.com/squareup/hkcost/errors"
	"github.com/squareup/hkcost/schema"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	cf, err := schema.LoadCatalog("testdata/coi.yaml")
	require.NoError(t, err)
	cat := cf.Catalog
	require.Len(t, cat.Groups(), 2)
	require.Equal(t, "coi", cat.Groups()[0].Name)
	require.Equal(t, "customers", cat.Groups()[0].Root.Name)
	require.Len(t, cat.Tables(), 4)
	require.Len(t, cat.Indexes(), 3)
	require.Equal(t, map[string]int64{"customers": 1000, "orders": 10000, "items": 50000}, cf.RowCounts)

	gi, err := cat.Index("name_odate")
	require.NoError(t, err)
	require.True(t, gi.IsGroupIndex())
	require.Equal(t, "orders", gi.LeafMostTable().Name)

	events, err := cat.Table("events")
	require.NoError(t, err)
	// payload, note and the hidden row id
	require.Len(t, events.Columns, 3)
	require.Equal(t, schema.BlobType, events.Columns[0].Type)
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, err := schema.LoadCatalog("testdata/does_not_exist.yaml")
	require.Error(t, err)
}

func TestParseCatalogErrors(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
		code int
	}{
		{name: "empty", yaml: "groups: []", code: errors.InvalidCatalog},
		{name: "malformed", yaml: "groups: [", code: errors.InvalidCatalog},
		{name: "child first", yaml: `
groups:
  - name: g
    tables:
      - {name: c, parent: p, join_columns: [a], columns: [{name: a, type: int}]}
`, code: errors.InvalidCatalog},
		{name: "two roots", yaml: `
groups:
  - name: g
    tables:
      - {name: a, columns: [{name: a, type: int}]}
      - {name: b, columns: [{name: b, type: int}]}
`, code: errors.InvalidCatalog},
		{name: "parent in another group", yaml: `
groups:
  - name: a
    tables:
      - {name: x, primary_key: [id], columns: [{name: id, type: int}]}
  - name: b
    tables:
      - {name: r, primary_key: [id], columns: [{name: id, type: int}]}
      - {name: y, parent: x, join_columns: [xid], columns: [{name: xid, type: int}]}
`, code: errors.InvalidCatalog},
		{name: "parent declared later", yaml: `
groups:
  - name: g
    tables:
      - {name: r, primary_key: [id], columns: [{name: id, type: int}]}
      - {name: c, parent: p, join_columns: [pid], columns: [{name: pid, type: int}]}
      - {name: p, parent: r, join_columns: [rid], primary_key: [id], columns: [{name: id, type: int}, {name: rid, type: int}]}
`, code: errors.InvalidCatalog},
		{name: "negative count", yaml: `
groups:
  - name: g
    tables:
      - {name: a, row_count: -1, columns: [{name: a, type: int}]}
`, code: errors.InvalidCatalog},
		{name: "unknown type", yaml: `
groups:
  - name: g
    tables:
      - {name: a, columns: [{name: a, type: money}]}
`, code: errors.UnknownType},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := schema.ParseCatalog([]byte(tc.yaml))
			requireCode(t, err, tc.code)
		})
	}
}
