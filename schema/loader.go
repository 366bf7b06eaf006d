package schema

import (
	"fmt"
	"io/ioutil"

	"github.com/squareup/hkcost/errors"
	"gopkg.in/yaml.v3"
)

type columnDesc struct {
	Name               string `yaml:"name"`
	Type               string `yaml:"type"`
	Length             int    `yaml:"length"`
	Scale              int    `yaml:"scale"`
	AverageStorageSize int    `yaml:"average_storage_size"`
}

type indexDesc struct {
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns"`
	Unique  bool     `yaml:"unique"`
}

type tableDesc struct {
	Name        string       `yaml:"name"`
	Parent      string       `yaml:"parent"`
	JoinColumns []string     `yaml:"join_columns"`
	PrimaryKey  []string     `yaml:"primary_key"`
	RowCount    *int64       `yaml:"row_count"`
	Columns     []columnDesc `yaml:"columns"`
	Indexes     []indexDesc  `yaml:"indexes"`
}

type groupDesc struct {
	Name         string      `yaml:"name"`
	Tables       []tableDesc `yaml:"tables"`
	GroupIndexes []indexDesc `yaml:"group_indexes"`
}

type catalogDesc struct {
	Groups []groupDesc `yaml:"groups"`
}

// CatalogFile is a catalog read from a description file, together with any row counts the file declares.
type CatalogFile struct {
	Catalog *Catalog
	// RowCounts is keyed by table name. Tables without a declared count are absent.
	RowCounts map[string]int64
}

// LoadCatalog reads a YAML catalog description. Within a group, parents must be listed before their children.
func LoadCatalog(path string) (*CatalogFile, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (*CatalogFile, error) {
	desc := catalogDesc{}
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, errors.NewInvalidCatalogError(err.Error())
	}
	if len(desc.Groups) == 0 {
		return nil, errors.NewInvalidCatalogError("no groups defined")
	}
	cat := NewCatalog()
	rowCounts := make(map[string]int64)
	for _, gd := range desc.Groups {
		if len(gd.Tables) == 0 {
			return nil, errors.NewInvalidCatalogError(fmt.Sprintf("group %s has no tables", gd.Name))
		}
		if gd.Tables[0].Parent != "" {
			return nil, errors.NewInvalidCatalogError(fmt.Sprintf("group %s must start with its root table", gd.Name))
		}
		declared := make(map[string]struct{}, len(gd.Tables))
		for i, td := range gd.Tables {
			if i > 0 && td.Parent == "" {
				return nil, errors.NewInvalidCatalogError(fmt.Sprintf("group %s has more than one root table", gd.Name))
			}
			if _, ok := declared[td.Parent]; td.Parent != "" && !ok {
				return nil, errors.NewInvalidCatalogError(fmt.Sprintf("parent %s of table %s must be declared earlier in group %s",
					td.Parent, td.Name, gd.Name))
			}
			declared[td.Name] = struct{}{}
			table, err := cat.AddTable(td.toDef())
			if err != nil {
				return nil, err
			}
			if i == 0 && gd.Name != "" {
				table.Group.Name = gd.Name
			}
			if td.RowCount != nil {
				if *td.RowCount < 0 {
					return nil, errors.NewInvalidCatalogError(fmt.Sprintf("table %s has a negative row count", td.Name))
				}
				rowCounts[td.Name] = *td.RowCount
			}
		}
		for _, td := range gd.Tables {
			for _, id := range td.Indexes {
				if _, err := cat.AddIndex(IndexDef{Name: id.Name, Table: td.Name, Columns: id.Columns, Unique: id.Unique}); err != nil {
					return nil, err
				}
			}
		}
		for _, id := range gd.GroupIndexes {
			if _, err := cat.AddGroupIndex(GroupIndexDef{Name: id.Name, Columns: id.Columns}); err != nil {
				return nil, err
			}
		}
	}
	return &CatalogFile{Catalog: cat, RowCounts: rowCounts}, nil
}

func (td *tableDesc) toDef() TableDef {
	def := TableDef{
		Name:        td.Name,
		Parent:      td.Parent,
		JoinColumns: td.JoinColumns,
		PrimaryKey:  td.PrimaryKey,
	}
	for _, cd := range td.Columns {
		def.Columns = append(def.Columns, ColumnDef{
			Name:               cd.Name,
			Type:               cd.Type,
			Length:             cd.Length,
			Scale:              cd.Scale,
			AverageStorageSize: cd.AverageStorageSize,
		})
	}
	return def
}
